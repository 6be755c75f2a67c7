package server

import (
	"fmt"
	"os"
	"time"

	rateLimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()

	// LoggerWithFormatter middleware will write the logs to gin.DefaultWriter
	// By default gin.DefaultWriter = os.Stdout
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := rateLimit.InMemoryStore(&rateLimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 3,
	})
	limitRate := limitRateForPasswordReset(store)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.POST("/auth/check-email", s.handleCheckEmail())
	apirouter.POST("/auth/check-verification", s.handleCheckVerification())
	apirouter.POST("/auth/send-verification-email", s.handleSendVerificationEmail())
	apirouter.GET("/verify-email/:token", s.handleVerifyEmail())
	apirouter.POST("/password/forgot", limitRate, s.HandleForgotPassword())
	apirouter.POST("/password/reset/:token", s.ResetPassword())
	apirouter.POST("/password/verify-reset-token", s.handleVerifyResetToken())

	apirouter.GET("/numbers", s.handleListNumbers())
	apirouter.GET("/numbers/:number", s.handleGetNumber())
	apirouter.GET("/reports", s.handleGetAllReports())
	apirouter.GET("/stats", s.handleGetStats())
	apirouter.GET("/regions", s.handleGetRegions())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me/updateUserProfile", s.handleEditUserProfile())
	authorized.PUT("/me/upload", s.handleUploadProfileImage())
	authorized.POST("/user/report", s.handleCreateReport())
	authorized.PUT("/report/:id", s.handleUpdateReport())
	authorized.PUT("/report/:id/status", s.handleUpdateReportStatus())
	authorized.DELETE("/report/:id", s.handleDeleteReport())
	authorized.PUT("/numbers/:number/rate", s.handleRateNumber())
	authorized.POST("/admin/reports/import", s.handleImportReports())
}
