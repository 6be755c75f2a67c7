package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soufdev/fraudline/config"
	"github.com/soufdev/fraudline/db"
	"github.com/soufdev/fraudline/mailingservices"
	"github.com/soufdev/fraudline/services"
)

// Server serves requests to DB with router
type Server struct {
	Config           *config.Config
	Mail             *mailingservices.Mailgun
	AuthRepository   db.AuthRepository
	ReportRepository db.ReportRepository
	AuthService      services.AuthService
	ReportService    services.ReportService
	MediaService     services.MediaService
	DB               db.GormDB
}

func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8000
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()
	log.Printf("listening on port %d", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exiting")
}

// decode binds the request JSON body into v.
func decode(c *gin.Context, v interface{}) error {
	return c.ShouldBindJSON(v)
}
