package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"gorm.io/gorm"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	errs "github.com/soufdev/fraudline/errors"
	"github.com/soufdev/fraudline/models"
	"github.com/soufdev/fraudline/server/response"
	"github.com/soufdev/fraudline/services/jwt"
)

func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		if s.AuthRepository.IsTokenInBlacklist(accessToken) {
			respondAndAbort(c, "Access token is blacklisted", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		secret := s.Config.JWTSecret
		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, secret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		userIDValue := accessClaims["id"]
		var userID uint
		switch v := userIDValue.(type) {
		case float64:
			userID = uint(v)
		default:
			respondAndAbort(c, "", http.StatusBadRequest, nil, errs.New("Invalid userID format", http.StatusBadRequest))
			return
		}

		user, err := s.AuthRepository.FindUserByID(userID)
		if err != nil {
			switch {
			case errors.Is(err, errs.InActiveUserError):
				respondAndAbort(c, "inactive user", http.StatusUnauthorized, nil, errs.New(err.Error(), http.StatusUnauthorized))
				return
			case errors.Is(err, gorm.ErrRecordNotFound):
				respondAndAbort(c, "user not found", http.StatusUnauthorized, nil, errs.New(err.Error(), http.StatusUnauthorized))
				return
			default:
				respondAndAbort(c, "unable to find entity", http.StatusInternalServerError, nil, errs.New("internal server error", http.StatusInternalServerError))
				return
			}
		}

		if user.IsBlocked {
			respondAndAbort(c, "account is blocked", http.StatusForbidden, nil, errs.New("Forbidden", http.StatusForbidden))
			return
		}

		c.Set("user", user)
		c.Set("userID", userID)
		c.Set("access_token", accessToken)
		c.Set("fullName", user.Fullname)
		c.Set("isAdmin", user.AdminStatus)
		c.Next()
	}
}

func limitRateForPasswordReset(store ratelimit.Store) gin.HandlerFunc {
	mw := ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler:   errs.ErrorHandler,
		KeyFunc:        keyFunc,
		BeforeResponse: nil,
	})
	return mw
}

// keyFunc keys the password-reset limiter on the target email, so one address
// cannot be flooded from many client IPs. The body is restored after reading.
func keyFunc(c *gin.Context) string {
	buf, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.JSON(c, "", http.StatusBadRequest, nil, err)
		return ""
	}

	c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))

	var foundUser models.ForgotPassword
	err = decode(c, &foundUser)
	if err != nil {
		response.JSON(c, "", http.StatusBadRequest, nil, err)
		return ""
	}

	c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))
	return foundUser.Email
}

// respondAndAbort calls response.JSON and aborts the Context
func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e *errs.Error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}

// getTokenFromHeader returns the token string in the authorization header
func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) > 8 {
		return authHeader[7:]
	}
	return ""
}

// currentUserID reads the authenticated user id set by Authorize. Zero means
// the request is unauthenticated.
func currentUserID(c *gin.Context) uint {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func currentUserIsAdmin(c *gin.Context) bool {
	if v, exists := c.Get("isAdmin"); exists {
		if isAdmin, ok := v.(bool); ok {
			return isAdmin
		}
	}
	return false
}

func currentUser(c *gin.Context) *models.User {
	if v, exists := c.Get("user"); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
