package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/soufdev/fraudline/errors"
	"github.com/soufdev/fraudline/models"
	"github.com/soufdev/fraudline/server/response"
)

func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ForgotPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.AuthService.SendEmailForPasswordReset(&request); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		// The response is the same whether or not the address exists.
		response.JSON(c, "Reset Password Link Sent Successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ResetPassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		token := c.Param("token")
		if token == "" {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("missing token", http.StatusBadRequest))
			return
		}

		if apiErr := s.AuthService.ResetPassword(&request, token); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "Password Reset Successfully", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleVerifyResetToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.VerifyResetTokenRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.AuthService.VerifyResetToken(&request); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "token is valid", http.StatusOK, gin.H{"valid": true}, nil)
	}
}
