package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/soufdev/fraudline/errors"
	"github.com/soufdev/fraudline/models"
	"github.com/soufdev/fraudline/server/response"
)

func (s *Server) handleRateNumber() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.RateNumberRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		rating, err := s.ReportService.RateNumber(userID, c.Param("number"), request.Stars)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		response.JSON(c, "rating recorded", http.StatusOK, rating, nil)
	}
}
