package response

import (
	"github.com/gin-gonic/gin"

	apiError "github.com/soufdev/fraudline/errors"
)

// JSON writes the uniform response envelope used by every handler.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		if e, ok := err.(*apiError.Error); ok {
			errMessage = e.Message
		} else {
			errMessage = err.Error()
		}
	}
	if message == "" && errMessage != "" {
		message = errMessage
	}

	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
		"errors":  errMessage,
		"status":  status,
	})
}
