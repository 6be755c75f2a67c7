package errors

import (
	"fmt"
	"net/http"
	"strings"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Error is the API error type returned across service boundaries.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

var (
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrNotFound            = New("record not found", http.StatusNotFound)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrForbidden           = New("forbidden", http.StatusForbidden)
	ErrInvalidPassword     = New("invalid email or password", http.StatusUnauthorized)

	InActiveUserError = errors.New("user inactive")
)

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("message: %v, status: %v", e.Message, e.Status)
}

// GetUniqueContraintError maps a database unique-constraint violation to a
// client-friendly conflict error.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return New("email already exists", http.StatusConflict)
	case strings.Contains(msg, "telephone"), strings.Contains(msg, "phone"):
		return New("phone number already exists", http.StatusConflict)
	default:
		return New("record already exists", http.StatusConflict)
	}
}

// ErrorHandler is plugged into the rate limiter for 429 responses.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"message": "too many requests, try again later",
		"status":  http.StatusTooManyRequests,
	})
}
