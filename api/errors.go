package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	serverError     = "Server error"
	missingFields   = "Missing required fields"
	invalidJSONBody = "Invalid request body"
)

// statusFor maps a use-case error to its HTTP status and client message.
// Unknown errors become a 500 whose detail stays in the log.
func statusFor(err error) (int, string) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Message
	case errors.Is(err, domain.ErrFlightNotFound):
		return http.StatusNotFound, "Flight not found"
	case errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound, "Booking not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrNoAvailability):
		return http.StatusBadRequest, "No available seats"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest, "Conflict, please retry"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Invalid token"
	}
	return http.StatusInternalServerError, serverError
}

func writeError(c *gin.Context, log logger.Logger, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// bindJSON decodes the body into dst. Decoder and validator details stay
// out of the response.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		badRequest(c, missingFields)
	} else {
		badRequest(c, invalidJSONBody)
	}
	return false
}

// idParam parses a positive integer path parameter, answering 400 itself
// when it is malformed.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
