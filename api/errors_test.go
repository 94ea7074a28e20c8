package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{domain.NewValidationError("seat_number is required"), http.StatusBadRequest, "seat_number is required"},
		{fmt.Errorf("wrapped: %w", domain.ErrFlightNotFound), http.StatusNotFound, "Flight not found"},
		{domain.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
		{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{domain.ErrNoAvailability, http.StatusBadRequest, "No available seats"},
		{domain.ErrUserExists, http.StatusBadRequest, "User already exists"},
		{domain.ErrDuplicateReference, http.StatusBadRequest, "Conflict, please retry"},
		{domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
		{fmt.Errorf("%w: token is expired", domain.ErrUnauthorized), http.StatusUnauthorized, "Invalid token"},
		{errors.New("pq: connection reset"), http.StatusInternalServerError, "Server error"},
	}
	for _, tt := range tests {
		status, msg := statusFor(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.msg, msg, tt.err.Error())
	}
}
