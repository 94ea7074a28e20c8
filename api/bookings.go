package api

import (
	"net/http"

	"github.com/Domenick1991/airline/internal/service/booking"
	"github.com/Domenick1991/airline/pkg/logger"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	log     logger.Logger
}

type createBookingRequest struct {
	UserID        int64    `json:"user_id" binding:"required"`
	FlightID      int64    `json:"flight_id" binding:"required"`
	PassengerName string   `json:"passenger_name" binding:"required"`
	SeatNumber    string   `json:"seat_number" binding:"required"`
	TotalPrice    *float64 `json:"total_price" binding:"required"`
}

func NewBookingHandler(service booking.BookingUseCase, log logger.Logger) *BookingHandler {
	return &BookingHandler{service: service, log: log}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/user/:userId", h.listByUser)
	router.GET("/reference/:reference", h.getByReference)
	router.POST("", h.create)
	router.PATCH("/:id/checkin", h.checkIn)
	router.PATCH("/:id/cancel", h.cancel)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) listByUser(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	bookings, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) getByReference(c *gin.Context) {
	details, err := h.service.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:        req.UserID,
		FlightID:      req.FlightID,
		PassengerName: req.PassengerName,
		SeatNumber:    req.SeatNumber,
		TotalPrice:    *req.TotalPrice,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) checkIn(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	updated, err := h.service.CheckIn(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.service.CancelBooking(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}
