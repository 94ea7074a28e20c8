package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/service/flights"
	"github.com/Domenick1991/airline/pkg/logger"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
	log     logger.Logger
}

type flightRequest struct {
	FlightNumber   string    `json:"flight_number" binding:"required"`
	Airline        string    `json:"airline" binding:"required"`
	FromAirport    string    `json:"from_airport" binding:"required"`
	ToAirport      string    `json:"to_airport" binding:"required"`
	DepartureTime  time.Time `json:"departure_time" binding:"required"`
	ArrivalTime    time.Time `json:"arrival_time" binding:"required"`
	Price          *float64  `json:"price" binding:"required"`
	AvailableSeats *int      `json:"available_seats" binding:"required"`
	TotalSeats     *int      `json:"total_seats"`
	AircraftType   string    `json:"aircraft_type"`
	Status         string    `json:"status"`
}

func (r flightRequest) toFlight() *domain.Flight {
	flight := &domain.Flight{
		FlightNumber:   r.FlightNumber,
		Airline:        r.Airline,
		FromAirport:    r.FromAirport,
		ToAirport:      r.ToAirport,
		DepartureTime:  r.DepartureTime,
		ArrivalTime:    r.ArrivalTime,
		Price:          *r.Price,
		AvailableSeats: *r.AvailableSeats,
		AircraftType:   r.AircraftType,
		Status:         r.Status,
	}
	if r.TotalSeats != nil {
		flight.TotalSeats = *r.TotalSeats
	}
	return flight
}

func NewFlightHandler(service flights.FlightUseCase, log logger.Logger) *FlightHandler {
	return &FlightHandler{service: service, log: log}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) search(c *gin.Context) {
	filter := domain.FlightSearch{
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	if raw := c.Query("date"); raw != "" {
		day, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			badRequest(c, "date must be YYYY-MM-DD")
			return
		}
		filter.Date = &day
	}

	flights, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if !bindJSON(c, &req) {
		return
	}

	flight := req.toFlight()
	if err := h.service.Create(c.Request.Context(), flight); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req flightRequest
	if !bindJSON(c, &req) {
		return
	}

	flight := req.toFlight()
	flight.ID = id
	if err := h.service.Update(c.Request.Context(), flight); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flight deleted successfully"})
}
