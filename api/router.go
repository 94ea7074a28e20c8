package api

import (
	"net/http"
	"path/filepath"

	"github.com/Domenick1991/airline/internal/service/auth"
	"github.com/Domenick1991/airline/internal/service/booking"
	"github.com/Domenick1991/airline/internal/service/flights"
	"github.com/Domenick1991/airline/internal/service/users"
	"github.com/Domenick1991/airline/pkg/logger"
	"github.com/Domenick1991/airline/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterConfig struct {
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Auth     auth.AuthUseCase
	Users    users.UserUseCase
	Log      logger.Logger
	Metrics  *metrics.Metrics
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// SwaggerDir holds openapi.yaml. Empty disables the docs routes.
	SwaggerDir string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), CORS(), RequestLogger(cfg.Log))
	if cfg.Metrics != nil {
		router.Use(Metrics(cfg.Metrics))
	}

	root := router.Group("/api")
	root.GET("/health", health)
	NewAuthHandler(cfg.Auth, cfg.Log).Register(root.Group("/auth"))
	NewFlightHandler(cfg.Flights, cfg.Log).Register(root.Group("/flights"))
	NewBookingHandler(cfg.Bookings, cfg.Log).Register(root.Group("/bookings"))
	NewUserHandler(cfg.Users, cfg.Log).Register(root.Group("/users"))

	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	if cfg.SwaggerDir != "" {
		doc := filepath.Join(cfg.SwaggerDir, "openapi.yaml")
		router.GET("/docs/openapi.yaml", func(c *gin.Context) {
			c.File(doc)
		})
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/openapi.yaml"))))
	}

	return router
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Airline API is running"})
}
