package handler

import (
	"errors"
	"go-gin-flight-booking/internal/model"
	"go-gin-flight-booking/internal/service"
	apperrors "go-gin-flight-booking/pkg/app_errors"
	"go-gin-flight-booking/pkg/logger"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FlightHandler struct {
	service service.FlightService
}

func NewFlightHandler(service service.FlightService) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/flights")
	{
		router.GET("/", h.GetFlights)
		router.GET("/:id/", h.GetFlight)
		router.GET("/:id/reservations/", h.GetFlightReservations)
		router.POST("/create/", h.CreateFlight)
		router.PATCH("/:id/update/", h.UpdateFlight)
		router.DELETE("/:id/delete/", h.DeleteFlight)
	}
}

// GetFlights 支援 departure、destination（不分大小寫子字串）與 departure_time、arrival_time（日期）篩選
func (h *FlightHandler) GetFlights(c *gin.Context) {
	filter := model.FlightFilter{
		Departure:   strings.TrimSpace(c.Query("departure")),
		Destination: strings.TrimSpace(c.Query("destination")),
	}

	var err error
	if filter.DepartureDate, err = parseDateParam(c.Query("departure_time")); err != nil {
		h.handleFlightError(c, err, "GetFlights")
		return
	}
	if filter.ArrivalDate, err = parseDateParam(c.Query("arrival_time")); err != nil {
		h.handleFlightError(c, err, "GetFlights")
		return
	}

	flights, err := h.service.List(c, filter)
	if err != nil {
		h.handleFlightError(c, err, "GetFlights")
		return
	}

	respond(c, flights, http.StatusOK)
}

func (h *FlightHandler) GetFlight(c *gin.Context) {
	id, ok := parseID(c, "Flight not found")
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c, id)
	if err != nil {
		h.handleFlightError(c, err, "GetFlight")
		return
	}

	respond(c, flight, http.StatusOK)
}

func (h *FlightHandler) GetFlightReservations(c *gin.Context) {
	id, ok := parseID(c, "Flight not found")
	if !ok {
		return
	}
	reservations, err := h.service.ListReservations(c, id)
	if err != nil {
		h.handleFlightError(c, err, "GetFlightReservations")
		return
	}

	respond(c, reservations, http.StatusOK)
}

func (h *FlightHandler) CreateFlight(c *gin.Context) {
	var req model.CreateFlightRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Create(c, req.ToFlight())
	if err != nil {
		h.handleFlightError(c, err, "CreateFlight")
		return
	}

	respond(c, created, http.StatusCreated)
}

func (h *FlightHandler) UpdateFlight(c *gin.Context) {
	id, ok := parseID(c, "Flight not found")
	if !ok {
		return
	}
	var req model.UpdateFlightRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.Update(c, id, req.ToParams())
	if err != nil {
		h.handleFlightError(c, err, "UpdateFlight")
		return
	}

	respond(c, updated, http.StatusOK)
}

func (h *FlightHandler) DeleteFlight(c *gin.Context) {
	id, ok := parseID(c, "Flight not found")
	if !ok {
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		h.handleFlightError(c, err, "DeleteFlight")
		return
	}

	respond(c, nil, http.StatusNoContent)
}

// parseDateParam 接受 YYYY-MM-DD 或 RFC 3339，回傳該日期（UTC 零點）；空字串代表不過濾
func parseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, apperrors.ErrInvalidDate
		}
	}
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &date, nil
}

// Helper functions

func (h *FlightHandler) handleFlightError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrFlightNotFound):
		log.Warn("Flight not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Flight not found",
		})
	case errors.Is(err, apperrors.ErrInvalidDate):
		log.Warn("Invalid date filter")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, please use yyyy-mm-dd",
		})
	case errors.Is(err, apperrors.ErrAirplaneNotFound):
		// 指派的飛機不存在屬於輸入錯誤
		log.Warn("Airplane not found")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid request data",
			"fields": gin.H{"airplane": "Invalid pk - object does not exist."},
		})
	case errors.Is(err, apperrors.ErrDuplicateFlightNumber):
		log.Warn("Duplicate flight number")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid request data",
			"fields": gin.H{"flight_number": "flight with this flight number already exists."},
		})
	case errors.Is(err, apperrors.ErrInvalidSchedule):
		log.Warn("Invalid schedule")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid request data",
			"fields": gin.H{"arrival_time": "Arrival time must be after departure time."},
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		invalidInput(c, err)
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
