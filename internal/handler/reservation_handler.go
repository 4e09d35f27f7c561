package handler

import (
	"errors"
	"go-gin-flight-booking/internal/model"
	"go-gin-flight-booking/internal/service"
	apperrors "go-gin-flight-booking/pkg/app_errors"
	"go-gin-flight-booking/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service service.ReservationService
}

func NewReservationHandler(service service.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/reservations")
	{
		router.GET("/", h.GetReservations)
		router.GET("/:id/", h.GetReservation)
		router.POST("/create/", h.CreateReservation)
		router.PATCH("/:id/update/", h.UpdateReservation)
		router.DELETE("/:id/delete/", h.DeleteReservation)
	}
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req model.BookReservationRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Book(c, req)
	if err != nil {
		h.handleReservationError(c, err, "CreateReservation")
		return
	}

	respond(c, created, http.StatusCreated)
}

func (h *ReservationHandler) GetReservations(c *gin.Context) {
	reservations, err := h.service.List(c)
	if err != nil {
		h.handleReservationError(c, err, "GetReservations")
		return
	}

	respond(c, reservations, http.StatusOK)
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := parseID(c, "Reservation not found")
	if !ok {
		return
	}
	reservation, err := h.service.GetByID(c, id)
	if err != nil {
		h.handleReservationError(c, err, "GetReservation")
		return
	}

	respond(c, reservation, http.StatusOK)
}

func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	id, ok := parseID(c, "Reservation not found")
	if !ok {
		return
	}
	var req model.UpdateReservationRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.Update(c, id, req.ToParams())
	if err != nil {
		h.handleReservationError(c, err, "UpdateReservation")
		return
	}

	respond(c, updated, http.StatusOK)
}

func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, ok := parseID(c, "Reservation not found")
	if !ok {
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		h.handleReservationError(c, err, "DeleteReservation")
		return
	}

	respond(c, nil, http.StatusNoContent)
}

// Helper functions

func (h *ReservationHandler) handleReservationError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrFlightNotFound):
		log.Warn("Flight not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Flight not found",
		})
	case errors.Is(err, apperrors.ErrReservationNotFound):
		log.Warn("Reservation not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, apperrors.ErrFlightFull):
		log.Warn("Flight is fully booked")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Flight is fully booked",
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
