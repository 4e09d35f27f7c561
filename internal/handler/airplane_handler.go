package handler

import (
	"errors"
	"fmt"
	"go-gin-flight-booking/internal/model"
	"go-gin-flight-booking/internal/service"
	apperrors "go-gin-flight-booking/pkg/app_errors"
	"go-gin-flight-booking/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AirplaneHandler struct {
	service service.AirplaneService
}

func NewAirplaneHandler(service service.AirplaneService) *AirplaneHandler {
	return &AirplaneHandler{service: service}
}

func (h *AirplaneHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/airplanes")
	{
		router.GET("/", h.GetAirplanes)
		router.GET("/:id/", h.GetAirplane)
		router.GET("/:id/flights/", h.GetAirplaneFlights)
		router.POST("/create/", h.CreateAirplane)
		router.PATCH("/:id/update/", h.UpdateAirplane)
		router.DELETE("/:id/delete/", h.DeleteAirplane)
	}
}

func (h *AirplaneHandler) GetAirplanes(c *gin.Context) {
	airplanes, err := h.service.List(c)
	if err != nil {
		h.handleAirplaneError(c, err, "GetAirplanes")
		return
	}

	respond(c, airplanes, http.StatusOK)
}

func (h *AirplaneHandler) GetAirplane(c *gin.Context) {
	id, ok := parseID(c, "Airplane not found")
	if !ok {
		return
	}
	airplane, err := h.service.GetByID(c, id)
	if err != nil {
		h.handleAirplaneError(c, err, "GetAirplane")
		return
	}

	respond(c, airplane, http.StatusOK)
}

func (h *AirplaneHandler) GetAirplaneFlights(c *gin.Context) {
	id, ok := parseID(c, "Airplane not found")
	if !ok {
		return
	}
	flights, err := h.service.ListFlights(c, id)
	if err != nil {
		h.handleAirplaneError(c, err, "GetAirplaneFlights")
		return
	}

	respond(c, flights, http.StatusOK)
}

func (h *AirplaneHandler) CreateAirplane(c *gin.Context) {
	var req model.CreateAirplaneRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Create(c, req.ToAirplane())
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateTailNumber) {
			logger.WithComponent("handler").Warn("Duplicate tail number", zap.String("operation", "CreateAirplane"), zap.String("tail_number", req.TailNumber))
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("An airplane with tail number %s already exists.", req.TailNumber),
			})
			return
		}
		h.handleAirplaneError(c, err, "CreateAirplane")
		return
	}

	respond(c, created, http.StatusCreated)
}

func (h *AirplaneHandler) UpdateAirplane(c *gin.Context) {
	id, ok := parseID(c, "Airplane not found")
	if !ok {
		return
	}
	var req model.UpdateAirplaneRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.Update(c, id, req.ToParams())
	if err != nil {
		h.handleAirplaneError(c, err, "UpdateAirplane")
		return
	}

	respond(c, updated, http.StatusOK)
}

func (h *AirplaneHandler) DeleteAirplane(c *gin.Context) {
	id, ok := parseID(c, "Airplane not found")
	if !ok {
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		h.handleAirplaneError(c, err, "DeleteAirplane")
		return
	}

	respond(c, nil, http.StatusNoContent)
}

// Helper functions

func (h *AirplaneHandler) handleAirplaneError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrAirplaneNotFound):
		log.Warn("Airplane not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Airplane not found",
		})
	case errors.Is(err, apperrors.ErrDuplicateTailNumber):
		log.Warn("Duplicate tail number")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "An airplane with this tail number already exists.",
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
