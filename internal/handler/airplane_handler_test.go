package handler_test

import (
	"net/http"
	"testing"

	"go-gin-flight-booking/internal/handler"
	serviceMocks "go-gin-flight-booking/internal/mocks/services"
	"go-gin-flight-booking/internal/model"
	apperrors "go-gin-flight-booking/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAirplaneTestRouter(mockService *serviceMocks.AirplaneServiceMock) *gin.Engine {
	router := newTestRouter()
	handler.NewAirplaneHandler(mockService).RegisterRoutes(router)
	return router
}

func TestCreateAirplane(t *testing.T) {
	body := map[string]interface{}{
		"tail_number": "5N-ABC", "model": "A320", "capacity": 150, "production_year": 2015,
	}

	t.Run("Success - StatusDefaultsTrue", func(t *testing.T) {
		mockService := serviceMocks.NewAirplaneServiceMock()
		router := setupAirplaneTestRouter(mockService)

		mockService.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Airplane) bool {
			return a.TailNumber == "5N-ABC" && a.Status
		})).Return(&model.Airplane{ID: 1, TailNumber: "5N-ABC", Status: true}, nil).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/airplanes/create/", body))

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - DuplicateTailNumber", func(t *testing.T) {
		mockService := serviceMocks.NewAirplaneServiceMock()
		router := setupAirplaneTestRouter(mockService)

		mockService.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicateTailNumber).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/airplanes/create/", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "An airplane with tail number 5N-ABC already exists.", decodeBody(t, w)["error"])
	})

	t.Run("Failed - ZeroCapacity", func(t *testing.T) {
		mockService := serviceMocks.NewAirplaneServiceMock()
		router := setupAirplaneTestRouter(mockService)

		w := serve(router, createJSONHTTPRequest("POST", "/airplanes/create/", map[string]interface{}{
			"tail_number": "5N-ABC", "model": "A320", "capacity": 0, "production_year": 2015,
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["fields"], "capacity")
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAirplaneRoutes(t *testing.T) {
	mockService := serviceMocks.NewAirplaneServiceMock()
	router := setupAirplaneTestRouter(mockService)

	capacity := 180
	mockService.On("List", mock.Anything).Return([]*model.Airplane{{ID: 1}}, nil).Once()
	mockService.On("GetByID", mock.Anything, 1).Return(&model.Airplane{ID: 1}, nil).Once()
	mockService.On("ListFlights", mock.Anything, 2).Return(nil, apperrors.ErrAirplaneNotFound).Once()
	mockService.On("Update", mock.Anything, 1, model.UpdateAirplaneParams{Capacity: &capacity}).Return(&model.Airplane{ID: 1, Capacity: 180}, nil).Once()
	mockService.On("Delete", mock.Anything, 1).Return(nil).Once()

	assert.Equal(t, http.StatusOK, serve(router, createJSONHTTPRequest("GET", "/airplanes/", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(router, createJSONHTTPRequest("GET", "/airplanes/1/", nil)).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, createJSONHTTPRequest("GET", "/airplanes/2/flights/", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(router, createJSONHTTPRequest("PATCH", "/airplanes/1/update/", map[string]interface{}{"capacity": 180})).Code)
	assert.Equal(t, http.StatusNoContent, serve(router, createJSONHTTPRequest("DELETE", "/airplanes/1/delete/", nil)).Code)

	mockService.AssertExpectations(t)
}
