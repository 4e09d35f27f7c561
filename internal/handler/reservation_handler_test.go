package handler_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"go-gin-flight-booking/internal/handler"
	serviceMocks "go-gin-flight-booking/internal/mocks/services"
	"go-gin-flight-booking/internal/model"
	apperrors "go-gin-flight-booking/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupReservationTestRouter(mockService *serviceMocks.ReservationServiceMock) *gin.Engine {
	router := newTestRouter()
	handler.NewReservationHandler(mockService).RegisterRoutes(router)
	return router
}

func TestCreateReservation(t *testing.T) {
	validRequest := model.BookReservationRequest{FlightID: 1, PassengerName: "Ada Obi", PassengerEmail: "ada@example.com"}

	t.Run("Success", func(t *testing.T) {
		mockService := serviceMocks.NewReservationServiceMock()
		router := setupReservationTestRouter(mockService)

		mockService.On("Book", mock.Anything, validRequest).Return(&model.Reservation{
			ID: 1, PassengerName: "Ada Obi", PassengerEmail: "ada@example.com",
			ReservationCode: "0a1b2c3d4e", FlightID: 1, Status: true, CreatedAt: time.Now(),
		}, nil).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/reservations/create/", validRequest))

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "0a1b2c3d4e", body["reservation_code"])
		assert.Equal(t, float64(1), body["flight"])
		assert.Equal(t, true, body["status"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - FlightNotFound", func(t *testing.T) {
		mockService := serviceMocks.NewReservationServiceMock()
		router := setupReservationTestRouter(mockService)

		mockService.On("Book", mock.Anything, mock.Anything).Return(nil, apperrors.ErrFlightNotFound).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/reservations/create/", validRequest))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Flight not found", decodeBody(t, w)["error"])
	})

	t.Run("Failed - FlightFull", func(t *testing.T) {
		mockService := serviceMocks.NewReservationServiceMock()
		router := setupReservationTestRouter(mockService)

		mockService.On("Book", mock.Anything, mock.Anything).Return(nil, apperrors.ErrFlightFull).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/reservations/create/", validRequest))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Flight is fully booked", decodeBody(t, w)["error"])
	})

	t.Run("Failed - Unexpected", func(t *testing.T) {
		mockService := serviceMocks.NewReservationServiceMock()
		router := setupReservationTestRouter(mockService)

		mockService.On("Book", mock.Anything, mock.Anything).Return(nil, errors.New("pq: relation \"reservations\" does not exist")).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/reservations/create/", validRequest))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", decodeBody(t, w)["error"])
		assert.NotContains(t, w.Body.String(), "relation")
	})

	t.Run("Failed - MissingFlightWithInvalidPassenger", func(t *testing.T) {
		mockService := serviceMocks.NewReservationServiceMock()
		router := setupReservationTestRouter(mockService)

		badRequest := model.BookReservationRequest{FlightID: 999, PassengerName: "", PassengerEmail: "not-an-email"}
		mockService.On("Book", mock.Anything, badRequest).Return(nil, apperrors.ErrFlightNotFound).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/reservations/create/", map[string]interface{}{
			"flight": 999, "passenger_email": "not-an-email",
		}))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Flight not found", decodeBody(t, w)["error"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - NonPositiveFlightReachesService", func(t *testing.T) {
		mockService := serviceMocks.NewReservationServiceMock()
		router := setupReservationTestRouter(mockService)

		mockService.On("Book", mock.Anything, mock.MatchedBy(func(r model.BookReservationRequest) bool {
			return r.FlightID == 0
		})).Return(nil, apperrors.ErrFlightNotFound).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/reservations/create/", map[string]interface{}{
			"flight": 0, "passenger_name": "Ada", "passenger_email": "ada@example.com",
		}))

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - InvalidPassengerFields", func(t *testing.T) {
		mockService := serviceMocks.NewReservationServiceMock()
		router := setupReservationTestRouter(mockService)

		mockService.On("Book", mock.Anything, mock.Anything).Return(nil, &apperrors.ValidationError{
			Fields: map[string]string{"passenger_email": "Enter a valid email address."},
		}).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/reservations/create/", model.BookReservationRequest{
			FlightID: 1, PassengerName: "Ada", PassengerEmail: "not-an-email",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Invalid request data", body["error"])
		fields := body["fields"].(map[string]interface{})
		assert.Equal(t, "Enter a valid email address.", fields["passenger_email"])
	})

	t.Run("Failed - WrongFlightType", func(t *testing.T) {
		mockService := serviceMocks.NewReservationServiceMock()
		router := setupReservationTestRouter(mockService)

		w := serve(router, createJSONHTTPRequest("POST", "/reservations/create/", map[string]interface{}{
			"flight": "one", "passenger_name": "Ada", "passenger_email": "ada@example.com",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request format", decodeBody(t, w)["error"])
		mockService.AssertNotCalled(t, "Book", mock.Anything, mock.Anything)
	})

	t.Run("Failed - InvalidJSON", func(t *testing.T) {
		mockService := serviceMocks.NewReservationServiceMock()
		router := setupReservationTestRouter(mockService)

		w := serve(router, createJSONHTTPRequest("POST", "/reservations/create/", InvalidJSON))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request format", decodeBody(t, w)["error"])
	})
}

func TestUpdateReservation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := serviceMocks.NewReservationServiceMock()
		router := setupReservationTestRouter(mockService)

		inactive := false
		mockService.On("Update", mock.Anything, 3, model.UpdateReservationParams{Status: &inactive}).
			Return(&model.Reservation{ID: 3, Status: false}, nil).Once()

		w := serve(router, createJSONHTTPRequest("PATCH", "/reservations/3/update/", map[string]interface{}{
			"status": false, "reservation_code": "ignored000",
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ReactivateFull", func(t *testing.T) {
		mockService := serviceMocks.NewReservationServiceMock()
		router := setupReservationTestRouter(mockService)

		mockService.On("Update", mock.Anything, 3, mock.Anything).Return(nil, apperrors.ErrFlightFull).Once()

		w := serve(router, createJSONHTTPRequest("PATCH", "/reservations/3/update/", map[string]interface{}{"status": true}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		mockService := serviceMocks.NewReservationServiceMock()
		router := setupReservationTestRouter(mockService)

		mockService.On("Update", mock.Anything, 404, mock.Anything).Return(nil, apperrors.ErrReservationNotFound).Once()

		w := serve(router, createJSONHTTPRequest("PATCH", "/reservations/404/update/", map[string]interface{}{"status": true}))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Reservation not found", decodeBody(t, w)["error"])
	})
}

func TestGetAndDeleteReservation(t *testing.T) {
	mockService := serviceMocks.NewReservationServiceMock()
	router := setupReservationTestRouter(mockService)

	mockService.On("List", mock.Anything).Return([]*model.Reservation{{ID: 1}, {ID: 2}}, nil).Once()
	mockService.On("GetByID", mock.Anything, 9).Return(nil, apperrors.ErrReservationNotFound).Once()
	mockService.On("Delete", mock.Anything, 1).Return(nil).Once()

	w := serve(router, createJSONHTTPRequest("GET", "/reservations/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, createJSONHTTPRequest("GET", "/reservations/9/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, createJSONHTTPRequest("GET", "/reservations/abc/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, createJSONHTTPRequest("DELETE", "/reservations/1/delete/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	mockService.AssertExpectations(t)
}
