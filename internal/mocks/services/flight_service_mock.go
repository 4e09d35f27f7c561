package services

import (
	"context"
	"go-gin-flight-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type FlightServiceMock struct {
	mock.Mock
}

func NewFlightServiceMock() *FlightServiceMock {
	return &FlightServiceMock{}
}

func (m *FlightServiceMock) flight(args mock.Arguments) (*model.Flight, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Flight), args.Error(1)
}

func (m *FlightServiceMock) List(ctx context.Context, filter model.FlightFilter) ([]*model.Flight, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Flight), args.Error(1)
}

func (m *FlightServiceMock) GetByID(ctx context.Context, id int) (*model.Flight, error) {
	return m.flight(m.Called(ctx, id))
}

func (m *FlightServiceMock) ListReservations(ctx context.Context, id int) ([]*model.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Reservation), args.Error(1)
}

func (m *FlightServiceMock) Create(ctx context.Context, flight *model.Flight) (*model.Flight, error) {
	return m.flight(m.Called(ctx, flight))
}

func (m *FlightServiceMock) Update(ctx context.Context, id int, params model.UpdateFlightParams) (*model.Flight, error) {
	return m.flight(m.Called(ctx, id, params))
}

func (m *FlightServiceMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
