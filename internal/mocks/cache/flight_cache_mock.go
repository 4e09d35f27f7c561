package cache

import (
	"context"
	"go-gin-flight-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type FlightCacheMock struct {
	mock.Mock
}

func NewFlightCacheMock() *FlightCacheMock {
	return &FlightCacheMock{}
}

func (m *FlightCacheMock) Get(ctx context.Context, flightID int) (*model.Flight, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Flight), args.Error(1)
}

func (m *FlightCacheMock) Set(ctx context.Context, flight *model.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *FlightCacheMock) Invalidate(ctx context.Context, flightID int) error {
	args := m.Called(ctx, flightID)
	return args.Error(0)
}
