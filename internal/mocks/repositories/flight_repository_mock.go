package repositories

import (
	"context"
	"go-gin-flight-booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type FlightRepositoryMock struct {
	mock.Mock
}

func NewFlightRepositoryMock() *FlightRepositoryMock {
	return &FlightRepositoryMock{}
}

func (m *FlightRepositoryMock) flight(args mock.Arguments) (*model.Flight, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Flight), args.Error(1)
}

func (m *FlightRepositoryMock) flights(args mock.Arguments) ([]*model.Flight, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Flight), args.Error(1)
}

func (m *FlightRepositoryMock) Create(ctx context.Context, flight *model.Flight) (*model.Flight, error) {
	return m.flight(m.Called(ctx, flight))
}

func (m *FlightRepositoryMock) List(ctx context.Context, filter model.FlightFilter) ([]*model.Flight, error) {
	return m.flights(m.Called(ctx, filter))
}

func (m *FlightRepositoryMock) ListByAirplaneID(ctx context.Context, airplaneID int) ([]*model.Flight, error) {
	return m.flights(m.Called(ctx, airplaneID))
}

func (m *FlightRepositoryMock) FindByID(ctx context.Context, id int) (*model.Flight, error) {
	return m.flight(m.Called(ctx, id))
}

func (m *FlightRepositoryMock) Update(ctx context.Context, id int, params model.UpdateFlightParams) (*model.Flight, error) {
	return m.flight(m.Called(ctx, id, params))
}

func (m *FlightRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *FlightRepositoryMock) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int) (*model.Flight, error) {
	return m.flight(m.Called(ctx, tx, id))
}
