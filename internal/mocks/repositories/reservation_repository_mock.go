package repositories

import (
	"context"
	"go-gin-flight-booking/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type ReservationRepositoryMock struct {
	mock.Mock
}

func NewReservationRepositoryMock() *ReservationRepositoryMock {
	return &ReservationRepositoryMock{}
}

func (m *ReservationRepositoryMock) reservation(args mock.Arguments) (*model.Reservation, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *ReservationRepositoryMock) reservations(args mock.Arguments) ([]*model.Reservation, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Reservation), args.Error(1)
}

func (m *ReservationRepositoryMock) List(ctx context.Context) ([]*model.Reservation, error) {
	return m.reservations(m.Called(ctx))
}

func (m *ReservationRepositoryMock) ListByFlightID(ctx context.Context, flightID int) ([]*model.Reservation, error) {
	return m.reservations(m.Called(ctx, flightID))
}

func (m *ReservationRepositoryMock) FindByID(ctx context.Context, id int) (*model.Reservation, error) {
	return m.reservation(m.Called(ctx, id))
}

func (m *ReservationRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ReservationRepositoryMock) Create(ctx context.Context, tx pgx.Tx, reservation *model.Reservation) (*model.Reservation, error) {
	return m.reservation(m.Called(ctx, tx, reservation))
}

func (m *ReservationRepositoryMock) CountActiveByFlight(ctx context.Context, tx pgx.Tx, flightID int) (int, error) {
	args := m.Called(ctx, tx, flightID)
	return args.Int(0), args.Error(1)
}

func (m *ReservationRepositoryMock) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int) (*model.Reservation, error) {
	return m.reservation(m.Called(ctx, tx, id))
}

func (m *ReservationRepositoryMock) Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateReservationParams) (*model.Reservation, error) {
	return m.reservation(m.Called(ctx, tx, id, params))
}
