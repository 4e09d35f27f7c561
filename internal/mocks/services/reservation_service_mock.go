package services

import (
	"context"
	"go-gin-flight-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type ReservationServiceMock struct {
	mock.Mock
}

func NewReservationServiceMock() *ReservationServiceMock {
	return &ReservationServiceMock{}
}

func (m *ReservationServiceMock) reservation(args mock.Arguments) (*model.Reservation, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *ReservationServiceMock) Book(ctx context.Context, req model.BookReservationRequest) (*model.Reservation, error) {
	return m.reservation(m.Called(ctx, req))
}

func (m *ReservationServiceMock) List(ctx context.Context) ([]*model.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Reservation), args.Error(1)
}

func (m *ReservationServiceMock) GetByID(ctx context.Context, id int) (*model.Reservation, error) {
	return m.reservation(m.Called(ctx, id))
}

func (m *ReservationServiceMock) Update(ctx context.Context, id int, params model.UpdateReservationParams) (*model.Reservation, error) {
	return m.reservation(m.Called(ctx, id, params))
}

func (m *ReservationServiceMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
