package events

import (
	"context"
	"go-gin-flight-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type PublisherMock struct {
	mock.Mock
}

func NewPublisherMock() *PublisherMock {
	return &PublisherMock{}
}

func (m *PublisherMock) PublishReservationCreated(ctx context.Context, reservation *model.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
