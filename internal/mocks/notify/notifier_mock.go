package notify

import (
	"context"
	"go-gin-flight-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type NotifierMock struct {
	mock.Mock
}

func NewNotifierMock() *NotifierMock {
	return &NotifierMock{}
}

func (m *NotifierMock) SendConfirmation(ctx context.Context, notification *model.ReservationNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}
