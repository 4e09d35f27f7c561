package services

import (
	"context"
	"go-gin-flight-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type AirplaneServiceMock struct {
	mock.Mock
}

func NewAirplaneServiceMock() *AirplaneServiceMock {
	return &AirplaneServiceMock{}
}

func (m *AirplaneServiceMock) airplane(args mock.Arguments) (*model.Airplane, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Airplane), args.Error(1)
}

func (m *AirplaneServiceMock) List(ctx context.Context) ([]*model.Airplane, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Airplane), args.Error(1)
}

func (m *AirplaneServiceMock) GetByID(ctx context.Context, id int) (*model.Airplane, error) {
	return m.airplane(m.Called(ctx, id))
}

func (m *AirplaneServiceMock) ListFlights(ctx context.Context, id int) ([]*model.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Flight), args.Error(1)
}

func (m *AirplaneServiceMock) Create(ctx context.Context, airplane *model.Airplane) (*model.Airplane, error) {
	return m.airplane(m.Called(ctx, airplane))
}

func (m *AirplaneServiceMock) Update(ctx context.Context, id int, params model.UpdateAirplaneParams) (*model.Airplane, error) {
	return m.airplane(m.Called(ctx, id, params))
}

func (m *AirplaneServiceMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
