package repositories

import (
	"context"
	"go-gin-flight-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type AirplaneRepositoryMock struct {
	mock.Mock
}

func NewAirplaneRepositoryMock() *AirplaneRepositoryMock {
	return &AirplaneRepositoryMock{}
}

func (m *AirplaneRepositoryMock) Create(ctx context.Context, airplane *model.Airplane) (*model.Airplane, error) {
	args := m.Called(ctx, airplane)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Airplane), args.Error(1)
}

func (m *AirplaneRepositoryMock) List(ctx context.Context) ([]*model.Airplane, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Airplane), args.Error(1)
}

func (m *AirplaneRepositoryMock) FindByID(ctx context.Context, id int) (*model.Airplane, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Airplane), args.Error(1)
}

func (m *AirplaneRepositoryMock) ExistsByTailNumber(ctx context.Context, tailNumber string) (bool, error) {
	args := m.Called(ctx, tailNumber)
	return args.Bool(0), args.Error(1)
}

func (m *AirplaneRepositoryMock) Update(ctx context.Context, id int, params model.UpdateAirplaneParams) (*model.Airplane, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Airplane), args.Error(1)
}

func (m *AirplaneRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
