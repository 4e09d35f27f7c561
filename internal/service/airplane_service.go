package service

import (
	"context"
	"go-gin-flight-booking/internal/cache"
	"go-gin-flight-booking/internal/model"
	"go-gin-flight-booking/internal/repository"
	apperrors "go-gin-flight-booking/pkg/app_errors"
	"go-gin-flight-booking/pkg/logger"

	"go.uber.org/zap"
)

type AirplaneService interface {
	List(ctx context.Context) ([]*model.Airplane, error)
	GetByID(ctx context.Context, id int) (*model.Airplane, error)
	// ListFlights 列出指派給此飛機的航班
	ListFlights(ctx context.Context, id int) ([]*model.Flight, error)
	Create(ctx context.Context, airplane *model.Airplane) (*model.Airplane, error)
	Update(ctx context.Context, id int, params model.UpdateAirplaneParams) (*model.Airplane, error)
	// Delete 連同航班與訂位一併刪除
	Delete(ctx context.Context, id int) error
}

type AirplaneServiceImpl struct {
	repo        repository.AirplaneRepository
	flightRepo  repository.FlightRepository
	flightCache cache.FlightCache
}

// NewAirplaneService flightCache 可為 nil
func NewAirplaneService(repo repository.AirplaneRepository, flightRepo repository.FlightRepository, flightCache cache.FlightCache) AirplaneService {
	return &AirplaneServiceImpl{repo: repo, flightRepo: flightRepo, flightCache: flightCache}
}

func (s *AirplaneServiceImpl) List(ctx context.Context) ([]*model.Airplane, error) {
	return s.repo.List(ctx)
}

func (s *AirplaneServiceImpl) GetByID(ctx context.Context, id int) (*model.Airplane, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AirplaneServiceImpl) ListFlights(ctx context.Context, id int) ([]*model.Flight, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.flightRepo.ListByAirplaneID(ctx, id)
}

func (s *AirplaneServiceImpl) Create(ctx context.Context, airplane *model.Airplane) (*model.Airplane, error) {
	if airplane.Capacity <= 0 || airplane.ProductionYear <= 0 {
		return nil, apperrors.ErrInvalidInput
	}
	// 先查一次給出友善錯誤；併發下仍由 unique constraint 兜底
	exists, err := s.repo.ExistsByTailNumber(ctx, airplane.TailNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateTailNumber
	}
	return s.repo.Create(ctx, airplane)
}

func (s *AirplaneServiceImpl) Update(ctx context.Context, id int, params model.UpdateAirplaneParams) (*model.Airplane, error) {
	if params.IsEmpty() {
		return nil, apperrors.ErrInvalidInput
	}
	if (params.Capacity != nil && *params.Capacity <= 0) || (params.ProductionYear != nil && *params.ProductionYear <= 0) {
		return nil, apperrors.ErrInvalidInput
	}
	return s.repo.Update(ctx, id, params)
}

func (s *AirplaneServiceImpl) Delete(ctx context.Context, id int) error {
	if s.flightCache == nil {
		return s.repo.Delete(ctx, id)
	}

	// 刪除會連帶刪掉航班，先記下要失效的快取
	flights, err := s.flightRepo.ListByAirplaneID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, f := range flights {
		if err := s.flightCache.Invalidate(ctx, f.ID); err != nil {
			logger.WithComponent("service").Warn("flight cache invalidate failed", zap.Int("flight_id", f.ID), zap.Error(err))
		}
	}
	return nil
}
