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

type FlightService interface {
	List(ctx context.Context, filter model.FlightFilter) ([]*model.Flight, error)
	GetByID(ctx context.Context, id int) (*model.Flight, error)
	// ListReservations 列出此航班的所有訂位
	ListReservations(ctx context.Context, id int) ([]*model.Reservation, error)
	Create(ctx context.Context, flight *model.Flight) (*model.Flight, error)
	Update(ctx context.Context, id int, params model.UpdateFlightParams) (*model.Flight, error)
	Delete(ctx context.Context, id int) error
}

type FlightServiceImpl struct {
	repo            repository.FlightRepository
	reservationRepo repository.ReservationRepository
	cache           cache.FlightCache
}

// NewFlightService flightCache 可為 nil，表示不使用快取
func NewFlightService(repo repository.FlightRepository, reservationRepo repository.ReservationRepository, flightCache cache.FlightCache) FlightService {
	return &FlightServiceImpl{repo: repo, reservationRepo: reservationRepo, cache: flightCache}
}

func (s *FlightServiceImpl) List(ctx context.Context, filter model.FlightFilter) ([]*model.Flight, error) {
	return s.repo.List(ctx, filter)
}

// GetByID 先讀快取，未命中再查 DB 並回寫；快取錯誤不影響結果
func (s *FlightServiceImpl) GetByID(ctx context.Context, id int) (*model.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.WithComponent("service").Warn("flight cache get failed", zap.Int("flight_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	flight, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, flight); err != nil {
			logger.WithComponent("service").Warn("flight cache set failed", zap.Int("flight_id", id), zap.Error(err))
		}
	}
	return flight, nil
}

func (s *FlightServiceImpl) ListReservations(ctx context.Context, id int) ([]*model.Reservation, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.reservationRepo.ListByFlightID(ctx, id)
}

func (s *FlightServiceImpl) Create(ctx context.Context, flight *model.Flight) (*model.Flight, error) {
	if !flight.HasValidSchedule() {
		return nil, apperrors.ErrInvalidSchedule
	}
	return s.repo.Create(ctx, flight)
}

func (s *FlightServiceImpl) Update(ctx context.Context, id int, params model.UpdateFlightParams) (*model.Flight, error) {
	if params.IsEmpty() {
		return nil, apperrors.ErrInvalidInput
	}

	// 只改其中一個時間時，要與既有的另一個時間比對
	if params.DepartureTime != nil || params.ArrivalTime != nil {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		merged := *current
		if params.DepartureTime != nil {
			merged.DepartureTime = *params.DepartureTime
		}
		if params.ArrivalTime != nil {
			merged.ArrivalTime = *params.ArrivalTime
		}
		if !merged.HasValidSchedule() {
			return nil, apperrors.ErrInvalidSchedule
		}
	}

	flight, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return flight, nil
}

func (s *FlightServiceImpl) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *FlightServiceImpl) invalidate(ctx context.Context, id int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		logger.WithComponent("service").Warn("flight cache invalidate failed", zap.Int("flight_id", id), zap.Error(err))
	}
}
