package service

import (
	"context"
	"errors"
	"fmt"
	"go-gin-flight-booking/internal/database"
	"go-gin-flight-booking/internal/events"
	"go-gin-flight-booking/internal/model"
	"go-gin-flight-booking/internal/queue"
	"go-gin-flight-booking/internal/repository"
	apperrors "go-gin-flight-booking/pkg/app_errors"
	"go-gin-flight-booking/pkg/logger"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const afterBookedTimeout = 5 * time.Second

type ReservationService interface {
	// 訂位：鎖航班 → 檢查座位 → 產生代碼 → 寫入，提交後非同步寄送確認信
	Book(ctx context.Context, req model.BookReservationRequest) (*model.Reservation, error)
	List(ctx context.Context) ([]*model.Reservation, error)
	GetByID(ctx context.Context, id int) (*model.Reservation, error)
	Update(ctx context.Context, id int, params model.UpdateReservationParams) (*model.Reservation, error)
	Delete(ctx context.Context, id int) error
}

type ReservationServiceImpl struct {
	transactor      database.Transactor
	flightRepo      repository.FlightRepository
	reservationRepo repository.ReservationRepository
	notifications   queue.NotificationQueue
	publisher       events.Publisher
	codeAttempts    int
	generateCode    CodeGenerator
}

type ReservationServiceOption func(*ReservationServiceImpl)

// WithCodeGenerator 替換訂位代碼產生器（測試用）
func WithCodeGenerator(gen CodeGenerator) ReservationServiceOption {
	return func(s *ReservationServiceImpl) {
		s.generateCode = gen
	}
}

func NewReservationService(
	transactor database.Transactor,
	flightRepo repository.FlightRepository,
	reservationRepo repository.ReservationRepository,
	notifications queue.NotificationQueue,
	publisher events.Publisher,
	codeAttempts int,
	opts ...ReservationServiceOption,
) ReservationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if codeAttempts < 1 {
		codeAttempts = 1
	}
	s := &ReservationServiceImpl{
		transactor:      transactor,
		flightRepo:      flightRepo,
		reservationRepo: reservationRepo,
		notifications:   notifications,
		publisher:       publisher,
		codeAttempts:    codeAttempts,
		generateCode:    GenerateReservationCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ReservationServiceImpl) Book(ctx context.Context, req model.BookReservationRequest) (*model.Reservation, error) {
	name := strings.TrimSpace(req.PassengerName)
	email := strings.TrimSpace(req.PassengerEmail)

	var (
		flight      *model.Flight
		reservation *model.Reservation
	)
	for attempt := 1; attempt <= s.codeAttempts; attempt++ {
		err := s.transactor.WithTx(ctx, func(tx pgx.Tx) error {
			// 1. 鎖住航班列，同一航班的訂位在此序列化
			var err error
			flight, err = s.flightRepo.FindByIDForUpdate(ctx, tx, req.FlightID)
			if err != nil {
				return err
			}

			// 2. 檢查剩餘座位
			count, err := s.reservationRepo.CountActiveByFlight(ctx, tx, flight.ID)
			if err != nil {
				return err
			}
			if count >= flight.Capacity {
				return apperrors.ErrFlightFull
			}

			// 3. 航班存在且有空位後才驗證乘客欄位
			if err := checkPassenger(&name, &email); err != nil {
				return err
			}

			// 4. 寫入訂位
			reservation, err = s.reservationRepo.Create(ctx, tx, &model.Reservation{
				PassengerName:   name,
				PassengerEmail:  email,
				ReservationCode: s.generateCode(flight.ID, email),
				FlightID:        flight.ID,
				Status:          true,
			})
			return err
		})

		if errors.Is(err, apperrors.ErrDuplicateReservationCode) {
			logger.WithComponent("service").Warn("reservation code collision, retrying",
				zap.Int("flight_id", req.FlightID),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.afterBooked(ctx, flight, reservation)
		return reservation, nil
	}

	return nil, fmt.Errorf("%w: no unique reservation code after %d attempts", apperrors.ErrInternalServerError, s.codeAttempts)
}

// afterBooked 訂位已提交；通知與事件失敗只記錄，不影響回應
func (s *ReservationServiceImpl) afterBooked(ctx context.Context, flight *model.Flight, reservation *model.Reservation) {
	log := logger.WithComponent("service").With(zap.Int("reservation_id", reservation.ID))

	// 訂位已提交：請求取消不應讓通知跟著丟失，只保留上限時間
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), afterBookedTimeout)
	defer cancel()

	if err := s.notifications.PublishNotification(ctx, model.NewReservationNotification(flight, reservation)); err != nil {
		log.Warn("failed to enqueue confirmation email", zap.Error(err))
	}
	if err := s.publisher.PublishReservationCreated(ctx, reservation); err != nil {
		log.Warn("failed to publish reservation event", zap.Error(err))
	}
}

func (s *ReservationServiceImpl) List(ctx context.Context) ([]*model.Reservation, error) {
	return s.reservationRepo.List(ctx)
}

func (s *ReservationServiceImpl) GetByID(ctx context.Context, id int) (*model.Reservation, error) {
	return s.reservationRepo.FindByID(ctx, id)
}

// Update 重新啟用已取消的訂位時，需在航班鎖內重新檢查座位
func (s *ReservationServiceImpl) Update(ctx context.Context, id int, params model.UpdateReservationParams) (*model.Reservation, error) {
	if params.IsEmpty() {
		return nil, apperrors.ErrInvalidInput
	}
	if params.PassengerName != nil {
		name := strings.TrimSpace(*params.PassengerName)
		params.PassengerName = &name
	}
	if params.PassengerEmail != nil {
		email := strings.TrimSpace(*params.PassengerEmail)
		params.PassengerEmail = &email
	}
	if err := checkPassenger(params.PassengerName, params.PassengerEmail); err != nil {
		return nil, err
	}

	var updated *model.Reservation
	err := s.transactor.WithTx(ctx, func(tx pgx.Tx) error {
		current, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if params.Status != nil && *params.Status && !current.Status {
			flight, err := s.flightRepo.FindByIDForUpdate(ctx, tx, current.FlightID)
			if err != nil {
				return err
			}
			count, err := s.reservationRepo.CountActiveByFlight(ctx, tx, flight.ID)
			if err != nil {
				return err
			}
			if count >= flight.Capacity {
				return apperrors.ErrFlightFull
			}
		}

		updated, err = s.reservationRepo.Update(ctx, tx, id, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ReservationServiceImpl) Delete(ctx context.Context, id int) error {
	return s.reservationRepo.Delete(ctx, id)
}
