package events

import (
	"context"
	"go-gin-flight-booking/internal/model"
	"time"
)

const EventReservationCreated = "reservation.created"

// ReservationEvent 是寫入事件流的訂位事件
type ReservationEvent struct {
	Type            string    `json:"type"`
	ReservationID   int       `json:"reservation_id"`
	ReservationCode string    `json:"reservation_code"`
	FlightID        int       `json:"flight_id"`
	PassengerEmail  string    `json:"passenger_email"`
	Status          bool      `json:"status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func NewReservationCreatedEvent(reservation *model.Reservation) ReservationEvent {
	return ReservationEvent{
		Type:            EventReservationCreated,
		ReservationID:   reservation.ID,
		ReservationCode: reservation.ReservationCode,
		FlightID:        reservation.FlightID,
		PassengerEmail:  reservation.PassengerEmail,
		Status:          reservation.Status,
		OccurredAt:      time.Now().UTC(),
	}
}

type Publisher interface {
	PublishReservationCreated(ctx context.Context, reservation *model.Reservation) error
	Close() error
}

// NopPublisher 在未設定 Kafka 時使用
type NopPublisher struct{}

func (NopPublisher) PublishReservationCreated(context.Context, *model.Reservation) error { return nil }

func (NopPublisher) Close() error { return nil }
