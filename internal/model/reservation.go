package model

import "time"

// Reservation 訂位模型
type Reservation struct {
	ID              int       `json:"id" db:"id"`
	PassengerName   string    `json:"passenger_name" db:"passenger_name"`
	PassengerEmail  string    `json:"passenger_email" db:"passenger_email"`
	ReservationCode string    `json:"reservation_code" db:"reservation_code"`
	FlightID        int       `json:"flight" db:"flight_id"`
	Status          bool      `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// IsActive 檢查訂位是否仍佔用座位
func (r *Reservation) IsActive() bool {
	return r.Status
}

// BookReservationRequest 訂位請求；欄位內容由 service 在找到航班後才驗證
type BookReservationRequest struct {
	FlightID       int    `json:"flight"`
	PassengerName  string `json:"passenger_name"`
	PassengerEmail string `json:"passenger_email"`
}

// UpdateReservationRequest 部分更新；reservation_code、flight、created_at 為唯讀，傳入時忽略
type UpdateReservationRequest struct {
	PassengerName  *string `json:"passenger_name" binding:"omitempty,min=1,max=100"`
	PassengerEmail *string `json:"passenger_email" binding:"omitempty,email,max=254"`
	Status         *bool   `json:"status"`
}

func (r UpdateReservationRequest) ToParams() UpdateReservationParams {
	return UpdateReservationParams(r)
}

type UpdateReservationParams struct {
	PassengerName  *string
	PassengerEmail *string
	Status         *bool
}

func (p UpdateReservationParams) IsEmpty() bool {
	return p.PassengerName == nil && p.PassengerEmail == nil && p.Status == nil
}

// ReservationNotification is the payload queued for the confirmation email.
// It carries a snapshot of the flight so the worker does not hit the database.
type ReservationNotification struct {
	ReservationID   int       `json:"reservation_id"`
	ReservationCode string    `json:"reservation_code"`
	PassengerName   string    `json:"passenger_name"`
	PassengerEmail  string    `json:"passenger_email"`
	FlightNumber    string    `json:"flight_number"`
	Departure       string    `json:"departure"`
	Destination     string    `json:"destination"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
}

func NewReservationNotification(flight *Flight, reservation *Reservation) *ReservationNotification {
	return &ReservationNotification{
		ReservationID:   reservation.ID,
		ReservationCode: reservation.ReservationCode,
		PassengerName:   reservation.PassengerName,
		PassengerEmail:  reservation.PassengerEmail,
		FlightNumber:    flight.FlightNumber,
		Departure:       flight.Departure,
		Destination:     flight.Destination,
		DepartureTime:   flight.DepartureTime,
		ArrivalTime:     flight.ArrivalTime,
	}
}
