package model

import "time"

// Flight 航班模型
type Flight struct {
	ID            int       `json:"id" db:"id"`
	FlightNumber  string    `json:"flight_number" db:"flight_number"`
	Departure     string    `json:"departure" db:"departure"`
	Destination   string    `json:"destination" db:"destination"`
	DepartureTime time.Time `json:"departure_time" db:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time" db:"arrival_time"`
	AirplaneID    int       `json:"airplane" db:"airplane_id"`

	// Capacity of the assigned airplane; only populated by booking lookups.
	Capacity int `json:"-" db:"-"`
}

// HasValidSchedule reports whether the flight lands after it takes off.
func (f *Flight) HasValidSchedule() bool {
	return f.ArrivalTime.After(f.DepartureTime)
}

type UpdateFlightParams struct {
	FlightNumber  *string
	Departure     *string
	Destination   *string
	DepartureTime *time.Time
	ArrivalTime   *time.Time
	AirplaneID    *int
}

func (p UpdateFlightParams) IsEmpty() bool {
	return p.FlightNumber == nil && p.Departure == nil && p.Destination == nil &&
		p.DepartureTime == nil && p.ArrivalTime == nil && p.AirplaneID == nil
}

// FlightFilter 航班查詢條件；零值代表不過濾
type FlightFilter struct {
	Departure     string
	Destination   string
	DepartureDate *time.Time
	ArrivalDate   *time.Time
}

// CreateFlightRequest 建立航班請求
type CreateFlightRequest struct {
	FlightNumber  string    `json:"flight_number" binding:"required,max=10"`
	Departure     string    `json:"departure" binding:"required,max=100"`
	Destination   string    `json:"destination" binding:"required,max=100"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	AirplaneID    int       `json:"airplane" binding:"required,min=1"`
}

func (r CreateFlightRequest) ToFlight() *Flight {
	return &Flight{
		FlightNumber:  r.FlightNumber,
		Departure:     r.Departure,
		Destination:   r.Destination,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
		AirplaneID:    r.AirplaneID,
	}
}

// UpdateFlightRequest 部分更新；未提供的欄位維持原值
type UpdateFlightRequest struct {
	FlightNumber  *string    `json:"flight_number" binding:"omitempty,min=1,max=10"`
	Departure     *string    `json:"departure" binding:"omitempty,min=1,max=100"`
	Destination   *string    `json:"destination" binding:"omitempty,min=1,max=100"`
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
	AirplaneID    *int       `json:"airplane" binding:"omitempty,min=1"`
}

func (r UpdateFlightRequest) ToParams() UpdateFlightParams {
	return UpdateFlightParams(r)
}
