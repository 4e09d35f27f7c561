package apperrors

import "errors"

var (
	ErrAirplaneNotFound    = errors.New("airplane not found")
	ErrFlightNotFound      = errors.New("flight not found")
	ErrReservationNotFound = errors.New("reservation not found")

	ErrFlightFull = errors.New("flight is fully booked")

	ErrDuplicateTailNumber      = errors.New("duplicate tail number")
	ErrDuplicateFlightNumber    = errors.New("duplicate flight number")
	ErrDuplicateReservationCode = errors.New("duplicate reservation code")

	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidSchedule     = errors.New("arrival time must be after departure time")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInternalServerError = errors.New("internal server error")
)

// ValidationError 帶有欄位層級訊息的輸入錯誤，errors.Is(err, ErrInvalidInput) 成立
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrInvalidInput.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
