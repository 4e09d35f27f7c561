package repository

import (
	"context"
	"errors"
	"fmt"
	"go-gin-flight-booking/internal/model"
	apperrors "go-gin-flight-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository interface {
	List(ctx context.Context) ([]*model.Reservation, error)
	ListByFlightID(ctx context.Context, flightID int) ([]*model.Reservation, error)
	FindByID(ctx context.Context, id int) (*model.Reservation, error)
	Delete(ctx context.Context, id int) error

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, reservation *model.Reservation) (*model.Reservation, error)
	CountActiveByFlight(ctx context.Context, tx pgx.Tx, flightID int) (int, error)
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int) (*model.Reservation, error)
	Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateReservationParams) (*model.Reservation, error)
}

type ReservationRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &ReservationRepositoryImpl{
		pool: pool,
	}
}

const reservationColumns = `id, passenger_name, passenger_email, reservation_code, flight_id, status, created_at`

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var reservation model.Reservation
	err := row.Scan(
		&reservation.ID,
		&reservation.PassengerName,
		&reservation.PassengerEmail,
		&reservation.ReservationCode,
		&reservation.FlightID,
		&reservation.Status,
		&reservation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, reservation *model.Reservation) (*model.Reservation, error) {
	query := `
		INSERT INTO reservations (passenger_name, passenger_email, reservation_code, flight_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + reservationColumns

	created, err := scanReservation(tx.QueryRow(ctx, query,
		reservation.PassengerName,
		reservation.PassengerEmail,
		reservation.ReservationCode,
		reservation.FlightID,
		reservation.Status,
	))
	if err != nil {
		if constraint, ok := constraintViolation(err, uniqueViolation); ok && constraint == "reservations_reservation_code_key" {
			return nil, apperrors.ErrDuplicateReservationCode
		}
		if _, ok := constraintViolation(err, foreignKeyViolation); ok {
			return nil, apperrors.ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	return created, nil
}

func (r *ReservationRepositoryImpl) List(ctx context.Context) ([]*model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC, id DESC`
	return r.queryReservations(ctx, query)
}

func (r *ReservationRepositoryImpl) ListByFlightID(ctx context.Context, flightID int) ([]*model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE flight_id = $1 ORDER BY created_at DESC, id DESC`
	return r.queryReservations(ctx, query, flightID)
}

func (r *ReservationRepositoryImpl) queryReservations(ctx context.Context, query string, args ...any) ([]*model.Reservation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]*model.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *ReservationRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}

	return reservation, nil
}

func (r *ReservationRepositoryImpl) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int) (*model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`

	reservation, err := scanReservation(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}

	return reservation, nil
}

func (r *ReservationRepositoryImpl) CountActiveByFlight(ctx context.Context, tx pgx.Tx, flightID int) (int, error) {
	var count int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM reservations WHERE flight_id = $1 AND status`, flightID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ReservationRepositoryImpl) Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateReservationParams) (*model.Reservation, error) {
	var set setClause
	if params.PassengerName != nil {
		set.add("passenger_name", *params.PassengerName)
	}
	if params.PassengerEmail != nil {
		set.add("passenger_email", *params.PassengerEmail)
	}
	if params.Status != nil {
		set.add("status", *params.Status)
	}

	if set.empty() {
		return nil, apperrors.ErrInvalidInput
	}

	sets, idArg := set.build(id)
	query := fmt.Sprintf(`
		UPDATE reservations
		SET %s
		WHERE id = %s
		RETURNING %s
	`, sets, idArg, reservationColumns)

	reservation, err := scanReservation(tx.QueryRow(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	return reservation, nil
}

func (r *ReservationRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrReservationNotFound
	}

	return nil
}
