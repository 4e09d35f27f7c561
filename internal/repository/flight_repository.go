package repository

import (
	"context"
	"errors"
	"fmt"
	"go-gin-flight-booking/internal/model"
	apperrors "go-gin-flight-booking/pkg/app_errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *model.Flight) (*model.Flight, error)
	List(ctx context.Context, filter model.FlightFilter) ([]*model.Flight, error)
	ListByAirplaneID(ctx context.Context, airplaneID int) ([]*model.Flight, error)
	FindByID(ctx context.Context, id int) (*model.Flight, error)
	Update(ctx context.Context, id int, params model.UpdateFlightParams) (*model.Flight, error)
	Delete(ctx context.Context, id int) error

	// Transaction methods
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int) (*model.Flight, error)
}

type FlightRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewFlightRepository(pool *pgxpool.Pool) FlightRepository {
	return &FlightRepositoryImpl{
		pool: pool,
	}
}

const flightColumns = `id, flight_number, departure, destination, departure_time, arrival_time, airplane_id`

func scanFlight(row rowScanner) (*model.Flight, error) {
	var flight model.Flight
	err := row.Scan(
		&flight.ID,
		&flight.FlightNumber,
		&flight.Departure,
		&flight.Destination,
		&flight.DepartureTime,
		&flight.ArrivalTime,
		&flight.AirplaneID,
	)
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *FlightRepositoryImpl) Create(ctx context.Context, flight *model.Flight) (*model.Flight, error) {
	query := `
		INSERT INTO flights (flight_number, departure, destination, departure_time, arrival_time, airplane_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + flightColumns

	created, err := scanFlight(r.pool.QueryRow(ctx, query,
		flight.FlightNumber, flight.Departure, flight.Destination,
		flight.DepartureTime.UTC(), flight.ArrivalTime.UTC(), flight.AirplaneID,
	))
	if err != nil {
		return nil, mapFlightWriteError(err)
	}

	return created, nil
}

func (r *FlightRepositoryImpl) List(ctx context.Context, filter model.FlightFilter) ([]*model.Flight, error) {
	conditions := []string{}
	args := []any{}

	addCondition := func(format string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if filter.Departure != "" {
		addCondition(`departure ILIKE '%%' || $%d || '%%' ESCAPE '\'`, escapeLike(filter.Departure))
	}
	if filter.Destination != "" {
		addCondition(`destination ILIKE '%%' || $%d || '%%' ESCAPE '\'`, escapeLike(filter.Destination))
	}
	if filter.DepartureDate != nil {
		addCondition(`(departure_time AT TIME ZONE 'UTC')::date = $%d::date`, filter.DepartureDate.Format("2006-01-02"))
	}
	if filter.ArrivalDate != nil {
		addCondition(`(arrival_time AT TIME ZONE 'UTC')::date = $%d::date`, filter.ArrivalDate.Format("2006-01-02"))
	}

	query := `SELECT ` + flightColumns + ` FROM flights`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY departure_time, id`

	return r.queryFlights(ctx, query, args...)
}

func (r *FlightRepositoryImpl) ListByAirplaneID(ctx context.Context, airplaneID int) ([]*model.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE airplane_id = $1 ORDER BY departure_time, id`
	return r.queryFlights(ctx, query, airplaneID)
}

func (r *FlightRepositoryImpl) queryFlights(ctx context.Context, query string, args ...any) ([]*model.Flight, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]*model.Flight, 0)
	for rows.Next() {
		flight, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, flight)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return flights, nil
}

func (r *FlightRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE id = $1`

	flight, err := scanFlight(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFlightNotFound
		}
		return nil, err
	}

	return flight, nil
}

// FindByIDForUpdate locks the flight row for the rest of tx and loads the
// capacity of its airplane. Concurrent bookings on the same flight queue here.
func (r *FlightRepositoryImpl) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int) (*model.Flight, error) {
	query := `
		SELECT f.id, f.flight_number, f.departure, f.destination,
		       f.departure_time, f.arrival_time, f.airplane_id, a.capacity
		FROM flights f
		JOIN airplanes a ON a.id = f.airplane_id
		WHERE f.id = $1
		FOR UPDATE OF f
	`

	var flight model.Flight
	err := tx.QueryRow(ctx, query, id).Scan(
		&flight.ID,
		&flight.FlightNumber,
		&flight.Departure,
		&flight.Destination,
		&flight.DepartureTime,
		&flight.ArrivalTime,
		&flight.AirplaneID,
		&flight.Capacity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFlightNotFound
		}
		return nil, err
	}

	return &flight, nil
}

func (r *FlightRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateFlightParams) (*model.Flight, error) {
	var set setClause
	if params.FlightNumber != nil {
		set.add("flight_number", *params.FlightNumber)
	}
	if params.Departure != nil {
		set.add("departure", *params.Departure)
	}
	if params.Destination != nil {
		set.add("destination", *params.Destination)
	}
	if params.DepartureTime != nil {
		set.add("departure_time", params.DepartureTime.UTC())
	}
	if params.ArrivalTime != nil {
		set.add("arrival_time", params.ArrivalTime.UTC())
	}
	if params.AirplaneID != nil {
		set.add("airplane_id", *params.AirplaneID)
	}

	if set.empty() {
		return nil, apperrors.ErrInvalidInput
	}

	sets, idArg := set.build(id)
	query := fmt.Sprintf(`
		UPDATE flights
		SET %s
		WHERE id = %s
		RETURNING %s
	`, sets, idArg, flightColumns)

	flight, err := scanFlight(r.pool.QueryRow(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFlightNotFound
		}
		return nil, mapFlightWriteError(err)
	}

	return flight, nil
}

// Delete removes the flight and, through ON DELETE CASCADE, its reservations.
func (r *FlightRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrFlightNotFound
	}

	return nil
}

func mapFlightWriteError(err error) error {
	if constraint, ok := constraintViolation(err, uniqueViolation); ok && constraint == "flights_flight_number_key" {
		return apperrors.ErrDuplicateFlightNumber
	}
	if _, ok := constraintViolation(err, foreignKeyViolation); ok {
		return apperrors.ErrAirplaneNotFound
	}
	return fmt.Errorf("failed to write flight: %w", err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
