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

type AirplaneRepository interface {
	Create(ctx context.Context, airplane *model.Airplane) (*model.Airplane, error)
	List(ctx context.Context) ([]*model.Airplane, error)
	FindByID(ctx context.Context, id int) (*model.Airplane, error)
	ExistsByTailNumber(ctx context.Context, tailNumber string) (bool, error)
	Update(ctx context.Context, id int, params model.UpdateAirplaneParams) (*model.Airplane, error)
	Delete(ctx context.Context, id int) error
}

type AirplaneRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewAirplaneRepository(pool *pgxpool.Pool) AirplaneRepository {
	return &AirplaneRepositoryImpl{
		pool: pool,
	}
}

const airplaneColumns = `id, tail_number, model, capacity, production_year, status`

func scanAirplane(row rowScanner) (*model.Airplane, error) {
	var airplane model.Airplane
	err := row.Scan(
		&airplane.ID,
		&airplane.TailNumber,
		&airplane.Model,
		&airplane.Capacity,
		&airplane.ProductionYear,
		&airplane.Status,
	)
	if err != nil {
		return nil, err
	}
	return &airplane, nil
}

func (r *AirplaneRepositoryImpl) Create(ctx context.Context, airplane *model.Airplane) (*model.Airplane, error) {
	query := `
		INSERT INTO airplanes (tail_number, model, capacity, production_year, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + airplaneColumns

	created, err := scanAirplane(r.pool.QueryRow(ctx, query,
		airplane.TailNumber, airplane.Model, airplane.Capacity, airplane.ProductionYear, airplane.Status,
	))
	if err != nil {
		return nil, mapAirplaneWriteError(err)
	}

	return created, nil
}

func (r *AirplaneRepositoryImpl) List(ctx context.Context) ([]*model.Airplane, error) {
	query := `SELECT ` + airplaneColumns + ` FROM airplanes ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]*model.Airplane, 0)
	for rows.Next() {
		airplane, err := scanAirplane(rows)
		if err != nil {
			return nil, err
		}
		airplanes = append(airplanes, airplane)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return airplanes, nil
}

func (r *AirplaneRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Airplane, error) {
	query := `SELECT ` + airplaneColumns + ` FROM airplanes WHERE id = $1`

	airplane, err := scanAirplane(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAirplaneNotFound
		}
		return nil, err
	}

	return airplane, nil
}

func (r *AirplaneRepositoryImpl) ExistsByTailNumber(ctx context.Context, tailNumber string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM airplanes WHERE tail_number = $1)`, tailNumber,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *AirplaneRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateAirplaneParams) (*model.Airplane, error) {
	var set setClause
	if params.TailNumber != nil {
		set.add("tail_number", *params.TailNumber)
	}
	if params.Model != nil {
		set.add("model", *params.Model)
	}
	if params.Capacity != nil {
		set.add("capacity", *params.Capacity)
	}
	if params.ProductionYear != nil {
		set.add("production_year", *params.ProductionYear)
	}
	if params.Status != nil {
		set.add("status", *params.Status)
	}

	if set.empty() {
		return nil, apperrors.ErrInvalidInput
	}

	sets, idArg := set.build(id)
	query := fmt.Sprintf(`
		UPDATE airplanes
		SET %s
		WHERE id = %s
		RETURNING %s
	`, sets, idArg, airplaneColumns)

	airplane, err := scanAirplane(r.pool.QueryRow(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAirplaneNotFound
		}
		return nil, mapAirplaneWriteError(err)
	}

	return airplane, nil
}

// Delete removes the airplane; flights and their reservations go with it (ON DELETE CASCADE).
func (r *AirplaneRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM airplanes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAirplaneNotFound
	}

	return nil
}

func mapAirplaneWriteError(err error) error {
	if constraint, ok := constraintViolation(err, uniqueViolation); ok && constraint == "airplanes_tail_number_key" {
		return apperrors.ErrDuplicateTailNumber
	}
	return fmt.Errorf("failed to write airplane: %w", err)
}
