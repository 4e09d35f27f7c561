package repository

import (
	"context"
	"testing"
	"time"

	"go-gin-flight-booking/internal/model"
	apperrors "go-gin-flight-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationRepository_CreateAndCount(t *testing.T) {
	setupTestWithTruncate(t)
	repo := NewReservationRepository(testDB)
	ctx := context.Background()

	airplaneID := createTestAirplane(t, "5N-RSV", 2)
	flightID := createTestFlight(t, airplaneID, "RS1", "Lagos", "Abuja", time.Date(2026, 7, 1, 7, 0, 0, 0, time.UTC))
	createTestReservation(t, flightID, "0000000001", true)
	createTestReservation(t, flightID, "0000000002", false)

	tx := setupTestWithTransaction(t)

	count, err := repo.CountActiveByFlight(ctx, tx, flightID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	created, err := repo.Create(ctx, tx, &model.Reservation{
		PassengerName: "Chidi", PassengerEmail: "chidi@example.com",
		ReservationCode: "abcdef0123", FlightID: flightID, Status: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotZero(t, created.CreatedAt)

	count, err = repo.CountActiveByFlight(ctx, tx, flightID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestReservationRepository_Create_DuplicateCode(t *testing.T) {
	setupTestWithTruncate(t)
	repo := NewReservationRepository(testDB)

	airplaneID := createTestAirplane(t, "5N-DPC", 5)
	flightID := createTestFlight(t, airplaneID, "DC1", "Lagos", "Abuja", time.Date(2026, 7, 1, 7, 0, 0, 0, time.UTC))
	createTestReservation(t, flightID, "feedbeef00", true)

	tx := setupTestWithTransaction(t)
	_, err := repo.Create(context.Background(), tx, &model.Reservation{
		PassengerName: "Chidi", PassengerEmail: "chidi@example.com",
		ReservationCode: "feedbeef00", FlightID: flightID, Status: true,
	})

	assert.ErrorIs(t, err, apperrors.ErrDuplicateReservationCode)
}

func TestReservationRepository_UpdateAndDelete(t *testing.T) {
	setupTestWithTruncate(t)
	repo := NewReservationRepository(testDB)
	ctx := context.Background()

	airplaneID := createTestAirplane(t, "5N-UDR", 5)
	flightID := createTestFlight(t, airplaneID, "UD1", "Lagos", "Abuja", time.Date(2026, 7, 1, 7, 0, 0, 0, time.UTC))
	id := createTestReservation(t, flightID, "1234567890", true)

	tx := setupTestWithTransaction(t)
	status := false
	updated, err := repo.Update(ctx, tx, id, model.UpdateReservationParams{Status: &status})
	require.NoError(t, err)
	assert.False(t, updated.Status)
	assert.Equal(t, "1234567890", updated.ReservationCode)
	require.NoError(t, tx.Commit(ctx))

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, found.Status)

	listed, err := repo.ListByFlightID(ctx, flightID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id), apperrors.ErrReservationNotFound)
}
