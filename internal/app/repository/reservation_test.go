package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/Synapsr/Louez-sub011/internal/app/ds"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *Repository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock, NewWithDB(gormDB)
}

func TestUpdateReservationSchedule_ReplacesItems(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	// Оборудование, которого раньше не было в брони, должно получить
	// свою строку, а старые строки — исчезнуть
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reservations"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "reservation_items"`).
		WithArgs(uint(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`INSERT INTO "reservation_items"`).
		WithArgs(uint(3), uint(42), 1, 20.0, 0.0, 40.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	items := []ds.ReservationItem{
		{ProductID: 42, Quantity: 1, PeriodRate: 20.0, SubTotal: 40.0},
	}
	err := repo.UpdateReservationSchedule(1, 3, start, end, 40.0, 0, items)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReservationSchedule_WrongStatus(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	// Не-pending бронь: откат без обращения к позициям
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reservations"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	err := repo.UpdateReservationSchedule(1, 3, start, start.Add(time.Hour), 10.0, 0, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "нельзя изменить")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmReservation_Success(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs("confirmed", uint(7), sqlmock.AnyArg(), uint(3), uint(1), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ConfirmReservation(1, 3, 7)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmReservation_WrongStatus(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	// Бронь не в статусе pending — ни одна строка не обновлена
	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs("confirmed", uint(7), sqlmock.AnyArg(), uint(3), uint(1), "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ConfirmReservation(1, 3, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "нельзя подтвердить")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartReservation(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs("ongoing", uint(3), uint(1), "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.StartReservation(1, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelReservation_WrongStatus(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	// Завершенную бронь отменить нельзя
	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs("cancelled", uint(3), uint(1), "pending", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CancelReservation(1, 3)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductHolds(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	rows := sqlmock.NewRows([]string{"starts_at", "ends_at", "quantity", "status"}).
		AddRow(start, end, 2, "confirmed").
		AddRow(start.Add(48*time.Hour), end.Add(48*time.Hour), 1, "pending")

	mock.ExpectQuery("SELECT r.starts_at, r.ends_at, ri.quantity, r.status").
		WithArgs(uint(5), uint(0)).
		WillReturnRows(rows)

	holds, err := repo.GetProductHolds(5, 0)
	require.NoError(t, err)
	require.Len(t, holds, 2)
	assert.Equal(t, start, holds[0].Start)
	assert.Equal(t, 2, holds[0].Quantity)
	assert.Equal(t, "confirmed", holds[0].Status)
	assert.Equal(t, "pending", holds[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReservationItemCount(t *testing.T) {
	db, mock, repo := setupMockRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "reservation_items"`).
		WithArgs(uint(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	assert.Equal(t, 3, repo.GetReservationItemCount(9))
	assert.NoError(t, mock.ExpectationsWereMet())
}
