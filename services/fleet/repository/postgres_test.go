package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/services/fleet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestPostgresRepo_FilterWithIn(t *testing.T) {
	// Arrange
	db, mock := setupSQLMock(t)
	repo := NewPostgresRepo[models.Driver](db, DriversTable)

	rows := sqlmock.NewRows([]string{"id", "full_name", "status"}).
		AddRow("d1", "Ada", "signed-in").
		AddRow("d2", "Grace", "on-ride")
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM drivers WHERE status = ANY($1) ORDER BY full_name ASC NULLS LAST LIMIT $2")).
		WithArgs(`{"signed-in","on-ride"}`, 10).
		WillReturnRows(rows)

	// Act
	drivers, err := repo.Filter(context.Background(),
		models.Query{models.In("status", "signed-in", "on-ride")}, "full_name", 10)

	// Assert
	require.NoError(t, err)
	require.Len(t, drivers, 2)
	assert.Equal(t, "Ada", drivers[0].FullName)
	assert.Equal(t, models.DriverStatusOnRide, drivers[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_ListSortedDescending(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewPostgresRepo[models.Ride](db, RidesTable)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM rides ORDER BY updated_date DESC NULLS LAST LIMIT $1")).
		WithArgs(200).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow("r1", "pending"))

	rides, err := repo.List(context.Background(), models.SortUpdatedDateDesc, 200)

	require.NoError(t, err)
	require.Len(t, rides, 1)
	assert.Equal(t, models.RideStatusPending, rides[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_FilterRejectsUnknownField(t *testing.T) {
	db, _ := setupSQLMock(t)
	repo := NewPostgresRepo[models.Ride](db, RidesTable)

	_, err := repo.Filter(context.Background(), models.Query{models.Eq("status; DROP TABLE rides", "x")}, models.SortNone, 0)
	assert.Error(t, err)

	_, err = repo.List(context.Background(), "-nope", 0)
	assert.Error(t, err)
}

func TestPostgresRepo_Create(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewPostgresRepo[models.Driver](db, DriversTable)

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO drivers (id, full_name, phone, status, vehicle_number) VALUES ($1, $2, $3, $4, $5) RETURNING *")).
		WithArgs(sqlmock.AnyArg(), "Ada", "+1-713-555-0001", "signed-in", "V1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "phone", "status", "vehicle_number", "created_date", "updated_date"}).
			AddRow("generated", "Ada", "+1-713-555-0001", "signed-in", "V1", time.Now(), time.Now()))

	driver, err := repo.Create(context.Background(), models.Driver{
		FullName:      "Ada",
		Phone:         "+1-713-555-0001",
		Status:        models.DriverStatusSignedIn,
		VehicleNumber: "V1",
	})

	require.NoError(t, err)
	assert.Equal(t, "generated", driver.ID)
	assert.False(t, driver.CreatedDate.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_Update(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewPostgresRepo[models.Vehicle](db, VehiclesTable)

	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE vehicles SET location_lat = $1, status = $2, updated_date = now() WHERE id = $3 RETURNING *")).
		WithArgs(29.7, "in-use", "v1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "shuttle_number", "status", "location_lat"}).
			AddRow("v1", "V1", "in-use", 29.7))

	vehicle, err := repo.Update(context.Background(), "v1", models.Fields{
		"status":       models.VehicleStatusInUse,
		"location_lat": 29.7,
	})

	require.NoError(t, err)
	assert.Equal(t, models.VehicleStatusInUse, vehicle.Status)
	assert.Equal(t, 29.7, vehicle.LocationLat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_UpdateErrors(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewPostgresRepo[models.Vehicle](db, VehiclesTable)

	_, err := repo.Update(context.Background(), "v1", models.Fields{"id": "other"})
	assert.Error(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE vehicles SET status = $1")).
		WithArgs("available", "missing").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.Update(context.Background(), "missing", models.Fields{"status": models.VehicleStatusAvailable})
	assert.True(t, errors.Is(err, fleet.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_Delete(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewPostgresRepo[models.EmergencyAlert](db, AlertsTable)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM emergency_alerts WHERE id = $1")).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM emergency_alerts WHERE id = $1")).
		WithArgs("a2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "a1"))
	assert.True(t, errors.Is(repo.Delete(context.Background(), "a2"), fleet.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	db, mock := setupSQLMock(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS rides")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
