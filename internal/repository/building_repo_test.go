package repository

import (
	"context"
	"testing"

	"workhive/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestBuildingExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBuildingRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "buildings" WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingNameTakenExcludesSelf(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBuildingRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "buildings" WHERE building_name = \$1 AND id <> \$2`).
		WithArgs("Tower A", id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	taken, err := repo.NameTaken(context.Background(), "Tower A", id)
	require.NoError(t, err)
	assert.False(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingSoftDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBuildingRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "buildings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows, err := repo.SoftDelete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingSoftDeleteAlreadyInactive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBuildingRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "buildings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rows, err := repo.SoftDelete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingListFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBuildingRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "buildings" WHERE building_name ILIKE \$1 AND status = \$2`).
		WithArgs("%tower%", model.StatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery(`SELECT .* FROM "buildings" WHERE building_name ILIKE \$1 AND status = \$2 ORDER BY building_name asc LIMIT \$3`).
		WithArgs("%tower%", model.StatusActive, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "building_name", "status"}).
			AddRow(uuid.New(), "Tower A", model.StatusActive).
			AddRow(uuid.New(), "Tower B", model.StatusActive))

	buildings, total, err := repo.List(context.Background(), BuildingFilter{
		Name:      "tower",
		Status:    model.StatusActive,
		Limit:     10,
		SortField: "building_name",
		SortDir:   "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, buildings, 2)
	assert.Equal(t, "Tower A", buildings[0].BuildingName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
