package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-contacts-backend/internal/domain"
)

var errConnLost = errors.New("connection reset by peer")

// newMockDB builds a GORM handle on the postgres dialector backed by a
// sqlmock connection, for exercising storage-fault paths.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGetContact_StorageFault(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1`).
		WithArgs("c1", 1).
		WillReturnError(errConnLost)

	c, err := GetContact(context.Background(), db, "c1")
	assert.Nil(t, c)
	assert.ErrorIs(t, err, errConnLost)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListContacts_StorageFault(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "contacts"`).WillReturnError(errConnLost)

	out, err := ListContacts(context.Background(), db, domain.ListOptions{Search: "a"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, errConnLost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListContacts_PostgresQueryShape(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "phone", "created_at"}).
		AddRow("c1", "Ann", "100", created)
	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE \(+name LIKE \$1 ESCAPE '!' OR phone LIKE \$2 ESCAPE '!' OR email LIKE \$3 ESCAPE '!'\)+ AND name = \$4 ORDER BY created_at ASC,id ASC LIMIT \$5 OFFSET \$6`).
		WithArgs("%50!%%", "%50!%%", "%50!%%", "Ann", 20, 40).
		WillReturnRows(rows)

	out, err := ListContacts(context.Background(), db, domain.ListOptions{
		Skip: 40, Limit: 20, Search: "50%",
		Filters: domain.ContactFilters{Name: strp("Ann")},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "c1", out[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountContacts_StorageFault(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts"`).WillReturnError(errConnLost)

	n, err := CountContacts(context.Background(), db, "x", domain.ContactFilters{})
	assert.Zero(t, n)
	assert.ErrorIs(t, err, errConnLost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteContact_StorageFault(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "contacts" WHERE id = \$1`).
		WithArgs("c1").
		WillReturnError(errConnLost)
	mock.ExpectRollback()

	ok, err := DeleteContact(context.Background(), db, "c1")
	assert.False(t, ok)
	assert.ErrorIs(t, err, errConnLost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteContact_ZeroRowsAffected(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "contacts" WHERE id = \$1`).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := DeleteContact(context.Background(), db, "gone")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A row deleted between the existence read and the UPDATE must surface as
// ErrNotFound and roll back, never as a success.
func TestUpdateContact_ConcurrentDeleteIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "created_at" FROM "contacts" WHERE id = \$1`).
		WithArgs("c1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectExec(`UPDATE "contacts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	got, err := UpdateContact(context.Background(), db, "c1", map[string]any{"name": "x"}, created.Add(time.Hour))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateContact_StorageFaultRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "created_at" FROM "contacts"`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectExec(`UPDATE "contacts" SET`).WillReturnError(errConnLost)
	mock.ExpectRollback()

	got, err := UpdateContact(context.Background(), db, "c1", map[string]any{"phone": "1"}, time.Now())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, errConnLost)
	assert.NoError(t, mock.ExpectationsWereMet())
}
