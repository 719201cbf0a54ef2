package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresWithMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgres_Get(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT value FROM storage WHERE key = \$1`).
		WithArgs("arnorGymUsers").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{}`))

	v, ok, err := r.Get(context.Background(), "arnorGymUsers")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{}`, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetMissing(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT value FROM storage`).
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Has(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM storage WHERE key = \$1`).
		WithArgs("arnorGymUsers").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := r.Has(context.Background(), "arnorGymUsers")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SetUpserts(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectExec(`INSERT INTO storage \(key, value\) VALUES \(\$1, \$2\)\s+ON CONFLICT \(key\) DO UPDATE`).
		WithArgs("k", "v").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Set(context.Background(), "k", "v"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SetError(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectExec(`INSERT INTO storage`).
		WithArgs("k", "v").
		WillReturnError(errors.New("db down"))

	err := r.Set(context.Background(), "k", "v")
	require.ErrorContains(t, err, "failed to set storage[k]: db down")
}

func TestPostgres_DeleteAndClear(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectExec(`DELETE FROM storage WHERE key = \$1`).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM storage`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, r.Delete(context.Background(), "k"))
	require.NoError(t, r.Clear(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateUsesTransaction(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO storage`).WithArgs("a", "1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO storage`).WithArgs("b", "2").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := r.Update(context.Background(), func(ctx context.Context, tx Repository) error {
		if err := tx.Set(ctx, "a", "1"); err != nil {
			return err
		}
		return tx.Set(ctx, "b", "2")
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateRollsBack(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO storage`).WithArgs("a", "1").WillReturnError(errors.New("conflict"))
	mock.ExpectRollback()

	err := r.Update(context.Background(), func(ctx context.Context, tx Repository) error {
		return tx.Set(ctx, "a", "1")
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
