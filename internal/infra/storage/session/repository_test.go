package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewRepository(db, DriverSQLite)
	require.NoError(t, err)
	return repo
}

func TestRepository_LoadEmpty(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Load(context.Background())

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRepository_SaveReplacesToken(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "first"))
	repo.now = func() time.Time { return time.Date(2025, 12, 12, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, repo.Save(ctx, "second"))

	token, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "token"))
	require.NoError(t, repo.Delete(ctx))

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// повторное удаление не ошибка
	assert.NoError(t, repo.Delete(ctx))
}

func TestNewRepository_UnsupportedDriver(t *testing.T) {
	_, err := NewRepository(nil, "mysql")

	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestRepository_PostgresPlaceholders(t *testing.T) {
	repo, err := NewRepository(nil, DriverPostgres)
	require.NoError(t, err)

	query, args, err := repo.builder.Select("token").
		From(sessionsTable).
		Where("id = ?", currentSession).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT token FROM client_sessions WHERE id = $1", query)
	assert.Equal(t, []interface{}{currentSession}, args)
}
