package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
)

const (
	sessionsTable  = "client_sessions"
	currentSession = "current"
)

// Repository хранение токена сессии в SQL БД (SQLite или PostgreSQL)
type Repository struct {
	db      DBExecutor
	builder squirrel.StatementBuilderType
	now     func() time.Time
}

// NewRepository создает репозиторий для указанного драйвера
func NewRepository(db DBExecutor, driver string) (*Repository, error) {
	var placeholder squirrel.PlaceholderFormat
	switch driver {
	case DriverPostgres:
		placeholder = squirrel.Dollar
	case DriverSQLite:
		placeholder = squirrel.Question
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}

	return &Repository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
		now:     time.Now,
	}, nil
}

// Save сохраняет токен, заменяя предыдущий
func (r *Repository) Save(ctx context.Context, token string) error {
	query, args, err := r.builder.Insert(sessionsTable).
		Columns("id", "token", "updated_at").
		Values(currentSession, token, r.now().UTC()).
		Suffix("ON CONFLICT (id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// Load возвращает сохраненный токен
func (r *Repository) Load(ctx context.Context) (string, error) {
	query, args, err := r.builder.Select("token").
		From(sessionsTable).
		Where(squirrel.Eq{"id": currentSession}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	var token string
	if err := r.db.GetContext(ctx, &token, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("%w: Load - execute select: %v", ErrExecQuery, err)
	}

	return token, nil
}

// Delete удаляет сохраненный токен, отсутствие записи не ошибка
func (r *Repository) Delete(ctx context.Context) error {
	query, args, err := r.builder.Delete(sessionsTable).
		Where(squirrel.Eq{"id": currentSession}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
