package session

import (
	"context"
	"database/sql"
)

// DBExecutor интерфейс выполнения запросов, реализуется *sqlx.DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}
