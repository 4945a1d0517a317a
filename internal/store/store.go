package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaekwang-park/todo-web/internal/model"
)

// Store persists snapshots of the in-memory state: per-user todo
// collections and the user credential directory. Load happens once at
// startup; saves are triggered after each mutation and are not awaited
// by the response path.
type Store interface {
	LoadTodoLists(ctx context.Context) (map[string][]model.Todo, error)
	SaveTodoLists(ctx context.Context, lists map[string][]model.Todo) error
	LoadUsers(ctx context.Context) (map[string]model.Credential, error)
	SaveUsers(ctx context.Context, users map[string]model.Credential) error
}

// Open connects to postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
