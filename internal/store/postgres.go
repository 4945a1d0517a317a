package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jaekwang-park/todo-web/internal/model"
)

// PostgresStore keeps one snapshot row per user in each table:
//
//	todo_lists(user_name text primary key, snapshot jsonb not null)
//	users(user_name text primary key, credential jsonb not null)
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) LoadTodoLists(ctx context.Context) (map[string][]model.Todo, error) {
	query := `SELECT user_name, snapshot FROM todo_lists`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load todo lists: %w", err)
	}
	defer rows.Close()

	lists := make(map[string][]model.Todo)
	for rows.Next() {
		var userName string
		var snapshot []byte
		if err := rows.Scan(&userName, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to scan todo list row: %w", err)
		}
		var todos []model.Todo
		if err := json.Unmarshal(snapshot, &todos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal todo list for %s: %w", userName, err)
		}
		lists[userName] = todos
	}
	return lists, rows.Err()
}

// SaveTodoLists upserts every user's snapshot in one transaction so a
// save never partially applies.
func (s *PostgresStore) SaveTodoLists(ctx context.Context, lists map[string][]model.Todo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO todo_lists (user_name, snapshot)
		VALUES ($1, $2)
		ON CONFLICT (user_name) DO UPDATE SET snapshot = EXCLUDED.snapshot`

	for userName, todos := range lists {
		b, err := json.Marshal(todos)
		if err != nil {
			return fmt.Errorf("failed to marshal todo list for %s: %w", userName, err)
		}
		if _, err := tx.ExecContext(ctx, query, userName, b); err != nil {
			return fmt.Errorf("failed to upsert todo list for %s: %w", userName, err)
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) LoadUsers(ctx context.Context) (map[string]model.Credential, error) {
	query := `SELECT user_name, credential FROM users`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	defer rows.Close()

	users := make(map[string]model.Credential)
	for rows.Next() {
		var userName string
		var credential []byte
		if err := rows.Scan(&userName, &credential); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		var cred model.Credential
		if err := json.Unmarshal(credential, &cred); err != nil {
			return nil, fmt.Errorf("failed to unmarshal credential for %s: %w", userName, err)
		}
		users[userName] = cred
	}
	return users, rows.Err()
}

func (s *PostgresStore) SaveUsers(ctx context.Context, users map[string]model.Credential) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (user_name, credential)
		VALUES ($1, $2)
		ON CONFLICT (user_name) DO UPDATE SET credential = EXCLUDED.credential`

	for userName, cred := range users {
		b, err := json.Marshal(cred)
		if err != nil {
			return fmt.Errorf("failed to marshal credential for %s: %w", userName, err)
		}
		if _, err := tx.ExecContext(ctx, query, userName, b); err != nil {
			return fmt.Errorf("failed to upsert credential for %s: %w", userName, err)
		}
	}

	return tx.Commit()
}
