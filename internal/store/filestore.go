package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jaekwang-park/todo-web/internal/model"
)

const (
	todoListsFile = "todo_lists.json"
	usersFile     = "users.json"
)

// FileStore keeps both snapshots as JSON files under a data directory.
// Human-readable and good enough for a single instance.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) LoadTodoLists(_ context.Context) (map[string][]model.Todo, error) {
	lists := make(map[string][]model.Todo)
	if err := s.readJSON(todoListsFile, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (s *FileStore) SaveTodoLists(_ context.Context, lists map[string][]model.Todo) error {
	return s.writeJSON(todoListsFile, lists)
}

func (s *FileStore) LoadUsers(_ context.Context) (map[string]model.Credential, error) {
	users := make(map[string]model.Credential)
	if err := s.readJSON(usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *FileStore) SaveUsers(_ context.Context, users map[string]model.Credential) error {
	return s.writeJSON(usersFile, users)
}

// readJSON leaves v untouched when the file does not exist yet, so a
// fresh data directory loads as empty state.
func (s *FileStore) readJSON(name string, v any) error {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) writeJSON(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
