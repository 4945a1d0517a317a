package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jaekwang-park/todo-web/internal/model"
	"github.com/jaekwang-park/todo-web/internal/service"
)

// mockStore for service tests
type mockStore struct {
	loadTodoListsFn func(ctx context.Context) (map[string][]model.Todo, error)
	saveTodoListsFn func(ctx context.Context, lists map[string][]model.Todo) error
	loadUsersFn     func(ctx context.Context) (map[string]model.Credential, error)
	saveUsersFn     func(ctx context.Context, users map[string]model.Credential) error
}

func (m *mockStore) LoadTodoLists(ctx context.Context) (map[string][]model.Todo, error) {
	if m.loadTodoListsFn != nil {
		return m.loadTodoListsFn(ctx)
	}
	return map[string][]model.Todo{}, nil
}

func (m *mockStore) SaveTodoLists(ctx context.Context, lists map[string][]model.Todo) error {
	if m.saveTodoListsFn != nil {
		return m.saveTodoListsFn(ctx, lists)
	}
	return nil
}

func (m *mockStore) LoadUsers(ctx context.Context) (map[string]model.Credential, error) {
	if m.loadUsersFn != nil {
		return m.loadUsersFn(ctx)
	}
	return map[string]model.Credential{}, nil
}

func (m *mockStore) SaveUsers(ctx context.Context, users map[string]model.Credential) error {
	if m.saveUsersFn != nil {
		return m.saveUsersFn(ctx, users)
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fruitsLists() map[string][]model.Todo {
	return map[string][]model.Todo{
		"alice": {
			{
				Title: "fruits",
				ID:    "0",
				Tasks: []model.Task{{Name: "apple", ID: "0_0", Status: true}},
			},
		},
	}
}

func newTodoService(t *testing.T, st *mockStore) *service.TodoService {
	t.Helper()
	svc, err := service.NewTodoService(context.Background(), st, discardLogger())
	if err != nil {
		t.Fatalf("failed to create todo service: %v", err)
	}
	return svc
}

func TestTodoService_LoadsPersistedLists(t *testing.T) {
	st := &mockStore{
		loadTodoListsFn: func(ctx context.Context) (map[string][]model.Todo, error) {
			return fruitsLists(), nil
		},
	}
	svc := newTodoService(t, st)

	collection := svc.Collection("alice")
	if len(collection) != 1 || collection[0].Title != "fruits" {
		t.Errorf("expected persisted collection, got %+v", collection)
	}
}

func TestTodoService_LoadFailure(t *testing.T) {
	st := &mockStore{
		loadTodoListsFn: func(ctx context.Context) (map[string][]model.Todo, error) {
			return nil, errors.New("disk error")
		},
	}

	if _, err := service.NewTodoService(context.Background(), st, discardLogger()); err == nil {
		t.Fatal("expected error when load fails")
	}
}

func TestTodoService_UnknownUserStartsEmpty(t *testing.T) {
	svc := newTodoService(t, &mockStore{})

	if got := svc.Collection("newcomer"); len(got) != 0 {
		t.Errorf("expected empty collection, got %+v", got)
	}
}

func TestTodoService_AddTodoReturnsFullCollection(t *testing.T) {
	st := &mockStore{
		loadTodoListsFn: func(ctx context.Context) (map[string][]model.Todo, error) {
			return fruitsLists(), nil
		},
	}
	svc := newTodoService(t, st)

	collection, err := svc.AddTodo("alice", "newTodo")
	if err != nil {
		t.Fatalf("add todo failed: %v", err)
	}
	if len(collection) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(collection))
	}
	if collection[0].Title != "newTodo" || collection[0].ID != "1" {
		t.Errorf("expected prepended todo with id 1, got %+v", collection[0])
	}
}

func TestTodoService_MutationsAreIsolatedPerUser(t *testing.T) {
	svc := newTodoService(t, &mockStore{})

	if _, err := svc.AddTodo("alice", "groceries"); err != nil {
		t.Fatalf("add todo failed: %v", err)
	}

	if got := svc.Collection("bob"); len(got) != 0 {
		t.Errorf("expected bob's collection untouched, got %+v", got)
	}
}

func TestTodoService_UnknownIDsReturnNotFound(t *testing.T) {
	st := &mockStore{
		loadTodoListsFn: func(ctx context.Context) (map[string][]model.Todo, error) {
			return fruitsLists(), nil
		},
	}
	svc := newTodoService(t, st)

	tests := []struct {
		name   string
		mutate func() ([]model.Todo, error)
	}{
		{"rename todo", func() ([]model.Todo, error) { return svc.RenameTodo("alice", "99", "x") }},
		{"delete todo", func() ([]model.Todo, error) { return svc.DeleteTodo("alice", "99") }},
		{"add task", func() ([]model.Todo, error) { return svc.AddTask("alice", "99", "x") }},
		{"rename task", func() ([]model.Todo, error) { return svc.RenameTask("alice", "0", "0_99", "x") }},
		{"toggle task", func() ([]model.Todo, error) { return svc.ToggleTaskStatus("alice", "0", "0_99") }},
		{"delete task", func() ([]model.Todo, error) { return svc.DeleteTask("alice", "0", "0_99") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.mutate(); !errors.Is(err, service.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestTodoService_MutationTriggersSave(t *testing.T) {
	saved := make(chan map[string][]model.Todo, 1)
	st := &mockStore{
		saveTodoListsFn: func(ctx context.Context, lists map[string][]model.Todo) error {
			saved <- lists
			return nil
		},
	}
	svc := newTodoService(t, st)

	if _, err := svc.AddTodo("alice", "groceries"); err != nil {
		t.Fatalf("add todo failed: %v", err)
	}

	select {
	case lists := <-saved:
		if len(lists["alice"]) != 1 || lists["alice"][0].Title != "groceries" {
			t.Errorf("expected saved snapshot to contain the mutation, got %+v", lists["alice"])
		}
	case <-time.After(time.Second):
		t.Fatal("expected a save after the mutation")
	}
}

func TestTodoService_SaveErrorDoesNotFailMutation(t *testing.T) {
	st := &mockStore{
		saveTodoListsFn: func(ctx context.Context, lists map[string][]model.Todo) error {
			return errors.New("disk full")
		},
	}
	svc := newTodoService(t, st)

	if _, err := svc.AddTodo("alice", "groceries"); err != nil {
		t.Errorf("expected mutation to succeed despite save error, got %v", err)
	}
}
