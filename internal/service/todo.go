package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jaekwang-park/todo-web/internal/model"
	"github.com/jaekwang-park/todo-web/internal/store"
	"github.com/jaekwang-park/todo-web/internal/todolist"
)

// TodoService owns every user's todo list. Requests mutate the in-memory
// lists synchronously under one lock; each mutation triggers an
// asynchronous snapshot save that the response does not wait for.
type TodoService struct {
	mu     sync.Mutex
	lists  map[string]*todolist.List
	store  store.Store
	logger *slog.Logger
}

// NewTodoService loads all persisted todo lists into memory.
func NewTodoService(ctx context.Context, st store.Store, logger *slog.Logger) (*TodoService, error) {
	snapshots, err := st.LoadTodoLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load todo lists: %w", err)
	}

	lists := make(map[string]*todolist.List, len(snapshots))
	for userName, snapshot := range snapshots {
		lists[userName] = todolist.Load(snapshot)
	}

	return &TodoService{lists: lists, store: st, logger: logger}, nil
}

// Collection returns the user's full current collection.
func (s *TodoService) Collection(userName string) []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(userName).Snapshot()
}

func (s *TodoService) AddTodo(userName, title string) ([]model.Todo, error) {
	return s.mutate(userName, func(l *todolist.List) error {
		l.AddTodo(title)
		return nil
	})
}

func (s *TodoService) RenameTodo(userName, todoID, title string) ([]model.Todo, error) {
	return s.mutate(userName, func(l *todolist.List) error {
		return l.RenameTodo(todoID, title)
	})
}

func (s *TodoService) DeleteTodo(userName, todoID string) ([]model.Todo, error) {
	return s.mutate(userName, func(l *todolist.List) error {
		return l.DeleteTodo(todoID)
	})
}

func (s *TodoService) AddTask(userName, todoID, name string) ([]model.Todo, error) {
	return s.mutate(userName, func(l *todolist.List) error {
		return l.AddTask(todoID, name)
	})
}

func (s *TodoService) RenameTask(userName, todoID, taskID, name string) ([]model.Todo, error) {
	return s.mutate(userName, func(l *todolist.List) error {
		return l.RenameTask(todoID, taskID, name)
	})
}

func (s *TodoService) ToggleTaskStatus(userName, todoID, taskID string) ([]model.Todo, error) {
	return s.mutate(userName, func(l *todolist.List) error {
		return l.ToggleTaskStatus(todoID, taskID)
	})
}

func (s *TodoService) DeleteTask(userName, todoID, taskID string) ([]model.Todo, error) {
	return s.mutate(userName, func(l *todolist.List) error {
		return l.DeleteTask(todoID, taskID)
	})
}

// list returns the user's list, creating an empty one on first touch.
// Caller must hold s.mu.
func (s *TodoService) list(userName string) *todolist.List {
	l, ok := s.lists[userName]
	if !ok {
		l = todolist.New()
		s.lists[userName] = l
	}
	return l
}

// mutate applies op to the user's list and, on success, returns the full
// post-mutation collection and kicks off a background save. A failed op
// leaves the collection unchanged.
func (s *TodoService) mutate(userName string, op func(*todolist.List) error) ([]model.Todo, error) {
	s.mu.Lock()
	l := s.list(userName)
	if err := op(l); err != nil {
		s.mu.Unlock()
		if errors.Is(err, todolist.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	collection := l.Snapshot()
	snapshot := make(map[string][]model.Todo, len(s.lists))
	for name, list := range s.lists {
		snapshot[name] = list.Snapshot()
	}
	s.mu.Unlock()

	// Fire-and-forget: a crash between mutation and save loses the most
	// recent state, which is the accepted durability tradeoff.
	go func() {
		if err := s.store.SaveTodoLists(context.Background(), snapshot); err != nil {
			s.logger.Error("failed to save todo lists", "error", err)
		}
	}()

	return collection, nil
}
