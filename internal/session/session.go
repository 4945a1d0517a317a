package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no live session matches the given id.
var ErrNotFound = errors.New("session not found")

// Store binds opaque session ids to usernames. Sessions are created on
// login or signup and destroyed on logout; Destroy of an unknown id is a
// no-op.
type Store interface {
	Create(ctx context.Context, username string) (string, error)
	Username(ctx context.Context, sid string) (string, error)
	Destroy(ctx context.Context, sid string) error
}

// Memory is the process-local Store. Sessions live until explicit logout.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]string)}
}

func (m *Memory) Create(_ context.Context, username string) (string, error) {
	sid := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sid] = username
	return sid, nil
}

func (m *Memory) Username(_ context.Context, sid string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	username, ok := m.sessions[sid]
	if !ok {
		return "", ErrNotFound
	}
	return username, nil
}

func (m *Memory) Destroy(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sid)
	return nil
}
