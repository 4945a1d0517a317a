package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jaekwang-park/todo-web/internal/session"
	"github.com/jaekwang-park/todo-web/internal/store"
	"github.com/jaekwang-park/todo-web/internal/userdir"
)

// AuthService composes the user directory and the session store: signup
// and login both end with a live session, logout destroys one.
type AuthService struct {
	users    *userdir.Directory
	sessions session.Store
	store    store.Store
	logger   *slog.Logger
}

// NewAuthService loads the persisted user directory into memory.
func NewAuthService(ctx context.Context, st store.Store, sessions session.Store, logger *slog.Logger) (*AuthService, error) {
	snapshot, err := st.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	return &AuthService{
		users:    userdir.Load(snapshot),
		sessions: sessions,
		store:    st,
		logger:   logger,
	}, nil
}

// SignUp registers the user and logs them straight in. Policy violations
// surface as userdir sentinel errors.
func (s *AuthService) SignUp(ctx context.Context, userName, password string) (string, error) {
	if err := s.users.Register(userName, password); err != nil {
		return "", err
	}
	s.saveUsers()
	return s.sessions.Create(ctx, userName)
}

// Login verifies the credentials and creates a session. A false result
// means unknown user or wrong password; the caller does not learn which.
func (s *AuthService) Login(ctx context.Context, userName, password string) (string, bool, error) {
	if !s.users.Verify(userName, password) {
		return "", false, nil
	}
	sid, err := s.sessions.Create(ctx, userName)
	if err != nil {
		return "", false, err
	}
	return sid, true, nil
}

// Logout destroys the session; unknown ids are a no-op.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.sessions.Destroy(ctx, sid)
}

// IsAvailable reports whether the username is not yet taken.
func (s *AuthService) IsAvailable(userName string) bool {
	return !s.users.Exists(userName)
}

// Resolve maps a session id to its username. Store errors other than a
// missing session are logged and treated as unauthenticated.
func (s *AuthService) Resolve(ctx context.Context, sid string) (string, bool) {
	userName, err := s.sessions.Username(ctx, sid)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			s.logger.Error("session lookup failed", "error", err)
		}
		return "", false
	}
	return userName, true
}

func (s *AuthService) saveUsers() {
	snapshot := s.users.Snapshot()
	go func() {
		if err := s.store.SaveUsers(context.Background(), snapshot); err != nil {
			s.logger.Error("failed to save users", "error", err)
		}
	}()
}
