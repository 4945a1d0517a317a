package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jaekwang-park/todo-web/internal/model"
	"github.com/jaekwang-park/todo-web/internal/service"
	"github.com/jaekwang-park/todo-web/internal/session"
	"github.com/jaekwang-park/todo-web/internal/userdir"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func newAuthService(t *testing.T, st *mockStore) *service.AuthService {
	t.Helper()
	svc, err := service.NewAuthService(context.Background(), st, session.NewMemory(), discardLogger())
	if err != nil {
		t.Fatalf("failed to create auth service: %v", err)
	}
	return svc
}

func TestAuthService_SignUpCreatesSession(t *testing.T) {
	svc := newAuthService(t, &mockStore{})

	sid, err := svc.SignUp(context.Background(), "alice", "password")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	userName, ok := svc.Resolve(context.Background(), sid)
	if !ok || userName != "alice" {
		t.Errorf("expected session for alice, got %q (ok=%v)", userName, ok)
	}
}

func TestAuthService_SignUpPolicyViolations(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		password string
		wantErr  error
	}{
		{"short username", "as", "password", userdir.ErrInvalidUsername},
		{"short password", "asas", "pas", userdir.ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthService(t, &mockStore{})
			if _, err := svc.SignUp(context.Background(), tt.userName, tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAuthService_SignUpTakenUsername(t *testing.T) {
	st := &mockStore{
		loadUsersFn: func(ctx context.Context) (map[string]model.Credential, error) {
			return map[string]model.Credential{"alice": {Password: hashOf(t, "password")}}, nil
		},
	}
	svc := newAuthService(t, st)

	if _, err := svc.SignUp(context.Background(), "alice", "other"); !errors.Is(err, userdir.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_SignUpTriggersUserSave(t *testing.T) {
	saved := make(chan map[string]model.Credential, 1)
	st := &mockStore{
		saveUsersFn: func(ctx context.Context, users map[string]model.Credential) error {
			saved <- users
			return nil
		},
	}
	svc := newAuthService(t, st)

	if _, err := svc.SignUp(context.Background(), "alice", "password"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	select {
	case users := <-saved:
		if _, ok := users["alice"]; !ok {
			t.Errorf("expected alice in saved users, got %+v", users)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a user save after signup")
	}
}

func TestAuthService_Login(t *testing.T) {
	hash := hashOf(t, "password")
	st := &mockStore{
		loadUsersFn: func(ctx context.Context) (map[string]model.Credential, error) {
			return map[string]model.Credential{"alice": {Password: hash}}, nil
		},
	}

	tests := []struct {
		name     string
		userName string
		password string
		wantOK   bool
	}{
		{"valid credentials", "alice", "password", true},
		{"wrong password", "alice", "invalid", false},
		{"unknown user", "mallory", "password", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthService(t, st)

			sid, ok, err := svc.Login(context.Background(), tt.userName, tt.password)
			if err != nil {
				t.Fatalf("login failed: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if tt.wantOK {
				if userName, resolved := svc.Resolve(context.Background(), sid); !resolved || userName != tt.userName {
					t.Errorf("expected live session for %q, got %q", tt.userName, userName)
				}
			}
		})
	}
}

func TestAuthService_LogoutDestroysSession(t *testing.T) {
	svc := newAuthService(t, &mockStore{})

	sid, err := svc.SignUp(context.Background(), "alice", "password")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if err := svc.Logout(context.Background(), sid); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, ok := svc.Resolve(context.Background(), sid); ok {
		t.Error("expected session destroyed after logout")
	}

	// Logout of an unknown session is a no-op.
	if err := svc.Logout(context.Background(), sid); err != nil {
		t.Errorf("expected repeated logout to succeed, got %v", err)
	}
}

func TestAuthService_IsAvailable(t *testing.T) {
	st := &mockStore{
		loadUsersFn: func(ctx context.Context) (map[string]model.Credential, error) {
			return map[string]model.Credential{"alice": {Password: "x"}}, nil
		},
	}
	svc := newAuthService(t, st)

	if svc.IsAvailable("alice") {
		t.Error("expected alice to be taken")
	}
	if !svc.IsAvailable("uniq") {
		t.Error("expected uniq to be available")
	}
}
