package middleware

import (
	"context"
	"net/http"
)

// SessionCookie is the cookie carrying the opaque session id.
const SessionCookie = "_SID"

// SessionResolver maps a session id to a username. The second result is
// false when the session does not exist or cannot be resolved.
type SessionResolver interface {
	Resolve(ctx context.Context, sid string) (string, bool)
}

// Auth is the access gate: it resolves the session cookie to a username
// and rejects unauthenticated requests to protected resources.
type Auth struct {
	sessions SessionResolver
}

func NewAuth(sessions SessionResolver) *Auth {
	return &Auth{sessions: sessions}
}

// RequireUser protects data and mutation routes: unauthenticated
// requests get 401 with an empty body.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userName, ok := a.resolve(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(SetUserName(r.Context(), userName)))
	})
}

// RequirePage protects page routes: unauthenticated requests are
// redirected to the login page.
func (a *Auth) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userName, ok := a.resolve(r)
		if !ok {
			http.Redirect(w, r, "/login.html", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(SetUserName(r.Context(), userName)))
	})
}

func (a *Auth) resolve(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}
	return a.sessions.Resolve(r.Context(), cookie.Value)
}
