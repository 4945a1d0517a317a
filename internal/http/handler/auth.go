package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jaekwang-park/todo-web/internal/metrics"
	"github.com/jaekwang-park/todo-web/internal/middleware"
	"github.com/jaekwang-park/todo-web/internal/service"
	"github.com/jaekwang-park/todo-web/internal/userdir"
)

// AuthHandler serves signup, login, logout, username lookup and
// availability checks. Required body fields are enforced upstream by the
// field validator middleware.
type AuthHandler struct {
	svc     *service.AuthService
	metrics *metrics.Metrics
}

func NewAuthHandler(svc *service.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{svc: svc, metrics: m}
}

// SignUp registers the user, starts a session and redirects to the main
// page. Policy violations and taken usernames answer 406.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	userName := middleware.Field(r, "userName")
	password := middleware.Field(r, "password")

	sid, err := h.svc.SignUp(r.Context(), userName, password)
	if err != nil {
		switch {
		case errors.Is(err, userdir.ErrUserExists),
			errors.Is(err, userdir.ErrInvalidUsername),
			errors.Is(err, userdir.ErrWeakPassword):
			WriteNotAcceptable(w)
		default:
			slog.ErrorContext(r.Context(), "signup failed", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	h.metrics.UsersRegistered.Inc()
	setSessionCookie(w, sid)
	http.Redirect(w, r, "/index.html", http.StatusFound)
}

type loginResponse struct {
	IsSuccessful bool `json:"isSuccessful"`
}

// Login answers 200 either way; the session cookie is only set on
// success.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	userName := middleware.Field(r, "userName")
	password := middleware.Field(r, "password")

	sid, ok, err := h.svc.Login(r.Context(), userName, password)
	if err != nil {
		slog.ErrorContext(r.Context(), "login failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if ok {
		setSessionCookie(w, sid)
	}
	WriteJSON(w, http.StatusOK, loginResponse{IsSuccessful: ok})
}

// Logout destroys the session and expires the cookie. Always 200, even
// without a live session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if err := h.svc.Logout(r.Context(), cookie.Value); err != nil {
			slog.ErrorContext(r.Context(), "logout failed", "error", err)
		}
	}
	clearSessionCookie(w)
	w.WriteHeader(http.StatusOK)
}

// UserName serves the authenticated user's name.
func (h *AuthHandler) UserName(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"userName": middleware.GetUserName(r)})
}

type availabilityResponse struct {
	IsUniq bool `json:"isUniq"`
}

// Availability reports whether the entered username is still free. Open
// to unauthenticated requests: the signup form polls it.
func (h *AuthHandler) Availability(w http.ResponseWriter, r *http.Request) {
	entered := middleware.Field(r, "entered")
	WriteJSON(w, http.StatusOK, availabilityResponse{IsUniq: h.svc.IsAvailable(entered)})
}

func setSessionCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:  middleware.SessionCookie,
		Value: sid,
		Path:  "/",
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   middleware.SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
