package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaekwang-park/todo-web/internal/http/handler"
	"github.com/jaekwang-park/todo-web/internal/metrics"
	"github.com/jaekwang-park/todo-web/internal/middleware"
	"github.com/jaekwang-park/todo-web/internal/service"
)

// NewRouter wires the full HTTP surface. Per-route chain order follows
// the request flow: field validation first, then the access gate, then
// the handler.
func NewRouter(authSvc *service.AuthService, todoSvc *service.TodoService, m *metrics.Metrics, webDir string) http.Handler {
	gate := middleware.NewAuth(authSvc)
	pages := handler.NewPageHandler(webDir)
	authHandler := handler.NewAuthHandler(authSvc, m)
	todoHandler := handler.NewTodoHandler(todoSvc, m)

	r := chi.NewRouter()
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.NotFound)

	r.Method(http.MethodGet, "/health", handler.NewHealthHandler())
	r.Method(http.MethodGet, "/metrics", m.Handler())

	// Page routes: unauthenticated users are redirected to the login page.
	r.Group(func(r chi.Router) {
		r.Use(gate.RequirePage)
		r.Get("/", pages.Root)
		r.Get("/index.html", pages.Index)
	})

	// Protected data routes: 401 with empty body when unauthenticated.
	r.Group(func(r chi.Router) {
		r.Use(gate.RequireUser)
		r.Get("/user/todoList", todoHandler.List)
		r.Get("/user/userName", authHandler.UserName)
	})

	// Account routes, open to unauthenticated requests.
	r.With(middleware.RequireFields("userName", "password")).Post("/signUp", authHandler.SignUp)
	r.With(middleware.RequireFields("userName", "password")).Post("/login", authHandler.Login)
	r.With(middleware.RequireFields("entered")).Post("/userNameAvailability", authHandler.Availability)
	r.Post("/logout", authHandler.Logout)

	// Mutation routes: every response is the full current collection.
	r.With(middleware.RequireFields("todoTitle"), gate.RequireUser).
		Post("/addTodo", todoHandler.AddTodo)
	r.With(middleware.RequireFields("todoId", "todoTitle"), gate.RequireUser).
		Post("/renameTodo", todoHandler.RenameTodo)
	r.With(middleware.RequireFields("todoId"), gate.RequireUser).
		Post("/deleteTodo", todoHandler.DeleteTodo)
	r.With(middleware.RequireFields("todoId", "taskName"), gate.RequireUser).
		Post("/addTask", todoHandler.AddTask)
	r.With(middleware.RequireFields("todoId", "taskId", "newName"), gate.RequireUser).
		Post("/renameTask", todoHandler.RenameTask)
	r.With(middleware.RequireFields("todoId", "taskId"), gate.RequireUser).
		Post("/toggleTaskStatus", todoHandler.ToggleTaskStatus)
	r.With(middleware.RequireFields("todoId", "taskId"), gate.RequireUser).
		Post("/deleteTask", todoHandler.DeleteTask)

	// Remaining GETs serve static assets (login.html and friends).
	r.Get("/*", pages.Static)

	return r
}
