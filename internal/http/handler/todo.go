package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jaekwang-park/todo-web/internal/metrics"
	"github.com/jaekwang-park/todo-web/internal/middleware"
	"github.com/jaekwang-park/todo-web/internal/model"
	"github.com/jaekwang-park/todo-web/internal/service"
)

// TodoHandler serves the todo list and its mutation endpoints. Every
// mutation responds with the user's full post-mutation collection, never
// a delta. The access gate has already attached the username; the field
// validator has already enforced required fields.
type TodoHandler struct {
	svc     *service.TodoService
	metrics *metrics.Metrics
}

func NewTodoHandler(svc *service.TodoService, m *metrics.Metrics) *TodoHandler {
	return &TodoHandler{svc: svc, metrics: m}
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.svc.Collection(middleware.GetUserName(r)))
}

func (h *TodoHandler) AddTodo(w http.ResponseWriter, r *http.Request) {
	collection, err := h.svc.AddTodo(middleware.GetUserName(r), middleware.Field(r, "todoTitle"))
	h.respond(w, r, collection, err)
}

func (h *TodoHandler) RenameTodo(w http.ResponseWriter, r *http.Request) {
	collection, err := h.svc.RenameTodo(middleware.GetUserName(r),
		middleware.Field(r, "todoId"), middleware.Field(r, "todoTitle"))
	h.respond(w, r, collection, err)
}

func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	collection, err := h.svc.DeleteTodo(middleware.GetUserName(r), middleware.Field(r, "todoId"))
	h.respond(w, r, collection, err)
}

func (h *TodoHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	collection, err := h.svc.AddTask(middleware.GetUserName(r),
		middleware.Field(r, "todoId"), middleware.Field(r, "taskName"))
	h.respond(w, r, collection, err)
}

func (h *TodoHandler) RenameTask(w http.ResponseWriter, r *http.Request) {
	collection, err := h.svc.RenameTask(middleware.GetUserName(r),
		middleware.Field(r, "todoId"), middleware.Field(r, "taskId"), middleware.Field(r, "newName"))
	h.respond(w, r, collection, err)
}

func (h *TodoHandler) ToggleTaskStatus(w http.ResponseWriter, r *http.Request) {
	collection, err := h.svc.ToggleTaskStatus(middleware.GetUserName(r),
		middleware.Field(r, "todoId"), middleware.Field(r, "taskId"))
	h.respond(w, r, collection, err)
}

func (h *TodoHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	collection, err := h.svc.DeleteTask(middleware.GetUserName(r),
		middleware.Field(r, "todoId"), middleware.Field(r, "taskId"))
	h.respond(w, r, collection, err)
}

func (h *TodoHandler) respond(w http.ResponseWriter, r *http.Request, collection []model.Todo, err error) {
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			WriteNotAcceptable(w)
			return
		}
		slog.ErrorContext(r.Context(), "todo mutation failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.metrics.TodoMutations.Inc()
	WriteJSON(w, http.StatusOK, collection)
}
