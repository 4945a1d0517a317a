package todolist

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jaekwang-park/todo-web/internal/model"
)

// ErrNotFound is returned when no todo or task matches the given id.
var ErrNotFound = errors.New("not found")

// List is one user's ordered todo collection. New todos go to the front,
// new tasks to the back of their todo. Ids come from monotonic counters
// and are never reused, even across a snapshot reload.
type List struct {
	todos    []model.Todo
	nextTodo int
	nextTask map[string]int
}

func New() *List {
	return &List{nextTask: make(map[string]int)}
}

// Load rebuilds a list from a snapshot, restoring the id counters past
// the highest ids present so fresh ids stay unique.
func Load(snapshot []model.Todo) *List {
	l := New()
	l.todos = make([]model.Todo, len(snapshot))
	for i, todo := range snapshot {
		l.todos[i] = todo.Clone()
		if n, err := strconv.Atoi(todo.ID); err == nil && n >= l.nextTodo {
			l.nextTodo = n + 1
		}
		for _, task := range todo.Tasks {
			suffix := strings.TrimPrefix(task.ID, todo.ID+"_")
			if n, err := strconv.Atoi(suffix); err == nil && n >= l.nextTask[todo.ID] {
				l.nextTask[todo.ID] = n + 1
			}
		}
	}
	return l
}

// Snapshot returns a deep copy of the collection in current order,
// suitable for serialization or persistence.
func (l *List) Snapshot() []model.Todo {
	snapshot := make([]model.Todo, len(l.todos))
	for i, todo := range l.todos {
		snapshot[i] = todo.Clone()
	}
	return snapshot
}

// AddTodo prepends a new todo with a fresh id and an empty task list.
func (l *List) AddTodo(title string) {
	todo := model.Todo{
		Title: title,
		ID:    strconv.Itoa(l.nextTodo),
		Tasks: []model.Task{},
	}
	l.nextTodo++
	l.todos = append([]model.Todo{todo}, l.todos...)
}

func (l *List) RenameTodo(todoID, title string) error {
	todo, err := l.find(todoID)
	if err != nil {
		return err
	}
	todo.Title = title
	return nil
}

func (l *List) DeleteTodo(todoID string) error {
	for i, todo := range l.todos {
		if todo.ID == todoID {
			l.todos = append(l.todos[:i], l.todos[i+1:]...)
			delete(l.nextTask, todoID)
			return nil
		}
	}
	return ErrNotFound
}

// AddTask appends a new incomplete task to the given todo.
func (l *List) AddTask(todoID, name string) error {
	todo, err := l.find(todoID)
	if err != nil {
		return err
	}
	task := model.Task{
		Name: name,
		ID:   todoID + "_" + strconv.Itoa(l.nextTask[todoID]),
	}
	l.nextTask[todoID]++
	todo.Tasks = append(todo.Tasks, task)
	return nil
}

func (l *List) RenameTask(todoID, taskID, name string) error {
	task, err := l.findTask(todoID, taskID)
	if err != nil {
		return err
	}
	task.Name = name
	return nil
}

func (l *List) ToggleTaskStatus(todoID, taskID string) error {
	task, err := l.findTask(todoID, taskID)
	if err != nil {
		return err
	}
	task.Status = !task.Status
	return nil
}

func (l *List) DeleteTask(todoID, taskID string) error {
	todo, err := l.find(todoID)
	if err != nil {
		return err
	}
	for i, task := range todo.Tasks {
		if task.ID == taskID {
			todo.Tasks = append(todo.Tasks[:i], todo.Tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (l *List) find(todoID string) (*model.Todo, error) {
	for i := range l.todos {
		if l.todos[i].ID == todoID {
			return &l.todos[i], nil
		}
	}
	return nil, ErrNotFound
}

func (l *List) findTask(todoID, taskID string) (*model.Task, error) {
	todo, err := l.find(todoID)
	if err != nil {
		return nil, err
	}
	for i := range todo.Tasks {
		if todo.Tasks[i].ID == taskID {
			return &todo.Tasks[i], nil
		}
	}
	return nil, ErrNotFound
}
