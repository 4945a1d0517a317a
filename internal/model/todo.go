package model

// Task is a completable item belonging to exactly one Todo. The ID is
// scoped to the parent todo ("<todoID>_<n>") and never changes once
// assigned.
type Task struct {
	Name   string `json:"name"`
	ID     string `json:"id"`
	Status bool   `json:"status"`
}

// Todo is a named, ordered list of tasks owned by one user.
type Todo struct {
	Title string `json:"title"`
	ID    string `json:"id"`
	Tasks []Task `json:"tasks"`
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the live task slice.
func (t Todo) Clone() Todo {
	tasks := make([]Task, len(t.Tasks))
	copy(tasks, t.Tasks)
	t.Tasks = tasks
	return t
}
