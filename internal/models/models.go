package models

import "time"

type User struct {
	ID        int       `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type TaskStatus struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Label struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Task carries its references fully resolved; the task service assembles
// them from the referenced ids before returning.
type Task struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	TaskStatus  TaskStatus `json:"task_status"`
	Author      User       `json:"author"`
	Executor    *User      `json:"executor,omitempty"`
	Labels      []Label    `json:"labels"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Principal is the authenticated identity a verified bearer token resolves
// to. Services receive it explicitly; nothing reads it from ambient state.
type Principal struct {
	ID    int
	Email string
}
