package domain

import "time"

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status of a task.
type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusComplete   Status = "complete"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusIncomplete || s == StatusComplete
}

// Task is the domain entity for a single task.
// OwnerID is set once at creation and never changes.
type Task struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description string
	Priority    Priority
	Status      Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
