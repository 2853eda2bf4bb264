package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field limits for tasks.
const (
	MaxTitleLength  = 300
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = MinPriority
)

// Task is a personal to-do item. UserID is null once the owning user has been
// deleted; such tasks are no longer reachable by anyone.
type Task struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"       validate:"required,max=300"`
	Description string        `json:"description"`
	Priority    int           `json:"priority"    validate:"min=1,max=5"`
	Status      TaskStatus    `json:"status"      validate:"task_status"`
	UserID      uuid.NullUUID `json:"user"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TaskDraft is the unvalidated input for creating a task. Nil pointers take
// their defaults. A draft has no owner; the owner is always the creator.
type TaskDraft struct {
	Title       string
	Description string
	Priority    *int
	Status      *TaskStatus
}

// TaskPatch describes an edit. Nil fields keep the stored value, non-nil
// fields replace it.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *int
	Status      *TaskStatus
}

// TaskCounts is a per-status summary of one user's tasks.
type TaskCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// NewTask builds a task owned by owner from draft, applying defaults.
// The returned task has no ID until it is stored.
func NewTask(owner uuid.UUID, draft TaskDraft) (*Task, error) {
	if owner == uuid.Nil {
		return nil, ErrEmptyUserID
	}

	now := time.Now().UTC()
	task := &Task{
		Title:       strings.TrimSpace(draft.Title),
		Description: draft.Description,
		Priority:    DefaultPriority,
		Status:      StatusPending,
		UserID:      uuid.NullUUID{UUID: owner, Valid: true},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if draft.Priority != nil {
		task.Priority = *draft.Priority
	}
	if draft.Status != nil {
		task.Status = *draft.Status
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the field constraints of the task.
// Returns a *ValidationError describing every offending field.
func (t *Task) Validate() error {
	return validateStruct(t)
}

// IsOwnedBy reports whether userID is the task's current owner.
func (t *Task) IsOwnedBy(userID uuid.UUID) bool {
	return t.UserID.Valid && t.UserID.UUID == userID
}

// Merge returns a copy of t with patch applied and UpdatedAt refreshed.
// The copy is validated as a whole; t itself is never modified.
func (t *Task) Merge(patch TaskPatch) (*Task, error) {
	merged := *t
	if patch.Title != nil {
		merged.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Priority != nil {
		merged.Priority = *patch.Priority
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}

	merged.UpdatedAt = time.Now().UTC()
	if merged.UpdatedAt.Before(t.UpdatedAt) {
		merged.UpdatedAt = t.UpdatedAt
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Count adds n tasks with the given status to the summary. Unknown statuses
// are ignored so Total always equals the sum of the per-status counts.
func (c *TaskCounts) Count(status TaskStatus, n int) {
	switch status {
	case StatusPending:
		c.Pending += n
	case StatusInProgress:
		c.InProgress += n
	case StatusCompleted:
		c.Completed += n
	default:
		return
	}
	c.Total += n
}
