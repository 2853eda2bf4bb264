package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// RegisterRequest is the payload of POST /api/user/register/.
// Field rules live in domain.NewUser.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

// UserResponse is a registered account. The password never appears.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
}

// LoginRequest is the payload of POST /api/token/.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries a fresh token pair and who it belongs to.
type LoginResponse struct {
	Access   string    `json:"access"`
	Refresh  string    `json:"refresh"`
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// RefreshRequest is the payload of POST /api/token/refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// RefreshResponse carries a rotated token pair.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TaskRequest is the payload for adding and editing tasks. Absent or null
// fields are left to their defaults (add) or stored values (edit). Any owner
// field sent by the client is ignored.
type TaskRequest struct {
	Title       *string            `json:"title"       validate:"omitempty,max=300"`
	Description *string            `json:"description"`
	Priority    *int               `json:"priority"    validate:"omitempty,min=1,max=5"`
	Status      *domain.TaskStatus `json:"status"`
}

func (req TaskRequest) draft() domain.TaskDraft {
	d := domain.TaskDraft{Priority: req.Priority, Status: req.Status}
	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	return d
}

func (req TaskRequest) patch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	}
}

// TaskResponse is a task as clients see it. User is null for ownerless tasks.
type TaskResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Priority    int               `json:"priority"`
	Status      domain.TaskStatus `json:"status"`
	User        *uuid.UUID        `json:"user"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Priority:    task.Priority,
		Status:      task.Status,
	}
	if task.UserID.Valid {
		owner := task.UserID.UUID
		resp.User = &owner
	}
	return resp
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}

// DashboardResponse keeps the field names existing clients read.
type DashboardResponse struct {
	TotalTasks      int `json:"total_tasks"`
	TasksCompleted  int `json:"tasks_completed"`
	TasksPending    int `json:"tasks_pending"`
	TasksInProgress int `json:"tasks_in_progress"`
}

func countsToResponse(c domain.TaskCounts) DashboardResponse {
	return DashboardResponse{
		TotalTasks:      c.Total,
		TasksCompleted:  c.Completed,
		TasksPending:    c.Pending,
		TasksInProgress: c.InProgress,
	}
}

// UserDetailsResponse is the caller's display name.
type UserDetailsResponse struct {
	FirstName string `json:"first_name"`
}

// GenerateRequest is the payload of POST /api/tasks/generate/.
type GenerateRequest struct {
	Title string `json:"title"`
}

// GenerateResponse holds a drafted task description.
type GenerateResponse struct {
	Description string `json:"description"`
}
