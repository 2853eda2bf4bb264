package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskService provides the task use cases for an authenticated caller.
type TaskService interface {
	// ListActive returns the caller's pending and in-progress tasks.
	ListActive(ctx context.Context, caller uuid.UUID) ([]*domain.Task, error)

	// ListCompleted returns the caller's completed tasks.
	ListCompleted(ctx context.Context, caller uuid.UUID) ([]*domain.Task, error)

	// AddTask creates a task owned by the caller.
	AddTask(ctx context.Context, caller uuid.UUID, draft domain.TaskDraft) (*domain.Task, error)

	// EditTask merges patch into the caller's task and returns the result.
	EditTask(ctx context.Context, caller uuid.UUID, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask permanently removes the caller's task.
	DeleteTask(ctx context.Context, caller uuid.UUID, id int64) error

	// Dashboard summarizes the caller's tasks by status.
	Dashboard(ctx context.Context, caller uuid.UUID) (domain.TaskCounts, error)
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a TaskService.
// It returns an error if the task store is nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

func (s *taskServiceImpl) ListActive(ctx context.Context, caller uuid.UUID) ([]*domain.Task, error) {
	return s.list(ctx, "list_active", caller, domain.ActiveStatuses()...)
}

func (s *taskServiceImpl) ListCompleted(ctx context.Context, caller uuid.UUID) ([]*domain.Task, error) {
	return s.list(ctx, "list_completed", caller, domain.StatusCompleted)
}

func (s *taskServiceImpl) list(
	ctx context.Context,
	op string,
	caller uuid.UUID,
	statuses ...domain.TaskStatus,
) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByOwnerAndStatus(ctx, caller, statuses...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("operation", op),
			slog.String("error", err.Error()),
			slog.String("user_id", caller.String()))
		return nil, NewServiceError(op, "failed to list tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) AddTask(
	ctx context.Context,
	caller uuid.UUID,
	draft domain.TaskDraft,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(caller, draft)
	if err != nil {
		log.Debug("rejected task draft", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to save task",
			slog.String("error", err.Error()),
			slog.String("user_id", caller.String()))
		return nil, NewServiceError("add_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("user_id", caller.String()))
	return task, nil
}

func (s *taskServiceImpl) EditTask(
	ctx context.Context,
	caller uuid.UUID,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := s.tasks.RunInTx(ctx, func(ctx context.Context, tasks store.TaskStore) error {
		current, err := s.ownedTask(ctx, tasks, caller, id)
		if err != nil {
			return err
		}

		merged, err := current.Merge(patch)
		if err != nil {
			return err
		}

		if err := tasks.Update(ctx, merged); err != nil {
			return NewServiceError("edit_task", "failed to save task", err)
		}
		updated = merged
		return nil
	})
	if err != nil {
		s.logFailure(log, "edit_task", caller, id, err)
		return nil, err
	}

	log.Info("task updated",
		slog.Int64("task_id", id),
		slog.String("status", updated.Status.String()))
	return updated, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, caller uuid.UUID, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.tasks.RunInTx(ctx, func(ctx context.Context, tasks store.TaskStore) error {
		if _, err := s.ownedTask(ctx, tasks, caller, id); err != nil {
			return err
		}
		if err := tasks.Delete(ctx, id); err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return err
			}
			return NewServiceError("delete_task", "failed to delete task", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(log, "delete_task", caller, id, err)
		return err
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// Dashboard counts each status separately and derives the total from those
// counts, so the total always equals their sum.
func (s *taskServiceImpl) Dashboard(ctx context.Context, caller uuid.UUID) (domain.TaskCounts, error) {
	var counts domain.TaskCounts
	for _, status := range domain.AllStatuses() {
		status := status
		n, err := s.tasks.CountByOwnerAndStatus(ctx, caller, &status)
		if err != nil {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to count tasks",
				slog.String("error", err.Error()),
				slog.String("status", status.String()),
				slog.String("user_id", caller.String()))
			return domain.TaskCounts{}, NewServiceError("dashboard", "failed to count tasks", err)
		}
		counts.Count(status, n)
	}
	return counts, nil
}

// ownedTask loads the task and applies the guard. A missing task is reported
// before ownership is considered.
func (s *taskServiceImpl) ownedTask(
	ctx context.Context,
	tasks store.TaskStore,
	caller uuid.UUID,
	id int64,
) (*domain.Task, error) {
	task, err := tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, err
		}
		return nil, NewServiceError("get_task", fmt.Sprintf("failed to load task %d", id), err)
	}
	if err := Authorize(caller, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) logFailure(log *slog.Logger, op string, caller uuid.UUID, id int64, err error) {
	attrs := []any{
		slog.String("operation", op),
		slog.Int64("task_id", id),
		slog.String("user_id", caller.String()),
		slog.String("error", err.Error()),
	}
	switch {
	case errors.Is(err, store.ErrTaskNotFound), errors.Is(err, ErrNotOwned), errors.Is(err, domain.ErrValidation):
		log.Debug("task operation rejected", attrs...)
	default:
		log.Error("task operation failed", attrs...)
	}
}
