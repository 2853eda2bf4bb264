package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
	"gorm.io/gorm"
)

// TaskStore implements store.TaskStore with gorm.
type TaskStore struct {
	db     *gorm.DB
	inTx   bool
	logger *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore. If logger is nil, the default logger is used.
func NewTaskStore(db *gorm.DB, logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{db: db, logger: logger.With(slog.String("component", "task_store"))}
}

func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	m := taskToModel(task)
	m.ID = 0
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create task",
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "insert failed", mapError(err, store.ErrTaskNotFound))
	}
	task.ID = m.ID
	return nil
}

func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var m taskModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", "query failed", err)
	}
	return m.toDomain()
}

func (s *TaskStore) ListByOwnerAndStatus(
	ctx context.Context,
	owner uuid.UUID,
	statuses ...domain.TaskStatus,
) ([]*domain.Task, error) {
	tasks := []*domain.Task{}
	if len(statuses) == 0 {
		return tasks, nil
	}

	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = st.String()
	}

	var models []taskModel
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", owner.String(), names).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, store.NewStoreError("task", "list", "query failed", err)
	}

	for i := range models {
		task, err := models[i].toDomain()
		if err != nil {
			return nil, store.NewStoreError("task", "list", "decode failed", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	result := s.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"priority":    task.Priority,
			"status":      task.Status.String(),
			"updated_at":  task.UpdatedAt,
		})
	if result.Error != nil {
		return store.NewStoreError("task", "update", "update failed", mapError(result.Error, store.ErrTaskNotFound))
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&taskModel{}, id)
	if result.Error != nil {
		return store.NewStoreError("task", "delete", "delete failed", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

func (s *TaskStore) CountByOwnerAndStatus(
	ctx context.Context,
	owner uuid.UUID,
	status *domain.TaskStatus,
) (int, error) {
	query := s.db.WithContext(ctx).Model(&taskModel{}).Where("user_id = ?", owner.String())
	if status != nil {
		query = query.Where("status = ?", status.String())
	}

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return 0, store.NewStoreError("task", "count", "query failed", err)
	}
	return int(n), nil
}

// RunInTx runs fn in a gorm transaction. Nested calls reuse the outer one.
func (s *TaskStore) RunInTx(
	ctx context.Context,
	fn func(ctx context.Context, tasks store.TaskStore) error,
) error {
	if s.inTx {
		return fn(ctx, s)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &TaskStore{db: tx, inTx: true, logger: s.logger})
	})
}
