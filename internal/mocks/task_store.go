package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TaskStore is a testify mock of store.TaskStore. RunInTx is not an
// expectation; it calls fn with the mock itself and records nothing.
type TaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TaskStore)(nil)

func (m *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskStore) ListByOwnerAndStatus(
	ctx context.Context,
	owner uuid.UUID,
	statuses ...domain.TaskStatus,
) ([]*domain.Task, error) {
	args := m.Called(ctx, owner, statuses)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *TaskStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TaskStore) CountByOwnerAndStatus(
	ctx context.Context,
	owner uuid.UUID,
	status *domain.TaskStatus,
) (int, error) {
	args := m.Called(ctx, owner, status)
	return args.Int(0), args.Error(1)
}

func (m *TaskStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tasks store.TaskStore) error) error {
	return fn(ctx, m)
}
