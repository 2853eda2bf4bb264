package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// TaskService is a testify mock of service.TaskService.
type TaskService struct {
	mock.Mock
}

var _ service.TaskService = (*TaskService)(nil)

func (m *TaskService) ListActive(ctx context.Context, caller uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, caller)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskService) ListCompleted(ctx context.Context, caller uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, caller)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskService) AddTask(ctx context.Context, caller uuid.UUID, draft domain.TaskDraft) (*domain.Task, error) {
	args := m.Called(ctx, caller, draft)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskService) EditTask(
	ctx context.Context,
	caller uuid.UUID,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	args := m.Called(ctx, caller, id, patch)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskService) DeleteTask(ctx context.Context, caller uuid.UUID, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *TaskService) Dashboard(ctx context.Context, caller uuid.UUID) (domain.TaskCounts, error) {
	args := m.Called(ctx, caller)
	counts, _ := args.Get(0).(domain.TaskCounts)
	return counts, args.Error(1)
}

// UserService is a testify mock of service.UserService.
type UserService struct {
	mock.Mock
}

var _ service.UserService = (*UserService)(nil)

func (m *UserService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	args := m.Called(ctx, reg)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserService) CurrentUserSummary(ctx context.Context, caller uuid.UUID) (*domain.UserSummary, error) {
	args := m.Called(ctx, caller)
	if summary, ok := args.Get(0).(*domain.UserSummary); ok {
		return summary, args.Error(1)
	}
	return nil, args.Error(1)
}
