// Package mocks provides centralized mock implementations for testing.
//
// Store and service mocks are built on testify's mock.Mock so tests can set
// expectations with On(...).Return(...) and verify them with
// AssertExpectations. Collaborators with tiny surfaces (the JWT service,
// password hashing, description generation) use function fields with
// default return values instead.
//
//	tasks := new(mocks.TaskStore)
//	tasks.On("GetByID", mock.Anything, int64(7)).Return(task, nil)
//	svc, _ := service.NewTaskService(tasks, nil)
package mocks
