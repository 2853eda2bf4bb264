package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleTask(id int64, owner uuid.UUID, status domain.TaskStatus) *domain.Task {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Task{
		ID:        id,
		Title:     fmt.Sprintf("task %d", id),
		Priority:  2,
		Status:    status,
		UserID:    uuid.NullUUID{UUID: owner, Valid: true},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTaskHandler(t *testing.T) (*TaskHandler, *mocks.TaskService, *mocks.UserService) {
	t.Helper()
	tasks := &mocks.TaskService{}
	users := &mocks.UserService{}
	t.Cleanup(func() {
		tasks.AssertExpectations(t)
		users.AssertExpectations(t)
	})
	return NewTaskHandler(tasks, users), tasks, users
}

func TestTaskHandler_ListActive(t *testing.T) {
	caller := uuid.New()

	t.Run("returns the caller's tasks", func(t *testing.T) {
		h, tasks, _ := newTaskHandler(t)
		tasks.On("ListActive", mock.Anything, caller).Return([]*domain.Task{
			sampleTask(1, caller, domain.StatusPending),
			sampleTask(2, caller, domain.StatusInProgress),
		}, nil)

		rr := httptest.NewRecorder()
		h.ListActive(rr, withCaller(newRequest(t, http.MethodGet, "/api/tasks/", nil), caller))

		require.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody[[]map[string]interface{}](t, rr)
		require.Len(t, body, 2)
		assert.Equal(t, "pending", body[0]["status"])
		assert.Equal(t, "in_progress", body[1]["status"])
		assert.Equal(t, caller.String(), body[0]["user"])
		assert.EqualValues(t, 1, body[0]["id"])
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h, _, _ := newTaskHandler(t)
		rr := httptest.NewRecorder()
		h.ListActive(rr, newRequest(t, http.MethodGet, "/api/tasks/", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("store failure is a generic 500", func(t *testing.T) {
		h, tasks, _ := newTaskHandler(t)
		tasks.On("ListActive", mock.Anything, caller).
			Return(nil, service.NewServiceError("list_active", "failed to list tasks",
				errors.New("dial postgres://app:hunter2@db:5432 failed")))

		rr := httptest.NewRecorder()
		h.ListActive(rr, withCaller(newRequest(t, http.MethodGet, "/api/tasks/", nil), caller))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "hunter2")
		assert.Equal(t, "An unexpected error occurred", decodeBody[shared.ErrorResponse](t, rr).Error)
	})
}

func TestTaskHandler_ListCompleted(t *testing.T) {
	caller := uuid.New()
	h, tasks, _ := newTaskHandler(t)
	tasks.On("ListCompleted", mock.Anything, caller).Return([]*domain.Task{}, nil)

	rr := httptest.NewRecorder()
	h.ListCompleted(rr, withCaller(newRequest(t, http.MethodGet, "/api/tasks/completed/", nil), caller))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestTaskHandler_Add(t *testing.T) {
	caller := uuid.New()

	t.Run("creates a task owned by the caller", func(t *testing.T) {
		h, tasks, _ := newTaskHandler(t)
		created := sampleTask(5, caller, domain.StatusPending)
		tasks.On("AddTask", mock.Anything, caller, mock.MatchedBy(func(d domain.TaskDraft) bool {
			return d.Title == "Buy milk" && d.Priority != nil && *d.Priority == 2 && d.Status == nil
		})).Return(created, nil)

		body := fmt.Sprintf(`{"title":"Buy milk","priority":2,"user":%q}`, uuid.New())
		rr := httptest.NewRecorder()
		h.Add(rr, withCaller(newRequest(t, http.MethodPost, "/api/tasks/add/", body), caller))

		require.Equal(t, http.StatusCreated, rr.Code)
		resp := decodeBody[TaskResponse](t, rr)
		assert.Equal(t, int64(5), resp.ID)
		require.NotNil(t, resp.User)
		assert.Equal(t, caller, *resp.User)
	})

	t.Run("domain validation errors list fields", func(t *testing.T) {
		h, tasks, _ := newTaskHandler(t)
		tasks.On("AddTask", mock.Anything, caller, mock.Anything).
			Return(nil, domain.NewValidationError("title", "this field is required"))

		rr := httptest.NewRecorder()
		h.Add(rr, withCaller(newRequest(t, http.MethodPost, "/api/tasks/add/", `{"description":"x"}`), caller))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeBody[shared.ErrorResponse](t, rr)
		assert.Equal(t, map[string]string{"title": "this field is required"}, resp.Fields)
		assert.NotEmpty(t, resp.TraceID)
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"priority out of range", `{"title":"x","priority":9}`, "priority"},
		{"priority of wrong type", `{"title":"x","priority":"high"}`, "priority"},
		{"unknown status", `{"title":"x","status":"done"}`, "status"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, _, _ := newTaskHandler(t)
			rr := httptest.NewRecorder()
			h.Add(rr, withCaller(newRequest(t, http.MethodPost, "/api/tasks/add/", tc.body), caller))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, decodeBody[shared.ErrorResponse](t, rr).Fields, tc.field)
		})
	}

	t.Run("malformed JSON", func(t *testing.T) {
		h, _, _ := newTaskHandler(t)
		rr := httptest.NewRecorder()
		h.Add(rr, withCaller(newRequest(t, http.MethodPost, "/api/tasks/add/", `{"title":`), caller))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid request format", decodeBody[shared.ErrorResponse](t, rr).Error)
	})
}

func TestTaskHandler_Edit(t *testing.T) {
	caller := uuid.New()
	path := "/api/tasks/7/"

	t.Run("merges the supplied fields", func(t *testing.T) {
		h, tasks, _ := newTaskHandler(t)
		updated := sampleTask(7, caller, domain.StatusCompleted)
		tasks.On("EditTask", mock.Anything, caller, int64(7), mock.MatchedBy(func(p domain.TaskPatch) bool {
			return p.Status != nil && *p.Status == domain.StatusCompleted &&
				p.Title == nil && p.Description == nil && p.Priority == nil
		})).Return(updated, nil)

		rr := httptest.NewRecorder()
		req := withPathID(withCaller(newRequest(t, http.MethodPut, path, `{"status":"completed"}`), caller), "7")
		h.Edit(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.StatusCompleted, decodeBody[TaskResponse](t, rr).Status)
	})

	errCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"missing task", store.ErrTaskNotFound, http.StatusNotFound, "Task with ID 7 does not exist."},
		{"someone else's task", service.ErrNotOwned, http.StatusForbidden, "You do not have permission to perform this action."},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			h, tasks, _ := newTaskHandler(t)
			tasks.On("EditTask", mock.Anything, caller, int64(7), mock.Anything).Return(nil, tc.err)

			rr := httptest.NewRecorder()
			req := withPathID(withCaller(newRequest(t, http.MethodPut, path, `{"title":"new"}`), caller), "7")
			h.Edit(rr, req)

			require.Equal(t, tc.status, rr.Code)
			assert.Equal(t, tc.message, decodeBody[shared.ErrorResponse](t, rr).Error)
		})
	}

	// Out-of-range values are left to the service, which validates the
	// merged task only after the lookup and owner check.
	lookupFirst := []struct {
		name   string
		err    error
		status int
	}{
		{"someone else's task with bad priority", service.ErrNotOwned, http.StatusForbidden},
		{"missing task with bad priority", store.ErrTaskNotFound, http.StatusNotFound},
		{"own task with bad priority", domain.NewValidationError("priority", "must be between 1 and 5"), http.StatusBadRequest},
	}
	for _, tc := range lookupFirst {
		t.Run(tc.name, func(t *testing.T) {
			h, tasks, _ := newTaskHandler(t)
			tasks.On("EditTask", mock.Anything, caller, int64(7), mock.MatchedBy(func(p domain.TaskPatch) bool {
				return p.Priority != nil && *p.Priority == 9
			})).Return(nil, tc.err)

			rr := httptest.NewRecorder()
			req := withPathID(withCaller(newRequest(t, http.MethodPut, path, `{"priority":9}`), caller), "7")
			h.Edit(rr, req)

			assert.Equal(t, tc.status, rr.Code)
		})
	}

	t.Run("bad id", func(t *testing.T) {
		h, _, _ := newTaskHandler(t)
		rr := httptest.NewRecorder()
		req := withPathID(withCaller(newRequest(t, http.MethodPut, "/api/tasks/abc/", `{}`), caller), "abc")
		h.Edit(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	for _, id := range []string{"0", "99999999999999999999"} {
		t.Run("unstorable id "+id, func(t *testing.T) {
			h, _, _ := newTaskHandler(t)
			rr := httptest.NewRecorder()
			req := withPathID(withCaller(newRequest(t, http.MethodPut, "/api/tasks/"+id+"/", `{"title":"x"}`), caller), id)
			h.Edit(rr, req)

			require.Equal(t, http.StatusNotFound, rr.Code)
			assert.Equal(t, "Task with ID "+id+" does not exist.", decodeBody[shared.ErrorResponse](t, rr).Error)
		})
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	caller := uuid.New()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"missing task", store.ErrTaskNotFound, http.StatusNotFound},
		{"someone else's task", service.ErrNotOwned, http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, tasks, _ := newTaskHandler(t)
			tasks.On("DeleteTask", mock.Anything, caller, int64(42)).Return(tc.err)

			rr := httptest.NewRecorder()
			req := withPathID(withCaller(newRequest(t, http.MethodDelete, "/api/tasks/42/", nil), caller), "42")
			h.Delete(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			if tc.status == http.StatusNoContent {
				assert.Empty(t, rr.Body.String())
			}
		})
	}

	t.Run("id zero", func(t *testing.T) {
		h, _, _ := newTaskHandler(t)
		rr := httptest.NewRecorder()
		h.Delete(rr, withPathID(withCaller(newRequest(t, http.MethodDelete, "/api/tasks/0/", nil), caller), "0"))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h, _, _ := newTaskHandler(t)
		rr := httptest.NewRecorder()
		h.Delete(rr, withPathID(newRequest(t, http.MethodDelete, "/api/tasks/42/", nil), "42"))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestTaskHandler_Dashboard(t *testing.T) {
	caller := uuid.New()
	h, tasks, _ := newTaskHandler(t)
	tasks.On("Dashboard", mock.Anything, caller).
		Return(domain.TaskCounts{Total: 6, Pending: 3, InProgress: 1, Completed: 2}, nil)

	rr := httptest.NewRecorder()
	h.Dashboard(rr, withCaller(newRequest(t, http.MethodGet, "/api/tasks/dashboard/", nil), caller))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"total_tasks":6,"tasks_completed":2,"tasks_pending":3,"tasks_in_progress":1}`,
		rr.Body.String())
}

func TestTaskHandler_UserDetails(t *testing.T) {
	caller := uuid.New()

	t.Run("returns the first name", func(t *testing.T) {
		h, _, users := newTaskHandler(t)
		users.On("CurrentUserSummary", mock.Anything, caller).Return(&domain.UserSummary{FirstName: "Ada"}, nil)

		rr := httptest.NewRecorder()
		h.UserDetails(rr, withCaller(newRequest(t, http.MethodGet, "/api/tasks/user_details/", nil), caller))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"first_name":"Ada"}`, rr.Body.String())
	})

	t.Run("deleted user is unauthenticated", func(t *testing.T) {
		h, _, users := newTaskHandler(t)
		users.On("CurrentUserSummary", mock.Anything, caller).Return(nil, store.ErrUserNotFound)

		rr := httptest.NewRecorder()
		h.UserDetails(rr, withCaller(newRequest(t, http.MethodGet, "/api/tasks/user_details/", nil), caller))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
