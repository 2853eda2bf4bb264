package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskHandler serves the authenticated /api/tasks/ routes.
type TaskHandler struct {
	tasks service.TaskService
	users service.UserService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(tasks service.TaskService, users service.UserService) *TaskHandler {
	return &TaskHandler{tasks: tasks, users: users}
}

// ListActive handles GET /api/tasks/.
func (h *TaskHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListActive(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// ListCompleted handles GET /api/tasks/completed/.
func (h *TaskHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListCompleted(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// Add handles POST /api/tasks/add/.
func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	req, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.AddTask(r.Context(), userID, req.draft())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// Edit handles PUT /api/tasks/{id}/. Fields left out of the body keep their
// stored values. The body is only decoded here: the merged task is validated
// by the service after the lookup and owner check.
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := handleUserIDAndPathID(w, r)
	if !ok {
		return
	}

	req, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.EditTask(r.Context(), userID, id, req.patch())
	if err != nil {
		handleTaskError(w, r, id, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /api/tasks/{id}/.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := handleUserIDAndPathID(w, r)
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), userID, id); err != nil {
		handleTaskError(w, r, id, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// Dashboard handles GET /api/tasks/dashboard/.
func (h *TaskHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	counts, err := h.tasks.Dashboard(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, countsToResponse(counts))
}

// UserDetails handles GET /api/tasks/user_details/. A valid token whose user
// no longer exists is treated as unauthenticated.
func (h *TaskHandler) UserDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	summary, err := h.users.CurrentUserSummary(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "User not found", err)
			return
		}
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, UserDetailsResponse{FirstName: summary.FirstName})
}

func (h *TaskHandler) caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication credentials were not provided.")
	}
	return userID, ok
}

func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (TaskRequest, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return req, false
	}
	return req, true
}
