package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// getUserIDFromContext returns the authenticated caller. It reports false
// when the auth middleware did not run or stored no identity.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return shared.UserIDFromContext(r.Context())
}

// getPathID parses a task id URL parameter. A number that cannot be a stored
// id (zero, or too large for int64) yields store.ErrTaskNotFound.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, fmt.Errorf("missing %s parameter", paramName)
	}
	if strings.Trim(raw, "0123456789") != "" {
		return 0, fmt.Errorf("invalid %s parameter %q", paramName, raw)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q is out of range", store.ErrTaskNotFound, paramName, raw)
	}
	return id, nil
}

// handleUserIDAndPathID extracts the caller and the {id} parameter, writing
// the error reply itself when either is unusable. ok is false in that case.
func handleUserIDAndPathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, int64, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return uuid.Nil, 0, false
	}

	id, err := getPathID(r, "id")
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, TaskNotFoundMessage(chi.URLParam(r, "id")), err)
			return uuid.Nil, 0, false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid task ID", err)
		return uuid.Nil, 0, false
	}
	return userID, id, true
}
