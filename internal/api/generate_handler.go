package api

import (
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/generation"
)

// GenerateHandler drafts task descriptions.
type GenerateHandler struct {
	generator generation.DescriptionGenerator
}

// NewGenerateHandler creates a GenerateHandler backed by generator.
func NewGenerateHandler(generator generation.DescriptionGenerator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

// Generate handles POST /api/tasks/generate/. A missing or blank title is
// answered with a prompt to supply one rather than an error.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	description, err := generation.Describe(r.Context(), h.generator, req.Title)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
			"Description generation is currently unavailable", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{Description: description})
}
