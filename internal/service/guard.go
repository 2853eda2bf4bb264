package service

import (
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// Authorize allows caller to act on task only if caller owns it.
// Ownerless tasks are denied to everyone.
func Authorize(caller uuid.UUID, task *domain.Task) error {
	if task == nil || !task.IsOwnedBy(caller) {
		return ErrNotOwned
	}
	return nil
}
