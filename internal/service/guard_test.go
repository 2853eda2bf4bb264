package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	owned := &domain.Task{ID: 1, UserID: uuid.NullUUID{UUID: alice, Valid: true}}
	orphan := &domain.Task{ID: 2}

	tests := []struct {
		name   string
		caller uuid.UUID
		task   *domain.Task
		want   error
	}{
		{"owner allowed", alice, owned, nil},
		{"other user denied", bob, owned, service.ErrNotOwned},
		{"ownerless denied", alice, orphan, service.ErrNotOwned},
		{"nil caller denied on ownerless", uuid.Nil, orphan, service.ErrNotOwned},
		{"nil task denied", alice, nil, service.ErrNotOwned},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := service.Authorize(tc.caller, tc.task)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
