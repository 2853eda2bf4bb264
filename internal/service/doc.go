// Package service contains the application use cases of the task tracker.
// It orchestrates domain entities and the persistence interfaces defined in
// internal/store, and enforces that callers only ever touch their own tasks.
//
// Every operation takes the caller's identity as an explicit uuid.UUID
// parameter; nothing is read from ambient request state. Services return
// sentinel errors (ErrNotOwned, ErrInvalidCredentials, store.ErrTaskNotFound,
// domain.ErrValidation) for expected conditions and wrap unexpected failures
// in *ServiceError. The API layer maps them to HTTP status codes.
package service
