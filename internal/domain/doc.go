// Package domain contains the core business entities of the task tracker:
// users, tasks and the closed set of task statuses, together with the
// field-level validation rules that every layer relies on.
//
// Entities are plain structs with constructors (NewTask, NewUser) that apply
// defaults and validate. Validation failures are reported as *ValidationError,
// which maps field names to messages and wraps ErrValidation.
package domain
