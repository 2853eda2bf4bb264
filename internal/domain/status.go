package domain

import "fmt"

// TaskStatus is the lifecycle state of a task. The zero value is not a valid
// status; every persisted task carries one of the declared constants.
type TaskStatus uint8

const (
	StatusPending TaskStatus = iota + 1
	StatusInProgress
	StatusCompleted
)

var statusText = map[TaskStatus]string{
	StatusPending:    "pending",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
}

// ActiveStatuses are the states of tasks that still need work.
func ActiveStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress}
}

// AllStatuses returns every valid status in declaration order.
func AllStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}
}

func statusNames() []string {
	all := AllStatuses()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.String()
	}
	return names
}

// ParseTaskStatus converts the wire form of a status into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	for status, text := range statusText {
		if text == s {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
}

// IsValid reports whether s is one of the declared statuses.
func (s TaskStatus) IsValid() bool {
	_, ok := statusText[s]
	return ok
}

func (s TaskStatus) String() string {
	if text, ok := statusText[s]; ok {
		return text
	}
	return fmt.Sprintf("TaskStatus(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler, so statuses serialize as
// their string names in JSON.
func (s TaskStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTaskStatus, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *TaskStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseTaskStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
