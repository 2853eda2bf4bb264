package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskboard-api/internal/generation"
)

// MockDescriptionGenerator implements generation.DescriptionGenerator for testing
type MockDescriptionGenerator struct {
	GenerateDescriptionFn func(ctx context.Context, title string) (string, error)

	Description string
	Err         error

	mu     sync.Mutex
	titles []string
}

var _ generation.DescriptionGenerator = (*MockDescriptionGenerator)(nil)

// GenerateDescription implements generation.DescriptionGenerator.
func (m *MockDescriptionGenerator) GenerateDescription(ctx context.Context, title string) (string, error) {
	m.mu.Lock()
	m.titles = append(m.titles, title)
	m.mu.Unlock()

	if m.GenerateDescriptionFn != nil {
		return m.GenerateDescriptionFn(ctx, title)
	}
	return m.Description, m.Err
}

// Titles returns the titles passed to GenerateDescription so far.
func (m *MockDescriptionGenerator) Titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.titles...)
}
