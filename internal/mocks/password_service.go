package mocks

import (
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// MockPasswordService implements auth.PasswordHasher and auth.PasswordVerifier.
// By default Hash prefixes the password with "hashed:" and Compare accepts
// exactly that form.
type MockPasswordService struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	HashCallCount    int
	CompareCallCount int
}

var (
	_ auth.PasswordHasher   = (*MockPasswordService)(nil)
	_ auth.PasswordVerifier = (*MockPasswordService)(nil)
)

// Hash implements auth.PasswordHasher.
func (m *MockPasswordService) Hash(password string) (string, error) {
	m.HashCallCount++
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordVerifier.
func (m *MockPasswordService) Compare(hashedPassword, password string) error {
	m.CompareCallCount++
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != "hashed:"+password {
		return auth.ErrPasswordMismatch
	}
	return nil
}
