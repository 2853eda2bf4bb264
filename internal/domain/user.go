package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Password length bounds. The upper bound is bcrypt's input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// User represents a registered account. Username is unique across the system.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"   validate:"required,max=150,username"`
	Email          string    `json:"email"      validate:"omitempty,max=254,email"`
	FirstName      string    `json:"first_name" validate:"max=150"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Registration is the sign-up payload for a new account.
type Registration struct {
	Username  string `json:"username"   validate:"required,max=150,username"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	Email     string `json:"email"      validate:"omitempty,max=254,email"`
	FirstName string `json:"first_name" validate:"max=150"`
}

// UserSummary is the public projection of a user shown to the user themself.
type UserSummary struct {
	FirstName string `json:"first_name"`
}

// NewUser creates a new User from a registration payload.
// It generates a new UUID for the user ID and sets the creation/update timestamps.
//
// NOTE: The returned user carries the plaintext password. The caller is
// responsible for hashing it before storing the user.
func NewUser(reg Registration) (*User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.FirstName = strings.TrimSpace(reg.FirstName)

	if err := validateStruct(reg); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Username:  reg.Username,
		Email:     reg.Email,
		FirstName: reg.FirstName,
		Password:  reg.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Validate checks if the User has valid data.
// A stored user must have a hashed password; a user being registered must
// still carry its plaintext password.
func (u *User) Validate() error {
	verr := &ValidationError{}
	if u.ID == uuid.Nil {
		verr.Add("id", "this field is required")
	}

	if err := validateStruct(u); err != nil {
		fieldErr, ok := err.(*ValidationError)
		if !ok {
			return err
		}
		for field, msg := range fieldErr.Fields {
			verr.Add(field, msg)
		}
	}

	if u.Password == "" && u.HashedPassword == "" {
		verr.Add("password", "this field is required")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// Summary returns the public projection of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{FirstName: u.FirstName}
}
