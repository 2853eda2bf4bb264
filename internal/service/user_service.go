package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// UsernameTakenMessage is the field error reported for a duplicate username.
const UsernameTakenMessage = "A user with that username already exists."

// PasswordService hashes new passwords and checks presented ones.
type PasswordService interface {
	auth.PasswordHasher
	auth.PasswordVerifier
}

// UserService provides account registration and credential checks.
type UserService interface {
	// Register creates an account. A taken username is reported as a
	// validation error on the username field.
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)

	// Authenticate returns the user whose credentials match, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// CurrentUserSummary returns the caller's public profile.
	CurrentUserSummary(ctx context.Context, caller uuid.UUID) (*domain.UserSummary, error)
}

type userServiceImpl struct {
	users     store.UserStore
	passwords PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(users store.UserStore, passwords PasswordService, logger *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil")
	}
	if passwords == nil {
		return nil, domain.NewValidationError("passwords", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userServiceImpl{
		users:     users,
		passwords: passwords,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

func (s *userServiceImpl) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(reg)
	if err != nil {
		return nil, err
	}

	hashed, err := s.passwords.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, NewServiceError("register", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("username already taken", slog.String("username", user.Username))
			return nil, domain.NewValidationError("username", UsernameTakenMessage)
		}
		log.Error("failed to save user", slog.String("error", err.Error()))
		return nil, NewServiceError("register", "failed to save user", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

func (s *userServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown user")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to load user for login", slog.String("error", err.Error()))
		return nil, NewServiceError("authenticate", "failed to load user", err)
	}

	if err := s.passwords.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("login with wrong password", slog.String("user_id", user.ID.String()))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.String("error", err.Error()))
		return nil, NewServiceError("authenticate", "failed to verify password", err)
	}
	return user, nil
}

func (s *userServiceImpl) CurrentUserSummary(ctx context.Context, caller uuid.UUID) (*domain.UserSummary, error) {
	user, err := s.users.GetByID(ctx, caller)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		return nil, NewServiceError("current_user", "failed to load user", err)
	}
	return user.Summary(), nil
}
