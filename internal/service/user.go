package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/auth"
	"github.com/sakif/bloglist/internal/model"
	"github.com/sakif/bloglist/internal/repository"
)

// MinCredentialLength applies to both username and password at
// registration.
const MinCredentialLength = 3

// UserService handles account registration and listing.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewUserService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// RegisterInput is the payload for creating an account. Password is the
// plaintext as received; it is hashed here and never stored or logged.
type RegisterInput struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register validates the input, hashes the password, and creates the user.
// Username and password must each be at least MinCredentialLength
// characters; a taken username surfaces as a Conflict from the repository.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)

	if len(username) < MinCredentialLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be at least %d characters", MinCredentialLength))
	}
	if len(in.Password) < MinCredentialLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinCredentialLength))
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		Username:     username,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// List returns all users with their owned-blog ids.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}
