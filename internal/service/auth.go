package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/auth"
	"github.com/sakif/bloglist/internal/repository"
)

// AuthService handles the credential login flow: verify a username/password
// pair against the stored bcrypt hash and issue a JWT.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// LoginResult is what a successful login returns to the client.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// Login verifies the credentials and issues a token.
//
// An unknown username and a wrong password produce the same Unauthorized
// error — the response must not reveal which half of the pair was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid username or password")
		}
		return nil, fmt.Errorf("login: fetching user %s: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Warn("login failed", slog.String("username", username))
		return nil, apperror.Unauthorized("invalid username or password")
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("login: issuing token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return &LoginResult{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}
