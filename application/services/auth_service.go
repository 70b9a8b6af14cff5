package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"campaign-manager/application/ports"
	"campaign-manager/pkg/auth"
	pkgerrors "campaign-manager/pkg/errors"
)

// TokenIssuer signs session tokens
type TokenIssuer interface {
	GenerateToken(userID, email, name string, roles []string) (string, error)
	TTL() time.Duration
}

// LoginResult is returned by a successful sign-in
type LoginResult struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
}

// AuthService exchanges operator credentials for session tokens
type AuthService struct {
	users  ports.UserRepository
	tokens TokenIssuer
	clock  ports.Clock
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users ports.UserRepository, tokens TokenIssuer, clock ports.Clock, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		clock:  clock,
		logger: logger.With(zap.String("component", "auth")),
	}
}

// Login checks the password and issues a token. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, pkgerrors.NewValidationError("email and password are required")
	}

	s.logger.Info("Attempting login", zap.String("email", email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if user == nil {
		s.logger.Warn("Login failed - user not found", zap.String("email", email))
		return LoginResult{}, pkgerrors.NewUnauthorizedError("invalid email or password")
	}

	if err := auth.CheckPassword(user.PasswordHash(), password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			return LoginResult{}, pkgerrors.NewInternalError("failed to verify password").WithCause(err)
		}
		s.logger.Warn("Login failed - invalid password", zap.String("email", email))
		return LoginResult{}, pkgerrors.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.tokens.GenerateToken(user.Email(), user.Email(), user.Name(), []string{string(user.Role())})
	if err != nil {
		return LoginResult{}, pkgerrors.NewInternalError("failed to issue token").WithCause(err)
	}

	s.logger.Info("Login successful", zap.String("email", email))

	return LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: s.clock.Now().Add(s.tokens.TTL()),
		Email:     user.Email(),
		Name:      user.Name(),
		Role:      string(user.Role()),
	}, nil
}
