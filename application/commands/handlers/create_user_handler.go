package handlers

import (
	"context"

	"go.uber.org/zap"

	"campaign-manager/application/commands"
	"campaign-manager/application/ports"
	"campaign-manager/domain/core/entities"
	"campaign-manager/pkg/auth"
	pkgerrors "campaign-manager/pkg/errors"
)

// CreateUserResult describes the account that was created
type CreateUserResult struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// CreateUserHandler registers operator accounts
type CreateUserHandler struct {
	users  ports.UserRepository
	clock  ports.Clock
	logger *zap.Logger
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(users ports.UserRepository, clock ports.Clock, logger *zap.Logger) *CreateUserHandler {
	return &CreateUserHandler{users: users, clock: clock, logger: logger}
}

// Handle hashes the password and stores the account
func (h *CreateUserHandler) Handle(ctx context.Context, cmd commands.CreateUserCommand) (CreateUserResult, error) {
	role, err := entities.ParseRole(cmd.Role)
	if err != nil {
		return CreateUserResult{}, err
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return CreateUserResult{}, pkgerrors.NewInternalError("failed to hash password").WithCause(err)
	}

	user, err := entities.NewUser(cmd.Name, cmd.Email, hash, role, h.clock.Now())
	if err != nil {
		return CreateUserResult{}, err
	}

	if err := h.users.Insert(ctx, user); err != nil {
		return CreateUserResult{}, err
	}

	h.logger.Info("User created", zap.String("email", user.Email()), zap.String("role", string(user.Role())))

	return CreateUserResult{Email: user.Email(), Name: user.Name(), Role: string(user.Role())}, nil
}
