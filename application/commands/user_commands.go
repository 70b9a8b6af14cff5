package commands

import (
	"campaign-manager/pkg/utils"
)

// CreateUserCommand registers an operator account
type CreateUserCommand struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// Validate checks the account fields
func (c CreateUserCommand) Validate() error {
	return utils.ValidateStruct(c)
}
