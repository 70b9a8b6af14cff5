package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"campaign-manager/application/services"
	"campaign-manager/pkg/common"
	pkgerrors "campaign-manager/pkg/errors"
)

// Authenticator exchanges credentials for a session token
type Authenticator interface {
	Login(ctx context.Context, email, password string) (services.LoginResult, error)
}

// AuthHandler issues session tokens
type AuthHandler struct {
	auth   Authenticator
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth Authenticator, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		errors: errHandler,
		logger: logger,
	}
}

// TokenRequest is the request body of POST /api/auth/token
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IssueToken handles POST /api/auth/token
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := common.ParseJSONBody(w, r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
