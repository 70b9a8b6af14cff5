package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"campaign-manager/pkg/auth"
	pkgerrors "campaign-manager/pkg/errors"
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Limiter decides whether a client may make another request
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Authenticator guards API routes with bearer tokens and per-IP rate limits
type Authenticator struct {
	validator TokenValidator
	limiter   Limiter
	limit     int
	errors    *pkgerrors.ErrorHandler
	logger    *zap.Logger
}

// NewAuthenticator creates a new authenticator. A nil limiter disables rate limiting.
func NewAuthenticator(validator TokenValidator, limiter Limiter, limit int, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		validator: validator,
		limiter:   limiter,
		limit:     limit,
		errors:    errHandler,
		logger:    logger.With(zap.String("component", "auth")),
	}
}

// Middleware rejects requests without a valid token and stores the caller
// in the request context
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := getClientIP(r)

		if a.limiter != nil {
			allowed, err := a.limiter.Allow(r.Context(), clientIP)
			if err != nil {
				a.errors.Handle(w, r, pkgerrors.NewInternalError("rate limiter failed").WithCause(err))
				return
			}
			if !allowed {
				a.errors.Handle(w, r, pkgerrors.NewRateLimitError(a.limit, "1m"))
				return
			}
		}

		token := extractToken(r)
		if token == "" {
			a.errors.Handle(w, r, pkgerrors.NewUnauthorizedError("Missing authentication token"))
			return
		}

		claims, err := a.validator.ValidateToken(token)
		if err != nil {
			a.logger.Warn("Invalid token",
				zap.Error(err),
				zap.String("ip", clientIP),
				zap.String("path", r.URL.Path),
			)
			a.errors.Handle(w, r, pkgerrors.NewUnauthorizedError(tokenErrorMessage(err)))
			return
		}

		ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{
			UserID: claims.UserID,
			Email:  claims.Email,
			Roles:  claims.Roles,
		})

		a.logger.Debug("Request authenticated",
			zap.String("user_id", claims.UserID),
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows only callers holding one of roles. It must run after
// Authenticator.Middleware.
func RequireRole(errHandler *pkgerrors.ErrorHandler, roles ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.GetUserFromContext(r.Context())
			if err != nil {
				errHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("Authentication required"))
				return
			}

			for _, role := range roles {
				if user.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			errHandler.Handle(w, r, pkgerrors.NewForbiddenError("Insufficient permissions").
				WithDetail("required", roles))
		})
	}
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, auth.ErrInvalidSignature):
		return "Invalid token signature"
	default:
		return "Invalid token"
	}
}

// extractToken reads the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(header)
}

// getClientIP returns the first forwarded address, falling back to RemoteAddr
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
