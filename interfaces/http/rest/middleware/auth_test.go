package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campaign-manager/pkg/auth"
	pkgerrors "campaign-manager/pkg/errors"
)

type stubValidator struct {
	claims *auth.Claims
	err    error
	got    string
}

func (s *stubValidator) ValidateToken(token string) (*auth.Claims, error) {
	s.got = token
	return s.claims, s.err
}

type stubLimiter struct {
	allow bool
	keys  []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, nil
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp pkgerrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Type
}

func TestAuthenticator(t *testing.T) {
	errHandler := pkgerrors.NewErrorHandler(zap.NewNop(), false)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.GetUserFromContext(r.Context())
		require.NoError(t, err)
		w.Header().Set("X-User", user.UserID)
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("valid token stores the caller", func(t *testing.T) {
		validator := &stubValidator{claims: &auth.Claims{UserID: "ops@example.com", Roles: []string{"user"}}}
		limiter := &stubLimiter{allow: true}
		a := NewAuthenticator(validator, limiter, 60, errHandler, zap.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/api/campaigns", nil)
		req.Header.Set("Authorization", "Bearer abc.def")
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		rec := serve(a.Middleware(ok), req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "ops@example.com", rec.Header().Get("X-User"))
		assert.Equal(t, "abc.def", validator.got)
		assert.Equal(t, []string{"203.0.113.7"}, limiter.keys)
	})

	t.Run("missing token", func(t *testing.T) {
		a := NewAuthenticator(&stubValidator{}, nil, 60, errHandler, zap.NewNop())

		rec := serve(a.Middleware(ok), httptest.NewRequest(http.MethodGet, "/api/campaigns", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, string(pkgerrors.ErrorTypeUnauthorized), errorType(t, rec))
	})

	t.Run("expired token", func(t *testing.T) {
		a := NewAuthenticator(&stubValidator{err: auth.ErrExpiredToken}, nil, 60, errHandler, zap.NewNop())
		req := httptest.NewRequest(http.MethodGet, "/api/campaigns", nil)
		req.Header.Set("Authorization", "Bearer old")

		rec := serve(a.Middleware(ok), req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token has expired")
	})

	t.Run("rate limited", func(t *testing.T) {
		validator := &stubValidator{}
		a := NewAuthenticator(validator, &stubLimiter{allow: false}, 60, errHandler, zap.NewNop())
		req := httptest.NewRequest(http.MethodGet, "/api/campaigns", nil)
		req.Header.Set("Authorization", "Bearer abc")

		rec := serve(a.Middleware(ok), req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, string(pkgerrors.ErrorTypeRateLimit), errorType(t, rec))
		assert.Empty(t, validator.got, "token is not checked once the limit is hit")
	})
}

func TestRequireRole(t *testing.T) {
	errHandler := pkgerrors.NewErrorHandler(zap.NewNop(), false)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	guarded := RequireRole(errHandler, "admin")(ok)

	tests := []struct {
		name string
		user *auth.UserContext
		want int
	}{
		{name: "no user", user: nil, want: http.StatusUnauthorized},
		{name: "wrong role", user: &auth.UserContext{UserID: "u", Roles: []string{"user"}}, want: http.StatusForbidden},
		{name: "admin", user: &auth.UserContext{UserID: "a", Roles: []string{"admin"}}, want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/campaigns/x", nil)
			if tt.user != nil {
				req = req.WithContext(auth.SetUserInContext(req.Context(), tt.user))
			}

			rec := serve(guarded, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	h := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
