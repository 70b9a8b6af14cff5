package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() JWTConfig {
	return JWTConfig{
		SecretKey: "secret",
		Issuer:    "campaign-manager",
		Audience:  []string{"dashboard"},
		TTL:       time.Hour,
	}
}

func TestJWT_RoundTrip(t *testing.T) {
	gen, err := NewJWTGenerator(testConfig())
	require.NoError(t, err)
	val, err := NewJWTValidator(testConfig())
	require.NoError(t, err)

	token, err := gen.GenerateToken("u1", "u1@example.com", "User One", []string{"admin"})
	require.NoError(t, err)

	claims, err := val.ValidateToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1@example.com", claims.Email)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestJWT_Rejections(t *testing.T) {
	gen, err := NewJWTGenerator(testConfig())
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		val, _ := NewJWTValidator(testConfig())
		_, err := val.ValidateToken("Bearer ")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("expired token", func(t *testing.T) {
		gen.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		defer func() { gen.now = time.Now }()

		token, err := gen.GenerateToken("u1", "u1@example.com", "", nil)
		require.NoError(t, err)

		val, _ := NewJWTValidator(testConfig())
		_, err = val.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := gen.GenerateToken("u1", "u1@example.com", "", nil)
		require.NoError(t, err)

		cfg := testConfig()
		cfg.SecretKey = "other"
		val, _ := NewJWTValidator(cfg)
		_, err = val.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("wrong audience", func(t *testing.T) {
		token, err := gen.GenerateToken("u1", "u1@example.com", "", nil)
		require.NoError(t, err)

		cfg := testConfig()
		cfg.Audience = []string{"mobile"}
		val, _ := NewJWTValidator(cfg)
		_, err = val.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}

func TestNewJWTGenerator_RequiresSecret(t *testing.T) {
	_, err := NewJWTGenerator(JWTConfig{})
	assert.Error(t, err)
}

func TestUserContext(t *testing.T) {
	ctx := context.Background()
	_, err := GetUserFromContext(ctx)
	assert.Error(t, err)

	ctx = SetUserInContext(ctx, &UserContext{UserID: "u1", Roles: []string{"user"}})
	user, err := GetUserFromContext(ctx)
	require.NoError(t, err)
	assert.True(t, user.HasRole("user"))
	assert.False(t, user.HasRole("admin"))
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "s3cret-pass"))
	assert.ErrorIs(t, CheckPassword(hash, "nope"), ErrPasswordMismatch)
}
