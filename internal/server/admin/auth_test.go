package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/nbbackup/internal/common"
	"github.com/dmitrijs2005/nbbackup/internal/logging"
)

func TestCheck_PlainPassword(t *testing.T) {
	a, err := NewAuthenticator(Options{Password: "secret"}, logging.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name            string
		login, password string
		want            error
	}{
		{"ok", "admin", "secret", nil},
		{"wrong password", "admin", "nope", common.ErrUnauthorized},
		{"wrong login", "root", "secret", common.ErrUnauthorized},
		{"missing login", "", "secret", common.ErrUnauthorized},
		{"missing password", "admin", "", common.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Check(ctx, tt.login, tt.password)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestCheck_BcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	a, err := NewAuthenticator(Options{Password: "ignored", PasswordHash: string(hash)}, logging.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, a.Check(ctx, "admin", "s3cret"))
	assert.True(t, errors.Is(a.Check(ctx, "admin", "ignored"), common.ErrUnauthorized))
}

func TestNewAuthenticator_Errors(t *testing.T) {
	_, err := NewAuthenticator(Options{}, logging.Discard())
	assert.True(t, errors.Is(err, common.ErrMissingField))

	_, err = NewAuthenticator(Options{PasswordHash: "not-a-bcrypt-hash"}, logging.Discard())
	assert.Error(t, err)
}

func TestCheck_RateLimit(t *testing.T) {
	a, err := NewAuthenticator(Options{Password: "secret", RateLimit: 0.001, RateBurst: 2}, logging.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, a.Check(ctx, "admin", "secret"))
	assert.True(t, errors.Is(a.Check(ctx, "admin", "wrong"), common.ErrUnauthorized))
	assert.True(t, errors.Is(a.Check(ctx, "admin", "secret"), common.ErrRateLimited))
}

func TestCheck_NoRateLimitByDefault(t *testing.T) {
	a, err := NewAuthenticator(Options{Password: "secret"}, logging.Discard())
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, a.Check(context.Background(), "admin", "secret"))
	}
}
