package service

import (
	"context"
	"testing"
	"time"

	"github.com/example/agrigrow/pkg/config"
	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository/repositorytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuth() (*AuthService, *repositorytest.ProfileCache) {
	cache := repositorytest.NewProfileCache()
	cfg := config.AuthConfig{
		Secret:      "test-secret",
		Issuer:      "agrigrow",
		TokenTTL:    time.Hour,
		AdminEmails: []string{"ops@example.com"},
	}
	return NewAuthService(repositorytest.NewUserStore(), cache, cfg, zap.NewNop()), cache
}

func TestAuth_SignupLoginParse(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()

	profile, err := auth.Signup(ctx, "Asha", "Asha@Example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", profile.Email)
	assert.Equal(t, models.RoleCustomer, profile.Role)

	token, loggedIn, err := auth.Login(ctx, "asha@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, loggedIn.ID)

	principal, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, principal.UserID)
	assert.False(t, principal.IsAdmin())
}

func TestAuth_AdminEmailGetsAdminRole(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()

	_, err := auth.Signup(ctx, "Ops", "ops@example.com", "longenough")
	require.NoError(t, err)
	token, _, err := auth.Login(ctx, "ops@example.com", "longenough")
	require.NoError(t, err)

	principal, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.True(t, principal.IsAdmin())
}

func TestAuth_Rejects(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()

	_, err := auth.Signup(ctx, "Asha", "", "longenough")
	requireKind(t, err, KindMissingFields)
	_, err = auth.Signup(ctx, "Asha", "asha@example.com", "short")
	requireKind(t, err, KindInvalidInput)

	_, err = auth.Signup(ctx, "Asha", "asha@example.com", "longenough")
	require.NoError(t, err)
	_, err = auth.Signup(ctx, "Asha again", "ASHA@example.com", "longenough")
	requireKind(t, err, KindConflict)

	_, _, err = auth.Login(ctx, "asha@example.com", "wrong-password")
	requireKind(t, err, KindUnauthorized)
	_, _, err = auth.Login(ctx, "nobody@example.com", "longenough")
	requireKind(t, err, KindUnauthorized)

	_, err = auth.ParseToken("not.a.token")
	requireKind(t, err, KindUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	auth, _ := newAuth()
	ctx := context.Background()
	_, err := auth.Signup(ctx, "Asha", "asha@example.com", "longenough")
	require.NoError(t, err)

	auth.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := auth.Login(ctx, "asha@example.com", "longenough")
	require.NoError(t, err)

	auth.now = time.Now
	_, err = auth.ParseToken(token)
	requireKind(t, err, KindUnauthorized)
}

func TestAuth_ProfileIsCached(t *testing.T) {
	auth, cache := newAuth()
	ctx := context.Background()
	_, err := auth.Signup(ctx, "Asha", "asha@example.com", "longenough")
	require.NoError(t, err)

	profile, err := auth.Profile(ctx, "asha@example.com")
	require.NoError(t, err)

	cached, err := cache.GetProfile(ctx, "ASHA@example.com")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, cached.ID)

	_, err = auth.Profile(ctx, "nobody@example.com")
	requireKind(t, err, KindNotFound)
}

func TestAuthorize(t *testing.T) {
	p := Principal{UserID: "u1", Role: models.RoleCustomer}
	assert.NoError(t, Authorize(p, "u1"))
	assert.NoError(t, Authorize(p, ""))
	requireKind(t, Authorize(p, "u2"), KindForbidden)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NewNotFound("x")))
	assert.Equal(t, KindStoreFailure, KindOf(assert.AnError))

	err := NewStoreFailure("Failed", assert.AnError)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "Failed")
}
