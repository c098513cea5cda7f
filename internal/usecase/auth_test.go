package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krmu/lostfound-api/internal/config"
	"github.com/krmu/lostfound-api/internal/model"
	"github.com/krmu/lostfound-api/internal/testutil"
	"github.com/krmu/lostfound-api/internal/usecase"
	"github.com/krmu/lostfound-api/shared/auth"
	"github.com/krmu/lostfound-api/shared/security"
)

func newAuthUsecase(users *testutil.FakeUserRepo) usecase.AuthUsecase {
	jwtAuth := auth.NewJWTAuthenticator("lostfound-api", time.Hour)
	cfg := &config.Config{JWTSecret: "test-secret"}
	return usecase.NewAuthUsecase(users, jwtAuth, cfg)
}

func TestRegister(t *testing.T) {
	users := testutil.NewFakeUserRepo()
	uc := newAuthUsecase(users)

	user, err := uc.Register(context.Background(), usecase.RegisterParams{
		Username: "alice",
		Password: "s3cret-pass",
		Role:     model.RoleStudent,
	})
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, model.RoleStudent, user.Role)

	// The plaintext never reaches the store.
	hash := users.StoredHash("alice")
	assert.NotEqual(t, "s3cret-pass", hash)

	ok, err := security.VerifyPassword("s3cret-pass", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := testutil.NewFakeUserRepo()
	uc := newAuthUsecase(users)

	_, err := uc.Register(context.Background(), usecase.RegisterParams{
		Username: "alice",
		Password: "first-pass",
		Role:     model.RoleStudent,
	})
	require.NoError(t, err)

	firstHash := users.StoredHash("alice")

	_, err = uc.Register(context.Background(), usecase.RegisterParams{
		Username: "alice",
		Password: "second-pass",
		Role:     model.RoleAdmin,
	})
	assert.ErrorIs(t, err, usecase.ErrUsernameTaken)

	// The original account is untouched.
	assert.Equal(t, firstHash, users.StoredHash("alice"))
}

func TestLogin(t *testing.T) {
	users := testutil.NewFakeUserRepo()
	uc := newAuthUsecase(users)

	registered, err := uc.Register(context.Background(), usecase.RegisterParams{
		Username: "alice",
		Password: "s3cret-pass",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)

	result, err := uc.Login(context.Background(), usecase.LoginParams{
		Username: "alice",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, result.User.ID)

	jwtAuth := auth.NewJWTAuthenticator("lostfound-api", time.Hour)
	claims, err := jwtAuth.ValidateToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID.Hex(), claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	users := testutil.NewFakeUserRepo()
	uc := newAuthUsecase(users)

	_, err := uc.Register(context.Background(), usecase.RegisterParams{
		Username: "alice",
		Password: "s3cret-pass",
		Role:     model.RoleStudent,
	})
	require.NoError(t, err)

	// Wrong password and unknown username fail identically, so the error
	// never reveals whether the account exists.
	_, wrongPassErr := uc.Login(context.Background(), usecase.LoginParams{
		Username: "alice",
		Password: "wrong-pass",
	})
	_, unknownUserErr := uc.Login(context.Background(), usecase.LoginParams{
		Username: "mallory",
		Password: "wrong-pass",
	})

	assert.ErrorIs(t, wrongPassErr, usecase.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUserErr, usecase.ErrInvalidCredentials)
}
