package services

import (
	"context"
	"testing"
	"time"

	"github.com/markbates/goth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/models"
	"skilltwin/internal/utils"
)

const accountSecret = "account-secret"

func TestAccountService_RegisterAndLogin(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAccountService(repo, accountSecret, time.Hour)
	ctx := context.Background()

	result, err := svc.Register(ctx, models.KindAdmin, &models.RegisterRequest{Name: "Root", Email: "Root@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", result.Account.Email)
	assert.Empty(t, result.Account.Password)
	assert.Equal(t, models.KindAdmin, result.Account.Role)

	claims, err := utils.ParseJWT(accountSecret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, result.Account.ID.Hex(), claims.ID)

	assert.NotEqual(t, "secret1", repo.password(models.KindAdmin, "root@example.com"))

	_, err = svc.Register(ctx, models.KindAdmin, &models.RegisterRequest{Name: "Root", Email: "root@example.com", Password: "secret1"})
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 400, apperrors.StatusCode(err))

	_, err = svc.Register(ctx, models.KindUser, &models.RegisterRequest{Name: "Root", Email: "root@example.com", Password: "secret1"})
	assert.NoError(t, err, "kinds are separate populations")

	login, err := svc.Login(ctx, models.KindAdmin, &models.LoginRequest{Email: "ROOT@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	_, err = svc.Login(ctx, models.KindAdmin, &models.LoginRequest{Email: "root@example.com", Password: "wrong"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidPassword, appErr.Code)
	assert.Equal(t, 401, appErr.Status)

	_, err = svc.Login(ctx, models.KindAdmin, &models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeEmailNotFound, appErr.Code)
}

func TestAccountService_ProfileAndEmailExists(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAccountService(repo, accountSecret, time.Hour)
	ctx := context.Background()

	result, err := svc.Register(ctx, models.KindUser, &models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, models.KindUser, result.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
	assert.Empty(t, profile.Password)

	_, err = svc.Profile(ctx, models.KindAdmin, result.Account.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Profile(ctx, models.KindUser, primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	exists, err := svc.EmailExists(ctx, models.KindUser, " ADA@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.EmailExists(ctx, models.KindAdmin, "ada@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, svc.RefreshAccountsGauge(ctx))
}

func TestAuthService_HandleLogin(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAuthService(repo, accountSecret, time.Hour)
	ctx := context.Background()

	token, err := svc.HandleLogin(ctx, goth.User{Email: "Social@Example.com", Name: "Soc", Provider: "google"})
	require.NoError(t, err)
	claims, err := utils.ParseJWT(accountSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)

	account, err := repo.FindByEmail(ctx, models.KindUser, "social@example.com")
	require.NoError(t, err)
	assert.Equal(t, "google", account.Provider)
	assert.Equal(t, claims.ID, account.ID.Hex())

	again, err := svc.HandleLogin(ctx, goth.User{Email: "social@example.com", Provider: "google"})
	require.NoError(t, err)
	againClaims, err := utils.ParseJWT(accountSecret, again)
	require.NoError(t, err)
	assert.Equal(t, claims.ID, againClaims.ID)

	_, err = svc.HandleLogin(ctx, goth.User{Provider: "google"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Social accounts carry no password and cannot log in locally.
	local := NewAccountService(repo, accountSecret, time.Hour)
	_, err = local.Login(ctx, models.KindUser, &models.LoginRequest{Email: "social@example.com", Password: ""})
	assert.Error(t, err)
}
