package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/config"
	"skilltwin/internal/metrics"
	"skilltwin/internal/models"
	"skilltwin/internal/repositories"
	"skilltwin/internal/utils"
)

const sessionMaxAge = 86400 * 30

// AuthService signs end users in through an OAuth provider.
type AuthService interface {
	HandleLogin(ctx context.Context, u goth.User) (string, error)
}

type authService struct {
	accounts  repositories.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(accounts repositories.AccountRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{accounts: accounts, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// InitializeGoth registers the configured providers and the session store
// gothic keeps OAuth state in. It reports whether any provider is enabled.
func InitializeGoth(cfg *config.Config) bool {
	if cfg.OAuth.GoogleClientID == "" || cfg.OAuth.GoogleClientSecret == "" {
		log.Info().Msg("Google OAuth not configured, social login disabled")
		return false
	}

	sessionKey := cfg.OAuth.SessionKey
	if sessionKey == "" {
		sessionKey = cfg.JWT.Secret
	}
	store := sessions.NewCookieStore([]byte(sessionKey))
	store.MaxAge(sessionMaxAge)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.IsProduction()
	store.Options.SameSite = http.SameSiteLaxMode
	gothic.Store = store

	goth.UseProviders(
		google.New(cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret, cfg.Server.BaseURL+"/api/auth/google/callback", "email", "profile"),
	)
	log.Info().Msg("Goth providers initialized")
	return true
}

func (a *authService) HandleLogin(ctx context.Context, u goth.User) (string, error) {
	email := utils.NormalizeEmail(u.Email)
	if email == "" {
		log.Error().Str("provider", u.Provider).Msg("Missing email in Goth user data")
		return "", apperrors.Validation("Provider did not return an email address")
	}

	account, err := a.accounts.FindByEmail(ctx, models.KindUser, email)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		name := u.Name
		if name == "" {
			name = u.NickName
		}
		account, err = a.accounts.Create(ctx, models.KindUser, &models.Account{
			Name:     name,
			Email:    email,
			Provider: u.Provider,
		})
		if err != nil {
			return "", fmt.Errorf("failed to create social account: %w", err)
		}
		metrics.RegistrationsTotal.WithLabelValues(string(models.KindUser)).Inc()
		log.Info().Str("provider", u.Provider).Str("account_id", account.ID.Hex()).Msg("New account created from social login")
	case err != nil:
		return "", fmt.Errorf("failed to find account by email: %w", err)
	}

	token, err := utils.GenerateJWT(a.jwtSecret, account.ID, string(models.KindUser), a.tokenTTL)
	if err != nil {
		return "", err
	}
	metrics.LoginAttemptsTotal.WithLabelValues(string(models.KindUser), "success").Inc()
	log.Info().Str("provider", u.Provider).Str("account_id", account.ID.Hex()).Msg("Social login succeeded")
	return token, nil
}
