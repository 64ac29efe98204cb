package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/metrics"
	"skilltwin/internal/models"
	"skilltwin/internal/repositories"
	"skilltwin/internal/utils"
)

// AccountService handles registration, login and profile lookups for both
// account kinds.
type AccountService interface {
	Register(ctx context.Context, kind models.AccountKind, req *models.RegisterRequest) (*models.AuthResult, error)
	Login(ctx context.Context, kind models.AccountKind, req *models.LoginRequest) (*models.AuthResult, error)
	Profile(ctx context.Context, kind models.AccountKind, id primitive.ObjectID) (*models.Account, error)
	EmailExists(ctx context.Context, kind models.AccountKind, email string) (bool, error)
	// RefreshAccountsGauge recounts every account kind into the accounts gauge.
	RefreshAccountsGauge(ctx context.Context) error
}

type accountService struct {
	accounts  repositories.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAccountService(accounts repositories.AccountRepository, jwtSecret string, tokenTTL time.Duration) AccountService {
	return &accountService{accounts: accounts, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *accountService) issueToken(account *models.Account) (*models.AuthResult, error) {
	token, err := utils.GenerateJWT(s.jwtSecret, account.ID, string(account.Role), s.tokenTTL)
	if err != nil {
		log.Error().Err(err).Str("account_id", account.ID.Hex()).Msg("Could not generate token for account")
		return nil, err
	}
	account.Password = ""
	return &models.AuthResult{Token: token, Account: account}, nil
}

func (s *accountService) Register(ctx context.Context, kind models.AccountKind, req *models.RegisterRequest) (*models.AuthResult, error) {
	email := utils.NormalizeEmail(req.Email)
	log.Debug().Str("kind", string(kind)).Str("email", email).Msg("Attempting to register account")

	duplicate := apperrors.DuplicateAccount(accountLabel(kind) + " already exists")
	if kind == models.KindAdmin {
		duplicate = apperrors.DuplicateAccount("Admin with this email already exists")
	}

	if _, err := s.accounts.FindByEmail(ctx, kind, email); err == nil {
		return nil, duplicate
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password during registration")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.accounts.Create(ctx, kind, &models.Account{
		Name:     req.Name,
		Email:    email,
		Password: string(hashedPassword),
		Provider: models.ProviderLocal,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Warn().Str("email", email).Msg("Email already exists during account insertion")
			return nil, duplicate
		}
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(kind)).Inc()
	log.Info().Str("kind", string(kind)).Str("account_id", account.ID.Hex()).Msg("Account registered successfully")
	return s.issueToken(account)
}

func (s *accountService) Login(ctx context.Context, kind models.AccountKind, req *models.LoginRequest) (*models.AuthResult, error) {
	email := utils.NormalizeEmail(req.Email)

	account, err := s.accounts.FindByEmail(ctx, kind, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			metrics.LoginAttemptsTotal.WithLabelValues(string(kind), "email_not_found").Inc()
			log.Warn().Str("kind", string(kind)).Str("email", email).Msg("Login attempt for unknown email")
			return nil, apperrors.Unauthenticated("Email not found. Please check your email or register.").
				WithCode(apperrors.CodeEmailNotFound)
		}
		return nil, fmt.Errorf("failed to find account for login: %w", err)
	}

	if account.Password == "" || bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(string(kind), "invalid_password").Inc()
		log.Warn().Str("kind", string(kind)).Str("account_id", account.ID.Hex()).Msg("Invalid password during login attempt")
		return nil, apperrors.Unauthenticated("Invalid password. Please try again.").
			WithCode(apperrors.CodeInvalidPassword)
	}

	metrics.LoginAttemptsTotal.WithLabelValues(string(kind), "success").Inc()
	log.Info().Str("kind", string(kind)).Str("account_id", account.ID.Hex()).Msg("Account logged in successfully")
	return s.issueToken(account)
}

func (s *accountService) Profile(ctx context.Context, kind models.AccountKind, id primitive.ObjectID) (*models.Account, error) {
	account, err := s.accounts.FindByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(accountLabel(kind) + " not found")
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	account.Password = ""
	return account, nil
}

func (s *accountService) EmailExists(ctx context.Context, kind models.AccountKind, email string) (bool, error) {
	_, err := s.accounts.FindByEmail(ctx, kind, utils.NormalizeEmail(email))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check email: %w", err)
}

func (s *accountService) RefreshAccountsGauge(ctx context.Context) error {
	for _, kind := range []models.AccountKind{models.KindUser, models.KindAdmin} {
		count, err := s.accounts.CountAll(ctx, kind)
		if err != nil {
			return err
		}
		metrics.AccountsTotal.WithLabelValues(string(kind)).Set(float64(count))
	}
	return nil
}
