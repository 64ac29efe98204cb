package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/config"
	"skilltwin/internal/metrics"
	"skilltwin/internal/models"
	"skilltwin/internal/repositories"
	"skilltwin/internal/utils"
)

// RecoveryService runs the OTP password reset flow for either account kind.
type RecoveryService interface {
	Initiate(ctx context.Context, kind models.AccountKind, email string) (*models.RecoveryAck, error)
	Verify(ctx context.Context, kind models.AccountKind, email, code string) (*models.VerifyResult, error)
	Reset(ctx context.Context, kind models.AccountKind, email, ticket, newPassword string) error
}

type RecoveryConfig struct {
	OTPLength   int
	OTPTTL      time.Duration
	MaxAttempts int
	TicketTTL   time.Duration
	JWTSecret   string
}

func NewRecoveryConfig(cfg *config.Config) RecoveryConfig {
	return RecoveryConfig{
		OTPLength:   cfg.OTP.Length,
		OTPTTL:      cfg.OTP.TTL,
		MaxAttempts: cfg.OTP.MaxAttempts,
		TicketTTL:   cfg.JWT.ResetTicketTTL,
		JWTSecret:   cfg.JWT.Secret,
	}
}

type recoveryService struct {
	accounts repositories.AccountRepository
	otps     repositories.OTPRepository
	mailer   EmailService
	cooldown Cooldown
	cfg      RecoveryConfig
	now      func() time.Time
}

func NewRecoveryService(accounts repositories.AccountRepository, otps repositories.OTPRepository, mailer EmailService, cooldown Cooldown, cfg RecoveryConfig) RecoveryService {
	return &recoveryService{
		accounts: accounts,
		otps:     otps,
		mailer:   mailer,
		cooldown: cooldown,
		cfg:      cfg,
		now:      time.Now,
	}
}

func accountLabel(kind models.AccountKind) string {
	if kind == models.KindAdmin {
		return "Admin"
	}
	return "User"
}

func (s *recoveryService) lookupAccount(ctx context.Context, kind models.AccountKind, email string, message string) (*models.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, kind, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(message)
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	return account, nil
}

func (s *recoveryService) Initiate(ctx context.Context, kind models.AccountKind, email string) (*models.RecoveryAck, error) {
	email = utils.NormalizeEmail(email)

	if _, err := s.lookupAccount(ctx, kind, email, accountLabel(kind)+" not found with this email"); err != nil {
		return nil, err
	}

	cooldownKey := string(kind) + ":" + email
	acquired, err := s.cooldown.Acquire(ctx, cooldownKey)
	if err != nil {
		return nil, err
	}
	if !acquired {
		log.Warn().Str("kind", string(kind)).Str("email", email).Msg("OTP requested again within cooldown window")
		return nil, apperrors.TooManyRequests("Please wait before requesting another OTP")
	}

	code, err := utils.GenerateSecureOTP(s.cfg.OTPLength)
	if err != nil {
		s.releaseCooldown(ctx, cooldownKey)
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}

	expiresAt := s.now().Add(s.cfg.OTPTTL)
	if _, err := s.otps.Upsert(ctx, email, kind, utils.HashOTP(code), expiresAt); err != nil {
		s.releaseCooldown(ctx, cooldownKey)
		return nil, err
	}

	body, err := renderOTPEmail(email, string(kind), code, s.cfg.OTPTTL)
	if err != nil {
		s.releaseCooldown(ctx, cooldownKey)
		return nil, err
	}
	if err := s.mailer.SendEmail(ctx, email, otpSubject, body); err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Str("email", email).Msg("Failed to deliver OTP email")
		s.releaseCooldown(ctx, cooldownKey)
		return nil, apperrors.DeliveryFailed("Failed to send OTP email").Wrap(err)
	}

	metrics.OTPIssuedTotal.WithLabelValues(string(kind)).Inc()
	log.Info().Str("kind", string(kind)).Str("email", email).Msg("Password reset OTP sent")

	return &models.RecoveryAck{Message: "OTP sent successfully to your email", Email: email}, nil
}

func (s *recoveryService) releaseCooldown(ctx context.Context, key string) {
	if err := s.cooldown.Release(ctx, key); err != nil {
		log.Error().Err(err).Msg("Failed to release OTP cooldown")
	}
}

func (s *recoveryService) Verify(ctx context.Context, kind models.AccountKind, email, code string) (*models.VerifyResult, error) {
	email = utils.NormalizeEmail(email)
	if len(code) != s.cfg.OTPLength {
		msg := fmt.Sprintf("otp must be %d digits", s.cfg.OTPLength)
		return nil, apperrors.Validation(msg, apperrors.FieldError{Field: "otp", Message: msg})
	}
	now := s.now()

	otp, err := s.otps.FindActive(ctx, email, kind, now)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.countVerification(kind, "rejected")
			return nil, apperrors.InvalidOrExpired()
		}
		return nil, err
	}

	if !utils.CompareOTP(code, otp.CodeHash) {
		if burned, err := s.otps.RecordFailedAttempt(ctx, otp.ID, s.cfg.MaxAttempts); err != nil {
			if !errors.Is(err, mongo.ErrNoDocuments) {
				log.Error().Err(err).Str("otp_id", otp.ID.Hex()).Msg("Failed to record OTP attempt")
			}
		} else if burned.IsUsed {
			log.Warn().Str("kind", string(kind)).Str("email", email).Msg("OTP burned after too many attempts")
		}
		s.countVerification(kind, "rejected")
		return nil, apperrors.InvalidOrExpired()
	}

	ticketID := uuid.NewString()
	consumed, err := s.otps.Consume(ctx, otp.ID, ticketID, now, now.Add(s.cfg.TicketTTL))
	if err != nil {
		return nil, err
	}
	if !consumed {
		s.countVerification(kind, "rejected")
		return nil, apperrors.InvalidOrExpired()
	}

	ticket, err := utils.GenerateResetTicket(s.cfg.JWTSecret, email, string(kind), ticketID, s.cfg.TicketTTL)
	if err != nil {
		return nil, err
	}

	s.countVerification(kind, "success")
	log.Info().Str("kind", string(kind)).Str("email", email).Msg("OTP verified")

	return &models.VerifyResult{Message: "OTP verified successfully", Email: email, ResetToken: ticket}, nil
}

func (s *recoveryService) countVerification(kind models.AccountKind, status string) {
	metrics.OTPVerificationsTotal.WithLabelValues(string(kind), status).Inc()
}

func (s *recoveryService) Reset(ctx context.Context, kind models.AccountKind, email, ticket, newPassword string) error {
	email = utils.NormalizeEmail(email)

	account, err := s.lookupAccount(ctx, kind, email, accountLabel(kind)+" not found")
	if err != nil {
		return err
	}

	claims, err := utils.ParseResetTicket(s.cfg.JWTSecret, ticket)
	if err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Str("email", email).Msg("Rejected reset ticket")
		return apperrors.InvalidOrExpired()
	}
	if claims.Subject != email || claims.Kind != string(kind) {
		log.Warn().Str("kind", string(kind)).Str("email", email).Msg("Reset ticket issued for another account")
		return apperrors.InvalidOrExpired()
	}

	claimed, err := s.otps.ClaimConsumed(ctx, email, kind, claims.ID)
	if err != nil {
		return err
	}
	if !claimed {
		return apperrors.InvalidOrExpired()
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.releaseClaim(ctx, kind, email, claims.ID)
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.accounts.UpdatePassword(ctx, kind, account.ID, string(hashedPassword)); err != nil {
		s.releaseClaim(ctx, kind, email, claims.ID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound(accountLabel(kind) + " not found")
		}
		return err
	}

	if _, err := s.otps.DeleteAllFor(ctx, email, kind); err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Str("email", email).Msg("Failed to clear OTP records after reset")
	}

	metrics.PasswordResetsTotal.WithLabelValues(string(kind)).Inc()
	log.Info().Str("kind", string(kind)).Str("account_id", account.ID.Hex()).Msg("Password reset")
	return nil
}

// releaseClaim lets the same ticket be redeemed again after a failed write.
func (s *recoveryService) releaseClaim(ctx context.Context, kind models.AccountKind, email, ticketID string) {
	if err := s.otps.ReleaseClaim(context.WithoutCancel(ctx), email, kind, ticketID); err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Str("email", email).Msg("Failed to release reset ticket")
	}
}
