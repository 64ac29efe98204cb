package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"skilltwin/internal/config"
	"skilltwin/internal/metrics"
	"skilltwin/internal/repositories"
	"skilltwin/internal/services"
)

const jobTimeout = 30 * time.Second

// Scheduler runs the periodic maintenance jobs: purging expired OTP records
// and refreshing the accounts gauge.
type Scheduler struct {
	cron     *cron.Cron
	otps     repositories.OTPRepository
	accounts services.AccountService
	cfg      config.SchedulerConfig
	now      func() time.Time
}

func New(otps repositories.OTPRepository, accounts services.AccountService, cfg config.SchedulerConfig) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		otps:     otps,
		accounts: accounts,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.OTPPurgeSpec, func() { s.PurgeExpiredOTPs(context.Background()) }); err != nil {
		log.Error().Err(err).Str("schedule", s.cfg.OTPPurgeSpec).Msg("Failed to add OTP purge job")
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.AccountStatsSpec, func() { s.RefreshAccountStats(context.Background()) }); err != nil {
		log.Error().Err(err).Str("schedule", s.cfg.AccountStatsSpec).Msg("Failed to add account stats job")
		return err
	}

	s.cron.Start()
	log.Info().Str("otp_purge", s.cfg.OTPPurgeSpec).Str("account_stats", s.cfg.AccountStatsSpec).Msg("Scheduler started")
	return nil
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	log.Info().Msg("Stopping scheduler...")
	select {
	case <-s.cron.Stop().Done():
		log.Info().Msg("Scheduler stopped")
	case <-ctx.Done():
		log.Warn().Msg("Scheduler stop timed out")
	}
}

// PurgeExpiredOTPs removes OTP records the TTL monitor has not reached yet.
func (s *Scheduler) PurgeExpiredOTPs(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	deleted, err := s.otps.DeleteExpired(ctx, s.now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to purge expired OTPs")
		return
	}
	metrics.OTPPurgedTotal.Add(float64(deleted))
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("Purged expired OTPs")
	}
}

func (s *Scheduler) RefreshAccountStats(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	if err := s.accounts.RefreshAccountsGauge(ctx); err != nil {
		log.Error().Err(err).Msg("Error updating accounts gauge")
	}
}
