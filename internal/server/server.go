package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"skilltwin/internal/config"
	"skilltwin/internal/database"
	"skilltwin/internal/middlewares"
	"skilltwin/internal/repositories"
	"skilltwin/internal/scheduler"
	"skilltwin/internal/services"
)

type Server struct {
	cfg        *config.Config
	httpServer *http.Server
	db         database.Service
	limiter    *middlewares.RateLimiter
	scheduler  *scheduler.Scheduler
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
	stop       context.CancelFunc

	socialLogin bool

	accountService    services.AccountService
	recoveryService   services.RecoveryService
	authService       services.AuthService
	blogService       services.BlogService
	catalogService    services.CatalogService
	leadService       services.LeadService
	enrollmentService services.EnrollmentService
	expertService     services.ExpertService
	sessionLogService services.SessionLogService
	taskService       services.TaskService
	analyticsService  *services.AnalyticsService
	uploadService     services.UploadService
	exportService     services.ExportService
}

// NewServer connects the stores, builds every service and returns a server
// ready to Start.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := database.New(ctx, cfg.Mongo, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := repositories.EnsureIndexes(ctx, db); err != nil {
		_ = db.Close(context.Background())
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	accountRepo := repositories.NewAccountRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	blogRepo := repositories.NewBlogRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	expertRepo := repositories.NewExpertRepository(db)
	sessionLogRepo := repositories.NewSessionLogRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	assistant, err := services.NewContentAssistant(ctx, cfg.LLM)
	if err != nil {
		log.Warn().Err(err).Msg("Blog assistant unavailable")
		assistant, _ = services.NewContentAssistant(ctx, config.LLMConfig{})
	}

	accountService := services.NewAccountService(accountRepo, cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	leadService := services.NewLeadService(leadRepo)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo)
	recoveryService := services.NewRecoveryService(
		accountRepo,
		otpRepo,
		services.NewEmailService(cfg.SMTP),
		services.NewCooldown(db.Redis(), cfg.OTP.Cooldown),
		services.NewRecoveryConfig(cfg),
	)

	s := &Server{
		cfg:         cfg,
		db:          db,
		limiter:     middlewares.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		scheduler:   scheduler.New(otpRepo, accountService, cfg.Scheduler),
		registerer:  prometheus.DefaultRegisterer,
		gatherer:    prometheus.DefaultGatherer,
		socialLogin: services.InitializeGoth(cfg),

		accountService:    accountService,
		recoveryService:   recoveryService,
		authService:       services.NewAuthService(accountRepo, cfg.JWT.Secret, cfg.JWT.AccessTokenTTL),
		blogService:       services.NewBlogService(blogRepo, assistant),
		catalogService:    services.NewCatalogService(catalogRepo),
		leadService:       leadService,
		enrollmentService: enrollmentService,
		expertService:     services.NewExpertService(expertRepo),
		sessionLogService: services.NewSessionLogService(sessionLogRepo, enrollmentRepo),
		taskService:       services.NewTaskService(taskRepo, leadRepo, expertRepo),
		analyticsService:  services.NewAnalyticsService(accountRepo, statsRepo),
		uploadService:     services.NewUploadService(ctx, cfg.S3),
		exportService:     services.NewExportService(leadService, enrollmentService),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s, nil
}

// Start runs the background jobs and blocks serving HTTP.
func (s *Server) Start() error {
	bg, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	go s.limiter.CleanupVisitors(bg)

	if err := s.scheduler.Start(); err != nil {
		log.Error().Err(err).Msg("Failed to start scheduler")
	}

	log.Info().Int("port", s.cfg.Server.Port).Str("env", s.cfg.Server.Environment).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	if s.stop != nil {
		s.stop()
	}
	s.scheduler.Stop(ctx)

	if err := s.db.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to close database connections")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
