package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Account Activity Metrics
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_registrations_total",
		Help: "Total number of account registrations.",
	}, []string{"kind"}) // kind: "user" or "admin"
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_login_attempts_total",
		Help: "Total number of login attempts (successful and failed).",
	}, []string{"kind", "status"}) // status: "success" or "failed"
	AccountsTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "app_accounts_total",
		Help: "Number of stored accounts.",
	}, []string{"kind"})

	// Password Recovery Metrics
	OTPIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_otp_issued_total",
		Help: "Total number of password reset codes sent.",
	}, []string{"kind"})
	OTPVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_otp_verifications_total",
		Help: "Total number of password reset code checks.",
	}, []string{"kind", "status"})
	PasswordResetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_password_resets_total",
		Help: "Total number of completed password resets.",
	}, []string{"kind"})
	OTPPurgedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_otp_purged_total",
		Help: "Total number of expired codes removed by the purge job.",
	})

	// Business Metrics
	LeadsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_leads_created_total",
		Help: "Total number of leads received.",
	}, []string{"source"})
	EnrollmentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_enrollments_created_total",
		Help: "Total number of program enrollments.",
	})
	BlogsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_blogs_created_total",
		Help: "Total number of blog posts created.",
	})
	BlogAssistsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_blog_assists_generated_total",
		Help: "Total number of LLM drafted blog excerpts.",
	})
	ExportsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_exports_generated_total",
		Help: "Total number of spreadsheet exports.",
	}, []string{"dataset"})

	// Database Metrics
	DBQueryDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"query_type", "repository", "status"})
	DBQueryErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "db_query_errors_total",
		Help: "Total number of failed database queries.",
	}, []string{"query_type", "repository"})
)
