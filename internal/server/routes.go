package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skilltwin/internal/handlers"
	"skilltwin/internal/middlewares"
	"skilltwin/internal/models"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.AccessLog)
	r.Use(middlewares.CorsMiddleware(s.cfg.Server.AllowedOrigins))
	r.Use(middlewares.NewPrometheusMiddleware(s.registerer).Instrument)
	r.Use(s.limiter.RateLimit)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.HelloWorldHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/health", ch.HealthHandler).Methods("GET", "OPTIONS")
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods("GET")

	s.registerAccountRoutes(r, "/api/auth", models.KindUser, "/me")
	s.registerAccountRoutes(r, "/api/admin", models.KindAdmin, "/profile")
	s.registerSocialRoutes(r)
	s.registerPublicRoutes(r)

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(middlewares.AuthMiddleware(s.cfg.JWT.Secret))
	admin.Use(middlewares.RequireRole(string(models.KindAdmin)))

	s.registerBlogAdminRoutes(admin)
	s.registerCatalogAdminRoutes(admin, "/services", models.CatalogService)
	s.registerCatalogAdminRoutes(admin, "/trainings", models.CatalogTraining)
	s.registerLeadAdminRoutes(admin)
	s.registerOperationsRoutes(admin)
	s.registerStatsRoutes(admin)

	return r
}

// registerAccountRoutes mounts register, login, profile and password recovery
// for one account kind under prefix.
func (s *Server) registerAccountRoutes(r *mux.Router, prefix string, kind models.AccountKind, profilePath string) {
	h := handlers.NewAccountHandler(kind, s.accountService, s.recoveryService)
	auth := middlewares.AuthMiddleware(s.cfg.JWT.Secret)

	r.HandleFunc(prefix+"/register", h.Register).Methods("POST", "OPTIONS")
	r.HandleFunc(prefix+"/login", h.Login).Methods("POST", "OPTIONS")
	r.HandleFunc(prefix+"/forgot-password", h.ForgotPassword).Methods("POST", "OPTIONS")
	r.HandleFunc(prefix+"/verify-otp", h.VerifyOTP).Methods("POST", "OPTIONS")
	r.HandleFunc(prefix+"/reset-password", h.ResetPassword).Methods("POST", "OPTIONS")

	var profile http.Handler = http.HandlerFunc(h.Profile)
	if kind == models.KindAdmin {
		profile = middlewares.RequireRole(string(kind))(profile)
		r.HandleFunc(prefix+"/check-email", h.CheckEmail).Methods("POST", "OPTIONS")
	}
	r.Handle(prefix+profilePath, auth(profile)).Methods("GET", "OPTIONS")
}

func (s *Server) registerSocialRoutes(r *mux.Router) {
	ah := handlers.NewAuthHandler(s.authService, s.cfg.Server.FrontendURL, s.cfg.IsProduction(), s.socialLogin)

	r.HandleFunc("/api/auth/{provider}", ah.ProviderAuth).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/auth/{provider}/callback", ah.ProviderCallback).Methods("GET", "OPTIONS")
}

func (s *Server) registerPublicRoutes(r *mux.Router) {
	bh := handlers.NewBlogHandler(s.blogService)
	r.HandleFunc("/api/blogs", bh.ListBlogs).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/blogs/{idOrSlug}", bh.GetBlog).Methods("GET", "OPTIONS")

	svc := handlers.NewCatalogHandler(models.CatalogService, s.catalogService)
	r.HandleFunc("/api/services", svc.ListActive).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/services/{idOrSlug}", svc.GetActive).Methods("GET", "OPTIONS")

	th := handlers.NewCatalogHandler(models.CatalogTraining, s.catalogService)
	r.HandleFunc("/api/trainings", th.ListActive).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/trainings/{idOrSlug}", th.GetActive).Methods("GET", "OPTIONS")

	lh := handlers.NewLeadHandler(s.leadService, s.exportService)
	r.HandleFunc("/api/inquiry", lh.SubmitInquiry).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/service-inquiry", lh.SubmitServiceInquiry).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/contact", lh.SubmitContact).Methods("POST", "OPTIONS")

	eh := handlers.NewEnrollmentHandler(s.enrollmentService, s.exportService)
	r.HandleFunc("/api/enroll", eh.Enroll).Methods("POST", "OPTIONS")
}

func (s *Server) registerBlogAdminRoutes(admin *mux.Router) {
	bh := handlers.NewBlogHandler(s.blogService)
	admin.HandleFunc("/blogs", bh.CreateBlog).Methods("POST", "OPTIONS")
	admin.HandleFunc("/blogs/{idOrSlug}", bh.UpdateBlog).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/blogs/{idOrSlug}", bh.DeleteBlog).Methods("DELETE", "OPTIONS")
	admin.HandleFunc("/blogs/{idOrSlug}/assist", bh.AssistBlog).Methods("POST", "OPTIONS")

	uh := handlers.NewUploadHandler(s.uploadService)
	admin.HandleFunc("/uploads/presign", uh.PresignImage).Methods("POST", "OPTIONS")
}

func (s *Server) registerCatalogAdminRoutes(admin *mux.Router, path string, kind models.CatalogKind) {
	h := handlers.NewCatalogHandler(kind, s.catalogService)
	admin.HandleFunc(path, h.ListAll).Methods("GET", "OPTIONS")
	admin.HandleFunc(path, h.CreateItem).Methods("POST", "OPTIONS")
	admin.HandleFunc(path+"/{id}", h.UpdateItem).Methods("PUT", "OPTIONS")
	admin.HandleFunc(path+"/{id}", h.DeleteItem).Methods("DELETE", "OPTIONS")
}

func (s *Server) registerLeadAdminRoutes(admin *mux.Router) {
	lh := handlers.NewLeadHandler(s.leadService, s.exportService)
	admin.HandleFunc("/leads", lh.ListLeads).Methods("GET", "OPTIONS")
	admin.HandleFunc("/leads/export", lh.ExportLeads).Methods("GET", "OPTIONS")
	admin.HandleFunc("/leads/{id}/download", lh.DownloadLead).Methods("GET", "OPTIONS")

	eh := handlers.NewEnrollmentHandler(s.enrollmentService, s.exportService)
	admin.HandleFunc("/enrollments", eh.ListEnrollments).Methods("GET", "OPTIONS")
	admin.HandleFunc("/enrollments/export", eh.ExportEnrollments).Methods("GET", "OPTIONS")
}

// registerOperationsRoutes covers experts, their session logs and task assignment.
func (s *Server) registerOperationsRoutes(admin *mux.Router) {
	xh := handlers.NewExpertHandler(s.expertService)
	admin.HandleFunc("/experts", xh.ListExperts).Methods("GET", "OPTIONS")
	admin.HandleFunc("/experts", xh.CreateExpert).Methods("POST", "OPTIONS")
	admin.HandleFunc("/experts/{id}", xh.UpdateExpert).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/experts/{id}", xh.DeleteExpert).Methods("DELETE", "OPTIONS")

	sh := handlers.NewSessionLogHandler(s.sessionLogService)
	admin.HandleFunc("/session-logs", sh.ListSessionLogs).Methods("GET", "OPTIONS")
	admin.HandleFunc("/session-logs", sh.CreateSessionLog).Methods("POST", "OPTIONS")
	admin.HandleFunc("/session-logs/{id}", sh.UpdateSessionLog).Methods("PUT", "OPTIONS")

	th := handlers.NewTaskHandler(s.taskService)
	admin.HandleFunc("/tasks/assign", th.AssignTask).Methods("POST", "OPTIONS")
	admin.HandleFunc("/tasks", th.ListTasks).Methods("GET", "OPTIONS")
}

func (s *Server) registerStatsRoutes(admin *mux.Router) {
	ah := handlers.NewAnalyticsHandlers(s.analyticsService)
	admin.HandleFunc("/stats", ah.GetDashboardStats).Methods("GET", "OPTIONS")
	admin.HandleFunc("/stats/growth", ah.GetGrowth).Methods("GET", "OPTIONS")
	admin.HandleFunc("/stats/popular-programs", ah.GetPopularPrograms).Methods("GET", "OPTIONS")
}
