package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mhollis/vitrine/internal/auth"
	"github.com/mhollis/vitrine/internal/background"
	"github.com/mhollis/vitrine/internal/config"
	"github.com/mhollis/vitrine/internal/database"
	"github.com/mhollis/vitrine/internal/handlers"
	"github.com/mhollis/vitrine/internal/metrics"
	middlewareCustom "github.com/mhollis/vitrine/internal/middleware"
	"github.com/mhollis/vitrine/internal/models"
	"github.com/mhollis/vitrine/internal/repositories"
	"github.com/mhollis/vitrine/internal/routes"
	"github.com/mhollis/vitrine/internal/services"
	"github.com/mhollis/vitrine/internal/uploads"
	pkgauth "github.com/mhollis/vitrine/pkg/auth"
	pkghttp "github.com/mhollis/vitrine/pkg/http"
	pkglogger "github.com/mhollis/vitrine/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := db.Migrate(migrateCtx, "migrations"); err != nil {
		migrateCancel()
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	migrateCancel()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	loginAttemptRepo := repositories.NewLoginAttemptRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	productImageRepo := repositories.NewProductImageRepository(db)
	heroImageRepo := repositories.NewHeroImageRepository(db)
	contactRepo := repositories.NewContactRequestRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	// Upload storage
	uploadStore, err := uploads.NewStore(cfg.Uploads.Dir, cfg.Uploads.MaxSizeBytes)
	if err != nil {
		logger.Error("failed to initialize upload storage", slog.Any("error", err))
		os.Exit(1)
	}

	appMetrics := metrics.New()
	auditLogger := pkglogger.NewAuditLogger(logger)

	// Initialize cleanup manager
	cleanupManager := background.NewCleanupManager(sessionRepo, loginAttemptRepo, logger, cfg.Auth.CleanupInterval)

	// AWS SES contact notifications, when configured
	var notifier services.ContactNotifier
	if cfg.Email.Enabled {
		emailService, err := services.NewAWSSESEmailService(
			cfg.Email.AWSRegion,
			cfg.Email.FromAddress,
			cfg.Email.OwnerAddress,
			logger,
		)
		if err != nil {
			logger.Error("failed to initialize email service", slog.Any("error", err))
			os.Exit(1)
		}
		notifier = emailService
	}

	// Initialize services
	lockoutService := services.NewLockoutService(loginAttemptRepo, services.LockoutConfig{
		MaxFailedAttempts: cfg.Auth.MaxFailedAttempts,
		LockoutDuration:   cfg.Auth.LockoutDuration,
	}, logger)
	authService := services.NewAuthService(userRepo, sessionRepo, lockoutService, cfg.Auth.SessionTTL, logger, auditLogger, appMetrics)
	userService := services.NewUserService(userRepo, sessionRepo, logger, auditLogger)
	catalogService := services.NewCatalogService(categoryRepo, productRepo, productImageRepo, uploadStore, logger)
	contentService := services.NewContentService(heroImageRepo, settingRepo, uploadStore, logger)
	contactService := services.NewContactService(contactRepo, notifier, logger, appMetrics)

	// Initialize handlers
	cookieConfig := auth.CookieConfig{Secure: cfg.Auth.CookieSecure}
	ipConfig := &pkghttp.IPConfig{}
	csrfManager := auth.NewCSRFTokenManager()

	h := routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService, csrfManager, cookieConfig, cfg.Auth.SessionTTL, ipConfig),
		Users:      handlers.NewUserHandler(userService),
		Categories: handlers.NewCategoryHandler(catalogService),
		Products:   handlers.NewProductHandler(catalogService, uploadStore),
		HeroImages: handlers.NewHeroImageHandler(contentService, uploadStore),
		Settings:   handlers.NewSettingsHandler(contentService),
		Contact:    handlers.NewContactHandler(contactService),
		Uploads:    handlers.NewUploadHandler(uploadStore),
	}

	// Bootstrap the first dashboard account if configured
	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureAdminUser(bootstrapCtx, userRepo, logger); err != nil {
		logger.Error("failed to ensure admin user", slog.Any("error", err))
	}
	bootstrapCancel()

	// Setup CORS middleware
	corsConfig := middlewareCustom.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger, appMetrics))
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, h, sessionRepo, userRepo, csrfManager, logger, uploadStore.Dir())

	// Health check with database
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	// Prometheus metrics
	router.Method(http.MethodGet, "/metrics", appMetrics.Handler())

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start cleanup task
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	go cleanupManager.Start(cleanupCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cleanupCancel()
	cleanupManager.Stop()
	csrfManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// ensureAdminUser creates the bootstrap super admin if ADMIN_PASSWORD is set.
// The username defaults to the protected account name.
func ensureAdminUser(ctx context.Context, userRepo *repositories.UserRepository, logger *slog.Logger) error {
	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminUsername == "" {
		adminUsername = models.ProtectedUsername
	}

	if adminPassword == "" {
		logger.Info("no ADMIN_PASSWORD set, skipping admin user creation")
		return nil
	}

	// Check if the account already exists
	_, err := userRepo.GetByUsername(ctx, adminUsername)
	if err == nil {
		logger.Info("admin user already exists")
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	hashedPassword, err := pkgauth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Username:     adminUsername,
		PasswordHash: hashedPassword,
		Role:         models.RoleSuperAdmin,
	}

	if _, err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("admin user created successfully", slog.String("username", adminUsername))
	return nil
}
