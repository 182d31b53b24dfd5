package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkWindowHandler "github.com/m-orlv/STB-AvailabilityService/internal/api/handlers/check_window"
	createTemplateHandler "github.com/m-orlv/STB-AvailabilityService/internal/api/handlers/create_template"
	deleteOverrideHandler "github.com/m-orlv/STB-AvailabilityService/internal/api/handlers/delete_override"
	deleteTemplateHandler "github.com/m-orlv/STB-AvailabilityService/internal/api/handlers/delete_template"
	getAvailabilityHandler "github.com/m-orlv/STB-AvailabilityService/internal/api/handlers/get_availability"
	getEffectiveConfigHandler "github.com/m-orlv/STB-AvailabilityService/internal/api/handlers/get_effective_config"
	getOverridesHandler "github.com/m-orlv/STB-AvailabilityService/internal/api/handlers/get_overrides"
	getTemplatesHandler "github.com/m-orlv/STB-AvailabilityService/internal/api/handlers/get_templates"
	previewEffectiveConfigHandler "github.com/m-orlv/STB-AvailabilityService/internal/api/handlers/preview_effective_config"
	updateTemplateHandler "github.com/m-orlv/STB-AvailabilityService/internal/api/handlers/update_template"
	upsertOverrideHandler "github.com/m-orlv/STB-AvailabilityService/internal/api/handlers/upsert_override"
	"github.com/m-orlv/STB-AvailabilityService/internal/api/middleware"
	"github.com/m-orlv/STB-AvailabilityService/internal/config"
	bookingRepo "github.com/m-orlv/STB-AvailabilityService/internal/infra/storage/booking"
	scheduleRepo "github.com/m-orlv/STB-AvailabilityService/internal/infra/storage/schedule"
	providerServiceClient "github.com/m-orlv/STB-AvailabilityService/internal/integrations/providerservice"
	recomputeService "github.com/m-orlv/STB-AvailabilityService/internal/service/recompute"
	scheduleService "github.com/m-orlv/STB-AvailabilityService/internal/service/schedule"
	checkWindowUC "github.com/m-orlv/STB-AvailabilityService/internal/usecase/check_window"
	getAvailabilityUC "github.com/m-orlv/STB-AvailabilityService/internal/usecase/get_availability"
	getEffectiveConfigUC "github.com/m-orlv/STB-AvailabilityService/internal/usecase/get_effective_config"
	"github.com/m-orlv/STB-AvailabilityService/pkg/dbmetrics"
	"github.com/m-orlv/STB-AvailabilityService/pkg/logger"
	"github.com/m-orlv/STB-AvailabilityService/pkg/metrics"
	"github.com/m-orlv/STB-AvailabilityService/pkg/simpletxmanager"
	"github.com/m-orlv/STB-AvailabilityService/pkg/txmanager"
)

// systemClock is the production TimeProvider.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func main() {
	// Load configuration
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting STB-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Initialize metrics (when enabled)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Connect to the database
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Configure the connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Initialize the provider-profile client
	providerClient := providerServiceClient.NewClient(
		cfg.ProviderService.URL,
		time.Duration(cfg.ProviderService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (ProviderService=%s timeout=%ds)",
		cfg.ProviderService.URL, cfg.ProviderService.Timeout)

	// Initialize repositories and the transaction manager, with or without
	// the metrics wrapper
	var (
		scheduleRepository *scheduleRepo.Repository
		bookingRepository  *bookingRepo.Repository
		txMgr              scheduleService.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		scheduleRepository = scheduleRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Initialize services
	coordinator := recomputeService.NewCoordinator(
		scheduleRepository,
		providerClient,
		systemClock{},
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		providerClient,
		coordinator,
		txMgr,
		log,
	)

	// Initialize use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		providerClient,
		log,
	)
	checkWindowUseCase := checkWindowUC.NewUseCase(
		bookingRepository,
		providerClient,
		log,
	)
	getEffectiveConfigUseCase := getEffectiveConfigUC.NewUseCase(
		scheduleRepository,
		providerClient,
		log,
	)

	// Initialize handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	checkWindow := checkWindowHandler.NewHandler(checkWindowUseCase, log)
	getEffectiveConfig := getEffectiveConfigHandler.NewHandler(getEffectiveConfigUseCase, log)
	previewEffectiveConfig := previewEffectiveConfigHandler.NewHandler(getEffectiveConfigUseCase, log)
	createTemplate := createTemplateHandler.NewHandler(scheduleSvc, log)
	updateTemplate := updateTemplateHandler.NewHandler(scheduleSvc, log)
	deleteTemplate := deleteTemplateHandler.NewHandler(scheduleSvc, log)
	getTemplates := getTemplatesHandler.NewHandler(scheduleSvc, log)
	upsertOverride := upsertOverrideHandler.NewHandler(scheduleSvc, log)
	deleteOverride := deleteOverrideHandler.NewHandler(scheduleSvc, log)
	getOverrides := getOverridesHandler.NewHandler(scheduleSvc, log)

	// Set up the router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Computed availability for one date
	api.HandleFunc("/providers/{providerId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Conflict check for an arbitrary absolute window
	api.HandleFunc("/providers/{providerId}/window-check",
		checkWindow.Handle).Methods(http.MethodGet)

	// Resolved working-window-plus-breaks for one date
	api.HandleFunc("/providers/{providerId}/effective-config",
		getEffectiveConfig.Handle).Methods(http.MethodGet)

	// Preview of a pending template/override edit
	api.HandleFunc("/providers/{providerId}/effective-config/preview",
		previewEffectiveConfig.Handle).Methods(http.MethodPost)

	// Configured templates and overrides
	api.HandleFunc("/providers/{providerId}/templates",
		getTemplates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/overrides",
		getOverrides.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (require X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Weekly templates
	protected.HandleFunc("/providers/{providerId}/templates",
		createTemplate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/providers/{providerId}/templates/{templateId}",
		updateTemplate.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/templates/{templateId}",
		deleteTemplate.Handle).Methods(http.MethodDelete)

	// Date overrides
	protected.HandleFunc("/providers/{providerId}/overrides/{date}",
		upsertOverride.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/overrides/{date}",
		deleteOverride.Handle).Methods(http.MethodDelete)

	// Create the HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
