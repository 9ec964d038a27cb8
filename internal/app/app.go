package app

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"adrecon/internal/config"
	"adrecon/internal/dataprocessing"
	apierrors "adrecon/internal/errors"
	"adrecon/internal/infrastructure"
	customMiddleware "adrecon/internal/middleware"
	"adrecon/internal/services"
	handlers "adrecon/internal/transport/http"
	"adrecon/internal/validation"
)

// systemMetricsInterval is how often runtime metrics are sampled
const systemMetricsInterval = 15 * time.Second

var (
	// BuildTime is set at compile time
	BuildTime = time.Now().Format(time.RFC3339)
	// BuildID is a unique identifier for this build
	BuildID = generateBuildID()
)

func generateBuildID() string {
	h := sha256.New()
	h.Write([]byte(config.AppVersion))
	h.Write([]byte(time.Now().Format("2006-01-02")))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	ErrorHandler  *apierrors.ErrorHandler
	Services      *ServiceContainer

	collector *infrastructure.SystemMetricsCollector
	bgWG      sync.WaitGroup
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Reconcile *services.ReconcileService
	Health    *services.HealthService
}

// NewApplication loads the configuration, initializes the process logger and
// builds the application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires an application from an already loaded configuration
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("web_dir", cfg.Paths.WebDir),
		slog.String("logs_dir", cfg.Paths.LogsDir))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFromTelemetry(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	collector, err := infrastructure.NewSystemMetricsCollector(a.OTelProviders.Meter, systemMetricsInterval)
	if err != nil {
		return fmt.Errorf("failed to create system metrics collector: %w", err)
	}
	a.collector = collector

	pipeline := dataprocessing.NewPipeline(
		dataprocessing.WithMatcher(a.Config.ColumnMatcher()),
		dataprocessing.WithLabels(a.Config.Reconcile.Labels),
		dataprocessing.WithLogger(infrastructure.WithComponent(a.Logger, "pipeline")),
	)

	reconcileService := services.NewReconcileService(
		pipeline,
		a.Config.Reconcile.MaxConcurrent,
		a.Metrics,
		a.OTelProviders.Tracer,
		a.Logger,
	)

	healthService := services.NewHealthService(
		services.BuildInfo{Version: config.AppVersion, BuildTime: BuildTime, BuildID: BuildID},
		a.Config.Paths,
		reconcileService,
		collector,
		a.Logger,
	)

	a.Services = &ServiceContainer{
		Reconcile: reconcileService,
		Health:    healthService,
	}

	a.Logger.Info("Services initialized",
		slog.Int64("max_concurrent", reconcileService.Capacity()),
		slog.Int64("max_upload_bytes", a.Config.Reconcile.MaxUploadBytes),
		slog.String("column_matcher", a.Config.Reconcile.ColumnMatcher))

	return nil
}

// setupRouter configures the router.
// Order: RequestID, RealIP, OTel, Logger, Recoverer, then response shaping.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.ErrorHandler))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(a.getCORSConfig()))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
			a.ErrorHandler,
		).Handler)
	}

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.setupAPIRoutes(r)

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle(config.MetricsEndpoint, a.OTelProviders.PrometheusHTTP)
	}

	a.setupStaticRoutes(r)

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	validator := validation.NewRequestValidator()

	healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
	clientLogHandler := handlers.NewClientLogHandler(a.Logger, validator, a.ErrorHandler)
	reconcileHandler := handlers.NewReconcileHandler(
		a.Services.Reconcile,
		validator,
		a.ErrorHandler,
		a.Config.ReportFormat(),
		a.Config.Reconcile.MaxUploadBytes,
		a.Logger,
	)

	r.Route(config.APIBasePath, func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/version", healthHandler.Version)

		r.Post("/client-log", clientLogHandler.Handle)

		r.Mount("/", reconcileHandler.Routes())
	})
}

// setupStaticRoutes serves the front-end from the web directory
func (a *Application) setupStaticRoutes(r chi.Router) {
	if !config.FileExists(a.Config.Paths.WebDir) {
		a.Logger.Warn("Web directory not found, front-end disabled",
			slog.String("web_dir", a.Config.Paths.WebDir))
		return
	}

	r.Handle("/*", handlers.NewStaticHandler(a.Config.Paths.WebDir, a.ErrorHandler))
}

// getCORSConfig returns the CORS configuration
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
		Logger:         a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start binds the listener and serves in the background. A serve failure
// calls cancel so Run can shut down.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}

	return a.serve(ctx, cancel, ln)
}

func (a *Application) serve(ctx context.Context, cancel context.CancelFunc, ln net.Listener) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("address", ln.Addr().String()),
		slog.String("level", a.Config.Logging.Level))

	a.bgWG.Add(1)
	go func() {
		defer a.bgWG.Done()
		a.collector.Start(ctx)
	}()

	go func() {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("url", fmt.Sprintf("http://%s", ln.Addr().String())))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.collector.Stop()
	a.bgWG.Wait()

	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted or the server fails
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case sig := <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
		a.Logger.WarnContext(ctx, "Server stopped unexpectedly")
	}

	// The run context may already be cancelled; shutdown gets its own.
	return a.Stop(context.Background())
}
