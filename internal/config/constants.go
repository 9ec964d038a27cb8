package config

import "time"

// Application constants
const (
	AppName    = "adrecon"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. ADRECON_SERVER_PORT.
	EnvPrefix = "ADRECON"
	// ConfigFileEnv names an explicit YAML config file.
	ConfigFileEnv = "ADRECON_CONFIG_FILE"

	// Server defaults
	DefaultPort            = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRequestTimeout  = 60 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20

	// Rate limiting
	DefaultRateLimit = 20 // requests per second
	DefaultBurstSize = 40

	// Reconciliation
	DefaultMaxUploadBytes = 32 << 20
	DefaultMaxConcurrent  = 4
	DefaultReportFormat   = "xlsx"
	DefaultColumnMatcher  = "suffix"

	// Logging
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "console"
	DefaultLogFile   = "logs/app.log"

	// File paths, relative to the executable
	DefaultWebDir  = "web"
	DefaultLogsDir = "logs"
)

// API endpoints
const (
	APIBasePath       = "/api"
	UploadEndpoint    = "/api/upload"
	ReconcileEndpoint = "/api/reconcile"
	HealthEndpoint    = "/api/health"
	MetricsEndpoint   = "/metrics"
)
