package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"adrecon/internal/dataprocessing"
	apierrors "adrecon/internal/errors"
	"adrecon/pkg/contracts/domain"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Reconcile ReconcileConfig `yaml:"reconcile" envconfig:"RECONCILE"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST"`
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// ReconcileConfig tunes upload handling and the processing pipeline
type ReconcileConfig struct {
	MaxUploadBytes int64                 `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES"`
	MaxConcurrent  int64                 `yaml:"max_concurrent" envconfig:"MAX_CONCURRENT"`
	DefaultFormat  string                `yaml:"default_format" envconfig:"DEFAULT_FORMAT"`
	ColumnMatcher  string                `yaml:"column_matcher" envconfig:"COLUMN_MATCHER"`
	Labels         dataprocessing.Labels `yaml:"labels" envconfig:"LABELS"`
}

// TelemetryConfig controls tracing and metrics export
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	TraceStdout    bool   `yaml:"trace_stdout" envconfig:"TRACE_STDOUT"`
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	WebDir        string `yaml:"web_dir" envconfig:"WEB_DIR"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Load builds the configuration from defaults, the optional YAML config file
// and environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit config file. An empty path skips the file.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apierrors.NewConfigError("failed to load config from file "+configFile, err)
		}
	}

	// Fields carry no default tags, so unset variables leave file values alone.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, apierrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	if c.Security.RateLimit.Enabled && (c.Security.RateLimit.RPS <= 0 || c.Security.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive")
	}

	if c.Reconcile.MaxUploadBytes <= 0 {
		return fmt.Errorf("reconcile max upload bytes must be positive")
	}

	if c.Reconcile.MaxConcurrent <= 0 {
		return fmt.Errorf("reconcile max concurrent must be positive")
	}

	if _, err := domain.ParseReportFormat(c.Reconcile.DefaultFormat); err != nil {
		return fmt.Errorf("invalid default report format: %w", err)
	}

	if _, ok := dataprocessing.MatcherByName(c.Reconcile.ColumnMatcher); !ok {
		return fmt.Errorf("unknown column matcher: %q", c.Reconcile.ColumnMatcher)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %q", c.Logging.Output)
	}

	// Logs are always structured JSON
	c.Logging.Format = DefaultLogFormat

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	return nil
}

// getConfigFilePath returns the config file named by ADRECON_CONFIG_FILE, or
// the first one found in the usual locations.
func getConfigFilePath() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			MaxHeaderBytes:  DefaultMaxHeaderBytes,
			ShutdownTimeout: DefaultShutdownTimeout,
			RequestTimeout:  DefaultRequestTimeout,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Reconcile: ReconcileConfig{
			MaxUploadBytes: DefaultMaxUploadBytes,
			MaxConcurrent:  DefaultMaxConcurrent,
			DefaultFormat:  DefaultReportFormat,
			ColumnMatcher:  DefaultColumnMatcher,
			Labels:         dataprocessing.DefaultLabels(),
		},
		Telemetry: TelemetryConfig{
			ServiceName:    AppName,
			MetricsEnabled: true,
		},
		Paths: PathsConfig{
			WebDir:  DefaultWebDir,
			LogsDir: DefaultLogsDir,
		},
	}
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ReportFormat returns the configured default report format
func (c *Config) ReportFormat() domain.ReportFormat {
	f, err := domain.ParseReportFormat(c.Reconcile.DefaultFormat)
	if err != nil {
		return domain.ReportFormatExcel
	}
	return f
}

// ColumnMatcher returns the configured column matching strategy
func (c *Config) ColumnMatcher() dataprocessing.ColumnMatcher {
	m, ok := dataprocessing.MatcherByName(c.Reconcile.ColumnMatcher)
	if !ok {
		return dataprocessing.SuffixMatcher{}
	}
	return m
}
