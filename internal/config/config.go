package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	LLM       LLMConfig       `yaml:"llm"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Import    ImportConfig    `yaml:"import"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"5m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig selects and configures the question store.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"             env:"DATABASE_DRIVER"             env-default:"postgres"`
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	SQLitePath      string        `yaml:"sqlite_path"        env:"DATABASE_SQLITE_PATH"        env-default:"./quizbank.db"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LLMConfig holds text-generation provider settings.
type LLMConfig struct {
	Provider          string        `yaml:"provider"            env:"LLM_PROVIDER"            env-default:"anthropic"`
	APIKey            string        `yaml:"api_key"             env:"LLM_API_KEY"`
	Model             string        `yaml:"model"               env:"LLM_MODEL"`
	MaxOutputTokens   int           `yaml:"max_output_tokens"   env:"LLM_MAX_OUTPUT_TOKENS"   env-default:"1024"`
	Temperature       float64       `yaml:"temperature"         env:"LLM_TEMPERATURE"         env-default:"0.1"`
	Timeout           time.Duration `yaml:"timeout"             env:"LLM_TIMEOUT"             env-default:"60s"`
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"LLM_REQUESTS_PER_MINUTE" env-default:"30"`
}

// ExtractorConfig bounds prompt input and derived titles.
type ExtractorConfig struct {
	InputBudget   int `yaml:"input_budget"    env:"EXTRACTOR_INPUT_BUDGET"    env-default:"3000"`
	TitleMaxRunes int `yaml:"title_max_runes" env:"EXTRACTOR_TITLE_MAX_RUNES" env-default:"30"`
}

// ImportConfig holds batch import settings.
type ImportConfig struct {
	MaxRetries     int           `yaml:"max_retries"     env:"IMPORT_MAX_RETRIES"     env-default:"3"`
	InitialBackoff time.Duration `yaml:"initial_backoff" env:"IMPORT_INITIAL_BACKOFF" env-default:"2s"`
	MaxBackoff     time.Duration `yaml:"max_backoff"     env:"IMPORT_MAX_BACKOFF"     env-default:"30s"`
	MaxBlocks      int           `yaml:"max_blocks"      env:"IMPORT_MAX_BLOCKS"      env-default:"200"`
	MaxTextBytes   int           `yaml:"max_text_bytes"  env:"IMPORT_MAX_TEXT_BYTES"  env-default:"2097152"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig bounds API traffic per client IP. Extraction endpoints
// spend generation quota, so they get their own, lower limit.
type RateLimitConfig struct {
	RequestsPerMinute        int           `yaml:"requests_per_minute"         env:"RATE_LIMIT_RPM"          env-default:"300"`
	ExtractRequestsPerMinute int           `yaml:"extract_requests_per_minute" env:"RATE_LIMIT_EXTRACT_RPM"  env-default:"10"`
	CleanupInterval          time.Duration `yaml:"cleanup_interval"            env:"RATE_LIMIT_CLEANUP"      env-default:"5m"`
}

// Supported values for DatabaseConfig.Driver and LLMConfig.Provider.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// DefaultModel returns the model used when LLMConfig.Model is empty.
func (c LLMConfig) DefaultModel() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderGemini:
		return "gemini-1.5-flash"
	default:
		return "claude-3-5-haiku-latest"
	}
}
