package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Render   RenderConfig
	Session  SessionConfig
	Logger   LoggerConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DataConfig selects where the dataset is fetched from. When BaseURL is set
// the dataset is fetched over HTTP, otherwise File is read from disk.
type DataConfig struct {
	File    string
	BaseURL string
	Path    string
}

type RenderConfig struct {
	LoadTimeout  time.Duration
	BarWidth     int
	DonutWidth   int
	ChartWarmup  time.Duration
	DisableChart bool
}

type SessionConfig struct {
	CacheSize  int
	CookieName string
	MaxAge     time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

type SecurityConfig struct {
	EnableRateLimit bool
	RateLimitRPS    int
	RateLimitBurst  int
	AllowedOrigins  []string
	TrustedProxies  []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", "localhost"),
			Port:            getEnvInt("SERVER_PORT", 8084),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Data: DataConfig{
			File:    getEnvString("DATA_FILE", "data/productos.json"),
			BaseURL: getEnvString("DATA_BASE_URL", ""),
			Path:    getEnvString("DATA_PATH", "/data/productos.json"),
		},
		Render: RenderConfig{
			LoadTimeout:  getEnvDuration("RENDER_LOAD_TIMEOUT", 5*time.Second),
			BarWidth:     getEnvInt("CHART_DEFAULT_WIDTH", 960),
			DonutWidth:   getEnvInt("DONUT_DEFAULT_WIDTH", 560),
			ChartWarmup:  getEnvDuration("CHART_WARMUP_TIMEOUT", 10*time.Second),
			DisableChart: getEnvBool("CHART_DISABLED", false),
		},
		Session: SessionConfig{
			CacheSize:  getEnvInt("SESSION_CACHE_SIZE", 1024),
			CookieName: getEnvString("SESSION_COOKIE", "dash_session"),
			MaxAge:     getEnvDuration("SESSION_MAX_AGE", 24*time.Hour),
		},
		Logger: LoggerConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "json"),
		},
		Security: SecurityConfig{
			EnableRateLimit: getEnvBool("SECURITY_RATE_LIMIT_ENABLED", true),
			RateLimitRPS:    getEnvInt("SECURITY_RATE_LIMIT_RPS", 100),
			RateLimitBurst:  getEnvInt("SECURITY_RATE_LIMIT_BURST", 20),
			AllowedOrigins:  getEnvStringSlice("SECURITY_ALLOWED_ORIGINS", []string{"http://localhost:8084"}),
			TrustedProxies:  getEnvStringSlice("SECURITY_TRUSTED_PROXIES", []string{"127.0.0.1"}),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Data.BaseURL == "" && c.Data.File == "" {
		return fmt.Errorf("one of DATA_BASE_URL or DATA_FILE must be set")
	}

	if c.Data.BaseURL != "" && !strings.HasPrefix(c.Data.BaseURL, "http://") && !strings.HasPrefix(c.Data.BaseURL, "https://") {
		return fmt.Errorf("data base URL must be http or https, got %q", c.Data.BaseURL)
	}

	if !strings.HasPrefix(c.Data.Path, "/") {
		return fmt.Errorf("data path must start with '/', got %q", c.Data.Path)
	}

	if c.Render.LoadTimeout <= 0 {
		return fmt.Errorf("render load timeout must be positive")
	}

	if c.Render.BarWidth <= 0 || c.Render.DonutWidth <= 0 {
		return fmt.Errorf("default chart widths must be positive")
	}

	if c.Session.CacheSize <= 0 {
		return fmt.Errorf("session cache size must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}

	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// UsesHTTPSource reports whether the dataset is fetched over HTTP.
func (c *Config) UsesHTTPSource() bool {
	return c.Data.BaseURL != ""
}
