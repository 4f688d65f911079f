package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	LocalStore    LocalStoreConfig    `mapstructure:"local_store"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Identity      IdentityConfig      `mapstructure:"identity"`
	Profile       ProfileConfig       `mapstructure:"profile"`
	Products      ProductsConfig      `mapstructure:"products"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source"`
}

// LocalStoreConfig points at the sqlite file backing the durable local
// session store. The store survives process restarts; the file is created
// on first use.
type LocalStoreConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	// UseLocalAuth pins the session resolution strategy for the whole
	// process run: true skips the remote identity provider entirely.
	UseLocalAuth         bool          `mapstructure:"use_local_auth"`
	AccessTokenSecret    string        `mapstructure:"access_token_secret"`
	RefreshTokenSecret   string        `mapstructure:"refresh_token_secret"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration"`
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration"`
	BCryptCost           int           `mapstructure:"bcrypt_cost"`
}

type IdentityConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type ProfileConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ProductsConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds a Config entirely from environment variables,
// used for container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("SERVER_PORT", 8080),
			BaseURL:           getEnv("SERVER_BASE_URL", "http://localhost:8080"),
			AllowedOrigins:    getEnv("SERVER_ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: getEnvAsDuration("SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			Source:          getEnv("DB_SOURCE", ""),
		},
		LocalStore: LocalStoreConfig{
			Path: getEnv("LOCAL_STORE_PATH", "railway_session.db"),
		},
		Auth: AuthConfig{
			UseLocalAuth:         getEnvAsBool("AUTH_USE_LOCAL_AUTH", true),
			AccessTokenSecret:    getEnv("AUTH_ACCESS_TOKEN_SECRET", ""),
			RefreshTokenSecret:   getEnv("AUTH_REFRESH_TOKEN_SECRET", ""),
			AccessTokenDuration:  getEnvAsDuration("AUTH_ACCESS_TOKEN_DURATION", 15*time.Minute),
			RefreshTokenDuration: getEnvAsDuration("AUTH_REFRESH_TOKEN_DURATION", 7*24*time.Hour),
			BCryptCost:           getEnvAsInt("AUTH_BCRYPT_COST", 10),
		},
		Identity: IdentityConfig{
			BaseURL:      getEnv("IDENTITY_BASE_URL", ""),
			APIKey:       getEnv("IDENTITY_API_KEY", ""),
			Timeout:      getEnvAsDuration("IDENTITY_TIMEOUT", 10*time.Second),
			PollInterval: getEnvAsDuration("IDENTITY_POLL_INTERVAL", 30*time.Second),
		},
		Profile: ProfileConfig{
			BaseURL: getEnv("PROFILE_BASE_URL", ""),
			APIKey:  getEnv("PROFILE_API_KEY", ""),
			Timeout: getEnvAsDuration("PROFILE_TIMEOUT", 10*time.Second),
		},
		Products: ProductsConfig{
			BaseURL: getEnv("PRODUCTS_BASE_URL", ""),
			Timeout: getEnvAsDuration("PRODUCTS_TIMEOUT", 10*time.Second),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Auth.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("auth config: %v", err))
	}

	if err := c.Identity.Validate(c.Auth.UseLocalAuth); err != nil {
		errs = append(errs, fmt.Sprintf("identity config: %v", err))
	}

	if c.LocalStore.Path == "" {
		errs = append(errs, "local_store config: path is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *AuthConfig) Validate() error {
	if c.AccessTokenSecret == "" || c.RefreshTokenSecret == "" {
		return errors.New("token secrets are required")
	}
	if c.AccessTokenDuration < time.Minute || c.AccessTokenDuration > time.Hour {
		return errors.New("access_token_duration must be between 1m and 1h")
	}
	if c.RefreshTokenDuration < time.Hour {
		return errors.New("refresh_token_duration must be at least 1h")
	}
	if c.BCryptCost < 10 || c.BCryptCost > 15 {
		return errors.New("bcrypt_cost must be between 10 and 15")
	}
	return nil
}

// Validate checks the identity provider settings. The base URL is only
// mandatory when the remote strategy is selected.
func (c *IdentityConfig) Validate(useLocalAuth bool) error {
	if useLocalAuth {
		return nil
	}
	if c.BaseURL == "" {
		return errors.New("base_url is required when use_local_auth is false")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if c.PollInterval <= 0 {
		return errors.New("poll_interval must be positive")
	}
	return nil
}
