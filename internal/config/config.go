package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Redis struct {
		Addr            string `yaml:"addr" env:"REDIS_ADDR"`
		RateLimitPerMin int    `yaml:"rate_limit_per_min" env:"RATE_LIMIT_PER_MIN"`
	} `yaml:"redis"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	// Grading holds the percentage-to-letter cut table. It is the
	// admin-reloadable part of the configuration: loaded at startup and
	// replaced wholesale through the settings reload endpoint, never
	// mutated in place.
	Grading GradingConfig `yaml:"grading"`
}

// GradeCut maps a minimum percentage to a letter grade.
type GradeCut struct {
	Grade      string  `yaml:"grade"`
	MinPercent float64 `yaml:"min_percent"`
}

// GradingConfig is the configured cut table, highest cut first.
type GradingConfig struct {
	Cuts []GradeCut `yaml:"cuts"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	loadFromEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "campusgate"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Redis.Addr = "localhost:6379"
	config.Redis.RateLimitPerMin = 300

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "campusgate.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Grading = DefaultGrading()
}

// DefaultGrading returns the default percentage-to-letter cut table.
func DefaultGrading() GradingConfig {
	return GradingConfig{Cuts: []GradeCut{
		{Grade: "A+", MinPercent: 90},
		{Grade: "A", MinPercent: 80},
		{Grade: "B+", MinPercent: 70},
		{Grade: "B", MinPercent: 60},
		{Grade: "C+", MinPercent: 50},
		{Grade: "C", MinPercent: 40},
		{Grade: "D", MinPercent: 33},
		{Grade: "F", MinPercent: 0},
	}}
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) {
	config.Server.Port = GetEnv("SERVER_PORT", config.Server.Port)
	config.Server.Mode = GetEnv("SERVER_MODE", config.Server.Mode)

	config.Database.Host = GetEnv("DB_HOST", config.Database.Host)
	config.Database.Port = GetEnv("DB_PORT", config.Database.Port)
	config.Database.User = GetEnv("DB_USER", config.Database.User)
	config.Database.Password = GetEnv("DB_PASSWORD", config.Database.Password)
	config.Database.DBName = GetEnv("DB_NAME", config.Database.DBName)
	config.Database.SSLMode = GetEnv("DB_SSLMODE", config.Database.SSLMode)
	config.Database.MaxIdleConns = GetEnvAsInt("DB_MAX_IDLE_CONNS", config.Database.MaxIdleConns)
	config.Database.MaxOpenConns = GetEnvAsInt("DB_MAX_OPEN_CONNS", config.Database.MaxOpenConns)
	config.Database.ConnMaxLifetime = GetEnv("DB_CONN_MAX_LIFETIME", config.Database.ConnMaxLifetime)

	config.Redis.Addr = GetEnv("REDIS_ADDR", config.Redis.Addr)
	config.Redis.RateLimitPerMin = GetEnvAsInt("RATE_LIMIT_PER_MIN", config.Redis.RateLimitPerMin)

	config.JWT.Secret = GetEnv("JWT_SECRET", config.JWT.Secret)
	config.JWT.AccessTokenExpiration = GetEnv("JWT_ACCESS_TOKEN_EXPIRATION", config.JWT.AccessTokenExpiration)
	config.JWT.Issuer = GetEnv("JWT_ISSUER", config.JWT.Issuer)

	config.Logging.Level = GetEnv("LOG_LEVEL", config.Logging.Level)
	config.Logging.Format = GetEnv("LOG_FORMAT", config.Logging.Format)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if err := config.Grading.Validate(); err != nil {
		return fmt.Errorf("invalid grading table: %w", err)
	}

	return nil
}

// Validate checks that the cut table is non-empty, strictly descending and
// ends at zero, so that every percentage resolves to exactly one grade.
func (g GradingConfig) Validate() error {
	if len(g.Cuts) == 0 {
		return fmt.Errorf("cut table is empty")
	}

	prev := 101.0
	for i, cut := range g.Cuts {
		if strings.TrimSpace(cut.Grade) == "" {
			return fmt.Errorf("cut %d has an empty grade", i)
		}
		if cut.MinPercent < 0 || cut.MinPercent > 100 {
			return fmt.Errorf("cut %d (%s) has min_percent %.1f outside [0,100]", i, cut.Grade, cut.MinPercent)
		}
		if cut.MinPercent >= prev {
			return fmt.Errorf("cut %d (%s) is not strictly below the previous cut", i, cut.Grade)
		}
		prev = cut.MinPercent
	}

	if g.Cuts[len(g.Cuts)-1].MinPercent != 0 {
		return fmt.Errorf("last cut must have min_percent 0")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
