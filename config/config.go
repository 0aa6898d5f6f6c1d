// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fra-atlas/fra-atlas-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Store backends selectable at startup.
const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
}

// DatabaseConfig holds PostgreSQL database connection details.
type DatabaseConfig struct {
	Host         string `mapstructure:"HOST" yaml:"host"`
	Port         int    `mapstructure:"PORT" yaml:"port"`
	User         string `mapstructure:"USER" yaml:"user"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	Name         string `mapstructure:"NAME" yaml:"name"`
	SSLMode      string `mapstructure:"SSL_MODE" yaml:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"MAX_OPEN_CONNS" yaml:"max_open_conns"`
}

// URL returns a postgres:// connection URL suitable for pgxpool and other
// URL-based database tools.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// StoreConfig selects the persistence backend. The memory backend seeds demo
// data and is the fallback when no database is reachable.
type StoreConfig struct {
	Backend string `mapstructure:"BACKEND" yaml:"backend"`
}

// OCRConfig holds recognition tuning knobs.
type OCRConfig struct {
	// TessdataPrefix overrides the Tesseract trained-data directory, if set.
	TessdataPrefix string `mapstructure:"TESSDATA_PREFIX" yaml:"tessdata_prefix"`
	// PrimaryLanguage and SecondaryLanguage are Tesseract language codes used
	// to build the strategy list (defaults: hin, eng).
	PrimaryLanguage   string `mapstructure:"PRIMARY_LANGUAGE" yaml:"primary_language"`
	SecondaryLanguage string `mapstructure:"SECONDARY_LANGUAGE" yaml:"secondary_language"`
	// MinDimension is the smallest acceptable image side before upscaling.
	MinDimension int `mapstructure:"MIN_DIMENSION" yaml:"min_dimension"`
}

// UploadConfig holds file intake limits.
type UploadConfig struct {
	MaxFileSizeBytes int64 `mapstructure:"MAX_FILE_SIZE_BYTES" yaml:"max_file_size_bytes"`
}

// RecommendConfig holds scoring output bounds.
type RecommendConfig struct {
	// MinScore is the relevance floor; results at or below it are dropped.
	MinScore float64 `mapstructure:"MIN_SCORE" yaml:"min_score"`
	// MaxResults caps the ranked list.
	MaxResults int `mapstructure:"MAX_RESULTS" yaml:"max_results"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER" yaml:"server"`
	Database  DatabaseConfig  `mapstructure:"DATABASE" yaml:"database"`
	Store     StoreConfig     `mapstructure:"STORE" yaml:"store"`
	OCR       OCRConfig       `mapstructure:"OCR" yaml:"ocr"`
	Upload    UploadConfig    `mapstructure:"UPLOAD" yaml:"upload"`
	Recommend RecommendConfig `mapstructure:"RECOMMEND" yaml:"recommend"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, unmarshals into Config, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "fra_atlas_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 5)
	v.SetDefault("STORE.BACKEND", StoreBackendMemory)
	v.SetDefault("OCR.PRIMARY_LANGUAGE", "hin")
	v.SetDefault("OCR.SECONDARY_LANGUAGE", "eng")
	v.SetDefault("OCR.MIN_DIMENSION", 1200)
	v.SetDefault("UPLOAD.MAX_FILE_SIZE_BYTES", int64(10*1024*1024))
	v.SetDefault("RECOMMEND.MIN_SCORE", 0.3)
	v.SetDefault("RECOMMEND.MAX_RESULTS", 5)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"STORE.BACKEND", "STORE_BACKEND"},
		{"OCR.TESSDATA_PREFIX", "TESSDATA_PREFIX"},
		{"OCR.PRIMARY_LANGUAGE", "OCR_PRIMARY_LANGUAGE"},
		{"OCR.SECONDARY_LANGUAGE", "OCR_SECONDARY_LANGUAGE"},
		{"OCR.MIN_DIMENSION", "OCR_MIN_DIMENSION"},
		{"UPLOAD.MAX_FILE_SIZE_BYTES", "UPLOAD_MAX_FILE_SIZE_BYTES"},
		{"RECOMMEND.MIN_SCORE", "RECOMMEND_MIN_SCORE"},
		{"RECOMMEND.MAX_RESULTS", "RECOMMEND_MAX_RESULTS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("SERVER.ENVIRONMENT"),
		"server_port", v.GetString("SERVER.PORT"),
		"store_backend", v.GetString("STORE.BACKEND"),
		"db_host", v.GetString("DATABASE.HOST"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	switch cfg.Store.Backend {
	case StoreBackendPostgres:
		if cfg.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if cfg.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if cfg.Database.Name == "" {
			return fmt.Errorf("database name is required")
		}
		if cfg.Database.Password == "" {
			log.Warn("Database password is not set. Ensure this is intended (e.g., using trusted auth).")
		}
	case StoreBackendMemory:
		// Nothing to validate; demo data is seeded in-process.
	default:
		return fmt.Errorf("unknown store backend %q (expected %s or %s)",
			cfg.Store.Backend, StoreBackendPostgres, StoreBackendMemory)
	}

	if cfg.OCR.PrimaryLanguage == "" || cfg.OCR.SecondaryLanguage == "" {
		return fmt.Errorf("OCR primary and secondary languages are required")
	}
	if cfg.OCR.MinDimension <= 0 {
		return fmt.Errorf("OCR min dimension must be positive")
	}
	if cfg.Upload.MaxFileSizeBytes <= 0 {
		return fmt.Errorf("upload max file size must be positive")
	}
	if cfg.Recommend.MinScore < 0 || cfg.Recommend.MinScore >= 1 {
		return fmt.Errorf("recommend min score must be in [0,1)")
	}
	if cfg.Recommend.MaxResults <= 0 {
		return fmt.Errorf("recommend max results must be positive")
	}

	return nil
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
