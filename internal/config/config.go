package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `json:"server"`
	Security  SecurityConfig  `json:"security"`
	Storage   StorageConfig   `json:"storage"`
	Audit     AuditConfig     `json:"audit"`
	Retention RetentionConfig `json:"retention"`
	Logging   LoggingConfig   `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
}

// SecurityConfig holds the token signing settings. The secret has no
// default; Validate fails when it is missing.
type SecurityConfig struct {
	JWTSecret string        `json:"jwt_secret"`
	TokenTTL  time.Duration `json:"token_ttl"`
}

// StorageConfig controls where uploads and stamp assets live
type StorageConfig struct {
	UploadDir      string `json:"upload_dir"`
	AssetsDir      string `json:"assets_dir"`
	MaxUploadBytes int64  `json:"max_upload_bytes"`
}

// AuditConfig selects the audit trail backend. An empty DBPath keeps the
// trail in process memory; a path switches to the sqlite-backed store.
type AuditConfig struct {
	DBPath string `json:"db_path"`
}

// RetentionConfig controls the upload sweeper. A zero MaxAge disables it.
type RetentionConfig struct {
	MaxAge   time.Duration `json:"max_age"`
	Interval time.Duration `json:"interval"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3001,
		},
		Security: SecurityConfig{
			TokenTTL: 24 * time.Hour,
		},
		Storage: StorageConfig{
			UploadDir:      "uploads",
			AssetsDir:      "assets",
			MaxUploadBytes: 10 << 20,
		},
		Retention: RetentionConfig{
			Interval: time.Hour,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	overrideWithEnv(config)

	return config, nil
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if c.Security.JWTSecret == "" {
		return errors.New("JWT_SECRET must be configured")
	}
	if c.Storage.UploadDir == "" {
		return errors.New("upload directory must be configured")
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return errors.New("max upload size must be positive")
	}
	return nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Security.JWTSecret = secret
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		config.Storage.UploadDir = dir
	}
	if dir := os.Getenv("ASSETS_DIR"); dir != "" {
		config.Storage.AssetsDir = dir
	}
	if path := os.Getenv("AUDIT_DB_PATH"); path != "" {
		config.Audit.DBPath = path
	}
	if maxAge := os.Getenv("RETENTION_MAX_AGE"); maxAge != "" {
		if d, err := time.ParseDuration(maxAge); err == nil {
			config.Retention.MaxAge = d
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
