// Package config loads application configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// ArangoConfig holds the database connection settings.
type ArangoConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	URL      string `yaml:"url"`
	Database string `yaml:"database"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port    string `yaml:"port"`
	BaseURL string `yaml:"base_url"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

// SMTPConfig holds outbound email settings. Empty credentials disable
// delivery; the mail content is logged instead.
type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      string `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// GeocoderConfig holds the geocoding collaborator settings. An empty base URL
// disables geocoding.
type GeocoderConfig struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
}

// UploadConfig holds the file upload settings. An empty path disables
// uploads.
type UploadConfig struct {
	Path     string `yaml:"path"`
	MaxBytes int64  `yaml:"max_bytes"`
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Arango   ArangoConfig   `yaml:"arango"`
	JWT      JWTConfig      `yaml:"jwt"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Geocoder GeocoderConfig `yaml:"geocoder"`
	Upload   UploadConfig   `yaml:"upload"`
}

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	return val
}

// Load reads the YAML file at CONFIG_PATH (if set and present) and then
// applies environment variable overrides on top.
func Load() (*Config, error) {
	cfg := &Config{}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Server.Port = GetEnvDefault("PORT", defString(cfg.Server.Port, "8080"))
	cfg.Server.BaseURL = GetEnvDefault("BASE_URL", defString(cfg.Server.BaseURL, "http://localhost:8080"))

	cfg.Arango.Host = GetEnvDefault("ARANGO_HOST", defString(cfg.Arango.Host, "localhost"))
	cfg.Arango.Port = GetEnvDefault("ARANGO_PORT", defString(cfg.Arango.Port, "8529"))
	cfg.Arango.User = GetEnvDefault("ARANGO_USER", defString(cfg.Arango.User, "root"))
	cfg.Arango.Password = GetEnvDefault("ARANGO_PASS", cfg.Arango.Password)
	cfg.Arango.URL = GetEnvDefault("ARANGO_URL", defString(cfg.Arango.URL, "http://"+cfg.Arango.Host+":"+cfg.Arango.Port))
	cfg.Arango.Database = GetEnvDefault("ARANGO_DB", defString(cfg.Arango.Database, "coursedir"))

	cfg.JWT.Secret = GetEnvDefault("JWT_SECRET", defString(cfg.JWT.Secret, "change-this-in-production"))
	if cfg.JWT.ExpireHours == 0 {
		cfg.JWT.ExpireHours = 24
	}

	cfg.SMTP.Host = GetEnvDefault("SMTP_HOST", cfg.SMTP.Host)
	cfg.SMTP.Port = GetEnvDefault("SMTP_PORT", defString(cfg.SMTP.Port, "587"))
	cfg.SMTP.Username = GetEnvDefault("SMTP_USERNAME", cfg.SMTP.Username)
	cfg.SMTP.Password = GetEnvDefault("SMTP_PASSWORD", cfg.SMTP.Password)
	cfg.SMTP.FromEmail = GetEnvDefault("SMTP_FROM_EMAIL", defString(cfg.SMTP.FromEmail, "noreply@coursedir.dev"))
	cfg.SMTP.FromName = GetEnvDefault("SMTP_FROM_NAME", defString(cfg.SMTP.FromName, "Course Directory"))

	cfg.Geocoder.BaseURL = GetEnvDefault("GEOCODER_URL", cfg.Geocoder.BaseURL)
	cfg.Geocoder.UserAgent = GetEnvDefault("GEOCODER_USER_AGENT", defString(cfg.Geocoder.UserAgent, "bootcamp-backend"))

	cfg.Upload.Path = GetEnvDefault("FILE_UPLOAD_PATH", cfg.Upload.Path)
	if raw := os.Getenv("MAX_FILE_UPLOAD"); raw != "" {
		maxBytes, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_FILE_UPLOAD value %q: %w", raw, err)
		}
		cfg.Upload.MaxBytes = maxBytes
	}
	if cfg.Upload.MaxBytes == 0 {
		cfg.Upload.MaxBytes = 1000000
	}

	return cfg, nil
}

func defString(current, fallback string) string {
	if current != "" {
		return current
	}
	return fallback
}
