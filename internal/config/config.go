package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"Pennywise"`
		Port      int    `envconfig:"PORT" default:"8080"`
		LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	}

	Storage struct {
		Backend    string `envconfig:"STORAGE_BACKEND" default:"file"`
		Key        string `envconfig:"STORAGE_KEY" default:"budget-transactions"`
		Dir        string `envconfig:"STORAGE_DIR" default:"./data"`
		SQLitePath string `envconfig:"STORAGE_SQLITE_PATH" default:"./data/pennywise.db"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"pennywise"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Gateway struct {
		CacheName  string        `envconfig:"GATEWAY_CACHE_NAME" default:"budget-v1"`
		Upstream   string        `envconfig:"GATEWAY_UPSTREAM" default:"http://localhost:8080"`
		Port       int           `envconfig:"GATEWAY_PORT" default:"8081"`
		MaxEntries int           `envconfig:"GATEWAY_MAX_ENTRIES" default:"512"`
		MaxAge     time.Duration `envconfig:"GATEWAY_MAX_AGE" default:"0s"`
		Manifest   []string      `envconfig:"GATEWAY_MANIFEST" default:"/,/index.html,/style.css,/app.js,/manifest.json,/icon.svg"`
		Bypass     []string      `envconfig:"GATEWAY_BYPASS" default:"/api/"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:8081"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Storage.Backend {
	case BackendFile, BackendMemory, BackendSQLite, BackendPostgres:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Storage.Backend)
	}

	return &cfg, nil
}

// Logger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level

	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(c.App.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler).With("app", c.App.Name)
}
