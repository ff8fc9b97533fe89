// Package config loads application configuration from environment variables.
// All variables use the TEXTBOOK_ prefix. A .env file in the working directory
// is read first when present; real environment variables win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Content  ContentConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Player   PlayerConfig
	Vocab    VocabConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// ContentConfig controls where documents come from and how they are resolved.
type ContentConfig struct {
	Root             string // directory containing the content tree
	Source           string // "fs" or "postgres"
	Prefix           string // reference prefix that marks a path as absolute
	TranscriptRoot   string // directory page-relative transcripts live under
	Strict           bool   // validate question documents against the schema
	FetchConcurrency int
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis document cache settings. An empty URL disables it.
type CacheConfig struct {
	URL        string
	TTLSeconds int
}

// PlayerConfig holds embedded video player settings.
type PlayerConfig struct {
	Origin string // origin passed to the embed; derived from the request when empty
}

// VocabConfig holds vocabulary highlighting policy.
type VocabConfig struct {
	EveryOccurrence bool
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with TEXTBOOK_ prefix.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("TEXTBOOK_SERVER_PORT", 8080),
			Host: envStr("TEXTBOOK_SERVER_HOST", "0.0.0.0"),
		},
		Content: ContentConfig{
			Root:             envStr("TEXTBOOK_CONTENT_ROOT", "."),
			Source:           envStr("TEXTBOOK_CONTENT_SOURCE", "fs"),
			Prefix:           envStr("TEXTBOOK_CONTENT_PREFIX", "content/"),
			TranscriptRoot:   envStr("TEXTBOOK_CONTENT_TRANSCRIPT_ROOT", "textbook"),
			Strict:           envBool("TEXTBOOK_CONTENT_STRICT", false),
			FetchConcurrency: envInt("TEXTBOOK_CONTENT_FETCH_CONCURRENCY", 8),
		},
		Database: DatabaseConfig{
			URL:      envStr("TEXTBOOK_DATABASE_URL", ""),
			MaxConns: envInt("TEXTBOOK_DATABASE_MAX_CONNS", 10),
			MinConns: envInt("TEXTBOOK_DATABASE_MIN_CONNS", 1),
		},
		Cache: CacheConfig{
			URL:        envStr("TEXTBOOK_CACHE_URL", ""),
			TTLSeconds: envInt("TEXTBOOK_CACHE_TTL_SECONDS", 300),
		},
		Player: PlayerConfig{
			Origin: envStr("TEXTBOOK_PLAYER_ORIGIN", ""),
		},
		Vocab: VocabConfig{
			EveryOccurrence: envBool("TEXTBOOK_VOCAB_EVERY_OCCURRENCE", false),
		},
		Log: LogConfig{
			Level:  envStr("TEXTBOOK_LOG_LEVEL", "info"),
			Format: envStr("TEXTBOOK_LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks that the configuration is consistent.
func (c *Config) Validate() error {
	switch c.Content.Source {
	case "fs":
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("TEXTBOOK_DATABASE_URL is required when TEXTBOOK_CONTENT_SOURCE is postgres")
		}
	default:
		return fmt.Errorf("TEXTBOOK_CONTENT_SOURCE must be 'fs' or 'postgres', got %q", c.Content.Source)
	}

	if c.Content.FetchConcurrency < 1 {
		return fmt.Errorf("TEXTBOOK_CONTENT_FETCH_CONCURRENCY must be positive, got %d", c.Content.FetchConcurrency)
	}
	if c.Content.Prefix == "" || !strings.HasSuffix(c.Content.Prefix, "/") {
		return fmt.Errorf("TEXTBOOK_CONTENT_PREFIX must end with '/', got %q", c.Content.Prefix)
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("TEXTBOOK_CACHE_TTL_SECONDS must not be negative, got %d", c.Cache.TTLSeconds)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("TEXTBOOK_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	return nil
}

// UsesPostgres reports whether content is served from the database.
func (c *Config) UsesPostgres() bool {
	return c.Content.Source == "postgres"
}

// HasCache reports whether a document cache is configured.
func (c *Config) HasCache() bool {
	return c.Cache.URL != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
