// Package config manages application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"ytexport/export"
	"ytexport/youtube"
)

// FileName is the name of the JSON configuration file.
const FileName = "ytexport.json"

// apiKeyPlaceholder is the value shipped in sample configs.
const apiKeyPlaceholder = "YOUR_API_KEY_HERE"

// Config holds all application configuration for a channel export run.
type Config struct {
	// APIKey is the YouTube Data API v3 key.
	APIKey string `json:"api_key"`
	// Endpoint overrides the Data API base URL (empty = public endpoint)
	Endpoint string `json:"endpoint"`

	// MaxVideos limits the number of videos exported (0 = all uploads)
	MaxVideos int `json:"max_videos"`
	// SortBy is one of "date", "views" or "likes"
	SortBy string `json:"sort_by"`

	// PageDelay is the pause between paginated requests (0 or negative disables)
	PageDelay Duration `json:"page_delay"`
	// RequestTimeout bounds a single HTTP request
	RequestTimeout Duration `json:"request_timeout"`
	// RunTimeout bounds a whole export run
	RunTimeout Duration `json:"run_timeout"`
	// DailyCallLimit is the local ceiling on API calls per run
	DailyCallLimit int `json:"daily_call_limit"`

	// OutputFile is the export target path
	OutputFile string `json:"output_file"`
	// OutputFormat is "xlsx", "csv" or "json" (empty = from OutputFile extension)
	OutputFormat string `json:"output_format"`

	Log LogConfig `json:"log"`
}

// LogConfig configures console and optional rotated file logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `json:"level"`
	// Dir enables file logging into Dir/ytexport.log when non-empty
	Dir        string `json:"dir"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
	Compress   bool   `json:"compress"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxVideos:      50,
		SortBy:         string(youtube.SortByDate),
		PageDelay:      Duration(100 * time.Millisecond),
		RequestTimeout: Duration(30 * time.Second),
		RunTimeout:     Duration(30 * time.Minute),
		DailyCallLimit: youtube.DefaultDailyCallLimit,
		OutputFile:     export.DefaultFilename,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Load loads configuration from defaults, an optional .env file, the config
// file, and environment variables.
// Priority: env vars > config file > defaults
func Load() (*Config, error) {
	return load("", defaultPaths())
}

// LoadFile is like Load but reads the config file from path, which must exist.
func LoadFile(path string) (*Config, error) {
	return load(path, nil)
}

func load(explicit string, candidates []string) (*Config, error) {
	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()

	if explicit != "" {
		if err := cfg.loadFromFile(explicit); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	} else {
		for _, path := range candidates {
			err := cfg.loadFromFile(path)
			if err == nil {
				break
			}
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("load config file: %w", err)
			}
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultPaths lists config file locations in lookup order.
func defaultPaths() []string {
	paths := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "ytexport", FileName))
	}
	return paths
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() error {
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("YTEXPORT_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("YTEXPORT_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("YTEXPORT_SORT_BY"); v != "" {
		c.SortBy = v
	}
	if v := os.Getenv("YTEXPORT_OUTPUT_FILE"); v != "" {
		c.OutputFile = v
	}
	if v := os.Getenv("YTEXPORT_OUTPUT_FORMAT"); v != "" {
		c.OutputFormat = v
	}
	if v := os.Getenv("YTEXPORT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("YTEXPORT_LOG_DIR"); v != "" {
		c.Log.Dir = v
	}

	var errs []error
	envInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	envDuration := func(key string, dst *Duration) {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = Duration(d)
		}
	}

	envInt("YTEXPORT_MAX_VIDEOS", &c.MaxVideos)
	envInt("YTEXPORT_DAILY_CALL_LIMIT", &c.DailyCallLimit)
	envDuration("YTEXPORT_PAGE_DELAY", &c.PageDelay)
	envDuration("YTEXPORT_REQUEST_TIMEOUT", &c.RequestTimeout)
	envDuration("YTEXPORT_RUN_TIMEOUT", &c.RunTimeout)

	return errors.Join(errs...)
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.APIKey == "" || c.APIKey == apiKeyPlaceholder {
		return fmt.Errorf("api_key is required (set YOUTUBE_API_KEY)")
	}
	if c.MaxVideos < 0 {
		return fmt.Errorf("max_videos must be non-negative")
	}
	if _, err := youtube.ParseSortOrder(c.SortBy); err != nil {
		return fmt.Errorf("sort_by: %w", err)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.RunTimeout < 0 {
		return fmt.Errorf("run_timeout must be non-negative")
	}
	if c.DailyCallLimit <= 0 {
		return fmt.Errorf("daily_call_limit must be positive")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output_file must not be empty")
	}
	if _, err := export.ParseFormat(c.OutputFormat); err != nil {
		return fmt.Errorf("output_format: %w", err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// Sort returns the parsed sort order. Only valid after Validate.
func (c *Config) Sort() youtube.SortOrder {
	s, _ := youtube.ParseSortOrder(c.SortBy)
	return s
}

// Format returns the export format, inferred from OutputFile when unset.
func (c *Config) Format() export.Format {
	if f, err := export.ParseFormat(c.OutputFormat); err == nil && f != "" {
		return f
	}
	return export.FormatFromPath(c.OutputFile)
}

// Duration is a time.Duration that reads from JSON as either a Go duration
// string ("250ms") or a number of nanoseconds.
type Duration time.Duration

// D returns the value as a time.Duration.
func (d Duration) D() time.Duration { return time.Duration(d) }

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts "1m30s" style strings and integer nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration must be a string or integer: %s", data)
	}
	*d = Duration(n)
	return nil
}
