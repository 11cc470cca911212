package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/artgrid/internal/artwork"
	"github.com/rshade/artgrid/internal/logging"
	"github.com/rshade/artgrid/internal/pagination"
)

// Environment variables that override file settings.
const (
	EnvHome      = "ARTGRID_HOME"
	EnvConfig    = "ARTGRID_CONFIG"
	EnvAPIURL    = "ARTGRID_API_URL"
	EnvPageSize  = "ARTGRID_PAGE_SIZE"
	EnvLogLevel  = "ARTGRID_LOG_LEVEL"
	EnvLogFormat = "ARTGRID_LOG_FORMAT"
	EnvLogFile   = "ARTGRID_LOG_FILE"

	configFileName = "config.yaml"
	homeDirName    = ".artgrid"
)

// Output formats accepted by output.default_format.
const (
	OutputTable  = "table"
	OutputJSON   = "json"
	OutputNDJSON = "ndjson"
)

// Config is the full artgrid configuration.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Pagination PaginationConfig `yaml:"pagination"`
	Selection  SelectionConfig  `yaml:"selection"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// APIConfig configures the artworks API client.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// PaginationConfig configures page navigation.
type PaginationConfig struct {
	PageSize int `yaml:"page_size"`
}

// SelectionConfig configures the cross-page selection.
type SelectionConfig struct {
	// MaxTarget caps the row count a single selection may request. Zero means no cap.
	MaxTarget int `yaml:"max_target"`
}

// OutputConfig configures non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig configures diagnostic logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ToLoggingConfig converts to the logging package's config.
func (l LoggingConfig) ToLoggingConfig() logging.Config {
	return logging.Config{Level: l.Level, Format: l.Format, File: l.File}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   artwork.DefaultBaseURL,
			Timeout:   artwork.DefaultTimeout,
			UserAgent: artwork.DefaultUserAgent,
		},
		Pagination: PaginationConfig{PageSize: pagination.DefaultPageSize},
		Output:     OutputConfig{DefaultFormat: OutputTable},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: logging.FormatConsole,
		},
	}
}

// HomeDir returns $ARTGRID_HOME or ~/.artgrid.
func HomeDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, homeDirName), nil
}

// DefaultPath returns $ARTGRID_CONFIG or the config file inside HomeDir.
func DefaultPath() (string, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return path, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load builds a config from defaults, the YAML file at path (if it exists), and
// environment overrides, then validates it. An empty path selects DefaultPath.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, unmarshalErr)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file: defaults apply.
	default:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if envErr := cfg.ApplyEnv(os.LookupEnv); envErr != nil {
		return nil, envErr
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides using lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookup(EnvPageSize); ok && v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		c.Pagination.PageSize = size
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.Logging.File = v
	}
	return nil
}

// Validate checks every section and names the offending key on failure.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url: %q is not an http(s) URL", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout: must be > 0, got %s", c.API.Timeout)
	}
	if err = pagination.ValidatePageSize(c.Pagination.PageSize); err != nil {
		return fmt.Errorf("pagination.page_size: %w", err)
	}
	if c.Selection.MaxTarget < 0 {
		return fmt.Errorf("selection.max_target: must be >= 0, got %d", c.Selection.MaxTarget)
	}
	if !IsValidOutputFormat(c.Output.DefaultFormat) {
		return fmt.Errorf("output.default_format: unsupported format %q", c.Output.DefaultFormat)
	}
	if _, err = zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != logging.FormatConsole && c.Logging.Format != logging.FormatJSON {
		return fmt.Errorf("logging.format: must be %q or %q, got %q",
			logging.FormatConsole, logging.FormatJSON, c.Logging.Format)
	}
	return nil
}

// IsValidOutputFormat reports whether format is table, json or ndjson.
func IsValidOutputFormat(format string) bool {
	switch format {
	case OutputTable, OutputJSON, OutputNDJSON:
		return true
	default:
		return false
	}
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteFile writes c to path, creating parent directories.
// An existing file is only replaced when overwrite is set.
func (c *Config) WriteFile(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s: %w", path, os.ErrExist)
		}
	}
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

//nolint:gochecknoglobals // Loaded once per invocation and read by every command.
var (
	globalConfig   *Config
	globalConfigMu sync.RWMutex
)

// SetGlobalConfig stores the config for the current invocation.
func SetGlobalConfig(c *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = c
}

// GetGlobalConfig returns the stored config, or defaults when none was stored.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	if globalConfig == nil {
		return Default()
	}
	return globalConfig
}
