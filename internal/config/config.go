package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"ticketgrid/internal/domain"
	"ticketgrid/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version int           `toml:"version"`
	Feed    FeedSettings  `toml:"feed"`
	Audit   AuditSettings `toml:"audit"`
	UI      UISettings    `toml:"ui"`
	Log     LogSettings   `toml:"log"`
}

// FeedSettings controls ticket minting
type FeedSettings struct {
	Interval  Duration          `toml:"interval"`
	Columns   int               `toml:"columns"`
	UIDFormat domain.UIDFormat  `toml:"uid_format"`
	Insert    domain.InsertMode `toml:"insert"`
	Autostart bool              `toml:"autostart"`
}

// AuditSettings controls the ticket log
type AuditSettings struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ConfirmDelete bool `toml:"confirm_delete"`
	ShowPositions bool `toml:"show_positions"`
}

// LogSettings controls the diagnostic log file
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string such as "200ms"
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "ticketgrid", "config.toml")
}

// NewConfigService creates a config service for path. An empty path uses DefaultPath.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file. A missing file yields
// the default configuration.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("config: no file, using defaults", "path", cs.filePath)
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from the
// file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks value ranges and enums
func (c *Config) Validate() error {
	var errs []error
	if c.Feed.Interval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("feed.interval must be positive, got %s", c.Feed.Interval))
	}
	if c.Feed.Columns < 1 {
		errs = append(errs, fmt.Errorf("feed.columns must be positive, got %d", c.Feed.Columns))
	}
	switch c.Feed.UIDFormat {
	case domain.UIDDecimal, domain.UIDHex:
	default:
		errs = append(errs, fmt.Errorf("feed.uid_format must be decimal or hex, got %q", c.Feed.UIDFormat))
	}
	switch c.Feed.Insert {
	case domain.InsertAppend, domain.InsertPrepend:
	default:
		errs = append(errs, fmt.Errorf("feed.insert must be append or prepend, got %q", c.Feed.Insert))
	}
	if c.Audit.Enabled && c.Audit.Path == "" {
		errs = append(errs, errors.New("audit.path is required when audit is enabled"))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel maps a config level name to a slog level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level %q is not one of debug, info, warn, error", name)
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Feed: FeedSettings{
			Interval:  Duration{200 * time.Millisecond},
			Columns:   5,
			UIDFormat: domain.UIDDecimal,
			Insert:    domain.InsertAppend,
			Autostart: true,
		},
		Audit: AuditSettings{
			Enabled: true,
			Path:    ":memory:",
		},
		UI: UISettings{
			ConfirmDelete: true,
		},
		Log: LogSettings{
			File:  "ticketgrid.log",
			Level: "info",
		},
	}
}
