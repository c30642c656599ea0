package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Airport source types
const (
	AirportSourceGeoJSON = "geojson"
	AirportSourceSQLite  = "sqlite"
	AirportSourceOpenAIP = "openaip"
)

// Config is the top-level application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logging   LoggingConfig   `toml:"logging"`
	Data      DataConfig      `toml:"data"`
	OpenAIP   OpenAIPConfig   `toml:"openaip"`
	Route     RouteConfig     `toml:"route"`
	Checklist ChecklistConfig `toml:"checklist"`
	Storage   StorageConfig   `toml:"storage"`
	Events    EventsConfig    `toml:"events"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Host                string   `toml:"host"`
	Port                int      `toml:"port"`
	ReadTimeoutSeconds  int      `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `toml:"write_timeout_seconds"`
	MaxConnections      int      `toml:"max_connections"` // 0 = unlimited
	CORSAllowedOrigins  []string `toml:"cors_allowed_origins"`
}

// LoggingConfig represents the logger configuration
type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// DataConfig points at the reference datasets loaded once at startup
type DataConfig struct {
	AirportSource string `toml:"airport_source"` // "geojson", "sqlite", "openaip"
	AirportsFile  string `toml:"airports_file"`
	AirspacesFile string `toml:"airspaces_file"`
}

// OpenAIPConfig represents the remote airport lookup configuration
type OpenAIPConfig struct {
	APIBaseURL            string `toml:"api_base_url"`
	APIKey                string `toml:"api_key"`
	Country               string `toml:"country"`
	SearchLimit           int    `toml:"search_limit"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// RouteConfig controls route interpolation and airspace intersection
type RouteConfig struct {
	Points        int     `toml:"points"`
	BufferDegrees float64 `toml:"buffer_degrees"`
}

// ChecklistConfig controls phase classification and rule selection
type ChecklistConfig struct {
	FISMarker string `toml:"fis_marker"`
	RulesFile string `toml:"rules_file"` // empty = built-in table
}

// StorageConfig represents the SQLite storage configuration
type StorageConfig struct {
	SQLitePath     string `toml:"sqlite_path"`
	HistoryEnabled bool   `toml:"history_enabled"`
}

// EventsConfig represents the optional event stream configuration
type EventsConfig struct {
	Enabled bool   `toml:"enabled"`
	NATSURL string `toml:"nats_url"`
	Subject string `toml:"subject"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                8080,
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
			MaxConnections:      256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Data: DataConfig{
			AirportSource: AirportSourceGeoJSON,
			AirportsFile:  "openaip_data/de_apt.geojson",
			AirspacesFile: "openaip_data/de_asp.geojson",
		},
		OpenAIP: OpenAIPConfig{
			APIBaseURL:            "https://api.core.openaip.net/api",
			Country:               "DE",
			SearchLimit:           10,
			RequestTimeoutSeconds: 10,
		},
		Route: RouteConfig{
			Points:        20,
			BufferDegrees: 0.01,
		},
		Checklist: ChecklistConfig{
			FISMarker: "LANGEN",
		},
		Storage: StorageConfig{
			SQLitePath:     "data/atcopilot.db",
			HistoryEnabled: true,
		},
		Events: EventsConfig{
			NATSURL: "nats://127.0.0.1:4222",
			Subject: "atcopilot.checklist.generated",
		},
	}
}

// Load reads a TOML file on top of the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not accessible: %w", err)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets secrets stay out of the config file
func applyEnv(cfg *Config) {
	if key := os.Getenv("OPENAIP_API_KEY"); key != "" {
		cfg.OpenAIP.APIKey = key
	}
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	switch c.Data.AirportSource {
	case AirportSourceGeoJSON:
		if c.Data.AirportsFile == "" {
			return fmt.Errorf("data.airports_file is required for airport_source %q", c.Data.AirportSource)
		}
	case AirportSourceSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for airport_source %q", c.Data.AirportSource)
		}
	case AirportSourceOpenAIP:
		if c.OpenAIP.APIBaseURL == "" {
			return fmt.Errorf("openaip.api_base_url is required for airport_source %q", c.Data.AirportSource)
		}
	default:
		return fmt.Errorf("unsupported data.airport_source: %q", c.Data.AirportSource)
	}

	if c.Route.Points < 1 {
		return fmt.Errorf("route.points must be at least 1, got %d", c.Route.Points)
	}
	if c.Route.BufferDegrees < 0 {
		return fmt.Errorf("route.buffer_degrees must not be negative")
	}
	if strings.TrimSpace(c.Checklist.FISMarker) == "" {
		return fmt.Errorf("checklist.fis_marker must not be empty")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Events.Enabled && c.Events.Subject == "" {
		return fmt.Errorf("events.subject is required when events are enabled")
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
