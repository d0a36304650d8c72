package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"nearby/internal/capability/sim"
	"nearby/internal/logging"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	DirectoryURL   string        // directory base URL, e.g. http://127.0.0.1:8080
	RequestTimeout time.Duration // per directory request; 0 disables
	Listen         string        // directory server listen address
	Log            logging.Config
	Simulator      sim.Config
}

// DefaultConfig points at a directory on localhost.
func DefaultConfig() Config {
	return Config{
		DirectoryURL:   "http://127.0.0.1:8080",
		RequestTimeout: 10 * time.Second,
		Listen:         "127.0.0.1:8080",
		Log:            logging.DefaultConfig(),
		Simulator:      sim.DefaultConfig(),
	}
}

// nearby.toml key mapping to Config.
type fileConfig struct {
	DirectoryURL   string `toml:"directory_url"`
	RequestTimeout string `toml:"request_timeout"`
	Log            struct {
		Level   string `toml:"level"`
		Format  string `toml:"format"`
		NoColor bool   `toml:"no_color"`
	} `toml:"log"`
	Simulator struct {
		Supported    bool    `toml:"supported"`
		Interval     string  `toml:"interval"`
		BaseDistance float64 `toml:"base_distance"`
		Amplitude    float64 `toml:"amplitude"`
	} `toml:"simulator"`
	Server struct {
		Listen string `toml:"listen"`
	} `toml:"server"`
}

// LoadConfig overlays the TOML file at path on DefaultConfig. Keys absent
// from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("directory_url") {
		cfg.DirectoryURL = strings.TrimSpace(raw.DirectoryURL)
	}
	if meta.IsDefined("request_timeout") {
		d, err := parseDuration("request_timeout", raw.RequestTimeout)
		if err != nil {
			return Config{}, err
		}
		cfg.RequestTimeout = d
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "format") {
		cfg.Log.Format = strings.TrimSpace(raw.Log.Format)
	}
	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}
	if meta.IsDefined("simulator", "supported") {
		cfg.Simulator.Supported = raw.Simulator.Supported
	}
	if meta.IsDefined("simulator", "interval") {
		d, err := parseDuration("simulator.interval", raw.Simulator.Interval)
		if err != nil {
			return Config{}, err
		}
		cfg.Simulator.Interval = d
	}
	if meta.IsDefined("simulator", "base_distance") {
		cfg.Simulator.BaseDistance = raw.Simulator.BaseDistance
	}
	if meta.IsDefined("simulator", "amplitude") {
		cfg.Simulator.Amplitude = raw.Simulator.Amplitude
	}
	if meta.IsDefined("server", "listen") {
		cfg.Listen = strings.TrimSpace(raw.Server.Listen)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	if c.DirectoryURL == "" {
		return fmt.Errorf("directory_url must not be empty")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if c.Simulator.Interval <= 0 {
		return fmt.Errorf("simulator.interval must be positive")
	}
	if c.Simulator.BaseDistance < 0 || c.Simulator.Amplitude < 0 {
		return fmt.Errorf("simulator distances must not be negative")
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

func parseDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("load config: %s: %w", key, err)
	}
	return d, nil
}
