package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/depeter/hipster/internal/constants"
	"github.com/depeter/hipster/internal/sheet"
)

type Config struct {
	UI       UIConfig       `toml:"ui"`
	Sheet    SheetConfig    `toml:"sheet"`
	Places   PlacesConfig   `toml:"places"`
	Tracking TrackingConfig `toml:"tracking"`
	Profile  ProfileConfig  `toml:"profile"`

	path string
}

type UIConfig struct {
	Fullscreen bool `toml:"fullscreen"`
	Width      int  `toml:"width"`
	Height     int  `toml:"height"`
}

// SheetConfig tunes every bottom sheet in the app. Heights are ratios of the
// container so the same file works at any window size.
type SheetConfig struct {
	Margin          float64 `toml:"margin"`
	MinRatio        float64 `toml:"min_ratio"`
	MaxRatio        float64 `toml:"max_ratio"`
	DismissDistance float64 `toml:"dismiss_distance"`
	DismissVelocity float64 `toml:"dismiss_velocity"` // px/ms
	Hysteresis      float64 `toml:"hysteresis"`
	Stiffness       float64 `toml:"stiffness"`
	Damping         float64 `toml:"damping"`
	Mass            float64 `toml:"mass"`
	CloseDurationMS int     `toml:"close_duration_ms"`

	// RecognizeDistance is how far a pointer must travel before a press
	// becomes a drag.
	RecognizeDistance float64 `toml:"recognize_distance"`
}

type PlacesConfig struct {
	SearchURL      string `toml:"search_url"`
	RouteURL       string `toml:"route_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type TrackingConfig struct {
	StorePath    string  `toml:"store_path"`
	IntervalMS   int     `toml:"interval_ms"`
	MinDistanceM float64 `toml:"min_distance_m"`

	// Positions come from a random walk starting here. Seed 0 picks a new
	// walk on every run.
	StartLat float64 `toml:"start_lat"`
	StartLng float64 `toml:"start_lng"`
	Seed     uint64  `toml:"seed"`
}

type ProfileConfig struct {
	Name      string       `toml:"name"`
	AvatarURL string       `toml:"avatar_url"`
	Details   []ProfileRow `toml:"details"`
}

type ProfileRow struct {
	Label string `toml:"label"`
	Value string `toml:"value"`
}

func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Fullscreen: false,
			Width:      430,
			Height:     900,
		},
		Sheet: SheetConfig{
			Margin:            sheet.DefaultMargin,
			MinRatio:          sheet.DefaultMinRatio,
			MaxRatio:          sheet.DefaultMaxRatio,
			DismissDistance:   sheet.DefaultDismissDistance,
			DismissVelocity:   sheet.DefaultDismissVelocity,
			Hysteresis:        sheet.DefaultHysteresis,
			Stiffness:         sheet.DefaultSpring.Stiffness,
			Damping:           sheet.DefaultSpring.Damping,
			Mass:              sheet.DefaultSpring.Mass,
			CloseDurationMS:   int(sheet.DefaultCloseDuration / time.Millisecond),
			RecognizeDistance: 10,
		},
		Places: PlacesConfig{
			SearchURL:      "https://www.onemap.gov.sg",
			RouteURL:       "https://router.project-osrm.org",
			TimeoutSeconds: 15,
		},
		Tracking: TrackingConfig{
			IntervalMS:   1000,
			MinDistanceM: 5,
			StartLat:     1.3521,
			StartLng:     103.8198,
		},
		Profile: ProfileConfig{
			Name: "Guest",
			Details: []ProfileRow{
				{Label: "Joined", Value: time.Now().Format("02 Jan 2006")},
			},
		},
	}
}

// Build converts the table into a sheet configuration for a container of the
// given height.
func (sc SheetConfig) Build(containerHeight float64) sheet.Config {
	cfg := sheet.DefaultConfig(containerHeight)
	cfg.Margin = sc.Margin
	cfg.MinHeight = containerHeight * sc.MinRatio
	cfg.MaxHeight = containerHeight * sc.MaxRatio
	cfg.DismissDistance = sc.DismissDistance
	cfg.DismissVelocity = sc.DismissVelocity
	cfg.Hysteresis = sc.Hysteresis
	cfg.Spring = sheet.SpringParams{Stiffness: sc.Stiffness, Damping: sc.Damping, Mass: sc.Mass}
	cfg.CloseDuration = time.Duration(sc.CloseDurationMS) * time.Millisecond
	return cfg
}

// Validate reports the first setting that would make the app misbehave.
func (c *Config) Validate() error {
	s := c.Sheet
	switch {
	case s.MinRatio < 0 || s.MaxRatio > 1 || s.MinRatio > s.MaxRatio:
		return fmt.Errorf("sheet: min_ratio %.2f / max_ratio %.2f must satisfy 0 <= min <= max <= 1", s.MinRatio, s.MaxRatio)
	case s.DismissDistance <= 0 || s.DismissVelocity <= 0:
		return fmt.Errorf("sheet: dismiss thresholds must be positive")
	case s.Stiffness <= 0 || s.Damping <= 0 || s.Mass <= 0:
		return fmt.Errorf("sheet: spring parameters must be positive")
	case s.CloseDurationMS <= 0:
		return fmt.Errorf("sheet: close_duration_ms must be positive")
	case c.UI.Width <= 0 || c.UI.Height <= 0:
		return fmt.Errorf("ui: invalid window size %dx%d", c.UI.Width, c.UI.Height)
	case c.Tracking.IntervalMS <= 0:
		return fmt.Errorf("tracking: interval_ms must be positive")
	}
	return nil
}

// PlacesTimeout returns the HTTP timeout for place and route lookups.
func (c *Config) PlacesTimeout() time.Duration {
	return time.Duration(c.Places.TimeoutSeconds) * time.Second
}

// StorePath returns the tracked-route store location, defaulting to the
// config directory.
func (c *Config) StorePath() (string, error) {
	if c.Tracking.StorePath != "" {
		return c.Tracking.StorePath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "routes.cbor"), nil
}

func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, constants.AppName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config from the default location.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
