package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// NOTE: YAML is the source of truth; WEEKENDLY_* environment variables
// override a handful of scalar keys at load time and are never written back.

// PosterConfig controls PNG poster rendering.
type PosterConfig struct {
	// Width/Height are the CSS viewport in pixels before scaling.
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`

	// Scale is the device pixel ratio used for the screenshot.
	Scale float64 `yaml:"scale" json:"scale"`

	// TimeoutSeconds bounds one render.
	TimeoutSeconds int `yaml:"timeout_seconds" json:"timeout_seconds"`

	// Refresh is an optional cron spec (e.g. "*/30 * * * *") that re-renders
	// poster.png in the data directory. Empty disables it.
	Refresh string `yaml:"refresh" json:"refresh"`
}

// BasicAuthConfig guards the planner UI and API.
// PasswordHash (bcrypt) takes precedence over Password.
type BasicAuthConfig struct {
	Username     string `yaml:"username" json:"username"`
	Password     string `yaml:"password,omitempty" json:"password,omitempty"`
	PasswordHash string `yaml:"password_hash,omitempty" json:"password_hash,omitempty"`
}

// Config is the weekendly configuration file.
type Config struct {
	// Listen is the HTTP listen address for the Web UI and API.
	Listen string `yaml:"listen" json:"listen"`

	// DataDir holds the stored plan and rendered posters. "~" is expanded.
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// Storage selects the key-value backend: "diskv" (default) or "sqlite".
	Storage string `yaml:"storage" json:"storage"`

	// Timezone is the IANA zone used to date ICS exports.
	Timezone string `yaml:"timezone" json:"timezone"`

	// Theme is "light" or "dark". It is only read, never changed, by the
	// service.
	Theme string `yaml:"theme" json:"theme"`

	LogLevel string `yaml:"log_level" json:"log_level"`

	// GridStart/GridEnd bound the hours shown on the grid and the poster
	// (inclusive).
	GridStart int `yaml:"grid_start" json:"grid_start"`
	GridEnd   int `yaml:"grid_end" json:"grid_end"`

	// CatalogPath optionally replaces the built-in activity catalog.
	CatalogPath string `yaml:"catalog_path,omitempty" json:"catalog_path,omitempty"`

	// ResetCron optionally clears the plan on a schedule, e.g.
	// "0 4 * * 1" for Monday morning.
	ResetCron string `yaml:"reset_cron,omitempty" json:"reset_cron,omitempty"`

	Poster PosterConfig `yaml:"poster" json:"poster"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	c := &Config{}
	c.Normalize()
	return c
}

// Normalize replaces missing or out-of-range values with defaults.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.DataDir == "" {
		c.DataDir = "~/.weekendly"
	}
	switch c.Storage {
	case "diskv", "sqlite":
	default:
		c.Storage = "diskv"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	switch c.Theme {
	case "light", "dark":
	default:
		c.Theme = "light"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.GridStart == 0 && c.GridEnd == 0 {
		c.GridStart, c.GridEnd = 8, 23
	}
	if c.GridStart < 0 || c.GridStart > 23 {
		c.GridStart = 8
	}
	if c.GridEnd < c.GridStart || c.GridEnd > 23 {
		c.GridEnd = 23
	}
	if c.Poster.Width <= 0 {
		c.Poster.Width = 900
	}
	if c.Poster.Height <= 0 {
		c.Poster.Height = 1200
	}
	if c.Poster.Scale <= 0 {
		c.Poster.Scale = 3
	}
	if c.Poster.TimeoutSeconds <= 0 {
		c.Poster.TimeoutSeconds = 30
	}
}

// ResolvedDataDir returns DataDir with "~" expanded.
func (c *Config) ResolvedDataDir() (string, error) {
	return homedir.Expand(c.DataDir)
}

// Location resolves Timezone. "Local" and "" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Load reads the YAML config at path ("~" expanded). On first run the file
// does not exist yet, so the defaults are written there and returned.
// WEEKENDLY_* environment overrides are applied last in both cases.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	applyEnv(&cfg)

	return &cfg, nil
}

// applyEnv overrides scalar keys from WEEKENDLY_LISTEN, WEEKENDLY_DATA_DIR,
// WEEKENDLY_STORAGE, WEEKENDLY_LOG_LEVEL, WEEKENDLY_THEME and
// WEEKENDLY_TIMEZONE.
func applyEnv(c *Config) {
	v := viper.New()
	v.SetEnvPrefix("WEEKENDLY")
	v.AutomaticEnv()

	overrides := map[string]*string{
		"listen":    &c.Listen,
		"data_dir":  &c.DataDir,
		"storage":   &c.Storage,
		"log_level": &c.LogLevel,
		"theme":     &c.Theme,
		"timezone":  &c.Timezone,
	}
	changed := false
	for key, dst := range overrides {
		if val := strings.TrimSpace(v.GetString(key)); val != "" {
			*dst = val
			changed = true
		}
	}
	if changed {
		c.Normalize()
	}
}

// Save normalizes cfg and writes it as YAML. The file is replaced atomically
// (temp file + rename) and ends up 0600 since it may hold credentials; the
// parent directory is created 0700.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".weekendly-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save writes c to path; see the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
