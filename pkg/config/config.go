package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"protokollctl/pkg/scraper"
)

// Defaults used when neither the config file nor the environment set a value
const (
	DefaultStartID    = 0
	DefaultMaxPages   = 500
	DefaultMissLimit  = 15
	DefaultDelayMS    = 300
	DefaultOutputFile = "medi_learn_protokolle.xlsx"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	StartID      *int   `json:"start_id,omitempty" env:"PROTOKOLLCTL_START_ID"`
	MaxPages     int    `json:"max_pages,omitempty" env:"PROTOKOLLCTL_MAX_PAGES"`
	MissLimit    int    `json:"miss_limit,omitempty" env:"PROTOKOLLCTL_MISS_LIMIT"`
	DelayMS      *int   `json:"delay_ms,omitempty" env:"PROTOKOLLCTL_DELAY_MS"`
	OrtUniFilter string `json:"ort_uni_filter,omitempty" env:"PROTOKOLLCTL_ORT_UNI"`
	FachFilter   string `json:"fach_filter,omitempty" env:"PROTOKOLLCTL_FACH"`
	OutputFile   string `json:"output_file,omitempty" env:"PROTOKOLLCTL_OUTPUT"`
	BaseURL      string `json:"base_url,omitempty" env:"PROTOKOLLCTL_BASE_URL"`
	AccentColor  string `json:"accent_color,omitempty"`
	LogLevel     string `json:"log_level,omitempty" env:"PROTOKOLLCTL_LOG_LEVEL"`
	LogFile      string `json:"log_file,omitempty" env:"PROTOKOLLCTL_LOG_FILE"`
}

// getConfigPath returns the absolute path to ~/.protokollctl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".protokollctl.json"), nil
}

// Load reads the application configuration from disk and applies PROTOKOLLCTL_*
// environment overrides (a .env file in the working directory is honored).
// Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile reads ~/.protokollctl.json without environment overrides, so Save never
// persists values that only came from the environment.
func LoadFile() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just return an empty default configuration
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ScrapeDefaults returns the run options stored in the config, filling gaps with defaults
func (c *AppConfig) ScrapeDefaults() scraper.Options {
	opts := scraper.Options{
		StartID:   DefaultStartID,
		MaxPages:  DefaultMaxPages,
		MissLimit: DefaultMissLimit,
		Delay:     DefaultDelayMS * time.Millisecond,
		Filter: scraper.Filter{
			OrtUni: c.OrtUniFilter,
			Fach:   c.FachFilter,
		},
	}
	if c.StartID != nil {
		opts.StartID = *c.StartID
	}
	if c.MaxPages > 0 {
		opts.MaxPages = c.MaxPages
	}
	if c.MissLimit > 0 {
		opts.MissLimit = c.MissLimit
	}
	if c.DelayMS != nil {
		opts.Delay = time.Duration(*c.DelayMS) * time.Millisecond
	}
	return opts
}

// Output returns the configured spreadsheet path or the default file name
func (c *AppConfig) Output() string {
	if c.OutputFile != "" {
		return c.OutputFile
	}
	return DefaultOutputFile
}

// applyEnvOverrides sets every field tagged `env:"NAME"` whose variable is set
func applyEnvOverrides(cfg *AppConfig) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := os.LookupEnv(name)
		if !ok || raw == "" {
			continue
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			field.SetInt(int64(n))
		case reflect.Ptr:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			field.Set(reflect.ValueOf(&n))
		}
	}

	return nil
}

// IntPtr is a helper for the optional integer settings
func IntPtr(n int) *int {
	return &n
}
