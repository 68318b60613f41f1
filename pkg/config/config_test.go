package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestConfigLoadSave(t *testing.T) {
	// Create a temporary directory to act as the user's home directory
	tempDir := t.TempDir()

	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	// 1. Test Load with no existing file
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected empty config to be returned, got nil")
	}

	// 2. Modify and Save the config
	cfg.StartID = IntPtr(1200)
	cfg.MaxPages = 50
	cfg.MissLimit = 5
	cfg.DelayMS = IntPtr(0)
	cfg.OrtUniFilter = "Dresden"
	cfg.FachFilter = "Innere Medizin"
	cfg.OutputFile = "dresden.xlsx"

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	// Verify the file was actually created
	configPath := filepath.Join(tempDir, ".protokollctl.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", configPath)
	}

	// 3. Test Load with existing file
	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}

	if !reflect.DeepEqual(cfg, loadedCfg) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loadedCfg, cfg)
	}
}

func TestConfigParseError(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	configPath := filepath.Join(tempDir, ".protokollctl.json")
	if err := os.WriteFile(configPath, []byte("invalid json { content"), 0644); err != nil {
		t.Fatalf("failed to write invalid json: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Errorf("expected error when loading invalid json, got nil")
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	if err := Save(&AppConfig{MaxPages: 20, FachFilter: "Chirurgie"}); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	t.Setenv("PROTOKOLLCTL_MAX_PAGES", "99")
	t.Setenv("PROTOKOLLCTL_DELAY_MS", "0")
	t.Setenv("PROTOKOLLCTL_ORT_UNI", "Leipzig")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.MaxPages != 99 {
		t.Errorf("expected env to override max pages to 99, got %d", cfg.MaxPages)
	}
	if cfg.DelayMS == nil || *cfg.DelayMS != 0 {
		t.Errorf("expected delay 0 from env, got %v", cfg.DelayMS)
	}
	if cfg.FachFilter != "Chirurgie" || cfg.OrtUniFilter != "Leipzig" {
		t.Errorf("unexpected filters: fach=%q ort_uni=%q", cfg.FachFilter, cfg.OrtUniFilter)
	}

	// The file itself must stay untouched by env values
	fileCfg, err := LoadFile()
	if err != nil {
		t.Fatalf("failed to load config file: %v", err)
	}
	if fileCfg.MaxPages != 20 || fileCfg.OrtUniFilter != "" {
		t.Errorf("LoadFile should ignore env overrides, got %+v", fileCfg)
	}

	t.Setenv("PROTOKOLLCTL_MISS_LIMIT", "many")
	if _, err := Load(); err == nil {
		t.Errorf("expected error for non-numeric miss limit")
	}
}

func TestScrapeDefaults(t *testing.T) {
	opts := (&AppConfig{}).ScrapeDefaults()
	if opts.StartID != 0 || opts.MaxPages != 500 || opts.MissLimit != 15 || opts.Delay != 300*time.Millisecond {
		t.Errorf("unexpected defaults: %+v", opts)
	}

	cfg := &AppConfig{StartID: IntPtr(7), MaxPages: 3, MissLimit: 2, DelayMS: IntPtr(0), OrtUniFilter: "dresden"}
	opts = cfg.ScrapeDefaults()
	if opts.StartID != 7 || opts.MaxPages != 3 || opts.MissLimit != 2 || opts.Delay != 0 {
		t.Errorf("config values not applied: %+v", opts)
	}
	if opts.Filter.OrtUni != "dresden" {
		t.Errorf("expected ort_uni filter from config, got %q", opts.Filter.OrtUni)
	}

	if (&AppConfig{}).Output() != DefaultOutputFile {
		t.Errorf("expected default output file")
	}
}
