package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SheetFit/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.Gutter = 0.125
	cfg.WastageTolerance = 2.5
	cfg.AllowRotation = false
	cfg.Port = 9090

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.Gutter != 0.125 {
		t.Errorf("expected Gutter=0.125, got %f", loaded.Gutter)
	}
	if loaded.WastageTolerance != 2.5 {
		t.Errorf("expected WastageTolerance=2.5, got %f", loaded.WastageTolerance)
	}
	if loaded.AllowRotation {
		t.Error("expected AllowRotation=false")
	}
	if loaded.Port != 9090 {
		t.Errorf("expected Port=9090, got %d", loaded.Port)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg != model.DefaultAppConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"gutter": 0.25, "scale_factor": -4}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Gutter != 0.25 {
		t.Errorf("expected Gutter=0.25, got %f", cfg.Gutter)
	}
	if !cfg.AllowRotation {
		t.Error("expected AllowRotation to default to true")
	}
	if cfg.ScaleFactor != 1000 {
		t.Errorf("expected invalid ScaleFactor to normalize to 1000, got %d", cfg.ScaleFactor)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config.json")
	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".sheetfit" {
		t.Errorf("expected parent dir .sheetfit, got %s", filepath.Dir(path))
	}
}
