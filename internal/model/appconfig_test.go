package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.ScaleFactor != 1000 {
		t.Errorf("expected scale factor 1000, got %d", cfg.ScaleFactor)
	}
	if cfg.MaxPlacements != 200 {
		t.Errorf("expected max placements 200, got %d", cfg.MaxPlacements)
	}
	if cfg.WastageTolerance != 1.0 {
		t.Errorf("expected tolerance 1.0, got %f", cfg.WastageTolerance)
	}
	if !cfg.AllowRotation {
		t.Error("rotation should be enabled by default")
	}
}

func TestNormalizeFillsInvalidValues(t *testing.T) {
	cfg := AppConfig{
		ScaleFactor:      -1,
		MaxPlacements:    0,
		Gutter:           -0.5,
		Margin:           -2,
		WastageTolerance: -3,
		Port:             0,
		MaxConcurrent:    -4,
	}
	n := cfg.Normalize()

	if n.ScaleFactor != 1000 {
		t.Errorf("expected scale factor 1000, got %d", n.ScaleFactor)
	}
	if n.MaxPlacements != 200 {
		t.Errorf("expected max placements 200, got %d", n.MaxPlacements)
	}
	if n.Gutter != 0 || n.Margin != 0 {
		t.Errorf("expected zero gutter and margin, got %f / %f", n.Gutter, n.Margin)
	}
	if n.WastageTolerance != 1.0 {
		t.Errorf("expected tolerance 1.0, got %f", n.WastageTolerance)
	}
	if n.Port != 8080 {
		t.Errorf("expected port 8080, got %d", n.Port)
	}
	if n.MaxConcurrent != 16 {
		t.Errorf("expected max concurrent 16, got %d", n.MaxConcurrent)
	}
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Gutter = 0.125
	cfg.WastageTolerance = 0

	n := cfg.Normalize()
	if n.Gutter != 0.125 {
		t.Errorf("expected gutter 0.125, got %f", n.Gutter)
	}
	if n.WastageTolerance != 0 {
		t.Errorf("a zero tolerance is valid, got %f", n.WastageTolerance)
	}
}
