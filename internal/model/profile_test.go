package model

import "testing"

func TestBuiltInProfiles(t *testing.T) {
	profiles := BuiltInProfiles()
	if len(profiles) == 0 {
		t.Fatal("expected built-in profiles")
	}
	seen := map[string]bool{}
	for _, p := range profiles {
		if !p.IsBuiltIn {
			t.Errorf("profile %q should be built-in", p.Name)
		}
		if seen[p.Name] {
			t.Errorf("duplicate profile name %q", p.Name)
		}
		seen[p.Name] = true
		if p.Gutter < 0 || p.Margin < 0 {
			t.Errorf("profile %q has negative spacing", p.Name)
		}
	}
}

func TestFindProfile(t *testing.T) {
	p, ok := FindProfile(BuiltInProfiles(), "Offset")
	if !ok {
		t.Fatal("expected to find Offset profile")
	}
	if p.Margin != 0.375 {
		t.Errorf("expected margin 0.375, got %v", p.Margin)
	}
	if _, ok := FindProfile(BuiltInProfiles(), "Letterpress"); ok {
		t.Error("expected unknown profile to be missing")
	}
}

func TestPressProfileApply(t *testing.T) {
	cfg := DefaultAppConfig()
	p, _ := FindProfile(BuiltInProfiles(), "Grain Locked")
	got := p.Apply(cfg)
	if got.AllowRotation {
		t.Error("expected rotation disabled")
	}
	if got.ScaleFactor != cfg.ScaleFactor || got.WastageTolerance != cfg.WastageTolerance {
		t.Error("Apply should only touch spacing and rotation")
	}
}
