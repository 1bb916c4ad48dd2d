package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/SheetFit/internal/model"
	"github.com/piwi3910/SheetFit/internal/schemas"
)

// DefaultProfilesPath returns the default file path for custom press profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.PressProfile) error {
	if profiles == nil {
		profiles = []model.PressProfile{}
	}
	return writeJSON(path, profiles)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.PressProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.PressProfile{}, nil
		}
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	if err := schemas.ValidateProfiles(data); err != nil {
		return nil, fmt.Errorf("invalid profiles file %s: %w", path, err)
	}

	var profiles []model.PressProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles %s: %w", path, err)
	}

	// Ensure loaded profiles are not marked as built-in
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// AllProfiles returns the built-in profiles followed by the custom ones
// stored at path. A custom profile never shadows a built-in name.
func AllProfiles(path string) ([]model.PressProfile, error) {
	custom, err := LoadCustomProfiles(path)
	if err != nil {
		return model.BuiltInProfiles(), err
	}
	all := model.BuiltInProfiles()
	for _, p := range custom {
		if _, exists := model.FindProfile(all, p.Name); !exists {
			all = append(all, p)
		}
	}
	return all, nil
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.PressProfile) error {
	profile.IsBuiltIn = false
	return writeJSON(path, profile)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.PressProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PressProfile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile model.PressProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.PressProfile{}, fmt.Errorf("failed to parse profile: %w", err)
	}

	profile.IsBuiltIn = false
	if profile.Name == "" {
		return model.PressProfile{}, errors.New("imported profile has no name")
	}
	if profile.Gutter < 0 || profile.Margin < 0 {
		return model.PressProfile{}, fmt.Errorf("imported profile %q has negative spacing", profile.Name)
	}
	return profile, nil
}
