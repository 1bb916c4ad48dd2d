package model

// PressProfile is a named set of spacing defaults for a press or finishing
// line, e.g. the gripper margin of an offset press.
type PressProfile struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	IsBuiltIn     bool    `json:"is_built_in,omitempty"`
	Gutter        float64 `json:"gutter"`
	Margin        float64 `json:"margin"`
	AllowRotation bool    `json:"allow_rotation"`
}

// BuiltInProfiles returns the profiles that ship with the application.
func BuiltInProfiles() []PressProfile {
	return []PressProfile{
		{
			Name:          "Guillotine",
			Description:   "Straight cuts only, no bleed between pieces",
			IsBuiltIn:     true,
			AllowRotation: true,
		},
		{
			Name:          "Offset",
			Description:   "Sheet-fed offset with gripper margin and 1/8in bleed gutter",
			IsBuiltIn:     true,
			Gutter:        0.125,
			Margin:        0.375,
			AllowRotation: true,
		},
		{
			Name:          "Digital",
			Description:   "Digital press, unprintable edge on every side",
			IsBuiltIn:     true,
			Gutter:        0.125,
			Margin:        0.2,
			AllowRotation: true,
		},
		{
			Name:          "Grain Locked",
			Description:   "Pieces keep the sheet grain direction",
			IsBuiltIn:     true,
			AllowRotation: false,
		},
	}
}

// FindProfile returns the profile with the given name from profiles, or
// false when there is none.
func FindProfile(profiles []PressProfile, name string) (PressProfile, bool) {
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}
	return PressProfile{}, false
}

// Apply copies the profile's spacing and rotation onto cfg.
func (p PressProfile) Apply(cfg AppConfig) AppConfig {
	cfg.Gutter = p.Gutter
	cfg.Margin = p.Margin
	cfg.AllowRotation = p.AllowRotation
	return cfg
}
