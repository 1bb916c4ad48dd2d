package model

// AppConfig holds application-wide defaults for packing and optimization.
type AppConfig struct {
	// Packer
	ScaleFactor   int     `json:"scale_factor"`   // fixed-point multiplier applied to every dimension
	MaxPlacements int     `json:"max_placements"` // hard ceiling on pieces placed per sheet
	Gutter        float64 `json:"gutter"`         // spacing between adjacent pieces
	Margin        float64 `json:"margin"`         // trim removed from every sheet edge

	// Optimizer
	WastageTolerance float64 `json:"wastage_tolerance"` // percentage points
	AllowRotation    bool    `json:"allow_rotation"`
	GSMTolerance     float64 `json:"gsm_tolerance"`
	SpoilagePercent  float64 `json:"spoilage_percent"` // overs added when estimating purchases

	// Service
	InventoryPath string `json:"inventory_path,omitempty"` // empty = default location
	Port          int    `json:"port"`
	MaxConcurrent int    `json:"max_concurrent"`
}

// DefaultAppConfig returns an AppConfig with the stock defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		ScaleFactor:      1000,
		MaxPlacements:    200,
		Gutter:           0,
		Margin:           0,
		WastageTolerance: 1.0,
		AllowRotation:    true,
		GSMTolerance:     10,
		SpoilagePercent:  0,
		Port:             8080,
		MaxConcurrent:    16,
	}
}

// Normalize replaces zero or negative values with their defaults.
func (c AppConfig) Normalize() AppConfig {
	d := DefaultAppConfig()
	if c.ScaleFactor <= 0 {
		c.ScaleFactor = d.ScaleFactor
	}
	if c.MaxPlacements <= 0 {
		c.MaxPlacements = d.MaxPlacements
	}
	if c.Gutter < 0 {
		c.Gutter = 0
	}
	if c.Margin < 0 {
		c.Margin = 0
	}
	if c.WastageTolerance < 0 {
		c.WastageTolerance = d.WastageTolerance
	}
	if c.GSMTolerance < 0 {
		c.GSMTolerance = d.GSMTolerance
	}
	if c.SpoilagePercent < 0 {
		c.SpoilagePercent = 0
	}
	if c.Port <= 0 {
		c.Port = d.Port
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = d.MaxConcurrent
	}
	return c
}
