package engine

import (
	"fmt"

	"github.com/piwi3910/SheetFit/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string            `json:"name"`
	Settings OptimizerSettings `json:"settings"`
}

// ComparisonResult holds the optimization result and the headline numbers of
// its optimal pick for a single scenario.
type ComparisonResult struct {
	Scenario          ComparisonScenario   `json:"scenario"`
	Result            model.OptimizeResult `json:"result"`
	CandidatesFitted  int                  `json:"candidates_fitted"`
	UpsPerSheet       int                  `json:"ups_per_sheet"`
	SheetsNeeded      int                  `json:"sheets_needed"`
	WastagePercentage float64              `json:"wastage_percentage"`
}

// CompareScenarios runs the optimizer once per scenario and returns the results
// in scenario order. A scenario in which nothing fits reports zero ups.
func CompareScenarios(scenarios []ComparisonScenario, piece model.PieceSpec, requestedQuantity int, candidates []model.SheetCandidate) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		opt := New(scenario.Settings)
		result := opt.Optimize(piece, requestedQuantity, candidates)

		cr := ComparisonResult{
			Scenario:         scenario,
			Result:           result,
			CandidatesFitted: len(result.Suggestions),
		}
		if result.Optimal != nil {
			cr.UpsPerSheet = result.Optimal.UpsPerSheet
			cr.SheetsNeeded = result.Optimal.SheetsNeeded
			cr.WastagePercentage = result.Optimal.WastagePercentage
		}
		results = append(results, cr)
	}

	return results
}

// BuildDefaultScenarios generates what-if alternatives around the current
// settings: rotation flipped, and gutter or margin removed when set.
func BuildDefaultScenarios(base OptimizerSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	flipped := base
	flipped.AllowRotation = !base.AllowRotation
	name := "No Rotation"
	if !base.AllowRotation {
		name = "With Rotation"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Settings: flipped})

	if base.Pack.Gutter > 0 {
		noGutter := base
		noGutter.Pack.Gutter = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Gutter",
			Settings: noGutter,
		})

		halfGutter := base
		halfGutter.Pack.Gutter = base.Pack.Gutter * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Gutter %.3g (half)", halfGutter.Pack.Gutter),
			Settings: halfGutter,
		})
	}

	if base.Pack.Margin > 0 {
		noMargin := base
		noMargin.Pack.Margin = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Margin",
			Settings: noMargin,
		})
	}

	return scenarios
}
