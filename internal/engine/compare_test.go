package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SheetFit/internal/model"
)

func TestBuildDefaultScenarios_Defaults(t *testing.T) {
	scenarios := BuildDefaultScenarios(DefaultOptimizerSettings())

	require.Len(t, scenarios, 2)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, "No Rotation", scenarios[1].Name)
	assert.False(t, scenarios[1].Settings.AllowRotation)
}

func TestBuildDefaultScenarios_GutterAndMargin(t *testing.T) {
	base := DefaultOptimizerSettings()
	base.AllowRotation = false
	base.Pack.Gutter = 0.25
	base.Pack.Margin = 0.5

	scenarios := BuildDefaultScenarios(base)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Current Settings", "With Rotation", "No Gutter", "Gutter 0.125 (half)", "No Margin"}, names)
	assert.Equal(t, 0.0, scenarios[2].Settings.Pack.Gutter)
	assert.Equal(t, 0.5, scenarios[2].Settings.Pack.Margin)
	assert.Equal(t, 0.0, scenarios[4].Settings.Pack.Margin)
}

func TestCompareScenarios(t *testing.T) {
	candidates := []model.SheetCandidate{candidate("A", 10, 9, 100)}

	results := CompareScenarios(BuildDefaultScenarios(DefaultOptimizerSettings()), model.NewPieceSpec(4, 6), 30, candidates)

	require.Len(t, results, 2)
	assert.Equal(t, 3, results[0].UpsPerSheet)
	assert.Equal(t, 10, results[0].SheetsNeeded)
	assert.Equal(t, 2, results[1].UpsPerSheet)
	assert.Equal(t, 15, results[1].SheetsNeeded)
	assert.Less(t, results[0].WastagePercentage, results[1].WastagePercentage)
	assert.Equal(t, 1, results[0].CandidatesFitted)
}

func TestCompareScenarios_NothingFits(t *testing.T) {
	candidates := []model.SheetCandidate{candidate("A", 3, 3, 100)}

	results := CompareScenarios(BuildDefaultScenarios(DefaultOptimizerSettings()), model.NewPieceSpec(4, 6), 30, candidates)

	for _, r := range results {
		assert.Zero(t, r.CandidatesFitted)
		assert.Zero(t, r.UpsPerSheet)
		assert.Nil(t, r.Result.Optimal)
	}
}
