package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SheetFit/internal/engine"
	"github.com/piwi3910/SheetFit/internal/model"
)

func buildTestResult(t *testing.T) (Job, model.OptimizeResult) {
	t.Helper()
	job := Job{Piece: model.NewPieceSpec(4, 6), RequestedQuantity: 1000}
	result := engine.Optimize(job.Piece, job.RequestedQuantity, model.DefaultInventory().Candidates())
	require.False(t, result.Empty())
	require.NotNil(t, result.Optimal)
	return job, result
}

func TestExportSuggestionsXLSX(t *testing.T) {
	job, result := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "suggestions.xlsx")

	require.NoError(t, ExportSuggestionsXLSX(path, job, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SuggestionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3+len(result.Suggestions))

	assert.Contains(t, rows[0][0], "4x6")
	assert.Contains(t, rows[0][0], "1000")
	assert.Equal(t, "Rank", rows[2][0])
	assert.Equal(t, "Layout", rows[2][12])

	flagged := 0
	for i, s := range result.Suggestions {
		row := rows[i+3]
		assert.Equal(t, s.Label, row[2])
		assert.Equal(t, s.Sheet.String(), row[3])
		if len(row) > 1 && row[1] == "yes" {
			flagged++
			assert.Equal(t, result.Optimal.CandidateID, s.CandidateID)
		}
	}
	assert.Equal(t, 1, flagged)
}

func TestExportSuggestionsXLSX_LayoutSheet(t *testing.T) {
	job, result := buildTestResult(t)
	path := filepath.Join(t.TempDir(), "layout.xlsx")

	require.NoError(t, ExportSuggestionsXLSX(path, job, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SuggestionsSheet, LayoutSheet}, f.GetSheetList())
	rows, err := f.GetRows(LayoutSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 3+len(result.Optimal.Placements))
	assert.Equal(t, []string{"#", "X", "Y", "Width", "Height", "Rotated"}, rows[2])
}

func TestWriteSuggestionsXLSX(t *testing.T) {
	job, result := buildTestResult(t)
	var buf bytes.Buffer

	require.NoError(t, WriteSuggestionsXLSX(&buf, job, result))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), SuggestionsSheet)
}

func TestExportSuggestionsXLSX_Empty(t *testing.T) {
	err := ExportSuggestionsXLSX(filepath.Join(t.TempDir(), "x.xlsx"), Job{}, model.OptimizeResult{})
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 9.27, round2(9.2741))
	assert.Equal(t, 10.0, round2(9.999))
	assert.Equal(t, 0.0, round2(0))
}
