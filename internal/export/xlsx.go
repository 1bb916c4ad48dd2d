// Package export writes optimization results to spreadsheet files.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SheetFit/internal/model"
)

// ErrNothingToExport is returned when a result has no suggestions.
var ErrNothingToExport = errors.New("no suggestions to export")

// Sheet names used in the exported workbook.
const (
	SuggestionsSheet = "Suggestions"
	LayoutSheet      = "Layout"
)

// Job describes the job the suggestions were computed for.
type Job struct {
	Piece             model.PieceSpec
	RequestedQuantity int
}

var suggestionHeader = []interface{}{
	"Rank", "Optimal", "Sheet", "Size", "Grade", "GSM", "Ups/Sheet",
	"Wastage %", "Sheets Needed", "In Stock", "Shortfall", "Material Cost", "Layout",
}

// ExportSuggestionsXLSX writes the ranked suggestion table to path.
func ExportSuggestionsXLSX(path string, job Job, result model.OptimizeResult) error {
	f, err := BuildSuggestionsWorkbook(job, result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteSuggestionsXLSX streams the workbook to w.
func WriteSuggestionsXLSX(w io.Writer, job Job, result model.OptimizeResult) error {
	f, err := BuildSuggestionsWorkbook(job, result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// BuildSuggestionsWorkbook lays out one row per suggestion in rank order, with
// the optimal row highlighted, and a second sheet listing the placements of
// the optimal layout. The caller must Close the returned file.
func BuildSuggestionsWorkbook(job Job, result model.OptimizeResult) (*excelize.File, error) {
	if result.Empty() {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SuggestionsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeSuggestions(f, job, result); err != nil {
		f.Close()
		return nil, err
	}
	if result.Optimal != nil {
		if err := writeLayout(f, *result.Optimal); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeSuggestions(f *excelize.File, job Job, result model.OptimizeResult) error {
	sheet := SuggestionsSheet

	title := fmt.Sprintf("Piece %s, quantity %d", job.Piece.Dimension, job.RequestedQuantity)
	if job.Piece.Label != "" {
		title = job.Piece.Label + ": " + title
	}
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A3", &suggestionHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	highlight, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(suggestionHeader))
	if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A3", lastCol+"3", bold); err != nil {
		return err
	}

	for i, s := range result.Suggestions {
		rowNum := i + 4
		optimal := result.Optimal != nil && s.CandidateID == result.Optimal.CandidateID
		inStock := "yes"
		if !s.InStock() {
			inStock = "no"
		}
		flag := ""
		if optimal {
			flag = "yes"
		}
		row := []interface{}{
			i + 1,
			flag,
			s.Label,
			s.Sheet.String(),
			s.Quality.Grade,
			s.Quality.GSM,
			s.UpsPerSheet,
			round2(s.WastagePercentage),
			s.SheetsNeeded,
			inStock,
			s.Shortfall,
			s.MaterialCost.InexactFloat64(),
			s.LayoutDescription,
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
		if optimal {
			if err := f.SetCellStyle(sheet, cell, fmt.Sprintf("%s%d", lastCol, rowNum), highlight); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "C", "C", 24); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "M", "M", 48)
}

func writeLayout(f *excelize.File, s model.Suggestion) error {
	if _, err := f.NewSheet(LayoutSheet); err != nil {
		return fmt.Errorf("failed to add layout sheet: %w", err)
	}
	title := fmt.Sprintf("%s (%s): %s", s.Label, s.Sheet, s.LayoutDescription)
	if err := f.SetCellValue(LayoutSheet, "A1", title); err != nil {
		return err
	}
	header := []interface{}{"#", "X", "Y", "Width", "Height", "Rotated"}
	if err := f.SetSheetRow(LayoutSheet, "A3", &header); err != nil {
		return err
	}
	for i, p := range s.Placements {
		rotated := ""
		if p.Rotated {
			rotated = "yes"
		}
		row := []interface{}{i + 1, p.X, p.Y, p.Width, p.Height, rotated}
		cell, _ := excelize.CoordinatesToCellName(1, i+4)
		if err := f.SetSheetRow(LayoutSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write placement %d: %w", i+1, err)
		}
	}
	return nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
