// Package importer reads stock sheet lists from CSV and Excel files and piece
// sizes from DXF dielines. It supports automatic delimiter detection, flexible
// column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SheetFit/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.StockItem
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// -1 means the column is absent.
type ColumnMapping struct {
	Label  int
	Width  int
	Height int
	Size   int
	Grade  int
	GSM    int
	Stock  int
	Cost   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":  {"label", "name", "description", "desc", "sheet", "sheet name", "item"},
	"width":  {"width", "w", "x"},
	"height": {"height", "h", "length", "len", "y"},
	"size":   {"size", "dimensions", "dimension", "sheet size"},
	"grade":  {"grade", "quality", "paper", "paper type", "material"},
	"gsm":    {"gsm", "g/m2", "g/m²", "grammage", "weight", "basis weight"},
	"stock":  {"stock", "qty", "quantity", "available", "on hand", "sheets", "count"},
	"cost":   {"cost", "price", "unit cost", "unit price", "rate", "cost per sheet"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// positionalMapping is used when the first row is not a recognised header:
// Label, Width, Height, Stock, Grade, GSM, Cost.
var positionalMapping = ColumnMapping{
	Label: 0, Width: 1, Height: 2, Stock: 3, Grade: 4, GSM: 5, Cost: 6, Size: -1,
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Height: -1, Size: -1, Grade: -1, GSM: -1, Stock: -1, Cost: -1}
	slots := map[string]*int{
		"label":  &mapping.Label,
		"width":  &mapping.Width,
		"height": &mapping.Height,
		"size":   &mapping.Size,
		"grade":  &mapping.Grade,
		"gsm":    &mapping.GSM,
		"stock":  &mapping.Stock,
		"cost":   &mapping.Cost,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ParseSize parses sizes such as "23x36", "23 X 36" or "12×18".
func ParseSize(s string) (float64, float64, error) {
	normalized := strings.NewReplacer("×", "x", "X", "x", "*", "x", "\"", "", "in", "").Replace(s)
	parts := strings.Split(normalized, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("size %q is not WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: invalid width", s)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: invalid height", s)
	}
	return w, h, nil
}

func parseCost(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.TrimLeft(s, "$€£₹ "))
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	return decimal.NewFromString(cleaned)
}

func parseCount(s string) (int, error) {
	cleaned := strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	return strconv.Atoi(cleaned)
}

// parseRow extracts a StockItem from a row using the given column mapping.
// Returns the item, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.StockItem, string, []string) {
	var warnings []string

	var width, height float64
	widthStr := getCell(row, mapping.Width)
	heightStr := getCell(row, mapping.Height)
	sizeStr := getCell(row, mapping.Size)

	switch {
	case widthStr != "" || heightStr != "":
		if widthStr == "" {
			return model.StockItem{}, fmt.Sprintf("%s: Missing width value", rowLabel), nil
		}
		if heightStr == "" {
			return model.StockItem{}, fmt.Sprintf("%s: Missing height value", rowLabel), nil
		}
		var err error
		if width, err = strconv.ParseFloat(widthStr, 64); err != nil {
			return model.StockItem{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), nil
		}
		if height, err = strconv.ParseFloat(heightStr, 64); err != nil {
			return model.StockItem{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), nil
		}
	case sizeStr != "":
		w, h, err := ParseSize(sizeStr)
		if err != nil {
			return model.StockItem{}, fmt.Sprintf("%s: %v", rowLabel, err), nil
		}
		width, height = w, h
	default:
		return model.StockItem{}, fmt.Sprintf("%s: Missing width and height", rowLabel), nil
	}

	if width <= 0 || height <= 0 {
		return model.StockItem{}, fmt.Sprintf("%s: Width and height must be positive", rowLabel), nil
	}

	stock := 0
	if stockStr := getCell(row, mapping.Stock); stockStr != "" {
		n, err := parseCount(stockStr)
		if err != nil {
			return model.StockItem{}, fmt.Sprintf("%s: Invalid stock '%s'", rowLabel, stockStr), nil
		}
		if n < 0 {
			return model.StockItem{}, fmt.Sprintf("%s: Stock cannot be negative", rowLabel), nil
		}
		stock = n
	} else {
		warnings = append(warnings, fmt.Sprintf("%s: No stock value, assuming 0", rowLabel))
	}

	var gsm float64
	if gsmStr := getCell(row, mapping.GSM); gsmStr != "" {
		g, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.ToLower(gsmStr), "gsm")), 64)
		if err != nil || g < 0 {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown GSM '%s', ignoring", rowLabel, gsmStr))
		} else {
			gsm = g
		}
	}

	grade := getCell(row, mapping.Grade)
	label := getCell(row, mapping.Label)
	if label == "" {
		label = strings.TrimSpace(fmt.Sprintf("%s %gx%g", grade, width, height))
	}

	item := model.NewStockItem(label, width, height, grade, gsm, stock)

	if costStr := getCell(row, mapping.Cost); costStr != "" {
		cost, err := parseCost(costStr)
		if err != nil || cost.IsNegative() {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid cost '%s', ignoring", rowLabel, costStr))
		} else {
			item.UnitCost = cost
		}
	}

	return item, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports stock sheets from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports stock sheets from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	records, err := readCSV(reader, delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportExcel imports stock sheets from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension: .xlsx/.xlsm go to ImportExcel,
// everything else is read as CSV.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into stock items.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Size == -1 && (mapping.Width == -1 || mapping.Height == -1) {
			missing := []string{}
			if mapping.Width == -1 {
				missing = append(missing, "Width")
			}
			if mapping.Height == -1 {
				missing = append(missing, "Height")
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// First column after label is not numeric: an unrecognised header.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		item, errMsg, warnings := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Items = append(result.Items, item)
	}

	return result
}
