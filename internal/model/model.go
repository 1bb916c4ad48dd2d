// Package model holds the data types shared by the packer, the optimizer and
// the surrounding persistence and transport layers.
package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Dimension is a width/height pair in a single linear unit (inches by default).
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether both sides are strictly positive.
func (d Dimension) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// Area returns Width * Height.
func (d Dimension) Area() float64 {
	return d.Width * d.Height
}

// Rotated returns the dimension turned by 90 degrees.
func (d Dimension) Rotated() Dimension {
	return Dimension{Width: d.Height, Height: d.Width}
}

func (d Dimension) String() string {
	return fmt.Sprintf("%gx%g", d.Width, d.Height)
}

// PieceSpec is the individual cut piece of a job.
type PieceSpec struct {
	Dimension
	Label string `json:"label,omitempty"`
}

// NewPieceSpec builds a PieceSpec from raw width and height.
func NewPieceSpec(w, h float64) PieceSpec {
	return PieceSpec{Dimension: Dimension{Width: w, Height: h}}
}

// PaperQuality describes the paper of a stock sheet. The packer never looks at
// it; it is used for filtering and display only.
type PaperQuality struct {
	Grade string  `json:"grade,omitempty"` // e.g. "Art Card", "Maplitho"
	GSM   float64 `json:"gsm,omitempty"`   // grams per square metre, 0 = unknown
}

// SheetCandidate is one inventory-backed master sheet option.
type SheetCandidate struct {
	ID             string          `json:"id"`
	Label          string          `json:"label,omitempty"`
	Dimension      Dimension       `json:"dimension"`
	Quality        PaperQuality    `json:"quality"`
	AvailableStock int             `json:"available_stock"`
	UnitCost       decimal.Decimal `json:"unit_cost"` // cost of one sheet, zero when unknown
}

// Placement is one piece placed on a master sheet. Coordinates are measured
// from the top-left corner of the sheet, in input units.
type Placement struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`  // placed width, already rotated when Rotated is set
	Height  float64 `json:"height"` // placed height
	Rotated bool    `json:"rotated"`
}

// PackingResult is the output of one packer call.
type PackingResult struct {
	UpsPerSheet       int         `json:"ups_per_sheet"`
	LayoutDescription string      `json:"layout_description"`
	RotationUsed      bool        `json:"rotation_used"`
	Placements        []Placement `json:"placements,omitempty"`
}

// Suggestion is a candidate sheet evaluated against a job.
type Suggestion struct {
	CandidateID       string          `json:"candidate_id"`
	Label             string          `json:"label,omitempty"`
	Sheet             Dimension       `json:"sheet"`
	Quality           PaperQuality    `json:"quality"`
	UpsPerSheet       int             `json:"ups_per_sheet"`
	WastagePercentage float64         `json:"wastage_percentage"`
	SheetsNeeded      int             `json:"sheets_needed"`
	AvailableStock    int             `json:"available_stock"`
	Shortfall         int             `json:"shortfall"`
	LayoutDescription string          `json:"layout_description"`
	MaterialCost      decimal.Decimal `json:"material_cost"`
	Placements        []Placement     `json:"placements,omitempty"`
}

// InStock reports whether the stock on hand covers the sheets needed.
func (s Suggestion) InStock() bool {
	return s.Shortfall == 0
}

// OptimizeResult is the ranked list of suggestions for one job. Optimal is nil
// when no candidate can produce the piece.
type OptimizeResult struct {
	Suggestions []Suggestion `json:"suggestions"`
	Optimal     *Suggestion  `json:"optimal,omitempty"`
}

// Empty reports whether no candidate fitted.
func (r OptimizeResult) Empty() bool {
	return len(r.Suggestions) == 0
}
