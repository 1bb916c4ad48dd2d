package server

import (
	"github.com/shopspring/decimal"

	"github.com/piwi3910/SheetFit/internal/engine"
	"github.com/piwi3910/SheetFit/internal/model"
)

// PieceRequest is the cut piece of a job.
type PieceRequest struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
	Label  string  `json:"label,omitempty"`
}

// Spec converts the request into a PieceSpec.
func (p PieceRequest) Spec() model.PieceSpec {
	spec := model.NewPieceSpec(p.Width, p.Height)
	spec.Label = p.Label
	return spec
}

// CandidateRequest is a caller-supplied master sheet. Non-positive sizes are
// accepted and simply never fit.
type CandidateRequest struct {
	ID             string          `json:"id" validate:"required"`
	Label          string          `json:"label,omitempty"`
	Width          float64         `json:"width"`
	Height         float64         `json:"height"`
	Grade          string          `json:"grade,omitempty"`
	GSM            float64         `json:"gsm,omitempty" validate:"gte=0"`
	AvailableStock int             `json:"available_stock" validate:"gte=0"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
}

// Candidate converts the request into a SheetCandidate.
func (c CandidateRequest) Candidate() model.SheetCandidate {
	return model.SheetCandidate{
		ID:             c.ID,
		Label:          c.Label,
		Dimension:      model.Dimension{Width: c.Width, Height: c.Height},
		Quality:        model.PaperQuality{Grade: c.Grade, GSM: c.GSM},
		AvailableStock: c.AvailableStock,
		UnitCost:       c.UnitCost,
	}
}

// OptimizeRequest asks for ranked master-sheet suggestions. Without
// candidates the server inventory is used.
type OptimizeRequest struct {
	Piece             PieceRequest          `json:"piece"`
	RequestedQuantity int                   `json:"requested_quantity"`
	Candidates        []CandidateRequest    `json:"candidates,omitempty" validate:"omitempty,dive"`
	Quality           *engine.QualityFilter `json:"quality,omitempty"`
	AllowRotation     *bool                 `json:"allow_rotation,omitempty"`
	WastageTolerance  *float64              `json:"wastage_tolerance,omitempty" validate:"omitempty,gte=0"`
}

// BatchRequest bundles several optimize requests.
type BatchRequest struct {
	Jobs []OptimizeRequest `json:"jobs" validate:"required,min=1,max=100,dive"`
}

// BatchResponse holds one result per job, in request order.
type BatchResponse struct {
	Results []model.OptimizeResult `json:"results"`
}

// PackRequest is a single packer call. Sizes are passed through unchecked so
// invalid input yields the packer's own zero-up result.
type PackRequest struct {
	Piece         model.Dimension `json:"piece"`
	Sheet         model.Dimension `json:"sheet"`
	AllowRotation *bool           `json:"allow_rotation,omitempty"`
	Gutter        *float64        `json:"gutter,omitempty" validate:"omitempty,gte=0"`
	Margin        *float64        `json:"margin,omitempty" validate:"omitempty,gte=0"`
}

// CompareResponse lists the outcome of every what-if scenario.
type CompareResponse struct {
	Scenarios []engine.ComparisonResult `json:"scenarios"`
}

// SelectionRequest records the sheet picked for a job card. The choice is
// re-evaluated against the inventory before it is stored.
type SelectionRequest struct {
	CandidateID       string       `json:"candidate_id" validate:"required"`
	Piece             PieceRequest `json:"piece"`
	RequestedQuantity int          `json:"requested_quantity" validate:"gt=0"`
}

// SelectionResponse is a stored selection with its purchase estimate.
type SelectionResponse struct {
	Selection model.JobSelection     `json:"selection"`
	Purchase  model.PurchaseEstimate `json:"purchase"`
}
