package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// PurchaseEstimate tells the shop how many master sheets to pull and order for
// a chosen suggestion once press spoilage ("overs") is allowed for.
type PurchaseEstimate struct {
	SheetsNeeded    int             `json:"sheets_needed"`    // from the suggestion, no overs
	SpoilagePercent float64         `json:"spoilage_percent"` // overs applied, e.g. 5 for 5%
	SpoilageSheets  int             `json:"spoilage_sheets"`  // extra sheets for makeready and spoilage
	SheetsWithOvers int             `json:"sheets_with_overs"`
	AvailableStock  int             `json:"available_stock"`
	SheetsToOrder   int             `json:"sheets_to_order"` // shortfall including overs
	UnitCost        decimal.Decimal `json:"unit_cost"`
	EstimatedCost   decimal.Decimal `json:"estimated_cost"` // SheetsWithOvers * UnitCost
}

// EstimatePurchase computes the purchase needs of a suggestion.
// A zero-up suggestion yields an empty estimate.
func EstimatePurchase(s Suggestion, unitCost decimal.Decimal, spoilagePercent float64) PurchaseEstimate {
	if s.UpsPerSheet <= 0 || s.SheetsNeeded <= 0 {
		return PurchaseEstimate{SpoilagePercent: spoilagePercent, AvailableStock: s.AvailableStock}
	}
	if spoilagePercent < 0 {
		spoilagePercent = 0
	}

	overs := int(math.Ceil(float64(s.SheetsNeeded) * spoilagePercent / 100.0))
	total := s.SheetsNeeded + overs

	toOrder := total - s.AvailableStock
	if toOrder < 0 {
		toOrder = 0
	}

	return PurchaseEstimate{
		SheetsNeeded:    s.SheetsNeeded,
		SpoilagePercent: spoilagePercent,
		SpoilageSheets:  overs,
		SheetsWithOvers: total,
		AvailableStock:  s.AvailableStock,
		SheetsToOrder:   toOrder,
		UnitCost:        unitCost,
		EstimatedCost:   unitCost.Mul(decimal.NewFromInt(int64(total))),
	}
}
