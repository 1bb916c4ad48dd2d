package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEstimatePurchaseWithOvers(t *testing.T) {
	s := Suggestion{UpsPerSheet: 25, SheetsNeeded: 40, AvailableStock: 30}
	est := EstimatePurchase(s, decimal.RequireFromString("2.25"), 5)

	if est.SpoilageSheets != 2 {
		t.Errorf("expected 2 spoilage sheets, got %d", est.SpoilageSheets)
	}
	if est.SheetsWithOvers != 42 {
		t.Errorf("expected 42 sheets with overs, got %d", est.SheetsWithOvers)
	}
	if est.SheetsToOrder != 12 {
		t.Errorf("expected 12 sheets to order, got %d", est.SheetsToOrder)
	}
	if !est.EstimatedCost.Equal(decimal.RequireFromString("94.5")) {
		t.Errorf("expected cost 94.5, got %s", est.EstimatedCost)
	}
}

func TestEstimatePurchaseCoveredByStock(t *testing.T) {
	s := Suggestion{UpsPerSheet: 4, SheetsNeeded: 10, AvailableStock: 100}
	est := EstimatePurchase(s, decimal.Zero, 0)

	if est.SheetsToOrder != 0 {
		t.Errorf("expected nothing to order, got %d", est.SheetsToOrder)
	}
	if !est.EstimatedCost.IsZero() {
		t.Errorf("expected zero cost, got %s", est.EstimatedCost)
	}
}

func TestEstimatePurchaseZeroUps(t *testing.T) {
	est := EstimatePurchase(Suggestion{AvailableStock: 3}, decimal.NewFromInt(1), 10)
	if est.SheetsWithOvers != 0 || est.SheetsToOrder != 0 {
		t.Errorf("expected empty estimate, got %+v", est)
	}
}
