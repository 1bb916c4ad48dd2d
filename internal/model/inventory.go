package model

import (
	"sort"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	"github.com/shopspring/decimal"
)

// StockItem is a master sheet size held in inventory.
type StockItem struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Grade    string          `json:"grade,omitempty"`
	GSM      float64         `json:"gsm,omitempty"`
	Stock    int             `json:"stock"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// NewStockItem creates a StockItem with a generated ID.
func NewStockItem(label string, w, h float64, grade string, gsm float64, stock int) StockItem {
	return StockItem{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
		Grade:  grade,
		GSM:    gsm,
		Stock:  stock,
	}
}

// Candidate converts the item into the read-only view the optimizer consumes.
func (s StockItem) Candidate() SheetCandidate {
	return SheetCandidate{
		ID:             s.ID,
		Label:          s.Label,
		Dimension:      Dimension{Width: s.Width, Height: s.Height},
		Quality:        PaperQuality{Grade: s.Grade, GSM: s.GSM},
		AvailableStock: s.Stock,
		UnitCost:       s.UnitCost,
	}
}

// Inventory holds the master sheets a shop keeps.
type Inventory struct {
	Sheets []StockItem `json:"sheets"`
}

// DefaultInventory returns common press sheet sizes in inches.
func DefaultInventory() Inventory {
	return Inventory{
		Sheets: []StockItem{
			NewStockItem("Art Card 20x30", 20, 30, "Art Card", 300, 500),
			NewStockItem("Art Card 23x36", 23, 36, "Art Card", 300, 250),
			NewStockItem("Art Paper 25x36", 25, 36, "Art Paper", 130, 1000),
			NewStockItem("Maplitho 23x36", 23, 36, "Maplitho", 70, 2000),
			NewStockItem("Maplitho 18x23", 18, 23, "Maplitho", 70, 1500),
			NewStockItem("Digital SRA3 12x18", 12, 18, "Art Paper", 170, 800),
			NewStockItem("Digital 13x19", 13, 19, "Art Card", 300, 400),
		},
	}
}

// Candidates returns every item as a SheetCandidate, in natural label order.
func (inv Inventory) Candidates() []SheetCandidate {
	out := make([]SheetCandidate, 0, len(inv.Sheets))
	for _, s := range inv.Sheets {
		out = append(out, s.Candidate())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return natural.Less(out[i].Label, out[j].Label)
	})
	return out
}

// FindByID returns a pointer to the item with the given ID, or nil.
func (inv *Inventory) FindByID(id string) *StockItem {
	for i := range inv.Sheets {
		if inv.Sheets[i].ID == id {
			return &inv.Sheets[i]
		}
	}
	return nil
}

// FindByLabel returns a pointer to the first item with the given label, or nil.
func (inv *Inventory) FindByLabel(label string) *StockItem {
	for i := range inv.Sheets {
		if inv.Sheets[i].Label == label {
			return &inv.Sheets[i]
		}
	}
	return nil
}
