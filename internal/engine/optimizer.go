package engine

import (
	"math"
	"sort"

	"github.com/maruel/natural"
	"github.com/shopspring/decimal"
	"k8s.io/klog/v2"

	"github.com/piwi3910/SheetFit/internal/model"
)

// OptimizerSettings configures the master-sheet optimizer.
type OptimizerSettings struct {
	Pack PackSettings `json:"pack"`
	// WastageTolerance is how many percentage points above the lowest wastage a
	// suggestion may sit and still win on sheet count.
	WastageTolerance float64 `json:"wastage_tolerance"`
	AllowRotation    bool    `json:"allow_rotation"`
}

// DefaultOptimizerSettings returns a 1-point tolerance with rotation allowed.
func DefaultOptimizerSettings() OptimizerSettings {
	return OptimizerSettings{
		Pack:             DefaultPackSettings(),
		WastageTolerance: 1.0,
		AllowRotation:    true,
	}
}

// SettingsFromConfig maps the persisted application config onto optimizer settings.
func SettingsFromConfig(cfg model.AppConfig) OptimizerSettings {
	cfg = cfg.Normalize()
	return OptimizerSettings{
		Pack: PackSettings{
			ScaleFactor:   cfg.ScaleFactor,
			MaxPlacements: cfg.MaxPlacements,
			Gutter:        cfg.Gutter,
			Margin:        cfg.Margin,
		},
		WastageTolerance: cfg.WastageTolerance,
		AllowRotation:    cfg.AllowRotation,
	}
}

// Optimizer ranks candidate master sheets for a job.
type Optimizer struct {
	Settings OptimizerSettings
	packer   *Packer
}

// New creates an Optimizer.
func New(settings OptimizerSettings) *Optimizer {
	if settings.WastageTolerance < 0 {
		settings.WastageTolerance = 0
	}
	packer := NewPacker(settings.Pack)
	settings.Pack = packer.Settings
	return &Optimizer{Settings: settings, packer: packer}
}

// Optimize evaluates every candidate with the default settings.
func Optimize(piece model.PieceSpec, requestedQuantity int, candidates []model.SheetCandidate) model.OptimizeResult {
	return New(DefaultOptimizerSettings()).Optimize(piece, requestedQuantity, candidates)
}

// Optimize packs the piece onto every candidate, drops candidates that hold no
// copy, and ranks the rest by wastage and then sheet count. Optimal is the
// suggestion with the fewest sheets among those within WastageTolerance of the
// lowest wastage. A non-positive quantity or no fitting candidate yields an
// empty result.
func (o *Optimizer) Optimize(piece model.PieceSpec, requestedQuantity int, candidates []model.SheetCandidate) model.OptimizeResult {
	result := model.OptimizeResult{Suggestions: []model.Suggestion{}}
	if requestedQuantity <= 0 || len(candidates) == 0 {
		return result
	}

	for _, c := range candidates {
		s, ok := o.evaluate(piece, requestedQuantity, c)
		if !ok {
			klog.V(2).Infof("candidate %s (%s) holds no copy of %s", c.ID, c.Dimension, piece.Dimension)
			continue
		}
		result.Suggestions = append(result.Suggestions, s)
	}

	sortSuggestions(result.Suggestions)
	if idx := o.pickOptimal(result.Suggestions); idx >= 0 {
		optimal := result.Suggestions[idx]
		result.Optimal = &optimal
	}
	return result
}

func (o *Optimizer) evaluate(piece model.PieceSpec, qty int, c model.SheetCandidate) (model.Suggestion, bool) {
	packed := o.packer.CountFittingCopies(piece.Dimension, c.Dimension, o.Settings.AllowRotation)
	if packed.UpsPerSheet == 0 {
		return model.Suggestion{}, false
	}

	sheetsNeeded := (qty + packed.UpsPerSheet - 1) / packed.UpsPerSheet
	shortfall := sheetsNeeded - c.AvailableStock
	if shortfall < 0 {
		shortfall = 0
	}

	return model.Suggestion{
		CandidateID:       c.ID,
		Label:             c.Label,
		Sheet:             c.Dimension,
		Quality:           c.Quality,
		UpsPerSheet:       packed.UpsPerSheet,
		WastagePercentage: wastagePercentage(packed.UpsPerSheet, piece.Dimension, c.Dimension),
		SheetsNeeded:      sheetsNeeded,
		AvailableStock:    c.AvailableStock,
		Shortfall:         shortfall,
		LayoutDescription: packed.LayoutDescription,
		MaterialCost:      c.UnitCost.Mul(decimal.NewFromInt(int64(sheetsNeeded))),
		Placements:        packed.Placements,
	}, true
}

// wastagePercentage is the share of the sheet not covered by pieces, clamped
// to [0, 100].
func wastagePercentage(ups int, piece, sheet model.Dimension) float64 {
	sheetArea := sheet.Area()
	if sheetArea <= 0 {
		return 100
	}
	w := 100 * (1 - float64(ups)*piece.Area()/sheetArea)
	return math.Max(0, math.Min(100, w))
}

// sortSuggestions orders by wastage, then sheets needed, then label in
// natural order, then candidate ID.
func sortSuggestions(suggestions []model.Suggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.WastagePercentage != b.WastagePercentage {
			return a.WastagePercentage < b.WastagePercentage
		}
		if a.SheetsNeeded != b.SheetsNeeded {
			return a.SheetsNeeded < b.SheetsNeeded
		}
		if a.Label != b.Label {
			return natural.Less(a.Label, b.Label)
		}
		return a.CandidateID < b.CandidateID
	})
}

// pickOptimal expects sorted suggestions and returns -1 when there are none.
func (o *Optimizer) pickOptimal(suggestions []model.Suggestion) int {
	if len(suggestions) == 0 {
		return -1
	}
	limit := suggestions[0].WastagePercentage + o.Settings.WastageTolerance
	best := 0
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].WastagePercentage > limit {
			break
		}
		if suggestions[i].SheetsNeeded < suggestions[best].SheetsNeeded {
			best = i
		}
	}
	return best
}
