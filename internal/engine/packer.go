package engine

import (
	"fmt"
	"math"
	"strings"

	"k8s.io/klog/v2"

	"github.com/piwi3910/SheetFit/internal/model"
)

// PackSettings controls the fixed-point scaling and spacing used by the packer.
type PackSettings struct {
	ScaleFactor   int     // every dimension is multiplied by this and rounded
	MaxPlacements int     // ceiling on pieces placed on one sheet
	Gutter        float64 // spacing between adjacent pieces, input units
	Margin        float64 // trim removed from every sheet edge, input units
}

// DefaultPackSettings returns the settings used when none are given.
func DefaultPackSettings() PackSettings {
	return PackSettings{
		ScaleFactor:   1000,
		MaxPlacements: 200,
	}
}

// Packer counts how many copies of one piece fit on one sheet.
// A Packer holds no mutable state and is safe for concurrent use.
type Packer struct {
	Settings PackSettings
}

// NewPacker returns a Packer, replacing unusable settings with defaults.
func NewPacker(settings PackSettings) *Packer {
	d := DefaultPackSettings()
	if settings.ScaleFactor <= 0 {
		settings.ScaleFactor = d.ScaleFactor
	}
	if settings.MaxPlacements <= 0 {
		settings.MaxPlacements = d.MaxPlacements
	}
	if settings.Gutter < 0 {
		settings.Gutter = 0
	}
	if settings.Margin < 0 {
		settings.Margin = 0
	}
	return &Packer{Settings: settings}
}

// CountFittingCopies packs piece onto sheet with the default settings.
func CountFittingCopies(piece, sheet model.Dimension, allowRotation bool) model.PackingResult {
	return NewPacker(DefaultPackSettings()).CountFittingCopies(piece, sheet, allowRotation)
}

const (
	invalidDimensions = "Invalid dimensions"
	outOfRange        = "Dimensions out of range"
	belowResolution   = "0 ups: piece below scale resolution"
)

// CountFittingCopies returns the number of non-overlapping axis-aligned copies
// of piece that fit on sheet, together with their positions.
//
// All arithmetic happens on integers scaled by Settings.ScaleFactor. Layouts
// are chosen from a family of guillotine band plans (a grid band of one
// orientation followed by up to two more bands), which is closed under sheet
// enlargement: a larger sheet never yields fewer copies. The winning plan is
// then laid down piece by piece with a max-rects free-rectangle packer.
func (p *Packer) CountFittingCopies(piece, sheet model.Dimension, allowRotation bool) model.PackingResult {
	if !piece.Valid() || !sheet.Valid() {
		return model.PackingResult{LayoutDescription: invalidDimensions}
	}

	s := p.Settings
	var scaled [6]int64
	for i, v := range [6]float64{piece.Width, piece.Height, sheet.Width, sheet.Height, s.Gutter, s.Margin} {
		n, ok := p.scale(v)
		if !ok {
			return model.PackingResult{LayoutDescription: outOfRange}
		}
		scaled[i] = n
	}
	pw, ph, sw, sh, gutter, margin := scaled[0], scaled[1], scaled[2], scaled[3], scaled[4], scaled[5]
	if pw == 0 || ph == 0 {
		return model.PackingResult{LayoutDescription: belowResolution}
	}
	if sw == 0 || sh == 0 {
		return model.PackingResult{LayoutDescription: describeNoFit(allowRotation)}
	}

	// Every piece carries one gutter on its right and bottom edge; the usable
	// area is extended by one gutter so the last piece in a row needs none.
	usableW := sw - 2*margin + gutter
	usableH := sh - 2*margin + gutter
	cells := cellSizes{
		normal:  cell{w: pw + gutter, h: ph + gutter},
		rotated: cell{w: ph + gutter, h: pw + gutter},
		rotate:  allowRotation && pw != ph,
		limit:   s.MaxPlacements,
	}

	if usableW <= 0 || usableH <= 0 || !cells.fitsAny(usableW, usableH) {
		return model.PackingResult{LayoutDescription: describeNoFit(allowRotation)}
	}

	best := cells.searchTwoLevels(region{w: usableW, h: usableH})
	placements := p.realize(best, cells, margin, gutter)

	rotated := false
	for _, pl := range placements {
		if pl.Rotated {
			rotated = true
			break
		}
	}

	result := model.PackingResult{
		UpsPerSheet:       len(placements),
		RotationUsed:      rotated,
		Placements:        placements,
		LayoutDescription: describePlan(best, len(placements), allowRotation, rotated, len(placements) >= s.MaxPlacements),
	}
	klog.V(3).Infof("pack %s on %s rotate=%v: %d ups, %d bands", piece, sheet, allowRotation, result.UpsPerSheet, len(best.bands))
	return result
}

// maxScaled bounds every scaled length so that sums of two lengths and
// products of two sums stay inside int64.
const maxScaled = 1 << 30

// scale converts v to fixed point. It fails for NaN, infinities and values
// whose scaled magnitude exceeds maxScaled.
func (p *Packer) scale(v float64) (int64, bool) {
	f := math.Round(v * float64(p.Settings.ScaleFactor))
	if math.IsNaN(f) || math.Abs(f) > maxScaled {
		return 0, false
	}
	return int64(f), true
}

func (p *Packer) unscale(v int64) float64 {
	return float64(v) / float64(p.Settings.ScaleFactor)
}

// cell is a piece footprint including its gutter, in scaled units.
type cell struct {
	w, h int64
}

func (c cell) gridCount(w, h int64) int {
	if c.w > w || c.h > h {
		return 0
	}
	return int((w / c.w) * (h / c.h))
}

type cellSizes struct {
	normal, rotated cell
	rotate          bool
	limit           int
}

func (cs cellSizes) fitsAny(w, h int64) bool {
	if cs.normal.w <= w && cs.normal.h <= h {
		return true
	}
	return cs.rotate && cs.rotated.w <= w && cs.rotated.h <= h
}

// region is a rectangle of the usable sheet area in scaled units.
type region struct {
	x, y, w, h int64
}

// band is a region filled with a grid of one orientation.
type band struct {
	region
	rotated    bool
	cols, rows int
}

func (b band) count() int {
	return b.cols * b.rows
}

type plan struct {
	bands []band
	total int
}

func (pl plan) better(other plan) bool {
	return pl.total > other.total
}

// gridBand fills r entirely with one orientation.
func (cs cellSizes) gridBand(r region, rotated bool) band {
	c := cs.normal
	if rotated {
		c = cs.rotated
	}
	b := band{region: r, rotated: rotated}
	if c.w <= r.w && c.h <= r.h {
		b.cols = int(r.w / c.w)
		b.rows = int(r.h / c.h)
	}
	return b
}

// searchGrid is the single-band plan: the better of the two orientations.
func (cs cellSizes) searchGrid(r region) plan {
	best := plan{bands: []band{cs.gridBand(r, false)}}
	best.total = best.bands[0].count()
	if cs.rotate {
		b := cs.gridBand(r, true)
		if b.count() > best.total {
			best = plan{bands: []band{b}, total: b.count()}
		}
	}
	return best
}

// searchOneLevel tries every single guillotine cut that leaves a whole number of
// columns (or rows) of one orientation on the near side, and fills the far side
// with the best grid.
func (cs cellSizes) searchOneLevel(r region) plan {
	return cs.searchSplits(r, cs.searchGrid)
}

// searchTwoLevels is searchOneLevel with the far side itself split once more.
func (cs cellSizes) searchTwoLevels(r region) plan {
	return cs.searchSplits(r, cs.searchOneLevel)
}

func (cs cellSizes) searchSplits(r region, rest func(region) plan) plan {
	best := cs.searchGrid(r)
	if best.total >= cs.limit {
		return best
	}

	orientations := []bool{false}
	if cs.rotate {
		orientations = append(orientations, true)
	}

	for _, rotated := range orientations {
		c := cs.normal
		if rotated {
			c = cs.rotated
		}

		// Vertical cuts: a band of whole columns on the left.
		if c.h <= r.h {
			for x := c.w; x < r.w; x += c.w {
				near := cs.gridBand(region{x: r.x, y: r.y, w: x, h: r.h}, rotated)
				far := rest(region{x: r.x + x, y: r.y, w: r.w - x, h: r.h})
				if cand := join(near, far); cand.better(best) {
					best = cand
				}
			}
		}

		// Horizontal cuts: a band of whole rows on top.
		if c.w <= r.w {
			for y := c.h; y < r.h; y += c.h {
				near := cs.gridBand(region{x: r.x, y: r.y, w: r.w, h: y}, rotated)
				far := rest(region{x: r.x, y: r.y + y, w: r.w, h: r.h - y})
				if cand := join(near, far); cand.better(best) {
					best = cand
				}
			}
		}
	}
	return best
}

func join(near band, far plan) plan {
	bands := make([]band, 0, len(far.bands)+1)
	bands = append(bands, near)
	bands = append(bands, far.bands...)
	return plan{bands: bands, total: near.count() + far.total}
}

// realize lays the plan down one piece at a time, each band with its own
// free-rectangle packer, until the plan is exhausted or the ceiling is hit.
func (p *Packer) realize(pl plan, cs cellSizes, margin, gutter int64) []model.Placement {
	var placements []model.Placement
	for _, b := range pl.bands {
		if b.count() == 0 {
			continue
		}
		c := cs.normal
		if b.rotated {
			c = cs.rotated
		}
		packer := newMaxRectsPacker([]rect{{x: b.x, y: b.y, w: b.w, h: b.h}})
		for len(placements) < cs.limit {
			ok, x, y := packer.insert(c.w, c.h)
			if !ok {
				break
			}
			placements = append(placements, model.Placement{
				X:       p.unscale(margin + x),
				Y:       p.unscale(margin + y),
				Width:   p.unscale(c.w - gutter),
				Height:  p.unscale(c.h - gutter),
				Rotated: b.rotated,
			})
		}
	}
	return placements
}

func describeNoFit(allowRotation bool) string {
	if allowRotation {
		return "0 ups: piece does not fit in either orientation"
	}
	return "0 ups: piece does not fit, rotation disabled"
}

func describePlan(pl plan, ups int, allowRotation, rotated, capped bool) string {
	var parts []string
	for _, b := range pl.bands {
		if b.count() == 0 {
			continue
		}
		d := fmt.Sprintf("%d x %d", b.cols, b.rows)
		if b.rotated {
			d += " rotated"
		}
		parts = append(parts, d)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d ups", ups)
	if len(parts) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(parts, " + "))
	}
	switch {
	case !allowRotation:
		sb.WriteString(", rotation disabled")
	case rotated:
		sb.WriteString(", rotation enabled and used")
	default:
		sb.WriteString(", rotation enabled")
	}
	if capped {
		sb.WriteString(", placement ceiling reached")
	}
	return sb.String()
}
