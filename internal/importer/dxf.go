package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/SheetFit/internal/model"
)

// Common unit conversions for ImportDieline.
const (
	UnitInches      = 1.0
	UnitMillimetres = 1 / 25.4
)

// DielineResult holds the piece size read from a die-cut drawing.
type DielineResult struct {
	Piece    model.PieceSpec
	Entities int // entities that contributed to the bounding box
	Errors   []string
	Warnings []string
}

// extents is an axis-aligned bounding box that grows as points are added.
type extents struct {
	minX, minY, maxX, maxY float64
	empty                  bool
}

func newExtents() extents {
	return extents{empty: true}
}

func (e *extents) add(x, y float64) {
	if e.empty {
		e.minX, e.maxX, e.minY, e.maxY = x, x, y, y
		e.empty = false
		return
	}
	e.minX = math.Min(e.minX, x)
	e.maxX = math.Max(e.maxX, x)
	e.minY = math.Min(e.minY, y)
	e.maxY = math.Max(e.maxY, y)
}

// ImportDieline reads a DXF dieline and returns the bounding box of all LINE,
// LWPOLYLINE, CIRCLE and ARC entities as the piece to pack. unitScale converts
// drawing units to inches (UnitMillimetres for metric drawings).
func ImportDieline(path string, unitScale float64) DielineResult {
	result := DielineResult{}
	if unitScale <= 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid unit scale %g", unitScale))
		return result
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	box := newExtents()
	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			box.add(e.Start[0], e.Start[1])
			box.add(e.End[0], e.End[1])

		case *entity.LwPolyline:
			addLwPolyline(&box, e)

		case *entity.Circle:
			box.add(e.Center[0]-e.Radius, e.Center[1]-e.Radius)
			box.add(e.Center[0]+e.Radius, e.Center[1]+e.Radius)

		case *entity.Arc:
			for _, p := range arcToPoints(e, 64) {
				box.add(p[0], p[1])
			}

		default:
			skipped++
			continue
		}
		result.Entities++
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}
	if box.empty {
		result.Errors = append(result.Errors, "No LINE, LWPOLYLINE, CIRCLE or ARC entities found")
		return result
	}

	width := (box.maxX - box.minX) * unitScale
	height := (box.maxY - box.minY) * unitScale
	if width < 0.001 || height < 0.001 {
		result.Errors = append(result.Errors, fmt.Sprintf("Dieline is degenerate (%.4f x %.4f)", width, height))
		return result
	}

	result.Piece = model.NewPieceSpec(roundTo(width, 4), roundTo(height, 4))
	result.Piece.Label = "Dieline"
	return result
}

// addLwPolyline adds every vertex and, for bulged segments, the arc between
// vertices.
func addLwPolyline(box *extents, lw *entity.LwPolyline) {
	n := len(lw.Vertices)
	for i := 0; i < n; i++ {
		v := lw.Vertices[i]
		box.add(v[0], v[1])

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) > 1e-9 && n > 1 {
			next := lw.Vertices[(i+1)%n]
			for _, p := range bulgeArcPoints(v[0], v[1], next[0], next[1], bulge, 32) {
				box.add(p[0], p[1])
			}
		}
	}
}

// bulgeArcPoints samples the arc between two vertices. The bulge is the
// tangent of a quarter of the included angle; positive bulges turn
// counter-clockwise.
func bulgeArcPoints(x1, y1, x2, y2, bulge float64, numSegments int) [][2]float64 {
	mx, my := (x1+x2)/2, (y1+y2)/2
	dx, dy := x2-x1, y2-y1
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return nil
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chord, dx/chord
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	dist := radius - sagitta
	cx, cy := mx+perpX*dist, my+perpY*dist

	start := math.Atan2(y1-cy, x1-cx)
	end := math.Atan2(y2-cy, x2-cx)
	if bulge < 0 {
		if end > start {
			end -= 2 * math.Pi
		}
	} else if end < start {
		end += 2 * math.Pi
	}

	pts := make([][2]float64, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		a := start + float64(i)/float64(numSegments)*(end-start)
		pts = append(pts, [2]float64{cx + radius*math.Cos(a), cy + radius*math.Sin(a)})
	}
	return pts
}

// arcToPoints samples a DXF ARC, which always runs counter-clockwise from
// its start angle to its end angle in degrees.
func arcToPoints(a *entity.Arc, numSegments int) [][2]float64 {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([][2]float64, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		angle := startRad + float64(i)/float64(numSegments)*(endRad-startRad)
		pts[i] = [2]float64{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pts
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
