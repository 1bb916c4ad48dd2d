package engine

// maxRectsPacker keeps a list of maximal free rectangles and splits every
// overlapping one around each placed piece. Coordinates are scaled integers,
// so no epsilon is needed.
type maxRectsPacker struct {
	freeRects []rect
}

type rect struct {
	x, y, w, h int64
}

func newMaxRectsPacker(initialRects []rect) *maxRectsPacker {
	return &maxRectsPacker{freeRects: initialRects}
}

// insert places a w x h footprint using Best Area Fit and returns its
// top-left corner.
func (mp *maxRectsPacker) insert(w, h int64) (bool, int64, int64) {
	bestIdx := mp.bestFit(w, h)
	if bestIdx < 0 {
		return false, 0, 0
	}

	chosen := mp.freeRects[bestIdx]
	mp.splitAroundPlacement(rect{x: chosen.x, y: chosen.y, w: w, h: h})
	return true, chosen.x, chosen.y
}

// bestFit returns the index of the free rect that leaves the least area after
// placing w x h, or -1. Ties keep the earliest rect.
func (mp *maxRectsPacker) bestFit(w, h int64) int {
	bestIdx := -1
	var bestAreaFit int64
	for i, r := range mp.freeRects {
		if w > r.w || h > r.h {
			continue
		}
		areaFit := r.w*r.h - w*h
		if bestIdx < 0 || areaFit < bestAreaFit {
			bestIdx = i
			bestAreaFit = areaFit
		}
	}
	return bestIdx
}

// splitAroundPlacement replaces every free rect that overlaps placed by up to
// four strips of the part that is still free, then drops contained rects.
func (mp *maxRectsPacker) splitAroundPlacement(placed rect) {
	var newRects []rect

	for _, r := range mp.freeRects {
		if !rectsOverlap(r, placed) {
			newRects = append(newRects, r)
			continue
		}

		// Left strip
		if placed.x > r.x {
			newRects = append(newRects, rect{x: r.x, y: r.y, w: placed.x - r.x, h: r.h})
		}
		// Right strip
		if placed.x+placed.w < r.x+r.w {
			newRects = append(newRects, rect{
				x: placed.x + placed.w, y: r.y,
				w: (r.x + r.w) - (placed.x + placed.w), h: r.h,
			})
		}
		// Top strip
		if placed.y > r.y {
			newRects = append(newRects, rect{x: r.x, y: r.y, w: r.w, h: placed.y - r.y})
		}
		// Bottom strip
		if placed.y+placed.h < r.y+r.h {
			newRects = append(newRects, rect{
				x: r.x, y: placed.y + placed.h,
				w: r.w, h: (r.y + r.h) - (placed.y + placed.h),
			})
		}
	}

	mp.freeRects = pruneContained(newRects)
}

// rectsOverlap returns true if two rectangles overlap (not just touch).
func rectsOverlap(a, b rect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

// pruneContained removes any rect that is fully contained within another.
// Of two identical rects the first is kept.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !containsRect(b, a) {
				continue
			}
			if a == b && j > i {
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x && outer.y <= inner.y &&
		outer.x+outer.w >= inner.x+inner.w &&
		outer.y+outer.h >= inner.y+inner.h
}
