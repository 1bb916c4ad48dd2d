package engine

import (
	"math"
	"strings"

	"github.com/piwi3910/SheetFit/internal/model"
)

// QualityFilter selects candidates whose paper matches a job's grade and weight.
// An empty Grade or a zero GSM matches anything.
type QualityFilter struct {
	Grade        string  `json:"grade,omitempty"`
	GSM          float64 `json:"gsm,omitempty"`
	GSMTolerance float64 `json:"gsm_tolerance,omitempty"`
}

// Matches reports whether q satisfies the filter.
func (f QualityFilter) Matches(q model.PaperQuality) bool {
	if f.Grade != "" && !strings.EqualFold(strings.TrimSpace(f.Grade), strings.TrimSpace(q.Grade)) {
		return false
	}
	if f.GSM > 0 && q.GSM > 0 && math.Abs(f.GSM-q.GSM) > f.GSMTolerance {
		return false
	}
	return true
}

// FilterCandidates returns the candidates that match f, preserving order.
func FilterCandidates(candidates []model.SheetCandidate, f QualityFilter) []model.SheetCandidate {
	out := make([]model.SheetCandidate, 0, len(candidates))
	for _, c := range candidates {
		if f.Matches(c.Quality) {
			out = append(out, c)
		}
	}
	return out
}
