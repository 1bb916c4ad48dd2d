package model

import "testing"

func TestDimensionValid(t *testing.T) {
	cases := []struct {
		d    Dimension
		want bool
	}{
		{Dimension{4, 6}, true},
		{Dimension{0, 6}, false},
		{Dimension{4, -1}, false},
		{Dimension{0.01, 0.01}, true},
	}
	for _, c := range cases {
		if got := c.d.Valid(); got != c.want {
			t.Errorf("%v.Valid() = %v, want %v", c.d, got, c.want)
		}
	}
}

func TestDimensionRotatedAndArea(t *testing.T) {
	d := Dimension{Width: 4, Height: 6}
	r := d.Rotated()
	if r.Width != 6 || r.Height != 4 {
		t.Errorf("expected 6x4, got %v", r)
	}
	if d.Area() != 24 || r.Area() != 24 {
		t.Errorf("expected area 24, got %f / %f", d.Area(), r.Area())
	}
	if d.String() != "4x6" {
		t.Errorf("expected 4x6, got %s", d.String())
	}
}

func TestOptimizeResultEmpty(t *testing.T) {
	if !(OptimizeResult{}).Empty() {
		t.Error("zero result should be empty")
	}
	r := OptimizeResult{Suggestions: []Suggestion{{CandidateID: "a", UpsPerSheet: 1}}}
	if r.Empty() {
		t.Error("result with a suggestion should not be empty")
	}
}

func TestNewJobSelectionCopiesSuggestion(t *testing.T) {
	s := Suggestion{
		CandidateID:       "abc",
		Label:             "Art Card 20x30",
		Sheet:             Dimension{20, 30},
		UpsPerSheet:       25,
		WastagePercentage: 0,
		SheetsNeeded:      40,
	}
	sel := NewJobSelection("job-1", Dimension{4, 6}, 1000, s)

	if sel.JobID != "job-1" || sel.CandidateID != "abc" {
		t.Errorf("unexpected ids %s/%s", sel.JobID, sel.CandidateID)
	}
	if sel.UpsPerSheet != 25 || sel.SheetsNeeded != 40 {
		t.Errorf("unexpected counts %d/%d", sel.UpsPerSheet, sel.SheetsNeeded)
	}
	if sel.SelectedAt.IsZero() {
		t.Error("expected selection time to be set")
	}
}
