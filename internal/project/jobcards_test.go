package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/piwi3910/SheetFit/internal/model"
)

func newTestStore(t *testing.T) *JobSelectionStore {
	t.Helper()
	return NewJobSelectionStore(filepath.Join(t.TempDir(), "selections.json"))
}

func TestJobSelectionStoreSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	s := model.Suggestion{CandidateID: "abc", Sheet: model.Dimension{Width: 20, Height: 30}, UpsPerSheet: 25, WastagePercentage: 0, SheetsNeeded: 40}
	sel := model.NewJobSelection("JC-100", model.Dimension{Width: 4, Height: 6}, 1000, s)

	if err := store.Save(sel); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get("JC-100")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.CandidateID != "abc" || got.UpsPerSheet != 25 || got.SheetsNeeded != 40 {
		t.Errorf("unexpected selection: %+v", got)
	}
	if !got.SelectedAt.Equal(sel.SelectedAt) {
		t.Errorf("SelectedAt mismatch: %v vs %v", got.SelectedAt, sel.SelectedAt)
	}
}

func TestJobSelectionStoreReplace(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(model.JobSelection{JobID: "JC-1", SheetsNeeded: 10}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(model.JobSelection{JobID: "JC-1", SheetsNeeded: 7}); err != nil {
		t.Fatal(err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].SheetsNeeded != 7 {
		t.Errorf("expected single replaced selection, got %+v", list)
	}
}

func TestJobSelectionStoreGetMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get("JC-404")
	if !errors.Is(err, ErrSelectionNotFound) {
		t.Errorf("expected ErrSelectionNotFound, got %v", err)
	}
}

func TestJobSelectionStoreRejectsEmptyJobID(t *testing.T) {
	if err := newTestStore(t).Save(model.JobSelection{}); err == nil {
		t.Fatal("expected error for empty job id")
	}
}

func TestJobSelectionStoreDelete(t *testing.T) {
	store := newTestStore(t)
	for _, id := range []string{"JC-1", "JC-2"} {
		if err := store.Save(model.JobSelection{JobID: id}); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Delete("JC-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete("JC-missing"); err != nil {
		t.Fatalf("Delete of missing job failed: %v", err)
	}
	list, _ := store.List()
	if len(list) != 1 || list[0].JobID != "JC-2" {
		t.Errorf("unexpected selections: %+v", list)
	}
}

func TestJobSelectionStoreConcurrentSaves(t *testing.T) {
	store := newTestStore(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := store.Save(model.JobSelection{JobID: fmt.Sprintf("JC-%02d", i)}); err != nil {
				t.Errorf("Save failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	list, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 20 {
		t.Errorf("expected 20 selections, got %d", len(list))
	}
}
