package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/piwi3910/SheetFit/internal/model"
)

// ErrSelectionNotFound is returned when a job has no recorded sheet selection.
var ErrSelectionNotFound = errors.New("job selection not found")

// DefaultSelectionsPath returns the default file path for job selections.
func DefaultSelectionsPath() string {
	return filepath.Join(DefaultConfigDir(), "selections.json")
}

type selectionFile struct {
	Selections []model.JobSelection `json:"selections"`
}

// JobSelectionStore keeps the sheet chosen for each job card in a JSON file.
// It is safe for concurrent use within one process.
type JobSelectionStore struct {
	path string
	mu   sync.Mutex
}

// NewJobSelectionStore returns a store backed by the file at path. The file is
// created on the first Save.
func NewJobSelectionStore(path string) *JobSelectionStore {
	return &JobSelectionStore{path: path}
}

// Path returns the backing file path.
func (s *JobSelectionStore) Path() string {
	return s.path
}

// Save records sel, replacing any earlier selection for the same job.
func (s *JobSelectionStore) Save(sel model.JobSelection) error {
	if sel.JobID == "" {
		return errors.New("job selection has no job id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	replaced := false
	for i := range all {
		if all[i].JobID == sel.JobID {
			all[i] = sel
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, sel)
	}
	return writeJSON(s.path, selectionFile{Selections: all})
}

// Get returns the selection for jobID or ErrSelectionNotFound.
func (s *JobSelectionStore) Get(jobID string) (model.JobSelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return model.JobSelection{}, err
	}
	for _, sel := range all {
		if sel.JobID == jobID {
			return sel, nil
		}
	}
	return model.JobSelection{}, fmt.Errorf("%w: %s", ErrSelectionNotFound, jobID)
}

// List returns every selection ordered by job id.
func (s *JobSelectionStore) List() ([]model.JobSelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].JobID < all[j].JobID })
	return all, nil
}

// Delete removes the selection for jobID. Deleting a missing job is not an error.
func (s *JobSelectionStore) Delete(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, sel := range all {
		if sel.JobID != jobID {
			kept = append(kept, sel)
		}
	}
	return writeJSON(s.path, selectionFile{Selections: kept})
}

func (s *JobSelectionStore) load() ([]model.JobSelection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.JobSelection{}, nil
		}
		return nil, fmt.Errorf("failed to read selections: %w", err)
	}
	var f selectionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse selections %s: %w", s.path, err)
	}
	if f.Selections == nil {
		f.Selections = []model.JobSelection{}
	}
	return f.Selections, nil
}
