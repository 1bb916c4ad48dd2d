package model

import "time"

// JobSelection records the master sheet a user picked for a job card.
type JobSelection struct {
	JobID             string    `json:"job_id"`
	CandidateID       string    `json:"candidate_id"`
	Label             string    `json:"label,omitempty"`
	Sheet             Dimension `json:"sheet"`
	Piece             Dimension `json:"piece"`
	RequestedQuantity int       `json:"requested_quantity"`
	UpsPerSheet       int       `json:"ups_per_sheet"`
	WastagePercentage float64   `json:"wastage_percentage"`
	SheetsNeeded      int       `json:"sheets_needed"`
	SelectedAt        time.Time `json:"selected_at"`
}

// NewJobSelection copies the fields a job card keeps from a suggestion.
func NewJobSelection(jobID string, piece Dimension, qty int, s Suggestion) JobSelection {
	return JobSelection{
		JobID:             jobID,
		CandidateID:       s.CandidateID,
		Label:             s.Label,
		Sheet:             s.Sheet,
		Piece:             piece,
		RequestedQuantity: qty,
		UpsPerSheet:       s.UpsPerSheet,
		WastagePercentage: s.WastagePercentage,
		SheetsNeeded:      s.SheetsNeeded,
		SelectedAt:        time.Now().UTC(),
	}
}
