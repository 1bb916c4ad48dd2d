package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/SheetFit/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version    string               `json:"version"`
	CreatedAt  string               `json:"created_at"`
	Config     model.AppConfig      `json:"config"`
	Inventory  model.Inventory      `json:"inventory"`
	Profiles   []model.PressProfile `json:"profiles"`
	Selections []model.JobSelection `json:"selections"`
}

// NewBackup assembles a backup stamped with the current time.
func NewBackup(config model.AppConfig, inv model.Inventory, profiles []model.PressProfile, selections []model.JobSelection) BackupData {
	if profiles == nil {
		profiles = []model.PressProfile{}
	}
	if selections == nil {
		selections = []model.JobSelection{}
	}
	if inv.Sheets == nil {
		inv.Sheets = []model.StockItem{}
	}
	return BackupData{
		Version:    BackupVersion,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Config:     config,
		Inventory:  inv,
		Profiles:   profiles,
		Selections: selections,
	}
}

// ExportAllData writes backup to a single JSON file at exportPath.
func ExportAllData(exportPath string, backup BackupData) error {
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported data.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	backup.Config = backup.Config.Normalize()
	if backup.Inventory.Sheets == nil {
		backup.Inventory.Sheets = []model.StockItem{}
	}
	if backup.Profiles == nil {
		backup.Profiles = []model.PressProfile{}
	}
	if backup.Selections == nil {
		backup.Selections = []model.JobSelection{}
	}
	return backup, nil
}

// RestoreSelections writes every selection in backup into store.
func RestoreSelections(store *JobSelectionStore, backup BackupData) error {
	for _, sel := range backup.Selections {
		if err := store.Save(sel); err != nil {
			return fmt.Errorf("failed to restore selection %s: %w", sel.JobID, err)
		}
	}
	return nil
}
