package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SheetFit/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.Gutter = 0.2
	cfg.Port = 7000
	inv := model.DefaultInventory()
	profiles := []model.PressProfile{{Name: "Custom", Margin: 0.3}}
	selections := []model.JobSelection{{JobID: "JC-1", CandidateID: inv.Sheets[0].ID, UpsPerSheet: 25}}

	if err := ExportAllData(path, NewBackup(cfg, inv, profiles, selections)); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.Gutter != 0.2 || backup.Config.Port != 7000 {
		t.Errorf("config mismatch: %+v", backup.Config)
	}
	if len(backup.Inventory.Sheets) != len(inv.Sheets) {
		t.Errorf("expected %d sheets, got %d", len(inv.Sheets), len(backup.Inventory.Sheets))
	}
	if len(backup.Profiles) != 1 || backup.Profiles[0].Name != "Custom" {
		t.Errorf("profiles mismatch: %+v", backup.Profiles)
	}
	if len(backup.Selections) != 1 || backup.Selections[0].UpsPerSheet != 25 {
		t.Errorf("selections mismatch: %+v", backup.Selections)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestImportAllDataMinimal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.json")
	if err := os.WriteFile(path, []byte(`{"version":"1.0.0"}`), 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config != model.DefaultAppConfig() {
		t.Errorf("expected default config, got %+v", backup.Config)
	}
	if backup.Inventory.Sheets == nil || backup.Profiles == nil || backup.Selections == nil {
		t.Error("expected non-nil collections")
	}
}

func TestRestoreSelections(t *testing.T) {
	store := NewJobSelectionStore(filepath.Join(t.TempDir(), "selections.json"))
	backup := NewBackup(model.DefaultAppConfig(), model.Inventory{}, nil, []model.JobSelection{
		{JobID: "JC-2", SheetsNeeded: 4},
		{JobID: "JC-1", SheetsNeeded: 9},
	})

	if err := RestoreSelections(store, backup); err != nil {
		t.Fatalf("RestoreSelections failed: %v", err)
	}
	list, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].JobID != "JC-1" {
		t.Errorf("unexpected selections: %+v", list)
	}
}
