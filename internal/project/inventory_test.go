package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/SheetFit/internal/model"
	"github.com/piwi3910/SheetFit/internal/schemas"
)

func TestDefaultInventoryPath(t *testing.T) {
	path := DefaultInventoryPath()
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
	if dir := filepath.Base(filepath.Dir(path)); dir != ".sheetfit" {
		t.Errorf("expected parent dir .sheetfit, got %s", dir)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	item := model.NewStockItem("Art Card 20x30", 20, 30, "Art Card", 300, 500)
	item.UnitCost = decimal.RequireFromString("12.75")
	inv := model.Inventory{Sheets: []model.StockItem{item}}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(loaded.Sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(loaded.Sheets))
	}
	got := loaded.Sheets[0]
	if got.ID != item.ID || got.Label != item.Label || got.Width != 20 || got.Height != 30 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.UnitCost.Equal(item.UnitCost) {
		t.Errorf("expected unit cost %s, got %s", item.UnitCost, got.UnitCost)
	}
}

func TestLoadInventoryMissingFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Sheets) != len(model.DefaultInventory().Sheets) {
		t.Errorf("expected default inventory, got %d sheets", len(inv.Sheets))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected default inventory to be saved: %v", err)
	}

	// The saved defaults must pass schema validation on reload.
	if _, err := LoadInventory(path); err != nil {
		t.Fatalf("reloading defaults failed: %v", err)
	}
}

func TestLoadInventoryRejectsSchemaViolations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	data := `{"sheets":[{"id":"x","label":"bad","width":-20,"height":30,"stock":1}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadInventory(path)
	if err == nil {
		t.Fatal("expected schema error")
	}
	var validationErr *schemas.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError in chain, got %v", err)
	}
}

func TestLoadOrCreateInventoryExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inv.json")
	_, used, err := LoadOrCreateInventory(path)
	if err != nil {
		t.Fatalf("LoadOrCreateInventory failed: %v", err)
	}
	if used != path {
		t.Errorf("expected path %s, got %s", path, used)
	}
}

func TestImportInventoryMergesByID(t *testing.T) {
	dir := t.TempDir()
	importPath := filepath.Join(dir, "import.json")

	shared := model.NewStockItem("Shared", 20, 30, "", 0, 10)
	fresh := model.NewStockItem("Fresh", 12, 18, "", 0, 5)
	existing := model.Inventory{Sheets: []model.StockItem{shared}}

	if err := ExportInventory(importPath, model.Inventory{Sheets: []model.StockItem{shared, fresh}}); err != nil {
		t.Fatalf("ExportInventory failed: %v", err)
	}

	merged, err := ImportInventory(importPath, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if len(merged.Sheets) != 2 {
		t.Fatalf("expected 2 sheets after merge, got %d", len(merged.Sheets))
	}
	if merged.FindByID(fresh.ID) == nil {
		t.Error("expected imported sheet to be present")
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	got, err := ImportInventory(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(got.Sheets) != len(existing.Sheets) {
		t.Error("existing inventory should be returned unchanged")
	}
}

func TestMergeInventoryDeduplicatesImportedItems(t *testing.T) {
	a := model.NewStockItem("A", 10, 10, "", 0, 1)
	merged := MergeInventory(model.Inventory{}, []model.StockItem{a, a})
	if len(merged.Sheets) != 1 {
		t.Errorf("expected 1 sheet, got %d", len(merged.Sheets))
	}
}
