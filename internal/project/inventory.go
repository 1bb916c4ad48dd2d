package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/SheetFit/internal/model"
	"github.com/piwi3910/SheetFit/internal/schemas"
)

// DefaultInventoryPath returns the default file path for the inventory file.
// This is located at ~/.sheetfit/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	if inv.Sheets == nil {
		inv.Sheets = []model.StockItem{}
	}
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory from the specified JSON file, validating
// it against the inventory schema first.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, fmt.Errorf("failed to read inventory: %w", err)
	}
	return decodeInventory(path, data)
}

func decodeInventory(path string, data []byte) (model.Inventory, error) {
	if err := schemas.ValidateInventory(data); err != nil {
		return model.Inventory{}, fmt.Errorf("invalid inventory file %s: %w", path, err)
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, fmt.Errorf("failed to parse inventory %s: %w", path, err)
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory from path, or from the default
// path when path is empty. A missing file is created with default entries.
func LoadOrCreateInventory(path string) (model.Inventory, string, error) {
	if path == "" {
		path = DefaultInventoryPath()
	}
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ExportInventory exports the inventory to a user-specified JSON file.
func ExportInventory(path string, inv model.Inventory) error {
	return SaveInventory(path, inv)
}

// ImportInventory imports an inventory from a user-specified JSON file,
// merging it with the existing inventory. Duplicate IDs are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, fmt.Errorf("failed to read inventory: %w", err)
	}
	imported, err := decodeInventory(path, data)
	if err != nil {
		return existing, err
	}
	return MergeInventory(existing, imported.Sheets), nil
}

// MergeInventory appends items whose IDs are not already present.
func MergeInventory(existing model.Inventory, items []model.StockItem) model.Inventory {
	ids := make(map[string]bool, len(existing.Sheets))
	for _, s := range existing.Sheets {
		ids[s.ID] = true
	}
	for _, s := range items {
		if !ids[s.ID] {
			existing.Sheets = append(existing.Sheets, s)
			ids[s.ID] = true
		}
	}
	return existing
}
