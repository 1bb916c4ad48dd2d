package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"k8s.io/klog/v2"

	"github.com/piwi3910/SheetFit/internal/model"
	"github.com/piwi3910/SheetFit/internal/project"
)

// Environment variables that override the config file.
const (
	envConfig    = "SHEETFIT_CONFIG"
	envInventory = "SHEETFIT_INVENTORY"
	envPort      = "SHEETFIT_PORT"
)

var (
	configFlag    string
	inventoryFlag string
	profileFlag   string
)

// environment is the resolved configuration shared by every subcommand.
// Data files live next to the config file.
type environment struct {
	ConfigPath    string
	Config        model.AppConfig
	InventoryPath string
	Inventory     model.Inventory
	Profile       *model.PressProfile
}

func (e *environment) dataPath(name string) string {
	return filepath.Join(filepath.Dir(e.ConfigPath), name)
}

func (e *environment) profilesPath() string   { return e.dataPath("profiles.json") }
func (e *environment) selectionsPath() string { return e.dataPath("selections.json") }

func (e *environment) selections() *project.JobSelectionStore {
	return project.NewJobSelectionStore(e.selectionsPath())
}

// resolveConfigPath picks the flag, then $SHEETFIT_CONFIG, then the default.
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envConfig); v != "" {
		return v
	}
	return project.DefaultConfigPath()
}

// loadConfig reads the config file, applies environment overrides and the
// named press profile, and normalizes the result.
func loadConfig(path, profileName string) (model.AppConfig, *model.PressProfile, error) {
	cfg, err := project.LoadAppConfig(path)
	if err != nil {
		return model.AppConfig{}, nil, err
	}

	if v := os.Getenv(envInventory); v != "" {
		cfg.InventoryPath = v
	}
	if v := os.Getenv(envPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return model.AppConfig{}, nil, fmt.Errorf("invalid %s %q: %w", envPort, v, err)
		}
		cfg.Port = port
	}

	var applied *model.PressProfile
	if profileName != "" {
		profiles, err := project.AllProfiles(filepath.Join(filepath.Dir(path), "profiles.json"))
		if err != nil {
			return model.AppConfig{}, nil, err
		}
		p, ok := model.FindProfile(profiles, profileName)
		if !ok {
			return model.AppConfig{}, nil, fmt.Errorf("unknown press profile %q", profileName)
		}
		cfg = p.Apply(cfg)
		applied = &p
	}

	return cfg.Normalize(), applied, nil
}

// loadEnvironment resolves config and inventory from flags, environment and
// defaults. A missing inventory file is created with the default stock.
func loadEnvironment() (*environment, error) {
	env := &environment{ConfigPath: resolveConfigPath(configFlag)}

	cfg, profile, err := loadConfig(env.ConfigPath, profileFlag)
	if err != nil {
		return nil, err
	}
	env.Config = cfg
	env.Profile = profile

	invPath := inventoryFlag
	if invPath == "" {
		invPath = cfg.InventoryPath
	}
	if invPath == "" {
		invPath = env.dataPath("inventory.json")
	}
	inv, used, err := project.LoadOrCreateInventory(invPath)
	if err != nil {
		return nil, err
	}
	env.Inventory = inv
	env.InventoryPath = used

	klog.V(1).Infof("config %s, inventory %s (%d sheets)", env.ConfigPath, env.InventoryPath, len(inv.Sheets))
	return env, nil
}
