package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SheetFit/internal/project"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore config, inventory, profiles and job selections",
}

var backupExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write all application data to one JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		return exportBackup(cmd.OutOrStdout(), env, args[0])
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Restore application data from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		return importBackup(cmd.OutOrStdout(), env, args[0])
	},
}

func init() {
	backupCmd.AddCommand(backupExportCmd, backupImportCmd)
	rootCmd.AddCommand(backupCmd)
}

func exportBackup(w io.Writer, env *environment, path string) error {
	// the stored config, not the one with env overrides and profile applied
	cfg, err := project.LoadAppConfig(env.ConfigPath)
	if err != nil {
		return err
	}
	profiles, err := project.LoadCustomProfiles(env.profilesPath())
	if err != nil {
		return err
	}
	sels, err := env.selections().List()
	if err != nil {
		return err
	}

	backup := project.NewBackup(cfg, env.Inventory, profiles, sels)
	if err := project.ExportAllData(path, backup); err != nil {
		return err
	}
	fmt.Fprintf(w, "Backed up %d sheets, %d profiles, %d job selections to %s\n",
		len(backup.Inventory.Sheets), len(backup.Profiles), len(backup.Selections), path)
	return nil
}

// importBackup replaces config, inventory and custom profiles, and merges the
// job selections into the existing store.
func importBackup(w io.Writer, env *environment, path string) error {
	backup, err := project.ImportAllData(path)
	if err != nil {
		return err
	}

	if err := project.SaveAppConfig(env.ConfigPath, backup.Config); err != nil {
		return err
	}
	if err := project.SaveInventory(env.InventoryPath, backup.Inventory); err != nil {
		return err
	}
	if err := project.SaveCustomProfiles(env.profilesPath(), backup.Profiles); err != nil {
		return err
	}
	if err := project.RestoreSelections(env.selections(), backup); err != nil {
		return err
	}

	fmt.Fprintf(w, "Restored backup from %s (version %s, created %s)\n", path, backup.Version, backup.CreatedAt)
	return nil
}
