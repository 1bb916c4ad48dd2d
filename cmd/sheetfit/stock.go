package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/piwi3910/SheetFit/internal/importer"
	"github.com/piwi3910/SheetFit/internal/model"
	"github.com/piwi3910/SheetFit/internal/project"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Add stock sheets from a CSV or Excel file to the inventory",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportCmd,
}

var importDryRun bool

var dielineCmd = &cobra.Command{
	Use:   "dieline FILE",
	Short: "Report the piece size of a DXF dieline",
	Args:  cobra.ExactArgs(1),
	RunE:  runDielineCmd,
}

var dielineUnit string

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inspect and exchange the stock inventory",
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stock sheets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		printInventory(cmd.OutOrStdout(), env.Inventory)
		return nil
	},
}

var inventoryExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write the inventory to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		if err := project.ExportInventory(args[0], env.Inventory); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sheets to %s\n", len(env.Inventory.Sheets), args[0])
		return nil
	},
}

var inventoryImportCmd = &cobra.Command{
	Use:   "merge FILE",
	Short: "Merge sheets from an exported inventory JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		merged, err := project.ImportInventory(args[0], env.Inventory)
		if err != nil {
			return err
		}
		if err := project.SaveInventory(env.InventoryPath, merged); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d sheets (%d total)\n",
			len(merged.Sheets)-len(env.Inventory.Sheets), len(merged.Sheets))
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and report without saving")
	dielineCmd.Flags().StringVar(&dielineUnit, "unit", "in", "Drawing unit: in or mm")

	inventoryCmd.AddCommand(inventoryListCmd, inventoryExportCmd, inventoryImportCmd)
	rootCmd.AddCommand(importCmd, dielineCmd, inventoryCmd)
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	return runImport(cmd.OutOrStdout(), cmd.ErrOrStderr(), env, args[0], importDryRun)
}

// runImport merges the parsed stock into the inventory. Row problems are
// reported; the import fails only when nothing usable was found.
func runImport(out, errOut io.Writer, env *environment, path string, dryRun bool) error {
	res := importer.ImportFile(path)
	for _, w := range res.Warnings {
		fmt.Fprintf(errOut, "warning: %s\n", w)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(errOut, "error: %s\n", e)
	}
	if len(res.Items) == 0 {
		return fmt.Errorf("no stock sheets imported from %s", path)
	}

	merged := project.MergeInventory(env.Inventory, res.Items)
	klog.V(1).Infof("import %s: %d items, %d errors, %d warnings", path, len(res.Items), len(res.Errors), len(res.Warnings))

	if dryRun {
		printInventory(out, model.Inventory{Sheets: res.Items})
		return nil
	}
	if err := project.SaveInventory(env.InventoryPath, merged); err != nil {
		return err
	}
	env.Inventory = merged
	fmt.Fprintf(out, "Imported %d sheets into %s (%d total)\n", len(res.Items), env.InventoryPath, len(merged.Sheets))
	return nil
}

func runDielineCmd(cmd *cobra.Command, args []string) error {
	scale, err := unitScale(dielineUnit)
	if err != nil {
		return err
	}
	res := importer.ImportDieline(args[0], scale)
	for _, w := range res.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	if len(res.Errors) > 0 {
		return fmt.Errorf("dieline %s: %s", args[0], strings.Join(res.Errors, "; "))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s in (%d entities)\n", args[0], res.Piece.Dimension, res.Entities)
	return nil
}

func printInventory(w io.Writer, inv model.Inventory) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tSIZE\tGRADE\tGSM\tSTOCK\tUNIT COST")
	for _, c := range inv.Candidates() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g\t%d\t%s\n",
			c.ID, c.Label, c.Dimension, c.Quality.Grade, c.Quality.GSM, c.AvailableStock, c.UnitCost.StringFixed(2))
	}
	tw.Flush()
}
