// Package main provides the sheetfit command line tool: master-sheet
// optimization for print jobs, stock import and the HTTP API server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var rootCmd = &cobra.Command{
	Use:   "sheetfit",
	Short: "Master-sheet optimizer for print jobs",
	Long: "sheetfit finds the master sheet from stock that yields the most copies of a cut piece " +
		"with the least waste, and serves the same optimizer over HTTP.",
	SilenceUsage: true,
}

func init() {
	klog.InitFlags(nil)
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default $SHEETFIT_CONFIG or ~/.sheetfit/config.json)")
	rootCmd.PersistentFlags().StringVar(&inventoryFlag, "inventory", "", "Inventory file (default $SHEETFIT_INVENTORY or next to the config)")
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "Press profile applied on top of the config (e.g. Offset)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	klog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
