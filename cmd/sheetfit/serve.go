package main

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/SheetFit/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes the optimizer, the packer, the inventory and job-card selections as JSON endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default $SHEETFIT_PORT or config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	cfg := env.Config
	if servePort > 0 {
		cfg.Port = servePort
	}

	srv := server.New(server.Config{
		App:        cfg,
		Inventory:  env.Inventory,
		Selections: env.selections(),
	})
	return srv.Start()
}
