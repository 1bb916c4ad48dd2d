package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SheetFit/internal/engine"
	"github.com/piwi3910/SheetFit/internal/importer"
	"github.com/piwi3910/SheetFit/internal/model"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Count how many copies of a piece fit on one sheet",
	RunE:  runPackCmd,
}

type packOptions struct {
	Piece      pieceOptions
	Sheet      string
	NoRotation bool
	Gutter     float64
	Margin     float64
	Placements bool
	JSON       bool
}

var packOpts packOptions

func init() {
	addPieceFlags(packCmd, &packOpts.Piece)
	packCmd.Flags().StringVarP(&packOpts.Sheet, "sheet", "s", "", "Sheet size as WIDTHxHEIGHT (required)")
	packCmd.Flags().BoolVar(&packOpts.NoRotation, "no-rotation", false, "Keep every piece in its given orientation")
	packCmd.Flags().Float64Var(&packOpts.Gutter, "gutter", -1, "Spacing between pieces (default from config)")
	packCmd.Flags().Float64Var(&packOpts.Margin, "margin", -1, "Trim on every sheet edge (default from config)")
	packCmd.Flags().BoolVar(&packOpts.Placements, "placements", false, "List every placed piece")
	packCmd.Flags().BoolVar(&packOpts.JSON, "json", false, "Print the result as JSON")

	if err := packCmd.MarkFlagRequired("sheet"); err != nil {
		panic(fmt.Sprintf("failed to mark sheet flag as required: %v", err))
	}

	rootCmd.AddCommand(packCmd)
}

func runPackCmd(cmd *cobra.Command, _ []string) error {
	configPath := resolveConfigPath(configFlag)
	cfg, _, err := loadConfig(configPath, profileFlag)
	if err != nil {
		return err
	}
	return runPack(cmd.OutOrStdout(), cfg, packOpts)
}

func runPack(w io.Writer, cfg model.AppConfig, opts packOptions) error {
	piece, err := resolvePiece(opts.Piece)
	if err != nil {
		return err
	}
	sw, sh, err := importer.ParseSize(opts.Sheet)
	if err != nil {
		return err
	}
	sheet := model.Dimension{Width: sw, Height: sh}

	settings := engine.SettingsFromConfig(cfg).Pack
	if opts.Gutter >= 0 {
		settings.Gutter = opts.Gutter
	}
	if opts.Margin >= 0 {
		settings.Margin = opts.Margin
	}
	rotate := cfg.AllowRotation && !opts.NoRotation

	result := engine.NewPacker(settings).CountFittingCopies(piece.Dimension, sheet, rotate)

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(w, "%s on %s: %s\n", piece.Dimension, sheet, result.LayoutDescription)
	if opts.Placements && len(result.Placements) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tX\tY\tW\tH\tROTATED")
		for i, p := range result.Placements {
			fmt.Fprintf(tw, "%d\t%g\t%g\t%g\t%g\t%v\n", i+1, p.X, p.Y, p.Width, p.Height, p.Rotated)
		}
		tw.Flush()
	}
	return nil
}
