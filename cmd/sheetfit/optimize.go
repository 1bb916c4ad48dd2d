package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/piwi3910/SheetFit/internal/engine"
	"github.com/piwi3910/SheetFit/internal/export"
	"github.com/piwi3910/SheetFit/internal/importer"
	"github.com/piwi3910/SheetFit/internal/model"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rank stock master sheets for a job",
	Long: "Packs the cut piece onto every inventory sheet, ranks the sheets by wastage and sheet count, " +
		"and marks the optimal choice. The piece comes from --piece, --width/--height or a DXF --dieline.",
	RunE: runOptimizeCmd,
}

// pieceOptions selects the cut piece from flags.
type pieceOptions struct {
	Size    string
	Width   float64
	Height  float64
	Dieline string
	Unit    string
}

type optimizeOptions struct {
	Piece        pieceOptions
	Quantity     int
	Grade        string
	GSM          float64
	GSMTolerance float64
	NoRotation   bool
	Tolerance    float64
	Export       string
	Compare      bool
	JSON         bool
	JobID        string
	SheetID      string
}

var optimizeOpts optimizeOptions

func init() {
	addPieceFlags(optimizeCmd, &optimizeOpts.Piece)
	optimizeCmd.Flags().IntVarP(&optimizeOpts.Quantity, "qty", "q", 0, "Number of copies required (required)")
	optimizeCmd.Flags().StringVar(&optimizeOpts.Grade, "grade", "", "Only consider sheets of this paper grade")
	optimizeCmd.Flags().Float64Var(&optimizeOpts.GSM, "gsm", 0, "Only consider sheets of this weight")
	optimizeCmd.Flags().Float64Var(&optimizeOpts.GSMTolerance, "gsm-tolerance", 0, "Allowed GSM difference (default from config)")
	optimizeCmd.Flags().BoolVar(&optimizeOpts.NoRotation, "no-rotation", false, "Keep every piece in its given orientation")
	optimizeCmd.Flags().Float64Var(&optimizeOpts.Tolerance, "tolerance", -1, "Wastage tolerance in percentage points (default from config)")
	optimizeCmd.Flags().StringVarP(&optimizeOpts.Export, "export", "o", "", "Write the ranked suggestions to an .xlsx file")
	optimizeCmd.Flags().BoolVar(&optimizeOpts.Compare, "compare", false, "Also run what-if scenarios (rotation, gutter, margin)")
	optimizeCmd.Flags().BoolVar(&optimizeOpts.JSON, "json", false, "Print the result as JSON")
	optimizeCmd.Flags().StringVar(&optimizeOpts.JobID, "job", "", "Record the chosen sheet on this job card")
	optimizeCmd.Flags().StringVar(&optimizeOpts.SheetID, "sheet", "", "With --job, record this sheet instead of the optimal one")

	if err := optimizeCmd.MarkFlagRequired("qty"); err != nil {
		panic(fmt.Sprintf("failed to mark qty flag as required: %v", err))
	}

	rootCmd.AddCommand(optimizeCmd)
}

func addPieceFlags(cmd *cobra.Command, p *pieceOptions) {
	cmd.Flags().StringVarP(&p.Size, "piece", "p", "", "Piece size as WIDTHxHEIGHT, e.g. 3x3")
	cmd.Flags().Float64Var(&p.Width, "width", 0, "Piece width")
	cmd.Flags().Float64Var(&p.Height, "height", 0, "Piece height")
	cmd.Flags().StringVar(&p.Dieline, "dieline", "", "Read the piece size from a DXF dieline")
	cmd.Flags().StringVar(&p.Unit, "unit", "in", "Dieline drawing unit: in or mm")
}

func runOptimizeCmd(cmd *cobra.Command, _ []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	return runOptimize(cmd.OutOrStdout(), env, optimizeOpts)
}

// resolvePiece builds the piece from exactly one of the size sources.
func resolvePiece(p pieceOptions) (model.PieceSpec, error) {
	switch {
	case p.Dieline != "":
		scale, err := unitScale(p.Unit)
		if err != nil {
			return model.PieceSpec{}, err
		}
		res := importer.ImportDieline(p.Dieline, scale)
		for _, w := range res.Warnings {
			klog.Warningf("dieline %s: %s", p.Dieline, w)
		}
		if len(res.Errors) > 0 {
			return model.PieceSpec{}, fmt.Errorf("dieline %s: %s", p.Dieline, strings.Join(res.Errors, "; "))
		}
		return res.Piece, nil

	case p.Size != "":
		w, h, err := importer.ParseSize(p.Size)
		if err != nil {
			return model.PieceSpec{}, err
		}
		return model.NewPieceSpec(w, h), nil

	case p.Width != 0 || p.Height != 0:
		return model.NewPieceSpec(p.Width, p.Height), nil
	}
	return model.PieceSpec{}, fmt.Errorf("no piece given: use --piece, --width/--height or --dieline")
}

func unitScale(unit string) (float64, error) {
	switch strings.ToLower(unit) {
	case "", "in", "inch", "inches":
		return importer.UnitInches, nil
	case "mm", "millimetre", "millimeter":
		return importer.UnitMillimetres, nil
	}
	return 0, fmt.Errorf("unknown unit %q (use in or mm)", unit)
}

func optimizerSettings(cfg model.AppConfig, noRotation bool, tolerance float64) engine.OptimizerSettings {
	settings := engine.SettingsFromConfig(cfg)
	if noRotation {
		settings.AllowRotation = false
	}
	if tolerance >= 0 {
		settings.WastageTolerance = tolerance
	}
	return settings
}

func runOptimize(w io.Writer, env *environment, opts optimizeOptions) error {
	piece, err := resolvePiece(opts.Piece)
	if err != nil {
		return err
	}
	if !piece.Valid() {
		return fmt.Errorf("piece %s must have positive width and height", piece.Dimension)
	}

	candidates := env.Inventory.Candidates()
	if opts.Grade != "" || opts.GSM > 0 {
		f := engine.QualityFilter{Grade: opts.Grade, GSM: opts.GSM, GSMTolerance: opts.GSMTolerance}
		if f.GSMTolerance <= 0 {
			f.GSMTolerance = env.Config.GSMTolerance
		}
		candidates = engine.FilterCandidates(candidates, f)
		klog.V(1).Infof("quality filter kept %d of %d sheets", len(candidates), len(env.Inventory.Sheets))
	}

	settings := optimizerSettings(env.Config, opts.NoRotation, opts.Tolerance)
	result := engine.New(settings).Optimize(piece, opts.Quantity, candidates)

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		printSuggestions(w, piece, opts.Quantity, result)
	}

	if opts.Compare {
		scenarios := engine.BuildDefaultScenarios(settings)
		printComparison(w, engine.CompareScenarios(scenarios, piece, opts.Quantity, candidates))
	}

	if opts.Export != "" {
		job := export.Job{Piece: piece, RequestedQuantity: opts.Quantity}
		if err := export.ExportSuggestionsXLSX(opts.Export, job, result); err != nil {
			return fmt.Errorf("failed to export %s: %w", opts.Export, err)
		}
		fmt.Fprintf(w, "\nWrote %s\n", opts.Export)
	}

	if opts.JobID != "" {
		return recordSelection(w, env, opts, piece, result)
	}
	return nil
}

func recordSelection(w io.Writer, env *environment, opts optimizeOptions, piece model.PieceSpec, result model.OptimizeResult) error {
	chosen := result.Optimal
	if opts.SheetID != "" {
		chosen = nil
		for i := range result.Suggestions {
			if result.Suggestions[i].CandidateID == opts.SheetID {
				chosen = &result.Suggestions[i]
				break
			}
		}
		if chosen == nil {
			return fmt.Errorf("sheet %s is not among the suggestions", opts.SheetID)
		}
	}
	if chosen == nil {
		return fmt.Errorf("nothing to record for job %s: no sheet fits", opts.JobID)
	}

	sel := model.NewJobSelection(opts.JobID, piece.Dimension, opts.Quantity, *chosen)
	if err := env.selections().Save(sel); err != nil {
		return err
	}

	var unitCost decimal.Decimal
	if item := env.Inventory.FindByID(chosen.CandidateID); item != nil {
		unitCost = item.UnitCost
	}
	est := model.EstimatePurchase(*chosen, unitCost, env.Config.SpoilagePercent)

	fmt.Fprintf(w, "\nJob %s: %s (%s), %d sheets", sel.JobID, chosen.Label, chosen.Sheet, chosen.SheetsNeeded)
	if est.SpoilageSheets > 0 {
		fmt.Fprintf(w, " + %d overs", est.SpoilageSheets)
	}
	if est.SheetsToOrder > 0 {
		fmt.Fprintf(w, ", order %d", est.SheetsToOrder)
	}
	if !est.EstimatedCost.IsZero() {
		fmt.Fprintf(w, ", est. cost %s", est.EstimatedCost.StringFixed(2))
	}
	fmt.Fprintln(w)
	return nil
}

func printSuggestions(w io.Writer, piece model.PieceSpec, qty int, result model.OptimizeResult) {
	fmt.Fprintf(w, "Piece %s, %d copies\n", piece.Dimension, qty)
	if result.Empty() {
		fmt.Fprintln(w, "No stock sheet can hold this piece.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tSHEET\tSIZE\tGRADE\tGSM\tUPS\tWASTAGE\tSHEETS\tSTOCK\tSHORT\tCOST\tLAYOUT")
	for _, s := range result.Suggestions {
		mark := ""
		if result.Optimal != nil && s.CandidateID == result.Optimal.CandidateID {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g\t%d\t%.2f%%\t%d\t%d\t%d\t%s\t%s\n",
			mark, s.Label, s.Sheet, s.Quality.Grade, s.Quality.GSM, s.UpsPerSheet,
			s.WastagePercentage, s.SheetsNeeded, s.AvailableStock, s.Shortfall,
			s.MaterialCost.StringFixed(2), s.LayoutDescription)
	}
	tw.Flush()
}

func printComparison(w io.Writer, results []engine.ComparisonResult) {
	fmt.Fprintln(w, "\nWhat-if scenarios")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tFITTED\tBEST SHEET\tUPS\tSHEETS\tWASTAGE")
	for _, r := range results {
		best := "-"
		if r.Result.Optimal != nil {
			best = r.Result.Optimal.Label
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\t%.2f%%\n",
			r.Scenario.Name, r.CandidatesFitted, best, r.UpsPerSheet, r.SheetsNeeded, r.WastagePercentage)
	}
	tw.Flush()
}
