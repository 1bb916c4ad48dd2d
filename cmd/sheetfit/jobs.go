package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SheetFit/internal/model"
	"github.com/piwi3910/SheetFit/internal/project"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Show the sheets recorded on job cards",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded selections",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sels, err := jobStore().List()
		if err != nil {
			return err
		}
		printSelections(cmd.OutOrStdout(), sels)
		return nil
	},
}

var jobsShowCmd = &cobra.Command{
	Use:   "show JOB",
	Short: "Show the selection of one job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := jobStore().Get(args[0])
		if err != nil {
			return err
		}
		printSelections(cmd.OutOrStdout(), []model.JobSelection{sel})
		return nil
	},
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete JOB",
	Short: "Forget the selection of one job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return jobStore().Delete(args[0])
	},
}

func init() {
	jobsCmd.AddCommand(jobsListCmd, jobsShowCmd, jobsDeleteCmd)
	rootCmd.AddCommand(jobsCmd)
}

func jobStore() *project.JobSelectionStore {
	env := &environment{ConfigPath: resolveConfigPath(configFlag)}
	return env.selections()
}

func printSelections(w io.Writer, sels []model.JobSelection) {
	if len(sels) == 0 {
		fmt.Fprintln(w, "No job selections recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tSHEET\tSIZE\tPIECE\tQTY\tUPS\tWASTAGE\tSHEETS\tSELECTED")
	for _, s := range sels {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%.2f%%\t%d\t%s\n",
			s.JobID, s.Label, s.Sheet, s.Piece, s.RequestedQuantity, s.UpsPerSheet,
			s.WastagePercentage, s.SheetsNeeded, s.SelectedAt.Format("2006-01-02 15:04"))
	}
	tw.Flush()
}
