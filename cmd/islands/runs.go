package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	runsLimit  int
	runsShow   string
	runsDelete string
)

func init() {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored discovery runs",
		Long: `List the most recent runs stored in the history database, newest first.
With --show, print the recolors of one run; with --delete, remove a run and
its recolors.

Examples:
  islands runs --db data/islands.db
  islands runs --db data/islands.db -n 5
  islands runs --db data/islands.db --show 0f8c...
  islands runs --db data/islands.db --delete 0f8c...`,
		Args: cobra.NoArgs,
		RunE: runRuns,
	}

	runsCmd.Flags().IntVarP(&runsLimit, "number", "n", 20, "Number of runs to list")
	runsCmd.Flags().StringVar(&runsShow, "show", "", "Run ID whose recolors to print")
	runsCmd.Flags().StringVar(&runsDelete, "delete", "", "Run ID to remove from the history")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	if db == nil {
		return errors.New("--db is required")
	}
	defer db.Close()

	out := cmd.OutOrStdout()

	if runsDelete != "" && runsShow != "" {
		return errors.New("--show and --delete cannot be used together")
	}
	if runsDelete != "" {
		if err := db.DeleteRun(runsDelete); err != nil {
			return fmt.Errorf("delete %s: %w", runsDelete, err)
		}
		fmt.Fprintf(out, "Deleted run %s\n", runsDelete)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	if runsShow != "" {
		run, err := db.GetRun(runsShow)
		if err != nil {
			return err
		}
		recolors, err := db.GetRecolors(run.ID)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Run %s: %d islands on %dx%d, seed %d",
			run.ID, run.IslandCount, run.Size, run.Size, run.Seed)))
		fmt.Fprintln(tw, "ROW\tCOL\tCOLOR\tAT")
		for _, r := range recolors {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", r.Row, r.Col, r.Color, r.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	runs, err := db.ListRuns(runsLimit)
	if err != nil {
		return err
	}
	fmt.Fprintln(tw, "ID\tSEED\tSIZE\tRATIO\tISLANDS\tMS\tRECOLORS\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f\t%d\t%s\n",
			r.ID, r.Seed, r.Size, r.LandRatio, r.IslandCount, r.DiscoveryMillis, r.Recolors,
			r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
