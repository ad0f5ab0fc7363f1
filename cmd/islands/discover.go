package main

import (
	"github.com/spf13/cobra"
)

var discoverFlags gridFlags

func init() {
	discoverCmd := &cobra.Command{
		Use:   "discover",
		Short: "Generate a grid and colour every island",
		Long: `Generate a random grid (or read one with --from), find every island
and print the island count, the discovery time and the coloured grid.

Examples:
  islands discover
  islands discover --size 30 --ratio 60 --seed 7
  islands discover --from testdata/ring.txt --ascii
  islands discover --size 1000 --profile cpu`,
		Args: cobra.NoArgs,
		RunE: runDiscover,
	}

	discoverFlags.register(discoverCmd)

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	d, err := discoverFlags.discover()
	if err != nil {
		return err
	}

	db, err := openHistory()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	runID := recordRun(db, d)

	out := cmd.OutOrStdout()
	printSummary(out, d, runID)
	printGrid(out, d.grid, discoverFlags.ascii)
	return nil
}
