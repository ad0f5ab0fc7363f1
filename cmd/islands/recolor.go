package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"island-discovery/pkg/terrain"
)

var (
	recolorFlags gridFlags
	recolorRow   int
	recolorCol   int
	recolorColor string
)

func init() {
	recolorCmd := &cobra.Command{
		Use:   "recolor",
		Short: "Discover a grid, then repaint the island at one cell",
		Long: `Discover a grid exactly like "discover" and repaint the island that
contains (--row, --col) with --color. A sea cell leaves the grid unchanged.

Examples:
  islands recolor --seed 42 --row 3 --col 7
  islands recolor --seed 42 --row 3 --col 7 --color "#FF8800" --ascii`,
		Args: cobra.NoArgs,
		RunE: runRecolor,
	}

	recolorFlags.register(recolorCmd)
	recolorCmd.Flags().IntVar(&recolorRow, "row", 0, "Row of the cell to repaint")
	recolorCmd.Flags().IntVar(&recolorCol, "col", 0, "Column of the cell to repaint")
	recolorCmd.Flags().StringVarP(&recolorColor, "color", "c", "#00FF00", "New colour, #RRGGBB")

	rootCmd.AddCommand(recolorCmd)
}

func runRecolor(cmd *cobra.Command, args []string) error {
	c, err := terrain.ParseColor(recolorColor)
	if err != nil {
		return err
	}

	d, err := recolorFlags.discover()
	if err != nil {
		return err
	}

	before, err := d.grid.Color(recolorRow, recolorCol)
	if err != nil {
		return err
	}
	if err := d.labeler.Recolor(d.grid, recolorRow, recolorCol, c); err != nil {
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
	if runID != "" {
		if err := db.RecordRecolor(runID, recolorRow, recolorCol, string(c)); err != nil {
			log.Printf("Failed to record recolor: %v", err)
		}
	}

	out := cmd.OutOrStdout()
	printSummary(out, d, runID)
	fmt.Fprintf(out, "Recolored (%d,%d): %s -> %s\n", recolorRow, recolorCol, before, c)
	printGrid(out, d.grid, recolorFlags.ascii)
	return nil
}
