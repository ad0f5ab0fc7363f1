package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"island-discovery/internal/database"
	"island-discovery/pkg/terrain"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func writePicture(t *testing.T, picture string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.txt")
	require.NoError(t, os.WriteFile(path, []byte(picture), 0644))
	return path
}

func TestRenderColor_Shape(t *testing.T) {
	grid, err := terrain.Parse(`
		#..
		.@.
		..#`)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(renderColor(grid), "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 3*cellWidth, lipgloss.Width(line))
	}
}

func TestRenderColor_BadColorFallsBackToRune(t *testing.T) {
	grid, err := terrain.Parse(`
		@.
		..`)
	require.NoError(t, err)
	require.NoError(t, grid.SetColor(0, 0, "not-a-colour"))

	out := renderColor(grid)
	assert.True(t, strings.HasPrefix(out, "@@"), out)
}

func TestDiscoverCommand_FromPicture(t *testing.T) {
	path := writePicture(t, `
		#...#
		.....
		..#..
		.....
		#...#`)

	out := execute(t, "discover", "--from", path, "--seed", "1", "--ascii", "--db", "")
	assert.Contains(t, out, "Islands: 5")
	assert.Contains(t, out, "Grid: 5x5")
	assert.Contains(t, out, "@...@")
	assert.NotContains(t, out, "#")
}

func TestDiscoverCommand_Generated(t *testing.T) {
	out := execute(t, "discover", "--from", "", "--size", "6", "--ratio", "100", "--seed", "9", "--ascii", "--db", "")
	assert.Contains(t, out, "Islands: 1")
	assert.Contains(t, out, "Seed: 9")
	assert.Contains(t, out, "@@@@@@")
}

func TestDiscoverCommand_InvalidRatio(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"discover", "--from", "", "--size", "4", "--ratio", "150", "--db", ""})
	err := rootCmd.Execute()
	assert.ErrorIs(t, err, terrain.ErrInvalidRatio)
}

func TestRecolorCommand(t *testing.T) {
	out := execute(t, "recolor", "--from", "", "--size", "4", "--ratio", "100", "--seed", "3",
		"--row", "1", "--col", "2", "--color", "123abc", "--ascii", "--db", "")
	assert.Contains(t, out, "Recolored (1,2):")
	assert.Contains(t, out, "-> #123ABC")
}

func TestRecolorCommand_OutOfBounds(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"recolor", "--from", "", "--size", "4", "--ratio", "100", "--seed", "3",
		"--row", "4", "--col", "0", "--color", "#000000", "--db", ""})
	assert.ErrorIs(t, rootCmd.Execute(), terrain.ErrOutOfBounds)
}

func TestRunsCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	execute(t, "discover", "--from", "", "--size", "5", "--ratio", "100", "--seed", "11", "--ascii", "--db", db)
	execute(t, "recolor", "--from", "", "--size", "5", "--ratio", "100", "--seed", "12",
		"--row", "0", "--col", "0", "--color", "#FF0000", "--ascii", "--db", db)

	out := execute(t, "runs", "--db", db, "-n", "10", "--show", "", "--delete", "")
	assert.Contains(t, out, "ISLANDS")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3, out)
	assert.Equal(t, "12", strings.Fields(lines[1])[1], "newest run first")
	assert.Equal(t, "11", strings.Fields(lines[2])[1])
}

func latestRun(t *testing.T, path string) *database.Run {
	t.Helper()
	db, err := database.New(path)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.ListRuns(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	return runs[0]
}

func TestDiscoverCommand_FromPictureRecordsMeasuredRatio(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	path := writePicture(t, `
		##..
		....
		....
		...#`)

	execute(t, "discover", "--from", path, "--ratio", "90", "--seed", "1", "--ascii", "--db", db)
	run := latestRun(t, db)
	assert.Equal(t, 18, run.LandRatio, "3 of 16 cells are land")
	assert.Equal(t, 2, run.IslandCount)

	execute(t, "discover", "--from", "", "--size", "4", "--ratio", "90", "--seed", "1", "--ascii", "--db", db)
	assert.Equal(t, 90, latestRun(t, db).LandRatio, "generated grids keep the requested ratio")
}

func TestRunsCommand_Delete(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	execute(t, "recolor", "--from", "", "--size", "3", "--ratio", "100", "--seed", "5",
		"--row", "0", "--col", "0", "--color", "#FF0000", "--ascii", "--db", db)
	run := latestRun(t, db)

	out := execute(t, "runs", "--db", db, "--show", "", "--delete", run.ID)
	assert.Contains(t, out, "Deleted run "+run.ID)

	out = execute(t, "runs", "--db", db, "-n", "10", "--show", "", "--delete", "")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1, "only the header is left")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"runs", "--db", db, "--show", "", "--delete", run.ID})
	assert.ErrorIs(t, rootCmd.Execute(), database.ErrRunNotFound)
}

func TestRunsCommand_RequiresDB(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"runs", "--db", "", "--show", "", "--delete", ""})
	assert.Error(t, rootCmd.Execute())
}

func TestStartProfile_UnknownMode(t *testing.T) {
	assert.Error(t, startProfile("gpu", t.TempDir()))
	assert.NoError(t, startProfile("", t.TempDir()))
}
