package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"island-discovery/internal/database"
	"island-discovery/internal/protocol"
	"island-discovery/pkg/islands"
	"island-discovery/pkg/terrain"
)

var (
	profileMode string
	profileDir  string
	dbPath      string

	running interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:   "islands",
	Short: "Discover and recolor islands on random terrain grids",
	Long: `Generate a square sea/land grid, find every 8-connected island and give
each one its own colour.

Examples:
  islands discover
  islands discover --size 20 --ratio 55 --seed 42
  islands recolor --seed 42 --row 3 --col 7 --color "#00FF00"
  islands runs --db data/islands.db`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return startProfile(profileMode, profileDir)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopProfile()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profileMode, "profile", "", "Profile the run: cpu, mem or block")
	rootCmd.PersistentFlags().StringVar(&profileDir, "profile-dir", ".", "Directory for profile output")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Run history database (empty disables history)")
}

func startProfile(mode, dir string) error {
	var opt func(*profile.Profile)
	switch mode {
	case "":
		return nil
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	case "block":
		opt = profile.BlockProfile
	default:
		return fmt.Errorf("unknown profile mode %q (want cpu, mem or block)", mode)
	}
	running = profile.Start(opt, profile.ProfilePath(dir), profile.NoShutdownHook)
	return nil
}

func stopProfile() {
	if running != nil {
		running.Stop()
		running = nil
	}
}

// gridFlags are shared by the commands that build a grid.
type gridFlags struct {
	size  int
	ratio int
	seed  int64
	from  string
	ascii bool
}

func (f *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.size, "size", "s", terrain.DefaultSize, "Grid size (N for an NxN grid)")
	cmd.Flags().IntVarP(&f.ratio, "ratio", "r", terrain.DefaultLandRatio, "Land ratio percent 0-100")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	cmd.Flags().StringVar(&f.from, "from", "", "Read the grid from a picture file ('.' sea, '#' land) instead of generating")
	cmd.Flags().BoolVar(&f.ascii, "ascii", false, "Print an ASCII picture instead of coloured cells")
}

// discovery is a grid after DiscoverAll.
type discovery struct {
	grid    *terrain.Grid
	labeler *islands.Labeler
	seed    int64
	ratio   int // Land percentage: the flag, or measured for --from pictures
	count   int
	elapsed time.Duration
}

func (f *gridFlags) discover() (*discovery, error) {
	var grid *terrain.Grid
	seed := f.seed
	ratio := f.ratio
	if f.from != "" {
		data, err := os.ReadFile(f.from)
		if err != nil {
			return nil, fmt.Errorf("failed to read picture: %w", err)
		}
		grid, err = terrain.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.from, err)
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		ratio = landPercent(grid)
	} else {
		gen := terrain.NewGenerator(terrain.GeneratorOptions{Size: f.size, LandRatio: f.ratio, Seed: seed})
		var err error
		grid, err = gen.Generate()
		if err != nil {
			return nil, err
		}
		seed = gen.Seed()
	}

	labeler := islands.NewLabeler(islands.NewRandomAllocator(seed))
	start := time.Now()
	count, err := labeler.DiscoverAll(grid)
	elapsed := time.Since(start)
	if err != nil {
		return nil, err
	}
	return &discovery{grid: grid, labeler: labeler, seed: seed, ratio: ratio, count: count, elapsed: elapsed}, nil
}

// landPercent is the share of non-sea cells, rounded down.
func landPercent(grid *terrain.Grid) int {
	total := grid.Size() * grid.Size()
	land := total - grid.Count(terrain.Sea)
	return land * 100 / total
}

// openHistory opens the run history when --db is set. Callers close it.
func openHistory() (*database.DB, error) {
	if dbPath == "" {
		return nil, nil
	}
	db, err := database.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return db, nil
}

func recordRun(db *database.DB, d *discovery) string {
	if db == nil {
		return ""
	}
	run, err := db.RecordRun(d.seed, d.grid.Size(), d.ratio, d.count, protocol.Millis(d.elapsed))
	if err != nil {
		log.Printf("Failed to record run: %v", err)
		return ""
	}
	return run.ID
}
