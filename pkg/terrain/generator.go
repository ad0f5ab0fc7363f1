package terrain

import (
	"math/rand"
	"time"
)

// GeneratorOptions contains settings for grid generation.
type GeneratorOptions struct {
	Size      int   // Side length, DefaultSize if 0
	LandRatio int   // Threshold in [0,100]: a sample below it becomes land
	Seed      int64 // 0 picks a seed from the clock
}

// DefaultGeneratorOptions returns the settings the viewer starts with.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Size:      DefaultSize,
		LandRatio: DefaultLandRatio,
	}
}

// Generator produces random sea/land grids from a seeded source.
type Generator struct {
	options GeneratorOptions
	rng     *rand.Rand
}

// NewGenerator creates a generator. The effective seed is available from Seed.
func NewGenerator(opts GeneratorOptions) *Generator {
	if opts.Size == 0 {
		opts.Size = DefaultSize
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return &Generator{
		options: opts,
		rng:     rand.New(rand.NewSource(opts.Seed)),
	}
}

// Seed returns the seed the generator was built with.
func (g *Generator) Seed() int64 {
	return g.options.Seed
}

// Options returns the effective generator options.
func (g *Generator) Options() GeneratorOptions {
	return g.options
}

// Generate creates the next grid from the generator's random stream.
func (g *Generator) Generate() (*Grid, error) {
	return Generate(g.options.Size, g.options.LandRatio, g.rng)
}

// Generate fills a fresh size×size grid. Every cell draws one sample in [0,100);
// a sample at or above landRatio is sea, anything below it is land.
func Generate(size, landRatio int, rng *rand.Rand) (*Grid, error) {
	if landRatio < 0 || landRatio > 100 {
		return nil, ErrInvalidRatio
	}
	grid, err := NewGrid(size)
	if err != nil {
		return nil, err
	}

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			state := Land
			if rng.Intn(100) >= landRatio {
				state = Sea
			}
			i := row*size + col
			grid.states[i] = state
			grid.colors[i] = InitialColor(state)
		}
	}
	return grid, nil
}
