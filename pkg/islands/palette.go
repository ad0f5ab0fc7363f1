package islands

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/zyedidia/generic/mapset"

	"island-discovery/pkg/terrain"
)

// ColorSpace is the number of distinct "#RRGGBB" colours.
const ColorSpace = 1 << 24

// Palette is the set of colours already handed out in one discovery pass.
type Palette = mapset.Set[terrain.Color]

// NewPalette returns an empty palette.
func NewPalette() Palette {
	return mapset.New[terrain.Color]()
}

// ColorAllocator hands out colours that are not in the given palette.
type ColorAllocator interface {
	AllocateUnique(exclude Palette) (terrain.Color, error)
}

// AllocatorOption configures a RandomAllocator.
type AllocatorOption func(*RandomAllocator)

// WithColorSpace limits candidates to the first n colours, #000000 to n-1.
// Values outside (0, ColorSpace] are ignored.
func WithColorSpace(n int) AllocatorOption {
	return func(a *RandomAllocator) {
		if n > 0 && n <= ColorSpace {
			a.space = n
		}
	}
}

// RandomAllocator draws uniformly random "#RRGGBB" colours.
type RandomAllocator struct {
	rng   *rand.Rand
	space int
}

// NewRandomAllocator creates an allocator. A zero seed picks one from the clock.
func NewRandomAllocator(seed int64, opts ...AllocatorOption) *RandomAllocator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a := &RandomAllocator{
		rng:   rand.New(rand.NewSource(seed)),
		space: ColorSpace,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AllocateUnique draws candidates until one is not in exclude. The expected
// number of draws grows as exclude approaches the colour space; once exclude
// covers all of it ErrColorSpaceExhausted is returned instead.
func (a *RandomAllocator) AllocateUnique(exclude Palette) (terrain.Color, error) {
	if exclude.Size() >= a.space && a.covered(exclude) >= a.space {
		return "", ErrColorSpaceExhausted
	}
	for {
		c := terrain.Color(fmt.Sprintf("#%06X", a.rng.Intn(a.space)))
		if !exclude.Has(c) {
			return c, nil
		}
	}
}

// covered counts the members of p the allocator could have produced.
func (a *RandomAllocator) covered(p Palette) int {
	n := 0
	p.Each(func(c terrain.Color) {
		canon, err := terrain.ParseColor(string(c))
		if err != nil || canon != c {
			return
		}
		v, _ := strconv.ParseUint(string(c[1:]), 16, 32)
		if int(v) < a.space {
			n++
		}
	})
	return n
}
