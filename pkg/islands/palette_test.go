package islands

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"island-discovery/pkg/terrain"
)

func TestRandomAllocator_Format(t *testing.T) {
	a := NewRandomAllocator(3)
	for i := 0; i < 100; i++ {
		c, err := a.AllocateUnique(NewPalette())
		require.NoError(t, err)
		canon, err := terrain.ParseColor(string(c))
		require.NoError(t, err)
		assert.Equal(t, canon, c)
	}
}

func TestRandomAllocator_AvoidsExcluded(t *testing.T) {
	a := NewRandomAllocator(9, WithColorSpace(8))
	palette := NewPalette()
	for i := 0; i < 7; i++ {
		palette.Put(terrain.Color(fmt.Sprintf("#%06X", i)))
	}
	for i := 0; i < 20; i++ {
		c, err := a.AllocateUnique(palette)
		require.NoError(t, err)
		assert.Equal(t, terrain.Color("#000007"), c)
	}
}

func TestRandomAllocator_UniqueAcrossPass(t *testing.T) {
	a := NewRandomAllocator(11, WithColorSpace(64))
	palette := NewPalette()
	for i := 0; i < 64; i++ {
		c, err := a.AllocateUnique(palette)
		require.NoError(t, err)
		require.False(t, palette.Has(c), "duplicate %s", c)
		palette.Put(c)
	}
	_, err := a.AllocateUnique(palette)
	assert.ErrorIs(t, err, ErrColorSpaceExhausted)
}

// TestRandomAllocator_ForeignColorsDoNotExhaust checks that palette entries the
// allocator could never produce do not count towards exhaustion.
func TestRandomAllocator_ForeignColorsDoNotExhaust(t *testing.T) {
	a := NewRandomAllocator(2, WithColorSpace(2))
	palette := NewPalette()
	palette.Put("#000000")
	palette.Put("#ffffff")
	palette.Put("sea")

	c, err := a.AllocateUnique(palette)
	require.NoError(t, err)
	assert.Equal(t, terrain.Color("#000001"), c)
}

func TestWithColorSpace_IgnoresInvalid(t *testing.T) {
	assert.Equal(t, ColorSpace, NewRandomAllocator(1, WithColorSpace(0)).space)
	assert.Equal(t, ColorSpace, NewRandomAllocator(1, WithColorSpace(ColorSpace+1)).space)
	assert.Equal(t, 5, NewRandomAllocator(1, WithColorSpace(5)).space)
}
