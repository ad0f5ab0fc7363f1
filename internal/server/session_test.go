package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"island-discovery/pkg/terrain"
)

func TestSession_NoGrid(t *testing.T) {
	s := NewSession()
	require.NotEmpty(t, s.ID)

	_, err := s.State()
	assert.ErrorIs(t, err, ErrNoGrid)
	_, err = s.Recolor(0, 0, "#00FF00")
	assert.ErrorIs(t, err, ErrNoGrid)
}

func TestSession_GenerateIsReproducible(t *testing.T) {
	opts := terrain.GeneratorOptions{Size: 20, LandRatio: 40, Seed: 1234}

	a, err := NewSession().Generate(opts)
	require.NoError(t, err)
	b, err := NewSession().Generate(opts)
	require.NoError(t, err)

	assert.Equal(t, a.States, b.States)
	assert.Equal(t, a.Colors, b.Colors)
	assert.Equal(t, a.IslandCount, b.IslandCount)
	assert.Equal(t, int64(1234), a.Seed)
	assert.Equal(t, 20, a.Size)
	assert.Positive(t, a.IslandCount)
	assert.NotContains(t, a.States, int(terrain.Land))
}

func TestSession_Recolor(t *testing.T) {
	s := NewSession()
	state, err := s.Generate(terrain.GeneratorOptions{Size: 10, LandRatio: 100, Seed: 1})
	require.NoError(t, err)
	require.Equal(t, 1, state.IslandCount)

	state, err = s.Recolor(5, 5, "#00FF00")
	require.NoError(t, err)
	for _, c := range state.Colors {
		assert.Equal(t, "#00FF00", c)
	}

	_, err = s.Recolor(10, 0, "#00FF00")
	assert.ErrorIs(t, err, terrain.ErrOutOfBounds)
}

func TestSession_GenerateInvalid(t *testing.T) {
	s := NewSession()
	_, err := s.Generate(terrain.GeneratorOptions{Size: -3, LandRatio: 40, Seed: 1})
	assert.ErrorIs(t, err, terrain.ErrInvalidSize)
	_, err = s.Generate(terrain.GeneratorOptions{Size: 5, LandRatio: 140, Seed: 1})
	assert.ErrorIs(t, err, terrain.ErrInvalidRatio)

	_, err = s.State()
	assert.ErrorIs(t, err, ErrNoGrid, "failed generate must not install a grid")
}

func TestSession_RunID(t *testing.T) {
	s := NewSession()
	_, err := s.Generate(terrain.GeneratorOptions{Size: 5, LandRatio: 40, Seed: 2})
	require.NoError(t, err)
	s.SetRunID("run-1")

	state, err := s.State()
	require.NoError(t, err)
	assert.Equal(t, "run-1", state.RunID)

	_, err = s.Generate(terrain.GeneratorOptions{Size: 5, LandRatio: 40, Seed: 3})
	require.NoError(t, err)
	assert.Empty(t, s.RunID(), "a new grid starts a new run")
}
