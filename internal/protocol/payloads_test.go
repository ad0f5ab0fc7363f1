package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"island-discovery/pkg/terrain"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(TypeRecolor, RecolorPayload{Row: 1, Col: 2, Color: "#00FF00"})
	require.NoError(t, err)
	assert.Equal(t, TypeRecolor, msg.Type)
	assert.NotEmpty(t, msg.ID)
	assert.NotZero(t, msg.Timestamp)

	var p RecolorPayload
	require.NoError(t, msg.ParsePayload(&p))
	assert.Equal(t, RecolorPayload{Row: 1, Col: 2, Color: "#00FF00"}, p)
}

func TestGridStatePayload_Grid(t *testing.T) {
	g, err := terrain.Parse("#.\n.@")
	require.NoError(t, err)
	require.NoError(t, g.SetColor(1, 1, "#ABCDEF"))

	p := NewGridStatePayload(g)
	assert.Equal(t, []int{1, 0, 0, 2}, p.States)
	assert.Equal(t, "#ABCDEF", p.Colors[3])

	back, err := p.Grid()
	require.NoError(t, err)
	assert.Equal(t, g, back)
}

func TestGridStatePayload_GridRejectsBadState(t *testing.T) {
	p := GridStatePayload{Size: 1, States: []int{5}, Colors: []string{"#000000"}}
	_, err := p.Grid()
	assert.ErrorIs(t, err, terrain.ErrInvalidState)
}

func TestMillis(t *testing.T) {
	assert.Equal(t, 1.23, Millis(1234567*time.Nanosecond))
	assert.Equal(t, 0.0, Millis(0))
}
