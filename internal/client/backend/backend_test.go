package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"island-discovery/internal/protocol"
	"island-discovery/pkg/terrain"
)

func TestWsURL(t *testing.T) {
	cases := map[string]string{
		"localhost:30000":        "ws://localhost:30000/ws",
		"ws://example.com:8080":  "ws://example.com:8080/ws",
		"wss://example.com/":     "wss://example.com/ws",
		"wss://example.com/base": "wss://example.com/base/ws",
	}
	for in, want := range cases {
		assert.Equal(t, want, wsURL(in), in)
	}
}

func TestLocalBackend_GenerateAndRecolor(t *testing.T) {
	var got []protocol.GridStatePayload
	b := NewLocalBackend(Callbacks{
		OnGrid: func(p protocol.GridStatePayload) { got = append(got, p) },
	})
	assert.False(t, b.Online())

	require.NoError(t, b.Generate(protocol.GeneratePayload{Size: 6, LandRatio: 100, Seed: 3}))
	require.Len(t, got, 1)
	first := got[0]
	assert.Equal(t, 6, first.Size)
	assert.Equal(t, int64(3), first.Seed)
	assert.Equal(t, 100, first.LandRatio)
	assert.Equal(t, 1, first.IslandCount)
	assert.GreaterOrEqual(t, first.DiscoveryMillis, 0.0)

	require.NoError(t, b.Recolor(protocol.RecolorPayload{Row: 2, Col: 2, Color: "abcdef"}))
	require.Len(t, got, 2)
	grid, err := got[1].Grid()
	require.NoError(t, err)
	for _, c := range grid.Colors() {
		assert.Equal(t, terrain.Color("#ABCDEF"), c)
	}
	assert.Equal(t, 36, grid.Count(terrain.Discovered))
}

func TestLocalBackend_Errors(t *testing.T) {
	b := NewLocalBackend(Callbacks{})

	assert.ErrorIs(t, b.Recolor(protocol.RecolorPayload{Color: "#000000"}), ErrNoGrid)
	assert.ErrorIs(t, b.ListRuns(5), ErrOffline)
	assert.ErrorIs(t, b.Generate(protocol.GeneratePayload{Size: 4, LandRatio: 101}), terrain.ErrInvalidRatio)

	require.NoError(t, b.Generate(protocol.GeneratePayload{Size: 4, LandRatio: 40, Seed: 1}))
	assert.ErrorIs(t, b.Recolor(protocol.RecolorPayload{Row: 4, Col: 0, Color: "#000000"}), terrain.ErrOutOfBounds)
	assert.Error(t, b.Recolor(protocol.RecolorPayload{Row: 0, Col: 0, Color: "green"}))
}

// fakeServer answers generate with a fixed grid and everything else with an error.
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")
		ctx := r.Context()

		write := func(id string, msgType protocol.MessageType, payload interface{}) {
			msg, err := protocol.NewMessage(msgType, payload)
			if err != nil {
				t.Errorf("new message: %v", err)
				return
			}
			if id != "" {
				msg.ID = id
			}
			data, _ := json.Marshal(msg)
			_ = conn.Write(ctx, websocket.MessageText, data)
		}
		write("", protocol.TypeWelcome, protocol.WelcomePayload{ServerVersion: "test", SessionID: "s1"})

		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				return
			}
			var msg protocol.Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Errorf("unmarshal: %v", err)
				return
			}
			switch msg.Type {
			case protocol.TypeGenerate:
				grid, err := terrain.Parse(`
					#.
					.#`)
				if err != nil {
					t.Errorf("parse: %v", err)
					return
				}
				p := protocol.NewGridStatePayload(grid)
				p.SessionID = "s1"
				p.IslandCount = 1
				write(msg.ID, protocol.TypeGridState, p)
			case protocol.TypeListRuns:
				write(msg.ID, protocol.TypeRunList, protocol.RunListPayload{
					Runs: []protocol.RunInfo{{ID: "r1", Size: 2}},
				})
			default:
				write(msg.ID, protocol.TypeError, protocol.ErrorPayload{
					Code: protocol.ErrCodeNoGrid, Message: "no grid generated yet",
				})
			}
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestRemoteBackend_RoundTrip(t *testing.T) {
	ts := fakeServer(t)

	grids := make(chan protocol.GridStatePayload, 1)
	runs := make(chan protocol.RunListPayload, 1)
	errs := make(chan error, 4)
	b, err := NewRemoteBackend("ws://"+ts.Listener.Addr().String(), Callbacks{
		OnGrid:  func(p protocol.GridStatePayload) { grids <- p },
		OnRuns:  func(p protocol.RunListPayload) { runs <- p },
		OnError: func(err error) { errs <- err },
	})
	require.NoError(t, err)
	defer b.Close()
	assert.True(t, b.Online())

	require.NoError(t, b.Generate(protocol.GeneratePayload{Size: 2}))
	select {
	case p := <-grids:
		assert.Equal(t, 2, p.Size)
		assert.Equal(t, 1, p.IslandCount)
	case <-time.After(5 * time.Second):
		t.Fatal("no grid_state received")
	}

	require.NoError(t, b.ListRuns(10))
	select {
	case p := <-runs:
		require.Len(t, p.Runs, 1)
		assert.Equal(t, "r1", p.Runs[0].ID)
	case <-time.After(5 * time.Second):
		t.Fatal("no run_list received")
	}

	require.NoError(t, b.Recolor(protocol.RecolorPayload{Row: 0, Col: 0, Color: "#000000"}))
	select {
	case err := <-errs:
		assert.Contains(t, err.Error(), string(protocol.ErrCodeNoGrid))
	case <-time.After(5 * time.Second):
		t.Fatal("no error received")
	}
}

func TestRemoteBackend_DialFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	addr := ts.Listener.Addr().String()
	ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		_, err := NewRemoteBackend(addr, Callbacks{})
		done <- err
	}()
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-ctx.Done():
		t.Fatal("dial did not fail")
	}
}
