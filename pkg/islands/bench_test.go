package islands_test

import (
	"math/rand"
	"testing"

	"island-discovery/pkg/islands"
	"island-discovery/pkg/terrain"
)

// BenchmarkDiscoverAll measures discovery on a 1000×1000 grid at the default
// land ratio. Complexity: O(N²·8).
func BenchmarkDiscoverAll(b *testing.B) {
	base, err := terrain.Generate(1000, terrain.DefaultLandRatio, rand.New(rand.NewSource(42)))
	if err != nil {
		b.Fatalf("setup Generate failed: %v", err)
	}
	l := islands.NewLabeler(islands.NewRandomAllocator(42))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		g := base.Clone()
		b.StartTimer()
		if _, err := l.DiscoverAll(g); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRecolor measures repainting the single island of an all-land grid.
func BenchmarkRecolor(b *testing.B) {
	g, err := terrain.Generate(500, 100, rand.New(rand.NewSource(1)))
	if err != nil {
		b.Fatalf("setup Generate failed: %v", err)
	}
	l := islands.NewLabeler(islands.NewRandomAllocator(1))
	if _, err := l.DiscoverAll(g); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.Recolor(g, 250, 250, "#00FF00")
	}
}
