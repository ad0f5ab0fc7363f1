package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"island-discovery/pkg/terrain"
)

func TestLoadConfigFile_MissingGivesDefaults(t *testing.T) {
	cfg, err := loadConfigFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"last_server": "example.com:9000", "offline": true}`), 0644))

	cfg, err := loadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "example.com:9000", cfg.LastServer)
	assert.True(t, cfg.Offline)
	assert.Equal(t, terrain.DefaultSize, cfg.Size)
	assert.Equal(t, terrain.DefaultLandRatio, cfg.LandRatio)
	assert.Equal(t, DefaultBrush, cfg.Brush)
}

func TestLoadConfigFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"size": "big"`), 0644))

	cfg, err := loadConfigFile(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Brush = "#123456"
	cfg.Size = 80
	cfg.WindowWidth, cfg.WindowHeight = 1024, 1100

	require.NoError(t, cfg.saveFile(path))
	got, err := loadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestConfig_WindowSize(t *testing.T) {
	cfg := DefaultConfig()
	w, h := cfg.WindowSize(800, 894)
	assert.Equal(t, 800, w)
	assert.Equal(t, 894, h)

	cfg.WindowWidth, cfg.WindowHeight = 1200, 1300
	w, h = cfg.WindowSize(800, 894)
	assert.Equal(t, 1200, w)
	assert.Equal(t, 1300, h)
}

func TestConfigPath_Profile(t *testing.T) {
	t.Cleanup(func() { SetProfile("") })

	SetProfile("")
	base, err := configPath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	assert.Equal(t, "config.json", filepath.Base(base))
	assert.Equal(t, "island-discovery", filepath.Base(filepath.Dir(base)))

	SetProfile("viewer2")
	p, err := configPath()
	require.NoError(t, err)
	assert.Equal(t, "config-viewer2.json", filepath.Base(p))
}
