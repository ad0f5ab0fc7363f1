package client

import (
	"encoding/json"
	"os"
	"path/filepath"

	"island-discovery/pkg/terrain"
)

var configProfile string

// SetProfile sets the config profile for multiple instances.
func SetProfile(profile string) {
	configProfile = profile
}

// Config holds client configuration.
type Config struct {
	// Connection settings
	LastServer string `json:"last_server"`
	Offline    bool   `json:"offline"`

	// Generation settings
	Size      int `json:"size"`
	LandRatio int `json:"land_ratio"`

	// Brush colour used for recolouring, "#RRGGBB"
	Brush string `json:"brush"`

	// Window geometry (remembered between sessions)
	WindowWidth  int `json:"window_width,omitempty"`
	WindowHeight int `json:"window_height,omitempty"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	gen := terrain.DefaultGeneratorOptions()
	return &Config{
		LastServer: "localhost:30000",
		Size:       gen.Size,
		LandRatio:  gen.LandRatio,
		Brush:      DefaultBrush,
	}
}

// WindowSize returns the remembered window size, or the given default when
// none was stored.
func (c *Config) WindowSize(defWidth, defHeight int) (int, int) {
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return defWidth, defHeight
	}
	return c.WindowWidth, c.WindowHeight
}

// LoadConfig loads config from the user's config directory.
func LoadConfig() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), err
	}

	return cfg, nil
}

// Save saves the config to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return c.saveFile(path)
}

func (c *Config) saveFile(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	filename := "config.json"
	if configProfile != "" {
		filename = "config-" + configProfile + ".json"
	}

	return filepath.Join(configDir, "island-discovery", filename), nil
}
