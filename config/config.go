// Package config loads the user configuration of the harmonicon command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Gain is the master gain of the audio output.
	Gain float32 `yaml:"gain"`
	// BufferSize is the audio device latency; zero lets the backend decide.
	BufferSize time.Duration `yaml:"buffersize"`
	// Debounce is how long a patch file has to stay unchanged before it is
	// reloaded.
	Debounce time.Duration `yaml:"debounce"`
}

func Default() Config {
	return Config{
		Gain:     1,
		Debounce: 50 * time.Millisecond,
	}
}

// DefaultPath returns the location of the configuration file in the user
// configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user config directory: %w", err)
	}
	return filepath.Join(dir, "Harmonicon", "config.yml"), nil
}

// Load reads the configuration at path over the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("could not read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("could not parse config %s: %w", path, err)
	}
	if cfg.Gain < 0 {
		return Default(), fmt.Errorf("config %s: gain must not be negative", path)
	}
	return cfg, nil
}
