package main

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the shape of hulkc.toml, a per-project file analogous to the
// world-file manifests the teacher's internal/tqw loads with the same
// library. Every field has a zero value that defaultConfig overrides with a
// sane default, so an absent or partial hulkc.toml is never an error.
type Config struct {
	Target     string `toml:"target"`
	Entry      string `toml:"entry"`
	PrintTable bool   `toml:"print_table"`
	CacheDir   string `toml:"cache_dir"`
}

func defaultConfig() Config {
	return Config{
		Target:   "x86_64-unknown-linux-gnu",
		Entry:    "main.hulk",
		CacheDir: ".hulkc-cache",
	}
}

// loadConfig reads path and overlays it onto defaultConfig. A missing file
// is not an error — it just means every field comes from the default.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
