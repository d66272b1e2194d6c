// Package wiggleconfig loads the optional .wiggle.toml defaults file.
// The cmd/wiggle front end does not call it: its subcommands take their
// defaults from their own flag definitions.
package wiggleconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the defaults a .wiggle.toml file may set. A key absent
// from every file found keeps its value from Default().
type Config struct {
	Words         bool `toml:"words"`
	IgnoreAlready bool `toml:"ignore_already"`
	ShowWiggles   bool `toml:"show_wiggles"`
	ContextLines  int  `toml:"context_lines"`
}

// Default returns the built-in defaults used when no .wiggle.toml is
// found anywhere in the search path.
func Default() Config {
	return Config{ContextLines: 3}
}

// fileName is the config file name searched for in the repo root and
// the user's home directory.
const fileName = ".wiggle.toml"

// Load reads $HOME's and then dir's .wiggle.toml, merging each one found
// onto Default() in that order, so a key set in dir's file wins. A
// missing file at either location is not an error.
func Load(dir string) (Config, error) {
	cfg := Default()

	if home, err := os.UserHomeDir(); err == nil {
		if err := mergeFile(&cfg, filepath.Join(home, fileName)); err != nil {
			return cfg, err
		}
	}
	if err := mergeFile(&cfg, filepath.Join(dir, fileName)); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("wiggleconfig: read %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return fmt.Errorf("wiggleconfig: parse %s: %w", path, err)
	}
	return nil
}
