// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridmat/dist"
)

// Config selects the execution backend for every command.
type Config struct {
	// Workers bounds the parallel runner; 1 selects the sequential runner.
	Workers int `yaml:"workers"`

	// Partitions is the partition count used for loaded and generated
	// collections.
	Partitions int `yaml:"partitions"`
}

// defaultConfig sizes the pool to the machine.
func defaultConfig() Config {
	return Config{Workers: runtime.GOMAXPROCS(0), Partitions: 8}
}

// loadConfig reads a yaml config file, falling back to defaults for
// omitted fields. An empty path returns the defaults unchanged.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Workers < 1 || cfg.Partitions < 1 {
		return Config{}, fmt.Errorf("config %s: workers and partitions must be >= 1", path)
	}

	return cfg, nil
}

// runner builds the execution backend the config describes.
func (c Config) runner() dist.Runner {
	if c.Workers <= 1 {
		return dist.SeqRunner{}
	}

	return dist.NewPoolRunner(c.Workers)
}
