package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"gridbot/solve"
)

// A duration wraps time.Duration so TOML files can write "10s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Config collects the tuning knobs the TOML file can set.  Zero
// values mean "use the engine default", so a partial file or no
// file at all works fine.
type Config struct {
	Engine struct {
		NakedSubsetMax  int      `toml:"naked_subset_max"`
		ResortBatch     int      `toml:"resort_batch"`
		MemoSize        int      `toml:"memo_size"`
		StatsInterval   duration `toml:"stats_interval"`
		PartialInterval duration `toml:"partial_interval"`
	} `toml:"engine"`
	Storage struct {
		CacheURL    string `toml:"cache_url"`
		DatabaseURL string `toml:"database_url"`
	} `toml:"storage"`
	Site struct {
		BaseURL string `toml:"base_url"`
	} `toml:"site"`
}

// loadConfig reads a TOML config file.  An empty path yields the
// defaults; a named file that doesn't exist is an error.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	return cfg, nil
}

// engineOptions turns the config into solver options.  Normalize
// fills whatever the file left at zero.
func (c *Config) engineOptions() solve.Options {
	return solve.Options{
		NakedSubsetMax:  c.Engine.NakedSubsetMax,
		ResortBatch:     c.Engine.ResortBatch,
		MemoSize:        c.Engine.MemoSize,
		StatsInterval:   c.Engine.StatsInterval.Duration,
		PartialInterval: c.Engine.PartialInterval.Duration,
	}
}
