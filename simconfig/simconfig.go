// Package simconfig loads a simulation run's configuration (worker count,
// default RNG seed, wall-clock deadline, included fragment files) from a
// YAML file, using a two-stage viper-then-yaml unmarshal: viper locates
// and reads the file into a generic "kind/def" envelope, then the "def"
// payload is re-marshalled and unmarshalled into the concrete Config so
// yaml struct tags (not viper's mapstructure tags) govern field decoding.
package simconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// outerEnvelope is a "kind" discriminator plus an opaque "def" payload,
// letting one YAML file format host several kinds of config without viper
// needing to know their shape up front.
type outerEnvelope struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// Config holds one simulation run's parameters.
type Config struct {
	// Workers is the number of parallel trajectories a MultiSimulate call
	// should request; defaults to runtime.NumCPU() when zero or absent.
	Workers int `yaml:"workers"`
	// DefaultSeed seeds SimulateSeeded when a run wants reproducibility;
	// zero means "let Simulate draw from OS entropy instead".
	// The tag is lower-case because viper lower-cases every key it reads,
	// so a file's "defaultSeed" reaches the yaml stage as "defaultseed".
	DefaultSeed int64 `yaml:"defaultseed"`
	// Deadline is a time.ParseDuration string bounding a run's wall-clock
	// time. Empty means no deadline.
	Deadline string `yaml:"deadline"`
	// Includes names additional config fragment files to load and merge
	// alongside this one (e.g. separate species/rule definition files).
	Includes []string `yaml:"includes"`
}

// Load reads path as a YAML "kind/def" envelope and decodes its def
// payload into a Config.
func Load(path string) (*Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("simconfig: reading %s: %w", path, err)
	}

	outer := &outerEnvelope{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, fmt.Errorf("simconfig: decoding envelope in %s: %w", path, err)
	}

	spec, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, fmt.Errorf("simconfig: re-marshalling def in %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(spec, cfg); err != nil {
		return nil, fmt.Errorf("simconfig: decoding def in %s: %w", path, err)
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	return cfg, nil
}

// WithDeadline extends ctx by Deadline, if one is set; otherwise it
// returns a plain cancelable child context.
func (c *Config) WithDeadline(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if c.Deadline == "" {
		innerCtx, cancel := context.WithCancel(ctx)
		return innerCtx, cancel, nil
	}
	d, err := time.ParseDuration(c.Deadline)
	if err != nil {
		return nil, nil, fmt.Errorf("simconfig: parsing deadline %q: %w", c.Deadline, err)
	}
	innerCtx, cancel := context.WithTimeout(ctx, d)
	return innerCtx, cancel, nil
}

// LoadIncludes loads every file named in Includes concurrently and returns
// their decoded Configs in the same order Includes lists them. Unlike
// MultiSimulate's ordering guarantee, this uses errgroup's fail-fast
// semantics deliberately: one bad include file should abort the whole run
// configuration rather than silently proceeding with a partial config, the
// opposite tradeoff MultiSimulate makes for trajectory reducers.
func (c *Config) LoadIncludes(ctx context.Context) ([]*Config, error) {
	group, _ := errgroup.WithContext(ctx)
	results := make([]*Config, len(c.Includes))

	for i, path := range c.Includes {
		i, path := i, path
		group.Go(func() error {
			cfg, err := Load(path)
			if err != nil {
				return fmt.Errorf("simconfig: loading include %q: %w", path, err)
			}
			results[i] = cfg
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
