package config

import (
	"github.com/pkg/errors"

	"github.com/cognicore/commentscope/pkg/commentscope/taxonomy"
)

// Loader reads the config file, env file and taxonomy and assembles the
// components a stage needs. Empty paths select defaults.
type Loader struct {
	ConfigPath   string
	TaxonomyPath string
	EnvPath      string
	// IgnoreEnv skips the .env file and environment overrides, leaving
	// the config file and defaults as the only sources.
	IgnoreEnv bool
}

// Components holds all loaded configuration components
type Components struct {
	Config   *Config
	Taxonomy *taxonomy.Taxonomy
}

// Load reads all configuration sources and validates the result.
func (l *Loader) Load() (*Components, error) {
	if !l.IgnoreEnv {
		if err := LoadEnvFile(l.EnvPath); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := LoadConfig(l.ConfigPath)
		if err != nil {
			return nil, errors.Wrap(err, "load config")
		}
		cfg = loaded
	}
	if !l.IgnoreEnv {
		cfg.ApplyEnv()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Flag path overrides the config file's taxonomy path.
	taxPath := cfg.Taxonomy.Path
	if l.TaxonomyPath != "" {
		taxPath = l.TaxonomyPath
	}

	tax := taxonomy.Default()
	if taxPath != "" {
		loaded, err := taxonomy.Load(taxPath)
		if err != nil {
			return nil, errors.Wrap(err, "load taxonomy")
		}
		tax = loaded
	}
	cfg.Taxonomy.Path = taxPath

	return &Components{Config: cfg, Taxonomy: tax}, nil
}
