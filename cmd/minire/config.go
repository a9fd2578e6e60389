package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/coregx/minire"
)

// fileConfig mirrors minire.Config in a TOML file. Absent keys keep their
// defaults.
//
//	[engine]
//	max-insts = 512
//	max-depth = 20000
//	max-steps = 5000000
//	strict-braces = true
//
//	[prefilter]
//	enabled = false
//	max-literals = 32
type fileConfig struct {
	Engine    engineSection    `toml:"engine"`
	Prefilter prefilterSection `toml:"prefilter"`
}

type engineSection struct {
	MaxInsts     *int  `toml:"max-insts"`
	MaxDepth     *int  `toml:"max-depth"`
	MaxSteps     *int  `toml:"max-steps"`
	StrictBraces *bool `toml:"strict-braces"`
}

type prefilterSection struct {
	Enabled     *bool `toml:"enabled"`
	MaxLiterals *int  `toml:"max-literals"`
}

// loadConfig reads a TOML config file and applies it over the defaults.
// An empty path returns the defaults.
func loadConfig(path string) (minire.Config, error) {
	config := minire.DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("cannot read %s: %w", path, err)
	}
	var fc fileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return config, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return config, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}

	fc.apply(&config)
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (fc *fileConfig) apply(config *minire.Config) {
	if v := fc.Engine.MaxInsts; v != nil {
		config.MaxInsts = *v
	}
	if v := fc.Engine.MaxDepth; v != nil {
		config.MaxDepth = *v
	}
	if v := fc.Engine.MaxSteps; v != nil {
		config.MaxSteps = *v
	}
	if v := fc.Engine.StrictBraces; v != nil {
		config.StrictBraces = *v
	}
	if v := fc.Prefilter.Enabled; v != nil {
		config.EnablePrefilter = *v
	}
	if v := fc.Prefilter.MaxLiterals; v != nil {
		config.MaxLiterals = *v
	}
}
