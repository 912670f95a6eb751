// Package config loads swarf settings from a YAML file. Settings cover
// tessellation defaults (segment counts, loft interpolation) and export
// output. Missing files and missing fields fall back to built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chazu/swarf/pkg/graph"
)

// Defaults holds graph-wide tessellation defaults.
type Defaults struct {
	TorusMajorSegments int    `yaml:"torus_major_segments"`
	TorusMinorSegments int    `yaml:"torus_minor_segments"`
	HelixSegments      int    `yaml:"helix_segments"`
	HelixTubeSegments  int    `yaml:"helix_tube_segments"`
	ProfileSegments    int    `yaml:"profile_segments"`
	DraftSegments      int    `yaml:"draft_segments"`
	LoftSteps          int    `yaml:"loft_steps"`
	Units              string `yaml:"units"`
}

// Export holds output settings for the CLI.
type Export struct {
	// Format is one of "stl", "stl-ascii", "obj", "json".
	Format string `yaml:"format"`
	OutDir string `yaml:"out_dir"`
}

// Config is the top-level swarf.yaml document.
type Config struct {
	Defaults Defaults `yaml:"defaults"`
	Export   Export   `yaml:"export"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Defaults: Defaults{
			TorusMajorSegments: graph.DefaultTorusMajorSegments,
			TorusMinorSegments: graph.DefaultTorusMinorSegments,
			HelixSegments:      graph.DefaultHelixSegments,
			HelixTubeSegments:  graph.DefaultHelixTubeSegments,
			ProfileSegments:    graph.DefaultProfileSegments,
			DraftSegments:      graph.DefaultDraftSegments,
			LoftSteps:          graph.DefaultLoftSteps,
			Units:              "mm",
		},
		Export: Export{
			Format: "stl",
			OutDir: ".",
		},
	}
}

// Load reads a YAML config file. A missing file is not an error and
// yields the defaults; unset fields are filled from the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}

	fillDefaults(&cfg)
	return cfg, nil
}

// fillDefaults replaces zero or negative values with built-in defaults.
func fillDefaults(cfg *Config) {
	def := Default()

	intFields := []struct {
		dst *int
		def int
	}{
		{&cfg.Defaults.TorusMajorSegments, def.Defaults.TorusMajorSegments},
		{&cfg.Defaults.TorusMinorSegments, def.Defaults.TorusMinorSegments},
		{&cfg.Defaults.HelixSegments, def.Defaults.HelixSegments},
		{&cfg.Defaults.HelixTubeSegments, def.Defaults.HelixTubeSegments},
		{&cfg.Defaults.ProfileSegments, def.Defaults.ProfileSegments},
		{&cfg.Defaults.DraftSegments, def.Defaults.DraftSegments},
		{&cfg.Defaults.LoftSteps, def.Defaults.LoftSteps},
	}
	for _, f := range intFields {
		if *f.dst <= 0 {
			*f.dst = f.def
		}
	}
	if cfg.Defaults.Units == "" {
		cfg.Defaults.Units = def.Defaults.Units
	}
	if cfg.Export.Format == "" {
		cfg.Export.Format = def.Export.Format
	}
	if cfg.Export.OutDir == "" {
		cfg.Export.OutDir = def.Export.OutDir
	}
}

// GraphDefaults converts the config into graph-wide defaults.
func (c Config) GraphDefaults() graph.GlobalDefaults {
	return graph.GlobalDefaults{
		TorusMajorSegments: c.Defaults.TorusMajorSegments,
		TorusMinorSegments: c.Defaults.TorusMinorSegments,
		HelixSegments:      c.Defaults.HelixSegments,
		HelixTubeSegments:  c.Defaults.HelixTubeSegments,
		ProfileSegments:    c.Defaults.ProfileSegments,
		DraftSegments:      c.Defaults.DraftSegments,
		LoftSteps:          c.Defaults.LoftSteps,
		Units:              c.Defaults.Units,
	}
}
