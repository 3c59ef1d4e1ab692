/*
Package config loads the motion tree run configuration: input/output
paths, chain identifiers, and the clustering engine's five parameters.
It follows the same YAML-plus-XDG-path convention as the rest of the
ambient stack, down to embedding a default config a user can copy and
edit.
*/
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/motiontree/motiontree/cluster"
	"github.com/motiontree/motiontree/motionerr"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

// Config is a complete run configuration: everything needed to locate
// two conformations, pick their chains, and parameterize the clustering
// engine.
type Config struct {
	Paths      Paths      `yaml:"paths"`
	Parameters Parameters `yaml:"parameters"`
	Alignment  Alignment  `yaml:"alignment"`
	Logging    Logging    `yaml:"logging"`
}

// Paths locates structural input files and the root output directory,
// plus the default protein/chain pair a bare "run" with no flags acts on.
// Protein1/Protein2 resolve to a structure file as InputDir/<id>.cif.
type Paths struct {
	InputDir   string `yaml:"input_dir"`
	OutputRoot string `yaml:"output_root"`
	Protein1   string `yaml:"protein1"`
	Chain1     string `yaml:"chain1"`
	Protein2   string `yaml:"protein2"`
	Chain2     string `yaml:"chain2"`
}

// StructurePath returns the local structure file InputDir resolves id to.
func (p Paths) StructurePath(id string) string {
	return filepath.Join(p.InputDir, id+".cif")
}

// Parameters mirrors cluster.Params with YAML tags; Validate converts it
// to a cluster.Params once loaded.
type Parameters struct {
	SpatialProximity float64 `yaml:"spatial_proximity"`
	SmallNode        int     `yaml:"small_node"`
	ClustSize        int     `yaml:"clust_size"`
	Magnitude        int     `yaml:"magnitude"`
	DissimilarityK   int     `yaml:"dissimilarity_k"`
}

// ToClusterParams converts the YAML-facing Parameters into cluster.Params.
func (p Parameters) ToClusterParams() cluster.Params {
	return cluster.Params{
		SpatialProximity: p.SpatialProximity,
		SmallNode:        p.SmallNode,
		ClustSize:        p.ClustSize,
		Magnitude:        p.Magnitude,
		DissimilarityK:   p.DissimilarityK,
	}
}

// Alignment selects the residue aligner's identity-threshold mode.
type Alignment struct {
	Mode string `yaml:"mode"`
}

// Logging configures the run's log verbosity.
type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for motiontree.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "motiontree")
}

// DataDir returns the XDG data directory for motiontree.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "motiontree")
}

// ResolveConfigPath finds the config file following priority: explicit
// path > ~/.config/motiontree/config.yaml > ./config.yaml.
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", motionerr.Wrap(motionerr.InputMissing, "explicit config path not found", err)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", motionerr.New(motionerr.InputMissing,
		fmt.Sprintf("no config file found; searched %s and ./config.yaml", xdgConfig))
}

// Load reads and parses a config YAML file, applying the documented
// defaults for any field the file omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, motionerr.Wrap(motionerr.IOFailure, "reading config", err)
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, motionerr.Wrap(motionerr.IOFailure, "parsing config", err)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal(DefaultConfigYAML, &cfg); err != nil {
		// The embedded default is built into the binary; a parse failure
		// here means the binary itself is broken, not a user input error.
		panic(fmt.Sprintf("embedded default.yaml is invalid: %v", err))
	}
	return &cfg
}

// Validate checks the loaded clustering parameters against their
// documented bounds, returning every violation at once.
func (c *Config) Validate() error {
	return c.Parameters.ToClusterParams().Validate()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
