// SPDX-License-Identifier: MIT

// Package config loads run settings with viper.
//
// Precedence, lowest to highest: defaults, TOML file, VARBOX_* environment
// variables, command-line flags bound by the caller.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/katalvlaran/varbox/basis"
	"github.com/katalvlaran/varbox/eigen"
)

// EnvPrefix prefixes every environment override, e.g. VARBOX_SLOPE.
const EnvPrefix = "VARBOX"

// Keys, shared by TOML files, environment variables and flag bindings.
const (
	KeyBasis       = "basis"
	KeyLength      = "length"
	KeyMass        = "mass"
	KeySlope       = "slope"
	KeyPrintArrays = "print_arrays"
	KeyTimings     = "timings"
	KeySolver      = "solver"
	KeyStates      = "states"
	KeyPlot        = "plot"
	KeyLogJSON     = "log_json"
)

// Config is the full set of run settings.
type Config struct {
	Basis       int     `mapstructure:"basis" toml:"basis" comment:"number of box eigenfunctions N"`
	Length      float64 `mapstructure:"length" toml:"length" comment:"box length L"`
	Mass        float64 `mapstructure:"mass" toml:"mass" comment:"particle mass"`
	Slope       float64 `mapstructure:"slope" toml:"slope" comment:"potential slope b in V(x) = b·x"`
	PrintArrays bool    `mapstructure:"print_arrays" toml:"print_arrays" comment:"print T, V and H"`
	Timings     bool    `mapstructure:"timings" toml:"timings" comment:"print stage timings"`
	Solver      string  `mapstructure:"solver" toml:"solver" comment:"eigensolver backend: lapack or jacobi"`
	States      int     `mapstructure:"states" toml:"states" comment:"number of levels to report and plot"`
	Plot        string  `mapstructure:"plot" toml:"plot" comment:"probability density plot path (.png, .svg, .pdf); empty disables"`
	LogJSON     bool    `mapstructure:"log_json" toml:"log_json" comment:"structured JSON logs"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Basis:  10,
		Length: 1,
		Mass:   1,
		Slope:  1,
		Solver: eigen.NameLAPACK,
		States: 5,
	}
}

// SetDefaults registers Default() on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyBasis, d.Basis)
	v.SetDefault(KeyLength, d.Length)
	v.SetDefault(KeyMass, d.Mass)
	v.SetDefault(KeySlope, d.Slope)
	v.SetDefault(KeyPrintArrays, d.PrintArrays)
	v.SetDefault(KeyTimings, d.Timings)
	v.SetDefault(KeySolver, d.Solver)
	v.SetDefault(KeyStates, d.States)
	v.SetDefault(KeyPlot, d.Plot)
	v.SetDefault(KeyLogJSON, d.LogJSON)
}

// NewViper returns a viper instance with defaults and environment binding.
// A non-empty path is read as TOML; a missing file is an error.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return v, nil
}

// Load unmarshals v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads a TOML file over the defaults, ignoring the environment.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Load(v)
}

// Save writes cfg to path as TOML.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

// Params extracts the physical parameters.
func (c Config) Params() basis.Params {
	return basis.Params{N: c.Basis, Length: c.Length, Mass: c.Mass, Slope: c.Slope}
}

// Validate checks the physical parameters, the solver name and the
// reporting settings.
func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if _, err := eigen.New(c.Solver); err != nil {
		return err
	}
	if c.States < 0 {
		return fmt.Errorf("states=%d must be non-negative: %w", c.States, basis.ErrInvalidParameter)
	}

	return nil
}

// ReportedStates clamps States to the basis size.
func (c Config) ReportedStates() int {
	return min(c.States, c.Basis)
}
