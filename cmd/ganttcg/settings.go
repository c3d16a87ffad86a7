package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys. Flags use the same names; environment variables are
// LVOPT_ followed by the upper-cased key with dashes as underscores.
const (
	keyMaxIterations   = "max-iterations"
	keyTolerance       = "tolerance"
	keyParallelism     = "parallelism"
	keySolverTolerance = "solver-tolerance"
	keyVerbose         = "verbose"
)

var errInvalidSettings = errors.New("ganttcg: invalid settings")

// settings configures one solve.
type settings struct {
	MaxIterations   int     `mapstructure:"max-iterations"`
	Tolerance       float64 `mapstructure:"tolerance"`
	Parallelism     int     `mapstructure:"parallelism"`
	SolverTolerance float64 `mapstructure:"solver-tolerance"`
	Verbose         bool    `mapstructure:"verbose"`
}

// Validate rejects non-positive limits.
func (s settings) Validate() error {
	if s.MaxIterations <= 0 {
		return fmt.Errorf("%w: %s must be positive", errInvalidSettings, keyMaxIterations)
	}
	if !(s.Tolerance > 0) || !(s.SolverTolerance > 0) {
		return fmt.Errorf("%w: tolerances must be positive", errInvalidSettings)
	}
	if s.Parallelism <= 0 {
		return fmt.Errorf("%w: %s must be positive", errInvalidSettings, keyParallelism)
	}

	return nil
}

// loadSettings merges defaults, the config file (when path is set), the
// environment and the changed flags of fs.
func loadSettings(path string, fs *pflag.FlagSet) (settings, error) {
	var s settings
	v := viper.New()
	v.SetDefault(keyMaxIterations, 100)
	v.SetDefault(keyTolerance, 1e-6)
	v.SetDefault(keyParallelism, 4)
	v.SetDefault(keySolverTolerance, 1e-10)
	v.SetDefault(keyVerbose, false)

	v.SetEnvPrefix("LVOPT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return s, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	for _, key := range []string{keyMaxIterations, keyTolerance, keyParallelism, keySolverTolerance, keyVerbose} {
		if f := fs.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return s, err
			}
		}
	}
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}

	return s, s.Validate()
}
