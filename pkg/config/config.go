// Package config holds run settings unmarshalled from Viper: an optional
// ksea.yaml, KSEA_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ChrisMcGann/KSEA/pkg/enrich"
	"github.com/ChrisMcGann/KSEA/pkg/reader/refdb"
	"github.com/ChrisMcGann/KSEA/pkg/reader/table"
	"github.com/ChrisMcGann/KSEA/pkg/score"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. KSEA_MIN_SUB.
const EnvPrefix = "KSEA"

// OutputConfig selects the result files of a run
type OutputConfig struct {
	// directory receiving the csv tables
	Dir string `mapstructure:"out"`

	// optional SQLite database path
	SQLite string `mapstructure:"sqlite"`

	// whether to export the plotting series as .npy arrays
	Npy bool `mapstructure:"npy"`

	// whether to write report.yaml
	Report bool `mapstructure:"report"`
}

// Config is the root-level settings struct
type Config struct {
	// measurement table
	Input string `mapstructure:"in"`

	// reference database file and its layout
	Database string `mapstructure:"db"`
	DBFormat string `mapstructure:"db-format"`

	Method string `mapstructure:"method"`
	Mode   string `mapstructure:"mode"`

	// minimum substrate count for a kinase to enter the plotting series
	MinSub int `mapstructure:"min-sub"`

	Graphics bool `mapstructure:"graphics"`

	// input size limit in bytes, 0 disables it
	MaxInputBytes int64 `mapstructure:"max-input-bytes"`

	Verbose bool `mapstructure:"verbose"`

	Output OutputConfig `mapstructure:",squash"`
}

// SetDefaults registers the default of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("in", "")
	v.SetDefault("db", "")
	v.SetDefault("db-format", string(refdb.PSP))
	v.SetDefault("method", string(score.KSTest))
	v.SetDefault("mode", string(enrich.Single))
	v.SetDefault("min-sub", 5)
	v.SetDefault("graphics", false)
	v.SetDefault("max-input-bytes", table.DefaultMaxBytes)
	v.SetDefault("verbose", false)
	v.SetDefault("out", ".")
	v.SetDefault("sqlite", "")
	v.SetDefault("npy", false)
	v.SetDefault("report", true)
}

// Load prepares v to read path, or ksea.yaml from the working directory
// or $HOME/.ksea when path is empty, plus KSEA_* environment variables.
// A missing default settings file is not an error.
func Load(v *viper.Viper, path string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ksea")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ksea")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return nil
}

// New returns a Config populated from v
func New(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode settings: %w", err)
	}
	return c, nil
}

// Validate checks that names resolve and limits are sane
func (c Config) Validate() error {
	if _, err := score.ParseMethod(c.Method); err != nil {
		return err
	}
	if _, err := enrich.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := refdb.ParseFormat(c.DBFormat); err != nil {
		return err
	}
	if c.MinSub < 0 {
		return fmt.Errorf("min-sub must be >= 0, got %d", c.MinSub)
	}
	if c.MaxInputBytes < 0 {
		return fmt.Errorf("max-input-bytes must be >= 0, got %d", c.MaxInputBytes)
	}
	return nil
}

// Options converts the settings into enrich options. Call Validate first.
func (c Config) Options() (enrich.Options, error) {
	m, err := score.ParseMethod(c.Method)
	if err != nil {
		return enrich.Options{}, err
	}
	mode, err := enrich.ParseMode(c.Mode)
	if err != nil {
		return enrich.Options{}, err
	}
	return enrich.Options{
		Method:   m,
		Mode:     mode,
		MinSub:   c.MinSub,
		Graphics: c.Graphics,
	}, nil
}
