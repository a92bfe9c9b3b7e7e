// Package config loads rads2ioda settings from an optional YAML file, a .env
// file, the environment and command line flags.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rtm0/rads2ioda/internal/catalog"
)

// Config holds the run settings.
type Config struct {
	Log         LogConfig `yaml:"log" mapstructure:"log"`
	Timezone    string    `yaml:"timezone" mapstructure:"timezone"`
	Satellites  []string  `yaml:"satellites" mapstructure:"satellites"`
	MetricsFile string    `yaml:"metrics_file" mapstructure:"metrics_file"`
	Converter   string    `yaml:"converter" mapstructure:"converter"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// EnvPrefix prefixes every environment variable, e.g. RADS2IODA_LOG_LEVEL.
const EnvPrefix = "RADS2IODA"

// FlagKeys maps flag names onto config keys.
var FlagKeys = map[string]string{
	"log-level":    "log.level",
	"log-format":   "log.format",
	"metrics-file": "metrics_file",
	"timezone":     "timezone",
}

// Load reads configuration. path names a config file; when empty
// rads2ioda.yaml is looked up in the working directory and is optional. Flags
// listed in FlagKeys override everything else when set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("rads2ioda")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("satellites", catalog.DefaultSatellites)
	v.SetDefault("metrics_file", "")
	v.SetDefault("converter", "rads2ioda")

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, eris.Wrapf(err, "config: bind flag %s", name)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if len(cfg.Satellites) == 0 {
		return nil, eris.New("config: satellites must not be empty")
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location returns the time zone all dates of a run are built in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, eris.Wrapf(err, "config: timezone %q", c.Timezone)
	}
	return loc, nil
}
