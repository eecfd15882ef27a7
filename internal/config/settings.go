package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/funvibe/godel/internal/errors"
)

// EnvPrefix is the prefix for environment overrides, e.g. GODEL_LOG_LEVEL.
const EnvPrefix = "GODEL"

// Settings holds the runtime options of the command-line tool.
type Settings struct {
	// Ontology is a YAML file of types and signatures loaded after bootstrap.
	Ontology string `mapstructure:"ontology"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// JSONLogs switches the logger to structured JSON.
	JSONLogs bool `mapstructure:"json_logs"`
	// Color is auto, always or never.
	Color string `mapstructure:"color"`
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("ontology", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("json_logs", false)
	v.SetDefault("color", "auto")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads an optional config file into v and decodes the result.
// An empty path skips the file and uses defaults plus environment.
func LoadSettings(v *viper.Viper, path string) (*Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading settings %s", path)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "decoding settings")
	}
	switch s.Color {
	case "auto", "always", "never":
	default:
		return nil, errors.WithHint(
			errors.Newf("invalid color mode %q", s.Color),
			"use one of: auto, always, never")
	}
	return &s, nil
}
