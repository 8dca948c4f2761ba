// Package config loads archcritic settings from an optional YAML file and
// ARCHCRITIC_* environment variables. Command-line flags are applied on top
// by the caller.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/dshills/archcritic/internal/schema"
)

// EnvPrefix is the prefix for environment overrides, e.g. ARCHCRITIC_FORMAT.
const EnvPrefix = "ARCHCRITIC"

// Config holds the resolved settings.
type Config struct {
	Format  string `mapstructure:"format"`
	Out     string `mapstructure:"out"`
	MinRPN  int    `mapstructure:"min_rpn"`
	FailOn  string `mapstructure:"fail_on"`
	Redact  bool   `mapstructure:"redact"`
	Verbose bool   `mapstructure:"verbose"`
	Example string `mapstructure:"example"`
	Serve   Serve  `mapstructure:"serve"`
}

// Serve holds HTTP service settings.
type Serve struct {
	Addr     string `mapstructure:"addr"`
	MaxBytes int64  `mapstructure:"max_bytes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", "json")
	v.SetDefault("out", "")
	v.SetDefault("min_rpn", 0)
	v.SetDefault("fail_on", "")
	v.SetDefault("redact", false)
	v.SetDefault("verbose", false)
	v.SetDefault("example", "")
	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("serve.max_bytes", 64<<10)
}

// Load reads path when given, otherwise archcritic.yaml from the working
// directory if present. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("archcritic")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate returns an error if any setting is out of range.
func (c *Config) Validate(formats []string) error {
	if !contains(formats, c.Format) {
		return fmt.Errorf("format must be one of %s, got %q", strings.Join(formats, ", "), c.Format)
	}

	if c.FailOn != "" {
		switch schema.Band(c.FailOn) {
		case schema.BandMedium, schema.BandHigh:
		default:
			return fmt.Errorf("fail-on must be MEDIUM or HIGH, got %q", c.FailOn)
		}
	}

	if c.MinRPN < 0 || c.MinRPN > 1000 {
		return fmt.Errorf("min-rpn must be between 0 and 1000, got %d", c.MinRPN)
	}

	if c.Serve.MaxBytes <= 0 {
		return fmt.Errorf("serve.max_bytes must be > 0, got %d", c.Serve.MaxBytes)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
