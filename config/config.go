package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/distribution-auth/tokenlife/token"
)

// Config collects all configuration options.
type Config struct {
	Logger   Logger                   `yaml:"logger"`
	Defaults Defaults                 `yaml:"defaults"`
	Tokens   []map[string]interface{} `yaml:"tokens"`
}

// Load reads the configuration from a YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	return Parse(data)
}

// Parse reads the configuration from YAML.
func Parse(data []byte) (Config, error) {
	var config Config

	err := yaml.Unmarshal(data, &config)
	if err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.Logger.Level != "" {
		if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
			return fmt.Errorf("logger: %w", err)
		}
	}

	if err := c.Defaults.Validate(); err != nil {
		return err
	}

	if len(c.Tokens) == 0 {
		return fmt.Errorf("at least one token is required")
	}

	if _, err := c.TokenOptions(clockwork.NewRealClock()); err != nil {
		return err
	}

	return nil
}

// rawConfig is used by other config structs to unmarshal yaml config first.
type rawConfig map[string]interface{}

// Defaults are applied to token entries that do not set the corresponding key.
type Defaults struct {
	WarnFor time.Duration `mapstructure:"warnFor"`
	Type    string        `mapstructure:"type"`
}

func (d *Defaults) UnmarshalYAML(value *yaml.Node) error {
	var rawConfig rawConfig

	err := value.Decode(&rawConfig)
	if err != nil {
		return err
	}

	var defaults Defaults

	err = decode(rawConfig, &defaults)
	if err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	*d = defaults

	return nil
}

// Validate validates the defaults.
func (d Defaults) Validate() error {
	if d.WarnFor < 0 {
		return fmt.Errorf("defaults: warnFor must not be negative")
	}

	if d.Type != "" {
		if _, err := token.ParseType(d.Type); err != nil {
			return fmt.Errorf("defaults: %w", err)
		}
	}

	return nil
}
