package plotrx

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"dspblocks/host/serial"
	"dspblocks/telemetry"
)

// Config is the receiver configuration, read from YAML.
type Config struct {
	Serial serial.Config `yaml:"serial"`

	// Capacity is the ring size of the transmitting plot block; a cycle
	// carries Capacity-1 samples.
	Capacity int `yaml:"capacity"`

	// Print echoes every complete cycle to stdout
	Print bool `yaml:"print"`

	Output OutputConfig `yaml:"output"`
	Log    OutputConfig `yaml:"log"`
}

// OutputConfig describes a rotating file. An empty Path disables it.
type OutputConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig returns the setup that matches a plot block with default
// parameters.
func DefaultConfig() *Config {
	return &Config{
		Serial:   *serial.DefaultConfig(""),
		Capacity: telemetry.DefaultCapacity,
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults. PLOTRX_DEVICE overrides the serial device.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if dev := os.Getenv("PLOTRX_DEVICE"); dev != "" {
		cfg.Serial.Device = dev
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = 2000000
	}
	if cfg.Capacity == 0 {
		cfg.Capacity = telemetry.DefaultCapacity
	}
	for _, o := range []*OutputConfig{&cfg.Output, &cfg.Log} {
		if o.Path == "" {
			continue
		}
		if o.MaxSizeMB == 0 {
			o.MaxSizeMB = 100
		}
		if o.MaxBackups == 0 {
			o.MaxBackups = 3
		}
	}
}

// Validate checks the receiver settings. The serial device may still be
// empty here; it can come from the command line.
func (c *Config) Validate() error {
	if c.Capacity < 2 {
		return fmt.Errorf("capacity %d: %w", c.Capacity, telemetry.ErrCapacity)
	}
	if c.Serial.Baud < 0 {
		return errors.New("serial baud must be positive")
	}
	if c.Serial.ReadTimeout < 0 {
		return errors.New("serial read timeout must not be negative")
	}
	return nil
}
