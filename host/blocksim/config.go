package blocksim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"dspblocks/f2837x"
	"dspblocks/host/plotrx"
	"dspblocks/telemetry"
)

// Config describes the demo model and where its SCI line goes.
type Config struct {
	// Tsamp is the model sample time in seconds
	Tsamp float64 `yaml:"tsamp"`

	// Duration bounds the run in seconds; 0 runs until interrupted
	Duration float64 `yaml:"duration"`

	Signal SignalConfig        `yaml:"signal"`
	Plot   PlotConfig          `yaml:"plot"`
	Button ButtonConfig        `yaml:"button"`
	PWM    PWMConfig           `yaml:"pwm"`
	Line   LineConfig          `yaml:"line"`
	Log    plotrx.OutputConfig `yaml:"log"`
}

// SignalConfig is the sine wave applied to ADCINA0
type SignalConfig struct {
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
	Offset    float64 `yaml:"offset"`
}

type PlotConfig struct {
	Baud     int `yaml:"baud"`
	Capacity int `yaml:"capacity"`
}

// ButtonConfig drives the button pin with a square wave of Period seconds
type ButtonConfig struct {
	Pin      int     `yaml:"pin"`
	LED      int     `yaml:"led"`
	Debounce int     `yaml:"debounce"`
	Period   float64 `yaml:"period"`
}

type PWMConfig struct {
	Output string `yaml:"output"`
	Period int    `yaml:"period"`
	Duty   int    `yaml:"duty"`
}

// LineConfig selects the SCI line sink: a serial port when Device is set,
// else a rotating file, else nothing.
type LineConfig struct {
	Device string              `yaml:"device"`
	Output plotrx.OutputConfig `yaml:"output"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Tsamp == 0 {
		cfg.Tsamp = 0.001
	}
	if cfg.Signal.Frequency == 0 {
		cfg.Signal.Frequency = 5
	}
	if cfg.Signal.Amplitude == 0 {
		cfg.Signal.Amplitude = 1
	}
	if cfg.Signal.Offset == 0 {
		cfg.Signal.Offset = 1.5
	}
	if cfg.Plot.Baud == 0 {
		cfg.Plot.Baud = f2837x.DefaultBaud
	}
	if cfg.Plot.Capacity == 0 {
		cfg.Plot.Capacity = telemetry.DefaultCapacity
	}
	if cfg.Button.Pin == 0 {
		cfg.Button.Pin = 41
	}
	if cfg.Button.LED == 0 {
		cfg.Button.LED = 31 // LaunchPad LED1
	}
	if cfg.Button.Debounce == 0 {
		cfg.Button.Debounce = 3
	}
	if cfg.Button.Period == 0 {
		cfg.Button.Period = 0.5
	}
	if cfg.PWM.Output == "" {
		cfg.PWM.Output = "out1a"
	}
	if cfg.PWM.Period == 0 {
		cfg.PWM.Period = 5000
	}
	if cfg.PWM.Duty == 0 {
		cfg.PWM.Duty = 50
	}
}

// Validate checks the settings the blocks cannot check themselves
func (c *Config) Validate() error {
	if c.Tsamp < 0 || c.Duration < 0 {
		return errors.New("tsamp and duration must not be negative")
	}
	if c.Plot.Capacity < 2 {
		return fmt.Errorf("plot capacity %d: %w", c.Plot.Capacity, telemetry.ErrCapacity)
	}
	if _, err := f2837x.LookupEPWMOutput(c.PWM.Output); err != nil {
		return fmt.Errorf("pwm output %q: %w", c.PWM.Output, err)
	}
	return nil
}
