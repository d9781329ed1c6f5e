// Package config loads and stores lpmonitor profiles: which MIDI
// backend and port to use, how often to poll, and the pad bindings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/padworks/launchmini/internal/actions"
)

// Backend names a MIDI backend implementation.
type Backend string

const (
	BackendPortMidi Backend = "portmidi"
	BackendGoMidi   Backend = "gomidi"
)

const configFileName = "lpmonitor.yaml"

// Profile holds the settings for one device setup.
type Profile struct {
	ID   string `yaml:"id" mapstructure:"id"`
	Name string `yaml:"name" mapstructure:"name"`

	// Port is the MIDI device name; empty means discover by name.
	Port    string  `yaml:"port" mapstructure:"port"`
	Backend Backend `yaml:"backend" mapstructure:"backend"`

	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// ExitRow/ExitCol name the pad that stops the monitor.
	ExitRow uint8 `yaml:"exit_row" mapstructure:"exit_row"`
	ExitCol uint8 `yaml:"exit_col" mapstructure:"exit_col"`

	Bindings []actions.Binding `yaml:"bindings" mapstructure:"bindings"`
}

// NewProfile creates a profile with a generated ID and defaults.
func NewProfile() Profile {
	return Profile{
		ID:           uuid.New().String(),
		Name:         "default",
		Backend:      BackendPortMidi,
		PollInterval: 700 * time.Millisecond,
		ExitRow:      3,
		ExitCol:      5,
	}
}

// Config holds all profiles plus the one currently selected.
type Config struct {
	CurrentProfile string    `yaml:"current_profile" mapstructure:"current_profile"`
	Profiles       []Profile `yaml:"profiles" mapstructure:"profiles"`
}

// Current returns the selected profile, falling back to the first one.
func (c *Config) Current() *Profile {
	for i := range c.Profiles {
		if c.Profiles[i].ID == c.CurrentProfile || c.Profiles[i].Name == c.CurrentProfile {
			return &c.Profiles[i]
		}
	}
	if len(c.Profiles) > 0 {
		return &c.Profiles[0]
	}
	return nil
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "lpmonitor"), nil
}

// Path returns the full path to the config file
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config, checking the working directory first and the
// user config directory second. A missing file yields defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("lpmonitor")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			def := NewProfile()
			return &Config{
				CurrentProfile: def.ID,
				Profiles:       []Profile{def},
			}, nil
		}
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if len(cfg.Profiles) == 0 {
		def := NewProfile()
		cfg.Profiles = []Profile{def}
		cfg.CurrentProfile = def.ID
	}
	for i := range cfg.Profiles {
		if cfg.Profiles[i].PollInterval <= 0 {
			cfg.Profiles[i].PollInterval = 700 * time.Millisecond
		}
		if cfg.Profiles[i].Backend == "" {
			cfg.Profiles[i].Backend = BackendPortMidi
		}
	}

	return &cfg, nil
}

// Save writes the config to the user config directory.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
