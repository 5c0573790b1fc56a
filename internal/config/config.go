package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the user-adjustable beep parameters persisted between runs.
type Config struct {
	// Sound is the path to the sound file played on every beep.
	Sound string `yaml:"sound"`
	// Delay is the number of seconds between beeps.
	Delay int `yaml:"delay"`
	// Volume is the playback volume in percent, from 0 to 100.
	Volume int `yaml:"volume"`
}

const (
	// DefaultConfigFilename is the default filename for beep settings.
	DefaultConfigFilename = "bipmap-settings.yaml"

	// DefaultSound is the sound file used when none is configured.
	DefaultSound = "beep.wav"

	// DefaultDelay is the number of seconds between beeps on first run.
	DefaultDelay = 7

	// DefaultVolume is the playback volume in percent on first run.
	DefaultVolume = 20

	// MinVolume and MaxVolume bound the valid volume range in percent.
	MinVolume = 0
	MaxVolume = 100

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errDelayNotPositive is returned when the delay is negative.
	errDelayNotPositive = errors.New("delay must be a positive number of seconds")
	// errVolumeOutOfRange is returned when the volume falls outside 0-100.
	errVolumeOutOfRange = errors.New("volume must be between 0 and 100")
)

// Default returns the settings written on first run.
func Default() *Config {
	return &Config{
		Sound:  DefaultSound,
		Delay:  DefaultDelay,
		Volume: DefaultVolume,
	}
}

// Clone returns a copy of the configuration to avoid leaking internal references.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	cloned := *c

	return &cloned
}

// DelayDuration returns the delay between beeps as a time.Duration.
func (c *Config) DelayDuration() time.Duration {
	return time.Duration(c.Delay) * time.Second
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for valid ranges.
// An empty Sound and a zero Delay are treated as absent keys and filled with
// their defaults; a negative delay or an out-of-range volume is an error.
func Validate(settings *Config) error {
	if settings.Sound == "" {
		settings.Sound = DefaultSound
	}

	// Set default delay if not specified
	if settings.Delay == 0 {
		settings.Delay = DefaultDelay
	}

	if settings.Delay < 0 {
		return fmt.Errorf("%d: %w", settings.Delay, errDelayNotPositive)
	}

	if settings.Volume < MinVolume || settings.Volume > MaxVolume {
		return fmt.Errorf("%d: %w", settings.Volume, errVolumeOutOfRange)
	}

	return nil
}
