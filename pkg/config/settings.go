package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is the name of the settings file inside the config directory.
const SettingsFileName = "settings.yaml"

// Settings are process-wide defaults read from the settings file.
// A zero port means "no default".
type Settings struct {
	UDPPort int `yaml:"udpPort"`
	TCPPort int `yaml:"tcpPort"`
}

// DefaultSettingsPath returns the settings file in the user's config directory.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("os.UserConfigDir(): %w", err)
	}
	return filepath.Join(dir, "pktsend", SettingsFileName), nil
}

// LoadSettings reads the settings file at path. A missing file yields
// zero Settings.
func LoadSettings(path string) (Settings, error) {
	var s Settings

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// DefaultPort returns the configured default destination port for UDP
// (udp == true) or TCP.
func (s Settings) DefaultPort(udp bool) int {
	if udp {
		return s.UDPPort
	}
	return s.TCPPort
}

// Validate checks that configured ports are in range.
func (s *Settings) Validate() []error {
	var errors []error

	if err := ValidatePort(s.UDPPort); err != nil {
		errors = append(errors, fmt.Errorf("settings 'udpPort': %s", err))
	}
	if err := ValidatePort(s.TCPPort); err != nil {
		errors = append(errors, fmt.Errorf("settings 'tcpPort': %s", err))
	}

	return errors
}
