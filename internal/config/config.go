// Package config provides configuration loading and validation for the desktop shell.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a YAML configuration file into v. Environment
// variables in the file are expanded before parsing.
func Load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// Save writes v as YAML to path, creating parent directories.
func Save(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // G301: config dir is user-owned
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validator is implemented by configuration types that can check themselves.
type Validator interface {
	Validate() error
}

// ValidateConfig validates v if it implements Validator.
func ValidateConfig(v any) error {
	if validator, ok := v.(Validator); ok {
		return validator.Validate()
	}
	return nil
}

// LoadAndValidate loads a configuration file and validates the result.
func LoadAndValidate(path string, v any) error {
	if err := Load(path, v); err != nil {
		return err
	}
	return ValidateConfig(v)
}

// LoadOrDefault loads path into a copy of DefaultShellConfig. A missing file
// is not an error; the defaults are returned as-is.
func LoadOrDefault(path string) (ShellConfig, error) {
	cfg := DefaultShellConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, cfg.Validate()
	}
	if err := LoadAndValidate(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
