package pipelinecfg

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the settings file looked up in the working directory.
const DefaultFileName = "mlpipeops.yml"

// Load reads a YAML file from the given path and returns a deserialized Root
// with defaults applied. It performs no semantic validation; see Validate.
func Load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var cfg Root
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return cfg.Defaults(), nil
}

// LoadOptional behaves like Load but returns defaults when path does not exist
// and optional is true.
func LoadOptional(path string, optional bool) (*Root, error) {
	cfg, err := Load(path)
	if err != nil && optional && errors.Is(err, os.ErrNotExist) {
		return (&Root{}).Defaults(), nil
	}
	return cfg, err
}
