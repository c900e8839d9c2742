package config

import "errors"

// Sentinel errors for configuration loading
var (
	// ErrUnsupportedVersion indicates a configuration version other than types.ConfigVersion
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrUnparseableConfig indicates a file that is neither valid JSON nor YAML
	ErrUnparseableConfig = errors.New("failed to parse config as JSON or YAML")

	// ErrInvalidConfig indicates a configuration with error-level validation issues
	ErrInvalidConfig = errors.New("invalid config")
)
