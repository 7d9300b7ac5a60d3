package config

import "errors"

var (
	// ErrParse indicates the file is not valid YAML for Config.
	ErrParse = errors.New("config: parse")

	// ErrInvalid indicates a semantic problem found by Validate.
	ErrInvalid = errors.New("config: invalid")
)
