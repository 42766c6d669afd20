package config

import (
	"errors"
)

var (
	// ErrParseFailure is returned when a present config file can not be
	// parsed in its declared format.
	ErrParseFailure = errors.New("config file can not be parsed")

	// ErrInvalidValue is returned when a resolved field fails validation.
	ErrInvalidValue = errors.New("invalid config value")
)
