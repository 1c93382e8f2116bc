package config

import "errors"

var (
	// ErrParsingConfig is returned when the environment cannot be decoded into
	// the config struct.
	ErrParsingConfig = errors.New("config: failed to parse environment")

	// ErrNilPointer is returned when Load receives a nil pointer.
	ErrNilPointer = errors.New("config: nil pointer")
)
