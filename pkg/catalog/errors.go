package catalog

import "errors"

var (
	// ErrInvalidRule is returned when a rule declares contradictory or unknown settings.
	ErrInvalidRule = errors.New("catalog: invalid rule")

	// ErrDuplicateField is returned when two rules share a field name within one version.
	ErrDuplicateField = errors.New("catalog: duplicate field")

	// ErrEmptyField is returned for rules without a field name.
	ErrEmptyField = errors.New("catalog: rule has no field name")

	// ErrMissingVersion is returned when a catalog has no version label.
	ErrMissingVersion = errors.New("catalog: version is required")

	// ErrParseCatalog is returned when the YAML artifact cannot be decoded.
	ErrParseCatalog = errors.New("catalog: failed to parse rules")
)
