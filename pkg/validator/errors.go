package validator

import (
	"errors"
	"fmt"
)

var (
	// ErrValidationFailed matches any ValidationErrors value via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrContractViolation is returned when a caller supplies a value of the
	// wrong shape for a field's rule. It is a programming error, not a
	// validation result.
	ErrContractViolation = errors.New("validator: contract violation")

	// ErrUnknownField is returned for fields outside the catalog when the
	// evaluator was built with WithKnownFieldsOnly.
	ErrUnknownField = errors.New("validator: unknown field")
)

// ContractError describes a value the evaluator refused to judge.
type ContractError struct {
	Field string
	Want  string
	Got   string
	Err   error
}

func (e *ContractError) Error() string {
	if e.Want == "" {
		return fmt.Sprintf("validator: field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("validator: field %q: want %s, got %s", e.Field, e.Want, e.Got)
}

// Unwrap exposes ErrContractViolation and, when set, the specific cause.
func (e *ContractError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrContractViolation}
	}
	return []error{ErrContractViolation, e.Err}
}
