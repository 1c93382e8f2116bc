package validator

import "fmt"

// Reason is the machine-readable cause of a rejection.
type Reason string

const (
	ReasonTooShort        Reason = "too_short"
	ReasonTooLong         Reason = "too_long"
	ReasonTooFew          Reason = "too_few"
	ReasonPatternMismatch Reason = "pattern_mismatch"
)

// FieldVerdict is the outcome of evaluating one field. Reason is empty when
// the value was accepted.
type FieldVerdict struct {
	Field             string         `json:"field"`
	Accepted          bool           `json:"accepted"`
	Reason            Reason         `json:"reason,omitempty"`
	Message           string         `json:"message,omitempty"`
	TranslationKey    string         `json:"translation_key,omitempty"`
	TranslationValues map[string]any `json:"translation_values,omitempty"`
}

func accepted(field string) FieldVerdict {
	return FieldVerdict{Field: field, Accepted: true}
}

func rejected(field, reasonKey string, reason Reason, values map[string]any) FieldVerdict {
	return FieldVerdict{
		Field:             field,
		Reason:            reason,
		Message:           message(reason, values),
		TranslationKey:    reasonKey + "." + string(reason),
		TranslationValues: values,
	}
}

func message(reason Reason, values map[string]any) string {
	switch reason {
	case ReasonTooShort:
		return fmt.Sprintf("must be at least %v characters long", values["min"])
	case ReasonTooLong:
		return fmt.Sprintf("must be at most %v characters long", values["max"])
	case ReasonTooFew:
		return fmt.Sprintf("must contain at least %v items", values["min"])
	case ReasonPatternMismatch:
		return "has an invalid format"
	}
	return "is invalid"
}

func (v FieldVerdict) validationError() ValidationError {
	return ValidationError{
		Field:             v.Field,
		Reason:            v.Reason,
		Message:           v.Message,
		TranslationKey:    v.TranslationKey,
		TranslationValues: v.TranslationValues,
	}
}
