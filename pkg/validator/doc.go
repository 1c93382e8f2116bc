// Package validator evaluates field values against a rule catalog and
// aggregates the verdicts into reports.
//
// An Evaluator is built once from a catalog.Catalog. Construction compiles
// every rule's pattern into a pattern.Matcher pair and fails if any rule is
// malformed or cannot be expressed for the browser, so authoring mistakes
// surface at startup rather than on the first request. After New the
// evaluator is immutable and may be shared across goroutines.
//
// # Evaluating fields
//
// Evaluate judges a single value:
//
//   - fields without a rule are accepted (or rejected as a contract violation
//     under WithKnownFieldsOnly);
//   - text rules check length first, then the pattern. Length counts logical
//     characters, i.e. runes after NFC normalisation;
//   - collection rules only bound the element count.
//
// The first failing check decides the verdict's Reason: too_short, too_long,
// too_few or pattern_mismatch. Every rejected verdict carries a translation
// key of the form "<reason key>.<reason>", e.g. "validation.username.too_short",
// plus values such as "min" and "length" for message templates.
//
// # Reports
//
//	report, err := validator.MustDefault().ValidateRecord(validator.Record{
//	    "username": "alice_01",
//	    "email":    "alice@example.com",
//	    "tags":     []string{"go"},
//	})
//	if err != nil {
//	    // contract violation: a caller passed the wrong type
//	}
//	if verrs := validator.ExtractValidationErrors(report.Err()); verrs != nil {
//	    // verrs.Has("username"), verrs.Get("username"), ...
//	}
//
// ValidateRecord never stops at the first failure. Fields appear in catalog
// order followed by unknown fields in lexical order; ValidateFields keeps the
// caller's order instead.
//
// # Errors
//
// Rejection is data, not an error: it lives in FieldVerdict and Report.
// Report.Err converts failures to ValidationErrors for handlers that work
// with errors. Supplying a value of the wrong shape yields a *ContractError
// that matches ErrContractViolation.
//
// # Descriptors
//
// Descriptors exposes each rule with its restricted pattern and bounds, which
// is everything an HTML form or an API schema needs to enforce the same
// constraints client-side.
package validator
