package validator

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/dmitrymomot/fieldrules/pkg/catalog"
	"github.com/dmitrymomot/fieldrules/pkg/pattern"
)

type compiledRule struct {
	rule    catalog.Rule
	matcher *pattern.Matcher
}

// Evaluator judges field values against a catalog. It is immutable after New
// and safe for concurrent use.
type Evaluator struct {
	catalog   *catalog.Catalog
	rules     map[string]compiledRule
	knownOnly bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithKnownFieldsOnly makes fields without a rule a contract violation instead
// of an accepted verdict.
func WithKnownFieldsOnly() Option {
	return func(e *Evaluator) { e.knownOnly = true }
}

// New compiles every rule of cat. Any compile failure aborts construction;
// all failures are reported together.
func New(cat *catalog.Catalog, opts ...Option) (*Evaluator, error) {
	if cat == nil {
		return nil, errors.New("validator: nil catalog")
	}

	e := &Evaluator{
		catalog: cat,
		rules:   make(map[string]compiledRule, cat.Len()),
	}
	for _, opt := range opts {
		opt(e)
	}

	var errs []error
	for _, field := range cat.Fields() {
		rule, _ := cat.Get(field)
		m, err := pattern.CompileRule(rule)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		e.rules[field] = compiledRule{rule: rule, matcher: m}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return e, nil
}

var loadDefault = sync.OnceValues(func() (*Evaluator, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	return New(cat)
})

// Default returns the process-wide evaluator over catalog.Default. It is
// built on first use and shared afterwards.
func Default() (*Evaluator, error) {
	return loadDefault()
}

// MustDefault is like Default but panics on catalog or compile errors.
func MustDefault() *Evaluator {
	e, err := Default()
	if err != nil {
		panic(fmt.Sprintf("validator: default evaluator: %v", err))
	}
	return e
}

// Catalog returns the catalog the evaluator was built from.
func (e *Evaluator) Catalog() *catalog.Catalog { return e.catalog }

// Matcher returns the compiled matcher pair for field.
func (e *Evaluator) Matcher(field string) (*pattern.Matcher, bool) {
	cr, ok := e.rules[field]
	if !ok {
		return nil, false
	}
	return cr.matcher, true
}

// Evaluate judges one value. Bounds are checked before the pattern, so an
// over-long value reports too_long even if it would also mismatch. Text that
// is not valid UTF-8 never matches, even for rules without a pattern.
//
// A field without a rule is accepted unless WithKnownFieldsOnly is set. The
// error is non-nil only for contract violations (see ContractError).
func (e *Evaluator) Evaluate(field string, value any) (FieldVerdict, error) {
	cr, ok := e.rules[field]
	if !ok {
		if e.knownOnly {
			return FieldVerdict{}, &ContractError{Field: field, Err: ErrUnknownField}
		}
		return accepted(field), nil
	}

	switch cr.rule.Kind {
	case catalog.KindCollection:
		n, err := count(field, value)
		if err != nil {
			return FieldVerdict{}, err
		}
		return cr.judgeCount(n), nil
	default:
		s, err := textValue(field, value)
		if err != nil {
			return FieldVerdict{}, err
		}
		return cr.judgeText(s), nil
	}
}

// MustEvaluate is like Evaluate but panics on contract violations.
func (e *Evaluator) MustEvaluate(field string, value any) FieldVerdict {
	v, err := e.Evaluate(field, value)
	if err != nil {
		panic(err)
	}
	return v
}

func (cr compiledRule) judgeText(s string) FieldVerdict {
	r := cr.rule
	if r.MinLength != nil || r.MaxLength != nil {
		n := length(s)
		if r.MinLength != nil && n < *r.MinLength {
			return rejected(r.Field, r.ReasonKey(), ReasonTooShort, map[string]any{"min": *r.MinLength, "length": n})
		}
		if r.MaxLength != nil && n > *r.MaxLength {
			return rejected(r.Field, r.ReasonKey(), ReasonTooLong, map[string]any{"max": *r.MaxLength, "length": n})
		}
	}
	// RE2 reads invalid bytes as U+FFFD, which negated classes accept; no
	// browser can submit such a value, so it never matches.
	if !utf8.ValidString(s) || !cr.matcher.Match(s) {
		return rejected(r.Field, r.ReasonKey(), ReasonPatternMismatch, nil)
	}
	return accepted(r.Field)
}

func (cr compiledRule) judgeCount(n int) FieldVerdict {
	r := cr.rule
	if r.MinCount != nil && n < *r.MinCount {
		return rejected(r.Field, r.ReasonKey(), ReasonTooFew, map[string]any{"min": *r.MinCount, "count": n})
	}
	return accepted(r.Field)
}
