package validator

import "github.com/dmitrymomot/fieldrules/pkg/catalog"

// Descriptor is the client-facing view of one rule: what a form needs to
// enforce the same constraint in the browser.
//
// MinLength and MaxLength count runes of the NFC form. HTML minlength and
// maxlength count UTF-16 code units instead, so they must not be copied into
// input attributes; Pattern and Required are exact.
type Descriptor struct {
	Field     string       `json:"field"`
	Kind      catalog.Kind `json:"kind"`
	Pattern   string       `json:"pattern,omitempty"`
	Required  bool         `json:"required"`
	MinLength *int         `json:"min_length,omitempty"`
	MaxLength *int         `json:"max_length,omitempty"`
	MinCount  *int         `json:"min_count,omitempty"`
	ReasonKey string       `json:"reason_key"`
}

// Descriptors returns one descriptor per rule in catalog order. Pattern is
// the restricted form, ready for an HTML pattern attribute.
func (e *Evaluator) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, e.catalog.Len())
	for _, field := range e.catalog.Fields() {
		d, _ := e.Descriptor(field)
		out = append(out, d)
	}
	return out
}

// Descriptor returns the descriptor for a single field.
func (e *Evaluator) Descriptor(field string) (Descriptor, bool) {
	cr, ok := e.rules[field]
	if !ok {
		return Descriptor{}, false
	}
	r, _ := e.catalog.Get(field) // fresh copy, callers may keep the bounds
	return Descriptor{
		Field:     r.Field,
		Kind:      r.Kind,
		Pattern:   cr.matcher.Restricted.String(),
		Required:  !cr.acceptsEmpty(),
		MinLength: r.MinLength,
		MaxLength: r.MaxLength,
		MinCount:  r.MinCount,
		ReasonKey: r.ReasonKey(),
	}, true
}

// acceptsEmpty reports whether an empty submission passes the rule. Browsers
// skip the pattern attribute for empty inputs, so a rule that rejects the
// empty value needs an explicit required attribute.
func (cr compiledRule) acceptsEmpty() bool {
	if cr.rule.Kind == catalog.KindCollection {
		return cr.judgeCount(0).Accepted
	}
	return cr.judgeText("").Accepted
}
