package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Kind describes the shape of values a rule accepts.
type Kind string

const (
	// KindText rules apply to single string values.
	KindText Kind = "text"
	// KindCollection rules apply to lists (tags, photos) and only bound the element count.
	KindCollection Kind = "collection"
)

// Rule is the canonical definition of one field's acceptable values.
type Rule struct {
	Field     string   `yaml:"field"`
	Kind      Kind     `yaml:"kind"`
	Pattern   string   `yaml:"pattern,omitempty"`
	Requires  []string `yaml:"requires,omitempty"`
	MinLength *int     `yaml:"min_length,omitempty"`
	MaxLength *int     `yaml:"max_length,omitempty"`
	MinCount  *int     `yaml:"min_count,omitempty"`
	Reason    string   `yaml:"reason,omitempty"`
}

// ReasonKey returns the translation key prefix for failures of this rule.
// Falls back to "validation.<field>" when the catalog does not set one.
func (r Rule) ReasonKey() string {
	if r.Reason != "" {
		return r.Reason
	}
	return "validation." + r.Field
}

// clone copies the bound pointers and slices so callers can't reach catalog memory.
func (r Rule) clone() Rule {
	out := r
	out.Requires = slices.Clone(r.Requires)
	out.MinLength = cloneInt(r.MinLength)
	out.MaxLength = cloneInt(r.MaxLength)
	out.MinCount = cloneInt(r.MinCount)
	return out
}

func (r Rule) validate() error {
	if strings.TrimSpace(r.Field) == "" {
		return ErrEmptyField
	}

	var errs []error
	switch r.Kind {
	case KindText:
		if r.MinCount != nil {
			errs = append(errs, errors.New("min_count is only valid for collection rules"))
		}
	case KindCollection:
		if r.Pattern != "" || len(r.Requires) > 0 {
			errs = append(errs, errors.New("collection rules cannot declare a pattern"))
		}
		if r.MinLength != nil || r.MaxLength != nil {
			errs = append(errs, errors.New("collection rules cannot declare length bounds"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown kind %q", r.Kind))
	}

	bounds := []struct {
		name string
		v    *int
	}{{"min_length", r.MinLength}, {"max_length", r.MaxLength}, {"min_count", r.MinCount}}
	for _, b := range bounds {
		if b.v != nil && *b.v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", b.name))
		}
	}
	if r.MinLength != nil && r.MaxLength != nil && *r.MinLength > *r.MaxLength {
		errs = append(errs, fmt.Errorf("min_length %d exceeds max_length %d", *r.MinLength, *r.MaxLength))
	}
	if len(r.Requires) > 0 && r.Pattern == "" {
		errs = append(errs, errors.New("requires needs a pattern"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: field %q: %w", ErrInvalidRule, r.Field, errors.Join(errs...))
}

// Catalog is an immutable, versioned set of rules keyed by field name.
// Build one with New, Parse or Default; there is no mutation API.
type Catalog struct {
	version string
	rules   map[string]Rule
	order   []string
}

// New builds a catalog from rules, keeping their declaration order.
func New(version string, rules ...Rule) (*Catalog, error) {
	if strings.TrimSpace(version) == "" {
		return nil, ErrMissingVersion
	}

	c := &Catalog{
		version: version,
		rules:   make(map[string]Rule, len(rules)),
		order:   make([]string, 0, len(rules)),
	}
	for _, r := range rules {
		if r.Kind == "" {
			r.Kind = KindText
		}
		if err := r.validate(); err != nil {
			return nil, err
		}
		if _, exists := c.rules[r.Field]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, r.Field)
		}
		c.rules[r.Field] = r.clone()
		c.order = append(c.order, r.Field)
	}
	return c, nil
}

// Get returns the rule for field. The second result is false when the field is
// unconstrained.
func (c *Catalog) Get(field string) (Rule, bool) {
	r, ok := c.rules[field]
	if !ok {
		return Rule{}, false
	}
	return r.clone(), true
}

// Has reports whether the catalog declares a rule for field.
func (c *Catalog) Has(field string) bool {
	_, ok := c.rules[field]
	return ok
}

// Fields returns field names in declaration order.
func (c *Catalog) Fields() []string {
	return slices.Clone(c.order)
}

// Position returns the declaration index of field, or -1.
func (c *Catalog) Position(field string) int {
	return slices.Index(c.order, field)
}

func (c *Catalog) Version() string { return c.version }

func (c *Catalog) Len() int { return len(c.order) }

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

// Int returns a pointer to n. Handy when declaring rules in code.
func Int(n int) *int {
	return &n
}
