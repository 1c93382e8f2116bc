package pattern

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dmitrymomot/fieldrules/pkg/catalog"
)

// Full is the matcher run by the server: one anchored RE2 program for the body
// and one unanchored containment program per required class.
type Full struct {
	body     *regexp.Regexp
	requires []*regexp.Regexp
}

// Match reports whether s is accepted. A zero Full accepts everything.
func (f Full) Match(s string) bool {
	if f.body != nil && !f.body.MatchString(s) {
		return false
	}
	for _, re := range f.requires {
		if !re.MatchString(s) {
			return false
		}
	}
	return true
}

// String returns the body expression, or "" when the rule has no pattern.
func (f Full) String() string {
	if f.body == nil {
		return ""
	}
	return f.body.String()
}

// Requires returns the containment expressions in declaration order.
func (f Full) Requires() []string {
	out := make([]string, len(f.requires))
	for i, re := range f.requires {
		out[i] = re.String()
	}
	return out
}

// Restricted is the ECMAScript form for HTML pattern attributes. It is valid
// under both the u and v flags and carries no anchors.
type Restricted struct {
	source   string
	body     *Node
	requires []*Node
}

// String returns the attribute value, or "" when the rule has no pattern.
func (r Restricted) String() string { return r.source }

// Match runs the restricted form through the package interpreter with the
// same implicit anchoring a browser applies.
//
// The interpreter backtracks and is super-linear in the worst case. It exists
// to check equivalence in Verify and in tests; judge untrusted input with
// Matcher.Match, which runs the linear-time Full form.
func (r Restricted) Match(s string) bool {
	return matchTree(r.body, r.requires, s)
}

// Matcher is the compiled pair derived from one rule. Full and Restricted
// accept exactly the same strings.
type Matcher struct {
	Full       Full
	Restricted Restricted

	tree     *Node
	requires []*Node
}

// Match evaluates s with the full form.
func (m *Matcher) Match(s string) bool {
	return m.Full.Match(s)
}

// Empty reports whether the matcher accepts every string.
func (m *Matcher) Empty() bool {
	return m.tree == nil
}

// Compile derives both forms from a canonical pattern and optional required
// classes. An empty pattern with no requirements yields an accept-all matcher.
func Compile(src string, requires ...string) (*Matcher, error) {
	if src == "" {
		if len(requires) > 0 {
			return nil, fmt.Errorf("%w: requirements need a pattern", ErrSyntax)
		}
		return &Matcher{}, nil
	}

	tree, err := Parse(src)
	if err != nil {
		return nil, err
	}
	reqs := make([]*Node, 0, len(requires))
	for _, r := range requires {
		n, err := Parse(r)
		if err != nil {
			return nil, fmt.Errorf("requirement %q: %w", r, err)
		}
		if n.Op != OpClass || n.Negated {
			return nil, fmt.Errorf("%w: requirement %q must be a single positive class", ErrSyntax, r)
		}
		reqs = append(reqs, n)
	}

	m := &Matcher{tree: tree, requires: reqs}
	if m.Restricted, err = restrictedForm(tree, reqs); err != nil {
		return nil, err
	}
	if m.Full, err = fullForm(tree, reqs); err != nil {
		return nil, err
	}
	if err := Verify(m, corpus(m)...); err != nil {
		return nil, err
	}
	return m, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string, requires ...string) *Matcher {
	m, err := Compile(src, requires...)
	if err != nil {
		panic(fmt.Sprintf("pattern: Compile(%q): %v", src, err))
	}
	return m
}

// CompileRule compiles the pattern of a catalog rule.
func CompileRule(rule catalog.Rule) (*Matcher, error) {
	m, err := Compile(rule.Pattern, rule.Requires...)
	if err != nil {
		return nil, &CompileError{Field: rule.Field, Err: err}
	}
	return m, nil
}

func restrictedForm(tree *Node, reqs []*Node) (Restricted, error) {
	src, err := emitRestricted(tree, reqs)
	if err != nil {
		return Restricted{}, err
	}

	// The emitted text has to parse back into the very same tree; otherwise
	// the browser would be checking a different language.
	body, back, err := parseRestricted(src)
	if err != nil {
		return Restricted{}, fmt.Errorf("%w: %w", ErrNotEmbeddable, err)
	}
	if !equalNode(tree, body) || len(back) != len(reqs) {
		return Restricted{}, fmt.Errorf("%w: %q does not round-trip", ErrNotEmbeddable, src)
	}
	for i := range reqs {
		if !equalNode(reqs[i], back[i]) {
			return Restricted{}, fmt.Errorf("%w: requirement %d does not round-trip", ErrNotEmbeddable, i)
		}
	}
	return Restricted{source: src, body: body, requires: back}, nil
}

func fullForm(tree *Node, reqs []*Node) (Full, error) {
	src, err := emitFull(tree)
	if err != nil {
		return Full{}, err
	}
	body, err := regexp.Compile(src)
	if err != nil {
		return Full{}, errors.Join(ErrSyntax, err)
	}

	f := Full{body: body}
	for _, req := range reqs {
		e := newFullEmitter()
		if err := e.emitClass(req); err != nil {
			return Full{}, err
		}
		re, err := regexp.Compile(e.b.String())
		if err != nil {
			return Full{}, errors.Join(ErrSyntax, err)
		}
		f.requires = append(f.requires, re)
	}
	return f, nil
}

// Verify runs both forms over inputs and returns a *MismatchError for the
// first input they disagree on.
func Verify(m *Matcher, inputs ...string) error {
	for _, in := range inputs {
		full, restricted := m.Full.Match(in), m.Restricted.Match(in)
		if full != restricted {
			return &MismatchError{Input: in, Full: full, Restricted: restricted}
		}
	}
	return nil
}
