package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// syntaxChars are the ECMAScript SyntaxCharacter set plus '/'. Outside a class
// these are the only characters that take a backslash identity escape in
// both u and v mode.
const syntaxChars = `^$\.*+?()[]{}|/`

// plainRestricted are printable ASCII characters emitted as-is outside classes.
const plainRestricted = " -@,:;=#%!~"

type emitter struct {
	b     strings.Builder
	class func(r rune) (string, error)
	lit   func(r rune) (string, error)
	prop  func(name string) string
}

func newFullEmitter() *emitter {
	return &emitter{
		class: func(r rune) (string, error) { return fullRune(r), nil },
		lit:   func(r rune) (string, error) { return fullRune(r), nil },
		prop:  func(name string) string { return `\p{` + name + `}` },
	}
}

func newRestrictedEmitter() *emitter {
	return &emitter{
		class: func(r rune) (string, error) { return restrictedRune(r, true) },
		lit:   func(r rune) (string, error) { return restrictedRune(r, false) },
		prop: func(name string) string {
			if _, script, _ := lookupProp(name); script {
				return `\p{sc=` + name + `}`
			}
			return `\p{` + name + `}`
		},
	}
}

// fullRune renders a rune for RE2.
func fullRune(r rune) string {
	switch {
	case isWordRune(r):
		return string(r)
	case r < utf8.RuneSelf && r > ' ' && r != 0x7F:
		return `\` + string(r)
	default:
		return fmt.Sprintf(`\x{%X}`, r)
	}
}

// restrictedRune renders a rune for an HTML pattern attribute. Inside classes
// anything but [A-Za-z0-9_] becomes a hex escape, so a hyphen can never read
// as a range operator, a quote can never close the attribute, and none of the
// v-mode reserved punctuators appear.
func restrictedRune(r rune, inClass bool) (string, error) {
	if isSurrogate(r) {
		return "", fmt.Errorf("%w: surrogate code point U+%04X", ErrNotEmbeddable, r)
	}
	switch {
	case isWordRune(r):
		return string(r), nil
	case !inClass && strings.ContainsRune(plainRestricted, r):
		return string(r), nil
	case !inClass && strings.ContainsRune(syntaxChars, r):
		return `\` + string(r), nil
	case r <= 0xFF:
		return fmt.Sprintf(`\x%02X`, r), nil
	case r <= 0xFFFF:
		return fmt.Sprintf(`\u%04X`, r), nil
	default:
		return `\u{` + strconv.FormatInt(int64(r), 16) + `}`, nil
	}
}

func (e *emitter) emit(n *Node) error {
	switch n.Op {
	case OpLiteral:
		s, err := e.lit(n.Rune)
		if err != nil {
			return err
		}
		e.b.WriteString(s)
	case OpClass:
		return e.emitClass(n)
	case OpConcat:
		for _, sub := range n.Sub {
			if err := e.emitWrapped(sub, sub.Op == OpConcat || sub.Op == OpAlternate); err != nil {
				return err
			}
		}
	case OpAlternate:
		for i, sub := range n.Sub {
			if i > 0 {
				e.b.WriteByte('|')
			}
			if err := e.emitWrapped(sub, sub.Op == OpAlternate); err != nil {
				return err
			}
		}
	case OpRepeat:
		sub := n.Sub[0]
		if err := e.emitWrapped(sub, sub.Op == OpConcat || sub.Op == OpAlternate || sub.Op == OpRepeat); err != nil {
			return err
		}
		e.b.WriteString(quantifier(n.Min, n.Max))
	default:
		return fmt.Errorf("%w: unknown node op %d", ErrSyntax, n.Op)
	}
	return nil
}

func (e *emitter) emitWrapped(n *Node, group bool) error {
	if !group {
		return e.emit(n)
	}
	e.b.WriteString("(?:")
	if err := e.emit(n); err != nil {
		return err
	}
	e.b.WriteByte(')')
	return nil
}

func (e *emitter) emitClass(n *Node) error {
	e.b.WriteByte('[')
	if n.Negated {
		e.b.WriteByte('^')
	}
	for _, it := range n.Items {
		if it.Prop != "" {
			e.b.WriteString(e.prop(it.Prop))
			continue
		}
		lo, err := e.class(it.Lo)
		if err != nil {
			return err
		}
		e.b.WriteString(lo)
		if it.Hi == it.Lo {
			continue
		}
		hi, err := e.class(it.Hi)
		if err != nil {
			return err
		}
		e.b.WriteByte('-')
		e.b.WriteString(hi)
	}
	e.b.WriteByte(']')
	return nil
}

func quantifier(min, max int) string {
	switch {
	case min == 0 && max < 0:
		return "*"
	case min == 1 && max < 0:
		return "+"
	case min == 0 && max == 1:
		return "?"
	case max < 0:
		return fmt.Sprintf("{%d,}", min)
	case min == max:
		return fmt.Sprintf("{%d}", min)
	default:
		return fmt.Sprintf("{%d,%d}", min, max)
	}
}

// emitFull renders an anchored RE2 expression.
func emitFull(n *Node) (string, error) {
	e := newFullEmitter()
	if err := e.emit(n); err != nil {
		return "", err
	}
	return "^(?:" + e.b.String() + ")$", nil
}

// emitRestricted renders the attribute-embeddable form. Browsers anchor
// pattern attributes themselves, so no anchors are written.
func emitRestricted(body *Node, requires []*Node) (string, error) {
	e := newRestrictedEmitter()
	for _, req := range requires {
		skip := &Node{Op: OpClass, Negated: true, Items: req.Items}
		e.b.WriteString("(?=")
		if err := e.emitClass(skip); err != nil {
			return "", err
		}
		e.b.WriteByte('*')
		if err := e.emitClass(req); err != nil {
			return "", err
		}
		e.b.WriteByte(')')
	}
	// A top-level alternation would only see the lookaheads on its first branch.
	if err := e.emitWrapped(body, len(requires) > 0 && body.Op == OpAlternate); err != nil {
		return "", err
	}
	return e.b.String(), nil
}
