package pattern

import (
	"slices"
	"unicode"
)

// Op identifies the kind of a pattern node.
type Op uint8

const (
	OpLiteral Op = iota + 1
	OpClass
	OpConcat
	OpAlternate
	OpRepeat
)

// Node is one element of a parsed pattern. Both dialects parse into the same
// tree, which is what makes the full and restricted forms comparable.
type Node struct {
	Op      Op
	Rune    rune        // OpLiteral
	Negated bool        // OpClass
	Items   []ClassItem // OpClass
	Sub     []*Node     // OpConcat, OpAlternate, OpRepeat (one child)
	Min     int         // OpRepeat
	Max     int         // OpRepeat, -1 means unbounded
}

// ClassItem is either an inclusive rune range or a named Unicode property.
type ClassItem struct {
	Lo, Hi rune
	Prop   string
}

func (it ClassItem) contains(r rune) bool {
	if it.Prop != "" {
		table, _, ok := lookupProp(it.Prop)
		return ok && unicode.Is(table, r)
	}
	return it.Lo <= r && r <= it.Hi
}

func (n *Node) matchesRune(r rune) bool {
	in := slices.ContainsFunc(n.Items, func(it ClassItem) bool { return it.contains(r) })
	return in != n.Negated
}

func equalNode(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Op != b.Op || a.Rune != b.Rune || a.Negated != b.Negated || a.Min != b.Min || a.Max != b.Max {
		return false
	}
	if !slices.Equal(a.Items, b.Items) || len(a.Sub) != len(b.Sub) {
		return false
	}
	for i := range a.Sub {
		if !equalNode(a.Sub[i], b.Sub[i]) {
			return false
		}
	}
	return true
}

// whitespace is the fixed member list behind the canonical \s escape. It is
// spelled out so neither engine's own notion of whitespace leaks in.
var whitespace = []ClassItem{
	{Lo: '\t', Hi: '\r'},
	{Lo: ' ', Hi: ' '},
	{Lo: 0x85, Hi: 0x85},
	{Lo: 0xA0, Hi: 0xA0},
	{Lo: 0x1680, Hi: 0x1680},
	{Lo: 0x2000, Hi: 0x200A},
	{Lo: 0x2028, Hi: 0x2029},
	{Lo: 0x202F, Hi: 0x202F},
	{Lo: 0x205F, Hi: 0x205F},
	{Lo: 0x3000, Hi: 0x3000},
	{Lo: 0xFEFF, Hi: 0xFEFF},
}

var (
	digits = []ClassItem{{Lo: '0', Hi: '9'}}
	word   = []ClassItem{{Lo: 'A', Hi: 'Z'}, {Lo: 'a', Hi: 'z'}, {Lo: '0', Hi: '9'}, {Lo: '_', Hi: '_'}}
)

// lookupProp resolves a property name to its table. General categories and
// scripts are supported; surrogate and private-use categories are not since
// browsers and Go disagree on how to treat them.
func lookupProp(name string) (table *unicode.RangeTable, script bool, ok bool) {
	switch name {
	case "Cs", "Co", "C":
		return nil, false, false
	}
	if t, found := unicode.Categories[name]; found {
		return t, false, true
	}
	if t, found := unicode.Scripts[name]; found {
		return t, true, true
	}
	return nil, false, false
}

func isSurrogate(r rune) bool {
	return r >= 0xD800 && r <= 0xDFFF
}
