package pattern

import (
	"slices"
	"unicode"
)

// edgeRunes are characters that commonly expose dialect differences: hyphens,
// quotes, line separators, combining marks, astral letters.
var edgeRunes = []rune{
	'a', 'Z', '5', '_', '-', ' ', '\t', '\n', '\r', '\v', '\'', '"', '@', '.', '!', '&', '/', '\\',
	'[', ']', '^', '$', 0x7F, 0x85, 0xA0, 0xD7, 0xE9, 0x301, 0x2028, 0xFEFF, 0x4E2D, 0x1D518,
}

// Alphabet returns the characters the matcher's rule talks about plus a fixed set of
// edge runes, sorted. Equivalence checks draw their inputs from it.
func (m *Matcher) Alphabet() []rune {
	set := make(map[rune]struct{})
	add := func(r rune) {
		if r >= 0 && r <= unicode.MaxRune && !isSurrogate(r) {
			set[r] = struct{}{}
		}
	}
	for _, r := range edgeRunes {
		add(r)
	}

	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		switch n.Op {
		case OpLiteral:
			add(n.Rune)
		case OpClass:
			for _, it := range n.Items {
				if it.Prop != "" {
					for _, r := range propSamples(it.Prop) {
						add(r)
					}
					continue
				}
				add(it.Lo)
				add(it.Hi)
				add(it.Lo - 1)
				add(it.Hi + 1)
				add(it.Lo + (it.Hi-it.Lo)/2)
			}
		}
		for _, sub := range n.Sub {
			walk(sub)
		}
	}
	walk(m.tree)
	for _, req := range m.requires {
		walk(req)
	}

	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

func propSamples(name string) []rune {
	table, _, ok := lookupProp(name)
	if !ok {
		return nil
	}
	var out []rune
	if n := len(table.R16); n > 0 {
		out = append(out, rune(table.R16[0].Lo), rune(table.R16[n/2].Lo), rune(table.R16[n-1].Hi))
	}
	if n := len(table.R32); n > 0 {
		out = append(out, rune(table.R32[0].Lo), rune(table.R32[n-1].Hi))
	}
	return out
}

// member returns some rune accepted by class n.
func member(n *Node) (rune, bool) {
	for _, r := range edgeRunes {
		if n.matchesRune(r) {
			return r, true
		}
	}
	if !n.Negated {
		for _, it := range n.Items {
			if it.Prop == "" {
				return it.Lo, true
			}
			if s := propSamples(it.Prop); len(s) > 0 {
				return s[0], true
			}
		}
	}
	return 0, false
}

// witness builds a short string accepted by n, following first alternatives.
func witness(n *Node) []rune {
	if n == nil {
		return nil
	}
	switch n.Op {
	case OpLiteral:
		return []rune{n.Rune}
	case OpClass:
		if r, ok := member(n); ok {
			return []rune{r}
		}
	case OpConcat:
		var out []rune
		for _, sub := range n.Sub {
			out = append(out, witness(sub)...)
		}
		return out
	case OpAlternate:
		return witness(n.Sub[0])
	case OpRepeat:
		times := n.Min
		if times == 0 && n.Max != 0 {
			times = 1
		}
		times = min(times, 64)
		part := witness(n.Sub[0])
		var out []rune
		for range times {
			out = append(out, part...)
		}
		return out
	}
	return nil
}

// corpus is the deterministic input set Compile checks both forms against:
// every single character, a near-accepted witness with single-character
// edits at every position and, for small alphabets, every pair.
func corpus(m *Matcher) []string {
	alpha := m.Alphabet()
	out := []string{""}
	for _, r := range alpha {
		out = append(out, string(r))
	}

	w := witness(m.tree)
	for _, req := range m.requires {
		w = append(w, witness(req)...)
	}
	out = append(out, string(w))
	for i := 0; i <= len(w); i++ {
		if i < len(w) {
			out = append(out, string(slices.Delete(slices.Clone(w), i, i+1)))
		}
		for _, r := range alpha {
			out = append(out, string(slices.Insert(slices.Clone(w), i, r)))
			if i < len(w) {
				edit := slices.Clone(w)
				edit[i] = r
				out = append(out, string(edit))
			}
		}
	}

	if len(alpha) <= 48 {
		for _, a := range alpha {
			for _, b := range alpha {
				out = append(out, string([]rune{a, b}))
			}
		}
	}
	return out
}
