package pattern

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxRepeat matches the RE2 repetition limit.
const maxRepeat = 1000

type dialect uint8

const (
	// canonical is the catalog authoring syntax.
	canonical dialect = iota
	// restricted is the ECMAScript subset produced for HTML pattern attributes.
	restricted
)

type parser struct {
	src []rune
	pos int
	d   dialect
}

// Parse parses a canonical pattern into a tree.
func Parse(src string) (*Node, error) {
	return parse(src, canonical)
}

func parse(src string, d dialect) (*Node, error) {
	if !utf8.ValidString(src) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrSyntax)
	}
	p := &parser{src: []rune(src), d: d}
	n, err := p.parseAlternate()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.peek())
	}
	return n, nil
}

// parseRestricted parses the output of the restricted emitter: leading
// (?=[^C]*[C]) requirement lookaheads followed by the body.
func parseRestricted(src string) (body *Node, requires []*Node, err error) {
	p := &parser{src: []rune(src), d: restricted}
	for p.hasPrefix("(?=") {
		p.pos += 3
		req, err := p.parseRequirement()
		if err != nil {
			return nil, nil, err
		}
		requires = append(requires, req)
	}
	// With lookaheads in front, an unwrapped top-level '|' would escape them.
	if len(requires) > 0 {
		body, err = p.parseConcat()
	} else {
		body, err = p.parseAlternate()
	}
	if err != nil {
		return nil, nil, err
	}
	if !p.eof() {
		return nil, nil, p.errorf("unexpected %q", p.peek())
	}
	return body, requires, nil
}

func (p *parser) parseRequirement() (*Node, error) {
	if p.peek() != '[' {
		return nil, p.errorf("requirement must start with a class")
	}
	skip, err := p.parseClass()
	if err != nil {
		return nil, err
	}
	if !skip.Negated || p.peek() != '*' {
		return nil, p.errorf("requirement must skip with a negated class")
	}
	p.pos++
	if p.peek() != '[' {
		return nil, p.errorf("requirement must end with a class")
	}
	want, err := p.parseClass()
	if err != nil {
		return nil, err
	}
	if want.Negated || !slices.Equal(skip.Items, want.Items) {
		return nil, p.errorf("requirement classes differ")
	}
	if p.peek() != ')' {
		return nil, p.errorf("unterminated lookahead")
	}
	p.pos++
	return want, nil
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(offset int) rune {
	if p.pos+offset >= len(p.src) {
		return 0
	}
	return p.src[p.pos+offset]
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(string(p.src[p.pos:]), s)
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrSyntax, fmt.Sprintf(format, args...), p.pos)
}

func (p *parser) parseAlternate() (*Node, error) {
	var branches []*Node
	for {
		b, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
		if p.peek() != '|' || p.eof() {
			break
		}
		p.pos++
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return &Node{Op: OpAlternate, Sub: branches}, nil
}

func (p *parser) parseConcat() (*Node, error) {
	var items []*Node
	for !p.eof() {
		if c := p.peek(); c == '|' || c == ')' {
			break
		}
		n, err := p.parseRepeat()
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	switch len(items) {
	case 0:
		return nil, p.errorf("empty expression")
	case 1:
		return items[0], nil
	}
	return &Node{Op: OpConcat, Sub: items}, nil
}

func (p *parser) parseRepeat() (*Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	min, max, ok, err := p.parseQuantifier()
	if err != nil || !ok {
		return atom, err
	}
	if isQuantifierStart(p.peek()) && !p.eof() {
		return nil, p.errorf("nested or lazy quantifiers are not supported")
	}
	return &Node{Op: OpRepeat, Sub: []*Node{atom}, Min: min, Max: max}, nil
}

func isQuantifierStart(c rune) bool {
	return c == '*' || c == '+' || c == '?' || c == '{'
}

func (p *parser) parseQuantifier() (min, max int, ok bool, err error) {
	if p.eof() {
		return 0, 0, false, nil
	}
	switch p.peek() {
	case '*':
		p.pos++
		return 0, -1, true, nil
	case '+':
		p.pos++
		return 1, -1, true, nil
	case '?':
		p.pos++
		return 0, 1, true, nil
	case '{':
	default:
		return 0, 0, false, nil
	}

	start := p.pos
	p.pos++
	min, err = p.parseInt()
	if err != nil {
		return 0, 0, false, err
	}
	max = min
	if p.peek() == ',' {
		p.pos++
		if p.peek() == '}' {
			max = -1
		} else if max, err = p.parseInt(); err != nil {
			return 0, 0, false, err
		}
	}
	if p.peek() != '}' || p.eof() {
		p.pos = start
		return 0, 0, false, p.errorf("malformed repetition")
	}
	p.pos++
	if min > maxRepeat || max > maxRepeat {
		return 0, 0, false, p.errorf("repetition count exceeds %d", maxRepeat)
	}
	if max >= 0 && min > max {
		return 0, 0, false, p.errorf("repetition {%d,%d} is inverted", min, max)
	}
	return min, max, true, nil
}

func (p *parser) parseInt() (int, error) {
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if start == p.pos || p.pos-start > 4 {
		return 0, p.errorf("expected repetition count")
	}
	return strconv.Atoi(string(p.src[start:p.pos]))
}

func (p *parser) parseAtom() (*Node, error) {
	c := p.peek()
	switch c {
	case '(':
		p.pos++
		if p.d == restricted {
			if p.peek() != '?' || p.peekAt(1) != ':' {
				return nil, p.errorf("only non-capturing groups are allowed")
			}
			p.pos += 2
		} else if p.peek() == '?' {
			return nil, p.errorf("group flags are not supported")
		}
		n, err := p.parseAlternate()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' || p.eof() {
			return nil, p.errorf("missing closing parenthesis")
		}
		p.pos++
		return n, nil
	case ')':
		return nil, p.errorf("unbalanced parenthesis")
	case '[':
		return p.parseClass()
	case '\\':
		return p.parseEscape()
	case '.', '^', '$':
		return nil, p.errorf("%q is not supported; use an explicit class", c)
	case '*', '+', '?', '{':
		return nil, p.errorf("missing operand for %q", c)
	case ']', '}':
		return nil, p.errorf("unescaped %q", c)
	}
	if p.d == restricted && (c == '"' || c == '\'' || c == '/') {
		return nil, p.errorf("raw %q is not attribute-safe", c)
	}
	p.pos++
	return &Node{Op: OpLiteral, Rune: c}, nil
}

// parseEscape handles an escape sequence outside a class.
func (p *parser) parseEscape() (*Node, error) {
	items, r, isSet, err := p.parseEscapeSeq(false)
	if err != nil {
		return nil, err
	}
	if isSet {
		return &Node{Op: OpClass, Items: items}, nil
	}
	return &Node{Op: OpLiteral, Rune: r}, nil
}

// parseEscapeSeq consumes a backslash sequence. It returns either a set of
// class items or a single rune.
func (p *parser) parseEscapeSeq(inClass bool) (items []ClassItem, r rune, isSet bool, err error) {
	p.pos++ // backslash
	if p.eof() {
		return nil, 0, false, p.errorf("trailing backslash")
	}
	c := p.peek()
	p.pos++

	switch c {
	case 't':
		return nil, '\t', false, nil
	case 'n':
		return nil, '\n', false, nil
	case 'r':
		return nil, '\r', false, nil
	case 'f':
		return nil, '\f', false, nil
	case 'v':
		return nil, '\v', false, nil
	case 'p':
		name, err := p.parseBraced()
		if err != nil {
			return nil, 0, false, err
		}
		prop, err := p.resolveProp(name)
		if err != nil {
			return nil, 0, false, err
		}
		return []ClassItem{{Prop: prop}}, 0, true, nil
	}

	if p.d == canonical {
		switch c {
		case 'd':
			return append([]ClassItem(nil), digits...), 0, true, nil
		case 'w':
			return append([]ClassItem(nil), word...), 0, true, nil
		case 's':
			return append([]ClassItem(nil), whitespace...), 0, true, nil
		case 'x':
			hex, err := p.parseBraced()
			if err != nil {
				return nil, 0, false, err
			}
			r, err := p.codePoint(hex)
			return nil, r, false, err
		}
		if c < utf8.RuneSelf && unicode.IsPunct(c) || c < utf8.RuneSelf && unicode.IsSymbol(c) {
			return nil, c, false, nil
		}
		return nil, 0, false, p.errorf("unknown escape \\%c", c)
	}

	switch c {
	case 'x':
		r, err := p.parseHex(2)
		return nil, r, false, err
	case 'u':
		if p.peek() == '{' {
			hex, err := p.parseBraced()
			if err != nil {
				return nil, 0, false, err
			}
			r, err := p.codePoint(hex)
			return nil, r, false, err
		}
		r, err := p.parseHex(4)
		return nil, r, false, err
	}
	if !inClass && strings.ContainsRune(syntaxChars, c) {
		return nil, c, false, nil
	}
	return nil, 0, false, p.errorf("escape \\%c is outside the restricted dialect", c)
}

func (p *parser) parseBraced() (string, error) {
	if p.peek() != '{' {
		return "", p.errorf("expected '{'")
	}
	p.pos++
	start := p.pos
	for !p.eof() && p.peek() != '}' {
		p.pos++
	}
	if p.eof() || start == p.pos {
		return "", p.errorf("malformed braced escape")
	}
	s := string(p.src[start:p.pos])
	p.pos++
	return s, nil
}

func (p *parser) parseHex(n int) (rune, error) {
	if p.pos+n > len(p.src) {
		return 0, p.errorf("short hex escape")
	}
	hex := string(p.src[p.pos : p.pos+n])
	p.pos += n
	return p.codePoint(hex)
}

func (p *parser) codePoint(hex string) (rune, error) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || v > unicode.MaxRune {
		return 0, p.errorf("invalid code point %q", hex)
	}
	return rune(v), nil
}

func (p *parser) resolveProp(name string) (string, error) {
	if p.d == restricted {
		script := strings.HasPrefix(name, "sc=")
		name = strings.TrimPrefix(name, "sc=")
		_, isScript, ok := lookupProp(name)
		if !ok || isScript != script {
			return "", p.errorf("property %q is outside the restricted dialect", name)
		}
		return name, nil
	}
	if _, _, ok := lookupProp(name); !ok {
		return "", p.errorf("unknown property %q", name)
	}
	return name, nil
}

func (p *parser) parseClass() (*Node, error) {
	p.pos++ // [
	n := &Node{Op: OpClass}
	if p.peek() == '^' {
		n.Negated = true
		p.pos++
	}

	first := true
	for {
		if p.eof() {
			return nil, p.errorf("unterminated class")
		}
		c := p.peek()
		if c == ']' {
			p.pos++
			break
		}

		if c == '-' {
			if p.d == restricted {
				return nil, p.errorf("raw '-' must be escaped")
			}
			if !first && p.peekAt(1) != ']' {
				return nil, p.errorf("ambiguous '-'; escape it or move it to the class edge")
			}
			p.pos++
			n.Items = append(n.Items, ClassItem{Lo: '-', Hi: '-'})
			first = false
			continue
		}

		items, lo, isSet, err := p.parseClassAtom()
		if err != nil {
			return nil, err
		}
		first = false
		if isSet {
			n.Items = append(n.Items, items...)
			continue
		}

		if p.peek() == '-' && p.peekAt(1) != ']' && p.peekAt(1) != 0 {
			p.pos++
			_, hi, hiSet, err := p.parseClassAtom()
			if err != nil {
				return nil, err
			}
			if hiSet {
				return nil, p.errorf("range end must be a single character")
			}
			if lo > hi {
				return nil, p.errorf("range %q-%q is inverted", lo, hi)
			}
			n.Items = append(n.Items, ClassItem{Lo: lo, Hi: hi})
			continue
		}
		n.Items = append(n.Items, ClassItem{Lo: lo, Hi: lo})
	}

	if len(n.Items) == 0 {
		return nil, p.errorf("empty class")
	}
	return n, nil
}

func (p *parser) parseClassAtom() (items []ClassItem, r rune, isSet bool, err error) {
	c := p.peek()
	if c == '\\' {
		return p.parseEscapeSeq(true)
	}
	if c == '[' {
		return nil, 0, false, p.errorf("nested classes are not supported")
	}
	if p.d == restricted && !isRestrictedClassRaw(c) {
		return nil, 0, false, p.errorf("raw %q is not safe inside a class", c)
	}
	p.pos++
	return nil, c, false, nil
}

func isRestrictedClassRaw(c rune) bool {
	return isWordRune(c) || c >= utf8.RuneSelf && !isSurrogate(c)
}

func isWordRune(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
