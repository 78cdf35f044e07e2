// Package selector compiles a strict subset of CSS selectors and evaluates
// them against dom trees.
//
// Supported grammar: type selectors, `*`, `.class`, `#id`, `[attr]`,
// `[attr=value]`, `[attr="value"]`, `[attr*=value]`, the descendant
// combinator (whitespace) and the direct-child combinator `>`.
// Pseudo-classes, sibling combinators (`+`, `~`), selector lists (`a, b`)
// and attribute case-insensitivity flags are rejected with *SyntaxError
// rather than silently ignored.
package selector

import (
	"fmt"
	"strings"
	"unicode"
)

// SyntaxError reports a selector string outside the supported grammar.
type SyntaxError struct {
	Selector string
	Pos      int
	Reason   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid selector %q at offset %d: %s", e.Selector, e.Pos, e.Reason)
}

type combinator int

const (
	combDescendant combinator = iota
	combChild
)

type attrOp int

const (
	opPresent attrOp = iota
	opEquals
	opContains
)

type attrCheck struct {
	key string
	op  attrOp
	val string
}

// compound is one simple-selector group: every predicate must hold on the
// same element.
type compound struct {
	comb    combinator // relation to the group on its left; meaningless for the first
	tag     string     // "" matches any tag
	classes []string
	attrs   []attrCheck
}

// Selector is an immutable compiled selector, reusable across documents and
// safe for concurrent use. Groups are stored left to right; the rightmost
// group is the one candidates are tested against first.
type Selector struct {
	src    string
	groups []compound
}

// String returns the source text the selector was compiled from.
func (s *Selector) String() string { return s.src }

// Compile parses a selector string. Compilation is independent of any
// document and deterministic: the same string always yields an equivalent
// Selector.
func Compile(src string) (*Selector, error) {
	p := &parser{src: src}
	groups, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &Selector{src: src, groups: groups}, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errf(pos int, format string, args ...any) error {
	return &SyntaxError{Selector: p.src, Pos: pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

// skipSpace consumes whitespace and reports whether any was seen.
func (p *parser) skipSpace() bool {
	start := p.pos
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
	return p.pos > start
}

func (p *parser) parse() ([]compound, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errf(0, "empty selector")
	}

	var groups []compound
	comb := combDescendant
	for {
		g, err := p.compound()
		if err != nil {
			return nil, err
		}
		g.comb = comb
		groups = append(groups, g)

		p.skipSpace()
		if p.eof() {
			return groups, nil
		}
		switch ch := p.peek(); ch {
		case '>':
			p.pos++
			p.skipSpace()
			if p.eof() {
				return nil, p.errf(p.pos, "selector ends with combinator")
			}
			comb = combChild
		case '+', '~':
			return nil, p.errf(p.pos, "sibling combinator %q is not supported", string(ch))
		case ',':
			return nil, p.errf(p.pos, "selector lists are not supported")
		default:
			comb = combDescendant
		}
	}
}

// compound consumes one run of simple selectors. It stops at whitespace,
// a combinator or a list separator and leaves that byte for the caller.
func (p *parser) compound() (compound, error) {
	var g compound
	consumed := false
	for !p.eof() {
		start := p.pos
		ch := p.peek()
		switch {
		case isSpace(ch), ch == '>', ch == ',', ch == '+', ch == '~':
			if !consumed {
				return g, p.errf(start, "expected selector before %q", string(ch))
			}
			return g, nil
		case ch == '*':
			if consumed {
				return g, p.errf(start, "unexpected %q", "*")
			}
			p.pos++
		case ch == '.':
			p.pos++
			name, err := p.ident("class name")
			if err != nil {
				return g, err
			}
			g.classes = append(g.classes, name)
		case ch == '#':
			p.pos++
			name, err := p.ident("id")
			if err != nil {
				return g, err
			}
			g.attrs = append(g.attrs, attrCheck{key: "id", op: opEquals, val: name})
		case ch == '[':
			p.pos++
			a, err := p.attribute()
			if err != nil {
				return g, err
			}
			g.attrs = append(g.attrs, a)
		case ch == ':':
			return g, p.errf(start, "pseudo-classes are not supported")
		case isIdentByte(ch):
			if consumed {
				return g, p.errf(start, "unexpected identifier")
			}
			name, err := p.ident("tag name")
			if err != nil {
				return g, err
			}
			g.tag = strings.ToLower(name)
		default:
			return g, p.errf(start, "unexpected character %q", string(ch))
		}
		consumed = true
	}
	if !consumed {
		return g, p.errf(p.pos, "expected selector")
	}
	return g, nil
}

func (p *parser) attribute() (attrCheck, error) {
	p.skipSpace()
	key, err := p.ident("attribute name")
	if err != nil {
		return attrCheck{}, err
	}
	a := attrCheck{key: strings.ToLower(key)}

	p.skipSpace()
	if p.eof() {
		return a, p.errf(p.pos, "unterminated attribute selector")
	}
	switch ch := p.peek(); ch {
	case ']':
		p.pos++
		a.op = opPresent
		return a, nil
	case '=':
		p.pos++
		a.op = opEquals
	case '*':
		p.pos++
		if p.eof() || p.peek() != '=' {
			return a, p.errf(p.pos, "expected %q after %q", "=", "*")
		}
		p.pos++
		a.op = opContains
	case '~', '|', '^', '$':
		return a, p.errf(p.pos, "attribute operator %q= is not supported", string(ch))
	default:
		return a, p.errf(p.pos, "unexpected character %q in attribute selector", string(ch))
	}

	p.skipSpace()
	val, err := p.attrValue()
	if err != nil {
		return a, err
	}
	a.val = val

	p.skipSpace()
	if p.eof() {
		return a, p.errf(p.pos, "unterminated attribute selector")
	}
	if ch := p.peek(); ch != ']' {
		if ch == 'i' || ch == 's' || ch == 'I' || ch == 'S' {
			return a, p.errf(p.pos, "attribute case-insensitivity flags are not supported")
		}
		return a, p.errf(p.pos, "expected %q", "]")
	}
	p.pos++
	return a, nil
}

func (p *parser) attrValue() (string, error) {
	if p.eof() {
		return "", p.errf(p.pos, "expected attribute value")
	}
	if q := p.peek(); q == '"' || q == '\'' {
		p.pos++
		start := p.pos
		for !p.eof() && p.peek() != q {
			p.pos++
		}
		if p.eof() {
			return "", p.errf(start-1, "unterminated quoted value")
		}
		val := p.src[start:p.pos]
		p.pos++
		return val, nil
	}
	return p.ident("attribute value")
}

func (p *parser) ident(what string) (string, error) {
	start := p.pos
	for !p.eof() && isIdentByte(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return "", p.errf(start, "expected %s", what)
	}
	return p.src[start:p.pos], nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// isIdentByte is deliberately lenient about leading digits: class names in
// the wild are not always valid CSS identifiers.
func isIdentByte(b byte) bool {
	return b == '-' || b == '_' || b >= 0x80 ||
		unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b))
}
