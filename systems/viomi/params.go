package viomi

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrListLiteral defines malformed raw command list literal.
type ErrListLiteral struct {
	Pos    int
	Reason string
}

// Error formats output.
func (e *ErrListLiteral) Error() string {
	return fmt.Sprintf("invalid list literal at %d: %s", e.Pos, e.Reason)
}

// Parses a flat bracketed list of numbers such as `[1, -2, 3.5]`.
// Anything but numbers and delimiters is rejected.
func parseListLiteral(in string) ([]interface{}, error) {
	p := &literalParser{src: []rune(in)}
	p.skipSpaces()

	val, err := p.parseList()
	if err != nil {
		return nil, err
	}

	p.skipSpaces()
	if p.pos != len(p.src) {
		return nil, p.fail("trailing characters")
	}
	return val, nil
}

type literalParser struct {
	src []rune
	pos int
}

func (p *literalParser) fail(reason string) error {
	return &ErrListLiteral{Pos: p.pos, Reason: reason}
}

func (p *literalParser) skipSpaces() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *literalParser) peek() (rune, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *literalParser) parseList() ([]interface{}, error) {
	if r, ok := p.peek(); !ok || r != '[' {
		return nil, p.fail("expected '['")
	}
	p.pos++

	out := make([]interface{}, 0)
	p.skipSpaces()
	if r, ok := p.peek(); ok && r == ']' {
		p.pos++
		return out, nil
	}

	for {
		p.skipSpaces()
		val, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		out = append(out, val)

		p.skipSpaces()
		r, ok := p.peek()
		if !ok {
			return nil, p.fail("unterminated list")
		}
		p.pos++
		switch r {
		case ']':
			return out, nil
		case ',':
			p.skipSpaces()
			if r, ok := p.peek(); ok && r == ']' {
				p.pos++
				return out, nil
			}
		default:
			p.pos--
			return nil, p.fail("expected ',' or ']'")
		}
	}
}

func (p *literalParser) parseNumber() (interface{}, error) {
	start := p.pos
	r, ok := p.peek()
	if !ok {
		return nil, p.fail("unexpected end")
	}
	if r != '-' && r != '+' && r != '.' && !unicode.IsDigit(r) {
		return nil, p.fail(fmt.Sprintf("unexpected character %q", r))
	}

	for p.pos < len(p.src) {
		r := p.src[p.pos]
		if unicode.IsDigit(r) || strings.ContainsRune("+-.eE", r) {
			p.pos++
			continue
		}
		break
	}

	raw := string(p.src[start:p.pos])
	if i, err := strconv.Atoi(raw); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, nil
	}

	p.pos = start
	return nil, p.fail(fmt.Sprintf("invalid number %q", raw))
}
