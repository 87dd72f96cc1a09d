package jpath

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) *Error {
	return &Error{Query: p.src, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(off int) byte {
	if p.pos+off >= len(p.src) {
		return 0
	}
	return p.src[p.pos+off]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) expect(c byte) error {
	if p.peek() != c {
		if p.eof() {
			return p.errorf("expected %q, got end of query", c)
		}
		return p.errorf("expected %q, got %q", c, p.peek())
	}
	p.pos++
	return nil
}

func (p *parser) parseQuery() ([]step, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("empty query")
	}
	if err := p.expect('$'); err != nil {
		return nil, p.errorf("query must start with '$'")
	}
	steps, err := p.parseSteps()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.peek())
	}
	return steps, nil
}

// parseSteps reads segments until the next byte cannot start one.
func (p *parser) parseSteps() ([]step, error) {
	var steps []step
	for {
		switch p.peek() {
		case '.':
			if p.peekAt(1) == '.' {
				p.pos += 2
				inner, err := p.parseDescendant()
				if err != nil {
					return nil, err
				}
				steps = append(steps, step{kind: stepDescend, inner: &inner})
				continue
			}
			p.pos++
			s, err := p.parseDotted()
			if err != nil {
				return nil, err
			}
			steps = append(steps, s)
		case '[':
			s, err := p.parseBracket()
			if err != nil {
				return nil, err
			}
			steps = append(steps, s)
		default:
			return steps, nil
		}
	}
}

func (p *parser) parseDescendant() (step, error) {
	if p.peek() == '[' {
		return p.parseBracket()
	}
	return p.parseDotted()
}

func (p *parser) parseDotted() (step, error) {
	if p.peek() == '*' {
		p.pos++
		return step{kind: stepWildcard}, nil
	}
	name := p.readName()
	if name == "" {
		if p.eof() {
			return step{}, p.errorf("expected member name, got end of query")
		}
		return step{}, p.errorf("expected member name, got %q", p.peek())
	}
	return step{kind: stepChild, name: name}, nil
}

func (p *parser) readName() string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if isNameByte(c) {
			p.pos++
			continue
		}
		if c >= utf8.RuneSelf {
			_, size := utf8.DecodeRuneInString(p.src[p.pos:])
			p.pos += size
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func isNameByte(c byte) bool {
	return c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *parser) parseBracket() (step, error) {
	open := p.pos
	p.pos++ // '['
	p.skipSpace()
	switch p.peek() {
	case '?':
		p.pos++
		e, err := p.parseOr()
		if err != nil {
			return step{}, err
		}
		p.skipSpace()
		if err := p.expect(']'); err != nil {
			return step{}, err
		}
		return step{kind: stepFilter, filter: e}, nil
	case '*':
		p.pos++
		p.skipSpace()
		if err := p.expect(']'); err != nil {
			return step{}, err
		}
		return step{kind: stepWildcard}, nil
	case ']':
		p.pos = open
		return step{}, p.errorf("empty brackets")
	}

	var sels []selector
	for {
		p.skipSpace()
		if p.peek() == ':' || isSliceStart(p) {
			if len(sels) > 0 {
				return step{}, p.errorf("slice not allowed in union")
			}
			sl, err := p.parseSlice()
			if err != nil {
				return step{}, err
			}
			if err := p.expect(']'); err != nil {
				return step{}, err
			}
			return step{kind: stepSlice, slice: sl}, nil
		}
		sel, err := p.parseSelector()
		if err != nil {
			return step{}, err
		}
		sels = append(sels, sel)
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		if err := p.expect(']'); err != nil {
			return step{}, err
		}
		break
	}
	if len(sels) == 1 {
		if sels[0].isIndex {
			return step{kind: stepIndex, index: sels[0].index}, nil
		}
		return step{kind: stepChild, name: sels[0].name}, nil
	}
	return step{kind: stepUnion, union: sels}, nil
}

// isSliceStart reports whether an integer at the current position is
// followed by ':'.
func isSliceStart(p *parser) bool {
	i := p.pos
	if i < len(p.src) && p.src[i] == '-' {
		i++
	}
	digits := i
	for i < len(p.src) && p.src[i] >= '0' && p.src[i] <= '9' {
		i++
	}
	if i == digits {
		return false
	}
	for i < len(p.src) && (p.src[i] == ' ' || p.src[i] == '\t') {
		i++
	}
	return i < len(p.src) && p.src[i] == ':'
}

func (p *parser) parseSlice() (sliceSel, error) {
	var sl sliceSel
	var err error
	p.skipSpace()
	if p.peek() != ':' {
		if sl.start, err = p.readInt(); err != nil {
			return sl, err
		}
		sl.hasStart = true
		p.skipSpace()
	}
	if err := p.expect(':'); err != nil {
		return sl, err
	}
	p.skipSpace()
	if c := p.peek(); c != ':' && c != ']' {
		if sl.end, err = p.readInt(); err != nil {
			return sl, err
		}
		sl.hasEnd = true
		p.skipSpace()
	}
	if p.peek() == ':' {
		p.pos++
		p.skipSpace()
		if p.peek() != ']' {
			at := p.pos
			if sl.step, err = p.readInt(); err != nil {
				return sl, err
			}
			if sl.step == 0 {
				p.pos = at
				return sl, p.errorf("slice step must not be zero")
			}
			p.skipSpace()
		}
	}
	return sl, nil
}

func (p *parser) parseSelector() (selector, error) {
	switch c := p.peek(); {
	case c == '\'' || c == '"':
		s, err := p.readString()
		if err != nil {
			return selector{}, err
		}
		return selector{name: s}, nil
	case c == '-' || (c >= '0' && c <= '9'):
		n, err := p.readInt()
		if err != nil {
			return selector{}, err
		}
		return selector{index: n, isIndex: true}, nil
	default:
		name := p.readName()
		if name == "" {
			if p.eof() {
				return selector{}, p.errorf("unclosed '['")
			}
			return selector{}, p.errorf("unexpected %q in brackets", c)
		}
		return selector{name: name}, nil
	}
}

func (p *parser) readInt() (int, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		p.pos = start
		return 0, p.errorf("invalid integer")
	}
	return n, nil
}

// readString reads a single- or double-quoted string with JSON-style escapes.
func (p *parser) readString() (string, error) {
	quote := p.src[p.pos]
	start := p.pos
	p.pos++
	var sb strings.Builder
	for {
		if p.eof() {
			p.pos = start
			return "", p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\\':
			p.pos++
			if p.eof() {
				p.pos = start
				return "", p.errorf("unterminated string")
			}
			esc := p.src[p.pos]
			p.pos++
			switch esc {
			case '\\', '/', '\'', '"':
				sb.WriteByte(esc)
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'u':
				if p.pos+4 > len(p.src) {
					return "", p.errorf("short unicode escape")
				}
				r, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
				if err != nil {
					return "", p.errorf("invalid unicode escape")
				}
				sb.WriteRune(rune(r))
				p.pos += 4
			default:
				p.pos--
				return "", p.errorf("invalid escape %q", esc)
			}
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}
