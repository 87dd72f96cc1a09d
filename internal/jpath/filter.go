package jpath

import (
	"regexp"
	"strings"

	"pkt.systems/prettylog/internal/jsonv"
)

// boolExpr is a compiled filter expression. cur is the node under test
// ('@'), root is the document ('$').
type boolExpr interface {
	test(cur, root jsonv.Value) bool
}

type orExpr struct{ l, r boolExpr }

func (e orExpr) test(cur, root jsonv.Value) bool { return e.l.test(cur, root) || e.r.test(cur, root) }

type andExpr struct{ l, r boolExpr }

func (e andExpr) test(cur, root jsonv.Value) bool { return e.l.test(cur, root) && e.r.test(cur, root) }

type notExpr struct{ x boolExpr }

func (e notExpr) test(cur, root jsonv.Value) bool { return !e.x.test(cur, root) }

type existsExpr struct{ p pathOperand }

func (e existsExpr) test(cur, root jsonv.Value) bool {
	return len(e.p.nodes(cur, root)) > 0
}

type compareExpr struct {
	op   string
	l, r operand
}

func (e compareExpr) test(cur, root jsonv.Value) bool {
	lv, lok := e.l.resolve(cur, root)
	rv, rok := e.r.resolve(cur, root)
	return compare(e.op, lv, lok, rv, rok)
}

type matchExpr struct {
	l  operand
	re *regexp.Regexp
}

func (e matchExpr) test(cur, root jsonv.Value) bool {
	v, ok := e.l.resolve(cur, root)
	if !ok {
		return false
	}
	s, ok := v.Str()
	return ok && e.re.MatchString(s)
}

// operand resolves to a single value; ok is false when a path selects
// nothing.
type operand interface {
	resolve(cur, root jsonv.Value) (jsonv.Value, bool)
}

type literal struct{ v jsonv.Value }

func (l literal) resolve(_, _ jsonv.Value) (jsonv.Value, bool) { return l.v, true }

type pathOperand struct {
	relative bool
	steps    []step
}

func (p pathOperand) nodes(cur, root jsonv.Value) []jsonv.Value {
	start := root
	if p.relative {
		start = cur
	}
	return evalSteps(p.steps, start, root)
}

func (p pathOperand) resolve(cur, root jsonv.Value) (jsonv.Value, bool) {
	nodes := p.nodes(cur, root)
	if len(nodes) == 0 {
		return jsonv.Value{}, false
	}
	return nodes[0], true
}

// compare applies op. A missing operand only equals another missing
// operand.
func compare(op string, l jsonv.Value, lok bool, r jsonv.Value, rok bool) bool {
	switch op {
	case "==":
		return equalOperands(l, lok, r, rok)
	case "!=":
		return !equalOperands(l, lok, r, rok)
	}
	if !lok || !rok {
		return false
	}
	if lf, ok := l.Float(); ok {
		rf, ok := r.Float()
		if !ok {
			return false
		}
		return ordered(op, cmpFloat(lf, rf))
	}
	if ls, ok := l.Str(); ok {
		rs, ok := r.Str()
		if !ok {
			return false
		}
		return ordered(op, strings.Compare(ls, rs))
	}
	return false
}

func equalOperands(l jsonv.Value, lok bool, r jsonv.Value, rok bool) bool {
	if !lok || !rok {
		return lok == rok
	}
	return jsonv.Equal(l, r)
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func ordered(op string, c int) bool {
	switch op {
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	}
	return false
}

func (p *parser) parseOr() (boolExpr, error) {
	l, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !strings.HasPrefix(p.src[p.pos:], "||") {
			return l, nil
		}
		p.pos += 2
		r, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l = orExpr{l, r}
	}
}

func (p *parser) parseAnd() (boolExpr, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !strings.HasPrefix(p.src[p.pos:], "&&") {
			return l, nil
		}
		p.pos += 2
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l = andExpr{l, r}
	}
}

func (p *parser) parseUnary() (boolExpr, error) {
	p.skipSpace()
	if p.peek() == '!' && p.peekAt(1) != '=' {
		p.pos++
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notExpr{x}, nil
	}
	if p.peek() == '(' {
		p.pos++
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return e, nil
	}
	return p.parseComparison()
}

var comparisonOps = []string{"==", "!=", "<=", ">=", "=~", "<", ">"}

func (p *parser) parseComparison() (boolExpr, error) {
	at := p.pos
	l, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	op := ""
	for _, candidate := range comparisonOps {
		if strings.HasPrefix(p.src[p.pos:], candidate) {
			op = candidate
			break
		}
	}
	if op == "" {
		path, ok := l.(pathOperand)
		if !ok {
			p.pos = at
			return nil, p.errorf("literal is not a test expression")
		}
		return existsExpr{path}, nil
	}
	p.pos += len(op)
	p.skipSpace()
	if op == "=~" {
		re, err := p.parseRegex()
		if err != nil {
			return nil, err
		}
		return matchExpr{l: l, re: re}, nil
	}
	r, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return compareExpr{op: op, l: l, r: r}, nil
}

func (p *parser) parseOperand() (operand, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '@' || c == '$':
		p.pos++
		steps, err := p.parseSteps()
		if err != nil {
			return nil, err
		}
		return pathOperand{relative: c == '@', steps: steps}, nil
	case c == '\'' || c == '"':
		s, err := p.readString()
		if err != nil {
			return nil, err
		}
		return literal{jsonv.StringValue(s)}, nil
	case c == '-' || (c >= '0' && c <= '9'):
		return p.readNumber()
	}
	for _, kw := range []struct {
		word string
		v    jsonv.Value
	}{
		{"true", jsonv.BoolValue(true)},
		{"false", jsonv.BoolValue(false)},
		{"null", jsonv.NullValue()},
	} {
		if strings.HasPrefix(p.src[p.pos:], kw.word) && !isNameByte(p.peekAt(len(kw.word))) {
			p.pos += len(kw.word)
			return literal{kw.v}, nil
		}
	}
	if p.eof() {
		return nil, p.errorf("expected operand, got end of query")
	}
	return nil, p.errorf("expected operand, got %q", p.peek())
}

func (p *parser) readNumber() (operand, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	digits := p.pos
	p.skipDigits()
	if p.pos == digits {
		p.pos = start
		return nil, p.errorf("invalid number")
	}
	if p.peek() == '.' {
		p.pos++
		frac := p.pos
		p.skipDigits()
		if p.pos == frac {
			return nil, p.errorf("invalid number")
		}
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		p.pos++
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
		}
		exp := p.pos
		p.skipDigits()
		if p.pos == exp {
			return nil, p.errorf("invalid number")
		}
	}
	return literal{jsonv.NumberValue(p.src[start:p.pos])}, nil
}

func (p *parser) skipDigits() {
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
}

// parseRegex reads /pattern/flags. Supported flags are i, m, s and U.
func (p *parser) parseRegex() (*regexp.Regexp, error) {
	start := p.pos
	if err := p.expect('/'); err != nil {
		return nil, p.errorf("expected regular expression after =~")
	}
	var sb strings.Builder
	for {
		if p.eof() {
			p.pos = start
			return nil, p.errorf("unterminated regular expression")
		}
		c := p.src[p.pos]
		if c == '\\' && p.peekAt(1) == '/' {
			sb.WriteByte('/')
			p.pos += 2
			continue
		}
		p.pos++
		if c == '/' {
			break
		}
		sb.WriteByte(c)
	}
	flags := ""
	for !p.eof() && strings.IndexByte("imsU", p.src[p.pos]) >= 0 {
		flags += string(p.src[p.pos])
		p.pos++
	}
	pattern := sb.String()
	if flags != "" {
		pattern = "(?" + flags + ")" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		p.pos = start
		return nil, p.errorf("invalid regular expression: %v", err)
	}
	return re, nil
}
