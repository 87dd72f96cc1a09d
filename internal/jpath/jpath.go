// Package jpath implements the path-query mini-language used to gate records
// and to reshape the fields shown for them.
//
// The language is a JSONPath dialect:
//
//	$.http.request            child members
//	$['user-agent']           quoted member names
//	$.items[0], $.items[-1]   array indexes
//	$.items[1:3], $[::-1]     slices
//	$.*, $.items[*]           wildcards
//	$..id                     recursive descent
//	$['a','b'], $[0,2]        unions
//	$.items[?(@.n > 2)]       filters (== != < <= > >= =~ && || !)
//
// A definite query (member and index steps only) either yields the single
// value it addresses or reports Absent. Any other query yields an array of
// every match, or reports Empty when nothing matched.
package jpath

import (
	"fmt"

	"pkt.systems/prettylog/internal/jsonv"
)

// Outcome classifies the result of evaluating a query.
type Outcome uint8

const (
	// Match means Result.Value holds the selected value.
	Match Outcome = iota
	// Absent means a definite query addressed a member or index that does
	// not exist.
	Absent
	// Empty means an indefinite query matched nothing.
	Empty
)

func (o Outcome) String() string {
	switch o {
	case Match:
		return "match"
	case Absent:
		return "absent"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Result is the outcome of evaluating a query against one document.
type Result struct {
	Outcome Outcome
	Value   jsonv.Value
}

// Error reports a malformed query.
type Error struct {
	Query  string
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("jpath: %s at offset %d in %q", e.Msg, e.Offset, e.Query)
}

// Query is a compiled query expression. It is immutable and safe for
// concurrent use.
type Query struct {
	raw      string
	steps    []step
	definite bool
}

// Compile parses expr.
func Compile(expr string) (*Query, error) {
	p := &parser{src: expr}
	steps, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	return &Query{raw: expr, steps: steps, definite: isDefinite(steps)}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Query {
	q, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return q
}

// Eval compiles expr and evaluates it against root. The only error it
// returns is a malformed expression.
func Eval(root jsonv.Value, expr string) (Result, error) {
	q, err := Compile(expr)
	if err != nil {
		return Result{}, err
	}
	return q.Eval(root), nil
}

// String returns the source expression.
func (q *Query) String() string { return q.raw }

// Definite reports whether q addresses at most one value.
func (q *Query) Definite() bool { return q.definite }

// Eval evaluates q against root.
func (q *Query) Eval(root jsonv.Value) Result {
	nodes := evalSteps(q.steps, root, root)
	if q.definite {
		if len(nodes) == 0 {
			return Result{Outcome: Absent}
		}
		return Result{Outcome: Match, Value: nodes[0]}
	}
	if len(nodes) == 0 {
		return Result{Outcome: Empty}
	}
	return Result{Outcome: Match, Value: jsonv.ArrayValue(nodes...)}
}

func isDefinite(steps []step) bool {
	for _, s := range steps {
		if s.kind != stepChild && s.kind != stepIndex {
			return false
		}
	}
	return true
}
