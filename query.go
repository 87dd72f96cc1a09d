package prettylog

import (
	"fmt"

	"pkt.systems/prettylog/internal/jpath"
	"pkt.systems/prettylog/internal/jsonv"
)

// SyntheticKey names the single field that carries a non-object select
// result.
const SyntheticKey = "$"

// QueryError reports a select or gate expression that does not compile.
type QueryError struct {
	// Option is "select" or "gate".
	Option string
	Query  string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid %s query %q: %v", e.Option, e.Query, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Drop reasons reported in Outcome.Reason.
const (
	ReasonLevel        = "level"
	ReasonGate         = "gate"
	ReasonSelectAbsent = "select-absent"
	ReasonSelectEmpty  = "select-empty"
	ReasonNonJSON      = "non-json"
)

type queries struct {
	gate *jpath.Query
	sel  *jpath.Query
}

func compileQueries(cfg Config) (queries, error) {
	var q queries
	var err error
	if cfg.GateQuery != "" {
		if q.gate, err = jpath.Compile(cfg.GateQuery); err != nil {
			return queries{}, &QueryError{Option: "gate", Query: cfg.GateQuery, Err: err}
		}
	}
	if cfg.SelectQuery != "" {
		if q.sel, err = jpath.Compile(cfg.SelectQuery); err != nil {
			return queries{}, &QueryError{Option: "select", Query: cfg.SelectQuery, Err: err}
		}
	}
	return q, nil
}

// apply runs the gate and select queries against obj. It returns the
// candidate extra fields, or a non-empty drop reason.
func (q queries) apply(obj jsonv.Value) ([]jsonv.Member, string) {
	if q.gate != nil && !matched(q.gate.Eval(obj)) {
		return nil, ReasonGate
	}
	if q.sel == nil {
		return obj.Members(), ""
	}
	res := q.sel.Eval(obj)
	if res.Outcome == jpath.Absent {
		return nil, ReasonSelectAbsent
	}
	if !matched(res) {
		return nil, ReasonSelectEmpty
	}
	if res.Value.Kind() == jsonv.Object {
		return res.Value.Members(), ""
	}
	return []jsonv.Member{{Key: SyntheticKey, Value: res.Value}}, ""
}

// matched reports whether res selected something. An empty array or object
// counts as no match.
func matched(res jpath.Result) bool {
	if res.Outcome != jpath.Match {
		return false
	}
	return !res.Value.IsContainer() || res.Value.Len() > 0
}
