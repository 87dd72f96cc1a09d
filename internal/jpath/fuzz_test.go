package jpath

import (
	"encoding/json"
	"testing"

	"pkt.systems/prettylog/internal/jsonv"
)

const fuzzMaxInput = 1 << 16

func FuzzEval(f *testing.F) {
	seeds := []struct {
		doc  string
		expr string
	}{
		{`{"a":1}`, "$.a"},
		{`{"a":[1,2,3]}`, "$.a[1:]"},
		{`{"a":{"b":[{"c":true}]}}`, "$..c"},
		{`[1,"x",null]`, "$[?(@ == 'x')]"},
		{`{"items":[{"n":1},{"n":5}]}`, "$.items[?(@.n > 2 && !@.skip)].n"},
		{`"plain"`, "$[*]"},
		{`{}`, "$['a','b']"},
		{`{"s":"abc"}`, "$[?(@ =~ /b/)]"},
	}
	for _, s := range seeds {
		f.Add([]byte(s.doc), s.expr)
	}

	f.Fuzz(func(t *testing.T, data []byte, expr string) {
		if len(data) > fuzzMaxInput || len(expr) > fuzzMaxInput {
			return
		}
		if !json.Valid(data) {
			return
		}
		root, err := jsonv.Parse(data)
		if err != nil {
			return
		}
		q, err := Compile(expr)
		if err != nil {
			if _, ok := err.(*Error); !ok {
				t.Fatalf("Compile(%q) returned %T", expr, err)
			}
			return
		}
		res := q.Eval(root)
		switch res.Outcome {
		case Match:
			if !q.Definite() && (res.Value.Kind() != jsonv.Array || res.Value.Len() == 0) {
				t.Fatalf("indefinite match must be a non-empty array, got %s", res.Value)
			}
		case Absent:
			if !q.Definite() {
				t.Fatalf("indefinite query %q reported absent", expr)
			}
		case Empty:
			if q.Definite() {
				t.Fatalf("definite query %q reported empty", expr)
			}
		default:
			t.Fatalf("unknown outcome %d", res.Outcome)
		}
	})
}
