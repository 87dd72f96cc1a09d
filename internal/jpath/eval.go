package jpath

import "pkt.systems/prettylog/internal/jsonv"

type stepKind uint8

const (
	stepChild stepKind = iota
	stepIndex
	stepWildcard
	stepSlice
	stepUnion
	stepFilter
	stepDescend
)

type step struct {
	kind   stepKind
	name   string
	index  int
	slice  sliceSel
	union  []selector
	filter boolExpr

	// inner is the step applied at every level of a recursive descent.
	inner *step
}

type sliceSel struct {
	start, end, step int
	hasStart, hasEnd bool
}

type selector struct {
	name    string
	index   int
	isIndex bool
}

func evalSteps(steps []step, cur, root jsonv.Value) []jsonv.Value {
	nodes := []jsonv.Value{cur}
	for i := range steps {
		var next []jsonv.Value
		for _, n := range nodes {
			next = steps[i].apply(next, n, root)
		}
		if len(next) == 0 {
			return nil
		}
		nodes = next
	}
	return nodes
}

func (s *step) apply(out []jsonv.Value, n, root jsonv.Value) []jsonv.Value {
	switch s.kind {
	case stepChild:
		if v, ok := n.Get(s.name); ok {
			out = append(out, v)
		}
	case stepIndex:
		if v, ok := n.Index(s.index); ok {
			out = append(out, v)
		}
	case stepWildcard:
		out = appendChildren(out, n)
	case stepSlice:
		out = s.slice.apply(out, n.Items())
	case stepUnion:
		for _, sel := range s.union {
			if sel.isIndex {
				if v, ok := n.Index(sel.index); ok {
					out = append(out, v)
				}
			} else if v, ok := n.Get(sel.name); ok {
				out = append(out, v)
			}
		}
	case stepFilter:
		for _, child := range appendChildren(nil, n) {
			if s.filter.test(child, root) {
				out = append(out, child)
			}
		}
	case stepDescend:
		out = s.descend(out, n, root)
	}
	return out
}

func (s *step) descend(out []jsonv.Value, n, root jsonv.Value) []jsonv.Value {
	out = s.inner.apply(out, n, root)
	switch n.Kind() {
	case jsonv.Array:
		for _, item := range n.Items() {
			out = s.descend(out, item, root)
		}
	case jsonv.Object:
		for _, m := range n.Members() {
			out = s.descend(out, m.Value, root)
		}
	}
	return out
}

func appendChildren(out []jsonv.Value, n jsonv.Value) []jsonv.Value {
	switch n.Kind() {
	case jsonv.Array:
		out = append(out, n.Items()...)
	case jsonv.Object:
		for _, m := range n.Members() {
			out = append(out, m.Value)
		}
	}
	return out
}

func (sl sliceSel) apply(out []jsonv.Value, items []jsonv.Value) []jsonv.Value {
	n := len(items)
	if n == 0 {
		return out
	}
	stride := sl.step
	if stride == 0 {
		stride = 1
	}
	var start, end int
	if stride > 0 {
		start, end = 0, n
	} else {
		start, end = n-1, -n-1
	}
	if sl.hasStart {
		start = normalize(sl.start, n)
	}
	if sl.hasEnd {
		end = normalize(sl.end, n)
	}
	if stride > 0 {
		lower := clamp(start, 0, n)
		upper := clamp(end, 0, n)
		for i := lower; i < upper; i += stride {
			out = append(out, items[i])
		}
		return out
	}
	upper := clamp(start, -1, n-1)
	lower := clamp(end, -1, n-1)
	for i := upper; lower < i; i += stride {
		out = append(out, items[i])
	}
	return out
}

func normalize(i, n int) int {
	if i < 0 {
		return n + i
	}
	return i
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
