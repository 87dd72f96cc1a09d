package prettylog

import (
	"strings"

	"pkt.systems/prettylog/internal/jsonv"
)

// MaxUnwrapDepth bounds how many levels of JSON encoded inside strings are
// decoded when Config.UnwrapJSON is set.
var MaxUnwrapDepth = 10

// UnwrapEmbedded replaces string values holding a JSON object or array with
// the decoded value, recursing into containers. depth limits how many
// string layers are decoded; depth <= 0 returns v unchanged.
func UnwrapEmbedded(v jsonv.Value, depth int) jsonv.Value {
	if depth <= 0 {
		return v
	}
	switch v.Kind() {
	case jsonv.Object:
		members := v.Members()
		var out []jsonv.Member
		for i, m := range members {
			u := UnwrapEmbedded(m.Value, depth)
			if out == nil && jsonv.Equal(u, m.Value) {
				continue
			}
			if out == nil {
				out = append(make([]jsonv.Member, 0, len(members)), members[:i]...)
			}
			out = append(out, jsonv.Member{Key: m.Key, Value: u})
		}
		if out == nil {
			return v
		}
		return jsonv.ObjectValue(out...)
	case jsonv.Array:
		items := v.Items()
		var out []jsonv.Value
		for i, item := range items {
			u := UnwrapEmbedded(item, depth)
			if out == nil && jsonv.Equal(u, item) {
				continue
			}
			if out == nil {
				out = append(make([]jsonv.Value, 0, len(items)), items[:i]...)
			}
			out = append(out, u)
		}
		if out == nil {
			return v
		}
		return jsonv.ArrayValue(out...)
	case jsonv.String:
		s, _ := v.Str()
		if parsed, ok := parseEmbedded(s); ok {
			return UnwrapEmbedded(parsed, depth-1)
		}
	}
	return v
}

// unwrapMembers applies UnwrapEmbedded to every value without modifying
// members.
func unwrapMembers(members []jsonv.Member, depth int) []jsonv.Member {
	out := make([]jsonv.Member, len(members))
	for i, m := range members {
		out[i] = jsonv.Member{Key: m.Key, Value: UnwrapEmbedded(m.Value, depth)}
	}
	return out
}

func parseEmbedded(s string) (jsonv.Value, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return jsonv.Value{}, false
	}
	first, last := s[0], s[len(s)-1]
	if !((first == '{' && last == '}') || (first == '[' && last == ']')) {
		return jsonv.Value{}, false
	}
	rec := ParseRecord(s)
	if rec.Kind == RecordUnparsable {
		return jsonv.Value{}, false
	}
	return rec.Value, true
}
