// Package jsonv is the closed JSON value model shared by the record parser,
// the query engine and the renderer.
//
// A Value is one of Null, Bool, Number, String, Array or Object. Objects keep
// the key order of the input document, which is the order the renderer shows
// extra fields in. Numbers keep their literal text so that nothing is lost to
// float64 rounding before display.
package jsonv

import (
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON value. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	s    string // string contents, or the number literal
	arr  []Value
	obj  []Member
	// raw is the compact source text of a container, nil for values built
	// in memory.
	raw []byte
}

// NullValue returns the JSON null.
func NullValue() Value { return Value{} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// NumberValue wraps a JSON number literal. The literal is not validated.
func NumberValue(literal string) Value { return Value{kind: Number, s: literal} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// ArrayValue builds an array from items.
func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: Array, arr: items}
}

// ObjectValue builds an object from members. Later duplicates of a key
// overwrite the earlier value in place.
func ObjectValue(members ...Member) Value {
	set := memberSet{members: make([]Member, 0, len(members))}
	for _, m := range members {
		set.put(m.Key, m.Value)
	}
	return Value{kind: Object, obj: set.members}
}

// indexAfter is the member count above which memberSet looks keys up in a
// map instead of scanning.
const indexAfter = 8

// memberSet collects object members in first-seen key order. A repeated key
// overwrites the earlier value in place.
type memberSet struct {
	members []Member
	index   map[string]int
}

// put stores v under key and reports whether key was already present.
func (s *memberSet) put(key string, v Value) bool {
	if i, ok := s.find(key); ok {
		s.members[i].Value = v
		return true
	}
	s.members = append(s.members, Member{Key: key, Value: v})
	switch {
	case s.index != nil:
		s.index[key] = len(s.members) - 1
	case len(s.members) > indexAfter:
		s.index = make(map[string]int, 2*len(s.members))
		for i, m := range s.members {
			s.index[m.Key] = i
		}
	}
	return false
}

func (s *memberSet) find(key string) (int, bool) {
	if s.index != nil {
		i, ok := s.index[key]
		return i, ok
	}
	for i := range s.members {
		if s.members[i].Key == key {
			return i, true
		}
	}
	return 0, false
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsContainer reports whether v is an Array or an Object.
func (v Value) IsContainer() bool { return v.kind == Array || v.kind == Object }

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.s, true
}

// Literal returns the number literal held by v.
func (v Value) Literal() (string, bool) {
	if v.kind != Number {
		return "", false
	}
	return v.s, true
}

// Float returns the number held by v as a float64.
func (v Value) Float() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil {
		// Out-of-range literals still parse to ±Inf with an error.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// Items returns the elements of an Array, nil otherwise.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return v.arr
}

// Members returns the members of an Object in document order, nil otherwise.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	return v.obj
}

// Len returns the number of elements or members of a container, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	default:
		return 0
	}
}

// Get looks up key in an Object. The second result is false when v is not an
// Object or has no such key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	for _, m := range v.obj {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Index returns element i of an Array. Negative indexes count from the end.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array {
		return Value{}, false
	}
	if i < 0 {
		i += len(v.arr)
	}
	if i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// NumberText returns the canonical decimal text of a number: integer
// literals are kept as written, anything with a fraction or exponent is
// reformatted to the shortest representation that round-trips.
func (v Value) NumberText() string {
	if v.kind != Number {
		return ""
	}
	if isIntegerLiteral(v.s) {
		return v.s
	}
	f, ok := v.Float()
	if !ok {
		return v.s
	}
	return formatFloat(f)
}

func isIntegerLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String returns the compact JSON text of v.
func (v Value) String() string {
	return string(AppendJSON(nil, v))
}

// Equal reports deep equality. Numbers compare by value, objects ignore
// member order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case String:
		return a.s == b.s
	case Number:
		if a.s == b.s {
			return true
		}
		fa, okA := a.Float()
		fb, okB := b.Float()
		return okA && okB && fa == fb
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for _, m := range a.obj {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}
