package jsonv

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestParseKeepsKeyOrder(t *testing.T) {
	v, err := Parse([]byte(`{"z":1,"a":2,"m":{"y":true,"b":null}}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Kind() != Object {
		t.Fatalf("expected object, got %s", v.Kind())
	}
	var keys []string
	for _, m := range v.Members() {
		keys = append(keys, m.Key)
	}
	if got := len(keys); got != 3 || keys[0] != "z" || keys[1] != "a" || keys[2] != "m" {
		t.Fatalf("unexpected key order: %v", keys)
	}
	inner, ok := v.Get("m")
	if !ok {
		t.Fatalf("missing member m")
	}
	if got := inner.String(); got != `{"y":true,"b":null}` {
		t.Fatalf("unexpected inner text: %s", got)
	}
}

func TestParseScalars(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
	}{
		{"null", Null},
		{"true", Bool},
		{"false", Bool},
		{"-12.5e3", Number},
		{`"hi"`, String},
		{"[]", Array},
		{"{}", Object},
		{"  [1, 2]  ", Array},
	}
	for _, tc := range cases {
		v, err := Parse([]byte(tc.in))
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tc.in, err)
		}
		if v.Kind() != tc.kind {
			t.Fatalf("Parse(%q) kind = %s, want %s", tc.in, v.Kind(), tc.kind)
		}
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "plain text", `{"a":}`, `{"a":1`, "[1,]", "{} {}", "1 2"} {
		if _, err := Parse([]byte(in)); err == nil {
			t.Fatalf("Parse(%q) should fail", in)
		}
	}
	if _, err := Parse([]byte("[] []")); !errors.Is(err, ErrTrailingData) {
		t.Fatalf("expected ErrTrailingData, got %v", err)
	}
}

func TestParseDuplicateKeysKeepFirstPosition(t *testing.T) {
	v, err := Parse([]byte(`{"a":1,"b":2,"a":3}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	members := v.Members()
	if len(members) != 2 || members[0].Key != "a" || members[1].Key != "b" {
		t.Fatalf("unexpected members: %+v", members)
	}
	if got, _ := members[0].Value.Literal(); got != "3" {
		t.Fatalf("expected last value to win, got %s", got)
	}
	if got := v.String(); got != `{"a":3,"b":2}` {
		t.Fatalf("expected re-encoded text, got %s", got)
	}
}

func wideObject(n, dupEvery int) []byte {
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		key := i
		if dupEvery > 0 && i%dupEvery == dupEvery-1 {
			key = i - 1
		}
		b.WriteString(`"k` + strconv.Itoa(key) + `":` + strconv.Itoa(i))
	}
	b.WriteByte('}')
	return []byte(b.String())
}

func TestParseWideObject(t *testing.T) {
	const n = 50000
	data := wideObject(n, 0)
	start := time.Now()
	v, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("parsing %d keys took %s", n, elapsed)
	}
	if v.Len() != n {
		t.Fatalf("expected %d members, got %d", n, v.Len())
	}
	if last, ok := v.Get("k49999"); !ok || last.NumberText() != "49999" {
		t.Fatalf("unexpected last member %v (%t)", last, ok)
	}
	if got := v.String(); got != string(data) {
		t.Fatalf("expected source text to be reused")
	}
}

func TestParseDuplicateKeysInWideObject(t *testing.T) {
	// Every tenth key repeats the one before it.
	v, err := Parse(wideObject(100, 10))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Len() != 90 {
		t.Fatalf("expected 90 members, got %d", v.Len())
	}
	got, ok := v.Get("k98")
	if !ok || got.NumberText() != "99" {
		t.Fatalf("expected later duplicate to win, got %v (%t)", got, ok)
	}
	members := v.Members()
	if members[8].Key != "k8" || members[9].Key != "k10" {
		t.Fatalf("duplicates moved members: %s %s", members[8].Key, members[9].Key)
	}
	if !strings.Contains(v.String(), `"k97":97,"k98":99}`) {
		t.Fatalf("expected re-encoded text, got %s", v.String())
	}
}

func TestObjectValueDuplicatesPastIndex(t *testing.T) {
	var members []Member
	for i := 0; i < 20; i++ {
		members = append(members, Member{Key: "k" + strconv.Itoa(i%12), Value: NumberValue(strconv.Itoa(i))})
	}
	v := ObjectValue(members...)
	if v.Len() != 12 {
		t.Fatalf("expected 12 members, got %d", v.Len())
	}
	if got, _ := v.Get("k3"); got.NumberText() != "15" {
		t.Fatalf("expected k3=15, got %s", got.NumberText())
	}
}

func BenchmarkParseWideObject(b *testing.B) {
	data := wideObject(50000, 0)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(data); err != nil {
			b.Fatal(err)
		}
	}
}

func TestNumberText(t *testing.T) {
	cases := map[string]string{
		"1":        "1",
		"-0":       "-0",
		"1000":     "1000",
		"1.50":     "1.5",
		"1e3":      "1000",
		"2.5E-3":   "0.0025",
		"1e-7":     "1e-07",
		"12345e20": "1.2345e+24",
	}
	for lit, want := range cases {
		if got := NumberValue(lit).NumberText(); got != want {
			t.Fatalf("NumberText(%s) = %s, want %s", lit, got, want)
		}
	}
}

func TestAppendJSONBuiltValues(t *testing.T) {
	v := ObjectValue(
		Member{Key: "s", Value: StringValue("a\"b\n<c>\x01")},
		Member{Key: "arr", Value: ArrayValue(NumberValue("1"), BoolValue(false), NullValue())},
		Member{Key: "empty", Value: ArrayValue()},
	)
	want := `{"s":"a\"b\n<c>\u0001","arr":[1,false,null],"empty":[]}`
	if got := v.String(); got != want {
		t.Fatalf("unexpected encoding\nwant: %s\ngot:  %s", want, got)
	}
}

func TestAppendIndent(t *testing.T) {
	v, err := Parse([]byte(`{"a":[1,{"b":"c"}],"d":{},"e":[]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := "{\n>  \"a\": [\n>    1,\n>    {\n>      \"b\": \"c\"\n>    }\n>  ],\n>  \"d\": {},\n>  \"e\": []\n>}"
	if got := string(AppendIndent(nil, v, ">", "  ")); got != want {
		t.Fatalf("unexpected indent output\nwant: %q\ngot:  %q", want, got)
	}
}

func TestEqual(t *testing.T) {
	a, _ := Parse([]byte(`{"x":1.0,"y":[true,"s"]}`))
	b, _ := Parse([]byte(`{"y":[true,"s"],"x":1}`))
	if !Equal(a, b) {
		t.Fatalf("expected %s == %s", a, b)
	}
	c, _ := Parse([]byte(`{"y":[true,"s"],"x":2}`))
	if Equal(a, c) {
		t.Fatalf("expected %s != %s", a, c)
	}
	if Equal(StringValue("1"), NumberValue("1")) {
		t.Fatalf("different kinds must not be equal")
	}
}

func TestAccessorsOnWrongKind(t *testing.T) {
	v := StringValue("x")
	if _, ok := v.Get("a"); ok {
		t.Fatalf("Get on string should fail")
	}
	if _, ok := v.Index(0); ok {
		t.Fatalf("Index on string should fail")
	}
	if _, ok := v.Float(); ok {
		t.Fatalf("Float on string should fail")
	}
	arr := ArrayValue(NumberValue("1"), NumberValue("2"))
	if last, ok := arr.Index(-1); !ok || last.NumberText() != "2" {
		t.Fatalf("negative index lookup failed: %v %v", last, ok)
	}
	if _, ok := arr.Index(2); ok {
		t.Fatalf("out of range index should fail")
	}
}
