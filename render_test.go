package prettylog

import (
	"strings"
	"testing"
	"time"

	"pkt.systems/prettylog/internal/jsonv"
)

func renderLine(t *testing.T, cfg Config, line string) RenderPlan {
	t.Helper()
	rec := ParseRecord(line)
	if rec.Kind != RecordObject {
		t.Fatalf("expected object record for %q", line)
	}
	return Render(Extract(rec.Value, cfg), rec.Value.Members(), cfg)
}

func TestRender_InlineDefault(t *testing.T) {
	cfg := testConfig(nil)
	plan := renderLine(t, cfg, `{"msg":"hi","level":"info","ts":1000,"a":1,"b":"x"}`)
	want := "[1970-01-01 12:16:40 AM][info] hi | a=1 | b=x\n"
	if got := plan.PlainText(); got != want {
		t.Fatalf("unexpected output\nexpected: %q\nactual:   %q", want, got)
	}
}

func TestRender_SegmentColors(t *testing.T) {
	cfg := testConfig(nil)
	plan := renderLine(t, cfg, `{"msg":"hi","level":"error","ts":0,"k":"v"}`)
	want := []Segment{
		{"[1970-01-01 12:00:00 AM]", ColorTimestamp},
		{"[error] ", ColorError},
		{"hi", ColorText},
		{" | ", ColorText},
		{"k", ColorKey},
		{"=v", ColorText},
		{"\n", ColorText},
	}
	if len(plan.Segments) != len(want) {
		t.Fatalf("unexpected segments %+v", plan.Segments)
	}
	for i := range want {
		if plan.Segments[i] != want[i] {
			t.Fatalf("segment %d = %+v, want %+v", i, plan.Segments[i], want[i])
		}
	}
}

func TestRender_MissingLevelAndMessage(t *testing.T) {
	cfg := testConfig(nil)
	plan := renderLine(t, cfg, `{"other":true}`)
	if got, want := plan.PlainText(), "[???] ??? | other=true\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	for _, seg := range plan.Segments {
		if seg.Color == ColorTimestamp {
			t.Fatalf("no timestamp segment expected without a timestamp field")
		}
	}
}

func TestRender_TimestampTruncatesFraction(t *testing.T) {
	cfg := testConfig(nil)
	plan := renderLine(t, cfg, `{"msg":"m","level":"info","ts":1700000000.987}`)
	if got, want := plan.PlainText(), "[2023-11-14 10:13:20 PM][info] m\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRender_TimestampLocationAndFormat(t *testing.T) {
	loc := time.FixedZone("X", 2*60*60)
	cfg := testConfig(func(o *Options) {
		o.Location = loc
		o.TimestampFormat = ptr(time.RFC3339)
	})
	plan := renderLine(t, cfg, `{"msg":"m","level":"info","ts":0}`)
	if got, want := plan.PlainText(), "[1970-01-01T02:00:00+02:00][info] m\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatTimestamp_OutOfRange(t *testing.T) {
	cfg := testConfig(nil)
	if got := FormatTimestamp(1e300, cfg); got != "1e+300" {
		t.Fatalf("unexpected out-of-range timestamp %q", got)
	}
}

func TestRender_ExcludedAndHiddenFields(t *testing.T) {
	cfg := testConfig(func(o *Options) { o.ExcludeFields = []string{"pid"} })
	plan := renderLine(t, cfg, `{"msg":"m","level":"info","pid":7,"host":"h"}`)
	if got, want := plan.PlainText(), "[info] m | host=h\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	cfg = testConfig(func(o *Options) { o.HideExtraFields = ptr(true) })
	plan = renderLine(t, cfg, `{"msg":"m","level":"info","pid":7,"host":"h"}`)
	if got, want := plan.PlainText(), "[info] m\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRender_Separator(t *testing.T) {
	cfg := testConfig(func(o *Options) { o.Separator = ptr("//") })
	plan := renderLine(t, cfg, `{"msg":"m","level":"info","a":null,"b":[1, 2]}`)
	if got, want := plan.PlainText(), "[info] m // a=NULL // b=[1,2]\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRender_MessageWrap(t *testing.T) {
	cfg := testConfig(func(o *Options) { o.MessageWrapThreshold = ptr(5) })

	plan := renderLine(t, cfg, `{"msg":"longer message","level":"info","a":1}`)
	if got, want := plan.PlainText(), "[info] longer message\n | a=1\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	plan = renderLine(t, cfg, `{"msg":"short","level":"info","a":1}`)
	if got, want := plan.PlainText(), "[info] short | a=1\n"; got != want {
		t.Fatalf("message at the threshold must not wrap: %q", got)
	}

	plan = renderLine(t, cfg, `{"msg":"longer message","level":"info"}`)
	if got, want := plan.PlainText(), "[info] longer message\n"; got != want {
		t.Fatalf("no wrap expected without extra fields: %q", got)
	}
}

func TestRender_MessageWrapUsesDisplayWidth(t *testing.T) {
	cfg := testConfig(func(o *Options) { o.MessageWrapThreshold = ptr(5) })
	plan := renderLine(t, cfg, `{"msg":"ååååå","level":"info","a":1}`)
	if strings.Count(plan.PlainText(), "\n") != 1 {
		t.Fatalf("five runes must fit a threshold of five: %q", plan.PlainText())
	}
}

func TestRender_Multiline(t *testing.T) {
	cfg := testConfig(func(o *Options) {
		o.MultilineFields = ptr(true)
		o.FieldWrapThreshold = ptr(10)
		o.MessageWrapThreshold = ptr(1)
	})
	plan := renderLine(t, cfg, `{"msg":"message","level":"debug","short":"v","long":"0123456789abc","text":"a\nb","obj":{"k":[1,2]}}`)
	want := "[debug] message" +
		"\n  short=v" +
		"\n  long:" +
		"\n    0123456789abc" +
		"\n  text:" +
		"\n    a" +
		"\n    b" +
		"\n  obj:" +
		"\n    {" +
		"\n      \"k\": [" +
		"\n        1," +
		"\n        2" +
		"\n      ]" +
		"\n    }" +
		"\n"
	if got := plan.PlainText(); got != want {
		t.Fatalf("unexpected output\nexpected:\n%s\nactual:\n%s", want, got)
	}
}

func TestRender_MultilineCRLFValue(t *testing.T) {
	cfg := testConfig(func(o *Options) { o.MultilineFields = ptr(true) })
	plan := renderLine(t, cfg, `{"msg":"m","level":"info","text":"a\r\nb"}`)
	if got, want := plan.PlainText(), "[info] m\n  text:\n    a\n    b\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRender_Spacing(t *testing.T) {
	cfg := testConfig(func(o *Options) { o.Spacing = ptr(2) })
	plan := renderLine(t, cfg, `{"msg":"m","level":"info"}`)
	if plan.Spacing != 2 {
		t.Fatalf("expected spacing 2, got %d", plan.Spacing)
	}
	if got, want := plan.PlainText(), "[info] m\n\n\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRender_SkipsExcludedExtras(t *testing.T) {
	cfg := testConfig(nil)
	extras := []jsonv.Member{
		{Key: "z", Value: jsonv.NumberValue("1")},
		{Key: "msg", Value: jsonv.StringValue("dup")},
		{Key: "a", Value: jsonv.NumberValue("2")},
	}
	plan := Render(ExtractedFields{Message: "m", Level: "info"}, extras, cfg)
	if got, want := plan.PlainText(), "[info] m | z=1 | a=2\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
