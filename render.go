package prettylog

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"pkt.systems/prettylog/internal/jsonv"
)

// Color is the abstract color class of a segment. The sink maps it onto the
// active theme.
type Color uint8

const (
	ColorText Color = iota
	ColorTimestamp
	ColorNeutral
	ColorInfo
	ColorWarning
	ColorError
	ColorKey

	numColors
)

func (c Color) String() string {
	switch c {
	case ColorText:
		return "text"
	case ColorTimestamp:
		return "timestamp"
	case ColorNeutral:
		return "neutral"
	case ColorInfo:
		return "info"
	case ColorWarning:
		return "warning"
	case ColorError:
		return "error"
	case ColorKey:
		return "key"
	default:
		return "color(" + strconv.Itoa(int(c)) + ")"
	}
}

// Segment is a run of text drawn in one color.
type Segment struct {
	Text  string
	Color Color
}

// RenderPlan is the output for one record. The last segment ends the record
// with a newline; Spacing blank lines follow it.
type RenderPlan struct {
	Segments []Segment
	Spacing  int
}

// PlainText concatenates the plan without colors, including the trailing
// blank lines.
func (p RenderPlan) PlainText() string {
	var b strings.Builder
	for _, seg := range p.Segments {
		b.WriteString(seg.Text)
	}
	for i := 0; i < p.Spacing; i++ {
		b.WriteByte('\n')
	}
	return b.String()
}

const (
	fieldIndent = "  "
	blockIndent = "    "
)

// Render builds the plan for a record. extras are the candidate extra
// fields in display order; members of cfg.ExcludedFields are skipped.
func Render(f ExtractedFields, extras []jsonv.Member, cfg Config) RenderPlan {
	fields := visibleFields(extras, cfg)
	segs := make([]Segment, 0, 4+4*len(fields))

	if f.HasTimestamp {
		segs = append(segs, Segment{"[" + FormatTimestamp(f.Timestamp, cfg) + "]", ColorTimestamp})
	}
	segs = append(segs,
		Segment{"[" + f.Level + "] ", LevelColor(f.Level)},
		Segment{f.Message, ColorText},
	)

	if cfg.MultilineFields {
		for _, m := range fields {
			segs = appendBlockField(segs, m, cfg)
		}
	} else {
		if len(fields) > 0 && lipgloss.Width(f.Message) > cfg.MessageWrapThreshold {
			segs = append(segs, Segment{"\n", ColorText})
		}
		sep := " " + cfg.Separator + " "
		for _, m := range fields {
			segs = append(segs,
				Segment{sep, ColorText},
				Segment{m.Key, ColorKey},
				Segment{"=" + FormatValue(m.Value), ColorText},
			)
		}
	}

	segs = append(segs, Segment{"\n", ColorText})
	return RenderPlan{Segments: segs, Spacing: cfg.Spacing}
}

func visibleFields(extras []jsonv.Member, cfg Config) []jsonv.Member {
	if cfg.HideExtraFields {
		return nil
	}
	out := make([]jsonv.Member, 0, len(extras))
	for _, m := range extras {
		if cfg.ExcludedFields.Has(m.Key) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func appendBlockField(segs []Segment, m jsonv.Member, cfg Config) []Segment {
	text := FormatValue(m.Value)
	if lipgloss.Width(text) <= cfg.FieldWrapThreshold && !strings.ContainsAny(text, "\r\n") {
		return append(segs,
			Segment{"\n" + fieldIndent, ColorText},
			Segment{m.Key, ColorKey},
			Segment{"=" + text, ColorText},
		)
	}
	segs = append(segs,
		Segment{"\n" + fieldIndent, ColorText},
		Segment{m.Key, ColorKey},
		Segment{":", ColorText},
	)
	for _, line := range blockLines(m.Value, text) {
		segs = append(segs, Segment{"\n" + blockIndent + line, ColorText})
	}
	return segs
}

// blockLines splits a wrapped value into display lines. Containers are
// pretty-printed first.
func blockLines(v jsonv.Value, text string) []string {
	if v.IsContainer() {
		text = string(jsonv.AppendIndent(nil, v, "", "  "))
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// FormatValue is the display text of a field value: strings unquoted,
// null as NULL, numbers canonical, containers as compact JSON.
func FormatValue(v jsonv.Value) string {
	switch v.Kind() {
	case jsonv.String:
		s, _ := v.Str()
		return s
	case jsonv.Number:
		return v.NumberText()
	case jsonv.Bool:
		b, _ := v.Bool()
		return strconv.FormatBool(b)
	case jsonv.Null:
		return "NULL"
	default:
		return v.String()
	}
}

// maxUnixSeconds is 9999-12-31T23:59:59Z.
const maxUnixSeconds = 253402300799

// FormatTimestamp renders seconds since the Unix epoch, truncated to whole
// seconds, in cfg.Location using cfg.TimestampFormat. Values beyond the
// four-digit year range are shown as numbers.
func FormatTimestamp(sec float64, cfg Config) string {
	if math.IsNaN(sec) || math.Abs(sec) > maxUnixSeconds {
		return strconv.FormatFloat(sec, 'g', -1, 64)
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	layout := cfg.TimestampFormat
	if layout == "" {
		layout = DefaultTimestampFormat
	}
	return time.Unix(int64(sec), 0).In(loc).Format(layout)
}
