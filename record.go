package prettylog

import (
	"bytes"
	"encoding/json"

	"pkt.systems/jpact"
	"pkt.systems/prettylog/internal/jsonv"
)

// RecordKind classifies one input line.
type RecordKind uint8

const (
	// RecordObject is a line holding a JSON object.
	RecordObject RecordKind = iota
	// RecordNonObject is valid JSON whose top-level value is not an object.
	RecordNonObject
	// RecordUnparsable is anything that is not a single JSON value.
	RecordUnparsable
)

func (k RecordKind) String() string {
	switch k {
	case RecordObject:
		return "object"
	case RecordNonObject:
		return "non-object"
	default:
		return "unparsable"
	}
}

// Record is one classified input line. Value is set for RecordObject and
// RecordNonObject; Line always holds the original text.
type Record struct {
	Kind  RecordKind
	Value jsonv.Value
	Line  string
}

// Structured reports whether the record is rendered rather than passed
// through.
func (r Record) Structured() bool { return r.Kind == RecordObject }

// ParseRecord classifies line. Malformed input is a RecordUnparsable, never
// an error.
func ParseRecord(line string) Record {
	rec := Record{Kind: RecordUnparsable, Line: line}
	data := []byte(line)
	if !json.Valid(data) {
		return rec
	}
	compact, err := compactJSON(data)
	if err != nil {
		return rec
	}
	v, err := jsonv.Parse(compact)
	if err != nil {
		return rec
	}
	rec.Value = v
	if v.Kind() == jsonv.Object {
		rec.Kind = RecordObject
	} else {
		rec.Kind = RecordNonObject
	}
	return rec
}

// compactJSON strips insignificant whitespace so container values can be
// displayed straight from their source text. The returned slice is owned
// by the caller.
func compactJSON(data []byte) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, len(data)))
	if err := jpact.CompactWriter(buf, bytes.NewReader(data), 0); err != nil {
		buf.Reset()
		if err := json.Compact(buf, data); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
