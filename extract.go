package prettylog

import "pkt.systems/prettylog/internal/jsonv"

// Fallback replaces a message or level that is missing or not a string.
const Fallback = "???"

// ExtractedFields is the read-only view of the well-known fields of a
// record.
type ExtractedFields struct {
	Message string
	Level   string
	// Timestamp is seconds since the Unix epoch; only meaningful when
	// HasTimestamp is set.
	Timestamp    float64
	HasTimestamp bool
}

// Extract pulls message, level and timestamp out of obj using the field
// names in cfg. It never fails: absent or mistyped fields fall back.
func Extract(obj jsonv.Value, cfg Config) ExtractedFields {
	f := ExtractedFields{
		Message: stringField(obj, cfg.MessageField),
		Level:   stringField(obj, cfg.LevelField),
	}
	if v, ok := obj.Get(cfg.TimestampField); ok {
		f.Timestamp, f.HasTimestamp = v.Float()
	}
	return f
}

func stringField(obj jsonv.Value, name string) string {
	v, ok := obj.Get(name)
	if !ok {
		return Fallback
	}
	s, ok := v.Str()
	if !ok {
		return Fallback
	}
	return s
}
