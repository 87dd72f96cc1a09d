package prettylog

import "time"

// Defaults applied by Resolve.
const (
	DefaultMessageField    = "msg"
	DefaultLevelField      = "level"
	DefaultTimestampField  = "ts"
	DefaultSeparator       = "|"
	DefaultWrapThreshold   = 120
	DefaultTimestampFormat = "2006-01-02 03:04:05 PM"
	DefaultPalette         = "default"
)

// Options are user-supplied settings. A nil pointer means "not set"; Resolve
// fills in the default.
type Options struct {
	MessageField   *string
	LevelField     *string
	TimestampField *string
	// ExcludeFields are hidden from the extra fields in addition to the
	// message, level and timestamp fields.
	ExcludeFields []string
	Separator     *string
	// FilterLevels is the level allow-list. Empty accepts every level.
	FilterLevels []string

	HideExtraFields *bool
	DisableColors   *bool
	HideNonJSON     *bool
	MultilineFields *bool
	// UnwrapJSON decodes extra field values that are strings holding JSON.
	UnwrapJSON *bool

	// Spacing is the number of blank lines written after each record.
	Spacing *int

	SelectQuery *string
	GateQuery   *string

	MessageWrapThreshold *int
	FieldWrapThreshold   *int

	// TimestampFormat is a time.Layout string.
	TimestampFormat *string
	Location        *time.Location
	Palette         *string
}

// Set is an immutable string set.
type Set map[string]struct{}

func newSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Has reports whether s contains item.
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Config is the fully defaulted transformer configuration. Build it with
// Resolve; it is not modified afterwards.
type Config struct {
	MessageField   string
	LevelField     string
	TimestampField string
	// ExcludedFields always contains MessageField, LevelField and
	// TimestampField.
	ExcludedFields Set
	Separator      string
	FilterLevels   Set

	HideExtraFields bool
	DisableColors   bool
	HideNonJSON     bool
	MultilineFields bool
	UnwrapJSON      bool
	Spacing         int

	// SelectQuery and GateQuery are empty when not configured.
	SelectQuery string
	GateQuery   string

	MessageWrapThreshold int
	FieldWrapThreshold   int

	TimestampFormat string
	Location        *time.Location
	Palette         string
}

// DefaultConfig returns the configuration used when no option is set.
func DefaultConfig() Config {
	return Resolve(Options{})
}

// Resolve turns raw options into a Config. Negative counts and thresholds
// are clamped to zero.
func Resolve(o Options) Config {
	cfg := Config{
		MessageField:         stringOr(o.MessageField, DefaultMessageField),
		LevelField:           stringOr(o.LevelField, DefaultLevelField),
		TimestampField:       stringOr(o.TimestampField, DefaultTimestampField),
		Separator:            stringOr(o.Separator, DefaultSeparator),
		FilterLevels:         newSet(o.FilterLevels...),
		HideExtraFields:      boolOr(o.HideExtraFields),
		DisableColors:        boolOr(o.DisableColors),
		HideNonJSON:          boolOr(o.HideNonJSON),
		MultilineFields:      boolOr(o.MultilineFields),
		UnwrapJSON:           boolOr(o.UnwrapJSON),
		Spacing:              nonNegative(intOr(o.Spacing, 0)),
		SelectQuery:          stringOr(o.SelectQuery, ""),
		GateQuery:            stringOr(o.GateQuery, ""),
		MessageWrapThreshold: nonNegative(intOr(o.MessageWrapThreshold, DefaultWrapThreshold)),
		FieldWrapThreshold:   nonNegative(intOr(o.FieldWrapThreshold, DefaultWrapThreshold)),
		TimestampFormat:      stringOr(o.TimestampFormat, DefaultTimestampFormat),
		Location:             o.Location,
		Palette:              stringOr(o.Palette, DefaultPalette),
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = DefaultTimestampFormat
	}
	excluded := make([]string, 0, len(o.ExcludeFields)+3)
	excluded = append(excluded, o.ExcludeFields...)
	excluded = append(excluded, cfg.MessageField, cfg.LevelField, cfg.TimestampField)
	cfg.ExcludedFields = newSet(excluded...)
	return cfg
}

func stringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool) bool {
	return p != nil && *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
