package prettylog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lixenwraith/log"
)

// Action is what the transformer decided to do with a line.
type Action uint8

const (
	// ActionRender means Outcome.Plan holds the rendered record.
	ActionRender Action = iota
	// ActionPassthrough means Outcome.Line is written verbatim.
	ActionPassthrough
	// ActionDrop means nothing is written.
	ActionDrop
)

func (a Action) String() string {
	switch a {
	case ActionRender:
		return "render"
	case ActionPassthrough:
		return "passthrough"
	case ActionDrop:
		return "drop"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// Outcome is the result of transforming one line.
type Outcome struct {
	Action Action
	Plan   RenderPlan
	Line   string
	// Reason says why a line was dropped.
	Reason string
}

// Stats counts what Run did.
type Stats struct {
	Lines       int
	Rendered    int
	Passthrough int
	Dropped     int
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithLogger sets the diagnostics logger. Nothing is logged without one.
func WithLogger(logger *log.Logger) Option {
	return func(t *Transformer) {
		t.logger = logger
	}
}

// Transformer turns log lines into render plans. It is immutable after New
// and safe for concurrent use.
type Transformer struct {
	cfg    Config
	q      queries
	logger *log.Logger
}

// New validates cfg and compiles its queries. A malformed query is returned
// as a *QueryError.
func New(cfg Config, opts ...Option) (*Transformer, error) {
	if cfg.ExcludedFields == nil {
		cfg.ExcludedFields = newSet()
	}
	for _, name := range []string{cfg.MessageField, cfg.LevelField, cfg.TimestampField} {
		if _, ok := cfg.ExcludedFields[name]; !ok {
			return nil, fmt.Errorf("prettylog: field %q must be excluded from extra fields", name)
		}
	}
	q, err := compileQueries(cfg)
	if err != nil {
		return nil, err
	}
	t := &Transformer{cfg: cfg, q: q}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t, nil
}

// Config returns the configuration t was built with.
func (t *Transformer) Config() Config { return t.cfg }

// Transform decides what to do with one line. line must not include its
// line terminator.
func (t *Transformer) Transform(line string) Outcome {
	rec := ParseRecord(line)
	if !rec.Structured() {
		if t.cfg.HideNonJSON {
			return Outcome{Action: ActionDrop, Line: line, Reason: ReasonNonJSON}
		}
		return Outcome{Action: ActionPassthrough, Line: line}
	}

	fields := Extract(rec.Value, t.cfg)
	if !LevelAllowed(fields.Level, t.cfg.FilterLevels) {
		return Outcome{Action: ActionDrop, Line: line, Reason: ReasonLevel}
	}
	extras, reason := t.q.apply(rec.Value)
	if reason != "" {
		return Outcome{Action: ActionDrop, Line: line, Reason: reason}
	}
	if t.cfg.UnwrapJSON {
		extras = unwrapMembers(extras, MaxUnwrapDepth)
	}
	return Outcome{Action: ActionRender, Line: line, Plan: Render(fields, extras, t.cfg)}
}

// Run transforms every line of r into out until EOF or until ctx is done.
// Lines may end in "\n" or "\r\n"; a final line without a terminator is
// still processed.
func (t *Transformer) Run(ctx context.Context, r io.Reader, out Output) (Stats, error) {
	var stats Stats
	br := bufio.NewReaderSize(r, maxScratchCap)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		line, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return stats, fmt.Errorf("read input: %w", readErr)
		}
		if line == "" && readErr != nil {
			t.debug("Input finished", stats)
			return stats, nil
		}
		stats.Lines++
		if err := t.emit(t.Transform(trimEOL(line)), out, &stats); err != nil {
			return stats, fmt.Errorf("write output: %w", err)
		}
		if readErr != nil {
			t.debug("Input finished", stats)
			return stats, nil
		}
	}
}

func (t *Transformer) emit(o Outcome, out Output, stats *Stats) error {
	switch o.Action {
	case ActionRender:
		stats.Rendered++
		return out.WritePlan(o.Plan)
	case ActionPassthrough:
		stats.Passthrough++
		return out.WriteRaw(o.Line)
	default:
		stats.Dropped++
		if t.logger != nil {
			t.logger.Debug("msg", "Record dropped", "line", stats.Lines, "reason", o.Reason)
		}
		return nil
	}
}

func (t *Transformer) debug(msg string, stats Stats) {
	if t.logger == nil {
		return
	}
	t.logger.Debug("msg", msg,
		"lines", stats.Lines,
		"rendered", stats.Rendered,
		"passthrough", stats.Passthrough,
		"dropped", stats.Dropped)
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
