package prettylog

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Output receives rendered records and passthrough lines.
type Output interface {
	WritePlan(plan RenderPlan) error
	WriteRaw(line string) error
}

// SinkOption configures a Sink.
type SinkOption func(*sinkOptions)

type sinkOptions struct {
	profile      termenv.Profile
	forceProfile bool
}

// WithColorProfile skips terminal detection and renders with profile.
// termenv.Ascii turns colors off.
func WithColorProfile(profile termenv.Profile) SinkOption {
	return func(o *sinkOptions) {
		o.profile = profile
		o.forceProfile = true
	}
}

// Sink writes records to an io.Writer. Every record is emitted with a
// single Write call, so records from concurrent callers never interleave.
type Sink struct {
	mu      sync.Mutex
	w       io.Writer
	color   bool
	palette ColorPalette
}

var _ Output = (*Sink)(nil)

// NewSink returns a Sink for w. Colors are used only when cfg allows them
// and w is a terminal, unless a profile is forced with WithColorProfile.
func NewSink(w io.Writer, cfg Config, opts ...SinkOption) (*Sink, error) {
	if w == nil {
		return nil, errors.New("prettylog: nil writer")
	}
	var o sinkOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	renderer := lipgloss.NewRenderer(w)
	enable := !cfg.DisableColors
	if o.forceProfile {
		renderer.SetColorProfile(o.profile)
		enable = enable && o.profile != termenv.Ascii
	} else {
		enable = enable && IsTerminal(w)
	}

	palette, err := resolvePalette(cfg.Palette, renderer, enable)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Palette), paletteNoneName) {
		enable = false
	}
	return &Sink{w: w, color: enable, palette: palette}, nil
}

// ColorEnabled reports whether the sink emits escape sequences.
func (s *Sink) ColorEnabled() bool { return s.color }

// WritePlan writes a rendered record followed by its blank lines.
func (s *Sink) WritePlan(plan RenderPlan) error {
	buf := acquireBuffer()
	defer releaseBuffer(buf)
	for _, seg := range plan.Segments {
		if !s.color {
			buf.WriteString(seg.Text)
			continue
		}
		style := s.palette.Style(seg.Color)
		// Styles pad multi-line input to a block, so each line is
		// rendered on its own.
		for i, part := range strings.Split(seg.Text, "\n") {
			if i > 0 {
				buf.WriteByte('\n')
			}
			if part != "" {
				buf.WriteString(style.Render(part))
			}
		}
	}
	for i := 0; i < plan.Spacing; i++ {
		buf.WriteByte('\n')
	}
	return s.write(buf.Bytes())
}

// WriteRaw writes line verbatim followed by a newline.
func (s *Sink) WriteRaw(line string) error {
	buf := acquireBuffer()
	defer releaseBuffer(buf)
	buf.WriteString(line)
	buf.WriteByte('\n')
	return s.write(buf.Bytes())
}

func (s *Sink) write(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(p)
	return err
}

// IsTerminal reports whether v is a file descriptor attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
