package prettylog

import (
	"bytes"
	"errors"
	"time"
)

type fdWriter struct {
	buf bytes.Buffer
}

func (w *fdWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Fd is never a terminal in tests.
func (w *fdWriter) Fd() uintptr {
	return ^uintptr(0)
}

type countingWriter struct {
	writes int
	buf    bytes.Buffer
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.buf.Write(p)
}

type errWriter struct{}

func (errWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("write err")
}

type failAfterWriter struct {
	count int
	fail  int
	buf   bytes.Buffer
}

func (w *failAfterWriter) Write(p []byte) (int, error) {
	w.count++
	if w.count > w.fail {
		return 0, errors.New("write err")
	}
	return w.buf.Write(p)
}

type errReader struct{}

func (errReader) Read(_ []byte) (int, error) {
	return 0, errors.New("read err")
}

type errAfterReader struct {
	data []byte
	err  error
	done bool
}

func (r *errAfterReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, r.err
	}
	r.done = true
	n := copy(p, r.data)
	return n, nil
}

// recordingOutput keeps every write for inspection.
type recordingOutput struct {
	plans []RenderPlan
	raw   []string
}

func (o *recordingOutput) WritePlan(plan RenderPlan) error {
	o.plans = append(o.plans, plan)
	return nil
}

func (o *recordingOutput) WriteRaw(line string) error {
	o.raw = append(o.raw, line)
	return nil
}

func ptr[T any](v T) *T { return &v }

// testConfig is the default configuration pinned to UTC.
func testConfig(mut func(*Options)) Config {
	var o Options
	o.Location = time.UTC
	if mut != nil {
		mut(&o)
	}
	return Resolve(o)
}
