// Package prettylog turns newline-delimited JSON log records into
// human-readable, color-coded terminal lines.
//
// Each input line is classified by ParseRecord. JSON objects have their
// message, level and timestamp pulled out by Extract, are checked against
// the level allow-list, optionally gated and reshaped by a path query, and
// are turned into a RenderPlan of colored segments by Render. Anything that
// is not a JSON object is passed through verbatim unless suppressed. With
// UnwrapJSON set, string field values holding JSON are decoded first (see
// UnwrapEmbedded).
//
// A RenderPlan carries abstract color tags only. A Sink maps them onto a
// named palette through Lip Gloss and writes escape sequences only when the
// destination is a terminal.
//
// Basic usage:
//
//	cfg := prettylog.DefaultConfig()
//	t, err := prettylog.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	sink, err := prettylog.NewSink(os.Stdout, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if _, err := t.Run(ctx, os.Stdin, sink); err != nil {
//		log.Fatal(err)
//	}
//
// Reshaping the extra fields with a query:
//
//	query := "$.http"
//	cfg := prettylog.Resolve(prettylog.Options{SelectQuery: &query})
package prettylog
