package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"pkt.systems/prettylog"
)

// Flag names double as config file keys and, upper-cased with dashes
// replaced, as PRETTYLOG_ environment variables.
const (
	flagMessageField    = "message-field"
	flagLevelField      = "level-field"
	flagTimestampField  = "timestamp-field"
	flagExcludeFields   = "exclude-fields"
	flagSeparator       = "separator"
	flagFilterLevels    = "filter-levels"
	flagHideExtraFields = "hide-extra-fields"
	flagDisableColors   = "disable-colors"
	flagHideNonJSON     = "hide-non-json"
	flagMultilineFields = "multiline-fields"
	flagUnwrapJSON      = "unwrap-json"
	flagSpacing         = "spacing"
	flagSelect          = "select"
	flagGate            = "gate"
	flagMessageWrap     = "message-wrap"
	flagFieldWrap       = "field-wrap"
	flagTimestampFormat = "timestamp-format"
	flagUTC             = "utc"
	flagPalette         = "palette"
	flagListPalettes    = "list-palettes"
	flagPrintConfig     = "print-config"
	flagConfig          = "config"
	flagLogLevel        = "log-level"
)

var errTerminalInput = errors.New("stdin is a terminal; pipe JSON log lines into prettylog")

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "prettylog [flags] < app.log",
		Short: "Pretty-print JSON log lines",
		Long: `prettylog reads newline-delimited JSON log records on stdin and writes
them as colored, human-readable lines. Lines that are not JSON objects pass
through unchanged.

Examples:
  myapp | prettylog
  kubectl logs deploy/api | prettylog -f error,warning -e pid,hostname
  prettylog -q '$.http' -g '$.http.status' < access.log`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPretty(cmd, v, stdin, stdout)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	registerFlags(cmd.Flags())
	return cmd
}

func registerFlags(fs *pflag.FlagSet) {
	fs.StringP(flagMessageField, "m", prettylog.DefaultMessageField, "field holding the log message")
	fs.StringP(flagLevelField, "l", prettylog.DefaultLevelField, "field holding the log level")
	fs.StringP(flagTimestampField, "t", prettylog.DefaultTimestampField, "field holding the Unix timestamp in seconds")
	fs.StringSliceP(flagExcludeFields, "e", nil, "comma-separated fields to hide from the extra fields")
	fs.StringP(flagSeparator, "s", prettylog.DefaultSeparator, "separator between inline extra fields")
	fs.StringSliceP(flagFilterLevels, "f", nil, "comma-separated levels to show (default all)")
	fs.BoolP(flagHideExtraFields, "H", false, "hide every field except timestamp, level and message")
	fs.BoolP(flagDisableColors, "d", false, "never write color escape sequences")
	fs.BoolP(flagHideNonJSON, "n", false, "drop lines that are not JSON objects")
	fs.BoolP(flagMultilineFields, "M", false, "write each extra field on its own line")
	fs.BoolP(flagUnwrapJSON, "u", false, "decode field values that are strings holding JSON objects or arrays")
	fs.IntP(flagSpacing, "S", 0, "blank lines after each record")
	fs.StringP(flagSelect, "q", "", "path query selecting the extra fields to show")
	fs.StringP(flagGate, "g", "", "path query a record must match to be shown")
	fs.Int(flagMessageWrap, prettylog.DefaultWrapThreshold, "message width that moves inline fields to the next line")
	fs.Int(flagFieldWrap, prettylog.DefaultWrapThreshold, "value width that moves a multiline field value below its key")
	fs.String(flagTimestampFormat, prettylog.DefaultTimestampFormat, "Go time layout for timestamps")
	fs.Bool(flagUTC, false, "show timestamps in UTC instead of the local time zone")
	fs.String(flagPalette, prettylog.DefaultPalette, "color palette ("+strings.Join(prettylog.PaletteNames(), ", ")+")")
	fs.Bool(flagListPalettes, false, "list palette names and exit")
	fs.Bool(flagPrintConfig, false, "print the effective settings as YAML and exit")
	fs.String(flagConfig, "", "config file (default $XDG_CONFIG_HOME/prettylog/config.yaml or $HOME/.prettylog.yaml)")
	fs.String(flagLogLevel, "warn", "diagnostics level on stderr: debug, info, warn, error")
}

func runPretty(cmd *cobra.Command, v *viper.Viper, stdin io.Reader, stdout io.Writer) error {
	if err := loadConfig(v, cmd.Flags()); err != nil {
		return usageError(err)
	}

	if v.GetBool(flagListPalettes) {
		for _, name := range prettylog.PaletteNames() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}
	if v.GetBool(flagPrintConfig) {
		return printConfig(stdout, v)
	}

	logger, err := newLogger(v.GetString(flagLogLevel))
	if err != nil {
		return usageError(err)
	}
	defer shutdownLogger(logger)

	if prettylog.IsTerminal(stdin) {
		return &exitError{code: exitIO, err: errTerminalInput}
	}

	cfg := prettylog.Resolve(optionsFrom(v))
	transformer, err := prettylog.New(cfg, prettylog.WithLogger(logger))
	if err != nil {
		return err
	}
	sink, err := prettylog.NewSink(stdout, cfg)
	if err != nil {
		return usageError(err)
	}
	logger.Debug("msg", "Starting",
		"select", cfg.SelectQuery,
		"gate", cfg.GateQuery,
		"palette", cfg.Palette,
		"colors", sink.ColorEnabled(),
		"config_file", v.ConfigFileUsed())

	stats, err := transformer.Run(cmd.Context(), stdin, sink)
	logger.Info("msg", "Finished",
		"lines", stats.Lines,
		"rendered", stats.Rendered,
		"passthrough", stats.Passthrough,
		"dropped", stats.Dropped)
	return err
}

// optionsFrom maps the layered flag, environment and file values onto
// prettylog options.
func optionsFrom(v *viper.Viper) prettylog.Options {
	o := prettylog.Options{
		MessageField:         ptr(v.GetString(flagMessageField)),
		LevelField:           ptr(v.GetString(flagLevelField)),
		TimestampField:       ptr(v.GetString(flagTimestampField)),
		ExcludeFields:        splitList(v.GetStringSlice(flagExcludeFields)),
		Separator:            ptr(v.GetString(flagSeparator)),
		FilterLevels:         splitList(v.GetStringSlice(flagFilterLevels)),
		HideExtraFields:      ptr(v.GetBool(flagHideExtraFields)),
		DisableColors:        ptr(v.GetBool(flagDisableColors)),
		HideNonJSON:          ptr(v.GetBool(flagHideNonJSON)),
		MultilineFields:      ptr(v.GetBool(flagMultilineFields)),
		UnwrapJSON:           ptr(v.GetBool(flagUnwrapJSON)),
		Spacing:              ptr(v.GetInt(flagSpacing)),
		SelectQuery:          ptr(v.GetString(flagSelect)),
		GateQuery:            ptr(v.GetString(flagGate)),
		MessageWrapThreshold: ptr(v.GetInt(flagMessageWrap)),
		FieldWrapThreshold:   ptr(v.GetInt(flagFieldWrap)),
		TimestampFormat:      ptr(v.GetString(flagTimestampFormat)),
		Palette:              ptr(v.GetString(flagPalette)),
	}
	if v.GetBool(flagUTC) {
		o.Location = time.UTC
	}
	return o
}

// splitList flattens comma-separated entries, which is how lists arrive
// from the environment.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
