package prettylog

import "strings"

// LevelAllowed reports whether a record with level passes the allow-list.
// An empty allow-list accepts everything; matching is exact and
// case-sensitive.
func LevelAllowed(level string, allow Set) bool {
	if len(allow) == 0 {
		return true
	}
	return allow.Has(level)
}

// LevelColor maps a level name, case-insensitively, to its segment color.
// Unknown levels are neutral.
func LevelColor(level string) Color {
	switch strings.ToLower(level) {
	case "trace", "debug":
		return ColorNeutral
	case "info", "notice":
		return ColorInfo
	case "warning":
		return ColorWarning
	case "error", "err", "critical", "crit", "fatal", "emerg", "emergency", "alert":
		return ColorError
	default:
		return ColorNeutral
	}
}
