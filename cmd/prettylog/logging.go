package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/log"
)

// newLogger returns a logger writing diagnostics to stderr at level.
func newLogger(level string) (*log.Logger, error) {
	levelValue, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.NewLogger()
	if err := logger.InitWithDefaults(
		"disable_file=true",
		"enable_stdout=true",
		"stdout_target=stderr",
		fmt.Sprintf("level=%d", levelValue),
	); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning", "":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}

func shutdownLogger(logger *log.Logger) {
	_ = logger.Shutdown(2 * time.Second)
}
