// Package logging provides structured logging for paramconv using zerolog.
// Console output is used when stderr is a terminal and JSON otherwise, so
// conversion runs can be read by an operator or collected by a script.
//
// The CLI installs its configured logger with SetDefault; library packages
// take their logger from the context:
//
//	ctx = logging.WithKind(ctx, "Npc")
//	logging.FromContext(ctx).Debug().Int("rows", 42).Msg("aligned rows")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger serves code paths that run without a context logger, such
// as registry construction before the CLI has parsed its flags.
var defaultLogger = NewLoggerFromConfig(envConfig())

// envConfig reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT. DEBUG=1 is a
// shortcut for LOG_LEVEL=debug.
func envConfig() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = v
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	return cfg
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, including zerolog's global
// log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Debug starts a debug event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
