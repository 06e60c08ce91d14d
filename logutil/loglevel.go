package logutil

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func ParseZerologLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Logger derives a component logger from the global logger. An empty level
// keeps the global logger's level.
func Logger(component, level string) zerolog.Logger {
	logger := log.Logger.With().Str("component", component).Logger()

	if level == "" {
		return logger
	}

	return logger.Level(ParseZerologLevel(level))
}
