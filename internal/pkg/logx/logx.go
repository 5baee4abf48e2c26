/*
Package logx wraps zerolog with the process-wide logger used by every component.

InitGlobalLogger picks the output format for the environment; the package-level
helpers take a message plus an even list of key-value fields.
*/
package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger configures the global zerolog logger.
// Development builds log at debug level through a console writer on stderr;
// every other environment emits JSON at info level on stdout.
func InitGlobalLogger(isDevelopment bool) {
	var out io.Writer = os.Stdout
	level := zerolog.InfoLevel

	if isDevelopment {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(out).Level(level).With().Timestamp().Caller().Logger()
}

// Logger returns the global logger.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// Component returns a child of the global logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}

// checkFields drops a field list with an odd length, since it cannot be paired up.
func checkFields(level string, fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Str("log_level", level).
			Msg("logx call received an odd number of fields, fields ignored")
		return nil
	}
	return fields
}

// Debug logs msg at debug level.
func Debug(msg string, fields ...any) {
	Logger().Debug().Fields(checkFields("debug", fields)).CallerSkipFrame(1).Msg(msg)
}

// Info logs msg at info level.
func Info(msg string, fields ...any) {
	Logger().Info().Fields(checkFields("info", fields)).CallerSkipFrame(1).Msg(msg)
}

// Warn logs msg at warn level.
func Warn(msg string, fields ...any) {
	Logger().Warn().Fields(checkFields("warn", fields)).CallerSkipFrame(1).Msg(msg)
}

// Error logs msg and err at error level.
func Error(err error, msg string, fields ...any) {
	Logger().Error().Err(err).Fields(checkFields("error", fields)).CallerSkipFrame(1).Msg(msg)
}

// Fatal logs msg and err, then exits the process with status 1.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().Err(err).Fields(checkFields("fatal", fields)).CallerSkipFrame(1).Msg(msg)
}
