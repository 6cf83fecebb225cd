package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a console logger scoped to one component.
func New(component string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().Timestamp().Str("component", component).Logger()
}

// SetLevel applies the global log level from its string form. Unknown
// levels fall back to info.
func SetLevel(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
