// Package logger builds the zerolog loggers used across the application.
// Components receive child loggers from main and never configure logging
// themselves.
package logger

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a JSON logger writing to stdout, tagged with the role of the
// running binary (e.g. "server", "importnotes").
func New(role, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Str("role", role).
		Timestamp().
		Logger()
}

// Nop returns a logger that discards everything; used in tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// FromRequest returns the request-scoped logger attached by the logging
// middleware, falling back to the global logger when none is present.
func FromRequest(r *http.Request) *zerolog.Logger {
	return log.Ctx(r.Context())
}
