package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger returns the console logger used for run diagnostics. Without
// verbose only failures are shown.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.ErrorLevel
	if verbose {
		level = zerolog.InfoLevel
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}
