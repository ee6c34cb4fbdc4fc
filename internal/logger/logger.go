package logger

import (
	"io"
	"log/slog"
	"os"
)

var ProgramLevel = new(slog.LevelVar)

// SetupLogger initialiserer loggeren med JSON-format og standard nivå.
// Uten writer logges det til stdout.
func SetupLogger(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	ProgramLevel.Set(slog.LevelInfo)

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     ProgramLevel,
		AddSource: false,
	}))
	slog.SetDefault(logger)
}

// SetDebug setter loggnivået til Debug hvis debug er true.
func SetDebug(debug bool) {
	if debug {
		ProgramLevel.Set(slog.LevelDebug)
	}
}
