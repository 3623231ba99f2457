// Package obs wires the process-wide structured logger used by every
// other package in sudokuforge. Nothing here is Sudoku-specific.
package obs

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New builds a logger. When w is a terminal, output is a colored
// human-readable console writer; otherwise it's line-delimited JSON,
// which is what a batch run redirected to a file or log collector wants.
func New(w io.Writer, jsonForced bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	if f, ok := w.(*os.File); ok && !jsonForced && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything; used as a safe default
// in tests and library call sites that don't want to configure logging.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
