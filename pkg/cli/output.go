package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/funssa/internal/diagnostics"
)

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

// useColor reports whether w is a terminal that should get coloured output.
func useColor(w io.Writer, disabled bool) bool {
	if disabled || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// flatten splits joined errors back into their parts.
func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

// printErrors writes one line per diagnostic in err.
func printErrors(w io.Writer, err error, color bool) {
	for _, e := range flatten(err) {
		line := e.Error()
		var de *diagnostics.DiagnosticError
		if errors.As(e, &de) && de.Code.Name() != string(de.Code) {
			line += " (" + de.Code.Name() + ")"
		}
		if color {
			line = colorRed + line + colorReset
		}
		fmt.Fprintln(w, line)
	}
}
