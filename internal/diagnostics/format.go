package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const (
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Formatter writes diagnostics to a stream, with ANSI color when the
// stream is a terminal and wrapping to the terminal width.
type Formatter struct {
	w     io.Writer
	color bool
	width int
}

// NewFormatter builds a formatter for w. colorMode is "auto", "always" or
// "never"; in auto mode color is enabled only when w is a TTY.
func NewFormatter(w io.Writer, colorMode string) *Formatter {
	f := &Formatter{w: w, width: 0}
	file, isFile := w.(*os.File)
	switch colorMode {
	case "always":
		f.color = true
	case "never":
		f.color = false
	default:
		f.color = isFile && (isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd()))
	}
	if isFile {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 20 {
			f.width = width
		}
	}
	return f
}

// Print writes each diagnostic on its own line.
func (f *Formatter) Print(errs []*DiagnosticError) {
	for _, err := range errs {
		f.printOne(err)
	}
}

func (f *Formatter) printOne(err *DiagnosticError) {
	file := err.File
	if file == "" {
		file = "<input>"
	}
	pos := fmt.Sprintf("%s:%d:%d", file, err.Line, err.Column)
	code := fmt.Sprintf("[%s]", err.Code)
	if f.color {
		pos = ansiBold + pos + ansiReset
		code = ansiRed + code + ansiReset
	}
	line := fmt.Sprintf("%s: %s %s", pos, code, err.Message)
	fmt.Fprintln(f.w, wrap(line, f.width))
}

// wrap breaks a line at spaces to fit width, indenting continuations.
// A width of 0 disables wrapping.
func wrap(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	words := strings.Fields(s)
	var b strings.Builder
	col := 0
	for i, w := range words {
		if i > 0 {
			if col+1+len(w) > width {
				b.WriteString("\n    ")
				col = 4
			} else {
				b.WriteByte(' ')
				col++
			}
		}
		b.WriteString(w)
		col += len(w)
	}
	return b.String()
}
