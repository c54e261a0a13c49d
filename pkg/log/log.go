// Package log provides colored diagnostic output on stderr and a file log
// of the bytes exchanged with the destination.
package log

import (
	"io"
	"os"

	"github.com/fatih/color"
)

var red = color.New(color.FgRed).FprintfFunc()
var blue = color.New(color.FgBlue).FprintfFunc()
var yellow = color.New(color.FgYellow).FprintfFunc()

// Logger prints diagnostics. Verbose messages are dropped unless the
// logger was created with verbose enabled.
type Logger struct {
	out     io.Writer
	verbose bool
}

// NewLogger returns a Logger writing to stderr.
func NewLogger(verbose bool) *Logger {
	return NewLoggerTo(os.Stderr, verbose)
}

// NewLoggerTo returns a Logger writing to w.
func NewLoggerTo(w io.Writer, verbose bool) *Logger {
	return &Logger{out: w, verbose: verbose}
}

// ErrorMsg prints an error message in red.
func (l *Logger) ErrorMsg(format string, a ...interface{}) {
	red(l.out, "[!] Error: "+format, a...)
}

// InfoMsg prints an informational message in blue.
func (l *Logger) InfoMsg(format string, a ...interface{}) {
	blue(l.out, "[+] "+format, a...)
}

// VerboseMsg prints a message in yellow if verbose output is enabled.
func (l *Logger) VerboseMsg(format string, a ...interface{}) {
	if !l.verbose {
		return
	}
	yellow(l.out, "[v] "+format+"\n", a...)
}
