// Package pipeio reads a payload piped into pktsend on stdin.
package pipeio

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// Stdin reads from stdin, using a cancelable reader when the platform
// supports it so that a pending read can be interrupted via Close.
type Stdin struct {
	stdin            io.Reader
	cancellableStdin cancelreader.CancelReader

	closeOnce sync.Once
	closeErr  error
}

// NewStdin wraps r, usually os.Stdin.
func NewStdin(r io.Reader) *Stdin {
	out := Stdin{stdin: r}

	cancellableStdin, err := cancelreader.NewReader(r)
	if err != nil {
		return &out
	}

	out.cancellableStdin = cancellableStdin
	return &out
}

// Read reads from stdin, using the cancelable reader if available.
func (s *Stdin) Read(p []byte) (n int, err error) {
	if s.cancellableStdin != nil {
		return s.cancellableStdin.Read(p)
	}

	return s.stdin.Read(p)
}

// Close cancels any pending read if using a cancelable reader. Only the
// first call has an effect; later calls return the same error.
func (s *Stdin) Close() error {
	s.closeOnce.Do(func() {
		if s.cancellableStdin != nil {
			s.cancellableStdin.Cancel()
			s.closeErr = s.cancellableStdin.Close()
		}
	})
	return s.closeErr
}

// IsTerminal reports whether r is an interactive terminal, in which case
// reading the payload waits for the user to type it and press Ctrl-D.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ReadPayload reads r until EOF. Cancelling ctx abandons the read and
// returns ctx.Err().
func ReadPayload(ctx context.Context, r io.Reader) (string, error) {
	s := NewStdin(r)
	defer s.Close()

	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()

	data, err := io.ReadAll(s)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil && !errors.Is(err, cancelreader.ErrCanceled) {
		return "", err
	}
	return string(data), nil
}
