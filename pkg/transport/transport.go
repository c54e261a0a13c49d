// Package transport performs one send-and-maybe-receive exchange with a
// destination. The tcp and udp subpackages implement Exchanger for their
// protocol; this package holds the shared types, timeouts and errors.
//
// Every exchange is a fixed sequence of blocking steps, each with its own
// deadline:
//
//	TCP: bind -> connect (ConnectTimeout) -> write (WriteTimeout)
//	     -> optional read (Request.Wait) -> shutdown (CloseTimeout) -> close
//	UDP: bind -> write (WriteTimeout) -> optional read (Request.Wait) -> close
//
// Nothing is retried. The socket is closed on every return path.
package transport

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"os"
	"time"
)

// Timeouts of the fixed steps of an exchange. Tests may shorten them.
var (
	ConnectTimeout = 1 * time.Second
	WriteTimeout   = 1 * time.Second
	CloseTimeout   = 1 * time.Second
)

// MaxReply is the largest reply read in one exchange, the largest
// possible UDP datagram.
const MaxReply = 65535

// Request describes one exchange.
type Request struct {
	BindPort int // 0 lets the OS choose
	Dest     netip.AddrPort
	Payload  []byte
	Wait     time.Duration // 0 means do not wait for a reply
}

// Result is what an exchange produced. It is returned even when the
// exchange failed, with whatever was recorded up to the failure.
type Result struct {
	LocalPort int
	BytesSent int
	Reply     []byte
	Warnings  []error
}

// Exchanger sends Request.Payload to Request.Dest and optionally waits
// for a single reply.
type Exchanger interface {
	Exchange(ctx context.Context, req Request) (*Result, error)
}

// IsTimeout reports whether err is a deadline expiry.
func IsTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// LocalPort returns the port of a *net.TCPAddr or *net.UDPAddr, 0 otherwise.
func LocalPort(addr net.Addr) int {
	switch a := addr.(type) {
	case *net.TCPAddr:
		return a.Port
	case *net.UDPAddr:
		return a.Port
	default:
		return 0
	}
}

type deadliner interface {
	SetDeadline(t time.Time) error
}

// WatchContext expires all deadlines of conn once ctx is done so that a
// pending read or write returns immediately. Call the returned function
// when the exchange is over.
func WatchContext(ctx context.Context, conn deadliner) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.SetDeadline(time.Now())
		case <-done:
		}
	}()
	return func() { close(done) }
}
