// Package tcp implements the TCP exchange: bind, connect, write, an
// optional bounded read and a graceful shutdown.
package tcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"pktsend/pkg/config"
	"pktsend/pkg/log"
	"pktsend/pkg/transport"
)

// Exchanger implements transport.Exchanger over TCP.
type Exchanger struct {
	dial   config.TCPDialerFunc
	logger *log.Logger

	ConnectTimeout time.Duration
	WriteTimeout   time.Duration
	CloseTimeout   time.Duration
}

// NewExchanger creates a TCP exchanger. deps may be nil.
func NewExchanger(deps *config.Dependencies, logger *log.Logger) *Exchanger {
	return &Exchanger{
		dial:           config.GetTCPDialerFunc(deps),
		logger:         logger,
		ConnectTimeout: transport.ConnectTimeout,
		WriteTimeout:   transport.WriteTimeout,
		CloseTimeout:   transport.CloseTimeout,
	}
}

// Exchange connects to req.Dest, writes req.Payload and, if req.Wait is
// positive, returns the bytes of the first read that completes within it.
func (e *Exchanger) Exchange(ctx context.Context, req transport.Request) (*transport.Result, error) {
	res := &transport.Result{}

	conn, err := e.connect(ctx, req, res)
	if err != nil {
		return res, err
	}
	defer conn.Close()

	stop := transport.WatchContext(ctx, conn)
	defer stop()

	res.LocalPort = transport.LocalPort(conn.LocalAddr())
	e.logger.VerboseMsg("Connected %s -> %s", conn.LocalAddr(), conn.RemoteAddr())

	res.BytesSent = e.write(conn, req.Payload, res)

	if req.Wait > 0 && ctx.Err() == nil {
		res.Reply = e.read(conn, req.Wait, res)
	}

	e.shutdown(conn)
	return res, nil
}

// connect binds to req.BindPort on all interfaces and connects. If the
// bind fails the connection is attempted again from a dynamic port and
// the bind failure is recorded as a warning.
func (e *Exchanger) connect(ctx context.Context, req transport.Request, res *transport.Result) (net.Conn, error) {
	d := &net.Dialer{Timeout: e.ConnectTimeout}
	if req.BindPort != 0 {
		d.LocalAddr = &net.TCPAddr{Port: req.BindPort}
		d.Control = reuseAddrControl
	}

	e.logger.VerboseMsg("Dialing %s from local port %d", req.Dest, req.BindPort)
	conn, err := e.dial(ctx, d, req.Dest.String())
	if err != nil && req.BindPort != 0 && isBindError(err) {
		res.Warnings = append(res.Warnings, &transport.BindError{Port: req.BindPort, Err: err})
		e.logger.VerboseMsg("Binding to %d failed, falling back to a dynamic port: %s", req.BindPort, err)

		d = &net.Dialer{Timeout: e.ConnectTimeout}
		conn, err = e.dial(ctx, d, req.Dest.String())
	}
	if err != nil {
		return nil, &transport.ConnectError{Dest: req.Dest, Err: err}
	}

	return conn, nil
}

func (e *Exchanger) write(conn net.Conn, payload []byte, res *transport.Result) int {
	_ = conn.SetWriteDeadline(time.Now().Add(e.WriteTimeout))
	n, err := conn.Write(payload)
	_ = conn.SetWriteDeadline(time.Time{})

	if err != nil || n < len(payload) {
		res.Warnings = append(res.Warnings, &transport.PartialWriteError{Sent: n, Want: len(payload), Err: err})
	}
	e.logger.VerboseMsg("Wrote %d of %d bytes", n, len(payload))
	return n
}

func (e *Exchanger) read(conn net.Conn, wait time.Duration, res *transport.Result) []byte {
	_ = conn.SetReadDeadline(time.Now().Add(wait))
	buf := make([]byte, transport.MaxReply)
	n, err := conn.Read(buf)
	_ = conn.SetReadDeadline(time.Time{})

	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		e.logger.VerboseMsg("Peer closed the connection after %d bytes", n)
	case transport.IsTimeout(err):
		e.logger.VerboseMsg("No reply within %s", wait)
	default:
		res.Warnings = append(res.Warnings, &transport.ReadError{Err: err})
	}

	return buf[:n:n]
}

// shutdown half-closes the connection so the peer sees a FIN before the
// socket is released. Errors are only logged.
func (e *Exchanger) shutdown(conn net.Conn) {
	cw, ok := conn.(interface{ CloseWrite() error })
	if !ok {
		return
	}

	_ = conn.SetDeadline(time.Now().Add(e.CloseTimeout))
	if err := cw.CloseWrite(); err != nil {
		e.logger.VerboseMsg("Graceful shutdown failed: %s", err)
	}
}

// isBindError reports whether a dial failed while binding the local
// address, as opposed to while connecting.
func isBindError(err error) bool {
	var sysErr *os.SyscallError
	return errors.As(err, &sysErr) && sysErr.Syscall == "bind"
}

// errReuseAddr wraps failures to set SO_REUSEADDR.
func errReuseAddr(err error) error {
	return fmt.Errorf("setting SO_REUSEADDR: %w", err)
}
