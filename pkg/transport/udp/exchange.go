// Package udp implements the UDP exchange: bind, send one datagram and
// optionally wait for one datagram in return.
package udp

import (
	"context"
	"net"
	"time"

	"pktsend/pkg/config"
	"pktsend/pkg/log"
	"pktsend/pkg/transport"
)

// Exchanger implements transport.Exchanger over UDP.
type Exchanger struct {
	listen config.UDPListenerFunc
	logger *log.Logger

	WriteTimeout time.Duration
}

// NewExchanger creates a UDP exchanger. deps may be nil.
func NewExchanger(deps *config.Dependencies, logger *log.Logger) *Exchanger {
	return &Exchanger{
		listen:       config.GetUDPListenerFunc(deps),
		logger:       logger,
		WriteTimeout: transport.WriteTimeout,
	}
}

// Exchange binds req.BindPort on all interfaces, sends req.Payload as one
// datagram and, if req.Wait is positive, returns the first datagram that
// arrives within it. A failed bind ends the exchange.
func (e *Exchanger) Exchange(ctx context.Context, req transport.Request) (*transport.Result, error) {
	res := &transport.Result{}

	pc, err := e.listen("udp", &net.UDPAddr{Port: req.BindPort})
	if err != nil {
		return res, &transport.BindError{Port: req.BindPort, Err: err}
	}
	defer pc.Close()

	stop := transport.WatchContext(ctx, pc)
	defer stop()

	res.LocalPort = transport.LocalPort(pc.LocalAddr())
	e.logger.VerboseMsg("Bound UDP socket to %s", pc.LocalAddr())

	dest := net.UDPAddrFromAddrPort(req.Dest)

	_ = pc.SetWriteDeadline(time.Now().Add(e.WriteTimeout))
	n, err := pc.WriteTo(req.Payload, dest)
	if err != nil || n < len(req.Payload) {
		res.Warnings = append(res.Warnings, &transport.PartialWriteError{Sent: n, Want: len(req.Payload), Err: err})
	}
	res.BytesSent = n
	e.logger.VerboseMsg("Sent %d of %d bytes to %s", n, len(req.Payload), dest)

	if req.Wait > 0 && ctx.Err() == nil {
		res.Reply = e.read(pc, req.Wait, res)
	}

	return res, nil
}

func (e *Exchanger) read(pc net.PacketConn, wait time.Duration, res *transport.Result) []byte {
	_ = pc.SetReadDeadline(time.Now().Add(wait))
	buf := make([]byte, transport.MaxReply)
	n, from, err := pc.ReadFrom(buf)

	switch {
	case err == nil:
		e.logger.VerboseMsg("Received %d bytes from %s", n, from)
	case transport.IsTimeout(err):
		e.logger.VerboseMsg("No reply within %s", wait)
	default:
		res.Warnings = append(res.Warnings, &transport.ReadError{Err: err})
	}

	return buf[:n:n]
}
