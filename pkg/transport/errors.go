package transport

import (
	"fmt"
	"net/netip"
)

// BindError means the local port could not be bound. It ends a UDP
// exchange; for TCP it is a warning and the OS picks the port instead.
type BindError struct {
	Port int
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("could not bind to %d: %s", e.Port, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// ConnectError means a TCP connection could not be established within
// ConnectTimeout.
type ConnectError struct {
	Dest netip.AddrPort
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %s", e.Dest, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// PartialWriteError reports that the stack accepted fewer bytes than the
// payload holds. The exchange goes on; Sent is reported verbatim.
type PartialWriteError struct {
	Sent int
	Want int
	Err  error
}

func (e *PartialWriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sent %d of %d bytes: %s", e.Sent, e.Want, e.Err)
	}
	return fmt.Sprintf("sent %d of %d bytes", e.Sent, e.Want)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// ReadError reports a failure while waiting for a reply other than the
// wait simply running out.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading reply: %s", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
