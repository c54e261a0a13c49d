// Package packet defines the unit of work of pktsend, a destination plus
// a payload, and the policy for merging a saved packet with the values
// given explicitly on the command line.
package packet

import (
	"fmt"
	"strings"

	"pktsend/pkg/codec"
)

// Protocol selects the transport a packet is sent over.
type Protocol int

const (
	// ProtoTCP sends over a TCP connection.
	ProtoTCP Protocol = iota + 1
	// ProtoUDP sends a single UDP datagram.
	ProtoUDP
)

// String returns "TCP" or "UDP", the form saved packets store.
func (p Protocol) String() string {
	switch p {
	case ProtoTCP:
		return "TCP"
	case ProtoUDP:
		return "UDP"
	default:
		return ""
	}
}

// ParseProtocol reads a stored protocol name. Anything that is not TCP
// (case-insensitive) is UDP.
func ParseProtocol(s string) Protocol {
	if strings.EqualFold(strings.TrimSpace(s), "tcp") {
		return ProtoTCP
	}
	return ProtoUDP
}

// Packet is a destination and payload. Name is only set for saved packets.
type Packet struct {
	Name      string
	ToIP      string
	Port      int
	Protocol  Protocol
	HexString string
}

// Payload decodes the canonical hex payload.
func (p Packet) Payload() []byte {
	return codec.HexToBytes(p.HexString)
}

// Store looks up saved packets. A Packet with an empty Name means the
// store has no packet by that name.
type Store interface {
	Lookup(name string) (Packet, error)
}

// LookupError means a named saved packet could not be retrieved.
type LookupError struct {
	Name string
	Err  error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("saved packet %q: %s", e.Name, e.Err)
	}
	return fmt.Sprintf("saved packet %q not found", e.Name)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Resolve fetches the saved packet called name from s.
func Resolve(s Store, name string) (Packet, error) {
	if s == nil {
		return Packet{}, &LookupError{Name: name}
	}

	p, err := s.Lookup(name)
	if err != nil {
		return Packet{}, &LookupError{Name: name, Err: err}
	}
	if p.Name == "" {
		return Packet{}, &LookupError{Name: name}
	}

	return p, nil
}
