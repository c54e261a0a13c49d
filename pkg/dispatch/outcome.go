package dispatch

import (
	"net/netip"

	"pktsend/pkg/codec"
	"pktsend/pkg/packet"
)

// Outcome reports a finished dispatch.
type Outcome struct {
	Protocol packet.Protocol
	Target   string // address as given, before resolution
	Port     int

	LocalPort   int
	Destination netip.AddrPort

	PayloadHex    string
	BytesSent     int
	BytesReceived int
	Reply         []byte
	Waited        bool // a reply was waited for

	Warnings []error
	Err      error
}

// ExitCode is the number of bytes sent, or -1 if the dispatch failed.
func (o *Outcome) ExitCode() int {
	if o.Err != nil {
		return -1
	}
	return o.BytesSent
}

// ReplyHex returns the reply as canonical hex.
func (o *Outcome) ReplyHex() string {
	return codec.BytesToHex(o.Reply)
}

// ReplyASCII returns the reply in mixed ASCII.
func (o *Outcome) ReplyASCII() string {
	return codec.BytesToMixedASCII(o.Reply)
}

// Packet returns what was sent as a saved packet called name.
func (o *Outcome) Packet(name string) packet.Packet {
	return packet.Packet{
		Name:      name,
		ToIP:      o.Target,
		Port:      o.Port,
		Protocol:  o.Protocol,
		HexString: o.PayloadHex,
	}
}
