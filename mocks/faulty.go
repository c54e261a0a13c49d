package mocks

import "net"

// FaultyConn wraps a net.Conn and fails its writes or reads on demand.
type FaultyConn struct {
	net.Conn

	// WriteLimit caps how many bytes Write reports as written. Negative
	// means no cap.
	WriteLimit int
	WriteErr   error
	ReadErr    error
}

// Write reports at most WriteLimit bytes and WriteErr without touching the
// wrapped conn when either is set.
func (c *FaultyConn) Write(p []byte) (int, error) {
	if c.WriteLimit < 0 && c.WriteErr == nil {
		return c.Conn.Write(p)
	}
	return limit(len(p), c.WriteLimit), c.WriteErr
}

// Read returns ReadErr if set.
func (c *FaultyConn) Read(p []byte) (int, error) {
	if c.ReadErr != nil {
		return 0, c.ReadErr
	}
	return c.Conn.Read(p)
}

// FaultyPacketConn wraps a net.PacketConn and fails its writes or reads
// on demand.
type FaultyPacketConn struct {
	net.PacketConn

	// WriteLimit caps how many bytes WriteTo reports as written. Negative
	// means no cap.
	WriteLimit int
	WriteErr   error
	ReadErr    error
}

// WriteTo reports at most WriteLimit bytes and WriteErr without sending
// anything when either is set.
func (c *FaultyPacketConn) WriteTo(p []byte, addr net.Addr) (int, error) {
	if c.WriteLimit < 0 && c.WriteErr == nil {
		return c.PacketConn.WriteTo(p, addr)
	}
	return limit(len(p), c.WriteLimit), c.WriteErr
}

// ReadFrom returns ReadErr if set.
func (c *FaultyPacketConn) ReadFrom(p []byte) (int, net.Addr, error) {
	if c.ReadErr != nil {
		return 0, nil, c.ReadErr
	}
	return c.PacketConn.ReadFrom(p)
}

func limit(n, lim int) int {
	if lim >= 0 && lim < n {
		return lim
	}
	return n
}

var _ net.Conn = (*FaultyConn)(nil)
var _ net.PacketConn = (*FaultyPacketConn)(nil)
