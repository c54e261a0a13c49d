package mocks

import (
	"fmt"
	"net"
	"os"
	"sync"
	"syscall"
	"time"
)

// MockUDPNetwork simulates a UDP network. Sockets are keyed by port alone
// and datagrams travel through channels.
type MockUDPNetwork struct {
	sockets  map[int]*mockUDPConn
	nextPort int
	mu       sync.Mutex
}

// NewMockUDPNetwork creates a new mock UDP network.
func NewMockUDPNetwork() *MockUDPNetwork {
	return &MockUDPNetwork{
		sockets:  make(map[int]*mockUDPConn),
		nextPort: firstEphemeralPort,
	}
}

// ListenUDP binds a mock socket to laddr. Port 0 picks a free port. It has
// the signature of config.UDPListenerFunc.
func (m *MockUDPNetwork) ListenUDP(network string, laddr *net.UDPAddr) (net.PacketConn, error) {
	if network != "udp" {
		return nil, fmt.Errorf("unsupported network type: %s", network)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	port := 0
	if laddr != nil {
		port = laddr.Port
	}
	if port == 0 {
		for m.sockets[m.nextPort] != nil {
			m.nextPort++
		}
		port = m.nextPort
		m.nextPort++
	}

	if _, exists := m.sockets[port]; exists {
		return nil, &net.OpError{Op: "listen", Net: "udp", Err: os.NewSyscallError("bind", syscall.EADDRINUSE)}
	}

	conn := &mockUDPConn{
		addr:    &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port},
		packets: make(chan mockUDPPacket, 100),
		closeCh: make(chan struct{}),
		wake:    make(chan struct{}),
		network: m,
	}
	m.sockets[port] = conn

	return conn, nil
}

// Serve binds port and answers every datagram with reply(payload). A nil
// reply result sends nothing back. Close the returned conn to stop.
func (m *MockUDPNetwork) Serve(port int, reply func([]byte) []byte) (net.PacketConn, error) {
	pc, err := m.ListenUDP("udp", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, err
	}

	go func() {
		buf := make([]byte, 65535)
		for {
			n, from, err := pc.ReadFrom(buf)
			if err != nil {
				return
			}
			if out := reply(append([]byte(nil), buf[:n]...)); out != nil {
				pc.WriteTo(out, from)
			}
		}
	}()

	return pc, nil
}

type mockUDPPacket struct {
	data []byte
	addr *net.UDPAddr
}

// mockUDPConn is a mock implementation of net.PacketConn for UDP.
type mockUDPConn struct {
	addr    *net.UDPAddr
	packets chan mockUDPPacket
	closeCh chan struct{}
	network *MockUDPNetwork

	mu       sync.Mutex
	closed   bool
	deadline time.Time
	wake     chan struct{} // closed when the read deadline changes
}

// ReadFrom reads one datagram, honoring the read deadline.
func (c *mockUDPConn) ReadFrom(p []byte) (n int, addr net.Addr, err error) {
	for {
		n, addr, retry, err := c.readOnce(p)
		if !retry {
			return n, addr, err
		}
	}
}

// readOnce waits for a datagram until the deadline passes or changes.
// retry is true if the deadline changed while waiting.
func (c *mockUDPConn) readOnce(p []byte) (n int, addr net.Addr, retry bool, err error) {
	c.mu.Lock()
	deadline, wake := c.deadline, c.wake
	c.mu.Unlock()

	var expired <-chan time.Time
	if !deadline.IsZero() {
		d := time.Until(deadline)
		if d <= 0 {
			return 0, nil, false, os.ErrDeadlineExceeded
		}
		timer := time.NewTimer(d)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case packet := <-c.packets:
		n = copy(p, packet.data)
		return n, packet.addr, false, nil
	case <-c.closeCh:
		return 0, nil, false, net.ErrClosed
	case <-expired:
		return 0, nil, false, os.ErrDeadlineExceeded
	case <-wake:
		return 0, nil, true, nil
	}
}

// WriteTo delivers p to the socket bound to addr's port, if any. Like
// real UDP, datagrams to ports nobody listens on are silently lost.
func (c *mockUDPConn) WriteTo(p []byte, addr net.Addr) (n int, err error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return 0, net.ErrClosed
	}

	udpAddr, ok := addr.(*net.UDPAddr)
	if !ok {
		return 0, fmt.Errorf("address must be *net.UDPAddr")
	}

	c.network.mu.Lock()
	dest, exists := c.network.sockets[udpAddr.Port]
	c.network.mu.Unlock()

	if !exists {
		return len(p), nil
	}

	packet := mockUDPPacket{data: append([]byte(nil), p...), addr: c.addr}
	select {
	case dest.packets <- packet:
	case <-dest.closeCh:
	case <-time.After(100 * time.Millisecond):
	}
	return len(p), nil
}

// Close closes the socket and frees its port.
func (c *mockUDPConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.closeCh)

	c.network.mu.Lock()
	delete(c.network.sockets, c.addr.Port)
	c.network.mu.Unlock()

	return nil
}

// LocalAddr returns the local network address.
func (c *mockUDPConn) LocalAddr() net.Addr {
	return c.addr
}

// SetDeadline sets the read deadline; writes never block.
func (c *mockUDPConn) SetDeadline(t time.Time) error {
	return c.SetReadDeadline(t)
}

// SetReadDeadline sets the read deadline and wakes a pending ReadFrom.
func (c *mockUDPConn) SetReadDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.deadline = t
	close(c.wake)
	c.wake = make(chan struct{})
	return nil
}

// SetWriteDeadline is a no-op; writes never block.
func (c *mockUDPConn) SetWriteDeadline(t time.Time) error {
	return nil
}

var _ net.PacketConn = (*mockUDPConn)(nil)
