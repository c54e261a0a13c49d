// Package mocks provides in-memory networks that plug into
// config.Dependencies so exchanges can be tested without real sockets.
package mocks

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"syscall"
	"time"
)

// firstEphemeralPort is where dynamic local ports are handed out from.
const firstEphemeralPort = 49152

// MockTCPNetwork simulates a TCP network. Listeners are keyed by port
// alone; connections are in-memory pipes.
type MockTCPNetwork struct {
	listeners map[int]*mockTCPListener
	bound     map[int]bool
	nextPort  int
	mu        sync.Mutex
}

// NewMockTCPNetwork creates a new mock TCP network.
func NewMockTCPNetwork() *MockTCPNetwork {
	return &MockTCPNetwork{
		listeners: make(map[int]*mockTCPListener),
		bound:     make(map[int]bool),
		nextPort:  firstEphemeralPort,
	}
}

// Listen creates a mock listener on port.
func (m *MockTCPNetwork) Listen(port int) (net.Listener, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.listeners[port]; exists || m.bound[port] {
		return nil, fmt.Errorf("address already in use: %d", port)
	}

	listener := &mockTCPListener{
		addr:    &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port},
		connCh:  make(chan net.Conn, 10),
		closeCh: make(chan struct{}),
		network: m,
	}
	m.listeners[port] = listener

	return listener, nil
}

// Occupy marks port as bound by someone else so that binding it fails.
func (m *MockTCPNetwork) Occupy(port int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bound[port] = true
}

// DialContext connects to raddr from the local address of d. It has the
// signature of config.TCPDialerFunc. A local port that is already bound
// fails the way the operating system reports it, with a "bind" syscall error.
func (m *MockTCPNetwork) DialContext(ctx context.Context, d *net.Dialer, raddr string) (net.Conn, error) {
	dest, err := net.ResolveTCPAddr("tcp", raddr)
	if err != nil {
		return nil, err
	}

	lport := 0
	if la, ok := d.LocalAddr.(*net.TCPAddr); ok && la != nil {
		lport = la.Port
	}

	m.mu.Lock()
	if lport != 0 && m.bound[lport] {
		m.mu.Unlock()
		return nil, &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("bind", syscall.EADDRINUSE)}
	}
	if lport == 0 {
		lport = m.allocate()
	}
	listener, exists := m.listeners[dest.Port]
	m.mu.Unlock()

	if !exists {
		return nil, &net.OpError{Op: "dial", Net: "tcp", Addr: dest, Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}
	}

	local := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: lport}
	clientConn, serverConn := net.Pipe()

	mockClient := &mockTCPConn{Conn: clientConn, localAddr: local, remoteAddr: dest}
	mockServer := &mockTCPConn{Conn: serverConn, localAddr: dest, remoteAddr: local}

	timeout := d.Timeout
	if timeout == 0 {
		timeout = time.Second
	}

	select {
	case listener.connCh <- mockServer:
		return mockClient, nil
	case <-listener.closeCh:
		clientConn.Close()
		serverConn.Close()
		return nil, fmt.Errorf("connection refused: listener closed")
	case <-ctx.Done():
		clientConn.Close()
		serverConn.Close()
		return nil, ctx.Err()
	case <-time.After(timeout):
		clientConn.Close()
		serverConn.Close()
		return nil, fmt.Errorf("connection timeout")
	}
}

// allocate returns the next free dynamic port. m.mu must be held.
func (m *MockTCPNetwork) allocate() int {
	for m.bound[m.nextPort] || m.listeners[m.nextPort] != nil {
		m.nextPort++
	}
	port := m.nextPort
	m.nextPort++
	return port
}

// mockTCPListener is a mock implementation of net.Listener.
type mockTCPListener struct {
	addr    *net.TCPAddr
	connCh  chan net.Conn
	closeCh chan struct{}
	closed  bool
	mu      sync.Mutex
	network *MockTCPNetwork
}

// Accept waits for and returns the next connection to the listener.
func (l *mockTCPListener) Accept() (net.Conn, error) {
	select {
	case conn := <-l.connCh:
		return conn, nil
	case <-l.closeCh:
		return nil, fmt.Errorf("listener closed")
	}
}

// Close closes the listener and frees its port.
func (l *mockTCPListener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	close(l.closeCh)

	l.network.mu.Lock()
	delete(l.network.listeners, l.addr.Port)
	l.network.mu.Unlock()

	return nil
}

// Addr returns the listener's network address.
func (l *mockTCPListener) Addr() net.Addr {
	return l.addr
}

// mockTCPConn is a pipe with TCP addresses.
type mockTCPConn struct {
	net.Conn
	localAddr  *net.TCPAddr
	remoteAddr *net.TCPAddr
}

// LocalAddr returns the local network address.
func (c *mockTCPConn) LocalAddr() net.Addr {
	return c.localAddr
}

// RemoteAddr returns the remote network address.
func (c *mockTCPConn) RemoteAddr() net.Addr {
	return c.remoteAddr
}

var _ net.Listener = (*mockTCPListener)(nil)
var _ net.Conn = (*mockTCPConn)(nil)
