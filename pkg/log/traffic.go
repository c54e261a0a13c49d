package log

import (
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"
)

// Direction of a chunk of traffic, relative to pktsend.
type Direction string

const (
	// Sent marks bytes written to the destination.
	Sent Direction = "sent"
	// Received marks bytes read from the destination.
	Received Direction = "received"
)

// TrafficLog appends a hex dump of every exchanged payload to a file.
type TrafficLog struct {
	mu   sync.Mutex
	file *os.File
	now  func() time.Time
}

// OpenTrafficLog opens path for appending, creating it if needed.
func OpenTrafficLog(path string) (*TrafficLog, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &TrafficLog{file: f, now: time.Now}, nil
}

// Record writes one header line and a hex dump of b.
func (t *TrafficLog) Record(dir Direction, proto, peer string, b []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	header := fmt.Sprintf("%s %s %s %s %d bytes\n", t.now().Format(time.RFC3339Nano), proto, dir, peer, len(b))
	if _, err := t.file.WriteString(header); err != nil {
		return fmt.Errorf("writing traffic log: %w", err)
	}
	if len(b) == 0 {
		return nil
	}
	if _, err := t.file.WriteString(hex.Dump(b)); err != nil {
		return fmt.Errorf("writing traffic log: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (t *TrafficLog) Close() error {
	return t.file.Close()
}
