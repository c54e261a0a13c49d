package log

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestTrafficLog_Record(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}
	t.Parallel()

	path := t.TempDir() + "/traffic.log"

	tl, err := OpenTrafficLog(path)
	if err != nil {
		t.Fatalf("OpenTrafficLog() error = %v", err)
	}
	tl.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	if err := tl.Record(Sent, "UDP", "127.0.0.1:7", []byte("hello")); err != nil {
		t.Fatalf("Record(sent) error = %v", err)
	}
	if err := tl.Record(Received, "UDP", "127.0.0.1:7", nil); err != nil {
		t.Fatalf("Record(received) error = %v", err)
	}
	if err := tl.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"2024-01-02T03:04:05Z UDP sent 127.0.0.1:7 5 bytes",
		"68 65 6c 6c 6f",
		"|hello|",
		"UDP received 127.0.0.1:7 0 bytes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("traffic log missing %q:\n%s", want, out)
		}
	}
}

func TestTrafficLog_Appends(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}
	t.Parallel()

	path := t.TempDir() + "/traffic.log"

	for i := 0; i < 2; i++ {
		tl, err := OpenTrafficLog(path)
		if err != nil {
			t.Fatalf("OpenTrafficLog() error = %v", err)
		}
		if err := tl.Record(Sent, "TCP", "[::1]:80", []byte{0x41}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		tl.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if n := strings.Count(string(data), "TCP sent"); n != 2 {
		t.Errorf("found %d records, want 2", n)
	}
}

func TestOpenTrafficLog_BadPath(t *testing.T) {
	t.Parallel()

	if _, err := OpenTrafficLog(t.TempDir() + "/missing/dir/traffic.log"); err == nil {
		t.Error("OpenTrafficLog() expected error for missing directory")
	}
}
