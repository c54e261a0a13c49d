package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestErrorMsg(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewLoggerTo(&buf, false).ErrorMsg("test error: %s", "something")

	output := buf.String()
	if output == "" {
		t.Error("ErrorMsg() produced no output")
	}
	if !strings.Contains(output, "test error: something") {
		t.Errorf("ErrorMsg() output does not contain expected text: %q", output)
	}
}

func TestInfoMsg(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewLoggerTo(&buf, false).InfoMsg("test info: %s", "something")

	if !strings.Contains(buf.String(), "test info: something") {
		t.Errorf("InfoMsg() output does not contain expected text: %q", buf.String())
	}
}

func TestVerboseMsg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		want    bool
	}{
		{"verbose enabled", true, true},
		{"verbose disabled", false, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			l := NewLoggerTo(&buf, tc.verbose)
			l.VerboseMsg("bound to %d", 1234)

			if got := strings.Contains(buf.String(), "bound to 1234"); got != tc.want {
				t.Errorf("VerboseMsg() printed = %t, want %t (output %q)", got, tc.want, buf.String())
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	if l := NewLogger(true); l == nil || !l.verbose {
		t.Error("NewLogger(true) did not return a verbose logger")
	}
}
