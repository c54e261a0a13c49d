package format

import (
	"errors"
	"net/netip"
	"strings"
	"testing"

	"pktsend/pkg/dispatch"
	"pktsend/pkg/packet"
)

func TestTranscript(t *testing.T) {
	t.Parallel()

	sent := &dispatch.Outcome{
		Protocol:    packet.ProtoUDP,
		LocalPort:   51234,
		Destination: netip.MustParseAddrPort("10.0.0.1:99"),
		PayloadHex:  "FF",
		BytesSent:   1,
	}
	replied := *sent
	replied.Waited = true
	replied.Reply = []byte("OK\n")
	replied.BytesReceived = 3

	timedOut := *sent
	timedOut.Waited = true

	ipv6 := &dispatch.Outcome{
		Protocol:    packet.ProtoTCP,
		LocalPort:   40000,
		Destination: netip.MustParseAddrPort("[::1]:80"),
		PayloadHex:  "00",
	}

	failed := &dispatch.Outcome{
		Warnings: []error{&dispatch.UsageWarning{Msg: "Both TCP and UDP given, using TCP"}},
		Err:      errors.New("failed to connect to 127.0.0.1:1: refused"),
	}

	tests := []struct {
		name  string
		out   *dispatch.Outcome
		quiet bool
		want  []string
	}{
		{
			name: "sent without waiting",
			out:  sent,
			want: []string{"UDP (51234)://10.0.0.1:99 FF"},
		},
		{
			name: "reply",
			out:  &replied,
			want: []string{"UDP (51234)://10.0.0.1:99 FF", "Response HEX:4F4B0A", `Response ASCII:OK\x0A`},
		},
		{
			name: "no reply within wait",
			out:  &timedOut,
			want: []string{"UDP (51234)://10.0.0.1:99 FF", "Response HEX:", "Response ASCII:"},
		},
		{
			name: "ipv6 destination",
			out:  ipv6,
			want: []string{"TCP (40000)://[::1]:80 00"},
		},
		{
			name: "failure",
			out:  failed,
			want: []string{"Warning: Both TCP and UDP given, using TCP", "Error: failed to connect to 127.0.0.1:1: refused"},
		},
		{
			name:  "quiet with reply",
			out:   &replied,
			quiet: true,
			want:  []string{"4F4B0A"},
		},
		{
			name:  "quiet without reply",
			out:   &timedOut,
			quiet: true,
			want:  nil,
		},
		{
			name:  "quiet failure",
			out:   failed,
			quiet: true,
			want:  nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var b strings.Builder
			if err := Transcript(&b, tc.out, tc.quiet); err != nil {
				t.Fatalf("Transcript() error = %v", err)
			}

			want := ""
			if len(tc.want) > 0 {
				want = strings.Join(tc.want, "\n") + "\n"
			}
			if b.String() != want {
				t.Errorf("Transcript() =\n%q\nwant\n%q", b.String(), want)
			}
		})
	}
}
