package format

import (
	"fmt"
	"io"
	"strings"

	"pktsend/pkg/dispatch"
)

// Transcript writes the human-readable report of out to w:
//
//	Warning: Sending to port zero
//	UDP (51234)://10.0.0.1:99 FF
//	Response HEX:4F4B
//	Response ASCII:OK
//
// In quiet mode only the reply hex is written, and only if a reply arrived.
func Transcript(w io.Writer, out *dispatch.Outcome, quiet bool) error {
	var b strings.Builder

	if quiet {
		if out.Err == nil && len(out.Reply) > 0 {
			fmt.Fprintln(&b, out.ReplyHex())
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, warning := range out.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", warning)
	}

	if out.Err != nil {
		fmt.Fprintf(&b, "Error: %s\n", out.Err)
	} else {
		dest := Addr(out.Destination.Addr().String(), int(out.Destination.Port()))
		fmt.Fprintf(&b, "%s (%d)://%s %s\n", out.Protocol, out.LocalPort, dest, out.PayloadHex)

		if out.Waited {
			fmt.Fprintf(&b, "Response HEX:%s\n", out.ReplyHex())
			fmt.Fprintf(&b, "Response ASCII:%s\n", out.ReplyASCII())
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
