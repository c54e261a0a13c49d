// Package format renders addresses and the transcript of a dispatch.
package format

import (
	"fmt"
	"strings"
)

// Addr joins host and port, bracketing IPv6 addresses.
func Addr(host string, port int) string {
	if strings.ContainsAny(host, ":") { // IPv6
		return fmt.Sprintf("[%s]:%d", host, port)
	} else { // IPv4
		return fmt.Sprintf("%s:%d", host, port)
	}
}
