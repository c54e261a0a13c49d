//go:build !unix && !windows

package tcp

import "syscall"

func reuseAddrControl(network, address string, c syscall.RawConn) error {
	return nil
}
