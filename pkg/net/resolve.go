// Package net turns the destination given by the user into a concrete
// network address.
package net

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"pktsend/pkg/config"
)

var errNoAddresses = errors.New("lookup returned no addresses")

// ResolutionError means a destination could not be turned into an address.
// It is never a transport failure.
type ResolutionError struct {
	Host string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve address %q: %s", e.Host, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Resolve returns the address of host. Literal IPv4 and IPv6 addresses
// (optionally in brackets) are parsed without a lookup; anything else is
// looked up and the first address returned is used.
func Resolve(ctx context.Context, host string, lookup config.LookupFunc) (netip.Addr, error) {
	literal := strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	if addr, err := netip.ParseAddr(literal); err == nil {
		return addr.Unmap(), nil
	}

	if host == "" {
		return netip.Addr{}, &ResolutionError{Host: host, Err: errors.New("no address given")}
	}

	addrs, err := lookup(ctx, host)
	if err != nil {
		return netip.Addr{}, &ResolutionError{Host: host, Err: err}
	}
	if len(addrs) == 0 {
		return netip.Addr{}, &ResolutionError{Host: host, Err: errNoAddresses}
	}

	return addrs[0].Unmap(), nil
}
