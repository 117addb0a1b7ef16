package probe

import (
	"context"
	"fmt"
	"net"
	"net/netip"
)

// ResolveAddr turns a textual host specification into an address.
// Numeric literals are parsed directly; only when that fails does the
// function fall back to a name-service lookup, which may go out to the
// network. The first IPv4 or IPv6 candidate is used, with IPv4-mapped
// IPv6 addresses unmapped so family checks compare real families.
func ResolveAddr(host string) (netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.Unmap(), nil
	}

	addrs, err := net.DefaultResolver.LookupNetIP(context.Background(), "ip", host)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %q: %v", ErrAddressParse, host, err)
	}
	if len(addrs) == 0 {
		return netip.Addr{}, fmt.Errorf("%w: %q", ErrAddressParse, host)
	}
	return addrs[0].Unmap(), nil
}
