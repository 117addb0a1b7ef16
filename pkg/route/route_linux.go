//go:build linux

package route

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/jsimonetti/rtnetlink"
	"golang.org/x/sys/unix"
)

// fetchRouteMessages asks the kernel for the route toward ip.
// Variable for mocking in tests.
var fetchRouteMessages = func(ip netip.Addr) ([]rtnetlink.RouteMessage, error) {
	c, err := rtnetlink.Dial(nil)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	af := unix.AF_INET
	if ip.Is6() {
		af = unix.AF_INET6
	}

	tx := &rtnetlink.RouteMessage{
		Family: uint8(af),
		Table:  unix.RT_TABLE_MAIN,
		Attributes: rtnetlink.RouteAttributes{
			Dst: ip.AsSlice(),
		},
	}

	return c.Route.Get(tx)
}

// pathFromMessages extracts a Path from an RTM_GETROUTE reply. The kernel
// returns the most specific route as a single message.
func pathFromMessages(ip netip.Addr, msgs []rtnetlink.RouteMessage) (Path, error) {
	if len(msgs) == 0 {
		return Path{}, fmt.Errorf("no route found for %s", ip)
	}
	m := msgs[0]

	src, ok := netip.AddrFromSlice(m.Attributes.Src)
	if !ok {
		return Path{}, fmt.Errorf("route for %s has no preferred source address", ip)
	}

	// A missing gateway attribute means the destination is on-link.
	gw, _ := netip.AddrFromSlice(m.Attributes.Gateway)

	intf, err := net.InterfaceByIndex(int(m.Attributes.OutIface))
	if err != nil {
		return Path{}, fmt.Errorf("failed to get interface by index %d: %w", m.Attributes.OutIface, err)
	}
	if intf.Flags&net.FlagUp == 0 {
		return Path{}, fmt.Errorf("interface %s is down", intf.Name)
	}

	return Path{
		Source:    src,
		Gateway:   gw,
		Interface: intf.Name,
	}, nil
}

// Lookup returns the route the kernel would use toward ip. Handles both
// IPv4 and IPv6 destinations.
func Lookup(ip netip.Addr) (Path, error) {
	msgs, err := fetchRouteMessages(ip)
	if err != nil {
		return Path{}, err
	}
	return pathFromMessages(ip, msgs)
}
