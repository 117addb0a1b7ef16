// Package route looks up the kernel route toward a destination address.
// The probe engine determines its source address through the transport
// itself; this package only feeds pre-run diagnostics.
package route

import "net/netip"

// Path describes the route the kernel would use toward a destination.
type Path struct {
	Source    netip.Addr
	Gateway   netip.Addr // zero value when the destination is on-link
	Interface string
}
