package probe

import (
	"fmt"
	"net/netip"
)

// Socket-group size limits. A run never opens fewer than MinSockets or
// more than MaxSockets sockets.
const (
	MinSockets     = 1
	MaxSockets     = 32
	DefaultSockets = 8
)

// Params carries the raw inputs a Config is built from.
type Params struct {
	Dest       netip.Addr // required
	Source     netip.Addr // zero value: infer from routing at run time
	PerSocket  int        // probes to send on each socket
	CountSet   bool       // whether PerSocket was set explicitly
	Sockets    int        // requested group size; DefaultSockets when unset
	SocketsSet bool       // whether Sockets was set explicitly
	TOS        uint8
	Spin       bool
	Rate       int    // probes per second, 0 = unlimited
	Transport  string // "ib", "tcp", or empty for the kernel default
}

// Config is an immutable snapshot of one probing run. Build it with
// NewConfig; no component mutates it afterwards.
type Config struct {
	Dest      netip.Addr
	Source    netip.Addr
	PerSocket int
	Sockets   int
	TOS       uint8
	Spin      bool
	Rate      int
	Transport string
}

// NewConfig validates p and resolves the effective socket-group size.
// When the group size is implicit and an explicitly supplied packet
// count is smaller than the default, the group shrinks to the packet
// count so the run never opens more sockets than it has packets to
// send. The caller's default count never triggers the clamp.
func NewConfig(p Params) (Config, error) {
	if !p.Dest.IsValid() {
		return Config{}, fmt.Errorf("%w: destination is required", ErrAddressParse)
	}
	if p.Source.IsValid() && p.Source.Is4() != p.Dest.Is4() {
		return Config{}, ErrFamilyMismatch
	}

	sockets := p.Sockets
	if !p.SocketsSet {
		sockets = DefaultSockets
		if p.CountSet && p.PerSocket > 0 && p.PerSocket < sockets {
			sockets = p.PerSocket
		}
	}
	if sockets < MinSockets || sockets > MaxSockets {
		return Config{}, fmt.Errorf("%w: %d not in [%d, %d]", ErrGroupSize, sockets, MinSockets, MaxSockets)
	}

	if p.PerSocket < 0 {
		return Config{}, fmt.Errorf("packet count must not be negative: %d", p.PerSocket)
	}
	if p.Rate < 0 {
		return Config{}, fmt.Errorf("rate must not be negative: %d", p.Rate)
	}
	switch p.Transport {
	case "", "ib", "tcp":
	default:
		return Config{}, fmt.Errorf("transport must be 'ib' or 'tcp': %q", p.Transport)
	}

	return Config{
		Dest:      p.Dest,
		Source:    p.Source,
		PerSocket: p.PerSocket,
		Sockets:   sockets,
		TOS:       p.TOS,
		Spin:      p.Spin,
		Rate:      p.Rate,
		Transport: p.Transport,
	}, nil
}
