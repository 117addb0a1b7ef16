//go:build linux

package rds

import (
	"fmt"
	"net/netip"

	"golang.org/x/sys/unix"
)

// Socket is a single RDS sequenced-packet socket. It preserves message
// boundaries and is reliable and ordered; the kernel transport handles
// connection setup, congestion control, and retransmission.
type Socket struct {
	fd int
}

// NewSocket creates an unbound RDS socket.
func NewSocket() (*Socket, error) {
	fd, err := unix.Socket(unix.AF_RDS, unix.SOCK_SEQPACKET, 0)
	if err != nil {
		return nil, err
	}
	return &Socket{fd: fd}, nil
}

// Bind binds the socket to a local address. RDS assigns the port itself
// when the requested port is zero.
func (s *Socket) Bind(local netip.AddrPort) error {
	sa, err := sockaddrFrom(local)
	if err != nil {
		return err
	}
	return unix.Bind(s.fd, sa)
}

// SetTOS applies a type-of-service tag to the socket via the
// SIOCRDSSETTOS ioctl.
func (s *Socket) SetTOS(tos uint8) error {
	return unix.IoctlSetPointerInt(s.fd, SIOCRDSSETTOS, int(tos))
}

// TOS reads back the socket's type-of-service tag.
func (s *Socket) TOS() (int, error) {
	return unix.IoctlGetInt(s.fd, SIOCRDSGETTOS)
}

// SetTransport pins the underlying RDS transport (TransportIB or
// TransportTCP). Must be called before Bind; the kernel rejects it on a
// bound socket.
func (s *Socket) SetTransport(transport int) error {
	return unix.SetsockoptInt(s.fd, SolRDS, SORDSTransport, transport)
}

// SendTo sends a zero-length message to dst. RDS preserves the message
// boundary, so the peer sees an empty datagram rather than nothing.
func (s *Socket) SendTo(dst netip.AddrPort) error {
	sa, err := sockaddrFrom(dst)
	if err != nil {
		return err
	}
	return unix.Sendto(s.fd, nil, 0, sa)
}

// OutqLen reports the number of bytes queued for output on the socket.
func (s *Socket) OutqLen() (int, error) {
	return unix.IoctlGetInt(s.fd, unix.TIOCOUTQ)
}

// Close releases the socket.
func (s *Socket) Close() error {
	return unix.Close(s.fd)
}

// sockaddrFrom converts a netip address/port pair into the matching
// unix.Sockaddr for bind, connect, and sendto calls.
func sockaddrFrom(ap netip.AddrPort) (unix.Sockaddr, error) {
	addr := ap.Addr().Unmap()
	switch {
	case addr.Is4():
		return &unix.SockaddrInet4{Port: int(ap.Port()), Addr: addr.As4()}, nil
	case addr.Is6():
		return &unix.SockaddrInet6{Port: int(ap.Port()), Addr: addr.As16()}, nil
	default:
		return nil, fmt.Errorf("unsupported address family: %v", ap)
	}
}
