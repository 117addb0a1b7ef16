//go:build linux

package probe

import (
	"log/slog"
	"net/netip"

	"golang.org/x/sys/unix"

	"github.com/markhaywood/rds-tools/pkg/rds"
)

// openProbeSocket creates one ready-to-send RDS socket bound to src.
// Variable for mocking in tests.
var openProbeSocket = func(cfg Config, src netip.Addr) (probeConn, error) {
	sock, err := rds.NewSocket()
	if err != nil {
		return nil, &SocketError{Op: OpCreate, Err: err}
	}

	if cfg.Transport != "" {
		transport := rds.TransportIB
		if cfg.Transport == "tcp" {
			transport = rds.TransportTCP
		}
		if err := sock.SetTransport(transport); err != nil {
			sock.Close()
			return nil, &SocketError{Op: OpTransport, Err: err}
		}
	}

	// RDS assigns the local port itself, so the bind port is always 0.
	if err := sock.Bind(netip.AddrPortFrom(src, 0)); err != nil {
		sock.Close()
		return nil, &SocketError{Op: OpBind, Err: err}
	}

	if cfg.TOS != 0 {
		if err := sock.SetTOS(cfg.TOS); err != nil {
			sock.Close()
			return nil, &SocketError{Op: OpSetTOS, Err: err}
		}
		if tos, err := sock.TOS(); err == nil {
			slog.Debug("type of service applied", "tos", tos)
		}
	}

	return sock, nil
}

// localAddrFor infers the local source address the kernel would route
// toward dst. It connects a throwaway UDP socket to the destination
// (with a placeholder port, connect on a datagram socket sends nothing)
// and reads the chosen local address back via getsockname.
// Variable for mocking in tests.
var localAddrFor = func(dst netip.Addr) (netip.Addr, error) {
	family := unix.AF_INET
	if dst.Is6() {
		family = unix.AF_INET6
	}

	fd, err := unix.Socket(family, unix.SOCK_DGRAM, 0)
	if err != nil {
		return netip.Addr{}, &SocketError{Op: OpRouteProbe, Err: err}
	}
	defer unix.Close(fd)

	// The placeholder port only exists to make connect() legal; it is
	// never used for the probes themselves.
	sa, err := sockaddrForConnect(dst)
	if err != nil {
		return netip.Addr{}, &SocketError{Op: OpRouteProbe, Err: err}
	}
	if err := unix.Connect(fd, sa); err != nil {
		return netip.Addr{}, &SocketError{Op: OpRouteProbe, Err: err}
	}

	lsa, err := unix.Getsockname(fd)
	if err != nil {
		return netip.Addr{}, &SocketError{Op: OpRouteProbe, Err: err}
	}

	switch lsa := lsa.(type) {
	case *unix.SockaddrInet4:
		return netip.AddrFrom4(lsa.Addr), nil
	case *unix.SockaddrInet6:
		return netip.AddrFrom16(lsa.Addr), nil
	default:
		return netip.Addr{}, &SocketError{Op: OpRouteProbe, Err: unix.EAFNOSUPPORT}
	}
}

func sockaddrForConnect(dst netip.Addr) (unix.Sockaddr, error) {
	const placeholderPort = 1

	if dst.Is4() {
		return &unix.SockaddrInet4{Port: placeholderPort, Addr: dst.As4()}, nil
	}
	if dst.Is6() {
		return &unix.SockaddrInet6{Port: placeholderPort, Addr: dst.As16()}, nil
	}
	return nil, unix.EAFNOSUPPORT
}
