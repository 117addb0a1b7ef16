//go:build linux

package rds

import (
	"net/netip"
	"testing"

	"golang.org/x/sys/unix"
)

func TestSockaddrFrom(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		port    uint16
		wantErr bool
	}{
		{name: "IPv4", addr: "192.0.2.1", port: 0},
		{name: "IPv4 with port", addr: "192.0.2.1", port: 4093},
		{name: "IPv6", addr: "2001:db8::1", port: 0},
		{name: "IPv4-mapped IPv6 converts to IPv4", addr: "::ffff:192.0.2.1", port: 1},
		{name: "zero value", addr: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr netip.Addr
			if tt.addr != "" {
				addr = netip.MustParseAddr(tt.addr)
			}
			sa, err := sockaddrFrom(netip.AddrPortFrom(addr, tt.port))
			if tt.wantErr {
				if err == nil {
					t.Fatal("sockaddrFrom() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("sockaddrFrom() unexpected error: %v", err)
			}

			switch sa := sa.(type) {
			case *unix.SockaddrInet4:
				if got := netip.AddrFrom4(sa.Addr); got != netip.MustParseAddr(tt.addr).Unmap() {
					t.Errorf("sockaddrFrom() addr = %v, want %v", got, tt.addr)
				}
				if sa.Port != int(tt.port) {
					t.Errorf("sockaddrFrom() port = %v, want %v", sa.Port, tt.port)
				}
			case *unix.SockaddrInet6:
				if got := netip.AddrFrom16(sa.Addr); got != netip.MustParseAddr(tt.addr) {
					t.Errorf("sockaddrFrom() addr = %v, want %v", got, tt.addr)
				}
				if sa.Port != int(tt.port) {
					t.Errorf("sockaddrFrom() port = %v, want %v", sa.Port, tt.port)
				}
			default:
				t.Errorf("sockaddrFrom() returned unexpected type %T", sa)
			}
		})
	}
}

func TestSockaddrFrom_FamilySelection(t *testing.T) {
	v4, err := sockaddrFrom(netip.AddrPortFrom(netip.MustParseAddr("127.0.0.1"), 0))
	if err != nil {
		t.Fatalf("sockaddrFrom() unexpected error: %v", err)
	}
	if _, ok := v4.(*unix.SockaddrInet4); !ok {
		t.Errorf("dotted-quad literal should produce SockaddrInet4, got %T", v4)
	}

	v6, err := sockaddrFrom(netip.AddrPortFrom(netip.MustParseAddr("::1"), 0))
	if err != nil {
		t.Fatalf("sockaddrFrom() unexpected error: %v", err)
	}
	if _, ok := v6.(*unix.SockaddrInet6); !ok {
		t.Errorf("colon-form literal should produce SockaddrInet6, got %T", v6)
	}
}
