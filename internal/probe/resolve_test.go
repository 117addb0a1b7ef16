package probe

import (
	"errors"
	"testing"
)

func TestResolveAddr_Numeric(t *testing.T) {
	tests := []struct {
		name  string
		host  string
		want4 bool
	}{
		{name: "dotted-quad is IPv4", host: "127.0.0.1", want4: true},
		{name: "public IPv4", host: "192.0.2.1", want4: true},
		{name: "colon-form is IPv6", host: "::1", want4: false},
		{name: "full IPv6", host: "2001:db8::1", want4: false},
		{name: "IPv4-mapped IPv6 unmaps to IPv4", host: "::ffff:192.0.2.1", want4: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ResolveAddr(tt.host)
			if err != nil {
				t.Fatalf("ResolveAddr(%q) unexpected error: %v", tt.host, err)
			}
			if addr.Is4() != tt.want4 {
				t.Errorf("ResolveAddr(%q) Is4() = %v, want %v", tt.host, addr.Is4(), tt.want4)
			}
		})
	}
}

func TestResolveAddr_Invalid(t *testing.T) {
	// The .invalid TLD never resolves, so the name-service fallback
	// fails and the parse error surfaces.
	_, err := ResolveAddr("no-such-host.invalid")
	if !errors.Is(err, ErrAddressParse) {
		t.Errorf("ResolveAddr() error = %v, want ErrAddressParse", err)
	}
}
