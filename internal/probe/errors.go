package probe

import (
	"errors"
	"fmt"
)

var (
	// ErrAddressParse indicates a destination or source string that is
	// neither a numeric address nor a resolvable hostname.
	ErrAddressParse = errors.New("unable to parse or resolve address")

	// ErrFamilyMismatch indicates an explicit source address whose
	// family differs from the destination's.
	ErrFamilyMismatch = errors.New("source and destination address family are not the same")

	// ErrGroupSize indicates an explicit socket-group size outside [1, 32].
	ErrGroupSize = errors.New("number of sockets out of range")
)

// SockOp identifies the socket operation a SocketError came from.
type SockOp string

const (
	OpCreate     SockOp = "create socket"
	OpRouteProbe SockOp = "probe local route"
	OpBind       SockOp = "bind"
	OpTransport  SockOp = "set transport"
	OpSetTOS     SockOp = "set tos"
	OpSend       SockOp = "send"
)

// SocketError wraps an OS-level socket failure with the operation that
// produced it. Everything except OpSend is fatal before the first probe
// is sent; an OpSend failure aborts the remaining sockets but keeps the
// partial result.
type SocketError struct {
	Op  SockOp
	Err error
}

func (e *SocketError) Error() string {
	return fmt.Sprintf("rds: %s: %v", e.Op, e.Err)
}

func (e *SocketError) Unwrap() error {
	return e.Err
}
