// Package rds wraps the socket-level interface of the Linux RDS
// (Reliable Datagram Sockets) protocol family: sequenced-packet socket
// creation, binding, type-of-service and transport selection, and the
// output-queue depth query used for drain polling.
package rds

import "golang.org/x/sys/unix"

// SolRDS is the socket option level for RDS options.
const SolRDS = 276

// ioctl requests in the RDS private control-request namespace.
const (
	SIOCRDSSETTOS = unix.SIOCPROTOPRIVATE
	SIOCRDSGETTOS = unix.SIOCPROTOPRIVATE + 1
)

// SO_RDS_TRANSPORT socket option and its supported values.
const (
	SORDSTransport = 9

	TransportIB  = 0
	TransportTCP = 2
)
