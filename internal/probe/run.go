package probe

import (
	"log/slog"
	"net/netip"
	"time"

	"go.uber.org/ratelimit"
)

// probeConn is the slice of the RDS socket surface the scheduler and
// spinner touch. rds.Socket implements it; tests substitute fakes.
type probeConn interface {
	SendTo(dst netip.AddrPort) error
	OutqLen() (int, error)
	Close() error
}

// probeSocket is one member of the probe group. The sequence slot is the
// socket's index in the group; because probes carry no payload, sequence
// numbers are matched to sockets rather than echoed back.
type probeSocket struct {
	conn     probeConn
	seq      int
	lastSent time.Time
}

// Runner drives one probing run: it owns the socket group for the run's
// duration, services the sockets strictly in group order on a single
// goroutine, and releases every socket when the run ends, aborted or not.
type Runner struct {
	cfg Config
}

// NewRunner returns a Runner for cfg.
func NewRunner(cfg Config) *Runner {
	return &Runner{cfg: cfg}
}

// Run executes the probing run and reports timing and per-socket counts.
// All sockets are created before the timed phase starts. A send failure
// aborts the remaining sockets immediately; the partial Result is
// returned together with the error so the caller can still report it.
func (r *Runner) Run() (Result, error) {
	cfg := r.cfg

	src := cfg.Source
	if !src.IsValid() {
		var err error
		src, err = localAddrFor(cfg.Dest)
		if err != nil {
			return Result{}, err
		}
		slog.Debug("inferred source address from routing", "source", src)
	}

	group := make([]*probeSocket, 0, cfg.Sockets)
	defer func() {
		for _, ps := range group {
			ps.conn.Close()
		}
	}()
	for i := 0; i < cfg.Sockets; i++ {
		conn, err := openProbeSocket(cfg, src)
		if err != nil {
			return Result{}, err
		}
		group = append(group, &probeSocket{conn: conn, seq: i})
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.Rate > 0 {
		limiter = ratelimit.New(cfg.Rate)
	}

	// The destination port stays 0: reachability probes target the
	// node, and RDS delivers zero-length messages without a bound peer.
	dst := netip.AddrPortFrom(cfg.Dest, 0)

	res := Result{
		Sockets:       len(group),
		SentPerSocket: make([]int, len(group)),
	}

	var runErr error
	start := time.Now()

sockets:
	for _, ps := range group {
		for n := 0; n < cfg.PerSocket; n++ {
			limiter.Take()
			if err := ps.conn.SendTo(dst); err != nil {
				runErr = &SocketError{Op: OpSend, Err: err}
				break sockets
			}
			ps.lastSent = time.Now()
			res.SentPerSocket[ps.seq] = n + 1
		}
		slog.Debug("socket sends complete",
			"socket", ps.seq,
			"sent", res.SentPerSocket[ps.seq],
			"last_sent", ps.lastSent,
		)
		if cfg.Spin {
			sr := spin(ps.conn)
			res.Spins = append(res.Spins, sr)
			slog.Debug("drain spin finished",
				"socket", ps.seq,
				"outcome", sr.Outcome.String(),
				"count", sr.Count,
			)
		}
	}

	res.Elapsed = time.Since(start)
	for _, sent := range res.SentPerSocket {
		res.Sent += sent
	}

	return res, runErr
}
