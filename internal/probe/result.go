package probe

import "time"

// Result summarizes one probing run. After an aborted run it holds the
// partial counts accumulated before the failure.
type Result struct {
	// Sockets is the number of sockets the group was created with.
	Sockets int
	// Elapsed covers the scheduling phase: sends plus drain spins.
	// Socket creation and teardown are outside the window.
	Elapsed time.Duration
	// Sent is the total number of probes handed to the transport.
	Sent int
	// SentPerSocket holds per-socket send counts in group order.
	SentPerSocket []int
	// Spins holds one entry per socket that completed its sends, in
	// group order. Empty unless drain spinning was enabled.
	Spins []SpinResult
}

// ElapsedMillis reports the elapsed time in milliseconds with
// microsecond precision, preserving the fractional part.
func (r Result) ElapsedMillis() float64 {
	return float64(r.Elapsed.Microseconds()) / 1000
}
