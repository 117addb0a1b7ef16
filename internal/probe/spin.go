package probe

// SpinCeiling bounds one drain-spin loop. A queue that never drains
// still terminates after this many queries.
const SpinCeiling = 100000

// SpinOutcome classifies how a drain-spin loop ended.
type SpinOutcome int

const (
	// SpinDrained means the output queue reached zero bytes.
	SpinDrained SpinOutcome = iota
	// SpinCeilingReached means the queue was still non-empty when the
	// iteration ceiling was hit. Not a failure: the drain spin is an
	// approximate diagnostic, not a correctness guarantee.
	SpinCeilingReached
	// SpinQueryFailed means the queue-length query itself returned an
	// error. Non-fatal for the run; the error rides in SpinResult.Err.
	SpinQueryFailed
)

func (o SpinOutcome) String() string {
	switch o {
	case SpinDrained:
		return "drained"
	case SpinCeilingReached:
		return "ceiling reached"
	case SpinQueryFailed:
		return "query failed"
	default:
		return "unknown"
	}
}

// SpinResult is the outcome of busy-polling one socket's output queue.
// Count is the number of queue-length queries issued.
type SpinResult struct {
	Outcome SpinOutcome
	Count   int
	Err     error
}

// spin busy-polls the socket's pending-output byte count until the queue
// drains or SpinCeiling queries have been made. This is inherently racy:
// the queue may refill or drain between queries, so the count is a
// timing signal rather than an exact measure.
func spin(c probeConn) SpinResult {
	count := 0
	for {
		pending, err := c.OutqLen()
		if err != nil {
			return SpinResult{Outcome: SpinQueryFailed, Count: count, Err: err}
		}
		count++
		if pending == 0 {
			return SpinResult{Outcome: SpinDrained, Count: count}
		}
		if count >= SpinCeiling {
			return SpinResult{Outcome: SpinCeilingReached, Count: count}
		}
	}
}
