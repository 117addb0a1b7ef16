package probe

import (
	"errors"
	"net/netip"
	"testing"
)

// fakeConn implements probeConn with scripted behavior.
type fakeConn struct {
	sendErr  error
	sent     int
	outq     func(call int) (int, error)
	outqCall int
	closed   bool
}

func (f *fakeConn) SendTo(dst netip.AddrPort) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent++
	return nil
}

func (f *fakeConn) OutqLen() (int, error) {
	f.outqCall++
	return f.outq(f.outqCall)
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestSpin_Drained(t *testing.T) {
	// Queue reports pending bytes for two queries, then empty.
	c := &fakeConn{outq: func(call int) (int, error) {
		if call <= 2 {
			return 1024, nil
		}
		return 0, nil
	}}

	got := spin(c)
	if got.Outcome != SpinDrained {
		t.Errorf("spin() outcome = %v, want SpinDrained", got.Outcome)
	}
	if got.Count != 3 {
		t.Errorf("spin() count = %d, want 3", got.Count)
	}
}

func TestSpin_ImmediatelyEmpty(t *testing.T) {
	c := &fakeConn{outq: func(int) (int, error) { return 0, nil }}

	got := spin(c)
	if got.Outcome != SpinDrained {
		t.Errorf("spin() outcome = %v, want SpinDrained", got.Outcome)
	}
	if got.Count != 1 {
		t.Errorf("spin() count = %d, want 1", got.Count)
	}
}

func TestSpin_CeilingTerminates(t *testing.T) {
	// A queue that never drains must stop at exactly the ceiling.
	c := &fakeConn{outq: func(int) (int, error) { return 4096, nil }}

	got := spin(c)
	if got.Outcome != SpinCeilingReached {
		t.Errorf("spin() outcome = %v, want SpinCeilingReached", got.Outcome)
	}
	if got.Count != SpinCeiling {
		t.Errorf("spin() count = %d, want %d", got.Count, SpinCeiling)
	}
}

func TestSpin_QueryFailure(t *testing.T) {
	queryErr := errors.New("ioctl failed")
	c := &fakeConn{outq: func(call int) (int, error) {
		if call < 5 {
			return 1, nil
		}
		return 0, queryErr
	}}

	got := spin(c)
	if got.Outcome != SpinQueryFailed {
		t.Errorf("spin() outcome = %v, want SpinQueryFailed", got.Outcome)
	}
	if !errors.Is(got.Err, queryErr) {
		t.Errorf("spin() err = %v, want %v", got.Err, queryErr)
	}
	if got.Count != 4 {
		t.Errorf("spin() count = %d, want 4", got.Count)
	}
}

func TestSpinOutcome_String(t *testing.T) {
	tests := []struct {
		outcome SpinOutcome
		want    string
	}{
		{SpinDrained, "drained"},
		{SpinCeilingReached, "ceiling reached"},
		{SpinQueryFailed, "query failed"},
		{SpinOutcome(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("SpinOutcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
