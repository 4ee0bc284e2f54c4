package admin

import "time"

const (
	DefaultTaps   = 3
	DefaultWindow = 30 * time.Second
)

// Trigger counts taps on the hidden footer control. It is a value type so
// it can be stored in a session between requests.
type Trigger struct {
	Count int
	First time.Time
}

// Tap registers one tap at now. It returns the updated trigger and whether
// the tap completed the sequence, in which case the count resets.
// Taps spread over more than window start a new sequence.
func (t Trigger) Tap(now time.Time, taps int, window time.Duration) (Trigger, bool) {
	if taps <= 0 {
		taps = DefaultTaps
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if t.Count == 0 || now.Sub(t.First) > window {
		t = Trigger{First: now}
	}
	t.Count++
	if t.Count >= taps {
		return Trigger{}, true
	}
	return t, false
}
