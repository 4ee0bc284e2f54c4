package admin

import (
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestLogin(t *testing.T) {
	c, err := Login(" me/site/ ", " tok ", t0)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if c.Repository != "me/site" || c.Token != "tok" || !c.LoginAt.Equal(t0) {
		t.Errorf("credential = %+v", c)
	}

	for _, in := range [][2]string{{"", "tok"}, {"me/site", ""}, {" ", " "}} {
		if _, err := Login(in[0], in[1], t0); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("Login(%q, %q) err = %v", in[0], in[1], err)
		}
	}
}

func TestEvaluate(t *testing.T) {
	cred, _ := Login("me/site", "tok", t0)
	tests := []struct {
		name     string
		cred     Credential
		unlocked bool
		now      time.Time
		want     State
	}{
		{"nothing", Credential{}, false, t0, Anonymous},
		{"trigger fired", Credential{}, true, t0, Authenticating},
		{"fresh login", cred, false, t0.Add(time.Minute), Admin},
		{"exactly at limit", cred, false, t0.Add(SessionDuration), Admin},
		{"past limit", cred, false, t0.Add(SessionDuration + time.Second), Expired},
	}
	for _, tt := range tests {
		if got := Evaluate(tt.cred, tt.unlocked, tt.now, SessionDuration); got != tt.want {
			t.Errorf("%s: state = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestTriggerThreeTaps(t *testing.T) {
	var tr Trigger
	var fired bool
	for i := 0; i < 2; i++ {
		tr, fired = tr.Tap(t0.Add(time.Duration(i)*time.Second), 3, DefaultWindow)
		if fired {
			t.Fatalf("fired after %d taps", i+1)
		}
	}
	tr, fired = tr.Tap(t0.Add(2*time.Second), 3, DefaultWindow)
	if !fired {
		t.Fatal("third tap did not fire")
	}
	if tr.Count != 0 {
		t.Errorf("count not reset: %d", tr.Count)
	}
}

func TestTriggerWindowExpires(t *testing.T) {
	var tr Trigger
	tr, _ = tr.Tap(t0, 3, DefaultWindow)
	tr, _ = tr.Tap(t0.Add(time.Second), 3, DefaultWindow)
	tr, fired := tr.Tap(t0.Add(DefaultWindow+time.Second), 3, DefaultWindow)
	if fired {
		t.Fatal("taps outside the window should not fire")
	}
	if tr.Count != 1 {
		t.Errorf("count = %d, want a fresh sequence", tr.Count)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Anonymous: "anonymous", Authenticating: "authenticating", Admin: "admin", Expired: "expired", State(9): "unknown"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q", s, s.String())
		}
	}
}
