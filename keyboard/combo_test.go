package keyboard

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func press(key string) Event   { return Event{Key: key, Press: true} }
func release(key string) Event { return Event{Key: key, Press: false} }

func TestComboFiresOncePerGesture(t *testing.T) {
	clock := newFakeClock()
	d := newComboDetector("ctrl", "alt")
	d.now = clock.now

	if d.Handle(press("ctrl")) {
		t.Fatal("fired on first key alone")
	}
	if !d.Handle(press("alt")) {
		t.Fatal("did not fire when both keys held")
	}

	// Key repeats while holding must not refire.
	clock.advance(time.Second)
	if d.Handle(press("ctrl")) || d.Handle(press("alt")) {
		t.Fatal("refired while still held")
	}
}

func TestComboOrderIndependent(t *testing.T) {
	clock := newFakeClock()
	d := newComboDetector("ctrl", "alt")
	d.now = clock.now

	d.Handle(press("alt"))
	if !d.Handle(press("ctrl")) {
		t.Fatal("did not fire with reversed press order")
	}
}

func TestComboRearmsOnRelease(t *testing.T) {
	clock := newFakeClock()
	d := newComboDetector("ctrl", "alt")
	d.now = clock.now

	d.Handle(press("ctrl"))
	if !d.Handle(press("alt")) {
		t.Fatal("first gesture did not fire")
	}

	clock.advance(time.Second)
	d.Handle(release("alt"))
	if !d.Handle(press("alt")) {
		t.Fatal("did not refire after release and re-press")
	}
}

func TestComboIgnoresOtherKeys(t *testing.T) {
	clock := newFakeClock()
	d := newComboDetector("ctrl", "alt")
	d.now = clock.now

	d.Handle(press("ctrl"))
	if d.Handle(press("shift")) {
		t.Fatal("fired on unrelated key")
	}
	d.Handle(release("shift"))
	if !d.Handle(press("alt")) {
		t.Fatal("unrelated release disturbed the combo state")
	}
}

func TestComboDebounceSwallowsImmediateRefire(t *testing.T) {
	clock := newFakeClock()
	d := newComboDetector("ctrl", "alt")
	d.now = clock.now

	d.Handle(press("ctrl"))
	if !d.Handle(press("alt")) {
		t.Fatal("first gesture did not fire")
	}

	// The latch is still set: a bouncing press within the debounce window
	// must not fire again.
	clock.advance(10 * time.Millisecond)
	if d.Handle(press("alt")) {
		t.Fatal("bounced press refired")
	}
}

func TestComboListenerWithFakeSource(t *testing.T) {
	src := NewFakeSource()
	l := NewCombo(src, "ctrl", "alt")

	fired := make(chan struct{}, 8)
	if err := l.Start(func() { fired <- struct{}{} }); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !l.IsRunning() {
		t.Fatal("not running after start")
	}
	if err := l.Start(func() {}); !errors.Is(err, ErrAlreadyListening) {
		t.Fatalf("second start: got %v, want ErrAlreadyListening", err)
	}

	src.Press("ctrl")
	src.Press("alt")

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("hotkey callback never fired")
	}

	l.Stop()
	if l.IsRunning() {
		t.Fatal("still running after stop")
	}
}

func TestParseCombo(t *testing.T) {
	tests := []struct {
		spec    string
		k1, k2  string
		wantErr bool
	}{
		{"ctrl+alt", "ctrl", "alt", false},
		{"cmd+alt", "cmd", "alt", false},
		{"cmd_l+alt", "cmd", "alt", false},
		{"super+shift", "cmd", "shift", false},
		{"ctrl", "", "", true},
		{"ctrl+alt+shift", "", "", true},
		{"ctrl+ctrl", "", "", true},
		{"+alt", "", "", true},
	}
	for _, tt := range tests {
		k1, k2, err := ParseCombo(tt.spec)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCombo(%q): expected error", tt.spec)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCombo(%q): %v", tt.spec, err)
			continue
		}
		if k1 != tt.k1 || k2 != tt.k2 {
			t.Errorf("ParseCombo(%q) = %q, %q, want %q, %q", tt.spec, k1, k2, tt.k1, tt.k2)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ctrl", "ctrl"},
		{"ctrl_l", "ctrl"},
		{"cmd_r", "cmd"},
		{"option", "alt"},
		{"super", "cmd"},
		{"  space ", "space"},
		{"a", "a"},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
