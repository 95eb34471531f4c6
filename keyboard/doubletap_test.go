package keyboard

import (
	"testing"
	"time"
)

func TestDoubleTapFiresWithinWindow(t *testing.T) {
	clock := newFakeClock()
	d := newDoubleTapDetector("cmd")
	d.now = clock.now

	if d.Handle(press("cmd")) {
		t.Fatal("fired on first tap")
	}
	clock.advance(200 * time.Millisecond)
	if !d.Handle(press("cmd")) {
		t.Fatal("did not fire on second tap within the window")
	}
}

func TestDoubleTapTooSlow(t *testing.T) {
	clock := newFakeClock()
	d := newDoubleTapDetector("cmd")
	d.now = clock.now

	d.Handle(press("cmd"))
	clock.advance(600 * time.Millisecond)
	if d.Handle(press("cmd")) {
		t.Fatal("fired on taps outside the window")
	}
}

func TestDoubleTapSinglePressStopsWhileActive(t *testing.T) {
	clock := newFakeClock()
	d := newDoubleTapDetector("cmd")
	d.now = clock.now

	d.Handle(press("cmd"))
	clock.advance(100 * time.Millisecond)
	if !d.Handle(press("cmd")) {
		t.Fatal("double tap did not fire")
	}

	// Any later press, however slow, fires again and disarms.
	clock.advance(3 * time.Second)
	if !d.Handle(press("cmd")) {
		t.Fatal("single press while active did not fire")
	}

	// Back to needing a double tap.
	clock.advance(3 * time.Second)
	if d.Handle(press("cmd")) {
		t.Fatal("single press while inactive fired")
	}
}

func TestDoubleTapIgnoresReleasesAndOtherKeys(t *testing.T) {
	clock := newFakeClock()
	d := newDoubleTapDetector("cmd")
	d.now = clock.now

	d.Handle(press("cmd"))
	clock.advance(100 * time.Millisecond)
	if d.Handle(release("cmd")) {
		t.Fatal("fired on release")
	}
	if d.Handle(press("ctrl")) {
		t.Fatal("fired on another key")
	}
	if !d.Handle(press("cmd")) {
		t.Fatal("release or other key disturbed the tap window")
	}
}

func TestDoubleTapListenerWithFakeSource(t *testing.T) {
	src := NewFakeSource()
	l := NewDoubleTap(src, "cmd")

	fired := make(chan struct{}, 8)
	if err := l.Start(func() { fired <- struct{}{} }); err != nil {
		t.Fatalf("start: %v", err)
	}

	src.Tap("cmd")
	src.Tap("cmd")

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("double tap never fired")
	}

	l.Stop()
	if l.IsRunning() {
		t.Fatal("still running after stop")
	}
}
