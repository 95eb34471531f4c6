package audio

import "testing"

func feedN(m *silenceMonitor, speech bool, n int) silenceEvent {
	var last silenceEvent
	for i := 0; i < n; i++ {
		last = m.Tick(speech)
	}
	return last
}

func TestSilenceWarnAfter8s(t *testing.T) {
	m := newSilenceMonitor()
	// 79 ticks of silence, no warning yet
	for i := 0; i < 79; i++ {
		if ev := m.Tick(false); ev != silenceNone {
			t.Fatalf("unexpected event at tick %d: %d", i, ev)
		}
	}
	// 80th tick triggers the warning (8s)
	if ev := m.Tick(false); ev != silenceWarn {
		t.Fatalf("expected silenceWarn at tick 80, got %d", ev)
	}
}

func TestSilenceWarnClearsOnSpeech(t *testing.T) {
	m := newSilenceMonitor()
	feedN(m, false, 80) // triggers warn

	// Sustained speech clears the warning (needs 25% of the 80-tick window)
	for i := 0; i < 80; i++ {
		if ev := m.Tick(true); ev == silenceWarnClear {
			return
		}
	}
	t.Fatal("expected silenceWarnClear after speech")
}

func TestNoWarnDuringSpeech(t *testing.T) {
	m := newSilenceMonitor()
	for i := 0; i < 200; i++ {
		if ev := m.Tick(true); ev == silenceWarn {
			t.Fatalf("unexpected warn during speech at tick %d", i)
		}
	}
}

func TestSilenceAutoStop(t *testing.T) {
	m := newSilenceMonitor()
	for i := 0; i < 400; i++ {
		if ev := m.Tick(false); ev == silenceAutoStop {
			return
		}
	}
	t.Fatal("expected silenceAutoStop after 300 ticks")
}

func TestAutoStopPreventedBySpeech(t *testing.T) {
	m := newSilenceMonitor()
	for i := 0; i < 500; i++ {
		speech := i%10 < 7
		if ev := m.Tick(speech); ev == silenceAutoStop {
			t.Fatalf("unexpected auto-stop with speech at tick %d", i)
		}
	}
}

func TestWarnOnlyOnce(t *testing.T) {
	m := newSilenceMonitor()
	warns := 0
	for i := 0; i < 250; i++ {
		if ev := m.Tick(false); ev == silenceWarn {
			warns++
		}
	}
	if warns != 1 {
		t.Fatalf("expected exactly 1 silenceWarn, got %d", warns)
	}
}

func TestWarnStaysDuringNoise(t *testing.T) {
	m := newSilenceMonitor()
	feedN(m, false, 80) // triggers warn

	// Occasional VAD false positives (< 25% speech) must not clear it
	for i := 0; i < 80; i++ {
		speech := i%10 == 0
		if ev := m.Tick(speech); ev == silenceWarnClear {
			t.Fatalf("warning cleared with 10%% speech at tick %d", i)
		}
	}
}
