package keyboard

import (
	"sync"
	"time"
)

const comboDebounce = 150 * time.Millisecond

// comboDetector fires once per hold-both gesture. The latch re-arms only
// when one of the keys releases, and a debounce swallows bounces right
// after a fire.
type comboDetector struct {
	key1, key2         string
	pressed1, pressed2 bool
	fired              bool
	lastFire           time.Time
	debounce           time.Duration
	now                func() time.Time
}

func newComboDetector(key1, key2 string) *comboDetector {
	return &comboDetector{
		key1:     key1,
		key2:     key2,
		debounce: comboDebounce,
		now:      time.Now,
	}
}

// Handle consumes one event and reports whether the gesture fired.
func (d *comboDetector) Handle(ev Event) bool {
	if ev.Press {
		switch ev.Key {
		case d.key1:
			d.pressed1 = true
		case d.key2:
			d.pressed2 = true
		}
		if d.pressed1 && d.pressed2 && !d.fired {
			now := d.now()
			if d.lastFire.IsZero() || now.Sub(d.lastFire) >= d.debounce {
				d.fired = true
				d.lastFire = now
				return true
			}
		}
		return false
	}

	switch ev.Key {
	case d.key1:
		d.pressed1 = false
	case d.key2:
		d.pressed2 = false
	}
	if !d.pressed1 || !d.pressed2 {
		d.fired = false
		d.lastFire = time.Time{}
	}
	return false
}

// ComboListener fires the callback when both keys of the combo are held.
type ComboListener struct {
	source EventSource
	key1   string
	key2   string

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

func NewCombo(source EventSource, key1, key2 string) *ComboListener {
	return &ComboListener{source: source, key1: key1, key2: key2}
}

func (l *ComboListener) Start(onHotkey func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return ErrAlreadyListening
	}

	events, err := l.source.Events()
	if err != nil {
		return err
	}

	l.running = true
	l.done = make(chan struct{})
	det := newComboDetector(l.key1, l.key2)

	go func() {
		defer close(l.done)
		for ev := range events {
			if det.Handle(ev) {
				onHotkey()
			}
		}
	}()

	return nil
}

func (l *ComboListener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	done := l.done
	l.mu.Unlock()

	l.source.Close()
	<-done
}

func (l *ComboListener) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}
