package keyboard

import (
	"sync"
	"time"
)

const doubleTapWindow = 500 * time.Millisecond

// doubleTapDetector toggles with the recording state: two quick taps fire
// and arm it, then any single tap fires and disarms. Releases are ignored.
type doubleTapDetector struct {
	key       string
	window    time.Duration
	active    bool
	lastPress time.Time
	now       func() time.Time
}

func newDoubleTapDetector(key string) *doubleTapDetector {
	return &doubleTapDetector{
		key:    key,
		window: doubleTapWindow,
		now:    time.Now,
	}
}

func (d *doubleTapDetector) Handle(ev Event) bool {
	if !ev.Press || ev.Key != d.key {
		return false
	}
	now := d.now()
	fire := false
	if d.active {
		d.active = false
		fire = true
	} else if !d.lastPress.IsZero() && now.Sub(d.lastPress) < d.window {
		d.active = true
		fire = true
	}
	d.lastPress = now
	return fire
}

// DoubleTapListener fires on a double tap of a single key, then on every
// single tap until the next fire.
type DoubleTapListener struct {
	source EventSource
	key    string

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

func NewDoubleTap(source EventSource, key string) *DoubleTapListener {
	return &DoubleTapListener{source: source, key: key}
}

func (l *DoubleTapListener) Start(onHotkey func()) error {
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
	det := newDoubleTapDetector(l.key)

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

func (l *DoubleTapListener) Stop() {
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

func (l *DoubleTapListener) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}
