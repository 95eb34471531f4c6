//go:build !linux

package keyboard

import (
	"runtime"
	"sync"
	"unicode"

	hook "github.com/robotn/gohook"
)

// Virtual key codes for the modifier keys, per OS. Everything else comes
// from the event's character.
var darwinKeyNames = map[uint16]string{
	59: "ctrl", 62: "ctrl",
	58: "alt", 61: "alt",
	55: "cmd", 54: "cmd",
	56: "shift", 60: "shift",
	49: "space",
	48: "tab",
	53: "esc",
}

var windowsKeyNames = map[uint16]string{
	162: "ctrl", 163: "ctrl", 17: "ctrl",
	164: "alt", 165: "alt", 18: "alt",
	91: "cmd", 92: "cmd",
	160: "shift", 161: "shift", 16: "shift",
	32: "space",
	9:  "tab",
	27: "esc",
}

// hookSource wraps the gohook global event tap into the normalized stream.
type hookSource struct {
	events chan Event
	stop   chan struct{}
	once   sync.Once
	names  map[uint16]string
}

func NewSource() EventSource {
	names := windowsKeyNames
	if runtime.GOOS == "darwin" {
		names = darwinKeyNames
	}
	return &hookSource{
		events: make(chan Event, 64),
		stop:   make(chan struct{}),
		names:  names,
	}
}

func (s *hookSource) Events() (<-chan Event, error) {
	raw := hook.Start()

	go func() {
		defer close(s.events)
		for {
			select {
			case <-s.stop:
				hook.End()
				return
			case ev, ok := <-raw:
				if !ok {
					return
				}
				out, translated := s.translate(ev)
				if !translated {
					continue
				}
				select {
				case s.events <- out:
				default:
					// Drop rather than stall the event tap.
				}
			}
		}
	}()

	return s.events, nil
}

func (s *hookSource) translate(ev hook.Event) (Event, bool) {
	var press bool
	switch ev.Kind {
	case hook.KeyDown, hook.KeyHold:
		press = true
	case hook.KeyUp:
		press = false
	default:
		return Event{}, false
	}

	if name, ok := s.names[ev.Rawcode]; ok {
		return Event{Key: name, Press: press}, true
	}
	if unicode.IsLetter(ev.Keychar) || unicode.IsDigit(ev.Keychar) {
		return Event{Key: string(unicode.ToLower(ev.Keychar)), Press: press}, true
	}
	return Event{}, false
}

func (s *hookSource) Close() {
	s.once.Do(func() { close(s.stop) })
}

// Diagnose reports whether the global event tap can be used. gohook fails
// at runtime without accessibility permissions, which we cannot probe
// without starting the tap.
func Diagnose() (string, error) {
	return "global event tap available via gohook (grant accessibility permissions if events do not arrive)", nil
}
