// Package keyboard watches global key events and fires a callback on the
// configured gesture. Two gestures exist: hold-two-keys combos and
// double-taps of a single key. Detectors are pure state machines fed by an
// EventSource, which is the only platform-specific piece.
package keyboard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyListening is returned by Start while a listener is running.
var ErrAlreadyListening = errors.New("listener is already running")

// Event is one normalized key transition. Key is a lowercase name with
// left/right variants folded together ("ctrl", "alt", "cmd", "space", "a").
type Event struct {
	Key   string
	Press bool
}

// EventSource emits the global key stream. Events starts the source; Close
// stops it and closes the channel.
type EventSource interface {
	Events() (<-chan Event, error)
	Close()
}

// Listener runs a gesture detector over an EventSource.
type Listener interface {
	Start(onHotkey func()) error
	Stop()
	IsRunning() bool
}

var keyAliases = map[string]string{
	"control": "ctrl",
	"option":  "alt",
	"opt":     "alt",
	"meta":    "cmd",
	"super":   "cmd",
	"win":     "cmd",
	"command": "cmd",
}

// NormalizeKey folds a key name to its canonical form: lowercase, left/right
// suffix stripped, aliases resolved.
func NormalizeKey(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	k = strings.TrimSuffix(k, "_l")
	k = strings.TrimSuffix(k, "_r")
	if canon, ok := keyAliases[k]; ok {
		return canon
	}
	return k
}

// ParseCombo splits a "key1+key2" spec into two normalized key names.
func ParseCombo(spec string) (string, string, error) {
	parts := strings.Split(spec, "+")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("hotkey %q must name exactly two keys, like ctrl+alt", spec)
	}
	key1 := NormalizeKey(parts[0])
	key2 := NormalizeKey(parts[1])
	if key1 == "" || key2 == "" {
		return "", "", fmt.Errorf("hotkey %q has an empty key name", spec)
	}
	if key1 == key2 {
		return "", "", fmt.Errorf("hotkey %q names the same key twice", spec)
	}
	return key1, key2, nil
}
