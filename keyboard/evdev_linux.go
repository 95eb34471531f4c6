//go:build linux

package keyboard

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	evKey      = 1
	keyPress   = 1
	keyRelease = 0
)

const inputEventSize = 24

// linuxKeyNames maps evdev key codes to normalized names. Left and right
// variants fold to the same name.
var linuxKeyNames = map[uint16]string{
	29:  "ctrl",
	97:  "ctrl",
	42:  "shift",
	54:  "shift",
	56:  "alt",
	100: "alt",
	125: "cmd",
	126: "cmd",
	57:  "space",
	15:  "tab",
	58:  "capslock",
	1:   "esc",
	16:  "q", 17: "w", 18: "e", 19: "r", 20: "t",
	21: "y", 22: "u", 23: "i", 24: "o", 25: "p",
	30: "a", 31: "s", 32: "d", 33: "f", 34: "g",
	35: "h", 36: "j", 37: "k", 38: "l",
	44: "z", 45: "x", 46: "c", 47: "v", 48: "b",
	49: "n", 50: "m",
}

// evdevSource reads raw input events from every /dev/input keyboard and
// merges them into one normalized stream.
type evdevSource struct {
	events chan Event
	files  []*os.File
	wg     sync.WaitGroup
	once   sync.Once
}

func NewSource() EventSource {
	return &evdevSource{events: make(chan Event, 64)}
}

func (s *evdevSource) Events() (<-chan Event, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return nil, fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return nil, fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		s.files = append(s.files, f)
		s.wg.Add(1)
		go s.readEvents(f)
	}

	if len(s.files) == 0 {
		return nil, fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	go func() {
		s.wg.Wait()
		close(s.events)
	}()

	return s.events, nil
}

func (s *evdevSource) readEvents(f *os.File) {
	defer s.wg.Done()
	buf := make([]byte, inputEventSize*16)

	for {
		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			evType := binary.LittleEndian.Uint16(buf[i+16:])
			evCode := binary.LittleEndian.Uint16(buf[i+18:])
			evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

			if evType != evKey {
				continue
			}
			if evValue != keyPress && evValue != keyRelease {
				continue // key repeat
			}
			name, ok := linuxKeyNames[evCode]
			if !ok {
				continue
			}

			select {
			case s.events <- Event{Key: name, Press: evValue == keyPress}:
			default:
				// Drop rather than stall the device reader.
			}
		}
	}
}

func (s *evdevSource) Close() {
	s.once.Do(func() {
		for _, f := range s.files {
			f.Close()
		}
	})
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, filepath.Join("/dev/input", e.Name()))
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}

// Diagnose checks that at least one keyboard device can be opened.
func Diagnose() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	var opened string
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}

	return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), opened), nil
}
