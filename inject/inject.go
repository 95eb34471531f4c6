// Package inject types transcribed text into the focused window. The
// strategy is decided by the windowing environment, not by user config:
// ydotool on Wayland, a virtual uinput keyboard elsewhere on Linux, and
// keybd_event synthesis on macOS and Windows.
package inject

import (
	"time"

	"dictate/log"
	"dictate/platform"
)

// Injector delivers one utterance as keystrokes. Empty text is a no-op.
type Injector interface {
	Inject(text string) error
}

// New picks the strategy for the detected environment. charDelay spaces out
// per-character synthesis; ydotool gets it as its key delay.
func New(pi platform.Info, charDelay time.Duration) (Injector, error) {
	return newPlatformInjector(pi, charDelay)
}

// charTapper synthesizes a single character. Implementations report
// unsupported characters as errors; the per-char loop skips those.
type charTapper interface {
	tapChar(c rune) error
}

// perCharInjector walks the text one character at a time. A character that
// fails to synthesize is logged and skipped, never aborting the utterance.
type perCharInjector struct {
	tapper charTapper
	delay  time.Duration
}

func (p *perCharInjector) Inject(text string) error {
	if text == "" {
		return nil
	}
	for _, c := range text {
		if err := p.tapper.tapChar(c); err != nil {
			log.Warnf("skipping character %q: %v", c, err)
			continue
		}
		if p.delay > 0 {
			time.Sleep(p.delay)
		}
	}
	return nil
}
