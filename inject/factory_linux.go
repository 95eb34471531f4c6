//go:build linux

package inject

import (
	"time"

	"dictate/platform"
)

func newPlatformInjector(pi platform.Info, charDelay time.Duration) (Injector, error) {
	if pi.Session == platform.SessionWayland {
		return newYdotool(charDelay)
	}
	return &perCharInjector{tapper: newUinputKeyboard(), delay: charDelay}, nil
}

// Verify probes the strategy the factory would pick, for doctor checks.
func Verify(pi platform.Info) (string, error) {
	if pi.Session == platform.SessionWayland {
		return VerifyYdotool()
	}
	return VerifyUinput()
}
