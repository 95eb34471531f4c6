//go:build linux

package inject

import (
	"fmt"
	"os/exec"
	"time"

	"dictate/log"
)

// ydotoolInjector types whole strings through the ydotool daemon. It is the
// only strategy that works under Wayland compositors without a portal.
type ydotoolInjector struct {
	delay time.Duration
}

func newYdotool(delay time.Duration) (*ydotoolInjector, error) {
	if _, err := exec.LookPath("ydotool"); err != nil {
		return nil, fmt.Errorf("ydotool not found in PATH, install it (e.g. sudo apt install ydotool) and start ydotoold")
	}
	return &ydotoolInjector{delay: delay}, nil
}

func (y *ydotoolInjector) Inject(text string) error {
	if text == "" {
		return nil
	}
	args := []string{"type"}
	if y.delay > 0 {
		args = append(args, "--key-delay", fmt.Sprintf("%d", y.delay.Milliseconds()))
	}
	args = append(args, "--", text)

	out, err := exec.Command("ydotool", args...).CombinedOutput()
	if err != nil {
		// The utterance is lost but the session keeps running.
		log.Errorf("ydotool type failed: %v (%s)", err, out)
		return fmt.Errorf("ydotool type: %w", err)
	}
	return nil
}

// VerifyYdotool reports whether ydotool is reachable for the doctor checks.
func VerifyYdotool() (string, error) {
	path, err := exec.LookPath("ydotool")
	if err != nil {
		return "", fmt.Errorf("ydotool not in PATH")
	}
	return "ydotool found at " + path, nil
}
