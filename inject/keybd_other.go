//go:build !linux

package inject

import (
	"fmt"
	"sync"
	"time"
	"unicode"

	"github.com/micmonay/keybd_event"

	"dictate/platform"
)

func newPlatformInjector(_ platform.Info, charDelay time.Duration) (Injector, error) {
	return &perCharInjector{tapper: &keybdTapper{}, delay: charDelay}, nil
}

// Verify probes the keybd_event binding, for doctor checks.
func Verify(_ platform.Info) (string, error) {
	t := &keybdTapper{}
	if err := t.init(); err != nil {
		return "", fmt.Errorf("keybd_event init: %w", err)
	}
	return "keyboard event binding OK", nil
}

var vkKeys = map[rune]int{
	'a': keybd_event.VK_A, 'b': keybd_event.VK_B, 'c': keybd_event.VK_C,
	'd': keybd_event.VK_D, 'e': keybd_event.VK_E, 'f': keybd_event.VK_F,
	'g': keybd_event.VK_G, 'h': keybd_event.VK_H, 'i': keybd_event.VK_I,
	'j': keybd_event.VK_J, 'k': keybd_event.VK_K, 'l': keybd_event.VK_L,
	'm': keybd_event.VK_M, 'n': keybd_event.VK_N, 'o': keybd_event.VK_O,
	'p': keybd_event.VK_P, 'q': keybd_event.VK_Q, 'r': keybd_event.VK_R,
	's': keybd_event.VK_S, 't': keybd_event.VK_T, 'u': keybd_event.VK_U,
	'v': keybd_event.VK_V, 'w': keybd_event.VK_W, 'x': keybd_event.VK_X,
	'y': keybd_event.VK_Y, 'z': keybd_event.VK_Z,
	'0': keybd_event.VK_0, '1': keybd_event.VK_1, '2': keybd_event.VK_2,
	'3': keybd_event.VK_3, '4': keybd_event.VK_4, '5': keybd_event.VK_5,
	'6': keybd_event.VK_6, '7': keybd_event.VK_7, '8': keybd_event.VK_8,
	'9': keybd_event.VK_9,
	' ':  keybd_event.VK_SPACE,
	'\n': keybd_event.VK_ENTER,
	'\t': keybd_event.VK_TAB,
}

// keybdTapper synthesizes characters through keybd_event. Punctuation
// depends on the active layout, so only letters, digits and whitespace are
// mapped; everything else is skipped by the per-char loop.
type keybdTapper struct {
	kb   keybd_event.KeyBonding
	once sync.Once
	err  error
}

func (t *keybdTapper) init() error {
	t.once.Do(func() {
		t.kb, t.err = keybd_event.NewKeyBonding()
	})
	return t.err
}

func (t *keybdTapper) tapChar(c rune) error {
	shift := unicode.IsUpper(c)
	vk, ok := vkKeys[unicode.ToLower(c)]
	if !ok {
		return fmt.Errorf("no key mapping for %q", c)
	}
	if err := t.init(); err != nil {
		return err
	}
	t.kb.Clear()
	t.kb.SetKeys(vk)
	t.kb.HasSHIFT(shift)
	return t.kb.Launching()
}
