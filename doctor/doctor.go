// Package doctor runs interactive diagnostics over every moving part of the
// dictation pipeline: keyboard access, hotkey detection, microphone capture,
// transcription and text injection.
package doctor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"dictate/audio"
	"dictate/config"
	"dictate/inject"
	"dictate/keyboard"
	"dictate/transcriber"
)

// Run executes the checks and returns an exit code (0=all pass, 1=any fail).
func Run(cfg *config.Config) int {
	resetTerminal()
	setupInterruptHandler()

	fmt.Println("dictate doctor - interactive system diagnostics")
	fmt.Println("===============================================")

	allPass := true

	if !checkKeyboardAccess() {
		allPass = false
	}
	if allPass && !checkHotkey(cfg) {
		allPass = false
	}
	if allPass && !checkMicAndTranscription(cfg) {
		allPass = false
	}
	if allPass && !checkInjection(cfg) {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkKeyboardAccess() bool {
	fmt.Println()
	fmt.Println("[1/4] Keyboard event access")

	msg, err := keyboard.Diagnose()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: %s\n", msg)
	return true
}

func checkHotkey(cfg *config.Config) bool {
	fmt.Println()
	fmt.Println("[2/4] Hotkey detection")

	listener, gesture, err := buildListener(cfg)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("Press %s...\n", gesture)

	fired := make(chan struct{}, 1)
	if err := listener.Start(func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	}); err != nil {
		fmt.Printf("  FAIL: could not start listener: %v\n", err)
		return false
	}
	defer listener.Stop()

	select {
	case <-fired:
		fmt.Println("  PASS: hotkey detected")
		resetTerminal()
		return true
	case <-time.After(10 * time.Second):
		fmt.Println("  FAIL: timeout waiting for hotkey")
		return false
	}
}

func buildListener(cfg *config.Config) (keyboard.Listener, string, error) {
	source := keyboard.NewSource()
	if cfg.DoubleTapKey != "" {
		key := keyboard.NormalizeKey(cfg.DoubleTapKey)
		return keyboard.NewDoubleTap(source, key), "double-tap " + key, nil
	}
	key1, key2, err := keyboard.ParseCombo(cfg.Hotkey)
	if err != nil {
		source.Close()
		return nil, "", err
	}
	return keyboard.NewCombo(source, key1, key2), key1 + "+" + key2, nil
}

func checkMicAndTranscription(cfg *config.Config) bool {
	fmt.Println()
	fmt.Println("[3/4] Microphone and transcription")

	reader := bufio.NewReader(os.Stdin)

	actx, err := audio.NewContext()
	if err != nil {
		fmt.Printf("  FAIL: cannot connect to audio: %v\n", err)
		return false
	}
	defer actx.Close()

	devices, err := actx.Devices()
	if err != nil {
		fmt.Printf("  FAIL: cannot list devices: %v\n", err)
		return false
	}
	if len(devices) == 0 {
		fmt.Println("  FAIL: no capture devices found")
		return false
	}

	var device *audio.DeviceInfo
	if len(devices) == 1 {
		device = &devices[0]
		fmt.Printf("Using device: %s\n", device.Name)
	} else {
		fmt.Println()
		fmt.Println("Select input device:")
		for i, d := range devices {
			fmt.Printf("  %d. %s\n", i+1, d.Name)
		}
		fmt.Printf("Choice [1-%d]: ", len(devices))

		devChoice, _ := reader.ReadString('\n')
		devChoice = strings.TrimSpace(devChoice)
		idx := 0
		if devChoice != "" {
			fmt.Sscanf(devChoice, "%d", &idx)
			idx--
		}
		if idx < 0 || idx >= len(devices) {
			fmt.Println("  FAIL: invalid choice")
			return false
		}
		device = &devices[idx]
		fmt.Printf("Selected: %s\n", device.Name)
	}

	fmt.Println()
	fmt.Print("Press Enter and speak for 3 seconds...")
	reader.ReadString('\n')

	captureConfig := audio.CaptureConfig{
		SampleRate: uint32(cfg.SampleRate),
		Channels:   1,
		FrameSize:  uint32(cfg.FrameSize),
	}
	recorder := audio.NewRecorder(actx, device, captureConfig, 3*time.Second)

	done := make(chan []float32, 1)
	if err := recorder.Start(func(samples []float32) { done <- samples }); err != nil {
		fmt.Printf("  FAIL: recording error: %v\n", err)
		return false
	}

	fmt.Print("  Recording")
	var samples []float32
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(10 * time.Second)
wait:
	for {
		select {
		case samples = <-done:
			break wait
		case <-ticker.C:
			fmt.Print(".")
		case <-timeout:
			fmt.Println(" timeout")
			fmt.Println("  FAIL: no audio captured (device delivered nothing)")
			return false
		}
	}
	fmt.Println(" done")
	fmt.Printf("  Captured %.1fs of audio\n", float64(len(samples))/float64(cfg.SampleRate))

	if cfg.Model == "" && cfg.ServerURL == "" {
		fmt.Println("  PASS: microphone works (no model configured, skipping transcription)")
		return true
	}

	model, err := transcriber.New(cfg.Model, cfg.ServerURL)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	defer model.Close()

	client := transcriber.NewClient(model, cfg.SampleRate)
	text, err := client.Transcribe(context.Background(), samples, cfg.DefaultLanguage)
	if err != nil {
		fmt.Printf("  FAIL: transcription error: %v\n", err)
		return false
	}
	if text == "" {
		text = "(no speech detected)"
	}

	fmt.Printf("\n  Transcribed text: %s\n\n", text)

	confirmReader := bufio.NewReader(os.Stdin)
	fmt.Print("Is this correct? [y/n]: ")
	confirm, _ := confirmReader.ReadString('\n')
	confirm = strings.TrimSpace(strings.ToLower(confirm))

	if confirm == "y" || confirm == "yes" {
		fmt.Println("  PASS: transcription verified by user")
		return true
	}
	fmt.Println("  FAIL: transcription not confirmed")
	return false
}

func checkInjection(cfg *config.Config) bool {
	fmt.Println()
	fmt.Println("[4/4] Text injection")

	msg, err := inject.Verify(cfg.Platform)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  %s\n", msg)

	injector, err := inject.New(cfg.Platform, cfg.CharDelay)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}

	fmt.Println("Focus on a text editor window...")
	for i := 5; i > 0; i-- {
		fmt.Printf("  %d...\n", i)
		time.Sleep(1 * time.Second)
	}

	testStr := "dictate doctor test"
	if err := injector.Inject(testStr); err != nil {
		fmt.Printf("  FAIL: injection failed: %v\n", err)
		return false
	}

	resetTerminal()
	confirmReader := bufio.NewReader(os.Stdin)
	fmt.Println()
	fmt.Printf("Did the text %q appear? [y/n]: ", testStr)
	confirm, _ := confirmReader.ReadString('\n')
	confirm = strings.TrimSpace(strings.ToLower(confirm))

	if confirm != "y" && confirm != "yes" {
		fmt.Println("  FAIL: injection not confirmed")
		return false
	}
	fmt.Println("  PASS: injection verified by user")

	if cfg.CopyToClipboard {
		sentinel := "dictate-clipboard-check"
		if err := clipboard.WriteAll(sentinel); err != nil {
			fmt.Printf("  FAIL: clipboard write: %v\n", err)
			return false
		}
		got, err := clipboard.ReadAll()
		if err != nil || got != sentinel {
			fmt.Printf("  FAIL: clipboard readback (got %q, err %v)\n", got, err)
			return false
		}
		fmt.Println("  PASS: clipboard copy verified")
	}
	return true
}
