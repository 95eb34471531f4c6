package main

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"dictate/log"
)

// UI receives pipeline events. The CLI implementation below is the only
// shipped one; tests substitute their own.
type UI interface {
	RecordingStarted()
	RecordingStopped()
	TranscriptionComplete(text string)
	Error(msg string)
}

// cliUI prints events to stdout and optionally raises desktop
// notifications.
type cliUI struct {
	notify bool
}

func newCLIUI(notify bool) *cliUI {
	return &cliUI{notify: notify}
}

func (u *cliUI) RecordingStarted() {
	fmt.Println("[*] Recording started...")
	log.Info("recording_start")
}

func (u *cliUI) RecordingStopped() {
	fmt.Println("[*] Recording stopped.")
	log.Info("recording_stop")
}

func (u *cliUI) TranscriptionComplete(text string) {
	fmt.Printf("[✓] Transcribed: %s\n", text)
	if u.notify {
		if err := beeep.Notify("Dictate", text, ""); err != nil {
			log.Warnf("notification failed: %v", err)
		}
	}
}

func (u *cliUI) Error(msg string) {
	fmt.Printf("[!] Error: %s\n", msg)
	log.Error(msg)
	if u.notify {
		if err := beeep.Alert("Dictate", msg, ""); err != nil {
			log.Warnf("notification failed: %v", err)
		}
	}
}
