package main

import (
	"context"
	"sync"

	"github.com/atotto/clipboard"

	"dictate/config"
	"dictate/inject"
	"dictate/log"
	"dictate/textproc"
)

type appState int

const (
	stateIdle appState = iota
	stateRecording
	stateTranscribing
)

// recorder is the slice of audio.Recorder the coordinator needs.
type recorder interface {
	Start(onComplete func([]float32)) error
	Stop()
	IsRecording() bool
}

// asrClient is the slice of transcriber.Client the coordinator needs.
type asrClient interface {
	Transcribe(ctx context.Context, samples []float32, code string) (string, error)
}

// App coordinates the dictation pipeline. The hotkey toggles it between
// idle and recording; stopping hands the captured audio to the transcriber
// and the normalized text to the injector. Whatever happens, the state
// comes back to idle.
type App struct {
	cfg      *config.Config
	recorder recorder
	asr      asrClient
	injector inject.Injector
	ui       UI

	mu         sync.Mutex
	state      appState
	utterances int
}

func newApp(cfg *config.Config, rec recorder, asr asrClient, injector inject.Injector, ui UI) *App {
	return &App{
		cfg:      cfg,
		recorder: rec,
		asr:      asr,
		injector: injector,
		ui:       ui,
	}
}

// Toggle is the hotkey callback. Idle starts a recording; recording stops
// one; a toggle while transcription is in flight is dropped.
func (a *App) Toggle() {
	a.mu.Lock()
	switch a.state {
	case stateIdle:
		a.state = stateRecording
		a.mu.Unlock()
		a.startRecording()
	case stateRecording:
		a.state = stateTranscribing
		a.mu.Unlock()
		go a.finishRecording()
	default:
		a.mu.Unlock()
		log.Info("hotkey ignored while transcribing")
	}
}

// Idle reports whether the pipeline is at rest.
func (a *App) Idle() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state == stateIdle
}

// Utterances reports how many transcriptions completed this session.
func (a *App) Utterances() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.utterances
}

// Shutdown stops an in-flight recording without transcribing it.
func (a *App) Shutdown() {
	a.mu.Lock()
	a.state = stateIdle
	a.mu.Unlock()
	a.recorder.Stop()
}

func (a *App) startRecording() {
	err := a.recorder.Start(a.processAudio)
	if err != nil || !a.recorder.IsRecording() {
		// Device failures are swallowed by the recorder; either way we
		// are not recording.
		a.setState(stateIdle)
		if err != nil {
			a.ui.Error(err.Error())
		} else {
			a.ui.Error("microphone unavailable")
		}
		return
	}
	a.ui.RecordingStarted()
}

func (a *App) finishRecording() {
	a.ui.RecordingStopped()
	a.recorder.Stop()

	// No samples means processAudio never ran and the state is still ours
	// to clean up.
	a.mu.Lock()
	if a.state == stateTranscribing {
		a.state = stateIdle
		a.mu.Unlock()
		a.ui.Error("No text transcribed")
		return
	}
	a.mu.Unlock()
}

// processAudio is the recorder's completion callback. It also runs on the
// max-duration auto-stop path, where no toggle announced the stop.
func (a *App) processAudio(samples []float32) {
	a.mu.Lock()
	autoStopped := a.state == stateRecording
	a.state = stateTranscribing
	a.mu.Unlock()
	if autoStopped {
		a.ui.RecordingStopped()
	}
	defer a.setState(stateIdle)

	text, err := a.asr.Transcribe(context.Background(), samples, a.cfg.DefaultLanguage)
	if err != nil {
		a.ui.Error(err.Error())
		return
	}

	if text != "" {
		text = textproc.Normalize(text)
	}
	if text == "" {
		a.ui.Error("No text transcribed")
		return
	}

	if err := a.injector.Inject(text); err != nil {
		a.ui.Error(err.Error())
		return
	}
	if a.cfg.CopyToClipboard {
		if err := clipboard.WriteAll(text); err != nil {
			log.Warnf("clipboard copy failed: %v", err)
		}
	}
	a.mu.Lock()
	a.utterances++
	a.mu.Unlock()
	a.ui.TranscriptionComplete(text)
}

func (a *App) setState(s appState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}
