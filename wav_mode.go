package main

import (
	"fmt"
	"os"
	"time"

	"dictate/audio"
	"dictate/config"
	"dictate/transcriber"
)

// printInjector writes the final text to stdout instead of synthesizing
// keystrokes. Headless mode has no focused window to type into.
type printInjector struct{}

func (printInjector) Inject(text string) error {
	fmt.Println(text)
	return nil
}

// runWAVMode pushes a WAV file through the real pipeline: a fake capture
// device replays the file into the recorder, and the transcription lands on
// stdout. Useful for benchmarking models and for CI.
func runWAVMode(cfg *config.Config, wavPath string) int {
	fakeCtx, err := audio.NewFakeContext(wavPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load %s: %v\n", wavPath, err)
		return 1
	}
	if fakeCtx.SampleRate() != cfg.SampleRate {
		fmt.Fprintf(os.Stderr, "%s is %d Hz; resample it to %d Hz first\n",
			wavPath, fakeCtx.SampleRate(), cfg.SampleRate)
		return 1
	}

	model, err := transcriber.New(cfg.Model, cfg.ServerURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	defer model.Close()
	asr := transcriber.NewClient(model, cfg.SampleRate)

	captureCfg := audio.CaptureConfig{
		SampleRate: uint32(cfg.SampleRate),
		Channels:   1,
		FrameSize:  uint32(cfg.FrameSize),
	}
	rec := audio.NewRecorder(fakeCtx, nil, captureCfg, 0)

	app := newApp(cfg, rec, asr, printInjector{}, newCLIUI(false))

	app.Toggle()
	if !rec.IsRecording() {
		return 1
	}

	// The fake capture feeds one frame per millisecond; wait for it to
	// drain the file, with headroom for scheduling.
	info, err := os.Stat(wavPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	frames := info.Size() / int64(2*cfg.FrameSize)
	time.Sleep(time.Duration(frames+1)*3*time.Millisecond + 200*time.Millisecond)

	app.Toggle()

	deadline := time.Now().Add(5 * time.Minute)
	for !app.Idle() {
		if time.Now().After(deadline) {
			fmt.Fprintln(os.Stderr, "transcription timed out")
			return 1
		}
		time.Sleep(10 * time.Millisecond)
	}

	if app.Utterances() == 0 {
		return 1
	}
	return 0
}
