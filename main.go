package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"dictate/audio"
	"dictate/config"
	"dictate/doctor"
	"dictate/inject"
	"dictate/keyboard"
	"dictate/log"
	"dictate/platform"
	"dictate/transcriber"
)

var version = "dev"

// initCrashLog routes fatal panics into the log directory. Set up before any
// CGO code runs.
func initCrashLog() {
	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
	debug.SetCrashOutput(crashFile, debug.CrashOptions{})
}

func main() {
	modelFlag := flag.String("model", "", "whisper.cpp model size or path to a ggml model file")
	serverFlag := flag.String("server", "", "OpenAI-compatible ASR server URL (overrides -model)")
	hotkeyFlag := flag.String("hotkey", "", "two-key toggle combination, e.g. ctrl+alt")
	doubleTapFlag := flag.String("doubletap", "", "double-tap this key to toggle instead of a combo")
	langFlag := flag.String("lang", "", "comma-separated language codes; first is the default")
	maxTimeFlag := flag.Float64("maxtime", -1, "auto-stop recordings after this many seconds (0 = unlimited)")
	deviceFlag := flag.String("device", "", "capture device name substring")
	setupFlag := flag.Bool("setup", false, "pick the microphone interactively at startup")
	listModelsFlag := flag.Bool("list-models", false, "print known model names and exit")
	doctorFlag := flag.Bool("doctor", false, "run interactive health checks and exit")
	wavFlag := flag.String("wav", "", "transcribe a WAV file headlessly instead of the microphone")
	logPathFlag := flag.String("logpath", "", "log directory (overrides DICTATE_LOG_PATH)")
	notifyFlag := flag.Bool("notify", false, "raise desktop notifications for results and errors")
	copyFlag := flag.Bool("copy", false, "also copy transcriptions to the clipboard")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("dictate %s\n", version)
		return
	}
	if *listModelsFlag {
		transcriber.PrintModels(os.Stdout)
		return
	}

	pi := platform.Detect()

	cfg, err := config.Load(pi)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg, flag.CommandLine, *modelFlag, *serverFlag, *hotkeyFlag,
		*doubleTapFlag, *langFlag, *maxTimeFlag, *notifyFlag, *copyFlag)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logDir, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logDir)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "cannot open logs in %s: %v\n", logDir, err)
		os.Exit(1)
	}
	defer log.Close()
	initCrashLog()

	if *doctorFlag {
		os.Exit(doctor.Run(&cfg))
	}

	if *wavFlag != "" {
		os.Exit(runWAVMode(&cfg, *wavFlag))
	}

	lock, err := acquireInstanceLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer lock.Close()

	os.Exit(run(&cfg, *deviceFlag, *setupFlag))
}

// applyFlags layers explicitly-set command-line flags over the file config.
// Boolean flags are checked against fs.Visit so an unset flag never clobbers
// a file setting.
func applyFlags(cfg *config.Config, fs *flag.FlagSet, model, server, hotkey,
	doubleTap, lang string, maxTime float64, notify, copyToClipboard bool) {
	if model != "" {
		cfg.Model = model
	}
	if server != "" {
		cfg.ServerURL = server
	}
	if hotkey != "" {
		cfg.Hotkey = hotkey
		cfg.DoubleTapKey = ""
	}
	if doubleTap != "" {
		cfg.DoubleTapKey = doubleTap
	}
	if langs := config.ParseLanguages(lang); len(langs) > 0 {
		cfg.SetLanguages(langs)
	}
	if maxTime >= 0 {
		cfg.MaxRecordingTime = time.Duration(maxTime * float64(time.Second))
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "notify":
			cfg.Notify = notify
		case "copy":
			cfg.CopyToClipboard = copyToClipboard
		}
	})
}

func run(cfg *config.Config, deviceQuery string, setup bool) int {
	model, err := transcriber.New(cfg.Model, cfg.ServerURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	defer model.Close()
	if srv, ok := model.(*transcriber.Server); ok {
		srv.Warm()
	}
	asr := transcriber.NewClient(model, cfg.SampleRate)

	audioCtx, err := audio.NewContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot initialize audio: %v\n", err)
		return 1
	}
	defer audioCtx.Close()

	var device *audio.DeviceInfo
	if setup {
		device, err = audio.SelectDevice(audioCtx)
	} else {
		device, err = audio.FindDevice(audioCtx, deviceQuery)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "device selection failed: %v\n", err)
		return 1
	}
	if device != nil && audio.IsBluetooth(device.Name) {
		fmt.Println("[!] Bluetooth microphone detected; expect reduced audio quality.")
	}

	captureCfg := audio.CaptureConfig{
		SampleRate: uint32(cfg.SampleRate),
		Channels:   1,
		FrameSize:  uint32(cfg.FrameSize),
	}
	rec := audio.NewRecorder(audioCtx, device, captureCfg, cfg.MaxRecordingTime)
	rec.EnableSilenceWatchdog()

	injector, err := inject.New(cfg.Platform, cfg.CharDelay)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	ui := newCLIUI(cfg.Notify)
	app := newApp(cfg, rec, asr, injector, ui)

	listener, gesture, err := buildListener(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if err := listener.Start(app.Toggle); err != nil {
		fmt.Fprintf(os.Stderr, "cannot listen for hotkeys: %v\n", err)
		if hint, derr := keyboard.Diagnose(); derr == nil && hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		return 1
	}

	log.SessionStart(model.ModelName(), cfg.Model, gesture)
	fmt.Printf("dictate %s ready. %s to toggle recording, Ctrl+C to quit.\n", version, gesture)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nshutting down")
	listener.Stop()
	app.Shutdown()
	log.SessionEnd(app.Utterances())
	return 0
}

// buildListener picks the double-tap or combo gesture per config and returns
// a human-readable description of it.
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
