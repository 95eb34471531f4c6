package audio

import (
	"encoding/binary"
	"errors"
	"sync"
	"time"

	"dictate/log"
)

// ErrAlreadyRecording is returned by Recorder.Start while a session is
// still open.
var ErrAlreadyRecording = errors.New("recording already in progress")

// Recorder runs one capture session at a time on top of a Context. Samples
// arrive as int16 PCM from the device callback and are accumulated as
// float32 in [-1, 1]; the completion callback receives the whole buffer
// once, after Stop, and only if at least one sample was captured.
type Recorder struct {
	ctx         Context
	device      *DeviceInfo
	config      CaptureConfig
	maxDuration time.Duration

	watchdog bool

	mu          sync.Mutex
	recording   bool
	capture     CaptureDevice
	buf         []float32
	startedAt   time.Time
	maxTimer    *time.Timer
	onComplete  func([]float32)
	vad         *vadProcessor
	silenceStop chan struct{}
}

// NewRecorder wires a Recorder to a capture context. maxDuration of zero
// disables the auto-stop timer.
func NewRecorder(ctx Context, device *DeviceInfo, config CaptureConfig, maxDuration time.Duration) *Recorder {
	return &Recorder{
		ctx:         ctx,
		device:      device,
		config:      config,
		maxDuration: maxDuration,
	}
}

// EnableSilenceWatchdog makes every session monitor the capture for speech.
// A recording that stays silent gets a logged warning after 8 seconds and is
// stopped after 30. Call before the first Start.
func (r *Recorder) EnableSilenceWatchdog() {
	r.watchdog = true
}

// Start opens the capture device and begins accumulating samples. A second
// Start while recording fails with ErrAlreadyRecording. Device failures are
// not surfaced to the caller: the mic being unavailable should not take the
// hotkey loop down, so they are logged and the recorder resets to idle.
func (r *Recorder) Start(onComplete func([]float32)) error {
	r.mu.Lock()
	if r.recording {
		r.mu.Unlock()
		return ErrAlreadyRecording
	}
	r.recording = true
	r.buf = nil
	r.startedAt = time.Now()
	r.onComplete = onComplete
	r.mu.Unlock()

	capture, err := r.ctx.NewCapture(r.device, r.config)
	if err != nil {
		log.Warnf("failed to open capture device: %v", err)
		r.reset()
		return nil
	}

	capture.SetCallback(r.onData)

	if err := capture.Start(); err != nil {
		log.Warnf("failed to start capture device: %v", err)
		capture.ClearCallback()
		capture.Close()
		r.reset()
		return nil
	}

	r.mu.Lock()
	if !r.recording {
		// Stopped while the device was opening.
		r.mu.Unlock()
		capture.ClearCallback()
		capture.Stop()
		capture.Close()
		return nil
	}
	r.capture = capture
	if r.maxDuration > 0 {
		r.maxTimer = time.AfterFunc(r.maxDuration, func() {
			log.Warnf("recording hit the %s limit, stopping", r.maxDuration)
			r.Stop()
		})
	}
	if r.watchdog {
		if vad, err := newVADProcessor(int(r.config.SampleRate)); err != nil {
			log.Warnf("silence watchdog unavailable: %v", err)
		} else {
			r.vad = vad
			r.silenceStop = make(chan struct{})
			go r.watchSilence(vad, r.silenceStop)
		}
	}
	r.mu.Unlock()

	log.Infof("recording started on %s", capture.DeviceName())
	return nil
}

// Stop ends the session, drains the device and delivers the buffer. Calling
// it while idle is a no-op.
func (r *Recorder) Stop() {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return
	}
	r.recording = false
	capture := r.capture
	r.capture = nil
	if r.maxTimer != nil {
		r.maxTimer.Stop()
		r.maxTimer = nil
	}
	vad := r.vad
	r.vad = nil
	if r.silenceStop != nil {
		close(r.silenceStop)
		r.silenceStop = nil
	}
	r.mu.Unlock()

	if vad != nil && !vad.VoiceDetected() {
		log.Info("no speech detected during recording")
	}

	if capture != nil {
		capture.ClearCallback()
		capture.Stop()
		capture.Close()
	}

	r.mu.Lock()
	buf := r.buf
	r.buf = nil
	onComplete := r.onComplete
	r.onComplete = nil
	elapsed := time.Since(r.startedAt)
	r.mu.Unlock()

	log.Infof("recording stopped after %.1fs (%d samples)", elapsed.Seconds(), len(buf))
	if len(buf) > 0 && onComplete != nil {
		onComplete(buf)
	}
}

// IsRecording reports whether a session is open.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Duration reports how long the current session has been running, or zero
// when idle.
func (r *Recorder) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return 0
	}
	return time.Since(r.startedAt)
}

func (r *Recorder) onData(data []byte, frameCount uint32) {
	if frameCount == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return
	}
	for i := 0; i+1 < len(data); i += 2 {
		s := int16(binary.LittleEndian.Uint16(data[i:]))
		r.buf = append(r.buf, float32(s)/32768.0)
	}
	if r.vad != nil {
		r.vad.Process(data)
	}
}

// watchSilence ticks the monitor until the session ends. An auto-stop runs
// the normal Stop path, so the buffer is still delivered.
func (r *Recorder) watchSilence(vad *vadProcessor, stop chan struct{}) {
	ticker := time.NewTicker(silenceTickInterval)
	defer ticker.Stop()
	monitor := newSilenceMonitor()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		switch monitor.Tick(vad.HasSpeechTick()) {
		case silenceWarn:
			log.Warn("no speech detected")
		case silenceWarnClear:
			log.Info("speech resumed")
		case silenceAutoStop:
			log.Warnf("silent for %s, stopping recording", silenceStopAfter)
			r.Stop()
			return
		}
	}
}

func (r *Recorder) reset() {
	r.mu.Lock()
	r.recording = false
	r.buf = nil
	r.onComplete = nil
	r.mu.Unlock()
}
