package audio

import (
	"sync"
	"time"
)

const (
	fakeBytesPerFrame = 2 // 16-bit mono
	fakeFrameSize     = 1024
)

// FakeContext replays canned PCM instead of opening a real microphone.
// It backs the headless WAV mode and the package tests.
type FakeContext struct {
	pcm  []byte
	rate int

	// StartErr is copied onto every capture this context opens.
	StartErr error

	// Last is the most recently opened capture, kept so tests can feed
	// it directly.
	Last *FakeCapture
}

// NewFakeContext loads a mono 16-bit WAV file as the capture source.
func NewFakeContext(wavPath string) (*FakeContext, error) {
	pcm, rate, err := LoadWAV(wavPath)
	if err != nil {
		return nil, err
	}
	return &FakeContext{pcm: pcm, rate: rate}, nil
}

// NewFakeContextPCM wraps raw little-endian PCM16 bytes directly.
func NewFakeContextPCM(pcm []byte, rate int) *FakeContext {
	return &FakeContext{pcm: pcm, rate: rate}
}

func (f *FakeContext) Devices() ([]DeviceInfo, error) {
	return []DeviceInfo{{ID: "fake", Name: "fake"}}, nil
}

func (f *FakeContext) Close() {}

// SampleRate reports the rate of the wrapped PCM.
func (f *FakeContext) SampleRate() int { return f.rate }

func (f *FakeContext) NewCapture(_ *DeviceInfo, _ CaptureConfig) (CaptureDevice, error) {
	c := &FakeCapture{pcm: f.pcm, StartErr: f.StartErr}
	f.Last = c
	return c, nil
}

type FakeCapture struct {
	pcm []byte

	// StartErr makes Start fail; tests use it to exercise the
	// device-open failure path.
	StartErr error

	mu       sync.Mutex
	cb       DataCallback
	stopCh   chan struct{}
	feedDone chan struct{}
	starts   int
}

func (f *FakeCapture) SetCallback(cb DataCallback) {
	f.mu.Lock()
	f.cb = cb
	f.mu.Unlock()
}

func (f *FakeCapture) ClearCallback() {
	f.mu.Lock()
	f.cb = nil
	f.mu.Unlock()
}

func (f *FakeCapture) DeviceName() string { return "fake" }

// Starts reports how many times Start succeeded.
func (f *FakeCapture) Starts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

// Feed pushes PCM straight into the registered callback, letting tests
// drive capture deterministically without the background feeder.
func (f *FakeCapture) Feed(data []byte) {
	f.mu.Lock()
	cb := f.cb
	f.mu.Unlock()
	if cb != nil {
		cb(data, uint32(len(data)/fakeBytesPerFrame))
	}
}

func (f *FakeCapture) Start() error {
	if f.StartErr != nil {
		return f.StartErr
	}

	f.mu.Lock()
	f.starts++
	f.stopCh = make(chan struct{})
	f.feedDone = make(chan struct{})
	stopCh, feedDone := f.stopCh, f.feedDone
	f.mu.Unlock()

	chunkBytes := fakeFrameSize * fakeBytesPerFrame

	go func() {
		defer close(feedDone)
		for pos := 0; pos < len(f.pcm); {
			select {
			case <-stopCh:
				return
			case <-time.After(time.Millisecond):
			}
			end := min(pos+chunkBytes, len(f.pcm))
			chunk := make([]byte, end-pos)
			copy(chunk, f.pcm[pos:end])
			f.Feed(chunk)
			pos = end
		}
	}()

	return nil
}

func (f *FakeCapture) Stop() {
	f.mu.Lock()
	stopCh, feedDone := f.stopCh, f.feedDone
	f.mu.Unlock()
	if stopCh == nil {
		return
	}
	select {
	case <-stopCh:
	default:
		close(stopCh)
	}
	<-feedDone
}

func (f *FakeCapture) Close() {}
