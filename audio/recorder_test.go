package audio

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

func pcm16(samples ...int16) []byte {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	return data
}

func testConfig() CaptureConfig {
	return CaptureConfig{SampleRate: 16000, Channels: 1, FrameSize: 1024}
}

func TestRecorderRejectsConcurrentStart(t *testing.T) {
	ctx := NewFakeContextPCM(nil, 16000)
	r := NewRecorder(ctx, nil, testConfig(), 0)

	if err := r.Start(nil); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := r.Start(nil); !errors.Is(err, ErrAlreadyRecording) {
		t.Fatalf("second start: got %v, want ErrAlreadyRecording", err)
	}
	r.Stop()
	if r.IsRecording() {
		t.Fatal("still recording after stop")
	}
}

func TestRecorderStopWhileIdleIsNoOp(t *testing.T) {
	ctx := NewFakeContextPCM(nil, 16000)
	r := NewRecorder(ctx, nil, testConfig(), 0)

	r.Stop()
	r.Stop()
	if r.IsRecording() {
		t.Fatal("idle recorder reports recording")
	}
}

func TestRecorderNormalizesSamples(t *testing.T) {
	ctx := NewFakeContextPCM(nil, 16000)
	r := NewRecorder(ctx, nil, testConfig(), 0)

	var got []float32
	calls := 0
	if err := r.Start(func(buf []float32) {
		calls++
		got = buf
	}); err != nil {
		t.Fatalf("start: %v", err)
	}

	ctx.Last.Feed(pcm16(-32768, 0, 16384, 32767))
	r.Stop()

	if calls != 1 {
		t.Fatalf("callback fired %d times, want 1", calls)
	}
	want := []float32{-1.0, 0.0, 0.5, 32767.0 / 32768.0}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: got %v, want %v", i, got[i], want[i])
		}
	}
	for _, s := range got {
		if s < -1.0 || s > 1.0 {
			t.Errorf("sample %v outside [-1, 1]", s)
		}
	}
}

func TestRecorderSkipsCallbackWithoutSamples(t *testing.T) {
	ctx := NewFakeContextPCM(nil, 16000)
	r := NewRecorder(ctx, nil, testConfig(), 0)

	called := false
	if err := r.Start(func([]float32) { called = true }); err != nil {
		t.Fatalf("start: %v", err)
	}
	r.Stop()

	if called {
		t.Fatal("callback fired with empty buffer")
	}
}

func TestRecorderDeviceFailureResetsState(t *testing.T) {
	ctx := NewFakeContextPCM(nil, 16000)
	ctx.StartErr = errors.New("device unavailable")
	r := NewRecorder(ctx, nil, testConfig(), 0)

	called := false
	if err := r.Start(func([]float32) { called = true }); err != nil {
		t.Fatalf("start should swallow device errors, got %v", err)
	}
	if r.IsRecording() {
		t.Fatal("recording after device failure")
	}
	r.Stop()
	if called {
		t.Fatal("callback fired after device failure")
	}

	// A later start must work again once the device recovers.
	ctx.StartErr = nil
	if err := r.Start(nil); err != nil {
		t.Fatalf("restart: %v", err)
	}
	r.Stop()
}

func TestRecorderMaxDurationAutoStop(t *testing.T) {
	ctx := NewFakeContextPCM(nil, 16000)
	r := NewRecorder(ctx, nil, testConfig(), 30*time.Millisecond)

	done := make(chan []float32, 2)
	if err := r.Start(func(buf []float32) { done <- buf }); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctx.Last.Feed(pcm16(100, 200, 300))

	select {
	case buf := <-done:
		if len(buf) != 3 {
			t.Fatalf("got %d samples, want 3", len(buf))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("auto-stop never fired")
	}
	if r.IsRecording() {
		t.Fatal("still recording after auto-stop")
	}

	// A manual stop afterwards must not fire the callback again.
	r.Stop()
	select {
	case <-done:
		t.Fatal("callback fired twice")
	case <-time.After(50 * time.Millisecond):
	}
}
