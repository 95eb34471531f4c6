package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func genTone(freq float64, durationMs int) []byte {
	n := 16000 * durationMs / 1000
	buf := make([]byte, n*2)
	for i := 0; i < n; i++ {
		sample := int16(16000 * math.Sin(2*math.Pi*freq*float64(i)/16000))
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(sample))
	}
	return buf
}

func genSilence(durationMs int) []byte {
	return make([]byte, 16000*durationMs/1000*2)
}

func TestVADSilence(t *testing.T) {
	vp, err := newVADProcessor(16000)
	if err != nil {
		t.Fatal(err)
	}
	vp.Process(genSilence(200))
	if vp.VoiceDetected() {
		t.Error("expected no voice on silence")
	}
	if vp.HasSpeechTick() {
		t.Error("expected silent tick")
	}
}

func TestVADOddChunkSizes(t *testing.T) {
	vp, err := newVADProcessor(16000)
	if err != nil {
		t.Fatal(err)
	}
	// Feed 200ms of silence in 100-byte chunks, unaligned to the 640-byte
	// frame size.
	silence := genSilence(200)
	for i := 0; i < len(silence); i += 100 {
		end := min(i+100, len(silence))
		vp.Process(silence[i:end])
	}
	if vp.VoiceDetected() {
		t.Error("expected no voice on silence with odd chunks")
	}
}

func TestVADEmptyTickIsSilent(t *testing.T) {
	vp, err := newVADProcessor(16000)
	if err != nil {
		t.Fatal(err)
	}
	if vp.HasSpeechTick() {
		t.Error("expected a tick with no frames to read as silence")
	}
}

func TestVADDetectsSpeechTone(t *testing.T) {
	vp, err := newVADProcessor(16000)
	if err != nil {
		t.Fatal(err)
	}
	// A pure tone may or may not classify as speech; only assert that
	// detection is monotonic, never cleared by later silence.
	vp.Process(genTone(440, 200))
	voiced := vp.VoiceDetected()
	vp.Process(genSilence(200))
	if voiced && !vp.VoiceDetected() {
		t.Error("VoiceDetected regressed after silence")
	}
}
