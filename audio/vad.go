package audio

import (
	"sync"

	webrtcvad "github.com/maxhawkins/go-webrtcvad"
)

const (
	vadMode     = 3 // most aggressive: fewest false positives
	vadFrameMs  = 20
	vadDebounce = 3 // consecutive speech frames to confirm voice
)

// vadProcessor classifies incoming PCM16 frames as speech or not. It buffers
// arbitrary chunk sizes into the fixed frame length the WebRTC VAD wants.
type vadProcessor struct {
	vad        *webrtcvad.VAD
	sampleRate int
	frameBytes int

	mu           sync.Mutex
	buf          []byte
	voiced       bool
	speechRun    int
	totalFrames  int
	speechFrames int
	tickTotal    int
	tickSpeech   int
}

func newVADProcessor(sampleRate int) (*vadProcessor, error) {
	v, err := webrtcvad.New()
	if err != nil {
		return nil, err
	}
	if err := v.SetMode(vadMode); err != nil {
		return nil, err
	}
	return &vadProcessor{
		vad:        v,
		sampleRate: sampleRate,
		frameBytes: sampleRate * vadFrameMs / 1000 * 2,
	}, nil
}

func (p *vadProcessor) Process(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buf = append(p.buf, data...)
	for len(p.buf) >= p.frameBytes {
		frame := p.buf[:p.frameBytes]
		p.buf = p.buf[p.frameBytes:]

		active, err := p.vad.Process(p.sampleRate, frame)
		if err != nil {
			continue
		}
		p.totalFrames++
		if active {
			p.speechFrames++
			p.speechRun++
			if p.speechRun >= vadDebounce {
				p.voiced = true
			}
		} else {
			p.speechRun = 0
		}
	}
}

// VoiceDetected reports whether sustained speech has been seen at any point.
func (p *vadProcessor) VoiceDetected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.voiced
}

const speechTickRatio = 0.10

// HasSpeechTick reports whether the frames since the previous call were at
// least 10% speech. An empty interval counts as silence.
func (p *vadProcessor) HasSpeechTick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := p.totalFrames - p.tickTotal
	s := p.speechFrames - p.tickSpeech
	p.tickTotal, p.tickSpeech = p.totalFrames, p.speechFrames
	if t == 0 {
		return false
	}
	return float64(s)/float64(t) >= speechTickRatio
}
