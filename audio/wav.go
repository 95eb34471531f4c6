package audio

import (
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// LoadWAV reads a mono 16-bit WAV file and returns its raw little-endian
// PCM bytes plus the sample rate. Used by the fake capture device and the
// doctor checks; live capture never goes through files.
func LoadWAV(path string) ([]byte, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := validateFormat(buf); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	pcm := make([]byte, len(buf.Data)*2)
	for i, s := range buf.Data {
		pcm[i*2] = byte(s)
		pcm[i*2+1] = byte(s >> 8)
	}
	return pcm, buf.Format.SampleRate, nil
}

func validateFormat(buf *gaudio.IntBuffer) error {
	if buf.Format == nil {
		return fmt.Errorf("missing format chunk")
	}
	if buf.Format.NumChannels != 1 {
		return fmt.Errorf("expected mono audio, got %d channels", buf.Format.NumChannels)
	}
	if buf.SourceBitDepth != 16 && buf.SourceBitDepth != 0 {
		return fmt.Errorf("expected 16-bit samples, got %d-bit", buf.SourceBitDepth)
	}
	return nil
}
