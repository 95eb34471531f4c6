package transcriber

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"dictate/log"
)

// WhisperCpp runs inference in-process through the whisper.cpp bindings.
// Contexts are not safe for concurrent Process calls, so Infer serializes.
type WhisperCpp struct {
	mu    sync.Mutex
	model whisper.Model
	wctx  whisper.Context
	name  string
}

func NewWhisperCpp(modelPath string) (*WhisperCpp, error) {
	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("loading whisper model %s: %w", modelPath, err)
	}
	wctx, err := model.NewContext()
	if err != nil {
		model.Close()
		return nil, fmt.Errorf("creating whisper context: %w", err)
	}
	wctx.SetTranslate(false)

	name := strings.TrimSuffix(filepath.Base(modelPath), filepath.Ext(modelPath))
	return &WhisperCpp{model: model, wctx: wctx, name: name}, nil
}

func (w *WhisperCpp) ModelName() string { return w.name }

func (w *WhisperCpp) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.model.Close()
}

func (w *WhisperCpp) Infer(ctx context.Context, samples []float32, sampleRate int, language string) ([]Result, error) {
	if sampleRate != whisper.SampleRate {
		return nil, fmt.Errorf("whisper requires %d Hz audio, got %d", whisper.SampleRate, sampleRate)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// whisper_lang_id accepts full names, lowercased.
	lang := "auto"
	if language != "" && w.model.IsMultilingual() {
		lang = strings.ToLower(language)
	}
	if err := w.wctx.SetLanguage(lang); err != nil {
		log.Warnf("language %q not recognized by whisper, using auto-detect", language)
		if err := w.wctx.SetLanguage("auto"); err != nil {
			return nil, fmt.Errorf("setting language: %w", err)
		}
	}

	var segments []Result
	err := w.wctx.Process(samples, nil, func(seg whisper.Segment) {
		segments = append(segments, Result{
			Text:  seg.Text,
			Start: seg.Start.Seconds(),
			End:   seg.End.Seconds(),
		})
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("whisper inference: %w", err)
	}
	if len(segments) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	for i, s := range segments {
		if i > 0 && s.Text != "" {
			sb.WriteString(" ")
		}
		sb.WriteString(strings.TrimSpace(s.Text))
	}
	full := Result{
		Text:  sb.String(),
		Start: segments[0].Start,
		End:   segments[len(segments)-1].End,
	}
	return []Result{full}, nil
}
