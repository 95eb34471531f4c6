// Package transcriber turns captured audio into text. A Model is one ASR
// backend (in-process whisper.cpp or an OpenAI-compatible HTTP server); the
// Client wraps a Model with language-code mapping and result handling.
package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"dictate/log"
)

// Result is one recognized span of speech.
type Result struct {
	Text  string
	Start float64 // seconds
	End   float64
}

// Model is a loaded ASR backend. Infer takes mono float32 samples in
// [-1, 1]; language is a full language name ("Spanish") or "" for
// auto-detect.
type Model interface {
	Infer(ctx context.Context, samples []float32, sampleRate int, language string) ([]Result, error)
	ModelName() string
	Close() error
}

// Client maps user-facing language codes onto a Model and flattens its
// results into the final utterance text.
type Client struct {
	model      Model
	sampleRate int
}

func NewClient(model Model, sampleRate int) *Client {
	return &Client{model: model, sampleRate: sampleRate}
}

func (c *Client) ModelName() string { return c.model.ModelName() }

func (c *Client) Close() error { return c.model.Close() }

// Transcribe runs one utterance through the model. code is a 2-letter
// language code; unknown or empty codes mean auto-detect. Returns "" when
// the model heard nothing.
func (c *Client) Transcribe(ctx context.Context, samples []float32, code string) (string, error) {
	language := LanguageName(code)

	start := time.Now()
	results, err := c.model.Infer(ctx, samples, c.sampleRate, language)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	elapsed := time.Since(start)

	text := ""
	if len(results) > 0 {
		text = strings.TrimSpace(results[0].Text)
	}

	audioSeconds := float64(len(samples)) / float64(c.sampleRate)
	log.Utterance(c.model.ModelName(), language, audioSeconds, float64(elapsed.Milliseconds()), len(text))
	if text != "" {
		log.TranscriptionText(text)
	}
	return text, nil
}

// New builds the backend selected by config: an HTTP client when serverURL
// is set, otherwise the in-process whisper.cpp model at modelPath. Failures
// here are setup errors and come with remediation text.
func New(modelPath, serverURL string) (Model, error) {
	if serverURL != "" {
		return NewServer(serverURL, modelPath), nil
	}
	if modelPath == "" {
		return nil, fmt.Errorf("no model configured: pass -model /path/to/ggml-model.bin or -server http://...")
	}
	path := ResolveModelPath(modelPath)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("model file %s not found: download one with whisper.cpp's download-ggml-model.sh", path)
	}
	return NewWhisperCpp(path)
}
