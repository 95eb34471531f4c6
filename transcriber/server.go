package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"dictate/log"
)

const defaultServerModel = "Qwen/Qwen3-ASR-0.6B"

// Server posts WAV-encoded utterances to an OpenAI-compatible
// /v1/audio/transcriptions endpoint, such as a local Qwen3-ASR or
// whisper.cpp server.
type Server struct {
	client *tracedClient
	apiURL string
	model  string
}

func NewServer(baseURL, model string) *Server {
	if model == "" {
		model = defaultServerModel
	}
	apiURL := strings.TrimSuffix(baseURL, "/") + "/v1/audio/transcriptions"
	return &Server{
		client: newTracedClient(apiURL),
		apiURL: apiURL,
		model:  model,
	}
}

func (s *Server) ModelName() string { return s.model }

func (s *Server) Close() error { return nil }

// Warm pre-opens the HTTP connection; call it once at startup.
func (s *Server) Warm() { go s.client.Warm() }

type serverResponse struct {
	Text     string `json:"text"`
	Segments []struct {
		Text  string  `json:"text"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"segments"`
}

func (s *Server) Infer(ctx context.Context, samples []float32, sampleRate int, language string) ([]Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(encodeWAV(samples, sampleRate)); err != nil {
		return nil, err
	}

	writer.WriteField("model", s.model)
	writer.WriteField("response_format", "verbose_json")
	if language != "" {
		writer.WriteField("language", language)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ASR server request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ASR server error %d: %s", resp.StatusCode, string(resp.Body))
	}
	log.Infof("server roundtrip: ttfb=%dms total=%dms reused=%t",
		resp.TTFB.Milliseconds(), resp.Total.Milliseconds(), resp.ConnReused)

	var sResp serverResponse
	if err := json.Unmarshal(resp.Body, &sResp); err != nil {
		return nil, fmt.Errorf("ASR server response parse: %w", err)
	}

	if sResp.Text == "" && len(sResp.Segments) == 0 {
		return nil, nil
	}
	result := Result{Text: sResp.Text}
	if len(sResp.Segments) > 0 {
		result.Start = sResp.Segments[0].Start
		result.End = sResp.Segments[len(sResp.Segments)-1].End
	}
	return []Result{result}, nil
}
