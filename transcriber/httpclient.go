package transcriber

import (
	"io"
	"net/http"
	"net/http/httptrace"
	"time"
)

type tracedClient struct {
	client  *http.Client
	warmURL string
}

func newTracedClient(warmURL string) *tracedClient {
	return &tracedClient{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
		warmURL: warmURL,
	}
}

type tracedResponse struct {
	Body       []byte
	StatusCode int
	Header     http.Header

	TTFB       time.Duration
	Total      time.Duration
	ConnReused bool
}

func (c *tracedClient) Do(req *http.Request) (*tracedResponse, error) {
	out := &tracedResponse{}
	var wroteRequest time.Time

	trace := &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			out.ConnReused = info.Reused
		},
		WroteRequest: func(_ httptrace.WroteRequestInfo) {
			wroteRequest = time.Now()
		},
		GotFirstResponseByte: func() {
			out.TTFB = time.Since(wroteRequest)
		},
	}

	req = req.WithContext(httptrace.WithClientTrace(req.Context(), trace))
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	out.Total = time.Since(start)
	out.Body = body
	out.StatusCode = resp.StatusCode
	out.Header = resp.Header
	return out, nil
}

// Warm opens a connection ahead of the first upload so the TCP handshake
// is off the utterance's critical path.
func (c *tracedClient) Warm() {
	req, err := http.NewRequest(http.MethodHead, c.warmURL, nil)
	if err != nil {
		return
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
