package webclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NewDefault returns an HTTP client with sane timeouts.
func NewDefault(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// JSONRequest describes a JSON call made through DoJSON.
type JSONRequest struct {
	Method       string
	URL          string
	Headers      map[string]string
	Body         any
	Attempts     int
	InitialDelay time.Duration
}

// DoJSON encodes the body, sends it with retry and returns the raw response body.
// Non-2xx responses surface as *logging.StatusError.
func DoJSON(ctx context.Context, client *http.Client, r JSONRequest) ([]byte, error) {
	if client == nil {
		client = NewDefault(0)
	}
	var payload []byte
	if r.Body != nil {
		var err error
		payload, err = json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("webclient: encode body: %w", err)
		}
	}
	method := r.Method
	if method == "" {
		method = http.MethodPost
	}

	_, body, err := DoWithRetry(ctx, r.Attempts, r.InitialDelay, func() (int, []byte, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, r.URL, reader)
		if err != nil {
			return 0, nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		for k, v := range r.Headers {
			req.Header.Set(k, v)
		}
		resp, err := client.Do(req)
		if err != nil {
			return 0, nil, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return resp.StatusCode, nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return resp.StatusCode, b, fmt.Errorf("status %d", resp.StatusCode)
		}
		return resp.StatusCode, b, nil
	})
	if err != nil {
		return body, err
	}
	return body, nil
}
