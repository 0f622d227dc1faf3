// Package together is the HTTP client for the Together.ai image generation
// API. It translates GenerationRequests into API calls, downloads the
// resulting image, and classifies failures so the pipeline can retry the
// transient ones.
package together

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kubux/ai-image-studio/internal/generate"
	"github.com/kubux/ai-image-studio/internal/model"
)

const (
	DefaultBaseURL        = "https://api.together.xyz"
	generationsPath       = "/v1/images/generations"
	DefaultRequestTimeout = 120 * time.Second

	// Responses above this size are refused rather than buffered.
	maxImageBytes = 64 << 20
)

// Client talks to the Together.ai image endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a client for the given API key. An empty baseURL selects
// the public endpoint.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// apiRequest is the wire form of a generation call.
type apiRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Steps          int    `json:"steps"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

// apiResponse is the wire form of the reply.
type apiResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate submits the request and returns the raw image bytes. Failures are
// returned as *generate.ServiceError with transient/fatal classification.
func (c *Client) Generate(ctx context.Context, req *model.GenerationRequest) ([]byte, error) {
	body, err := json.Marshal(apiRequest{
		Model:          req.Model,
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		ImageURL:       req.ContextImageURL,
		Width:          req.Width,
		Height:         req.Height,
		Steps:          req.Steps,
		N:              1,
		ResponseFormat: "url",
	})
	if err != nil {
		return nil, generate.NewFatalError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generationsPath, bytes.NewReader(body))
	if err != nil {
		return nil, generate.NewFatalError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	payload, err := readBody(resp.Body, maxImageBytes)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, payload)
	}

	var parsed apiResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, generate.NewTransientError(fmt.Errorf("decoding response: %w", err))
	}
	if parsed.Error != nil {
		return nil, generate.NewFatalError(fmt.Errorf("%s: %s", parsed.Error.Type, parsed.Error.Message))
	}
	if len(parsed.Data) == 0 {
		return nil, generate.NewTransientError(errors.New("empty response data"))
	}

	if b64 := parsed.Data[0].B64JSON; b64 != "" {
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, generate.NewTransientError(fmt.Errorf("decoding inline image: %w", err))
		}
		return data, nil
	}

	return c.fetchImage(ctx, parsed.Data[0].URL)
}

// fetchImage downloads the generated image from the short-lived result URL.
func (c *Client) fetchImage(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, generate.NewTransientError(errors.New("response carried neither url nor inline image"))
	}

	logrus.WithField("url", url).Debug("fetching generated image")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, generate.NewFatalError(err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, nil)
	}

	data, err := readBody(resp.Body, maxImageBytes)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, generate.NewTransientError(errors.New("empty image body"))
	}
	return data, nil
}

// readBody buffers at most limit bytes and refuses anything larger; a
// truncated image must never be mistaken for a valid one.
func readBody(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, classifyTransportError(err)
	}
	if int64(len(data)) > limit {
		return nil, generate.NewFatalError(fmt.Errorf("response exceeds %d bytes", limit))
	}
	return data, nil
}

// classifyStatus maps an HTTP status to the retry taxonomy: client errors
// are fatal, rate limiting and server errors are transient.
func classifyStatus(status int, body []byte) error {
	msg := fmt.Errorf("unexpected status %d", status)
	if len(body) > 0 {
		var parsed apiResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
			msg = fmt.Errorf("status %d: %s", status, parsed.Error.Message)
		}
	}

	switch {
	case status == http.StatusRequestTimeout,
		status == http.StatusTooManyRequests,
		status >= 500:
		return generate.NewTransientError(msg)
	default:
		return generate.NewFatalError(msg)
	}
}

// classifyTransportError treats network-level failures (timeouts, resets,
// truncated bodies) as transient; context cancellation passes through
// untouched so the pipeline sees it as cancellation, not failure.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return generate.NewTransientError(fmt.Errorf("request timed out: %w", err))
	}
	return generate.NewTransientError(err)
}
