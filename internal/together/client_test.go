package together

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubux/ai-image-studio/internal/generate"
	"github.com/kubux/ai-image-studio/internal/model"
)

func testRequest() *model.GenerationRequest {
	return &model.GenerationRequest{
		Prompt: "a lighthouse at dusk",
		Model:  "black-forest-labs/FLUX.1-schnell",
		Width:  512,
		Height: 512,
		Steps:  28,
	}
}

func TestGenerateInlineImage(t *testing.T) {
	img := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/images/generations", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a lighthouse at dusk", body["prompt"])
		assert.Equal(t, float64(512), body["width"])

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(img)}},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, time.Second)
	data, err := c.Generate(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, img, data)
}

func TestGenerateFollowsResultURL(t *testing.T) {
	img := []byte("fake image bytes")
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/images/generations":
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]string{{"url": srv.URL + "/result.png"}},
			})
		case "/result.png":
			w.Write(img)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, time.Second)
	data, err := c.Generate(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, img, data)
}

func TestGenerateClassifiesStatuses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind generate.ErrorKind
	}{
		{"unauthorized is fatal", http.StatusUnauthorized, generate.ErrFatal},
		{"bad request is fatal", http.StatusBadRequest, generate.ErrFatal},
		{"rate limit is transient", http.StatusTooManyRequests, generate.ErrTransient},
		{"bad gateway is transient", http.StatusBadGateway, generate.ErrTransient},
		{"internal error is transient", http.StatusInternalServerError, generate.ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprintf(w, `{"error":{"message":"nope","type":"test"}}`)
			}))
			defer srv.Close()

			c := NewClient("test-key", srv.URL, time.Second)
			_, err := c.Generate(context.Background(), testRequest())

			var svcErr *generate.ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tt.wantKind, svcErr.Kind)
			assert.Contains(t, svcErr.Error(), "nope")
		})
	}
}

func TestGenerateEmptyDataIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, time.Second)
	_, err := c.Generate(context.Background(), testRequest())

	var svcErr *generate.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, generate.ErrTransient, svcErr.Kind)
}

func TestGenerateContextCancellationPassesThrough(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewClient("test-key", srv.URL, 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.Generate(ctx, testRequest())

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "cancellation must not be wrapped as a service error")

	var svcErr *generate.ServiceError
	assert.False(t, errors.As(err, &svcErr))
}

func TestReadBodyRefusesOversizedResponse(t *testing.T) {
	data, err := readBody(strings.NewReader("12345678"), 16)
	require.NoError(t, err)
	assert.Equal(t, []byte("12345678"), data)

	// Exactly at the limit is still accepted.
	data, err = readBody(strings.NewReader(strings.Repeat("x", 16)), 16)
	require.NoError(t, err)
	assert.Len(t, data, 16)

	// One byte over must be refused, never truncated to a "valid" body.
	_, err = readBody(strings.NewReader(strings.Repeat("x", 17)), 16)
	require.Error(t, err)

	var svcErr *generate.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, generate.ErrFatal, svcErr.Kind)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestGenerateConnectionErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient("test-key", srv.URL, time.Second)
	_, err := c.Generate(context.Background(), testRequest())

	var svcErr *generate.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, generate.ErrTransient, svcErr.Kind)
}
