package embedding

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPEmbed(t *testing.T) {
	var gotBody embedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		io.WriteString(w, `{"vector":[0.1,0.2,0.3]}`)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)

	vec, err := client.Embed(context.Background(), "lightweight laptop")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, "lightweight laptop", gotBody.Text)
}

func TestHTTPEmbedUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)

	_, err := client.Embed(context.Background(), "q")

	var embErr *Error
	require.ErrorAs(t, err, &embErr)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPEmbedEmptyVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"vector":[]}`)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)

	_, err := client.Embed(context.Background(), "q")

	var embErr *Error
	require.ErrorAs(t, err, &embErr)
	assert.Contains(t, err.Error(), "empty vector")
}

func TestHTTPEmbedTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewHTTPClient(server.URL, time.Second)

	_, err := client.Embed(context.Background(), "q")

	var embErr *Error
	require.ErrorAs(t, err, &embErr)
}
