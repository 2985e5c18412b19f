package hf

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/matchit/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, payload string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req inferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Inputs)

		w.WriteHeader(status)
		w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestEmbedText(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		payload string
		want    embedding.Vector
	}{
		{"flat", `[0.1, 0.2, 0.3]`, embedding.Vector{0.1, 0.2, 0.3}},
		{"nested", `[[0.1, 0.2], [0.3]]`, embedding.Vector{0.1, 0.2, 0.3}},
		{"structured", `{"last_hidden_state": [[0.5, 0.25]]}`, embedding.Vector{0.5, 0.25}},
		{"opaque", `{"b": [0.2], "a": [0.1]}`, embedding.Vector{0.1, 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newServer(t, http.StatusOK, tt.payload)
			embedder, err := NewEmbedder(server.URL)
			require.NoError(t, err)

			vec, err := embedder.EmbedText(ctx, "color: red")
			require.NoError(t, err)
			assert.Equal(t, tt.want, vec)
		})
	}

	t.Run("no numeric data yields nil without error", func(t *testing.T) {
		server := newServer(t, http.StatusOK, `{"error": "model is loading"}`)
		embedder, err := NewEmbedder(server.URL)
		require.NoError(t, err)

		vec, err := embedder.EmbedText(ctx, "color: red")
		require.NoError(t, err)
		assert.Nil(t, vec)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		server := newServer(t, http.StatusServiceUnavailable, `{"error": "overloaded"}`)
		embedder, err := NewEmbedder(server.URL)
		require.NoError(t, err)

		_, err = embedder.EmbedText(ctx, "color: red")
		assert.Error(t, err)
	})

	t.Run("empty endpoint rejected", func(t *testing.T) {
		_, err := NewEmbedder("")
		assert.Error(t, err)
	})
}

func TestEmbedTextSendsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`[0.1]`))
	}))
	t.Cleanup(server.Close)

	embedder, err := NewEmbedder(server.URL, WithToken("secret"))
	require.NoError(t, err)

	_, err = embedder.EmbedText(context.Background(), "text")
	require.NoError(t, err)
}
