package teams

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aigovern/admin-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(url string) *Client {
	return NewClient(config.NotifyConfig{TeamsWebhookURL: url, TimeoutSeconds: 2}, testLogger())
}

func TestClient_PostCard(t *testing.T) {
	t.Parallel()

	t.Run("posts message card JSON", func(t *testing.T) {
		t.Parallel()

		var received MessageCard
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		card := NewMessageCard("Test card", "Test card")
		card.Text = "hello"

		require.NoError(t, client.PostCard(context.Background(), card))
		assert.Equal(t, "MessageCard", received.Type)
		assert.Equal(t, "Test card", received.Title)
		assert.Equal(t, "hello", received.Text)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		err := client.PostCard(context.Background(), NewMessageCard("t", "t"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("disabled client drops card silently", func(t *testing.T) {
		t.Parallel()

		client := newTestClient("")
		assert.NoError(t, client.PostCard(context.Background(), NewMessageCard("t", "t")))
	})

	t.Run("unreachable webhook is an error", func(t *testing.T) {
		t.Parallel()

		client := newTestClient("http://127.0.0.1:1/hook")
		err := client.PostCard(context.Background(), NewMessageCard("t", "t"))
		assert.Error(t, err)
	})
}
