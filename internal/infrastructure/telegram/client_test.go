package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finman/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(serverURL, token string) *Client {
	return NewClient(config.TelegramConfig{
		APIURL:  serverURL,
		Token:   token,
		Timeout: time.Second,
	}, zap.NewNop())
}

func TestClient_SendMessage(t *testing.T) {
	t.Run("posts to the bot endpoint with chat id and text", func(t *testing.T) {
		var gotPath string
		var gotBody sendMessageRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_ = json.NewEncoder(w).Encode(apiResponse{OK: true})
		}))
		defer server.Close()

		client := newTestClient(server.URL, "bot-token")
		err := client.SendMessage(context.Background(), 123456, "hello")

		require.NoError(t, err)
		assert.Equal(t, "/botbot-token/sendMessage", gotPath)
		assert.Equal(t, int64(123456), gotBody.ChatID)
		assert.Equal(t, "hello", gotBody.Text)
		assert.Equal(t, "Markdown", gotBody.ParseMode)
	})

	t.Run("maps API rejection to ErrSendFailed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(apiResponse{OK: false, ErrorCode: 400, Description: "chat not found"})
		}))
		defer server.Close()

		client := newTestClient(server.URL, "bot-token")
		err := client.SendMessage(context.Background(), 1, "hello")

		assert.ErrorIs(t, err, ErrSendFailed)
		assert.Contains(t, err.Error(), "chat not found")
	})

	t.Run("fails without a token", func(t *testing.T) {
		client := newTestClient("https://api.telegram.org", "")

		err := client.SendMessage(context.Background(), 1, "hello")

		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.False(t, client.Enabled())
	})

	t.Run("rejects malformed responses", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>gateway error</html>"))
		}))
		defer server.Close()

		client := newTestClient(server.URL, "bot-token")
		err := client.SendMessage(context.Background(), 1, "hello")

		assert.Error(t, err)
	})
}
