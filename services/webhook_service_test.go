package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookSend(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	webhook := NewWebhookService(server.URL)
	require.NoError(t, webhook.Send(context.Background(), "hello"))
	assert.Equal(t, "hello", received["content"])
}

func TestWebhookSendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	webhook := NewWebhookService(server.URL)
	err := webhook.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestWebhookUnconfiguredIsNoOp(t *testing.T) {
	webhook := NewWebhookService("")
	assert.False(t, webhook.IsConfigured())
	assert.NoError(t, webhook.Send(context.Background(), "dropped"))
}

func TestWebhookSupportMessageFormat(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	webhook := NewWebhookService(server.URL)
	require.NoError(t, webhook.SendSupportMessage(context.Background(), "Ada", "ada@example.com", "Help me"))

	assert.Contains(t, received["content"], "New Support Message")
	assert.Contains(t, received["content"], "Ada")
	assert.Contains(t, received["content"], "ada@example.com")
	assert.Contains(t, received["content"], "Help me")
}
