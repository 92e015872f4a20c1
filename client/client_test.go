package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"id": 42, "display_name": "Ada"},
		})
	}))
	defer server.Close()

	var out struct {
		ID          int    `json:"id"`
		DisplayName string `json:"display_name"`
	}
	api := New(server.URL)
	require.NoError(t, api.Get(context.Background(), "/api/users/me", &out))
	assert.Equal(t, 42, out.ID)
	assert.Equal(t, "Ada", out.DisplayName)
}

func TestDoSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	api := New(server.URL, WithTokenProvider(func(ctx context.Context) (string, error) {
		return "tok-123", nil
	}))
	require.NoError(t, api.Get(context.Background(), "/api/users/me", nil))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDoOmitsHeaderWhenTokenEmpty(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	api := New(server.URL, WithTokenProvider(func(ctx context.Context) (string, error) {
		return "", nil
	}))
	require.NoError(t, api.Get(context.Background(), "/api/tutors", nil))
	assert.Empty(t, gotAuth)
}

func TestDoDecodesErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   map[string]string{"code": "CONFLICT", "message": "already exists"},
		})
	}))
	defer server.Close()

	api := New(server.URL)
	err := api.Post(context.Background(), "/api/enrollments", map[string]int{"tutor_id": 1}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	assert.Equal(t, "already exists", apiErr.Message)
}

func TestDoRejectsUnsuccessfulEnvelopeOn200(t *testing.T) {
	// A body claiming failure is an error even with a 2xx status.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false})
	}))
	defer server.Close()

	api := New(server.URL)
	err := api.Get(context.Background(), "/api/guides", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
}
