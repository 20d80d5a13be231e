package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Post(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/echo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Key"))
		_, _ = w.Write([]byte(`{"text":"پاسخ"}`))
	}))
	defer srv.Close()

	c := New("test", srv.URL+"/", time.Second, http.Header{"X-Key": {"secret"}})
	assert.Equal(t, srv.URL, c.BaseURL())

	var out struct {
		Text string `json:"text"`
	}
	require.NoError(t, c.Post(context.Background(), "/v1/echo", map[string]string{"q": "x"}, &out))
	assert.Equal(t, "پاسخ", out.Text)
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		request bool
	}{
		{"nested envelope", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, "bad key", true},
		{"plain envelope", http.StatusNotFound, `{"error":"model not found"}`, "model not found", true},
		{"raw body", http.StatusBadGateway, "upstream down\n", "upstream down", false},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`, "slow down", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := New("test", srv.URL, time.Second, nil).Get(context.Background(), "/")

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.Status)
			assert.Equal(t, tt.message, se.Message)
			assert.Equal(t, tt.request, IsRequestError(fmt.Errorf("wrapped: %w", err)))
		})
	}
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	var out map[string]any
	err := New("test", srv.URL, time.Second, nil).Post(context.Background(), "/", nil, &out)
	assert.ErrorContains(t, err, "test: decoding response")
	assert.False(t, IsRequestError(err))
}

func TestIsRequestError_Plain(t *testing.T) {
	assert.False(t, IsRequestError(errors.New("boom")))
	assert.False(t, IsRequestError(nil))
}
