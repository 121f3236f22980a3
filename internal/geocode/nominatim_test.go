package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "-33.92", r.URL.Query().Get("lat"))
		assert.Equal(t, "18.42", r.URL.Query().Get("lon"))
		assert.Equal(t, "TestShop/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name": "12 Main St, Cape Town"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, UserAgent: "TestShop/1.0", Timeout: time.Second})

	addr, err := c.Reverse(context.Background(), "-33.92", "18.42")
	require.NoError(t, err)
	assert.Equal(t, "12 Main St, Cape Town", addr)
}

func TestReverse_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, UserAgent: "TestShop/1.0", Timeout: time.Second})

	_, err := c.Reverse(context.Background(), "0", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 429")
}

func TestReverse_NoDisplayName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, UserAgent: "TestShop/1.0", Timeout: time.Second})

	addr, err := c.Reverse(context.Background(), "0", "0")
	require.NoError(t, err)
	assert.Empty(t, addr)
}
