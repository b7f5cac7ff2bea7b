package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifyPostsOnce(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"refresh scheduled"}`))
	}))
	defer server.Close()

	Notify(context.Background(), &http.Client{}, server.URL)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNotifySkipsWhenUnconfigured(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	Notify(context.Background(), &http.Client{}, "")
	assert.Equal(t, int32(0), calls.Load())
}

func TestNotifySwallowsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	// must not panic or propagate anything
	Notify(context.Background(), &http.Client{}, server.URL)
}

func TestNotifySwallowsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	Notify(context.Background(), &http.Client{}, url)
}
