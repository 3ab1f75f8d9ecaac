package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront/internal/domain"
	"storefront/internal/store"
)

func TestHealth(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second, nil)
	require.NoError(t, c.Health(context.Background()))

	healthy = false
	assert.Error(t, c.Health(context.Background()))
}

func TestHealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, nil)
	assert.Error(t, c.Health(context.Background()))
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			_, _ = w.Write([]byte(`[{"id":"1","name":"Tee","price":"9.99"}]`))
		case "/settings":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"db down"}`))
		}
	}))
	defer srv.Close()
	c := New(srv.URL, time.Second, nil)

	var products []domain.Product
	require.NoError(t, c.Fetch(context.Background(), "/products", &products))
	require.Len(t, products, 1)
	assert.Equal(t, "9.99", products[0].Price.String())

	var s domain.Settings
	err := c.Fetch(context.Background(), "/settings", &s)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	var orders []domain.Order
	err = c.Fetch(context.Background(), "/orders", &orders)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "db down")
}

func TestSend(t *testing.T) {
	type seen struct {
		method, path, contentType string
		body                      map[string]any
	}
	var got seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = seen{method: r.Method, path: r.URL.Path, contentType: r.Header.Get("Content-Type")}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &got.body)
		}
		if r.URL.Path == "/orders/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	c := New(srv.URL, time.Second, nil)

	err := c.Send(context.Background(), store.Effect{
		Method: http.MethodPut,
		Path:   "/orders/o1",
		Body:   store.StatusPatch{Status: domain.StatusShipped},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/orders/o1", got.path)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, "Shipped", got.body["status"])

	require.NoError(t, c.Send(context.Background(), store.Effect{Method: http.MethodDelete, Path: "/products/9"}))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Empty(t, got.contentType)

	err = c.Send(context.Background(), store.Effect{Method: http.MethodPut, Path: "/orders/missing", Body: store.StatusPatch{}})
	assert.Error(t, err)
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, 50*time.Millisecond, nil)
	assert.Error(t, c.Health(context.Background()))
}
