package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/config"
)

func TestS3StorePut(t *testing.T) {
	type request struct {
		method      string
		path        string
		contentType string
		body        []byte
	}
	got := make(chan request, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got <- request{method: r.Method, path: r.URL.Path, contentType: r.Header.Get("Content-Type"), body: body}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewS3Store(config.Storage{
		AccessKeyID:     "AKID",
		SecretAccessKey: "secret",
		Endpoint:        srv.URL,
		Bucket:          "files",
		Region:          "us-east-1",
	})

	require.NoError(t, store.Put(context.Background(), "products/a.png", "image/png", []byte("png-bytes")))

	req := <-got
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/files/products/a.png", req.path)
	assert.Equal(t, "image/png", req.contentType)
	assert.Equal(t, []byte("png-bytes"), req.body)
}

func TestS3StorePutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	store := NewS3Store(config.Storage{Endpoint: srv.URL, Bucket: "files", Region: "us-east-1", AccessKeyID: "a", SecretAccessKey: "b"})
	err := store.Put(context.Background(), "products/a.png", "image/png", []byte("x"))
	require.Error(t, err)
}
