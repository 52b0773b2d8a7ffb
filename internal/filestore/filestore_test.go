package filestore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPStore_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the reference", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/files", r.URL.Path)

			file, header, err := r.FormFile("file")
			if !assert.NoError(t, err) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			defer file.Close()
			body, _ := io.ReadAll(file)
			assert.Equal(t, "bag.jpg", header.Filename)
			assert.Equal(t, []byte("jpeg"), body)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ref":"files/123"}`))
		}))
		defer srv.Close()

		s := NewHTTPStore(srv.URL, time.Second, zap.NewNop())
		ref, err := s.Upload(ctx, "bag.jpg", []byte("jpeg"))
		require.NoError(t, err)
		assert.Equal(t, "files/123", ref)
	})

	t.Run("rejected upload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			_, _ = w.Write([]byte(`{"error":"too large"}`))
		}))
		defer srv.Close()

		s := NewHTTPStore(srv.URL, time.Second, zap.NewNop())
		_, err := s.Upload(ctx, "bag.jpg", []byte("jpeg"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("empty reference", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		s := NewHTTPStore(srv.URL, time.Second, zap.NewNop())
		_, err := s.Upload(ctx, "bag.jpg", []byte("jpeg"))
		assert.ErrorIs(t, err, ErrEmptyReference)
	})

	t.Run("empty photo is not sent", func(t *testing.T) {
		s := NewHTTPStore("http://127.0.0.1:1", time.Second, zap.NewNop())
		_, err := s.Upload(ctx, "bag.jpg", nil)
		assert.Error(t, err)
	})
}
