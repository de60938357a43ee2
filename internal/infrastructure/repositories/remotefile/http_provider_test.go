//go:build unit

package remotefile_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitpuller/internal/infrastructure/repositories/remotefile"
)

func TestHTTPProviderFetch(t *testing.T) {
	t.Parallel()

	t.Run("should download the file with the bearer token and report progress", func(t *testing.T) {
		t.Parallel()

		// given
		body := strings.Repeat("x", 600*1024)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer secret" || r.URL.Path != "/files/doc.bin" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
			_, _ = w.Write([]byte(body))
		}))
		defer server.Close()
		provider := remotefile.NewHTTPProvider(server.URL+"/files/", "secret")

		// when
		var out bytes.Buffer
		var reported []int
		err := provider.Fetch(context.Background(), "doc.bin", &out, func(percent int) {
			reported = append(reported, percent)
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, body, out.String())
		require.NotEmpty(t, reported)
		assert.Equal(t, 100, reported[len(reported)-1])
		assert.IsNonDecreasing(t, reported)
		assert.Equal(t, "http", provider.Name())
	})

	t.Run("should accept an absolute URL without a base", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("hello"))
		}))
		defer server.Close()
		provider := remotefile.NewHTTPProvider("", "")

		// when
		var out bytes.Buffer
		err := provider.Fetch(context.Background(), server.URL+"/any", &out, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "hello", out.String())
	})

	t.Run("should report a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()
		provider := remotefile.NewHTTPProvider(server.URL, "")

		// when
		err := provider.Fetch(context.Background(), "absent", &bytes.Buffer{}, nil)

		// then
		require.ErrorIs(t, err, remotefile.ErrFileNotFound)
	})

	t.Run("should report rejected credentials", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()
		provider := remotefile.NewHTTPProvider(server.URL, "wrong")

		// when
		err := provider.Fetch(context.Background(), "doc", &bytes.Buffer{}, nil)

		// then
		require.ErrorIs(t, err, remotefile.ErrUnauthorized)
	})

	t.Run("should reject a relative identifier without a base URL", func(t *testing.T) {
		t.Parallel()

		// given
		provider := remotefile.NewHTTPProvider("", "")

		// when
		err := provider.Fetch(context.Background(), "doc", &bytes.Buffer{}, nil)

		// then
		require.Error(t, err)
	})
}
