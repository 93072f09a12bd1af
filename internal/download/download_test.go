package download

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdkmhq/sdkm/internal/toolchain"
)

func newTestDownloader(server *httptest.Server) *Downloader {
	d := NewDownloader(server.Client())
	d.ProgressDelay = 0
	return d
}

func TestFetch(t *testing.T) {
	payload := bytes.Repeat([]byte("abcdefgh"), 4096) // 32 KiB, several chunks
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The payload is large enough that net/http would otherwise switch
		// to chunked encoding and hide the length.
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	var fractions []float64
	d := newTestDownloader(server)
	data, err := d.Fetch(context.Background(), server.URL, toolchain.NewCancelToken(), func(f float64) {
		fractions = append(fractions, f)
	})
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	require.NotEmpty(t, fractions)
	assert.InDelta(t, 1.0, fractions[len(fractions)-1], 1e-9)
	for i := 1; i < len(fractions); i++ {
		assert.GreaterOrEqual(t, fractions[i], fractions[i-1], "progress must not decrease")
	}
}

func TestFetchUnknownContentLength(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		// Chunked response, no Content-Length header.
		_, _ = w.Write(bytes.Repeat([]byte("x"), 16*1024))
		flusher.Flush()
	}))
	defer server.Close()

	var fractions []float64
	d := newTestDownloader(server)
	data, err := d.Fetch(context.Background(), server.URL, toolchain.NewCancelToken(), func(f float64) {
		fractions = append(fractions, f)
	})
	require.NoError(t, err)
	assert.Len(t, data, 16*1024)

	for _, f := range fractions {
		assert.Zero(t, f, "unknown length reports indeterminate progress")
	}
}

func TestFetchCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("y"), 64*1024))
	}))
	defer server.Close()

	token := toolchain.NewCancelToken()
	token.Cancel()

	d := newTestDownloader(server)
	data, err := d.Fetch(context.Background(), server.URL, token, nil)
	assert.Nil(t, data, "cancelled fetch discards bytes already read")
	assert.True(t, toolchain.IsCancelled(err))
}

func TestFetchCancelledMidStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("z"), 256*1024))
	}))
	defer server.Close()

	token := toolchain.NewCancelToken()
	d := newTestDownloader(server)

	calls := 0
	_, err := d.Fetch(context.Background(), server.URL, token, func(float64) {
		calls++
		if calls == 2 {
			token.Cancel()
		}
	})
	assert.True(t, toolchain.IsCancelled(err))
}

func TestFetchNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	d := newTestDownloader(server)
	_, err := d.Fetch(context.Background(), server.URL, toolchain.NewCancelToken(), nil)
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestFetchNilProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("small"))
	}))
	defer server.Close()

	d := newTestDownloader(server)
	data, err := d.Fetch(context.Background(), server.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("small"), data)
}
