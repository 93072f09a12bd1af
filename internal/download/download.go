// Package download streams release artifacts into memory with cooperative
// cancellation and chunk-granular progress reporting.
package download

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sdkmhq/sdkm/internal/toolchain"
)

// chunkSize is the fixed read unit. Cancellation is polled between chunks,
// so this also bounds cancellation latency.
const chunkSize = 8 * 1024

// ProgressFunc receives the download fraction in [0, 1]. It is called with 0
// when the server does not report a content length.
type ProgressFunc func(fraction float64)

// Downloader fetches artifacts over HTTP. Archives are buffered entirely in
// memory; there is no disk spooling and no resume support.
type Downloader struct {
	Client *http.Client

	// ProgressDelay is slept after each progress report so updates stay
	// visually perceptible instead of flooding the sink.
	ProgressDelay time.Duration
}

// NewDownloader creates a downloader with the given HTTP client.
func NewDownloader(client *http.Client) *Downloader {
	return &Downloader{
		Client:        client,
		ProgressDelay: 10 * time.Millisecond,
	}
}

// Fetch downloads url into memory in fixed-size chunks. Before each chunk it
// polls token; once cancelled it discards everything read so far and returns
// ErrCancelled. onProgress may be nil.
func (d *Downloader) Fetch(ctx context.Context, url string, token *toolchain.CancelToken, onProgress ProgressFunc) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	total := resp.ContentLength
	log.Debug().Str("url", url).Int64("content_length", total).Msg("download started")

	var buf bytes.Buffer
	if total > 0 {
		buf.Grow(int(total))
	}

	chunk := make([]byte, chunkSize)
	var read int64
	for {
		if token.Cancelled() {
			log.Info().Str("url", url).Msg("download cancelled")
			return nil, toolchain.ErrCancelled
		}

		n, err := resp.Body.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			read += int64(n)

			fraction := 0.0
			if total > 0 {
				fraction = float64(read) / float64(total)
			}
			if onProgress != nil {
				onProgress(fraction)
			}
			if d.ProgressDelay > 0 {
				time.Sleep(d.ProgressDelay)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading download stream: %w", err)
		}
	}

	log.Debug().Str("url", url).Int64("bytes", read).Msg("download complete")
	return buf.Bytes(), nil
}
