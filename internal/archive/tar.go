package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"github.com/sdkmhq/sdkm/internal/toolchain"
)

// Tar streams have no entry count up front. Progress is reported against a
// fixed estimate and capped, so the fraction is approximate but monotonic.
const tarEntryEstimate = 1000.0

// TarExtractor unpacks gzip or xz compressed tar streams.
type TarExtractor struct {
	XZ bool
}

func (e *TarExtractor) Extract(data []byte, dest string, token *toolchain.CancelToken, onProgress ProgressFunc) (string, error) {
	var decoded io.Reader
	if e.XZ {
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("creating xz reader: %w", err)
		}
		decoded = r
	} else {
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("creating gzip reader: %w", err)
		}
		defer func() { _ = r.Close() }()
		decoded = r
	}

	tr := tar.NewReader(decoded)

	var topLevel string
	processed := 0
	for {
		if token.Cancelled() {
			return "", toolchain.ErrCancelled
		}

		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading tar header: %w", err)
		}

		if topLevel == "" && header.Typeflag == tar.TypeDir {
			topLevel = topComponent(header.Name)
		}

		target, err := safeJoin(dest, header.Name)
		if err != nil {
			return "", err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o750); err != nil {
				return "", fmt.Errorf("creating directory: %w", err)
			}
		case tar.TypeReg:
			// #nosec G115 - tar mode bits fit in a FileMode
			if err := writeTarEntry(tr, target, os.FileMode(uint32(header.Mode))); err != nil {
				return "", err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
				return "", fmt.Errorf("creating parent directory: %w", err)
			}
			_ = os.Remove(target)
			if err := os.Symlink(header.Linkname, target); err != nil {
				return "", fmt.Errorf("creating symlink %s: %w", target, err)
			}
		}

		processed++
		if onProgress != nil {
			fraction := float64(processed) / tarEntryEstimate
			if fraction > 1.0 {
				fraction = 1.0
			}
			onProgress(fraction)
		}
	}

	if onProgress != nil {
		onProgress(1.0)
	}
	return topLevel, nil
}

func writeTarEntry(src io.Reader, target string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode) // #nosec G304 - target validated by safeJoin
	if err != nil {
		return fmt.Errorf("creating file %s: %w", target, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, src); err != nil { // #nosec G110 - archives come from pinned vendor endpoints
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}
