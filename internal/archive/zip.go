package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sdkmhq/sdkm/internal/toolchain"
)

// ZipExtractor unpacks zip archives. Zip carries an entry count, so its
// progress fraction is exact.
type ZipExtractor struct{}

func (e *ZipExtractor) Extract(data []byte, dest string, token *toolchain.CancelToken, onProgress ProgressFunc) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing zip archive: %w", err)
	}

	var topLevel string
	total := len(r.File)
	for i, f := range r.File {
		if token.Cancelled() {
			return "", toolchain.ErrCancelled
		}

		if topLevel == "" && f.FileInfo().IsDir() {
			topLevel = topComponent(f.Name)
		}

		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return "", err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o750); err != nil {
				return "", fmt.Errorf("creating directory: %w", err)
			}
		} else {
			if err := writeZipEntry(f, target); err != nil {
				return "", err
			}
		}

		if onProgress != nil {
			onProgress(float64(i+1) / float64(total))
		}
	}

	return topLevel, nil
}

func writeZipEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening entry %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	mode := f.Mode()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode) // #nosec G304 - target validated by safeJoin
	if err != nil {
		return fmt.Errorf("creating file %s: %w", target, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, rc); err != nil { // #nosec G110 - archives come from pinned vendor endpoints
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}
