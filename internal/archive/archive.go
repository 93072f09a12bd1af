// Package archive unpacks release archives into an install directory and
// normalizes away single top-level wrapper directories.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sdkmhq/sdkm/internal/toolchain"
)

// ProgressFunc receives the extraction fraction in [0, 1].
type ProgressFunc func(fraction float64)

// Extractor unpacks one archive kind. The returned topLevel is the name of
// the single wrapping directory the archive put everything under, or "" when
// entries sit directly at the root.
type Extractor interface {
	Extract(data []byte, dest string, token *toolchain.CancelToken, onProgress ProgressFunc) (topLevel string, err error)
}

// ForKind returns the extractor for an archive kind. Raw executables are not
// archives and have no extractor.
func ForKind(kind toolchain.ArchiveKind) (Extractor, error) {
	switch kind {
	case toolchain.ArchiveZip:
		return &ZipExtractor{}, nil
	case toolchain.ArchiveTarGz:
		return &TarExtractor{}, nil
	case toolchain.ArchiveTarXz:
		return &TarExtractor{XZ: true}, nil
	default:
		return nil, fmt.Errorf("unsupported archive kind: %s", kind)
	}
}

// Flatten moves the contents of dest/wrapper up into dest and removes the
// then-empty wrapper, so bin/ and lib/ land directly under the install path.
// A missing wrapper directory is a no-op.
func Flatten(dest, wrapper string) error {
	if wrapper == "" {
		return nil
	}

	wrapped := filepath.Join(dest, wrapper)
	info, err := os.Stat(wrapped)
	if err != nil || !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(wrapped)
	if err != nil {
		return fmt.Errorf("reading wrapper directory: %w", err)
	}
	for _, entry := range entries {
		from := filepath.Join(wrapped, entry.Name())
		to := filepath.Join(dest, entry.Name())
		if err := os.Rename(from, to); err != nil {
			return fmt.Errorf("moving %s: %w", entry.Name(), err)
		}
	}

	if err := os.Remove(wrapped); err != nil {
		return fmt.Errorf("removing wrapper directory: %w", err)
	}
	log.Debug().Str("dir", wrapper).Msg("flattened wrapper directory")
	return nil
}

// safeJoin resolves an archive entry name under dest, rejecting entries that
// would escape it.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name) // #nosec G305 - validated below
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) && target != filepath.Clean(dest) {
		return "", fmt.Errorf("invalid path in archive: %s", name)
	}
	return target, nil
}

// topComponent returns the first path component of an entry name.
func topComponent(name string) string {
	name = strings.TrimPrefix(name, "./")
	if i := strings.IndexAny(name, "/\\"); i >= 0 {
		return name[:i]
	}
	return name
}
