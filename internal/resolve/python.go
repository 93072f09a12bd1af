package resolve

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

const (
	defaultPythonDownloads = "https://www.python.org/downloads/"
	defaultPythonFTP       = "https://www.python.org/ftp/python"
)

var pythonReleasePattern = regexp.MustCompile(`/ftp/python/(3\.\d+\.\d+)/`)

// PythonResolver locates CPython releases on python.org.
type PythonResolver struct {
	DownloadsPage string
	FTPBase       string
}

// NewPython returns a resolver pointed at python.org.
func NewPython() *PythonResolver {
	return &PythonResolver{DownloadsPage: defaultPythonDownloads, FTPBase: defaultPythonFTP}
}

func (r *PythonResolver) Vendor() toolchain.Vendor { return toolchain.VendorPython }

func (r *PythonResolver) Resolve(ctx context.Context, client *http.Client, req toolchain.InstallRequest, plat platform.Platform) (toolchain.ResolvedTarget, error) {
	version := req.Version
	if req.InstallLatest || version == "" {
		latest, err := r.latestRelease(ctx, client)
		if err != nil {
			return toolchain.ResolvedTarget{}, err
		}
		version = latest
	}

	var target toolchain.ResolvedTarget
	if plat.IsWindows() {
		// The embeddable distribution unpacks to a ready-to-run tree with
		// python.exe at the top level.
		name := fmt.Sprintf("python-%s-embed-amd64.zip", version)
		target = toolchain.ResolvedTarget{
			DownloadURL: fmt.Sprintf("%s/%s/%s", r.FTPBase, version, name),
			ArchiveName: name,
			Kind:        toolchain.ArchiveZip,
			Version:     version,
		}
	} else {
		// Source tarball. Unlike the Windows embeddable build this needs a
		// configure/make step before python is runnable, which is out of
		// scope here, so verification reports the interpreter missing.
		name := fmt.Sprintf("Python-%s.tgz", version)
		target = toolchain.ResolvedTarget{
			DownloadURL: fmt.Sprintf("%s/%s/%s", r.FTPBase, version, name),
			ArchiveName: name,
			Kind:        toolchain.ArchiveTarGz,
			Version:     version,
		}
	}
	logResolved(r.Vendor(), target)
	return target, nil
}

// latestRelease scrapes the downloads page for 3.x.y release links and picks
// the highest one. The page lists releases newest-first but ordering by
// version keeps us independent of page layout.
func (r *PythonResolver) latestRelease(ctx context.Context, client *http.Client) (string, error) {
	html, err := fetchText(ctx, client, r.DownloadsPage)
	if err != nil {
		return "", err
	}

	var best *semver.Version
	for _, m := range pythonReleasePattern.FindAllStringSubmatch(html, -1) {
		v, err := semver.NewVersion(m[1])
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	if best == nil {
		return "", fmt.Errorf("no Python 3 release found on %s", r.DownloadsPage)
	}
	return best.Original(), nil
}
