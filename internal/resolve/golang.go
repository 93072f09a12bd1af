package resolve

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

const (
	defaultGoDownloads = "https://go.dev/dl/"
	goDevHost          = "https://go.dev"
)

// The latest stable release is the toggle button labelled "(latest)".
var goLatestPattern = regexp.MustCompile(`(go[\d.]+)\s*\(latest\)`)

var goAnchorPattern = regexp.MustCompile(`href="([^"]+)"`)

// GoResolver scrapes go.dev/dl for the latest stable release.
type GoResolver struct {
	DownloadsPage string
}

// NewGo returns a resolver pointed at go.dev.
func NewGo() *GoResolver {
	return &GoResolver{DownloadsPage: defaultGoDownloads}
}

func (r *GoResolver) Vendor() toolchain.Vendor { return toolchain.VendorGo }

func (r *GoResolver) Resolve(ctx context.Context, client *http.Client, req toolchain.InstallRequest, plat platform.Platform) (toolchain.ResolvedTarget, error) {
	goArch, err := plat.GoArch()
	if err != nil {
		return toolchain.ResolvedTarget{}, err
	}

	html, err := fetchText(ctx, client, r.DownloadsPage)
	if err != nil {
		return toolchain.ResolvedTarget{}, err
	}

	m := goLatestPattern.FindStringSubmatch(html)
	if m == nil {
		return toolchain.ResolvedTarget{}, fmt.Errorf("could not find the latest Go version on %s", r.DownloadsPage)
	}
	token := m[1]

	ext := ".tar.gz"
	if plat.IsWindows() {
		ext = ".zip"
	}
	wantPart := fmt.Sprintf("%s-%s%s", plat.OS, goArch, ext)

	for _, am := range goAnchorPattern.FindAllStringSubmatch(html, -1) {
		href := am[1]
		if !strings.Contains(href, token) || !strings.Contains(href, wantPart) {
			continue
		}
		url := href
		if strings.HasPrefix(href, "/") {
			url = goDevHost + href
		}
		kind, err := toolchain.KindForFilename(path.Base(href))
		if err != nil {
			return toolchain.ResolvedTarget{}, err
		}
		target := toolchain.ResolvedTarget{
			DownloadURL: url,
			ArchiveName: path.Base(href),
			Kind:        kind,
			Version:     strings.TrimPrefix(token, "go"),
		}
		logResolved(r.Vendor(), target)
		return target, nil
	}

	return toolchain.ResolvedTarget{}, fmt.Errorf("could not find Go download link for %s on %s/%s", token, plat.OS, goArch)
}
