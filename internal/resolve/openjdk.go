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

const defaultOpenJDKBase = "https://jdk.java.net"

var hrefPattern = regexp.MustCompile(`href="([^"]+)"`)

// OpenJDKResolver scrapes the jdk.java.net release page for a version.
type OpenJDKResolver struct {
	Base string
}

// NewOpenJDK returns a resolver pointed at jdk.java.net.
func NewOpenJDK() *OpenJDKResolver {
	return &OpenJDKResolver{Base: defaultOpenJDKBase}
}

func (r *OpenJDKResolver) Vendor() toolchain.Vendor { return toolchain.VendorOpenJDK }

// Resolve picks the first anchor on the version page whose href names the
// current OS and ends in .zip. jdk.java.net has no "latest" listing, so a
// concrete version is required.
func (r *OpenJDKResolver) Resolve(ctx context.Context, client *http.Client, req toolchain.InstallRequest, plat platform.Platform) (toolchain.ResolvedTarget, error) {
	if req.InstallLatest {
		return toolchain.ResolvedTarget{}, fmt.Errorf("latest version not supported for OpenJDK, please specify a version number")
	}

	page := fmt.Sprintf("%s/%s", r.Base, req.Version)
	html, err := fetchText(ctx, client, page)
	if err != nil {
		return toolchain.ResolvedTarget{}, err
	}

	var link string
	for _, m := range hrefPattern.FindAllStringSubmatch(html, -1) {
		href := m[1]
		if strings.Contains(href, plat.OS) && strings.HasSuffix(href, ".zip") {
			link = href
			break
		}
	}
	if link == "" {
		return toolchain.ResolvedTarget{}, fmt.Errorf("OpenJDK ZIP link not found for %s %s", req.Version, plat.OS)
	}

	target := toolchain.ResolvedTarget{
		DownloadURL: link,
		ArchiveName: path.Base(link),
		Kind:        toolchain.ArchiveZip,
		Version:     req.Version,
	}
	logResolved(r.Vendor(), target)
	return target, nil
}
