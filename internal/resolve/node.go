package resolve

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

const defaultNodeLTSIndex = "https://nodejs.org/dist/latest-lts/"

var nodeAnchorPattern = regexp.MustCompile(`href="([^"]+)"`)

// NodeResolver finds the current LTS release under the nodejs.org dist index.
type NodeResolver struct {
	LTSIndex string
}

// NewNode returns a resolver pointed at nodejs.org.
func NewNode() *NodeResolver {
	return &NodeResolver{LTSIndex: defaultNodeLTSIndex}
}

func (r *NodeResolver) Vendor() toolchain.Vendor { return toolchain.VendorNode }

// Resolve walks version directories on the LTS index whose links encode
// "lts", then scans each directory listing for the first artifact matching
// the OS/arch naming convention and archive suffix.
func (r *NodeResolver) Resolve(ctx context.Context, client *http.Client, req toolchain.InstallRequest, plat platform.Platform) (toolchain.ResolvedTarget, error) {
	index, err := fetchText(ctx, client, r.LTSIndex)
	if err != nil {
		return toolchain.ResolvedTarget{}, err
	}

	want := fmt.Sprintf("%s-%s", plat.OS, plat.NodeArch())
	var suffixes []string
	if plat.IsWindows() {
		suffixes = []string{".zip"}
	} else {
		suffixes = []string{".tar.gz", ".tar.xz"}
	}

	for _, m := range nodeAnchorPattern.FindAllStringSubmatch(index, -1) {
		dir := m[1]
		if !strings.HasPrefix(dir, "v") || !strings.HasSuffix(dir, "/") || !strings.Contains(dir, "lts") {
			continue
		}
		version := strings.TrimSuffix(strings.TrimPrefix(dir, "v"), "/")

		dirURL := r.LTSIndex + dir
		listing, err := fetchText(ctx, client, dirURL)
		if err != nil {
			return toolchain.ResolvedTarget{}, err
		}

		for _, fm := range nodeAnchorPattern.FindAllStringSubmatch(listing, -1) {
			name := fm[1]
			if !strings.Contains(name, want) {
				continue
			}
			for _, suffix := range suffixes {
				if !strings.HasSuffix(name, suffix) {
					continue
				}
				kind, err := toolchain.KindForFilename(name)
				if err != nil {
					return toolchain.ResolvedTarget{}, err
				}
				target := toolchain.ResolvedTarget{
					DownloadURL: dirURL + name,
					ArchiveName: name,
					Kind:        kind,
					Version:     version,
				}
				logResolved(r.Vendor(), target)
				return target, nil
			}
		}
	}

	return toolchain.ResolvedTarget{}, fmt.Errorf("no Node.js LTS artifact found for %s", want)
}
