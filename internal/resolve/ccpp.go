package resolve

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

const (
	mingwVersion     = "11.0.0"
	mingwDownloadURL = "https://sourceforge.net/projects/mingw-w64/files/mingw-w64/mingw-w64-release/mingw-w64-v" + mingwVersion + ".zip/download"
)

// CCppResolver provides the MinGW-w64 toolchain. Windows only; other
// platforms already ship a system compiler through their package manager.
type CCppResolver struct{}

// NewCCpp returns the MinGW resolver.
func NewCCpp() *CCppResolver { return &CCppResolver{} }

func (r *CCppResolver) Vendor() toolchain.Vendor { return toolchain.VendorCCpp }

func (r *CCppResolver) Resolve(ctx context.Context, client *http.Client, req toolchain.InstallRequest, plat platform.Platform) (toolchain.ResolvedTarget, error) {
	if !plat.IsWindows() {
		return toolchain.ResolvedTarget{}, fmt.Errorf("c_cpp installation is only supported on windows; use your system package manager (apt install gcc, xcode-select --install) instead")
	}

	// Pinned release, no metadata round-trip needed.
	target := toolchain.ResolvedTarget{
		DownloadURL: mingwDownloadURL,
		ArchiveName: "mingw-w64-v" + mingwVersion + ".zip",
		Kind:        toolchain.ArchiveZip,
		Version:     mingwVersion,
	}
	logResolved(r.Vendor(), target)
	return target, nil
}
