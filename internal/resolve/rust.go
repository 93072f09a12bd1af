package resolve

import (
	"context"
	"net/http"

	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

// RustResolver points at the rustup bootstrap installer. rustup itself
// manages toolchain versions, so resolution needs no network access and the
// version is always the stable channel.
type RustResolver struct{}

// NewRust returns the rustup resolver.
func NewRust() *RustResolver { return &RustResolver{} }

func (r *RustResolver) Vendor() toolchain.Vendor { return toolchain.VendorRust }

func (r *RustResolver) Resolve(ctx context.Context, client *http.Client, req toolchain.InstallRequest, plat platform.Platform) (toolchain.ResolvedTarget, error) {
	var target toolchain.ResolvedTarget
	if plat.IsWindows() {
		target = toolchain.ResolvedTarget{
			DownloadURL: "https://win.rustup.rs/x86_64",
			ArchiveName: "rustup-init.exe",
			Kind:        toolchain.ArchiveRawExecutable,
			Version:     "stable",
		}
	} else {
		target = toolchain.ResolvedTarget{
			DownloadURL: "https://sh.rustup.rs",
			ArchiveName: "rustup-init.sh",
			Kind:        toolchain.ArchiveRawExecutable,
			Version:     "stable",
		}
	}
	logResolved(r.Vendor(), target)
	return target, nil
}
