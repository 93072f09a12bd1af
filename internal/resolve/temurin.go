package resolve

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

const defaultTemurinAPI = "https://api.adoptium.net/v3/assets/latest"

// TemurinResolver queries the Adoptium (Temurin) assets API.
type TemurinResolver struct {
	API string
}

// NewTemurin returns a resolver pointed at the production Adoptium API.
func NewTemurin() *TemurinResolver {
	return &TemurinResolver{API: defaultTemurinAPI}
}

func (r *TemurinResolver) Vendor() toolchain.Vendor { return toolchain.VendorTemurin }

type temurinAsset struct {
	Binary struct {
		Package struct {
			Name string `json:"name"`
			Link string `json:"link"`
		} `json:"package"`
	} `json:"binary"`
}

func (r *TemurinResolver) Resolve(ctx context.Context, client *http.Client, req toolchain.InstallRequest, plat platform.Platform) (toolchain.ResolvedTarget, error) {
	feature := "all"
	if !req.InstallLatest {
		feature = req.Version
	}
	url := fmt.Sprintf("%s/%s/hotspot?os=%s&architecture=%s&image_type=jdk",
		r.API, feature, plat.OS, plat.JavaArch())

	var assets []temurinAsset
	if err := fetchJSON(ctx, client, url, &assets); err != nil {
		return toolchain.ResolvedTarget{}, err
	}
	if len(assets) == 0 {
		return toolchain.ResolvedTarget{}, fmt.Errorf("Temurin package not found")
	}

	pkg := assets[0].Binary.Package
	kind, err := toolchain.KindForFilename(pkg.Name)
	if err != nil {
		return toolchain.ResolvedTarget{}, err
	}

	// The assets endpoint does not carry a plain version string, so the
	// requested version names the install directory.
	version := req.Version
	if version == "" {
		version = "latest"
	}
	target := toolchain.ResolvedTarget{
		DownloadURL: pkg.Link,
		ArchiveName: pkg.Name,
		Kind:        kind,
		Version:     version,
	}
	logResolved(r.Vendor(), target)
	return target, nil
}
