package resolve

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

const defaultAzulAPI = "https://api.azul.com/metadata/v1/zulu/packages"

// AzulResolver queries the Azul Zulu metadata API.
type AzulResolver struct {
	API string
}

// NewAzul returns a resolver pointed at the production Azul API.
func NewAzul() *AzulResolver {
	return &AzulResolver{API: defaultAzulAPI}
}

func (r *AzulResolver) Vendor() toolchain.Vendor { return toolchain.VendorAzul }

type azulPackage struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
	JavaVersion []int  `json:"java_version"`
}

// Resolve selects exactly one zip JDK package. Specialized JVM builds (CRaC,
// JavaFX) are excluded unless no plain build exists: first the strict filter,
// then one that only excludes CRaC, then the first candidate.
func (r *AzulResolver) Resolve(ctx context.Context, client *http.Client, req toolchain.InstallRequest, plat platform.Platform) (toolchain.ResolvedTarget, error) {
	var url string
	if req.InstallLatest {
		url = fmt.Sprintf("%s?latest=true&availability_types=ca&os=%s&arch=%s&package_type=jdk",
			r.API, plat.OS, plat.JavaArch())
	} else {
		url = fmt.Sprintf("%s?java_version=%s&os=%s&arch=%s&package_type=jdk&latest=true&availability_types=ca",
			r.API, req.Version, plat.OS, plat.JavaArch())
	}

	var packages []azulPackage
	if err := fetchJSON(ctx, client, url, &packages); err != nil {
		return toolchain.ResolvedTarget{}, err
	}

	var candidates []azulPackage
	for _, pkg := range packages {
		if strings.Contains(pkg.Name, "-jdk") && strings.HasSuffix(pkg.Name, ".zip") {
			candidates = append(candidates, pkg)
		}
	}
	if len(candidates) == 0 {
		return toolchain.ResolvedTarget{}, fmt.Errorf("no suitable Azul JDK package (zip) found for the specified criteria")
	}

	selected := selectAzulPackage(candidates)
	if selected.DownloadURL == "" {
		return toolchain.ResolvedTarget{}, fmt.Errorf("download link not found in Azul package info")
	}

	version := joinJavaVersion(selected.JavaVersion)
	if version == "" {
		version = req.Version
	}

	target := toolchain.ResolvedTarget{
		DownloadURL: selected.DownloadURL,
		ArchiveName: selected.Name,
		Kind:        toolchain.ArchiveZip,
		Version:     version,
	}
	logResolved(r.Vendor(), target)
	return target, nil
}

func selectAzulPackage(candidates []azulPackage) azulPackage {
	for _, pkg := range candidates {
		if !strings.Contains(pkg.Name, "crac") && !strings.Contains(pkg.Name, "fx") {
			return pkg
		}
	}
	for _, pkg := range candidates {
		if !strings.Contains(pkg.Name, "crac") {
			return pkg
		}
	}
	return candidates[0]
}

func joinJavaVersion(parts []int) string {
	if len(parts) == 0 {
		return ""
	}
	tokens := make([]string, len(parts))
	for i, p := range parts {
		tokens[i] = strconv.Itoa(p)
	}
	return strings.Join(tokens, ".")
}
