// Package resolve turns an install request into a concrete download target.
// Each vendor has its own strategy: the Azul and Temurin metadata APIs speak
// JSON, python.org, jdk.java.net, nodejs.org and go.dev are HTML listings,
// and C/C++ and Rust resolve to fixed artifacts.
package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

// Resolver produces the download target for one vendor.
type Resolver interface {
	Vendor() toolchain.Vendor
	Resolve(ctx context.Context, client *http.Client, req toolchain.InstallRequest, plat platform.Platform) (toolchain.ResolvedTarget, error)
}

// Default returns the resolver table for all supported vendors.
func Default() map[toolchain.Vendor]Resolver {
	resolvers := []Resolver{
		NewAzul(),
		NewTemurin(),
		NewOpenJDK(),
		NewPython(),
		NewCCpp(),
		NewRust(),
		NewNode(),
		NewGo(),
	}

	table := make(map[toolchain.Vendor]Resolver, len(resolvers))
	for _, r := range resolvers {
		table[r.Vendor()] = r
	}
	return table
}

// fetchText GETs a URL and returns the response body as a string.
func fetchText(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status code: %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(body), nil
}

// fetchJSON GETs a URL and decodes the JSON response into v.
func fetchJSON(ctx context.Context, client *http.Client, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status code: %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

func logResolved(v toolchain.Vendor, target toolchain.ResolvedTarget) {
	log.Debug().
		Str("vendor", string(v)).
		Str("version", target.Version).
		Str("url", target.DownloadURL).
		Msg("resolved download target")
}
