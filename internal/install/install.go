package install

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/sdkmhq/sdkm/internal/archive"
	"github.com/sdkmhq/sdkm/internal/download"
	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/resolve"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

// Orchestrator runs installations end to end. It owns no per-run state;
// each Run call gets its own Progress and CancelToken, so installations for
// different vendors can proceed concurrently.
type Orchestrator struct {
	Resolvers  map[toolchain.Vendor]resolve.Resolver
	MetaClient *http.Client
	Downloader *download.Downloader
	Packages   *PackageInstaller

	// Home is the user home directory; RootName the directory under it that
	// holds all installations.
	Home     string
	RootName string
	Platform platform.Platform
}

// Result is the terminal outcome of a successful run.
type Result struct {
	Vendor           toolchain.Vendor `json:"vendor" yaml:"vendor"`
	Version          string           `json:"version" yaml:"version"`
	InstallPath      string           `json:"install_path" yaml:"install_path"`
	AlreadyInstalled bool             `json:"already_installed" yaml:"already_installed"`
	Env              EnvConfig        `json:"env" yaml:"env"`
}

// Root returns the directory all vendor installations live under.
func (o *Orchestrator) Root() string {
	return filepath.Join(o.Home, o.RootName)
}

// InstallPath returns where a vendor/version pair lands on disk. Rust is
// the exception: rustup owns ~/.cargo and its own layout.
func (o *Orchestrator) InstallPath(vendor toolchain.Vendor, version string) string {
	if vendor == toolchain.VendorRust {
		return filepath.Join(o.Home, ".cargo")
	}
	return filepath.Join(o.Root(), fmt.Sprintf("%s_versions", vendor), fmt.Sprintf("%s-%s", vendor, version))
}

// Run executes one installation. Failures never trigger retries; the run is
// terminal and must be re-triggered explicitly. Cancellation surfaces as
// ErrCancelled wrapped in the failing stage.
func (o *Orchestrator) Run(ctx context.Context, req toolchain.InstallRequest, token *toolchain.CancelToken, prog *Progress) (*Result, error) {
	resolver, ok := o.Resolvers[req.Vendor]
	if !ok {
		return nil, toolchain.StageErrorf(toolchain.StageResolve, req.Vendor, "unsupported vendor: %s", req.Vendor)
	}

	prog.SetStatus(fmt.Sprintf("Preparing %s installation...", req.Vendor.DisplayName()))
	target, err := resolver.Resolve(ctx, o.MetaClient, req, o.Platform)
	if err != nil {
		return nil, toolchain.WrapStage(toolchain.StageResolve, req.Vendor, err)
	}
	if target.DownloadURL == "" {
		return nil, toolchain.StageErrorf(toolchain.StageResolve, req.Vendor, "resolution produced an empty download URL")
	}

	installPath := o.InstallPath(req.Vendor, target.Version)

	// A latest request is checked against what we would download today; an
	// explicit request against what the user asked for.
	checkTarget := target.Version
	if !req.InstallLatest && req.Version != "" {
		checkTarget = req.Version
	}

	prog.SetStatus("Checking for existing installations...")
	if installed, version := AlreadyInstalled(req.Vendor, installPath, checkTarget, o.Platform, prog); installed {
		prog.SetDownload(1.0)
		prog.SetExtract(1.0)
		prog.SetStatus(fmt.Sprintf("%s is already installed.", req.Vendor.DisplayName()))
		return &Result{
			Vendor:           req.Vendor,
			Version:          version,
			InstallPath:      installPath,
			AlreadyInstalled: true,
			Env:              EnvironmentFor(req.Vendor, installPath, o.Platform),
		}, nil
	}

	prog.SetStatus(fmt.Sprintf("Downloading %s...", req.Vendor.DisplayName()))
	prog.Logf("Downloading: %s", target.DownloadURL)
	data, err := o.Downloader.Fetch(ctx, target.DownloadURL, token, prog.SetDownload)
	if err != nil {
		if toolchain.IsCancelled(err) {
			prog.Logf("Installation cancelled during download.")
			prog.SetStatus("Installation cancelled.")
		}
		return nil, toolchain.WrapStage(toolchain.StageDownload, req.Vendor, err)
	}

	if req.Vendor == toolchain.VendorRust {
		if err := o.runRustup(target, data, prog); err != nil {
			return nil, toolchain.WrapStage(toolchain.StageExtract, req.Vendor, err)
		}
	} else {
		if err := o.extract(target, data, installPath, token, prog); err != nil {
			if toolchain.IsCancelled(err) {
				prog.Logf("Installation cancelled during extraction.")
				prog.SetStatus("Installation cancelled.")
			}
			return nil, toolchain.WrapStage(toolchain.StageExtract, req.Vendor, err)
		}
	}

	env := EnvironmentFor(req.Vendor, installPath, o.Platform)
	for _, line := range env.ExportLines(o.Platform) {
		prog.Logf("%s", line)
	}
	for _, note := range env.Notes {
		prog.Logf("%s", note)
	}

	prog.SetStatus(fmt.Sprintf("Verifying %s...", req.Vendor.DisplayName()))
	installed, err := Verify(req.Vendor, installPath, o.Platform, prog)
	if err != nil {
		return nil, toolchain.WrapStage(toolchain.StageVerify, req.Vendor, err)
	}
	prog.Logf("%s version %s installed.", req.Vendor, installed)

	if req.Vendor == toolchain.VendorPython {
		prog.Logf("Checking version compatibility: installed %q vs required %q.", installed, checkTarget)
		if !Compatible(installed, checkTarget) {
			return nil, toolchain.StageErrorf(toolchain.StageVerify, req.Vendor, "version mismatch: expected %s, got %s", checkTarget, installed)
		}
		if len(req.Packages) > 0 {
			if err := o.Packages.Run(ctx, installPath, req.Packages, prog); err != nil {
				return nil, err
			}
		}
	}

	prog.SetDownload(1.0)
	prog.SetExtract(1.0)
	prog.SetStatus(fmt.Sprintf("%s installation complete!", req.Vendor.DisplayName()))
	log.Info().
		Str("vendor", string(req.Vendor)).
		Str("version", installed).
		Str("path", installPath).
		Msg("installation complete")

	return &Result{
		Vendor:      req.Vendor,
		Version:     installed,
		InstallPath: installPath,
		Env:         env,
	}, nil
}

func (o *Orchestrator) extract(target toolchain.ResolvedTarget, data []byte, installPath string, token *toolchain.CancelToken, prog *Progress) error {
	if err := os.MkdirAll(installPath, 0o750); err != nil {
		return fmt.Errorf("creating install directory: %w", err)
	}

	extractor, err := archive.ForKind(target.Kind)
	if err != nil {
		return err
	}

	prog.SetStatus("Extracting files, almost there...")
	topLevel, err := extractor.Extract(data, installPath, token, prog.SetExtract)
	if err != nil {
		return err
	}
	prog.Logf("Extraction complete.")

	if err := archive.Flatten(installPath, topLevel); err != nil {
		return err
	}
	return nil
}

// runRustup writes the downloaded rustup bootstrap next to the vendor trees,
// executes it and removes it again. The subprocess is not interruptible;
// once started it runs to completion.
func (o *Orchestrator) runRustup(target toolchain.ResolvedTarget, data []byte, prog *Progress) error {
	if err := os.MkdirAll(o.Root(), 0o750); err != nil {
		return fmt.Errorf("creating install root: %w", err)
	}

	initPath := filepath.Join(o.Root(), target.ArchiveName)
	if err := os.WriteFile(initPath, data, 0o700); err != nil { // #nosec G306 - the bootstrap must be executable
		return fmt.Errorf("writing rustup bootstrap: %w", err)
	}
	defer func() { _ = os.Remove(initPath) }()

	prog.SetStatus("Running rustup installer...")
	cmd := exec.Command(initPath, "--default-toolchain", "stable", "-y") // #nosec G204 - path is under the managed root
	out, err := cmd.CombinedOutput()
	prog.LogOutput(string(out))
	if err != nil {
		return fmt.Errorf("rustup installation failed: %w", err)
	}

	prog.Logf("Rust installed successfully via rustup.")
	prog.Logf("Cleaned up rustup bootstrap.")
	return nil
}
