package install

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sdkmhq/sdkm/internal/download"
	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

const defaultGetPipURL = "https://bootstrap.pypa.io/get-pip.py"

// PackageInstaller bootstraps pip inside a fresh Python installation and
// installs the requested package specifiers.
type PackageInstaller struct {
	Downloader *download.Downloader
	GetPipURL  string
	Platform   platform.Platform
}

// NewPackageInstaller builds an installer using the given downloader for the
// bootstrap script.
func NewPackageInstaller(dl *download.Downloader, plat platform.Platform) *PackageInstaller {
	return &PackageInstaller{
		Downloader: dl,
		GetPipURL:  defaultGetPipURL,
		Platform:   plat,
	}
}

// Run bootstraps pip, then installs and verifies each package specifier in
// order. A failed bootstrap aborts on Windows (the embeddable zip has no
// pip fallback) but is only logged elsewhere, where individual installs
// surface their own failures. Any package install or compatibility failure
// aborts the whole run.
func (p *PackageInstaller) Run(ctx context.Context, installPath string, packages []string, prog *Progress) error {
	pythonExe := p.pythonExe(installPath)

	if err := p.bootstrap(ctx, installPath, pythonExe, prog); err != nil {
		return err
	}

	for _, spec := range packages {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		if err := p.installPackage(installPath, pythonExe, spec, prog); err != nil {
			return err
		}
	}
	return nil
}

func (p *PackageInstaller) pythonExe(installPath string) string {
	if p.Platform.IsWindows() {
		return filepath.Join(installPath, "python.exe")
	}
	return filepath.Join(installPath, "bin", "python3")
}

func (p *PackageInstaller) bootstrap(ctx context.Context, installPath, pythonExe string, prog *Progress) error {
	if p.Platform.IsWindows() {
		prog.SetStatus("Downloading pip installer...")
		prog.Logf("Downloading get-pip.py...")

		script, err := p.Downloader.Fetch(ctx, p.GetPipURL, nil, nil)
		if err != nil {
			return fmt.Errorf("downloading get-pip.py: %w", err)
		}

		scriptPath := filepath.Join(installPath, "get-pip.py")
		if err := os.WriteFile(scriptPath, script, 0o600); err != nil {
			return fmt.Errorf("saving get-pip.py: %w", err)
		}
		defer func() { _ = os.Remove(scriptPath) }()

		prog.SetStatus("Installing pip...")
		out, err := runCommand(pythonExe, scriptPath)
		prog.LogOutput(out)
		if err != nil {
			return fmt.Errorf("pip installation failed, cannot proceed with package installation: %w", err)
		}
		prog.Logf("pip installed successfully.")
		return nil
	}

	prog.SetStatus("Checking pip availability...")
	out, err := runCommand(pythonExe, "-m", "ensurepip", "--default-pip")
	prog.LogOutput(out)
	if err != nil {
		// Package installs below report their own failures.
		prog.Logf("Failed to ensure pip is available. Package installation might fail.")
		log.Warn().Err(err).Msg("ensurepip failed")
		return nil
	}
	prog.Logf("pip is now available.")
	return nil
}

func (p *PackageInstaller) installPackage(installPath, pythonExe, spec string, prog *Progress) error {
	prog.SetStatus(fmt.Sprintf("Installing %s...", spec))
	prog.Logf("Attempting to install: %s", spec)

	out, err := p.pip(installPath, pythonExe, "install", spec)
	prog.LogOutput(out)
	if err != nil {
		return toolchain.StageErrorf(toolchain.StagePackages, toolchain.VendorPython, "package installation failed: %s", spec)
	}
	prog.Logf("Successfully installed: %s", spec)

	name := packageName(spec)
	out, err = p.pip(installPath, pythonExe, "show", name)
	if err != nil {
		return toolchain.StageErrorf(toolchain.StagePackages, toolchain.VendorPython, "could not query installed version of %s", name)
	}

	installed := "unknown"
	for _, line := range strings.Split(out, "\n") {
		if after, ok := strings.CutPrefix(line, "Version:"); ok {
			installed = strings.TrimSpace(after)
			break
		}
	}

	prog.Logf("Checking package compatibility for %s: installed %q vs required %q.", name, installed, spec)
	if !Compatible(installed, spec) {
		return toolchain.StageErrorf(toolchain.StagePackages, toolchain.VendorPython, "package %s: expected %s, got %s", name, spec, installed)
	}
	prog.Logf("%s version verified: %s (meets requirement %s).", name, installed, spec)
	return nil
}

// pip runs a pip subcommand: pip.exe directly on Windows where the
// embeddable layout puts it under Scripts, python -m pip elsewhere.
func (p *PackageInstaller) pip(installPath, pythonExe string, args ...string) (string, error) {
	if p.Platform.IsWindows() {
		pipExe := filepath.Join(installPath, "Scripts", "pip.exe")
		return runCommand(pipExe, args...)
	}
	return runCommand(pythonExe, append([]string{"-m", "pip"}, args...)...)
}

// packageName strips the specifier operator from a requirement like
// "numpy>=1.20.0".
func packageName(spec string) string {
	if i := strings.IndexAny(spec, "=><~"); i >= 0 {
		return spec[:i]
	}
	return spec
}

func runCommand(exe string, args ...string) (string, error) {
	cmd := exec.Command(exe, args...) // #nosec G204 - exe lives inside the managed install path
	out, err := cmd.CombinedOutput()
	return string(out), err
}
