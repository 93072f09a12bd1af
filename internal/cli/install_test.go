package cli

import (
	"bytes"
	"os"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdkmhq/sdkm/internal/install"
	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

func resetInstallFlags() {
	installVersion = ""
	installLatest = false
	installPackages = ""
}

func TestBuildRequest(t *testing.T) {
	t.Cleanup(resetInstallFlags)

	t.Run("explicit version for java", func(t *testing.T) {
		resetInstallFlags()
		installVersion = "21"

		req, err := buildRequest(toolchain.VendorAzul)
		require.NoError(t, err)
		assert.Equal(t, "21", req.Version)
		assert.False(t, req.InstallLatest)
	})

	t.Run("latest for python", func(t *testing.T) {
		resetInstallFlags()
		installLatest = true

		req, err := buildRequest(toolchain.VendorPython)
		require.NoError(t, err)
		assert.True(t, req.InstallLatest)
		assert.Empty(t, req.Version)
	})

	t.Run("version rejected for latest-only vendors", func(t *testing.T) {
		resetInstallFlags()
		installVersion = "1.22.5"

		_, err := buildRequest(toolchain.VendorGo)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not accept an explicit version")
	})

	t.Run("java requires version or latest", func(t *testing.T) {
		resetInstallFlags()

		_, err := buildRequest(toolchain.VendorTemurin)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires --version or --latest")
	})

	t.Run("latest-only vendors need no flags", func(t *testing.T) {
		resetInstallFlags()

		req, err := buildRequest(toolchain.VendorNode)
		require.NoError(t, err)
		assert.Equal(t, toolchain.VendorNode, req.Vendor)
	})

	t.Run("packages parsed for python", func(t *testing.T) {
		resetInstallFlags()
		installVersion = "3.12.4"
		installPackages = "numpy>=1.20.0, requests , "

		req, err := buildRequest(toolchain.VendorPython)
		require.NoError(t, err)
		assert.Equal(t, []string{"numpy>=1.20.0", "requests"}, req.Packages)
	})

	t.Run("packages rejected for other vendors", func(t *testing.T) {
		resetInstallFlags()
		installVersion = "21"
		installPackages = "numpy"

		_, err := buildRequest(toolchain.VendorOpenJDK)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--packages is only supported for the python vendor")
	})
}

func TestFinishInstallAppliesEnvironment(t *testing.T) {
	t.Setenv("GOROOT", "")
	t.Setenv("PATH", os.Getenv("PATH"))

	plat := platform.Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
	result := &install.Result{
		Vendor:      toolchain.VendorGo,
		Version:     "1.22.5",
		InstallPath: "/opt/sdkm/go_versions/go-1.22.5",
		Env:         install.EnvironmentFor(toolchain.VendorGo, "/opt/sdkm/go_versions/go-1.22.5", plat),
	}

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, finishInstall(cmd, result, plat))

	// The environment record is live in this process, not just printed.
	assert.Equal(t, "/opt/sdkm/go_versions/go-1.22.5", os.Getenv("GOROOT"))
	assert.Contains(t, os.Getenv("PATH"), result.Env.PathPrefixes[0])
	assert.Contains(t, out.String(), "Installed Go 1.22.5")
}

func TestInstallCommandRejectsUnknownVendor(t *testing.T) {
	t.Cleanup(resetInstallFlags)
	resetInstallFlags()

	_, err := executeCommand(rootCmd, "install", "perl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported vendor")
}
