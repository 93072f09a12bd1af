package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedInstallation(t *testing.T, home, vendor, version, script string) string {
	t.Helper()
	installPath := filepath.Join(home, "sdkm", vendor+"_versions", vendor+"-"+version)
	binDir := filepath.Join(installPath, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	if script != "" {
		require.NoError(t, os.WriteFile(filepath.Join(binDir, vendor), []byte(script), 0o755))
	}
	return installPath
}

func TestStatusCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchains are POSIX shell scripts")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Set("install-root", "sdkm")
	viper.Set("output", "json")
	defer viper.Set("output", "text")

	seedInstallation(t, home, "go", "1.22.5", "#!/bin/sh\necho \"go version go1.22.5 linux/amd64\"\n")
	// A directory with no working executable reports as unhealthy.
	seedInstallation(t, home, "go", "1.21.0", "")

	output, err := executeCommand(rootCmd, "status", "go")
	require.NoError(t, err)

	assert.Contains(t, output, `"version": "1.22.5"`)
	assert.Contains(t, output, `"healthy": true`)
	assert.Contains(t, output, `"version": "1.21.0"`)
	assert.Contains(t, output, `"healthy": false`)
}

func TestStatusCommandTable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchains are POSIX shell scripts")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Set("install-root", "sdkm")
	viper.Set("output", "text")

	seedInstallation(t, home, "go", "1.22.5", "#!/bin/sh\necho \"go version go1.22.5 linux/amd64\"\n")

	output, err := executeCommand(rootCmd, "status", "go")
	require.NoError(t, err)

	assert.Contains(t, output, "VENDOR")
	assert.Contains(t, output, "1.22.5")
	assert.Contains(t, output, "go_versions")
}

func TestStatusCommandEmptyRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Set("install-root", "sdkm")
	viper.Set("output", "text")

	output, err := executeCommand(rootCmd, "status", "go")
	require.NoError(t, err)
	assert.Contains(t, output, "No toolchains installed.")
}

func TestStatusCommandRejectsUnknownVendor(t *testing.T) {
	_, err := executeCommand(rootCmd, "status", "perl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported vendor")
}
