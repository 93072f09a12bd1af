package install

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

func TestParseProbe(t *testing.T) {
	tests := []struct {
		name     string
		vendor   toolchain.Vendor
		stdout   string
		stderr   string
		expected string
	}{
		{
			name:     "python strips prefix",
			vendor:   toolchain.VendorPython,
			stdout:   "Python 3.12.4\n",
			expected: "3.12.4",
		},
		{
			name:     "rust takes first token of first line",
			vendor:   toolchain.VendorRust,
			stdout:   "rustc 1.79.0 (129f3b996 2024-06-10)\nbinary: rustc\n",
			expected: "1.79.0",
		},
		{
			name:     "gcc takes third whitespace token",
			vendor:   toolchain.VendorCCpp,
			stdout:   "gcc (MinGW-W64) 11.0.0\nCopyright (C) 2021 Free Software Foundation, Inc.\n",
			expected: "11.0.0",
		},
		{
			name:     "node strips leading v",
			vendor:   toolchain.VendorNode,
			stdout:   "v20.11.1\n",
			expected: "20.11.1",
		},
		{
			name:     "go strips command prefix",
			vendor:   toolchain.VendorGo,
			stdout:   "go version go1.22.5 linux/amd64\n",
			expected: "1.22.5",
		},
		{
			name:     "openjdk parses stderr",
			vendor:   toolchain.VendorAzul,
			stderr:   "openjdk version \"21.0.2\"\nOpenJDK Runtime Environment Zulu21.32+17-CA\n",
			expected: "21.0.2",
		},
		{
			name:     "oracle java parses stderr",
			vendor:   toolchain.VendorTemurin,
			stderr:   "java version \"21.0.2\"\nJava(TM) SE Runtime Environment\n",
			expected: "21.0.2",
		},
		{
			name:   "java without version line fails",
			vendor: toolchain.VendorOpenJDK,
			stderr: "something unexpected\n",
		},
		{
			name:   "gcc with short line fails",
			vendor: toolchain.VendorCCpp,
			stdout: "gcc 11.0.0\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, parseProbe(test.vendor, test.stdout, test.stderr))
		})
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		installed   string
		requirement string
		expected    bool
	}{
		{"3.12.4", "==3.12.4", true},
		{"3.12.4", "==3.12.5", false},
		{"3.12.4", ">=3.12.0", true},
		{"3.12.4", ">=3.13.0", false},
		// Lexicographic comparison artifact, kept on purpose: both the
		// idempotency probe and post-install verification rely on it.
		{"1.10.0", ">=1.2.0", false},
		{"3.12.4", "3.12.4", true},
		{"3.12.4", "3.12.5", false},
		{"1.79.0", "stable", false},
		{"2.1.0", "numpy>=1.20.0", true},
		{"1.19.0", "numpy>=1.20.0", false},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, Compatible(test.installed, test.requirement),
			"Compatible(%q, %q)", test.installed, test.requirement)
	}
}

// writeProbeScript installs a fake version-query executable that prints the
// given stdout and stderr.
func writeProbeScript(t *testing.T, installPath, relPath, stdout, stderr string) {
	t.Helper()
	exe := filepath.Join(installPath, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(exe), 0o755))
	script := "#!/bin/sh\n"
	if stdout != "" {
		script += "printf '%s\\n' \"" + stdout + "\"\n"
	}
	if stderr != "" {
		script += "printf '%s\\n' \"" + stderr + "\" >&2\n"
	}
	require.NoError(t, os.WriteFile(exe, []byte(script), 0o755))
}

func TestVerify(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("probe scripts are POSIX shell")
	}
	plat := platform.Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}

	t.Run("go", func(t *testing.T) {
		installPath := t.TempDir()
		writeProbeScript(t, installPath, "bin/go", "go version go1.22.5 linux/amd64", "")

		prog := NewProgress()
		version, err := Verify(toolchain.VendorGo, installPath, plat, prog)
		require.NoError(t, err)
		assert.Equal(t, "1.22.5", version)
		assert.Contains(t, prog.Snapshot().Log, "go version go1.22.5")
	})

	t.Run("java reads stderr", func(t *testing.T) {
		installPath := t.TempDir()
		writeProbeScript(t, installPath, "bin/java", "", "openjdk version \\\"21.0.2\\\"")

		version, err := Verify(toolchain.VendorAzul, installPath, plat, nil)
		require.NoError(t, err)
		assert.Equal(t, "21.0.2", version)
	})

	t.Run("missing executable", func(t *testing.T) {
		_, err := Verify(toolchain.VendorGo, t.TempDir(), plat, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "executable not found")
	})

	t.Run("unparseable output", func(t *testing.T) {
		installPath := t.TempDir()
		writeProbeScript(t, installPath, "bin/node", "", "")

		_, err := Verify(toolchain.VendorNode, installPath, plat, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not parse")
	})
}

func TestProbeFor(t *testing.T) {
	linux := platform.Platform{OS: "linux", Arch: "amd64"}
	windows := platform.Platform{OS: "windows", Arch: "amd64"}

	assert.Equal(t, filepath.Join("bin", "python3"), probeFor(toolchain.VendorPython, linux).relPath)
	assert.Equal(t, "python.exe", probeFor(toolchain.VendorPython, windows).relPath)
	assert.Equal(t, filepath.Join("bin", "node"), probeFor(toolchain.VendorNode, linux).relPath)
	assert.Equal(t, "node.exe", probeFor(toolchain.VendorNode, windows).relPath)
	assert.Equal(t, "version", probeFor(toolchain.VendorGo, linux).arg)
	assert.Equal(t, "-version", probeFor(toolchain.VendorTemurin, linux).arg)
	assert.Equal(t, "--version", probeFor(toolchain.VendorRust, linux).arg)
}
