package install

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

// probeSpec is the version-query command for one vendor: the executable
// location relative to the install path and the flag that prints a version.
type probeSpec struct {
	relPath string
	arg     string
}

// probeFor returns the probe for a vendor on a platform. Each vendor ships
// its binary in a different spot and speaks its own version flag.
func probeFor(vendor toolchain.Vendor, plat platform.Platform) probeSpec {
	win := plat.IsWindows()
	switch vendor {
	case toolchain.VendorPython:
		if win {
			return probeSpec{relPath: "python.exe", arg: "--version"}
		}
		return probeSpec{relPath: filepath.Join("bin", "python3"), arg: "--version"}
	case toolchain.VendorCCpp:
		return probeSpec{relPath: filepath.Join("bin", "gcc"+plat.ExeSuffix()), arg: "--version"}
	case toolchain.VendorRust:
		return probeSpec{relPath: filepath.Join("bin", "rustc"+plat.ExeSuffix()), arg: "--version"}
	case toolchain.VendorNode:
		if win {
			return probeSpec{relPath: "node.exe", arg: "--version"}
		}
		return probeSpec{relPath: filepath.Join("bin", "node"), arg: "--version"}
	case toolchain.VendorGo:
		return probeSpec{relPath: filepath.Join("bin", "go"+plat.ExeSuffix()), arg: "version"}
	default:
		// Java vendors share one layout.
		return probeSpec{relPath: filepath.Join("bin", "java"+plat.ExeSuffix()), arg: "-version"}
	}
}

// Verify runs the installed executable's version query and returns the
// parsed version string. The raw probe output is appended to prog.
func Verify(vendor toolchain.Vendor, installPath string, plat platform.Platform, prog *Progress) (string, error) {
	probe := probeFor(vendor, plat)
	exe := filepath.Join(installPath, probe.relPath)

	if _, err := os.Stat(exe); err != nil {
		return "", fmt.Errorf("executable not found at %s", exe)
	}

	cmd := exec.Command(exe, probe.arg) // #nosec G204 - exe lives inside the managed install path
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	if prog != nil {
		prog.LogOutput(stderr.String())
		prog.LogOutput(stdout.String())
	}
	if err != nil {
		return "", fmt.Errorf("version probe failed: %w", err)
	}

	version := parseProbe(vendor, stdout.String(), stderr.String())
	if version == "" {
		return "", fmt.Errorf("could not parse %s version output", vendor)
	}
	return version, nil
}

// parseProbe extracts the version token from vendor-specific probe output.
func parseProbe(vendor toolchain.Vendor, stdout, stderr string) string {
	switch vendor {
	case toolchain.VendorPython:
		// "Python 3.12.4"
		return strings.TrimPrefix(strings.TrimSpace(stdout), "Python ")
	case toolchain.VendorRust:
		// "rustc 1.79.0 (129f3b996 2024-06-10)"
		line, _, _ := strings.Cut(strings.TrimSpace(stdout), "\n")
		line = strings.TrimPrefix(line, "rustc ")
		token, _, _ := strings.Cut(line, " ")
		return token
	case toolchain.VendorCCpp:
		// "gcc (MinGW-W64 ...) 11.0.0" with the version as 3rd token
		line, _, _ := strings.Cut(strings.TrimSpace(stdout), "\n")
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return ""
		}
		return fields[2]
	case toolchain.VendorNode:
		// "v20.11.1"
		return strings.TrimPrefix(strings.TrimSpace(stdout), "v")
	case toolchain.VendorGo:
		// "go version go1.22.5 linux/amd64"
		rest := strings.TrimPrefix(strings.TrimSpace(stdout), "go version go")
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return ""
		}
		return fields[0]
	default:
		// Java prints to stderr, e.g. `openjdk version "21.0.2" 2024-01-16`
		for _, line := range strings.Split(stderr, "\n") {
			if !strings.Contains(line, "version") {
				continue
			}
			line = strings.TrimSpace(line)
			line = strings.TrimPrefix(line, "openjdk version \"")
			line = strings.TrimPrefix(line, "java version \"")
			return strings.TrimSuffix(line, "\"")
		}
		return ""
	}
}

// Compatible applies the version compatibility rule. A "==" specifier
// requires exact string equality with the right-hand side; a ">=" specifier
// compares the strings lexicographically, which mishandles versions like
// "1.10.0" >= "1.2.0". That weakness is part of the contract: idempotency
// probing and verification must agree on it, so it stays.
func Compatible(installed, requirement string) bool {
	switch {
	case strings.Contains(requirement, "=="):
		parts := strings.Split(requirement, "==")
		if len(parts) == 2 {
			return installed == strings.TrimSpace(parts[1])
		}
	case strings.Contains(requirement, ">="):
		parts := strings.Split(requirement, ">=")
		if len(parts) == 2 {
			return installed >= strings.TrimSpace(parts[1])
		}
	default:
		return installed == requirement
	}
	return false
}
