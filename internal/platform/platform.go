// Package platform maps the running OS/architecture onto the naming
// conventions each vendor's download endpoints expect.
package platform

import (
	"fmt"
	"runtime"
)

// Platform is the detected operating system and architecture.
type Platform struct {
	OS   string
	Arch string
}

// Detect returns the current platform or an error when the OS is not one
// the installer supports.
func Detect() (Platform, error) {
	switch runtime.GOOS {
	case "windows", "darwin", "linux":
		return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}, nil
	}
	return Platform{}, fmt.Errorf("current system is not supported: %s/%s", runtime.GOOS, runtime.GOARCH)
}

// IsWindows reports whether the platform is Windows.
func (p Platform) IsWindows() bool { return p.OS == "windows" }

// JavaArch maps the architecture to the token the Azul and Temurin APIs use.
func (p Platform) JavaArch() string {
	switch p.Arch {
	case "amd64":
		return "x64"
	case "arm64":
		return "aarch64"
	}
	return p.Arch
}

// NodeArch maps the architecture to the token nodejs.org file names use.
func (p Platform) NodeArch() string {
	switch p.Arch {
	case "amd64":
		return "x64"
	case "arm64":
		return "arm64"
	}
	return p.Arch
}

// GoArch maps the architecture to the token go.dev file names use. Unlike
// the other mappings this one fails for architectures go.dev does not
// publish archives for.
func (p Platform) GoArch() (string, error) {
	switch p.Arch {
	case "amd64", "arm64":
		return p.Arch, nil
	}
	return "", fmt.Errorf("unsupported architecture for Go: %s", p.Arch)
}

// ExeSuffix returns ".exe" on Windows and "" elsewhere.
func (p Platform) ExeSuffix() string {
	if p.IsWindows() {
		return ".exe"
	}
	return ""
}

// String renders "os/arch".
func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}
