// Package toolchain holds the shared data model for an installation run:
// the supported vendors, the immutable install request, the resolved
// download target and the cooperative cancellation token.
package toolchain

import (
	"fmt"
	"strings"
)

// Vendor identifies one of the supported toolchain providers.
type Vendor string

const (
	VendorAzul    Vendor = "azul"
	VendorTemurin Vendor = "temurin"
	VendorOpenJDK Vendor = "openjdk"
	VendorPython  Vendor = "python"
	VendorCCpp    Vendor = "c_cpp"
	VendorRust    Vendor = "rust"
	VendorNode    Vendor = "nodejs"
	VendorGo      Vendor = "go"
)

// Vendors returns all supported vendors in display order.
func Vendors() []Vendor {
	return []Vendor{
		VendorAzul, VendorTemurin, VendorOpenJDK,
		VendorPython, VendorCCpp, VendorRust, VendorNode, VendorGo,
	}
}

// ParseVendor converts a user-supplied vendor name.
func ParseVendor(s string) (Vendor, error) {
	v := Vendor(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case VendorAzul, VendorTemurin, VendorOpenJDK, VendorPython,
		VendorCCpp, VendorRust, VendorNode, VendorGo:
		return v, nil
	}
	return "", fmt.Errorf("unsupported vendor: %s", s)
}

// DisplayName returns the human-readable name of the vendor.
func (v Vendor) DisplayName() string {
	switch v {
	case VendorAzul:
		return "Java (Azul Zulu)"
	case VendorTemurin:
		return "Java (Temurin)"
	case VendorOpenJDK:
		return "Java (OpenJDK)"
	case VendorPython:
		return "Python"
	case VendorCCpp:
		return "C/C++ (MinGW-w64)"
	case VendorRust:
		return "Rust"
	case VendorNode:
		return "Node.js (LTS)"
	case VendorGo:
		return "Go"
	}
	return string(v)
}

// IsJava reports whether the vendor is one of the JDK distributions.
func (v Vendor) IsJava() bool {
	return v == VendorAzul || v == VendorTemurin || v == VendorOpenJDK
}

// AcceptsVersion reports whether a user may request an explicit version.
// C/C++, Rust, Node.js and Go always install the latest supported release.
func (v Vendor) AcceptsVersion() bool {
	return v.IsJava() || v == VendorPython
}

// ArchiveKind identifies the container format of a download.
type ArchiveKind string

const (
	ArchiveZip           ArchiveKind = "zip"
	ArchiveTarGz         ArchiveKind = "tar.gz"
	ArchiveTarXz         ArchiveKind = "tar.xz"
	ArchiveRawExecutable ArchiveKind = "raw"
)

// KindForFilename derives the archive kind from a file name.
func KindForFilename(name string) (ArchiveKind, error) {
	switch {
	case strings.HasSuffix(name, ".zip"):
		return ArchiveZip, nil
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return ArchiveTarGz, nil
	case strings.HasSuffix(name, ".tar.xz"):
		return ArchiveTarXz, nil
	default:
		return "", fmt.Errorf("unsupported archive format: %s", name)
	}
}

// InstallRequest describes one installation. It is immutable once handed
// to a run.
type InstallRequest struct {
	Vendor        Vendor
	Version       string
	InstallLatest bool
	// Packages holds pip package specifiers ("numpy>=1.20.0"); only
	// meaningful for the Python vendor.
	Packages []string
}

// ResolvedTarget is the concrete download selected for a request. Produced
// once per run and never mutated afterwards.
type ResolvedTarget struct {
	DownloadURL string
	ArchiveName string
	Kind        ArchiveKind
	// Version is the concrete version string the target carries; it names
	// the install directory and is the comparison target for idempotency.
	Version string
}
