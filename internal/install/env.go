package install

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

// EnvConfig describes the environment changes an installation calls for.
// Nothing is mutated when it is built; the caller decides whether to apply
// it to the current process, print export lines, or both. Changes are
// process-scoped either way, which is why Notes spells out the manual step
// for persistence.
type EnvConfig struct {
	Vars         map[string]string `json:"vars,omitempty" yaml:"vars,omitempty"`
	PathPrefixes []string          `json:"path_prefixes,omitempty" yaml:"path_prefixes,omitempty"`
	Notes        []string          `json:"notes,omitempty" yaml:"notes,omitempty"`
}

const persistNote = "For persistent use across new terminal sessions, add this to your shell profile or system PATH manually."

// EnvironmentFor builds the environment record for an installed toolchain.
// Java vendors get JAVA_HOME, Python gets PYTHON_HOME, Go gets GOROOT plus a
// PATH prefix, C/C++ and Node.js get a PATH prefix only. Rust is exempt
// because rustup writes its own persistent shell configuration.
func EnvironmentFor(vendor toolchain.Vendor, installPath string, plat platform.Platform) EnvConfig {
	cfg := EnvConfig{Vars: map[string]string{}}

	switch {
	case vendor.IsJava():
		cfg.Vars["JAVA_HOME"] = installPath
		cfg.Notes = append(cfg.Notes, persistNote)
	case vendor == toolchain.VendorPython:
		cfg.Vars["PYTHON_HOME"] = installPath
		cfg.Notes = append(cfg.Notes, persistNote)
	case vendor == toolchain.VendorGo:
		cfg.Vars["GOROOT"] = installPath
		cfg.PathPrefixes = append(cfg.PathPrefixes, filepath.Join(installPath, "bin"))
		cfg.Notes = append(cfg.Notes, persistNote)
	case vendor == toolchain.VendorCCpp:
		cfg.PathPrefixes = append(cfg.PathPrefixes, filepath.Join(installPath, "bin"))
		cfg.Notes = append(cfg.Notes, persistNote)
	case vendor == toolchain.VendorNode:
		// The Windows zip puts node.exe at the archive root.
		binDir := filepath.Join(installPath, "bin")
		if plat.IsWindows() {
			binDir = installPath
		}
		cfg.PathPrefixes = append(cfg.PathPrefixes, binDir)
		cfg.Notes = append(cfg.Notes, persistNote)
	case vendor == toolchain.VendorRust:
		cfg.Notes = append(cfg.Notes, "rustup has configured your shell PATH for new terminal sessions.")
	}

	return cfg
}

// Apply sets the variables and prepends the PATH prefixes in the current
// process environment.
func (c EnvConfig) Apply() error {
	for k, v := range c.Vars {
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("setting %s: %w", k, err)
		}
	}
	if len(c.PathPrefixes) > 0 {
		path := strings.Join(c.PathPrefixes, string(os.PathListSeparator))
		if current := os.Getenv("PATH"); current != "" {
			path = path + string(os.PathListSeparator) + current
		}
		if err := os.Setenv("PATH", path); err != nil {
			return fmt.Errorf("setting PATH: %w", err)
		}
	}
	return nil
}

// ExportLines renders the record as shell statements for display.
func (c EnvConfig) ExportLines(plat platform.Platform) []string {
	var lines []string
	for _, k := range sortedKeys(c.Vars) {
		if plat.IsWindows() {
			lines = append(lines, fmt.Sprintf("set %s=%s", k, c.Vars[k]))
		} else {
			lines = append(lines, fmt.Sprintf("export %s=%q", k, c.Vars[k]))
		}
	}
	for _, prefix := range c.PathPrefixes {
		if plat.IsWindows() {
			lines = append(lines, fmt.Sprintf("set PATH=%s;%%PATH%%", prefix))
		} else {
			lines = append(lines, fmt.Sprintf("export PATH=%q:$PATH", prefix))
		}
	}
	return lines
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
