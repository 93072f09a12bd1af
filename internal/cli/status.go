package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sdkmhq/sdkm/internal/install"
	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/style"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status [vendor]",
	Short: "Show installed toolchains",
	Long: `List the toolchains currently installed under the sdkm root. Each
installation is re-verified by probing its executable, so the reported
version reflects what is actually on disk.`,
	Example: `
  sdkm status            # All vendors
  sdkm status python     # Python installations only`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vendors := toolchain.Vendors()
		if len(args) == 1 {
			vendor, err := toolchain.ParseVendor(args[0])
			if err != nil {
				return err
			}
			vendors = []toolchain.Vendor{vendor}
		}
		return showStatus(cmd, vendors)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// InstallationStatus describes one installed toolchain tree.
type InstallationStatus struct {
	Vendor      toolchain.Vendor `json:"vendor" yaml:"vendor"`
	Version     string           `json:"version" yaml:"version"`
	InstallPath string           `json:"install_path" yaml:"install_path"`
	Healthy     bool             `json:"healthy" yaml:"healthy"`
}

func showStatus(cmd *cobra.Command, vendors []toolchain.Vendor) error {
	plat, err := platform.Detect()
	if err != nil {
		return err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not find home directory: %w", err)
	}
	root := filepath.Join(home, viper.GetString("install-root"))

	var statuses []InstallationStatus
	for _, vendor := range vendors {
		statuses = append(statuses, collectStatuses(vendor, root, home, plat)...)
	}

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(cmd.OutOrStdout(), statuses)
	case "yaml":
		style.PrintYAML(cmd.OutOrStdout(), statuses)
	default:
		if len(statuses) == 0 {
			Info(cmd.OutOrStdout(), "No toolchains installed.")
			return nil
		}
		rows := make([][]string, 0, len(statuses))
		for _, s := range statuses {
			health := style.SuccessIcon()
			if !s.Healthy {
				health = style.ErrorIcon()
			}
			rows = append(rows, []string{string(s.Vendor), s.Version, s.InstallPath, health})
		}
		printTable(cmd.OutOrStdout(), []string{"VENDOR", "VERSION", "PATH", "OK"}, rows)
	}
	return nil
}

// collectStatuses probes every install directory a vendor owns. Rust has a
// single fixed location; everything else lives in per-version directories.
func collectStatuses(vendor toolchain.Vendor, root, home string, plat platform.Platform) []InstallationStatus {
	if vendor == toolchain.VendorRust {
		cargo := filepath.Join(home, ".cargo")
		version, err := install.Verify(vendor, cargo, plat, nil)
		if err != nil {
			return nil
		}
		return []InstallationStatus{{Vendor: vendor, Version: version, InstallPath: cargo, Healthy: true}}
	}

	versionsDir := filepath.Join(root, fmt.Sprintf("%s_versions", vendor))
	entries, err := os.ReadDir(versionsDir)
	if err != nil {
		return nil
	}

	var statuses []InstallationStatus
	prefix := string(vendor) + "-"
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		installPath := filepath.Join(versionsDir, entry.Name())
		version, err := install.Verify(vendor, installPath, plat, nil)
		if err != nil {
			// Directory exists but its executable does not answer; report
			// the directory-derived version as unhealthy.
			statuses = append(statuses, InstallationStatus{
				Vendor:      vendor,
				Version:     strings.TrimPrefix(entry.Name(), prefix),
				InstallPath: installPath,
			})
			continue
		}
		statuses = append(statuses, InstallationStatus{
			Vendor:      vendor,
			Version:     version,
			InstallPath: installPath,
			Healthy:     true,
		})
	}
	return statuses
}
