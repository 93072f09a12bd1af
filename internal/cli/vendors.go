package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sdkmhq/sdkm/internal/style"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

// vendorsCmd represents the vendors command
var vendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List supported vendors",
	Long:  `List every vendor sdkm can install and whether it accepts an explicit version.`,
	Run: func(cmd *cobra.Command, args []string) {
		showVendors(cmd)
	},
}

func init() {
	rootCmd.AddCommand(vendorsCmd)
}

// VendorInfo describes one supported vendor.
type VendorInfo struct {
	Name           string `json:"name" yaml:"name"`
	DisplayName    string `json:"display_name" yaml:"display_name"`
	AcceptsVersion bool   `json:"accepts_version" yaml:"accepts_version"`
}

func showVendors(cmd *cobra.Command) {
	vendors := toolchain.Vendors()
	infos := make([]VendorInfo, 0, len(vendors))
	for _, v := range vendors {
		infos = append(infos, VendorInfo{
			Name:           string(v),
			DisplayName:    v.DisplayName(),
			AcceptsVersion: v.AcceptsVersion(),
		})
	}

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(cmd.OutOrStdout(), infos)
	case "yaml":
		style.PrintYAML(cmd.OutOrStdout(), infos)
	default:
		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			versioned := "latest only"
			if info.AcceptsVersion {
				versioned = "yes"
			}
			rows = append(rows, []string{info.Name, info.DisplayName, versioned})
		}
		printTable(cmd.OutOrStdout(), []string{"VENDOR", "NAME", "VERSION FLAG"}, rows)
	}
}
