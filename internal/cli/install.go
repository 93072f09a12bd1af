package cli

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sdkmhq/sdkm/internal/download"
	"github.com/sdkmhq/sdkm/internal/install"
	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/resolve"
	"github.com/sdkmhq/sdkm/internal/style"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

var (
	installVersion  string
	installLatest   bool
	installPackages string
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install <vendor>",
	Short: "Install a toolchain",
	Long: `Install a development toolchain for the given vendor.

Java vendors (azul, temurin, openjdk) and Python accept an explicit
--version; C/C++, Rust, Node.js and Go always install their latest
supported release. Python additionally accepts --packages to install pip
packages after the interpreter is verified.

Press Ctrl+C to cancel a running installation; partial state is left on
disk and the next install run reinstalls over it.`,
	Example: `
  sdkm install azul --version 21
  sdkm install temurin --latest
  sdkm install python --version 3.12.4 --packages "numpy>=1.20.0,requests"
  sdkm install go`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().StringVar(&installVersion, "version", "", "toolchain version to install (Java vendors and Python only)")
	installCmd.Flags().BoolVar(&installLatest, "latest", false, "install the latest available version")
	installCmd.Flags().StringVar(&installPackages, "packages", "", "comma-separated pip package specifiers to install (Python only)")
}

func runInstall(cmd *cobra.Command, vendorArg string) error {
	vendor, err := toolchain.ParseVendor(vendorArg)
	if err != nil {
		return err
	}

	req, err := buildRequest(vendor)
	if err != nil {
		return err
	}

	plat, err := platform.Detect()
	if err != nil {
		return err
	}

	orch, err := newOrchestrator(plat)
	if err != nil {
		return err
	}

	token := toolchain.NewCancelToken()
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupts)
	go func() {
		if _, ok := <-interrupts; ok {
			token.Cancel()
		}
		// A second interrupt means the user is done waiting.
		if _, ok := <-interrupts; ok {
			os.Exit(130)
		}
	}()

	prog := install.NewProgress()
	spin := style.NewSpinner(cmd.OutOrStdout())
	if outputFormat == "text" && !quiet {
		prog.OnChange = func(s install.Snapshot) {
			spin.SetSuffix(fmt.Sprintf(" %s  %s %s",
				s.Status,
				style.RenderProgressBar(s.DownloadFraction, 20),
				style.RenderProgressBar(s.ExtractFraction, 20)))
		}
		spin.Start()
	}

	result, runErr := orch.Run(cmd.Context(), req, token, prog)
	spin.Stop()
	signal.Stop(interrupts)
	close(interrupts)

	if verbose || runErr != nil {
		fmt.Fprint(cmd.OutOrStdout(), prog.Snapshot().Log)
	}

	if runErr != nil {
		if toolchain.IsCancelled(runErr) {
			style.Warning(cmd.OutOrStdout(), "Installation cancelled.")
			return nil
		}
		return runErr
	}

	return finishInstall(cmd, result, plat)
}

// finishInstall applies the environment record to the current process, then
// reports the outcome. Persistence across sessions stays with the user; the
// printed notes say so.
func finishInstall(cmd *cobra.Command, result *install.Result, plat platform.Platform) error {
	if err := result.Env.Apply(); err != nil {
		return err
	}
	printInstallResult(cmd, result, plat)
	return nil
}

func buildRequest(vendor toolchain.Vendor) (toolchain.InstallRequest, error) {
	if installVersion != "" && !vendor.AcceptsVersion() {
		return toolchain.InstallRequest{}, fmt.Errorf("%s does not accept an explicit version; it always installs the latest supported release", vendor.DisplayName())
	}
	if vendor.AcceptsVersion() && installVersion == "" && !installLatest {
		return toolchain.InstallRequest{}, fmt.Errorf("%s requires --version or --latest", vendor.DisplayName())
	}
	if installPackages != "" && vendor != toolchain.VendorPython {
		return toolchain.InstallRequest{}, fmt.Errorf("--packages is only supported for the python vendor")
	}

	var packages []string
	for _, spec := range strings.Split(installPackages, ",") {
		if spec = strings.TrimSpace(spec); spec != "" {
			packages = append(packages, spec)
		}
	}

	return toolchain.InstallRequest{
		Vendor:        vendor,
		Version:       installVersion,
		InstallLatest: installLatest,
		Packages:      packages,
	}, nil
}

func newOrchestrator(plat platform.Platform) (*install.Orchestrator, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not find home directory: %w", err)
	}

	// Metadata lookups are quick; the archive download gets a much longer
	// leash.
	metaClient := &http.Client{Timeout: viper.GetDuration("metadata-timeout")}
	downloadClient := &http.Client{Timeout: viper.GetDuration("download-timeout")}
	downloader := download.NewDownloader(downloadClient)

	return &install.Orchestrator{
		Resolvers:  resolve.Default(),
		MetaClient: metaClient,
		Downloader: downloader,
		Packages:   install.NewPackageInstaller(downloader, plat),
		Home:       home,
		RootName:   viper.GetString("install-root"),
		Platform:   plat,
	}, nil
}

func printInstallResult(cmd *cobra.Command, result *install.Result, plat platform.Platform) {
	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(cmd.OutOrStdout(), result)
	case "yaml":
		style.PrintYAML(cmd.OutOrStdout(), result)
	default:
		w := cmd.OutOrStdout()
		if result.AlreadyInstalled {
			style.Success(w, fmt.Sprintf("%s %s is already installed at %s", result.Vendor.DisplayName(), result.Version, result.InstallPath))
		} else {
			style.Success(w, fmt.Sprintf("Installed %s %s at %s", result.Vendor.DisplayName(), result.Version, result.InstallPath))
		}
		for _, line := range result.Env.ExportLines(plat) {
			fmt.Fprintf(w, "  %s\n", line)
		}
		for _, note := range result.Env.Notes {
			style.Info(w, note)
		}
	}
}
