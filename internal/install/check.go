package install

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/sdkmhq/sdkm/internal/platform"
	"github.com/sdkmhq/sdkm/internal/toolchain"
)

// AlreadyInstalled reports whether a compatible toolchain already exists at
// installPath. Probe failures of any kind mean "not installed" so that a
// broken tree is simply reinstalled over, never a hard error.
func AlreadyInstalled(vendor toolchain.Vendor, installPath, targetVersion string, plat platform.Platform, prog *Progress) (bool, string) {
	if _, err := os.Stat(installPath); err != nil {
		prog.Logf("No existing %s installation found at %s. Proceeding with new installation.", vendor, installPath)
		return false, ""
	}

	installed, err := Verify(vendor, installPath, plat, nil)
	if err != nil {
		prog.Logf("Could not verify existing %s installation at %s. Proceeding with new installation.", vendor, installPath)
		log.Debug().Err(err).Str("vendor", string(vendor)).Msg("idempotency probe failed")
		return false, ""
	}

	if Compatible(installed, targetVersion) {
		prog.Logf("%s version %s is already installed at %s.", vendor, installed, installPath)
		return true, installed
	}

	prog.Logf("Existing %s version %s at %s is not compatible with requested version %s. Proceeding with new installation.", vendor, installed, installPath, targetVersion)
	return false, installed
}
