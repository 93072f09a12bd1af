package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	// The test hosts are always one of the supported operating systems.
	plat, err := Detect()
	require.NoError(t, err)
	assert.Equal(t, runtime.GOOS, plat.OS)
	assert.Equal(t, runtime.GOARCH, plat.Arch)
}

func TestJavaArch(t *testing.T) {
	assert.Equal(t, "x64", Platform{OS: "linux", Arch: "amd64"}.JavaArch())
	assert.Equal(t, "aarch64", Platform{OS: "darwin", Arch: "arm64"}.JavaArch())
	assert.Equal(t, "riscv64", Platform{OS: "linux", Arch: "riscv64"}.JavaArch())
}

func TestNodeArch(t *testing.T) {
	assert.Equal(t, "x64", Platform{OS: "linux", Arch: "amd64"}.NodeArch())
	assert.Equal(t, "arm64", Platform{OS: "darwin", Arch: "arm64"}.NodeArch())
}

func TestGoArch(t *testing.T) {
	arch, err := Platform{OS: "linux", Arch: "amd64"}.GoArch()
	require.NoError(t, err)
	assert.Equal(t, "amd64", arch)

	arch, err = Platform{OS: "darwin", Arch: "arm64"}.GoArch()
	require.NoError(t, err)
	assert.Equal(t, "arm64", arch)

	_, err = Platform{OS: "linux", Arch: "386"}.GoArch()
	assert.Error(t, err)
}

func TestExeSuffix(t *testing.T) {
	assert.Equal(t, ".exe", Platform{OS: "windows", Arch: "amd64"}.ExeSuffix())
	assert.Equal(t, "", Platform{OS: "linux", Arch: "amd64"}.ExeSuffix())
}

func TestString(t *testing.T) {
	assert.Equal(t, "linux/amd64", Platform{OS: "linux", Arch: "amd64"}.String())
}
