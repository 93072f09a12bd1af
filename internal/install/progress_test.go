package install

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	prog := NewProgress()
	assert.Equal(t, "Ready for installation", prog.Snapshot().Status)

	prog.SetStatus("Downloading Go...")
	prog.SetDownload(0.5)
	prog.SetExtract(0.25)
	prog.Logf("Downloading: %s", "https://example.com/go.tar.gz")
	prog.LogOutput("go version go1.22.5 linux/amd64")

	snap := prog.Snapshot()
	assert.Equal(t, "Downloading Go...", snap.Status)
	assert.Equal(t, 0.5, snap.DownloadFraction)
	assert.Equal(t, 0.25, snap.ExtractFraction)
	assert.Contains(t, snap.Log, "Downloading: https://example.com/go.tar.gz\n")
	assert.Contains(t, snap.Log, "go version go1.22.5 linux/amd64\n")
}

func TestProgressOnChange(t *testing.T) {
	prog := NewProgress()

	var seen []Snapshot
	prog.OnChange = func(s Snapshot) { seen = append(seen, s) }

	prog.SetStatus("step one")
	prog.SetDownload(1.0)
	prog.LogOutput("")

	// The empty LogOutput is a no-op and must not notify.
	assert.Len(t, seen, 2)
	assert.Equal(t, "step one", seen[0].Status)
	assert.Equal(t, 1.0, seen[1].DownloadFraction)
}
