// Package install sequences a toolchain installation end to end: resolve,
// idempotency check, download, extract, environment setup, verification and
// the Python package post-step.
package install

import (
	"fmt"
	"strings"
	"sync"
)

// Progress is the mutable state of one installation run. One goroutine
// mutates it while another observes it, so every access goes through the
// lock. The log is append-only for the lifetime of the run.
type Progress struct {
	mu sync.Mutex

	status           string
	downloadFraction float64
	extractFraction  float64
	log              strings.Builder

	// OnChange, when set, is invoked after every mutation with the lock
	// released so observers can redraw.
	OnChange func(Snapshot)
}

// Snapshot is a point-in-time copy of the run state.
type Snapshot struct {
	Status           string
	DownloadFraction float64
	ExtractFraction  float64
	Log              string
}

// NewProgress returns a run state ready for use.
func NewProgress() *Progress {
	return &Progress{status: "Ready for installation"}
}

// SetStatus replaces the status line.
func (p *Progress) SetStatus(status string) {
	p.mu.Lock()
	p.status = status
	p.mu.Unlock()
	p.notify()
}

// SetDownload records the download fraction in [0, 1].
func (p *Progress) SetDownload(fraction float64) {
	p.mu.Lock()
	p.downloadFraction = fraction
	p.mu.Unlock()
	p.notify()
}

// SetExtract records the extraction fraction in [0, 1].
func (p *Progress) SetExtract(fraction float64) {
	p.mu.Lock()
	p.extractFraction = fraction
	p.mu.Unlock()
	p.notify()
}

// Logf appends a line to the run log.
func (p *Progress) Logf(format string, args ...interface{}) {
	p.mu.Lock()
	fmt.Fprintf(&p.log, format+"\n", args...)
	p.mu.Unlock()
	p.notify()
}

// LogOutput appends raw subprocess output verbatim.
func (p *Progress) LogOutput(out string) {
	if out == "" {
		return
	}
	p.mu.Lock()
	p.log.WriteString(out)
	if !strings.HasSuffix(out, "\n") {
		p.log.WriteString("\n")
	}
	p.mu.Unlock()
	p.notify()
}

// Snapshot returns a consistent copy of the current state.
func (p *Progress) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Status:           p.status,
		DownloadFraction: p.downloadFraction,
		ExtractFraction:  p.extractFraction,
		Log:              p.log.String(),
	}
}

func (p *Progress) notify() {
	if p.OnChange != nil {
		p.OnChange(p.Snapshot())
	}
}
