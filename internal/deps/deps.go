// Package deps reports availability of the external tools spool
// drives. The accelerator check is a process-wide fact computed once
// per run, not re-probed per job.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Requirement defines an external binary spool relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// Required returns the dependency set for the given binary names.
func Required(fetcherBinary, acceleratorBinary string) []Requirement {
	return []Requirement{
		{Name: "fetcher", Command: fetcherBinary, Description: "downloads and muxes media"},
		{Name: "ffmpeg", Command: "ffmpeg", Description: "merges and embeds streams"},
		{Name: "accelerator", Command: acceleratorBinary, Description: "multi-connection transfer backend", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{Requirement: req}
		status.Command = cmd
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the non-optional requirements that are not
// available, in check order.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			missing = append(missing, status)
		}
	}
	return missing
}

// AcceleratorCheck caches the accelerator availability lookup for the
// duration of a run.
type AcceleratorCheck struct {
	once      sync.Once
	binary    string
	available bool
}

// NewAcceleratorCheck prepares a cached lookup for the given binary.
func NewAcceleratorCheck(binary string) *AcceleratorCheck {
	return &AcceleratorCheck{binary: binary}
}

// Available reports whether the accelerator binary is on PATH. The
// first call resolves it; later calls return the cached answer.
func (c *AcceleratorCheck) Available() bool {
	c.once.Do(func() {
		if strings.TrimSpace(c.binary) == "" {
			return
		}
		_, err := exec.LookPath(c.binary)
		c.available = err == nil
	})
	return c.available
}
