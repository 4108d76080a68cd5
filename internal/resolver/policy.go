package resolver

import "fmt"

// Backend selects which downloader path the fetcher should take.
type Backend int

const (
	BackendStandard Backend = iota
	BackendAccelerated
)

func (b Backend) String() string {
	switch b {
	case BackendAccelerated:
		return "accelerated"
	default:
		return "standard"
	}
}

// Preference expresses how strongly the accelerator should be used.
type Preference int

const (
	PreferenceAuto Preference = iota
	PreferenceDisabled
	PreferencePreferred
	PreferenceForced
)

func (p Preference) String() string {
	switch p {
	case PreferenceDisabled:
		return "disabled"
	case PreferencePreferred:
		return "preferred"
	case PreferenceForced:
		return "forced"
	default:
		return "auto"
	}
}

// ParsePreference maps the configuration string to a Preference.
func ParsePreference(value string) (Preference, error) {
	switch value {
	case "auto", "":
		return PreferenceAuto, nil
	case "disabled":
		return PreferenceDisabled, nil
	case "preferred":
		return PreferencePreferred, nil
	case "forced":
		return PreferenceForced, nil
	default:
		return PreferenceAuto, fmt.Errorf("unknown accelerator preference %q", value)
	}
}

// Ceiling is the resolved quality ceiling for a job.
type Ceiling int

const (
	// CeilingBestAvailable takes the best single ready-made stream.
	CeilingBestAvailable Ceiling = iota
	// CeilingBestMerged merges the best video and audio streams
	// regardless of codec; used when best quality is forced.
	CeilingBestMerged
	// CeilingCompat1080 caps at 1080p in a broadly compatible mp4
	// container, the fast reference point for throttled sources.
	CeilingCompat1080
)

func (c Ceiling) String() string {
	switch c {
	case CeilingBestMerged:
		return "best-merged"
	case CeilingCompat1080:
		return "compat-1080"
	default:
		return "best-available"
	}
}

// FormatSelector returns the yt-dlp format expression for the ceiling.
func (c Ceiling) FormatSelector() string {
	switch c {
	case CeilingBestMerged:
		return "bestvideo+bestaudio/best"
	case CeilingCompat1080:
		return "bestvideo[ext=mp4][height<=1080]+bestaudio[ext=m4a]/best[ext=mp4]"
	default:
		return "best"
	}
}

// Policy is the resolved selection strategy for one job. It is
// produced once per job and consumed once by the dispatcher.
type Policy struct {
	Backend       Backend
	Ceiling       Ceiling
	AvoidThrottle bool
	// Warnings carries non-fatal diagnostics gathered during
	// resolution, for the run log and summary.
	Warnings []string
}
