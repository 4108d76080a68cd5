package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spool/internal/fetcher/ytdlp"
	"spool/internal/logging"
	"spool/internal/manifest"
)

// Prober is the external probe capability: inspect the best available
// stream without downloading it.
type Prober interface {
	Probe(ctx context.Context, url string) (ytdlp.ProbeResult, error)
}

// Options carries the recognized resolution settings.
type Options struct {
	ForceBestQuality    bool
	ProbeBeforeDownload bool
	Preference          Preference
	ProbeTimeout        time.Duration
}

// Resolver computes a Policy per job. It holds no per-job state.
type Resolver struct {
	prober Prober
	accel  func() bool
	opts   Options
	logger *slog.Logger
}

// New constructs a resolver. acceleratorAvailable is consulted lazily
// so the process-wide capability check stays cached in one place.
func New(prober Prober, acceleratorAvailable func() bool, opts Options, logger *slog.Logger) *Resolver {
	if acceleratorAvailable == nil {
		acceleratorAvailable = func() bool { return false }
	}
	return &Resolver{
		prober: prober,
		accel:  acceleratorAvailable,
		opts:   opts,
		logger: logging.WithComponent(logger, "resolver"),
	}
}

// Decision is the input to the pure policy decision.
type Decision struct {
	ForceBestQuality     bool
	Preference           Preference
	AcceleratorAvailable bool
	Source               manifest.Source
	Probed               bool
	Probe                ytdlp.ProbeResult
}

// Decide maps a Decision to a Policy. It invokes no external process
// and is the single place backend and ceiling rules live.
func Decide(in Decision) Policy {
	var policy Policy

	switch in.Preference {
	case PreferenceForced:
		policy.Backend = BackendAccelerated
		if in.Source.StreamingPlatform {
			policy.Warnings = append(policy.Warnings, "accelerator forced for a streaming platform source; transfers may be slow")
		}
	case PreferenceDisabled:
		policy.Backend = BackendStandard
	case PreferencePreferred:
		if in.AcceleratorAvailable {
			policy.Backend = BackendAccelerated
		} else {
			policy.Backend = BackendStandard
			policy.Warnings = append(policy.Warnings, "accelerator preferred but not installed; using standard downloader")
		}
	default: // PreferenceAuto
		if in.AcceleratorAvailable && !in.Source.StreamingPlatform && !in.Source.Playlist {
			policy.Backend = BackendAccelerated
		} else {
			policy.Backend = BackendStandard
		}
	}

	if in.ForceBestQuality {
		policy.Ceiling = CeilingBestMerged
		if in.Probed && in.Probe.Throttled {
			policy.Warnings = append(policy.Warnings, fmt.Sprintf("best quality forced over throttled %s stream; expect slow transfers", in.Probe.Codec))
		}
		return policy
	}

	policy.Ceiling = CeilingBestAvailable
	if in.Probed && in.Probe.Throttled {
		policy.Ceiling = CeilingCompat1080
		policy.AvoidThrottle = true
		if !in.Probe.CompatAvailable {
			policy.Warnings = append(policy.Warnings, "no mp4 1080p stream reported; relying on the fallback selector")
		}
	}
	return policy
}

// Resolve computes the policy for one job, probing first when
// configured. Probe failures are non-fatal: the job resolves as if
// probing were disabled and the diagnostic lands in the policy.
func (r *Resolver) Resolve(ctx context.Context, job manifest.Job) Policy {
	decision := Decision{
		ForceBestQuality:     r.opts.ForceBestQuality,
		Preference:           r.opts.Preference,
		AcceleratorAvailable: r.accel(),
		Source:               manifest.ClassifySource(job.URL),
	}

	if r.opts.ProbeBeforeDownload && r.prober != nil {
		probeCtx := ctx
		if r.opts.ProbeTimeout > 0 {
			var cancel context.CancelFunc
			probeCtx, cancel = context.WithTimeout(ctx, r.opts.ProbeTimeout)
			defer cancel()
		}
		result, err := r.prober.Probe(probeCtx, job.URL)
		if err != nil {
			r.logger.Warn("format probe failed; resolving without probe data",
				logging.String(logging.FieldURL, job.URL),
				logging.String(logging.FieldManifest, job.Manifest),
				logging.Int(logging.FieldLine, job.Line),
				logging.Error(err),
			)
			policy := Decide(decision)
			policy.Warnings = append(policy.Warnings, fmt.Sprintf("probe failed: %v", err))
			return policy
		}
		decision.Probed = true
		decision.Probe = result
		r.logger.Debug("format probe complete",
			logging.String(logging.FieldURL, job.URL),
			logging.String(logging.FieldCodec, result.Codec),
			logging.Int("best_height", result.BestHeight),
			logging.Bool("throttled", result.Throttled),
		)
	}

	policy := Decide(decision)
	r.logger.Debug("policy resolved",
		logging.String(logging.FieldURL, job.URL),
		logging.String(logging.FieldBackend, policy.Backend.String()),
		logging.String(logging.FieldFormat, policy.Ceiling.String()),
		logging.Bool("avoid_throttle", policy.AvoidThrottle),
	)
	return policy
}
