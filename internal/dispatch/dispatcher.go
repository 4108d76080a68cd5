package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"

	"spool/internal/fetcher/ytdlp"
	"spool/internal/logging"
	"spool/internal/manifest"
	"spool/internal/resolver"
)

// Options configures dispatch behavior for a run.
type Options struct {
	// Preference is the run-level accelerator preference; Forced gets a
	// louder degradation warning when the accelerator is missing.
	Preference resolver.Preference
	// FetchTimeout bounds one fetcher invocation. Zero disables it.
	FetchTimeout time.Duration
}

// Dispatcher invokes the external fetcher for resolved jobs. It holds
// no per-job state and is safe for concurrent use by workers.
type Dispatcher struct {
	fetcher ytdlp.Client
	accel   func() bool
	opts    Options
	logger  *slog.Logger
}

// New constructs a dispatcher. acceleratorAvailable is the cached
// process-wide capability check.
func New(fetcher ytdlp.Client, acceleratorAvailable func() bool, opts Options, logger *slog.Logger) *Dispatcher {
	if acceleratorAvailable == nil {
		acceleratorAvailable = func() bool { return false }
	}
	return &Dispatcher{
		fetcher: fetcher,
		accel:   acceleratorAvailable,
		opts:    opts,
		logger:  logging.WithComponent(logger, "dispatcher"),
	}
}

// Dispatch runs one job to completion. A nil return means the fetcher
// completed cleanly. Cancellation surfaces as context.Canceled so the
// coordinator records a skip, never a failure.
func (d *Dispatcher) Dispatch(ctx context.Context, job manifest.Job, policy resolver.Policy) error {
	backend := policy.Backend
	if backend == resolver.BackendAccelerated && !d.accel() {
		// Correctness of the download matters more than backend choice:
		// degrade instead of failing the job, even under Forced.
		backend = resolver.BackendStandard
		if d.opts.Preference == resolver.PreferenceForced {
			d.logger.Error("accelerator forced but not installed; downloading with standard backend",
				logging.String(logging.FieldURL, job.URL),
				logging.String(logging.FieldManifest, job.Manifest),
				logging.Int(logging.FieldLine, job.Line),
			)
		} else {
			d.logger.Warn("accelerator unavailable; downloading with standard backend",
				logging.String(logging.FieldURL, job.URL),
			)
		}
	}

	req := ytdlp.FetchRequest{
		URL:         job.URL,
		DestDir:     job.DestDir,
		Format:      policy.Ceiling.FormatSelector(),
		Accelerated: backend == resolver.BackendAccelerated,
	}

	d.logger.Info("fetch starting",
		logging.String(logging.FieldURL, job.URL),
		logging.String(logging.FieldDest, job.DestDir),
		logging.String(logging.FieldBackend, backend.String()),
		logging.String(logging.FieldFormat, req.Format),
		logging.Bool("avoid_throttle", policy.AvoidThrottle),
	)

	err := d.invoke(ctx, req)
	if err == nil {
		return nil
	}
	if IsCancellation(err) || ctx.Err() != nil {
		return context.Canceled
	}
	if errors.Is(err, timeout.ErrExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, d.opts.FetchTimeout)
	}
	return fmt.Errorf("%w: %v", ErrFetchFailed, err)
}

func (d *Dispatcher) invoke(ctx context.Context, req ytdlp.FetchRequest) error {
	if d.opts.FetchTimeout <= 0 {
		return d.fetcher.Fetch(ctx, req)
	}
	executor := failsafe.With[any](timeout.New[any](d.opts.FetchTimeout)).WithContext(ctx)
	return executor.RunWithExecution(func(exec failsafe.Execution[any]) error {
		return d.fetcher.Fetch(exec.Context(), req)
	})
}
