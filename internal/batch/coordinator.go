package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/google/uuid"

	"spool/internal/dispatch"
	"spool/internal/logging"
	"spool/internal/manifest"
	"spool/internal/resolver"
)

// Resolver produces the format policy for one job.
type Resolver interface {
	Resolve(ctx context.Context, job manifest.Job) resolver.Policy
}

// Dispatcher runs one resolved job against the external fetcher.
type Dispatcher interface {
	Dispatch(ctx context.Context, job manifest.Job, policy resolver.Policy) error
}

// Options tunes scheduling; neither value is part of job semantics.
type Options struct {
	// Workers bounds dispatch concurrency, respecting the external
	// tools' own connection and process limits.
	Workers int
	// Retries is the number of extra dispatch attempts after a failed
	// first try. Cancellation is never retried.
	Retries int
}

// Coordinator owns scheduling and the aggregate outcome set.
type Coordinator struct {
	resolver   Resolver
	dispatcher Dispatcher
	opts       Options
	logger     *slog.Logger
}

// New constructs a coordinator.
func New(res Resolver, disp Dispatcher, opts Options, logger *slog.Logger) *Coordinator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	return &Coordinator{
		resolver:   res,
		dispatcher: disp,
		opts:       opts,
		logger:     logging.WithComponent(logger, "batch"),
	}
}

// Run processes every job to a terminal state and returns the summary.
// A single job's failure never aborts the batch. Cancelling ctx stops
// new dispatches; remaining jobs finish as skipped, never pending.
func (c *Coordinator) Run(ctx context.Context, jobs []manifest.Job) Summary {
	summary := Summary{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	logger := c.logger.With(logging.String(logging.FieldRunID, summary.RunID))
	logger.Info("batch starting",
		logging.Int("jobs", len(jobs)),
		logging.Int("workers", c.opts.Workers),
	)

	jobCh := make(chan manifest.Job)
	resultCh := make(chan Outcome)

	var workers sync.WaitGroup
	workers.Add(c.opts.Workers)
	for i := 0; i < c.opts.Workers; i++ {
		go func() {
			defer workers.Done()
			for job := range jobCh {
				resultCh <- c.process(ctx, logger, job)
			}
		}()
	}

	var collector sync.WaitGroup
	collector.Add(1)
	go func() {
		defer collector.Done()
		for outcome := range resultCh {
			summary.Outcomes = append(summary.Outcomes, outcome)
		}
	}()

	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)
	workers.Wait()
	close(resultCh)
	collector.Wait()

	summary.Elapsed = time.Since(summary.Started)
	succeeded, skipped, failed := summary.Counts()
	logger.Info("batch complete",
		logging.Int("succeeded", succeeded),
		logging.Int("skipped", skipped),
		logging.Int("failed", failed),
		logging.Duration(logging.FieldElapsed, summary.Elapsed),
	)
	return summary
}

// process takes one job from pending to a terminal state: resolve,
// then dispatch, with resolution always completing before dispatch.
func (c *Coordinator) process(ctx context.Context, logger *slog.Logger, job manifest.Job) Outcome {
	started := time.Now()
	jobAttrs := []logging.Attr{
		logging.String(logging.FieldManifest, job.Manifest),
		logging.Int(logging.FieldLine, job.Line),
		logging.String(logging.FieldURL, job.URL),
	}

	if ctx.Err() != nil {
		return Outcome{Job: job, Status: StatusSkipped, Reason: ReasonCancelled}
	}

	policy := c.resolver.Resolve(ctx, job)
	for _, warning := range policy.Warnings {
		logger.Warn(warning, logging.Args(jobAttrs...)...)
	}

	if ctx.Err() != nil {
		return Outcome{Job: job, Status: StatusSkipped, Reason: ReasonCancelled, Elapsed: time.Since(started)}
	}

	err := c.dispatchWithRetry(ctx, job, policy)
	elapsed := time.Since(started)
	switch {
	case err == nil:
		logger.Info("job succeeded", logging.Args(append(jobAttrs, logging.Duration(logging.FieldElapsed, elapsed))...)...)
		return Outcome{Job: job, Status: StatusSucceeded, Elapsed: elapsed}
	case dispatch.IsCancellation(err):
		logger.Info("job cancelled", logging.Args(jobAttrs...)...)
		return Outcome{Job: job, Status: StatusSkipped, Reason: ReasonCancelled, Elapsed: elapsed}
	default:
		logger.Error("job failed", logging.Args(append(jobAttrs, logging.Error(err))...)...)
		return Outcome{Job: job, Status: StatusFailed, Err: err, Elapsed: elapsed}
	}
}

func (c *Coordinator) dispatchWithRetry(ctx context.Context, job manifest.Job, policy resolver.Policy) error {
	if c.opts.Retries == 0 {
		return c.dispatcher.Dispatch(ctx, job, policy)
	}
	retry := retrypolicy.NewBuilder[any]().
		HandleIf(func(_ any, err error) bool {
			return err != nil && !dispatch.IsCancellation(err)
		}).
		WithMaxRetries(c.opts.Retries).
		Build()
	return failsafe.With[any](retry).WithContext(ctx).Run(func() error {
		return c.dispatcher.Dispatch(ctx, job, policy)
	})
}
