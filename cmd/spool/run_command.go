package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"spool/internal/batch"
	"spool/internal/config"
	"spool/internal/deps"
	"spool/internal/dispatch"
	"spool/internal/fetcher/ytdlp"
	"spool/internal/logging"
	"spool/internal/manifest"
	"spool/internal/resolver"
	"spool/internal/runlock"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		forceBestQuality bool
		probeFirst       bool
		noAccelerator    bool
		preferAccel      bool
		forceAccel       bool
		updateFetcher    bool
		workers          int
		retries          int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Download every manifest entry into the output tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg, runFlags{
				forceBestQuality: forceBestQuality,
				probeFirst:       probeFirst,
				noAccelerator:    noAccelerator,
				preferAccel:      preferAccel,
				forceAccel:       forceAccel,
				updateFetcher:    updateFetcher,
				workers:          workers,
				retries:          retries,
			})
			if err := cfg.Validate(); err != nil {
				return err
			}

			signalCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runBatch(signalCtx, cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&forceBestQuality, "force-best-quality", false, "Allow highest quality even if it may be throttled")
	cmd.Flags().BoolVar(&probeFirst, "probe", false, "Probe available formats before each download")
	cmd.Flags().BoolVar(&noAccelerator, "no-aria2c", false, "Disable aria2c even if installed")
	cmd.Flags().BoolVar(&preferAccel, "prefer-aria2c", false, "Prefer aria2c and warn if it's unavailable")
	cmd.Flags().BoolVar(&forceAccel, "use-aria2c", false, "Force use of aria2c even for YouTube")
	cmd.Flags().BoolVar(&updateFetcher, "update-ytdlp", false, "Force yt-dlp to update before running")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent download workers (overrides config)")
	cmd.Flags().IntVar(&retries, "retries", -1, "Extra dispatch attempts per failed job (overrides config)")

	return cmd
}

type runFlags struct {
	forceBestQuality bool
	probeFirst       bool
	noAccelerator    bool
	preferAccel      bool
	forceAccel       bool
	updateFetcher    bool
	workers          int
	retries          int
}

// applyRunFlags lets command line switches override the loaded config,
// mirroring the precedence users expect from one-off runs.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, flags runFlags) {
	if flags.forceBestQuality {
		cfg.Quality.ForceBest = true
	}
	if flags.probeFirst {
		cfg.Quality.ProbeBeforeDownload = true
	}
	switch {
	case flags.noAccelerator:
		cfg.Accelerator.Preference = "disabled"
	case flags.forceAccel:
		cfg.Accelerator.Preference = "forced"
	case flags.preferAccel:
		cfg.Accelerator.Preference = "preferred"
	}
	if flags.updateFetcher {
		cfg.Fetcher.UpdateBeforeRun = true
	}
	if cmd.Flags().Changed("workers") && flags.workers > 0 {
		cfg.Batch.Workers = flags.workers
	}
	if cmd.Flags().Changed("retries") && flags.retries >= 0 {
		cfg.Batch.Retries = flags.retries
	}
}

func runBatch(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stderr", filepath.Join(cfg.Paths.LogDir, "spool.log")},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	lock, err := runlock.Acquire(cfg.Paths.LogDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	statuses := deps.CheckBinaries(deps.Required(cfg.Fetcher.Binary, cfg.Accelerator.Binary))
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, status := range missing {
			names = append(names, status.Command)
		}
		return fmt.Errorf("required tools missing: %s (run 'spool deps' for details)", strings.Join(names, ", "))
	}

	preference, err := resolver.ParsePreference(cfg.Accelerator.Preference)
	if err != nil {
		return err
	}
	accelCheck := deps.NewAcceleratorCheck(cfg.Accelerator.Binary)
	if !accelCheck.Available() {
		switch preference {
		case resolver.PreferencePreferred, resolver.PreferenceForced:
			logger.Warn("accelerator not found; install aria2 or use --no-aria2c",
				logging.String("binary", cfg.Accelerator.Binary))
		}
	}

	fetcher := ytdlp.NewCLI(
		ytdlp.WithBinary(cfg.Fetcher.Binary),
		ytdlp.WithArchiveFile(cfg.Paths.ArchiveFile),
		ytdlp.WithUserAgent(cfg.Fetcher.UserAgent),
		ytdlp.WithConcurrentFragments(cfg.Fetcher.ConcurrentFragments),
		ytdlp.WithAccelerator(cfg.Accelerator.Binary, cfg.Accelerator.Connections, cfg.Accelerator.ChunkSize),
		ytdlp.WithOutputSink(func(line string) {
			logger.Debug(line, logging.String(logging.FieldComponent, "yt-dlp"))
		}),
	)
	maintainFetcher(ctx, logger, fetcher, cfg.Fetcher.UpdateBeforeRun)

	jobs, err := collectJobs(cfg, logger)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No URLs found. Add one URL per line to the .urls files in", cfg.Paths.ManifestDir)
		fmt.Fprintln(cmd.OutOrStdout(), "Lines starting with '#' are comments. The manifest name picks the destination subdirectory.")
		return nil
	}

	res := resolver.New(fetcher, accelCheck.Available, resolver.Options{
		ForceBestQuality:    cfg.Quality.ForceBest,
		ProbeBeforeDownload: cfg.Quality.ProbeBeforeDownload,
		Preference:          preference,
		ProbeTimeout:        time.Duration(cfg.Fetcher.ProbeTimeout) * time.Second,
	}, logger)

	disp := dispatch.New(fetcher, accelCheck.Available, dispatch.Options{
		Preference:   preference,
		FetchTimeout: time.Duration(cfg.Fetcher.FetchTimeout) * time.Second,
	}, logger)

	coordinator := batch.New(res, disp, batch.Options{
		Workers: cfg.Batch.Workers,
		Retries: cfg.Batch.Retries,
	}, logger)

	summary := coordinator.Run(ctx, jobs)
	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(&summary))

	if ctx.Err() != nil {
		return context.Canceled
	}
	if _, _, failed := summary.Counts(); failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(summary.Outcomes))
	}
	return nil
}

// maintainFetcher handles the update-before-run toggle; when disabled
// it still warns about an outdated tool, since stale extractors are
// the most common cause of throttling and fetch failures.
func maintainFetcher(ctx context.Context, logger *slog.Logger, fetcher *ytdlp.CLI, update bool) {
	if update {
		if err := fetcher.Update(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("fetcher update failed", logging.Error(err))
		}
		return
	}
	outdated, err := fetcher.Outdated(ctx)
	if err == nil && outdated {
		logger.Warn("yt-dlp is outdated; run with --update-ytdlp to avoid throttling or extractor bugs")
	}
}

func collectJobs(cfg *config.Config, logger *slog.Logger) ([]manifest.Job, error) {
	manifests, err := manifest.Enumerate(cfg.Paths.ManifestDir, cfg.Paths.OutputDir)
	if err != nil {
		return nil, err
	}

	var jobs []manifest.Job
	for _, m := range manifests {
		loaded, err := manifest.LoadJobs(m)
		if err != nil {
			// Unreadable manifests are skipped, never fatal.
			logger.Warn("skipping unreadable manifest",
				logging.String(logging.FieldManifest, m.Name),
				logging.Error(err),
			)
			continue
		}
		jobs = append(jobs, loaded...)
	}
	return jobs, nil
}
