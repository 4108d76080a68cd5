package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"spool/internal/deps"
	"spool/internal/fetcher/ytdlp"
	"spool/internal/manifest"
	"spool/internal/resolver"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <url>",
		Short: "Inspect available formats and show the selection a run would make",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			url := args[0]

			fetcher := ytdlp.NewCLI(ytdlp.WithBinary(cfg.Fetcher.Binary))
			probeCtx := cmd.Context()
			if cfg.Fetcher.ProbeTimeout > 0 {
				var cancel context.CancelFunc
				probeCtx, cancel = context.WithTimeout(probeCtx, time.Duration(cfg.Fetcher.ProbeTimeout)*time.Second)
				defer cancel()
			}
			result, err := fetcher.Probe(probeCtx, url)
			if err != nil {
				return fmt.Errorf("probe %s: %w", url, err)
			}

			preference, err := resolver.ParsePreference(cfg.Accelerator.Preference)
			if err != nil {
				return err
			}
			source := manifest.ClassifySource(url)
			policy := resolver.Decide(resolver.Decision{
				ForceBestQuality: cfg.Quality.ForceBest,
				Preference:       preference,
				// Probe reports what a run would choose, so consult the
				// real accelerator availability.
				AcceleratorAvailable: deps.NewAcceleratorCheck(cfg.Accelerator.Binary).Available(),
				Source:               source,
				Probed:               true,
				Probe:                result,
			})

			rows := [][]string{
				{"Codec", result.Codec},
				{"Best height", strconv.Itoa(result.BestHeight)},
				{"Throttled", strconv.FormatBool(result.Throttled)},
				{"Compat 1080p available", strconv.FormatBool(result.CompatAvailable)},
				{"Streaming platform", strconv.FormatBool(source.StreamingPlatform)},
				{"Playlist", strconv.FormatBool(source.Playlist)},
				{"Backend", policy.Backend.String()},
				{"Quality ceiling", policy.Ceiling.String()},
				{"Format selector", policy.Ceiling.FormatSelector()},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Property", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			for _, warning := range policy.Warnings {
				fmt.Fprintln(cmd.OutOrStdout(), "warning:", warning)
			}
			return nil
		},
	}
}
