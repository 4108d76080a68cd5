package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"spool/internal/manifest"
)

func newManifestsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "manifests",
		Short: "List discovered manifests and their destinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			manifests, err := manifest.Enumerate(cfg.Paths.ManifestDir, cfg.Paths.OutputDir)
			if err != nil {
				return err
			}
			if len(manifests) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No manifests found in", cfg.Paths.ManifestDir)
				fmt.Fprintf(cmd.OutOrStdout(), "Create %s/default%s with one URL per line to get started.\n",
					cfg.Paths.ManifestDir, manifest.Extension)
				return nil
			}

			titler := cases.Title(language.Und)
			rows := make([][]string, 0, len(manifests))
			for _, m := range manifests {
				jobs, err := manifest.LoadJobs(m)
				count := strconv.Itoa(len(jobs))
				if err != nil {
					count = "unreadable"
				}
				rows = append(rows, []string{
					titler.String(m.Name),
					m.Path,
					count,
					m.DestDir,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Manifest", "File", "URLs", "Destination"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}
