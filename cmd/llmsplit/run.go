package main

import (
	"fmt"

	"github.com/dgallion1/llmsplit/internal/config"
	"github.com/dgallion1/llmsplit/internal/pipeline"
	"github.com/spf13/cobra"
)

var splitOnly bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: download, split, embed, upload",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if !splitOnly {
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		log := newLogger()

		srcs, err := selectedSources()
		if err != nil {
			return err
		}

		runner, cleanup, err := buildRunner(cfg, log, !splitOnly)
		if err != nil {
			return err
		}
		defer cleanup()

		names := make([]string, len(srcs))
		for i, src := range srcs {
			names[i] = src.Name
		}

		run := pipeline.NewRun(names)
		runner.Execute(cmd.Context(), run, srcs)

		snap := run.Snapshot()
		for _, res := range snap.Results {
			if res.Status == pipeline.SourceCompleted {
				log.Info("source completed",
					"source", res.Source,
					"pages", res.PageCount,
					"uploaded", res.Uploaded,
				)
			} else {
				log.Error("source failed", "source", res.Source, "error", res.Error)
			}
		}
		if snap.Status != pipeline.RunCompleted {
			return fmt.Errorf("run %s finished with status %s", snap.ID, snap.Status)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&splitOnly, "split-only", false,
		"Stop after segmentation; skip embedding and upload")
	rootCmd.AddCommand(runCmd)
}
