package main

import (
	"fmt"

	"github.com/dgallion1/llmsplit/internal/config"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Embed stored pages and upsert them into Qdrant",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}
		log := newLogger()

		srcs, err := selectedSources()
		if err != nil {
			return err
		}

		runner, cleanup, err := buildRunner(cfg, log, true)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := runner.EnsureCollection(cmd.Context()); err != nil {
			return err
		}

		failures := 0
		for _, src := range srcs {
			uploaded, err := runner.UploadSource(cmd.Context(), src, nil)
			if err != nil {
				log.Error("upload failed", "source", src.Name, "uploaded", uploaded, "error", err)
				failures++
				continue
			}
			log.Info("uploaded source", "source", src.Name, "points", uploaded)
		}
		if failures > 0 {
			return fmt.Errorf("%d of %d sources failed", failures, len(srcs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
