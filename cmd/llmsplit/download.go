package main

import (
	"fmt"

	"github.com/dgallion1/llmsplit/internal/config"
	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Fetch llms.txt and llms-full.txt for each source",
	Long: `Download fetches both llms files for every selected source and stores
them under DATA_DIR/raw/<source>/. A source without an llms.txt is fine;
a source without an llms-full.txt fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log := newLogger()

		srcs, err := selectedSources()
		if err != nil {
			return err
		}

		runner, cleanup, err := buildRunner(cfg, log, false)
		if err != nil {
			return err
		}
		defer cleanup()

		failures := 0
		for _, src := range srcs {
			result, err := runner.DownloadSource(cmd.Context(), src)
			if err != nil {
				log.Error("download failed", "source", src.Name, "error", err)
				failures++
				continue
			}
			log.Info("downloaded source",
				"source", src.Name,
				"full_bytes", result.Full.SizeBytes,
				"index_entries", result.IndexEntries,
			)
		}
		if failures > 0 {
			return fmt.Errorf("%d of %d sources failed", failures, len(srcs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}
