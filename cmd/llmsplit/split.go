package main

import (
	"fmt"

	"github.com/dgallion1/llmsplit/internal/config"
	"github.com/spf13/cobra"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Segment downloaded llms-full.txt blobs into pages",
	Long: `Split reads each source's stored llms-full.txt, segments it into pages
along the source's boundary markers, and writes one JSON file per page
plus a manifest under DATA_DIR/pages/<source>/.`,
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
			manifest, err := runner.SplitSource(src)
			if err != nil {
				log.Error("split failed", "source", src.Name, "error", err)
				failures++
				continue
			}
			log.Info("segmented source",
				"source", src.Name,
				"strategy", string(src.Strategy),
				"pages", manifest.PageCount,
				"avg_page_size", int(manifest.AvgPageSize),
			)
		}
		if failures > 0 {
			return fmt.Errorf("%d of %d sources failed", failures, len(srcs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
}
