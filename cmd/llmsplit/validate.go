package main

import (
	"fmt"

	"github.com/dgallion1/llmsplit/internal/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the Qdrant collection against the stored manifests",
	Long: `Validate compares the collection's point counts per source against the
page manifests written by split, checks the vector configuration, and
runs a probe similarity query.`,
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

		checks, err := runner.ValidateAll(cmd.Context(), srcs)
		if err != nil {
			return err
		}

		failed := 0
		for _, c := range checks {
			if c.OK {
				log.Info("check passed", "check", c.Name, "detail", c.Detail)
			} else {
				log.Error("check failed", "check", c.Name, "detail", c.Detail)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d checks failed", failed, len(checks))
		}
		log.Info("all checks passed", "checks", len(checks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
