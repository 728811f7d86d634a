package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/llmsplit/internal/config"
	"github.com/dgallion1/llmsplit/internal/embed"
	"github.com/dgallion1/llmsplit/internal/fetch"
	"github.com/dgallion1/llmsplit/internal/pipeline"
	"github.com/dgallion1/llmsplit/internal/source"
	"github.com/dgallion1/llmsplit/internal/store"
	"github.com/dgallion1/llmsplit/internal/vectordb"
	"github.com/spf13/cobra"
)

var sourceNames []string

var rootCmd = &cobra.Command{
	Use:   "llmsplit",
	Short: "Download, segment and index llms-full.txt documentation",
	Long: `llmsplit fetches llms-full.txt blobs from documentation sites, splits
them into per-page records along their boundary markers, and uploads
embedded pages to a Qdrant collection for semantic search.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&sourceNames, "sources", nil,
		"Comma-separated source names (default: all configured sources)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func selectedSources() ([]source.Source, error) {
	return source.Filter(source.Defaults(), sourceNames)
}

// buildRunner wires a pipeline runner from config. When withVectors is
// false the embedder and vector client are left nil and the runner stops
// after segmentation. The returned cleanup must be called on exit.
func buildRunner(cfg config.Config, log *slog.Logger, withVectors bool) (*pipeline.Runner, func(), error) {
	fetcher := fetch.NewClient(cfg.DownloadTimeout)
	st := store.New(cfg.DataDir)

	if !withVectors {
		return pipeline.NewRunner(cfg, fetcher, st, nil, nil, log), fetcher.Close, nil
	}

	embedder, err := embed.New(embed.Config{
		Provider: cfg.Embedder,
		APIKey:   cfg.OpenAIAPIKey,
		Model:    cfg.EmbeddingModel,
		BaseURL:  cfg.OllamaURL,
		Dim:      cfg.EmbeddingDim,
	})
	if err != nil {
		fetcher.Close()
		return nil, nil, err
	}

	vdb, err := vectordb.New(vectordb.Config{
		Host:       cfg.QdrantHost,
		Port:       cfg.QdrantPort,
		APIKey:     cfg.QdrantAPIKey,
		UseTLS:     cfg.QdrantUseTLS,
		Collection: cfg.QdrantCollection,
	}, log)
	if err != nil {
		fetcher.Close()
		return nil, nil, err
	}

	cleanup := func() {
		fetcher.Close()
		vdb.Close()
	}
	return pipeline.NewRunner(cfg, fetcher, st, embedder, vdb, log), cleanup, nil
}
