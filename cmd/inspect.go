package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/batch"
	"github.com/spigell/resume-scorer/internal/engine"
	"github.com/spigell/resume-scorer/internal/extract"
	"github.com/spigell/resume-scorer/internal/logger"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>...",
	Short: "Analyze single documents and print their scorecards as JSON",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		scorer, _, err := newEngine(viper.GetString("rules-file"))
		if err != nil {
			zl.Fatal("loading scoring rules", zap.Error(err))
		}

		if err := inspect(cmd.Context(), cmd.OutOrStdout(), extract.NewRegistry(zl), scorer, args, zl); err != nil {
			zl.Fatal("inspecting documents", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// inspect prints one record per document. A document whose text cannot be
// extracted is reported as an empty scorecard.
func inspect(ctx context.Context, out io.Writer, extractor extract.Extractor, scorer *engine.Engine, paths []string, zl *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	for _, doc := range batch.Documents(paths) {
		text, err := extractor.Extract(ctx, doc.Path)
		if err != nil {
			logger.WithDocument(zl, doc.Name, doc.Path).Warn("extracting text failed", zap.Error(err))
		}

		record, ok := scorer.AnalyzeDocument(doc.Name, doc.Path, text)
		if !ok {
			logger.WithDocument(zl, doc.Name, doc.Path).Info("no text extracted")
		}

		pretty, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, string(pretty)); err != nil {
			return err
		}
	}
	return nil
}
