package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/batch"
	"github.com/spigell/resume-scorer/internal/candidate"
	"github.com/spigell/resume-scorer/internal/export"
	"github.com/spigell/resume-scorer/internal/extract"
	"github.com/spigell/resume-scorer/internal/filtering"
	"github.com/spigell/resume-scorer/internal/logger"
)

const (
	PromptYes                 = "Yes"
	PromptNo                  = "No"
	PromptReportTop           = "Report top candidates"
	PromptCandidatesToFile    = "Dump candidates to file"
	PromptAppendToExcludeFile = "Append all candidates to exclude file"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyze every resume in the input directory and export the ranked results",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("input", "i", "", "directory with resumes")
	runCmd.Flags().StringP("output", "o", "", "result file, .xlsx or .json")
	runCmd.Flags().IntP("workers", "w", 0, "maximum number of documents processed in parallel")
	runCmd.Flags().StringSlice("extensions", nil, "document extensions to pick up from the input directory")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")
	runCmd.Flags().Int("minimum-score", 0, "drop candidates scored below this value")
	runCmd.Flags().StringSlice("required-skills", nil, "drop candidates missing any of these skills")
	runCmd.Flags().StringSlice("skip-filter", nil, "filters to disable by name: exclude_file, minimum_score, required_skills")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation, export right away")

	viper.BindPFlag("input", runCmd.Flags().Lookup("input"))
	viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
	viper.BindPFlag("workers", runCmd.Flags().Lookup("workers"))
	viper.BindPFlag("extensions", runCmd.Flags().Lookup("extensions"))
	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("filters.minimum-score", runCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("filters.required-skills", runCmd.Flags().Lookup("required-skills"))
	viper.BindPFlag("filters.skip", runCmd.Flags().Lookup("skip-filter"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-scorer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	scorer, _, err := newEngine(config.RulesFile)
	if err != nil {
		logger.Fatal("loading scoring rules", zap.Error(err), zap.String("rules_file", config.RulesFile))
	}
	logger.Info("scoring rules loaded", zap.String("rules_version", scorer.RulesVersion()))

	registry := extract.NewRegistry(logger)
	if err := validateExtensions(registry, config.Extensions); err != nil {
		logger.Fatal("checking document extensions", zap.Error(err))
	}

	paths, err := extract.Discover(config.Input, config.Extensions)
	if err != nil {
		logger.Fatal("discovering documents", zap.Error(err))
	}

	if len(paths) == 0 {
		logger.Info("exiting", zap.String("reason", "no documents found"), zap.String("input", config.Input))
		return
	}

	records, err := analyze(ctx, config, registry, scorer, paths, logger)
	if err != nil {
		logger.Fatal("processing documents", zap.Error(err))
	}

	filters := prepareFilters(config, logger)
	for _, status := range filters.Describe() {
		logger.Debug("filter configured",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	records, err = filters.RunFilters(ctx, records)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if records.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	prompt := promptui.Select{
		Label: "Export results?",
		Items: menuItems(config),
	}

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")

	for {
		action := PromptYes
		if !autoApprove {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of candidates", zap.Int("count", records.Len()))

		if err := handleAction(action, logger, config, records); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// validateExtensions fails on the first extension without a registered extractor.
func validateExtensions(registry *extract.Registry, extensions []string) error {
	if len(extensions) == 0 {
		return errors.New("no document extensions configured")
	}
	for _, ext := range extensions {
		if !registry.Supports(ext) {
			return fmt.Errorf("%w: %q", extract.ErrUnsupportedFormat, ext)
		}
	}
	return nil
}

func analyze(ctx context.Context, config *Config, extractor extract.Extractor, scorer batch.Analyzer, paths []string, logger *zap.Logger) (*candidate.Records, error) {
	processor := &batch.Processor{
		Extractor: extractor,
		Engine:    scorer,
		Workers:   config.Workers,
		Logger:    logger,
		Progress: func(p batch.Progress) {
			if p.Done == p.Total || p.Done%10 == 0 {
				logger.Info("progress", zap.Int("done", p.Done), zap.Int("total", p.Total))
			}
		},
	}

	result, err := processor.Run(ctx, batch.Documents(paths))
	if err != nil {
		if result != nil {
			logger.Warn("processing interrupted, partial results are discarded",
				zap.Int("analyzed", result.Records.Len()),
				zap.Int("skipped", len(result.Skipped)),
				zap.Int("failed", len(result.Failures)),
				zap.Int("total", len(paths)),
			)
		}
		return nil, err
	}

	for _, failure := range result.Failures {
		logger.Warn("document was not analyzed",
			zap.String("document", failure.Document.Name),
			zap.String("path", failure.Document.Path),
			zap.Error(failure.Err),
		)
	}

	return result.Records, nil
}

func menuItems(config *Config) []string {
	items := []string{PromptYes, PromptNo, PromptReportTop, PromptCandidatesToFile}
	if config.ExcludeFile != "" {
		items = append(items, PromptAppendToExcludeFile)
	}
	return items
}

func handleAction(action string, logger *zap.Logger, config *Config, records *candidate.Records) error {
	switch action {
	case PromptYes:
		return exportRecords(logger, config.Output, records)
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportTop:
		pretty, _ := json.MarshalIndent(records.ReportTop(config.Report.Top), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", records.Len()))
		return nil
	case PromptCandidatesToFile:
		filename, err := records.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(logger, config.ExcludeFile, records)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func exportRecords(logger *zap.Logger, output string, records *candidate.Records) error {
	exporter, err := export.ForPath(output)
	if err != nil {
		return err
	}

	if err := exporter.Export(records, output); err != nil {
		return fmt.Errorf("exporting results: %w", err)
	}

	logger.Info("results exported", zap.String("filename", output), zap.Int("count", records.Len()))
	return errExit
}

func appendToExcludeFile(logger *zap.Logger, excludeFile string, records *candidate.Records) error {
	if excludeFile == "" {
		return errors.New("exclude file is not configured")
	}

	excluded, err := candidate.GetExcludedFromFile(excludeFile)
	if err != nil {
		return err
	}

	excluded.Append(records.ToExcluded(candidate.ExcludeActorUser, "appended from the run menu"))

	if err = excluded.ToFile(excludeFile); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", excludeFile))

	records.Exclude(excluded.Names())
	if records.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "all candidates excluded"))
		return errExit
	}
	return nil
}

func prepareFilters(config *Config, logger *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewExcludeFile(config.ExcludeFile, logger),
		filtering.NewMinimumScore(config.Filters.MinimumScore, logger),
		filtering.NewRequiredSkills(config.Filters.RequiredSkills, logger),
	}

	filters := filtering.New(steps, logger)
	for _, name := range config.Filters.Skip {
		filters.DisableByName(name, "disabled via --skip-filter")
	}

	return filters
}
