package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-scorer/internal/batch"
	"github.com/spigell/resume-scorer/internal/engine"
	"github.com/spigell/resume-scorer/internal/rules"
)

const (
	app = "resume-scorer"
)

type Config struct {
	Input       string         `mapstructure:"input"`
	Output      string         `mapstructure:"output"`
	Workers     int            `mapstructure:"workers"`
	Extensions  []string       `mapstructure:"extensions"`
	RulesFile   string         `mapstructure:"rules-file"`
	ExcludeFile string         `mapstructure:"exclude-file"`
	Filters     *FiltersConfig `mapstructure:"filters"`
	Report      *ReportConfig  `mapstructure:"report"`
}

type FiltersConfig struct {
	MinimumScore   int      `mapstructure:"minimum-score"`
	RequiredSkills []string `mapstructure:"required-skills"`
	Skip           []string `mapstructure:"skip"`
}

type ReportConfig struct {
	Top int `mapstructure:"top"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-scorer is a simple cli for extracting and scoring candidate resumes with transparent rules",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("rules-file", "RESUME_SCORER_RULES_FILE"); err != nil {
		log.Fatalf("binding RESUME_SCORER_RULES_FILE environment variable: %v", err)
	}

	viper.SetDefault("input", "resumes")
	viper.SetDefault("output", "output/resume_analysis.xlsx")
	viper.SetDefault("workers", batch.DefaultWorkers)
	viper.SetDefault("extensions", []string{".pdf"})
	viper.SetDefault("report.top", 10)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("rules-file", "r", "", "yaml file overriding the built-in scoring rules")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("rules-file", rootCmd.PersistentFlags().Lookup("rules-file"))
}

func initConfig() {
	if versionCmd.CalledAs() != "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	err := viper.ReadInConfig()

	// The default config file is optional.
	var notFound viper.ConfigFileNotFoundError
	if cfgFile == "" && errors.As(err, &notFound) {
		return
	}

	// We can't proceed if the config file parsed with error.
	if err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Filters == nil {
		config.Filters = &FiltersConfig{}
	}
	if config.Report == nil {
		config.Report = &ReportConfig{}
	}

	return config, nil
}

// newEngine builds the engine from the rules file, falling back to the built-in rules.
func newEngine(rulesFile string) (*engine.Engine, *rules.RuleSet, error) {
	ruleSet, err := rules.LoadFile(rulesFile)
	if err != nil {
		return nil, nil, err
	}

	compiled, err := ruleSet.Compile()
	if err != nil {
		return nil, nil, err
	}

	e, err := engine.New(compiled)
	if err != nil {
		return nil, nil, err
	}

	return e, ruleSet, nil
}
