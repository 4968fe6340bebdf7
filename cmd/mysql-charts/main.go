package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/user/mysql-charts-go/internal/collector"
	"github.com/user/mysql-charts-go/internal/config"
	"github.com/user/mysql-charts-go/internal/generator"
)

// logger writes diagnostics to stderr; status lines go to stdout.
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
	Prefix:          "mysql-charts",
})

var (
	// Used for flags.
	configPath string
	outputDir  string
	dpi        int
	format     string
	writeJSON  bool
	repoPath   string
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "mysql-charts",
		Short: "Renders MySQL benchmark charts and an HTML summary report.",
		Long: `Renders the MySQL performance test results (database comparison,
thread scalability, 24 hour stability, storage engine radar and cost benefit)
as images in an output directory, together with an HTML page that embeds them.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

func init() {
	defaults := config.Default()
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (.toml, .yaml or .yml)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", defaults.OutputDir, "Directory the charts and report are written to")
	rootCmd.Flags().IntVar(&dpi, "dpi", defaults.DPI, "Raster resolution in dots per inch")
	rootCmd.Flags().StringVarP(&format, "format", "f", defaults.Format, "Image format: png, svg or pdf")
	rootCmd.Flags().BoolVar(&writeJSON, "json", defaults.WriteJSON, "Also write mysql_charts_report.json")
	rootCmd.Flags().StringVar(&repoPath, "repo", defaults.RepoPath, "Git repository used for report provenance (empty to skip)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig merges the config file with the flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("dpi") {
		cfg.DPI = dpi
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("json") {
		cfg.WriteJSON = writeJSON
	}
	if flags.Changed("repo") {
		cfg.RepoPath = repoPath
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetLevel(charmlog.DebugLevel)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	style, err := cfg.Style()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug("configuration loaded", "output_dir", cfg.OutputDir, "dpi", cfg.DPI, "format", cfg.Format, "json", cfg.WriteJSON)

	meta, err := collector.NewMetadataCollector(cfg.RepoPath, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	_, err = generator.Run(ctx, generator.Options{
		OutputDir: cfg.OutputDir,
		Style:     style,
		WriteJSON: cfg.WriteJSON,
		Out:       cmd.OutOrStdout(),
		Logger:    logger,
		Collector: meta,
	})
	return err
}

// logErrorChain prints every wrapped layer of err, outermost first.
func logErrorChain(err error) {
	for depth := 0; err != nil; depth++ {
		logger.Error(err.Error(), "depth", depth, "type", fmt.Sprintf("%T", err))
		err = errors.Unwrap(err)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var se *generator.StepError
		if !errors.As(err, &se) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		logErrorChain(err)
		os.Exit(1)
	}
}
