package cmd

import (
	"errors"
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/csv-inspector/internal/config"
	"github.com/KaramelBytes/csv-inspector/internal/logging"
	"github.com/KaramelBytes/csv-inspector/internal/report"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Inspection flags; unset flags fall back to the loaded configuration.
	flagSep           string
	flagLimit         int
	flagOut           string
	flagMaxHist       int
	flagHTML          bool
	flagZThresh       float64
	flagOutlierMethod string
	flagIQRMult       float64
	flagTitle         string
	flagCorrMin       float64
	flagTopK          int
	flagTemplates     string
	flagXLSX          bool
	flagMarkdown      bool

	// Loaded configuration
	cfg *cfgpkg.Config
)

var rootCmd = &cobra.Command{
	Use:   "csv-inspector <csv_path>",
	Short: "Inspect a CSV file: statistics, outliers, correlations and charts",
	Long: `csv-inspector reads a delimited text file, infers column types and writes a
summary (summary.json), per-column histograms and a correlation heatmap into
an output directory. An HTML report, an Excel workbook and a Markdown summary
can be added with --html, --xlsx and --markdown.

A first argument of "config" selects the config subcommand; to inspect a file
with that name pass it as a path, e.g. ./config.`,
	Args:              cobra.ExactArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return loadConfig() },
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := resolveRun(cmd, args[0])
		if err != nil {
			return err
		}
		return runInspect(cmd.OutOrStdout(), run)
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for configuration problems and 1 for everything else.
func exitCode(err error) int {
	var ce *cfgpkg.ConfigError
	if errors.As(err, &ce) || errors.Is(err, report.ErrTemplateNotFound) {
		return 2
	}
	return 1
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.csv-inspector/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")

	d := cfgpkg.Defaults()
	f := rootCmd.Flags()
	f.StringVar(&flagSep, "sep", ",", `field separator (single character, or "tab")`)
	f.IntVar(&flagLimit, "limit", -1, "read at most N data rows (-1 = all)")
	f.StringVar(&flagOut, "out", d.OutDir, "output directory")
	f.IntVar(&flagMaxHist, "max-hist", d.MaxHist, "maximum number of histograms")
	f.BoolVar(&flagHTML, "html", false, "also render report.html")
	f.Float64Var(&flagZThresh, "zthresh", d.ZThresh, "z-score outlier threshold")
	f.StringVar(&flagOutlierMethod, "outlier-method", d.OutlierMethod, "outlier method: z or iqr")
	f.Float64Var(&flagIQRMult, "iqr-mult", d.IQRMult, "IQR fence multiplier (3.0 is stricter)")
	f.StringVar(&flagTitle, "title", d.Title, "HTML report title")
	f.Float64Var(&flagCorrMin, "corr-min", d.CorrMin, "minimum |r| for listed correlation pairs")
	f.IntVar(&flagTopK, "top-k", d.TopK, "number of correlation pairs to list")
	f.StringVar(&flagTemplates, "templates", "", "directory containing report.html.tmpl (default: built-in)")
	f.BoolVar(&flagXLSX, "xlsx", false, "also write summary.xlsx")
	f.BoolVar(&flagMarkdown, "markdown", false, "also write summary.md")
}

func loadConfig() error {
	if err := cfgpkg.LoadDotEnv(".env"); err != nil {
		return &cfgpkg.ConfigError{Field: ".env", Reason: err.Error()}
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	logging.Init(os.Stderr, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Debug: debug})
	return nil
}

// resolveRun layers explicitly set flags over the loaded configuration and
// validates the result.
func resolveRun(cmd *cobra.Command, csvPath string) (*cfgpkg.Run, error) {
	r := &cfgpkg.Run{
		Config:   *cfg,
		CSVPath:  csvPath,
		Sep:      flagSep,
		Limit:    flagLimit,
		HTML:     flagHTML,
		XLSX:     flagXLSX,
		Markdown: flagMarkdown,
	}
	f := cmd.Flags()
	if f.Changed("out") {
		r.OutDir = flagOut
	}
	if f.Changed("max-hist") {
		r.MaxHist = flagMaxHist
	}
	if f.Changed("zthresh") {
		r.ZThresh = flagZThresh
	}
	if f.Changed("outlier-method") {
		r.OutlierMethod = flagOutlierMethod
	}
	if f.Changed("iqr-mult") {
		r.IQRMult = flagIQRMult
	}
	if f.Changed("title") {
		r.Title = flagTitle
	}
	if f.Changed("corr-min") {
		r.CorrMin = flagCorrMin
	}
	if f.Changed("top-k") {
		r.TopK = flagTopK
	}
	if f.Changed("templates") {
		r.TemplatesDir = flagTemplates
	}
	if err := cfgpkg.Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}
