package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/mbtiboard/internal/config"
	"github.com/KaramelBytes/mbtiboard/internal/dataset"
	"github.com/KaramelBytes/mbtiboard/internal/logging"
	"github.com/KaramelBytes/mbtiboard/internal/session"
)

var (
	// Global flags
	cfgFile  string
	dataPath string
	debug    bool
	logLevel string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Diagnostics logger; user-facing output goes to the command's writer.
	logger = zap.NewNop()
	// Tables loaded during this process, keyed by source path.
	cache *dataset.Cache
)

var rootCmd = &cobra.Command{
	Use:   "mbtiboard",
	Short: "MBTIBoard: explore personality-type ratios by country",
	Long: `MBTIBoard reads a table of per-country MBTI type ratios and answers two questions:
which countries lead for a given type, and how a given country's population splits across all 16 types.
Views render to the terminal, Markdown, or JSON, and the same views are served over HTTP by 'serve'.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.mbtiboard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "path to the MBTI ratio table (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		d := cfgpkg.Default()
		c = &d
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("data") && dataPath != "" {
		cfg.DatasetPath = dataPath
	}
	if f.Changed("log-level") && logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	l, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v; logging disabled\n", err)
		l = logging.NewNop()
	}
	logger = l

	delim, _ := cfgpkg.ParseDelimiter(cfg.Delimiter)
	cache = dataset.NewCache(dataset.Options{Delimiter: delim})
}

// openSession loads the configured dataset through the process cache.
func openSession() (*session.Session, error) {
	if cfg == nil {
		loadConfig()
	}
	return session.Open(cache, cfg.DatasetPath, logger)
}
