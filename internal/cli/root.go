package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nerdjerry/ai-projects/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "ai-projects",
	Short: "Small AI-powered command line tools",
	Long: `ai-projects bundles five small AI tools behind one CLI:

  ai-projects ask      # answer questions over your own documents
  ai-projects post     # draft and review social media posts
  ai-projects stock    # fetch stock quotes and explain them
  ai-projects chat     # chat with persistent memory
  ai-projects quality  # profile a CSV and summarize its quality

All tools that call a model read the API key from the OPENAI_API_KEY
environment variable (a .env file in the working directory is loaded
automatically).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		// Best effort; missing .env is fine.
		_ = godotenv.Load()

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		setupLogging(cfg.Logging.Level)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ai-projects.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

func ensureStateDir() error {
	return config.EnsureStateDir(GetRootDir())
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
