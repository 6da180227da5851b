package cli

import (
	"fmt"

	"cardsearch/internal/config"

	"github.com/rohanthewiz/logger"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "cardsearch",
	Short: "Trading card search widget",
	Long: `cardsearch looks cards up in the public card database by exact name,
similar name or archetype. It serves the search widget over HTTP or runs
a single lookup in the terminal.`,
	SilenceUsage: true,
}

// Execute runs the command line
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: search ./config, ., /etc/cardsearch)")
}

func loadConfig() (*config.ServerConfig, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.SetLogLevel(cfg.Server.LogLevel)
	return cfg, nil
}
