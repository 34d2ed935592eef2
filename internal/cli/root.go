package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"reco/config"
)

var (
	cfgFile string
	cfg     *config.Config
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "reco",
	Short: "MovieLens recommender with genre-diversified slates",
	Long: `reco is a CLI tool that ingests a local MovieLens dataset, ranks movies
by weighted popularity (mean rating times rating count), and builds
recommendation slates re-ranked for genre diversity.

Example usage:
  reco ingest ./ml-1m            # Ingest a dataset directory
  reco recommend -n 10           # Build a diversified slate of 10
  reco stats                     # Show catalog statistics`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if dataDir == "" {
			dataDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(dataDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./reco.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "dir", "d", "", "dataset directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetDataDir() string {
	return dataDir
}
