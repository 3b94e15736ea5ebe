package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/config"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tomato",
	Short: "Tomato restaurant website backend",
	Long: `tomato serves the restaurant website API: menu browsing, dine-in pre-orders with
payment proof, table reservations, the contact form and the admin back office.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New("tomato", cfg.LogLevel, cfg.LogFormat, os.Stderr), nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
