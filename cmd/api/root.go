package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/sample-app/internal/config"
	"github.com/baharkarakas/sample-app/internal/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Micropost sample app server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); APP_* environment variables override it")
	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd)
}

// loadConfig reads the configuration and installs the process logger.
func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)
	return cfg, log, nil
}
