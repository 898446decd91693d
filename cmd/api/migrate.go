package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cmd.Context(), cfg.Store, true)
		if err != nil {
			return err
		}
		defer store.Close()
		log.Info("migrations applied", "store", cfg.Store.Driver)
		return nil
	},
}
