package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	config "todo-digest.com/todo-digest/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the todos table",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}

		db, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN, cfg.LogLevel)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, sqlDB.Close())
		}()

		logger.Info("database migrated", "driver", cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
