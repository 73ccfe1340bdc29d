package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"signlearn/backend/config"
	"signlearn/backend/database"
	"signlearn/backend/utils"
)

// runtime is what every command needs: configuration, a logger and,
// once opened, the database.
type runtime struct {
	cfg *config.Config
	log *utils.Logger
	db  *gorm.DB
}

func (rt *runtime) close() {
	if rt.db != nil {
		if sqlDB, err := rt.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if rt.log != nil {
		rt.log.Sync()
	}
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := utils.InitLogger(cfg.AppEnv)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if !cfg.EnvFileLoaded {
		log.Debug("no .env file found, using environment only")
	}

	db, err := database.InitDB(cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return &runtime{cfg: cfg, log: log, db: db}, nil
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "signlearn",
		Short:         "Sign-language learning platform backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newImportQuizCommand())

	return rootCmd
}
