package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/abook/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase writes config.toml when missing, then initializes the state database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return err
		}
		r.logger.Info("config file created", "path", configPath)
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return err
	}
	r.config = config
	r.configPath = configPath
	if err := shared.ApplyLogLevel(r.logger, config.Log.Level); err != nil {
		return err
	}

	r.logger.Info("initializing database", "path", config.Database.Path)
	lock, err := shared.AcquireStateLock(config.Database.Path)
	if err != nil {
		return fmt.Errorf("state database is busy: %w", err)
	}
	defer lock.Release()

	db, err := shared.OpenStateDatabase(config.Database)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return r.writePlain("✓ Ready: config %s, database %s\n", configPath, config.Database.Path)
}
