package cmd

import (
	"fmt"
	"os"

	"relation-manager/core/config"
	"relation-manager/core/database"
	"relation-manager/core/logger"
	"relation-manager/feature/homepage"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "relation-manager",
	Short: "Homepage relation manager",
	Long: `Relation Manager applies JSON payloads to homepage relations.
Payloads list object keys ({"id": "article-12", "position": 1}); the current
content is only rewritten when the resulting list differs from what is stored.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with DevConfig gives readable ISO8601 output for a CLI
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// app bundles what every subcommand needs.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	service *homepage.Service
}

// bootstrap loads configuration, connects to the database and builds the homepage service.
func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	l = logger.WithRun(l, uuid.NewString())

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	svc, err := homepage.NewService(db, l, cfg.Relations)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: l, db: db, service: svc}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

