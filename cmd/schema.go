package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the homepage tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the homepage tables",
	RunE:  runMigrate,
}

// checkCmd reports columns the relations depend on but the database lacks.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the database schema has every column the relations use",
	RunE:  runCheck,
}

func init() {
	RootCmd.AddCommand(migrateCmd)
	RootCmd.AddCommand(checkCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.service.Migrate(context.Background()); err != nil {
		return err
	}
	a.logger.Info("Schema migrated")
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	missing, err := a.service.CheckSchema(context.Background())
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		a.logger.Info("Schema check passed")
		return nil
	}

	tables := make([]string, 0, len(missing))
	for table := range missing {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	for _, table := range tables {
		a.logger.Warn("Missing columns", zap.String("table", table), zap.Strings("columns", missing[table]))
	}
	return fmt.Errorf("schema check failed: %d table(s) incomplete, run migrate", len(missing))
}
