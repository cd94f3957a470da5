package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/database"
	"github.com/vibast-solutions/ms-go-store-subscriptions/app/factory"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply or inspect database schema migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.DirectionUp), string(database.DirectionDown), string(database.DirectionStatus)},
	Run:       runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	direction := database.Direction(args[0])
	logger := factory.NewModuleLogger("migrations").WithField("driver", cfg.Database.Driver)

	if err := database.Migrate(context.Background(), db, cfg.Database.Driver, direction, logger); err != nil {
		logger.WithError(err).WithField("direction", direction).Fatal("Migration failed")
	}
	logger.WithField("direction", direction).Info("Migration finished")
}
