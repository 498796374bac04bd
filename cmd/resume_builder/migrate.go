package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or list database migrations",
	Long:      "Runs the embedded goose migrations against DATABASE_URL. The default direction is up; down rolls back one version.",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{db.MigrateUp, db.MigrateDown, db.MigrateStatus},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	direction := db.MigrateUp
	if len(args) == 1 {
		direction = args[0]
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	database, err := connectDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	results, err := database.Migrate(ctx, direction)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		_, _ = fmt.Fprintln(out, "No migrations to apply")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "VERSION\tMIGRATION\tAPPLIED")
	for _, r := range results {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%t\n", r.Version, r.Path, r.Applied)
	}
	return tw.Flush()
}
