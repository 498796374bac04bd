package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/history"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	exportUser   string
	exportInput  string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a structured history to an XLSX workbook",
	Long:  "Writes one sheet per history field. The history is read from the database (--user) or from a JSON file (--in).",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportUser, "user", "", "User id whose stored history is exported")
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to a StructuredHistory JSON file")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Path to output .xlsx file (required)")

	exportCmd.MarkFlagsMutuallyExclusive("user", "in")
	exportCmd.MarkFlagsOneRequired("user", "in")
	if err := exportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	h, err := exportSource(context.Background())
	if err != nil {
		return err
	}

	data, err := export.HistoryXLSX(h)
	if err != nil {
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", exportOutput, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported history to %s\n", exportOutput)
	return nil
}

func exportSource(ctx context.Context) (types.StructuredHistory, error) {
	if exportInput != "" {
		h, err := history.LoadHistory(exportInput)
		if err != nil {
			return types.StructuredHistory{}, err
		}
		return *h, nil
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return types.StructuredHistory{}, err
	}
	defer logger.Sync() //nolint:errcheck

	database, err := connectDB(ctx, cfg, logger)
	if err != nil {
		return types.StructuredHistory{}, err
	}
	defer database.Close()

	return database.GetHistory(ctx, exportUser)
}
