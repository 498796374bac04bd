package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/history"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/pipeline"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	parseInputs      []string
	parseURLs        []string
	parseOutput      string
	parsePerDocument bool
	parseUser        string
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract a structured career history from local documents",
	Long: `Reads one or more local documents or URLs (PDF, DOCX, TXT or HTML), extracts contact information,
skills, education, certifications and job history, and writes the StructuredHistory JSON.

Without GEMINI_API_KEY every field uses the local pattern-based extractor. The history is
written to --out, or to stdout when --out is not set.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringSliceVarP(&parseInputs, "in", "i", nil, "Path to a document (repeatable)")
	parseCmd.Flags().StringSliceVar(&parseURLs, "url", nil, "URL of a public document such as a portfolio page (repeatable)")
	parseCmd.Flags().StringVarP(&parseOutput, "out", "o", "", "Path to output StructuredHistory JSON file")
	parseCmd.Flags().BoolVar(&parsePerDocument, "per-document", false, "Extract each document separately, then merge")
	parseCmd.Flags().StringVar(&parseUser, "user", "local", "User id recorded in progress output")

	parseCmd.MarkFlagsOneRequired("in", "url")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	docs := make([]types.Document, 0, len(parseInputs)+len(parseURLs))
	for _, path := range parseInputs {
		doc, err := ingestion.ReadDocument(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	for _, u := range parseURLs {
		doc, err := fetch.Document(ctx, u, nil)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	client, err := newLLMClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close() //nolint:errcheck
	}

	perDocument := cfg.PerDocument
	if cmd.Flags().Changed("per-document") {
		perDocument = parsePerDocument
	}

	out := cmd.OutOrStdout()
	opts := pipeline.Options{UserID: parseUser, Documents: docs, PerDocument: perDocument}
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", event.Step, event.Message)
		}
	}

	result, err := newPipeline(client, nil, logger).Run(ctx, opts)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		var suggestions []string
		if len(result.History.Skills) == 0 {
			suggestions = parsing.SuggestedSkills()
		}
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintSources(result.Sources, result.Excluded)
		printer.PrintHistory(result.History, suggestions)
	}

	if parseOutput != "" {
		if err := history.SaveHistory(parseOutput, result.History); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Wrote history to %s\n", parseOutput)
		return nil
	}

	data, err := json.MarshalIndent(result.History, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	if err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}
