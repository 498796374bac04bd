package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/schemas"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a StructuredHistory JSON file against the schema",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to StructuredHistory JSON file (required)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	err := schemas.ValidateHistoryFile(validateInput)
	if err == nil {
		_, _ = fmt.Fprintln(out, "Validation passed")
		return nil
	}

	var ve *schemas.ValidationError
	if errors.As(err, &ve) {
		_, _ = fmt.Fprintln(out, "Validation failed:")
		for _, fe := range ve.Errors {
			_, _ = fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("%s has %d schema violation(s)", validateInput, len(ve.Errors))
	}
	return err
}
