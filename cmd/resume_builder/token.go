package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/server"
)

var tokenUser string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for local testing",
	Long:  "Signs a token for --user with JWT_SECRET. Production tokens come from the external auth service.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User id to issue the token for (required)")

	if err := tokenCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	userID, err := db.ParseUserID(tokenUser)
	if err != nil {
		return err
	}

	jwtConfig, err := config.NewJWTConfig(cfg.JWTSecret)
	if err != nil {
		return err
	}
	if jwtConfig == nil {
		return fmt.Errorf("JWT_SECRET environment variable or jwt_secret config is required")
	}

	token, err := server.NewJWTService(jwtConfig).Issue(userID)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
