package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/server"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for uploading documents, parsing them
into a structured career history, and reading or editing the stored history.

Bearer authentication is enabled when JWT_SECRET is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (overrides PORT and config)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply pending database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	database, err := connectDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	if serveMigrate {
		if _, err := database.Migrate(ctx, db.MigrateUp); err != nil {
			return err
		}
	}

	client, err := newLLMClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close() //nolint:errcheck
	}

	jwtConfig, err := config.NewJWTConfig(cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	var jwtService *server.JWTService
	if jwtConfig != nil {
		jwtService = server.NewJWTService(jwtConfig)
	} else {
		logger.Warn("JWT_SECRET not set, /users routes are unauthenticated")
	}

	srv := server.New(server.Config{
		Port:           cfg.Port,
		MaxUploadBytes: cfg.MaxUploadBytes,
		PerDocument:    cfg.PerDocument,
	}, database, newPipeline(client, database, logger), jwtService, logger)

	logger.Info("serving", zap.Int("port", cfg.Port), zap.Bool("ai", client != nil))
	return srv.Start()
}
