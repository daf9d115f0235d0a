package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/rbarros/studytrack/internal/bootstrap"
	"github.com/rbarros/studytrack/internal/config"
	"github.com/rbarros/studytrack/internal/database"
	"github.com/rbarros/studytrack/internal/review"
	"github.com/rbarros/studytrack/internal/server"
	"github.com/rbarros/studytrack/internal/study"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "studytrack-server",
		Short:         "Review scheduler HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New(10 * time.Second)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	if cfg.Study.DefaultTrack == "" {
		return fmt.Errorf("study.default_track must be set in the config")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(ctx context.Context) error {
		return db.Close()
	})
	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("database.EnsureSchema() > %w", err)
	}

	service := review.NewService(study.NewDBRecordRepository(db))
	handler := server.NewReviewHandler(service, cfg.Study.DefaultTrack)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.LoggingMiddleware(
			server.CORSMiddleware(h2c.NewHandler(mux, &http2.Server{}), cfg.Server.CORS.AllowedOrigins),
		),
	}
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Info("Starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
