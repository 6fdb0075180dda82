package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/museum-visit/internal/db"
	"github.com/evcraddock/museum-visit/internal/logging"
	"github.com/evcraddock/museum-visit/internal/web"
)

// cleanupInterval is how often expired sessions are swept.
const cleanupInterval = time.Minute

func newServeCmd() *cobra.Command {
	var (
		port   int
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the booking web app",
		Long:  "Start an HTTP server for the mobile booking app.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, dbPath)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (default: port from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite session database path (default: db from config)")

	return cmd
}

func runServe(ctx context.Context, port int, dbPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Port = port
	}
	if dbPath != "" {
		cfg.DB = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Setup(cfg.DevMode)

	database, err := db.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer closeDB(database)

	srv, err := web.NewServer(database, cfg)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, srv, cleanupInterval)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// sweepSessions removes expired sessions until ctx is done.
func sweepSessions(ctx context.Context, srv *web.Server, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := srv.Cleanup(); err != nil {
				slog.Warn("session cleanup failed", "error", err)
			}
		}
	}
}
