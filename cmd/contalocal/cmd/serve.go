package cmd

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfrancor/contalocal/internal/api"
	"github.com/mfrancor/contalocal/internal/puc"
	"github.com/mfrancor/contalocal/internal/store"
)

var serveAddr string

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server over the local bbolt database.

The API exposes companies, the chart of accounts, transactions and
transfers, receivables and payables, assets, and the report endpoints
backed by the balance reconstruction engine.

Example:
  contalocal serve
  contalocal serve --addr :9090`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides CONTALOCAL_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, paths, err := loadConfig()
	exitOnError(err, "failed to load configuration")

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	exitOnError(paths.EnsureParentDir(paths.DBPath()), "failed to create data directory")

	st, err := store.New(paths.DBPath())
	exitOnError(err, "failed to open store")
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	slog.Info("database opened", "path", paths.DBPath())

	catalog, err := puc.LoadCatalog(cfg.Data.CatalogPath)
	if err != nil {
		slog.Warn("chart catalog not loaded; new companies start without seeded accounts",
			"path", cfg.Data.CatalogPath, "error", err)
		catalog = nil
	}

	router := api.NewRouter(st, catalog, cfg.Server.APIToken)

	slog.Info("starting API server", "addr", addr)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		slog.Info("shutting down server")
		if err := server.Close(); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
