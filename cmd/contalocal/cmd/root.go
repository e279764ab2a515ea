// Package cmd provides CLI commands for contalocal.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfrancor/contalocal/internal/config"
	"github.com/mfrancor/contalocal/internal/pathutil"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "contalocal",
	Short: "Local bookkeeping for Colombian small businesses",
	Long: `contalocal keeps single-entry books for one or more companies and
reconstructs the double-entry view on demand: running balances, journal
entries, income statements and balance sheets over the PUC chart of
accounts.

It supports:
- Serving the HTTP API over a local bbolt database
- Printing fiscal-year reports
- Mirroring snapshots to a remote backup with SQLite history
- Exporting the plain-text journal book

Example:
  contalocal serve
  contalocal report --company c1 --year 2024
  contalocal sync --company c1
  contalocal export --company c1 --year 2024`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(exportCmd)
}

// loadConfig loads the configuration with the --config override applied.
func loadConfig() (*config.Config, *pathutil.PathResolver, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	paths := pathutil.New(pathutil.Config{
		DataRoot:   cfg.Data.Root,
		DBPath:     cfg.Data.DBPath,
		SyncDBPath: cfg.Data.SyncDBPath,
		BookDir:    cfg.Data.BookDir,
	})
	return cfg, paths, nil
}

// exitOnError handles errors and exits.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
