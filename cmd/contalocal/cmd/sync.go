package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfrancor/contalocal/internal/mirror"
	"github.com/mfrancor/contalocal/internal/store"
	"github.com/mfrancor/contalocal/internal/syncdb"
)

var (
	syncCompany string
	syncDryRun  bool
)

// syncCmd represents the sync command.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push a company snapshot to the remote mirror",
	Long: `Push a full snapshot of one company's books to the remote mirror.

This command:
1. Snapshots every bucket of the company from the local database
2. Uploads the JSON blob under the configured company key
3. Records the push in the SQLite history database

The mirror is a plain last-writer-wins backup; there is no merging.

Example:
  contalocal sync --company c1
  contalocal sync --company c1 --dry-run`,
	Run: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncCompany, "company", "", "company ID (required)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Dry run mode (no upload, no history)")

	_ = syncCmd.MarkFlagRequired("company")
}

func runSync(cmd *cobra.Command, args []string) {
	slog.Info("Starting sync", "company", syncCompany, "dry_run", syncDryRun)

	cfg, paths, err := loadConfig()
	exitOnError(err, "failed to load configuration")

	if !syncDryRun {
		exitOnError(cfg.Validate("mirror.url", "mirror.companyKey"), "invalid configuration")
	}

	st, err := store.New(paths.DBPath())
	exitOnError(err, "failed to open store")
	defer st.Close()

	snapshot, err := st.SnapshotCompany(syncCompany)
	exitOnError(err, "failed to snapshot company")

	slog.Info("Snapshot built", "records", snapshot.RecordCount())

	if syncDryRun {
		fmt.Printf("[DRY RUN] Would push %d records for company %s to %s\n",
			snapshot.RecordCount(), syncCompany, cfg.Mirror.URL)
		return
	}

	client := mirror.NewClient(mirror.ClientConfig{
		BaseURL:    cfg.Mirror.URL,
		Token:      cfg.Mirror.Token,
		CompanyKey: cfg.Mirror.CompanyKey,
		Timeout:    30 * time.Second,
	})

	sent, err := client.Push(snapshot)
	exitOnError(err, "failed to push snapshot")

	conn, err := syncdb.Open(paths.SyncDBPath())
	exitOnError(err, "failed to open sync history database")
	defer conn.Close()

	history := syncdb.NewHistory(conn)
	err = history.RecordPush(syncdb.PushRecord{
		CompanyID:    syncCompany,
		RemoteKey:    cfg.Mirror.CompanyKey,
		RecordCount:  snapshot.RecordCount(),
		PayloadBytes: sent,
	})
	exitOnError(err, "failed to record push")

	stats, err := history.GetStats()
	if err == nil {
		fmt.Println("\n=== Sync Statistics ===")
		fmt.Printf("Total pushes: %d\n", stats.TotalPushes)
		fmt.Printf("Total bytes:  %d\n", stats.TotalBytes)
		if stats.LastPush.Valid {
			fmt.Printf("Last push:    %s\n", stats.LastPush.String)
		}
		fmt.Println()
	}

	slog.Info("Sync completed", "company", syncCompany,
		"records", snapshot.RecordCount(), "bytes", sent)
}
