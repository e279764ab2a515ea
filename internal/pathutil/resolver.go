// Package pathutil provides centralized path management for the data
// directory: the bbolt database, the sync history database and the journal
// book files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver manages paths under the data root.
type PathResolver struct {
	dataRoot   string
	dbPath     string
	syncDBPath string
	bookDir    string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataRoot is the root directory for all data files (e.g., ~/contalocal).
	DataRoot string
	// DBPath is the path to the bbolt database file.
	DBPath string
	// SyncDBPath is the path to the SQLite database for sync history.
	SyncDBPath string
	// BookDir is the directory for the plain-text journal book files.
	BookDir string
}

// New creates a new PathResolver with the given configuration.
// If DBPath is empty, it defaults to {DataRoot}/contalocal.db.
// If SyncDBPath is empty, it defaults to {DataRoot}/.sync/sync.db.
// If BookDir is empty, it defaults to {DataRoot}/book.
func New(config Config) *PathResolver {
	dbPath := config.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(config.DataRoot, "contalocal.db")
	}

	syncDBPath := config.SyncDBPath
	if syncDBPath == "" {
		syncDBPath = filepath.Join(config.DataRoot, ".sync", "sync.db")
	}

	bookDir := config.BookDir
	if bookDir == "" {
		bookDir = filepath.Join(config.DataRoot, "book")
	}

	return &PathResolver{
		dataRoot:   config.DataRoot,
		dbPath:     dbPath,
		syncDBPath: syncDBPath,
		bookDir:    bookDir,
	}
}

// DataRoot returns the data root directory.
func (p *PathResolver) DataRoot() string {
	return p.dataRoot
}

// DBPath returns the bbolt database file path.
func (p *PathResolver) DBPath() string {
	return p.dbPath
}

// SyncDBPath returns the sync history database file path.
func (p *PathResolver) SyncDBPath() string {
	return p.syncDBPath
}

// BookDir returns the journal book directory.
func (p *PathResolver) BookDir() string {
	return p.bookDir
}

// YearDir returns the book directory for a year.
// Example: ~/contalocal/book/2024
func (p *PathResolver) YearDir(year string) string {
	return filepath.Join(p.bookDir, year)
}

// MonthFilePath returns the book file path for a month.
// yearMonth should be in YYYY-MM format.
// Example: ~/contalocal/book/2024/2024-01.txt
func (p *PathResolver) MonthFilePath(yearMonth string) (string, error) {
	parts := strings.Split(yearMonth, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return "", fmt.Errorf("invalid year-month format: %s. Expected YYYY-MM", yearMonth)
	}

	return filepath.Join(p.YearDir(parts[0]), fmt.Sprintf("%s.txt", yearMonth)), nil
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
