package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/chriserin/zgr/internal/config"
	"github.com/chriserin/zgr/internal/db"
	"github.com/chriserin/zgr/internal/parser"
	"github.com/chriserin/zgr/internal/ui"
	"github.com/chriserin/zgr/internal/watch"
)

var watchFlag bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Index every feature file under the features directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !watchFlag {
			return RunSync(cmd.OutOrStdout(), cfg)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return RunSyncWatch(ctx, cmd.OutOrStdout(), cfg)
	},
}

func init() {
	syncCmd.Flags().BoolVar(&watchFlag, "watch", false, "Keep running and re-index files as they change")
	rootCmd.AddCommand(syncCmd)
}

func RunSync(w io.Writer, cfg config.Config) error {
	sqlDB, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return syncAll(w, sqlDB, cfg)
}

// RunSyncWatch runs a full sync, then re-indexes changed documents until ctx
// is done.
func RunSyncWatch(ctx context.Context, w io.Writer, cfg config.Config) error {
	sqlDB, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	watcher, err := watch.New(watch.Config{Root: cfg.Dir, Extension: cfg.Extension, Logger: slog.Default()})
	if err != nil {
		return fmt.Errorf("watching %s: %w", cfg.Dir, err)
	}
	defer watcher.Close()

	if err := syncAll(w, sqlDB, cfg); err != nil {
		return err
	}
	return watcher.Run(ctx, func(batch []watch.Event) error {
		for _, e := range batch {
			if err := syncEvent(w, sqlDB, cfg, e); err != nil {
				return err
			}
		}
		return nil
	})
}

func syncEvent(w io.Writer, sqlDB *sql.DB, cfg config.Config, e watch.Event) error {
	if e.Op == watch.OpRemove {
		removed, err := db.RemoveFile(sqlDB, e.Path)
		if err != nil {
			return err
		}
		if removed {
			ui.DelLine(w, e.Path)
		}
		return nil
	}
	return syncFile(w, sqlDB, cfg, e.Path)
}

// documents returns every feature file under cfg.Dir in path order.
func documents(cfg config.Config) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(cfg.Dir, "**", "*"+cfg.Extension))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", cfg.Dir, err)
	}
	slices.Sort(matches)
	return matches, nil
}

func syncAll(w io.Writer, sqlDB *sql.DB, cfg config.Config) error {
	matches, err := documents(cfg)
	if err != nil {
		return err
	}

	// Reading and parsing fan out; sqlite writes stay on this goroutine.
	parsed := make([]*parser.ParsedFile, len(matches))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range matches {
		g.Go(func() error {
			pf, err := parseDocument(cfg, path)
			parsed[i] = pf
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range matches {
		if err := indexDocument(w, sqlDB, path, parsed[i]); err != nil {
			return err
		}
	}

	indexed, err := db.FilePaths(sqlDB)
	if err != nil {
		return err
	}
	for _, path := range indexed {
		if _, found := slices.BinarySearch(matches, path); found {
			continue
		}
		if _, err := db.RemoveFile(sqlDB, path); err != nil {
			return err
		}
		ui.DelLine(w, path)
	}

	ui.SummaryLine(w, len(matches))
	return nil
}

func syncFile(w io.Writer, sqlDB *sql.DB, cfg config.Config, path string) error {
	pf, err := parseDocument(cfg, path)
	if err != nil {
		return err
	}
	return indexDocument(w, sqlDB, path, pf)
}

func parseDocument(cfg config.Config, path string) (*parser.ParsedFile, error) {
	content, err := readDocument(cfg, path)
	if err != nil {
		return nil, err
	}
	return parser.ParseFile(path, content), nil
}

func indexDocument(w io.Writer, sqlDB *sql.DB, path string, pf *parser.ParsedFile) error {
	created, err := db.IndexFile(sqlDB, path, pf)
	if err != nil {
		return err
	}
	slog.Debug("indexed document",
		"path", path,
		"scenarios", len(pf.Scenarios),
		"statements", len(pf.Statements),
		"errors", len(pf.Errors))

	if created {
		ui.NewLine(w, path)
	} else {
		ui.TrkLine(w, path)
	}
	return nil
}
