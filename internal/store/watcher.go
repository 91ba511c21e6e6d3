package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of write events a catalog reload
// produces into a single refresh signal.
const watchDebounce = 500 * time.Millisecond

// Watch observes the catalog database file and invokes onChange after
// writes settle. The ingestion step rewrites the catalog out of
// process; this is how the suggestion vocabulary learns about it.
// Watch blocks until ctx is done. In-memory catalogs are not watchable.
func (s *SQLite) Watch(ctx context.Context, onChange func()) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: SQLite swaps WAL/journal files around the
	// main file, and some loaders replace the file wholesale.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return err
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(s.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			slog.Info("catálogo alterado, atualizando vocabulário",
				slog.String("path", s.path))
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("erro no watcher do catálogo", slog.String("error", err.Error()))
		}
	}
}
