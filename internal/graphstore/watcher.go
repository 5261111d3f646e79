package graphstore

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/skyroute/internal/checksum"
)

// ReloadCallback is called after a watcher-driven graph reload.
type ReloadCallback func(criterion Criterion)

// Watch starts an fsnotify watcher on the graphs directory and hot-reloads
// a criterion graph whenever its matrix file changes on disk, until ctx is
// cancelled. Reloads are gated on the file checksum so editor-churn events
// (chmod, duplicate writes) do not rebuild graphs needlessly. A reload that
// fails to parse keeps the previous graph installed.
func Watch(ctx context.Context, s *Store, root string, logger *slog.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		return err
	}

	seen := make(map[string]string)
	if metas, listErr := s.provider.List(); listErr == nil {
		for _, m := range metas {
			seen[m.Path] = m.Checksum
		}
	}

	logger.Info("graph watcher: started", slog.String("root", root))

	// Writers often emit bursts of Write events; debounce per file.
	pending := make(map[string]struct{})
	var flushTimer *time.Timer
	var flushCh <-chan time.Time

	scheduleFlush := func() {
		if flushTimer == nil {
			flushTimer = time.NewTimer(200 * time.Millisecond)
			flushCh = flushTimer.C
		} else {
			flushTimer.Reset(200 * time.Millisecond)
		}
	}

	reload := func(name string) {
		c := s.CriterionForFile(name)
		if c == "" {
			return
		}
		data, readErr := s.provider.Read(name)
		if readErr != nil {
			logger.Warn("graph watcher: read failed", slog.String("file", name), slog.String("error", readErr.Error()))
			return
		}
		sum := checksum.Sum(data)
		if seen[name] == sum {
			return
		}
		if _, loadErr := s.Load(c); loadErr != nil {
			logger.Warn("graph watcher: reload failed, keeping previous graph",
				slog.String("criterion", string(c)), slog.String("error", loadErr.Error()))
			return
		}
		seen[name] = sum
		logger.Info("graph watcher: reloaded", slog.String("criterion", string(c)))
		if cb != nil {
			cb(c)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if flushTimer != nil {
				flushTimer.Stop()
			}
			logger.Info("graph watcher: stopped")
			return nil

		case <-flushCh:
			for name := range pending {
				reload(name)
			}
			clear(pending)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			pending[filepath.Base(ev.Name)] = struct{}{}
			scheduleFlush()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("graph watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
