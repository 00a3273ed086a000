// Package watcher keeps the recent-files cache fresh by polling the backend
// and classifying what changed between refreshes.
package watcher

import (
	"context"
	"sync"
	"time"

	"dxview/internal/fileinfo"
)

// Fetcher is the operation the watcher needs from the backend client
type Fetcher interface {
	FetchRecent(ctx context.Context, days int) ([]fileinfo.FileInfo, error)
}

// RecentWatcher periodically re-fetches the recent file list, marks entries
// that appeared or changed since the previous snapshot, and hands the fresh
// list to its callback. It never drives the UI into a loading state; refreshes
// are silent replacements.
type RecentWatcher struct {
	fetcher  Fetcher
	days     int
	interval time.Duration

	// onRefresh runs on a watcher goroutine; the receiver marshals to the
	// UI thread itself.
	onRefresh func(files []fileinfo.FileInfo)

	mu       sync.RWMutex // protects previous from concurrent access
	previous map[string]fileinfo.FileInfo

	stopChan   chan struct{}
	stopped    bool
	debugPrint func(format string, args ...interface{})
}

// NewRecentWatcher creates a new watcher. It does not start polling.
func NewRecentWatcher(fetcher Fetcher, days int, interval time.Duration, onRefresh func([]fileinfo.FileInfo), debugPrint func(format string, args ...interface{})) *RecentWatcher {
	return &RecentWatcher{
		fetcher:    fetcher,
		days:       days,
		interval:   interval,
		onRefresh:  onRefresh,
		previous:   make(map[string]fileinfo.FileInfo),
		stopChan:   make(chan struct{}),
		debugPrint: debugPrint,
	}
}

// Seed records the baseline snapshot, typically the panel's first successful
// fetch, so the first poll doesn't mark everything as added.
func (w *RecentWatcher) Seed(files []fileinfo.FileInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.previous = make(map[string]fileinfo.FileInfo, len(files))
	for _, f := range files {
		w.previous[f.Path] = f
	}
}

// Start begins periodic polling
func (w *RecentWatcher) Start() {
	if w.stopped {
		return
	}
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.poll()
			case <-w.stopChan:
				return
			}
		}
	}()
}

// Stop stops the watcher. Safe to call more than once.
func (w *RecentWatcher) Stop() {
	if w.stopped {
		return
	}
	w.stopped = true
	close(w.stopChan)
}

func (w *RecentWatcher) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	files, err := w.fetcher.FetchRecent(ctx, w.days)
	if err != nil {
		// A failed poll never disturbs the current view
		w.debugPrint("Refresh poll failed: %v", err)
		return
	}

	marked, changed := w.markChanges(files)
	if !changed {
		return
	}
	w.onRefresh(marked)
}

// markChanges compares files against the previous snapshot, sets each entry's
// Status and replaces the snapshot. changed is false when the result set is
// identical to the previous one.
func (w *RecentWatcher) markChanges(files []fileinfo.FileInfo) (marked []fileinfo.FileInfo, changed bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	marked = make([]fileinfo.FileInfo, len(files))
	for i, f := range files {
		prev, exists := w.previous[f.Path]
		switch {
		case !exists:
			f.Status = fileinfo.StatusAdded
			changed = true
		case prev.ModifiedAt != f.ModifiedAt || prev.Size != f.Size:
			f.Status = fileinfo.StatusModified
			changed = true
		default:
			f.Status = fileinfo.StatusNormal
		}
		marked[i] = f
	}

	// Entries that vanished from the backend's window drop out with the
	// wholesale replacement; they still count as a change.
	if len(files) != len(w.previous) {
		changed = true
	}

	w.previous = make(map[string]fileinfo.FileInfo, len(files))
	for _, f := range files {
		w.previous[f.Path] = f
	}
	return marked, changed
}
