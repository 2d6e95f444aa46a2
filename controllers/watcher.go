package controllers

import (
	"context"
	"hash/fnv"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// ChangeDetector reads a version token from some source. Two calls that
// return different values mean "something changed".
type ChangeDetector func(ctx context.Context) (int64, error)

// DirFingerprint returns a ChangeDetector that hashes the path, size, and
// modification time of every file under root. Any file added, removed, or
// touched changes the token.
func DirFingerprint(root string) ChangeDetector {
	return func(_ context.Context) (int64, error) {
		h := fnv.New64a()
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			h.Write([]byte(path))
			var meta [16]byte
			size := uint64(info.Size())
			mod := uint64(info.ModTime().UnixNano())
			for i := 0; i < 8; i++ {
				meta[i] = byte(size >> (8 * i))
				meta[8+i] = byte(mod >> (8 * i))
			}
			h.Write(meta[:])
			return nil
		})
		if err != nil {
			return 0, err
		}
		return int64(h.Sum64()), nil
	}
}

// Options tunes the watcher behaviour.
type Options struct {
	// Interval is the polling frequency. Default: 1s.
	Interval time.Duration
	// Debounce is the quiet period after a change is detected before the
	// action fires. Further changes during the window reset the timer.
	// 0 means fire immediately. Default: 0.
	Debounce time.Duration
	// Detector produces the version token.
	Detector ChangeDetector
	// Logger overrides the default slog logger.
	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.Interval <= 0 {
		o.Interval = time.Second
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Watcher polls a change detector and runs an action when the version token
// moves. It drives hot reload: the action typically rescans templates,
// aggregates a new routing table, swaps the resolver snapshot, and reloads
// the controller registry. Safe for concurrent use.
type Watcher struct {
	opts Options

	version atomic.Int64

	checks  atomic.Int64
	changes atomic.Int64
	errors  atomic.Int64
	reloads atomic.Int64
}

// Stats are point-in-time watcher counters.
type Stats struct {
	Checks          int64 `json:"checks"`
	ChangesDetected int64 `json:"changes_detected"`
	Errors          int64 `json:"errors"`
	Reloads         int64 `json:"reloads"`
}

// NewWatcher creates a Watcher. Call OnChange to start the loop.
func NewWatcher(opts Options) *Watcher {
	opts.defaults()
	return &Watcher{opts: opts}
}

// Stats returns the current counters.
func (w *Watcher) Stats() Stats {
	return Stats{
		Checks:          w.checks.Load(),
		ChangesDetected: w.changes.Load(),
		Errors:          w.errors.Load(),
		Reloads:         w.reloads.Load(),
	}
}

// Version returns the last successfully processed version token.
func (w *Watcher) Version() int64 { return w.version.Load() }

// OnChange blocks until ctx is cancelled, polling at opts.Interval. When the
// detector reports a new token and the debounce window passes quietly, the
// action is called.
//
// If the action returns an error the version is NOT advanced, so the reload
// is retried on the next poll cycle.
func (w *Watcher) OnChange(ctx context.Context, action func() error) {
	log := w.opts.Logger

	// Seed the initial version so startup does not count as a change.
	if v, err := w.opts.Detector(ctx); err != nil {
		log.Warn("controllers: initial version check failed", "error", err)
	} else {
		w.version.Store(v)
	}

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time
	pending := false
	var pendingVersion int64

	log.Info("controllers: watch started", "interval", w.opts.Interval, "debounce", w.opts.Debounce)

	for {
		select {
		case <-ctx.Done():
			log.Info("controllers: watch stopped")
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-ticker.C:
			w.checks.Add(1)
			cur, err := w.opts.Detector(ctx)
			if err != nil {
				w.errors.Add(1)
				log.Warn("controllers: version check failed", "error", err)
				continue
			}
			if cur == w.version.Load() {
				if pending {
					// The change reverted before the quiet period ended;
					// firing now would reload for a net no-op.
					pending = false
					if debounceTimer != nil {
						debounceTimer.Stop()
					}
					debounceCh = nil
					log.Debug("controllers: change reverted, reload cancelled")
				}
				continue
			}
			if pending && cur == pendingVersion {
				continue
			}
			w.changes.Add(1)
			pending = true
			pendingVersion = cur

			if w.opts.Debounce <= 0 {
				w.fire(log, action, pendingVersion)
				pending = false
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.opts.Debounce)
			debounceCh = debounceTimer.C
			log.Debug("controllers: change detected, debouncing", "pending_version", cur)

		case <-debounceCh:
			debounceCh = nil
			if pending {
				w.fire(log, action, pendingVersion)
				pending = false
			}
		}
	}
}

func (w *Watcher) fire(log *slog.Logger, action func() error, ver int64) {
	start := time.Now()
	if err := action(); err != nil {
		w.errors.Add(1)
		log.Error("controllers: reload failed", "error", err)
		return
	}
	w.reloads.Add(1)
	w.version.Store(ver)
	log.Info("controllers: reload complete", "duration", time.Since(start))
}
