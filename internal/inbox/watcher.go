// Package inbox turns files dropped into per-slot directories into intake
// candidates. A file created under <dir>/<slot> is reported once its writes
// have settled.
package inbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/RFPCheck/internal/intake"
	"github.com/yildizm/RFPCheck/internal/logger"
)

const DefaultSettle = 300 * time.Millisecond

// Drop is one file that arrived in a slot directory
type Drop struct {
	Slot string
	File intake.File
}

// Option configures a Watcher
type Option func(*Watcher)

// WithSettle sets how long a file must be quiet before it is reported
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithLogger sets the watcher logger
func WithLogger(log *logger.Logger) Option {
	return func(w *Watcher) { w.log = log }
}

// Watcher watches one subdirectory per slot
type Watcher struct {
	dir     string
	slots   map[string]string // directory -> slot name
	settle  time.Duration
	log     *logger.Logger
	watcher *fsnotify.Watcher
}

// New creates <dir>/<slot> for every slot and starts watching them
func New(dir string, slots []string, opts ...Option) (*Watcher, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("empty inbox directory")
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("no slots to watch")
	}

	w := &Watcher{
		dir:    filepath.Clean(dir),
		slots:  make(map[string]string, len(slots)),
		settle: DefaultSettle,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, slot := range slots {
		slotDir := filepath.Join(w.dir, slot)
		if err := os.MkdirAll(slotDir, 0o750); err != nil {
			w.closeWatcher(watcher)
			return nil, fmt.Errorf("failed to create inbox directory: %w", err)
		}
		if err := watcher.Add(slotDir); err != nil {
			w.closeWatcher(watcher)
			return nil, fmt.Errorf("failed to watch %s: %w", slotDir, err)
		}
		w.slots[slotDir] = slot
	}

	w.watcher = watcher
	return w, nil
}

// Dir returns the inbox root
func (w *Watcher) Dir() string {
	return w.dir
}

// SlotDir returns the directory watched for slot
func (w *Watcher) SlotDir(slot string) string {
	return filepath.Join(w.dir, slot)
}

// Run reports settled files to handle until ctx is done, then closes the
// watcher.
func (w *Watcher) Run(ctx context.Context, handle func(Drop)) error {
	defer w.closeWatcher(w.watcher)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if w.relevant(event) {
				pending[event.Name] = time.Now()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error: %v", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.settle {
					continue
				}
				delete(pending, path)
				if drop, ok := w.drop(path); ok {
					handle(drop)
				}
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	_, ok := w.slots[filepath.Dir(event.Name)]
	return ok
}

func (w *Watcher) drop(path string) (Drop, bool) {
	slot := w.slots[filepath.Dir(path)]
	file, err := intake.NewFile(path)
	if err != nil {
		// Removed or replaced before it settled
		w.log.Debug("skipping %s: %v", path, err)
		return Drop{}, false
	}
	w.log.InfoWithFields("file dropped", []logger.Field{logger.Slot(slot), logger.F("file", file.Name)})
	return Drop{Slot: slot, File: file}, true
}

func (w *Watcher) closeWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil {
		w.log.Warn("failed to close watcher: %v", err)
	}
}
