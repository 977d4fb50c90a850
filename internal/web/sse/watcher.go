package sse

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/boozedog/contextcrafter/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the first change
// before broadcasting a refresh.
const DefaultDebounce = time.Second

// Watcher watches the data directory for session and history writes and
// tells the broker to refresh clients.
type Watcher struct {
	dir      string
	broker   *Broker
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *logger.Logger
}

// NewWatcher creates and starts a file watcher on the data directory.
func NewWatcher(dataDir string, broker *Broker, debounce time.Duration, log *logger.Logger) (*Watcher, error) {
	if log == nil {
		log = logger.Nop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		dir:      dataDir,
		broker:   broker,
		watcher:  fw,
		debounce: debounce,
		log:      log.With("component", "watcher"),
	}

	if err := fw.Add(dataDir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dataDir, err)
	}

	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// relevant reports whether a changed file holds questionnaire records:
// a file-backend value or the sqlite database and its journals.
func relevant(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, "context-crafter-") && strings.HasSuffix(base, ".json") ||
		strings.HasPrefix(base, "contextcrafter.db")
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	pending := ""

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(ev.Name) || strings.Contains(ev.Name, "probe") {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) {
				if pending == "" {
					timer.Reset(w.debounce)
				}
				pending = filepath.Base(ev.Name)
			}
		case <-timer.C:
			// One refresh regardless of how many changes arrived.
			w.broker.Broadcast(Message{Event: "refresh", Path: pending})
			pending = ""
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("fsnotify error", "err", err)
		}
	}
}
