package editor

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

const watchDebounce = 100 * time.Millisecond

// FileWatchEvent carries file system change notifications to the main event loop.
type FileWatchEvent struct {
	tcell.EventTime
	Path string
	Op   fsnotify.Op
}

type fileWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Close stops watching and waits for the event goroutine to exit.
func (w *fileWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

// watchFile posts a FileWatchEvent to screen whenever path changes on disk.
// The parent directory is watched so that editors which replace the file
// through a rename are still seen. Bursts are coalesced into one event
// carrying every operation seen.
func watchFile(screen tcell.Screen, path string, log *slog.Logger) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	fw := &fileWatcher{watcher: watcher, done: make(chan struct{})}
	go func() {
		defer close(fw.done)
		debounceTimer := time.NewTimer(watchDebounce)
		debounceTimer.Stop()
		defer debounceTimer.Stop()
		var pending fsnotify.Op

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				pending |= event.Op
				debounceTimer.Reset(watchDebounce)

			case <-debounceTimer.C:
				ev := &FileWatchEvent{Path: abs, Op: pending}
				ev.SetEventNow()
				if err := screen.PostEvent(ev); err != nil {
					log.Debug("dropped file watch event", "path", abs, "err", err)
				}
				pending = 0

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("file watcher error", "err", err)
			}
		}
	}()
	return fw, nil
}
