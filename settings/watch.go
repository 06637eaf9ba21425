package settings

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// pollInterval is how often the fallback watcher checks the file when
// fsnotify is unavailable.
const pollInterval = time.Second

// Watch re-loads the settings file whenever it changes and sends each
// successfully parsed version on the returned channel. Malformed
// intermediate states (editors often write files in several steps) are
// skipped; the previous settings stay current until a parseable version
// appears. The channel closes when ctx is cancelled.
//
// The containing directory is watched rather than the file itself so
// rename-based saves keep working.
func Watch(ctx context.Context, path string) (<-chan Settings, error) {
	if _, err := Load(path); err != nil {
		return nil, err
	}

	ch := make(chan Settings, 1)

	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		err = watcher.Add(filepath.Dir(path))
	}
	if err != nil {
		// fsnotify can fail on exotic filesystems; fall back to polling.
		if watcher != nil {
			watcher.Close()
		}
		go watchPolling(ctx, ch, path)
		return ch, nil
	}

	go watchWithWatcher(ctx, ch, watcher, path)
	return ch, nil
}

func watchWithWatcher(ctx context.Context, ch chan Settings, watcher *fsnotify.Watcher, path string) {
	defer close(ch)
	defer watcher.Close()

	baseName := filepath.Base(path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			deliver(ch, path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Usually recoverable
			_ = err
		}
	}
}

func watchPolling(ctx context.Context, ch chan Settings, path string) {
	defer close(ch)

	var lastMod time.Time
	if info, err := os.Stat(path); err == nil {
		lastMod = info.ModTime()
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil || !info.ModTime().After(lastMod) {
				continue
			}
			lastMod = info.ModTime()
			deliver(ch, path)
		}
	}
}

// deliver parses the file and sends the result, replacing any pending
// unread version so slow consumers always see the latest settings. The
// watch goroutine is the only sender, so the drain cannot race another
// producer.
func deliver(ch chan Settings, path string) {
	s, err := Load(path)
	if err != nil {
		return
	}
	for {
		select {
		case ch <- *s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
