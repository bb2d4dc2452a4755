// Package watch reruns a handler on Markdown files as they change on disk.
package watch

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-mdtidy/internal/fileutil"
)

// DefaultDebounce coalesces bursts of events for the same file.
const DefaultDebounce = 200 * time.Millisecond

// Handler is called once per settled file change.
type Handler func(ctx context.Context, path string) error

// Watcher watches a directory tree for changes to matching files.
type Watcher struct {
	root     string
	exts     []string
	handle   Handler
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is handled.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger for watcher diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New returns a Watcher over root calling handle for files matching exts.
func New(root string, exts []string, handle Handler, opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		exts:     exts,
		handle:   handle,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is canceled. Directories created while running are
// added automatically. Handler errors are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := addDirsRecursive(fw, w.root); err != nil {
		return err
	}
	w.logger.Info("watch: started", slog.String("root", w.root))

	ready := make(chan string)
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	schedule := func(path string) {
		if t, ok := pending[path]; ok {
			t.Reset(w.debounce)
			return
		}
		pending[path] = time.AfterFunc(w.debounce, func() {
			select {
			case ready <- path:
			case <-ctx.Done():
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch: stopped")
			return nil

		case path := <-ready:
			delete(pending, path)
			if err := w.handle(ctx, path); err != nil {
				w.logger.Warn("watch: handler failed", slog.String("path", path), slog.String("error", err.Error()))
			}

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(fw, ev.Name); addErr != nil {
						w.logger.Warn("watch: add new dir failed", slog.String("path", ev.Name), slog.String("error", addErr.Error()))
					} else {
						w.logger.Debug("watch: watching new dir", slog.String("path", ev.Name))
					}
					w.scheduleExisting(ev.Name, schedule)
					continue
				}
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !fileutil.HasExtension(ev.Name, w.exts) {
				continue
			}
			schedule(ev.Name)

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch: error", slog.String("error", watchErr.Error()))
		}
	}
}

// scheduleExisting queues matching files already inside a new directory,
// since their create events may predate the directory watch.
func (w *Watcher) scheduleExisting(dir string, schedule func(string)) {
	files, err := fileutil.DiscoverMarkdown(dir, w.exts)
	if err != nil {
		w.logger.Warn("watch: scan new dir failed", slog.String("path", dir), slog.String("error", err.Error()))
		return
	}
	for _, f := range files {
		schedule(f)
	}
}

func addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}
