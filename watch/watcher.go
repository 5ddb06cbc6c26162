package watch

import (
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/wippyai/glinspect/errors"
)

// FileWatcher reports debounced changes to a fixed set of files. It watches
// the parent directories so that editors replacing a file on save are
// still seen.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	files     map[string]struct{}
	onChange  func([]string)
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// New creates a watcher for paths. onChange runs on the debouncer's
// goroutine with the changed paths, sorted.
func New(paths []string, debounce time.Duration, onChange func([]string)) (*FileWatcher, error) {
	if len(paths) == 0 {
		return nil, errors.InvalidInput(errors.PhaseRelink, "no files to watch")
	}
	files := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseRelink, errors.KindInvalidInput, err, "resolve "+p)
		}
		files[abs] = struct{}{}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRelink, errors.KindUnsupported, err, "create file watcher")
	}

	fw := &FileWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(debounce),
		files:     files,
		onChange:  onChange,
		stopChan:  make(chan struct{}),
	}
	fw.debouncer.SetCallback(func(changed []string) {
		slices.Sort(changed)
		fw.onChange(changed)
	})
	return fw, nil
}

// Files returns the watched paths, absolute and sorted.
func (fw *FileWatcher) Files() []string {
	out := make([]string, 0, len(fw.files))
	for f := range fw.files {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Start begins watching in the background.
func (fw *FileWatcher) Start() error {
	dirs := make(map[string]struct{})
	for f := range fw.files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return errors.Wrap(errors.PhaseRelink, errors.KindInvalidInput, err, "watch directory "+dir)
		}
		Logger().Debug("watching directory", zap.String("dir", dir))
	}

	fw.wg.Add(1)
	go fw.watch()
	return nil
}

// Stop stops the watcher. Pending changes are dropped.
func (fw *FileWatcher) Stop() error {
	select {
	case <-fw.stopChan:
		return nil
	default:
		close(fw.stopChan)
	}

	fw.wg.Wait()
	fw.debouncer.Stop()
	return fw.watcher.Close()
}

func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := fw.files[name]; !ok {
				continue
			}
			Logger().Debug("file changed", zap.String("file", name))
			fw.debouncer.Add(name)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			Logger().Warn("watch error", zap.Error(err))

		case <-fw.stopChan:
			return
		}
	}
}
