package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/quillnotes/quill/internal/pathutil"
)

// VaultWatcher watches the vault tree with fsnotify and reports changed
// markdown files as vault-relative paths. Consumers register callbacks rather
// than reading events directly, which keeps the watcher decoupled from any
// particular UI loop.
type VaultWatcher struct {
	watcher *fsnotify.Watcher
	vault   string
	done    chan struct{}
	once    sync.Once

	mu       sync.Mutex
	onChange func(string)
	onClose  func()
	onError  func(error)
}

func NewVaultWatcher(vault string) (*VaultWatcher, error) {
	normalizedVault := pathutil.NormalizePath(vault)
	if normalizedVault == "" {
		return nil, errors.New("vault directory cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &VaultWatcher{
		watcher: w,
		vault:   normalizedVault,
		done:    make(chan struct{}),
	}

	if err := watcher.addRecursive(normalizedVault); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Start launches the event loop in its own goroutine. It is safe to call Close
// while the loop is running.
func (w *VaultWatcher) Start() {
	if w == nil {
		return
	}
	go w.loop()
}

func (w *VaultWatcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
					continue
				}
			}

			if !w.isRelevant(event) {
				continue
			}

			rel, err := w.relativePath(event.Name)
			if err != nil || rel == "" {
				continue
			}

			if fn := w.changeFn(); fn != nil {
				fn(rel)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				if fn := w.errorFn(); fn != nil {
					fn(err)
				}
			}
		}
	}
}

func (w *VaultWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
		if fn := w.closeFn(); fn != nil {
			fn()
		}
	})

	return closeErr
}

// OnChange registers a callback that receives relative note paths whenever the
// watcher detects a relevant change.
func (w *VaultWatcher) OnChange(fn func(string)) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

// OnClose registers a callback that is invoked exactly once when the watcher
// shuts down.
func (w *VaultWatcher) OnClose(fn func()) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.onClose = fn
	w.mu.Unlock()
}

// OnError registers a callback for watch errors.
func (w *VaultWatcher) OnError(fn func(error)) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.onError = fn
	w.mu.Unlock()
}

func (w *VaultWatcher) changeFn() func(string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onChange
}

func (w *VaultWatcher) closeFn() func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onClose
}

func (w *VaultWatcher) errorFn() func(error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onError
}

func (w *VaultWatcher) addRecursive(root string) error {
	normalized := pathutil.NormalizePath(root)
	return filepath.WalkDir(normalized, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}

		return w.watcher.Add(path)
	})
}

func (w *VaultWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	rel, err := w.relativePath(event.Name)
	if err != nil || rel == "" {
		return false
	}

	return strings.EqualFold(filepath.Ext(rel), ".md")
}

func (w *VaultWatcher) relativePath(path string) (string, error) {
	normalized := pathutil.NormalizePath(path)
	rel, err := pathutil.VaultRelative(w.vault, normalized)
	if err != nil {
		return "", err
	}

	if rel == "." || rel == "" || strings.HasPrefix(rel, "..") {
		return "", nil
	}

	return rel, nil
}
