package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileWatcher polls the workspace root and keeps the documents in sync with
// the query files on disk.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(path string, doc *Document)
}

func NewFileWatcher(w *Workspace, pollInterval time.Duration) *FileWatcher {
	return &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: pollInterval,
		modTimes:     make(map[string]time.Time),
	}
}

// OnChange registers fn to be called after a file was rescanned or removed.
// A removed file is reported with a nil document. Call before Start.
func (fw *FileWatcher) OnChange(fn func(path string, doc *Document)) {
	fw.onChange = fn
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
}

func (fw *FileWatcher) run() {
	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	fw.scan()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.scan()
		}
	}
}

func (fw *FileWatcher) scan() {
	currentFiles := make(map[string]bool)
	root := fw.workspace.RootDir()

	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != Extension {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := fw.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			fw.modTimes[path] = info.ModTime()
			if err := fw.workspace.ScanFile(path); err != nil {
				log.Warningf("rescanning %s: %s", path, err)
				return nil
			}
			fw.notify(path, fw.workspace.GetFile(path))
		}
		return nil
	})

	for path := range fw.modTimes {
		if !currentFiles[path] {
			delete(fw.modTimes, path)
			fw.workspace.RemoveFile(path)
			fw.notify(path, nil)
		}
	}
}

func (fw *FileWatcher) notify(path string, doc *Document) {
	if fw.onChange != nil {
		fw.onChange(path, doc)
	}
}
