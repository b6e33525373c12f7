package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherScan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpql")
	writeQuery(t, path, "SELECT e FROM Employee e")

	w := New(dir)
	fw := NewFileWatcher(w, time.Hour)
	changes := map[string]*Document{}
	fw.OnChange(func(path string, doc *Document) {
		changes[path] = doc
	})

	fw.scan()
	require.Contains(t, changes, path)
	assert.NotNil(t, changes[path])
	assert.Empty(t, w.Diagnostics(path))

	// unchanged files are not rescanned
	delete(changes, path)
	fw.scan()
	assert.Empty(t, changes)

	writeQuery(t, path, "SELECT e FROM Employee e WHERE ")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	fw.scan()
	require.Contains(t, changes, path)
	assert.Len(t, w.Diagnostics(path), 1)

	require.NoError(t, os.Remove(path))
	fw.scan()
	require.Contains(t, changes, path)
	assert.Nil(t, changes[path])
	assert.Nil(t, w.GetFile(path))
}

func TestFileWatcherStartStop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpql")
	writeQuery(t, path, "SELECT e FROM Employee e")

	w := New(dir)
	fw := NewFileWatcher(w, 10*time.Millisecond)
	fw.Start()
	defer fw.Stop()

	assert.Eventually(t, func() bool {
		return w.GetFile(path) != nil
	}, time.Second, 10*time.Millisecond)
}
