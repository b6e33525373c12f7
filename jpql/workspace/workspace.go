// Package workspace keeps the JPQL documents of a directory tree parsed and
// answers editor requests (completion, hover, diagnostics) against them.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/hermes/jpql/assist"
	"github.com/dhamidi/hermes/jpql/parser"
)

// Extension marks the files a workspace scans. Each file holds one query.
const Extension = ".jpql"

var log = commonlog.GetLogger("hermes.workspace")

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	opts    []parser.Option
	docs    map[string]*Document
}

// Document is a parsed query file. It is replaced, never mutated, when the
// file changes.
type Document struct {
	Path     string
	Content  []byte
	Root     *parser.JPQLExpression
	Problems []assist.Problem
}

// New creates an empty workspace rooted at rootDir. The options are passed
// to every parse; parsing is always tolerant.
func New(rootDir string, opts ...parser.Option) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		opts:    append([]parser.Option{parser.WithTolerant()}, opts...),
		docs:    make(map[string]*Document),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// ScanAll parses every query file below the root directory. Unreadable
// files are skipped.
func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Extension {
			if err := w.ScanFile(path); err != nil {
				log.Warningf("skipping %s: %s", path, err)
			}
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading query: %w", err)
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the new text of path and returns the
// resulting document.
func (w *Workspace) UpdateFile(path string, content []byte) *Document {
	root := parser.ParseQuery(string(content), w.opts...)
	doc := &Document{
		Path:     path,
		Content:  content,
		Root:     root,
		Problems: assist.Problems(root),
	}
	log.Debugf("parsed %s: %d problem(s)", path, len(doc.Problems))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[path] = doc
	return doc
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, path)
}

func (w *Workspace) GetFile(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[path]
}

// Paths returns the paths of all documents, sorted.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.docs))
	for path := range w.docs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// CompletionsAt returns the proposals at a 1-based line and 0-based column
// of a document.
func (w *Workspace) CompletionsAt(path string, line, column int) []assist.Proposal {
	doc := w.GetFile(path)
	if doc == nil {
		return nil
	}
	offset := OffsetOf(doc.Content, line, column)
	if offset < 0 {
		return nil
	}
	return assist.CompleteAt(doc.Root, offset)
}

// Hover describes the innermost expression at a 1-based line and 0-based
// column, or returns nil when there is nothing to describe.
type Hover struct {
	Kind   parser.Kind
	BNF    string
	Text   string
	Offset int
	Length int
}

func (h *Hover) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**", h.Kind)
	if h.BNF != "" {
		fmt.Fprintf(&sb, " `%s`", h.BNF)
	}
	if h.Text != "" {
		fmt.Fprintf(&sb, "\n\n```jpql\n%s\n```", h.Text)
	}
	return sb.String()
}

func (w *Workspace) HoverAt(path string, line, column int) *Hover {
	doc := w.GetFile(path)
	if doc == nil {
		return nil
	}
	offset := OffsetOf(doc.Content, line, column)
	if offset < 0 {
		return nil
	}
	qp, err := doc.Root.PopulatePosition(offset)
	if err != nil {
		return nil
	}
	e := qp.Expression()
	if e.Kind() == parser.KindJPQL {
		return nil
	}
	return &Hover{
		Kind:   e.Kind(),
		BNF:    e.QueryBNF(),
		Text:   e.ActualText(),
		Offset: e.Offset(),
		Length: e.Length(),
	}
}

// Diagnostics returns the problems of a document, or nil for an unknown
// path.
func (w *Workspace) Diagnostics(path string) []assist.Problem {
	doc := w.GetFile(path)
	if doc == nil {
		return nil
	}
	return doc.Problems
}

// OffsetOf converts a 1-based line and 0-based column to a byte offset. A
// column past the end of its line is clamped to the line end. It returns -1
// when the line does not exist.
func OffsetOf(content []byte, line, column int) int {
	if line <= 0 || column < 0 {
		return -1
	}
	offset := 0
	for l := 1; l < line; l++ {
		i := strings.IndexByte(string(content[offset:]), '\n')
		if i < 0 {
			return -1
		}
		offset += i + 1
	}
	end := len(content)
	if i := strings.IndexByte(string(content[offset:]), '\n'); i >= 0 {
		end = offset + i
	}
	return min(offset+column, end)
}

// PositionOf converts a byte offset to a 1-based line and 0-based column.
func PositionOf(content []byte, offset int) (line, column int) {
	offset = max(0, min(offset, len(content)))
	before := string(content[:offset])
	line = strings.Count(before, "\n") + 1
	column = offset - (strings.LastIndexByte(before, '\n') + 1)
	return line, column
}
