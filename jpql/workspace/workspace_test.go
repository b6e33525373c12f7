package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/hermes/jpql/assist"
	"github.com/dhamidi/hermes/jpql/parser"
)

func writeQuery(t *testing.T, path, query string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(query), 0o644))
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	writeQuery(t, filepath.Join(dir, "employees.jpql"), "SELECT e FROM Employee e")
	writeQuery(t, filepath.Join(dir, "reports", "broken.jpql"), "SELECT e FROM Employee e WHERE ")
	writeQuery(t, filepath.Join(dir, "notes.txt"), "not a query")
	writeQuery(t, filepath.Join(dir, ".hidden", "skip.jpql"), "SELECT x FROM X x")

	w := New(dir)
	require.NoError(t, w.ScanAll())

	assert.Equal(t, []string{
		filepath.Join(dir, "employees.jpql"),
		filepath.Join(dir, "reports", "broken.jpql"),
	}, w.Paths())

	assert.Empty(t, w.Diagnostics(filepath.Join(dir, "employees.jpql")))
	broken := w.Diagnostics(filepath.Join(dir, "reports", "broken.jpql"))
	require.Len(t, broken, 1)
	assert.Equal(t, assist.CodeMissingExpression, broken[0].Code)
}

func TestUpdateAndRemoveFile(t *testing.T) {
	w := New("/queries")
	doc := w.UpdateFile("/queries/a.jpql", []byte("SELECT e FROM Employee e"))

	require.NotNil(t, doc)
	assert.True(t, doc.Root.HasQueryStatement())
	assert.Same(t, doc, w.GetFile("/queries/a.jpql"))

	w.RemoveFile("/queries/a.jpql")
	assert.Nil(t, w.GetFile("/queries/a.jpql"))
	assert.Nil(t, w.Diagnostics("/queries/a.jpql"))
	assert.Nil(t, w.CompletionsAt("/queries/a.jpql", 1, 0))
}

func TestScanFileMissing(t *testing.T) {
	w := New(t.TempDir())
	err := w.ScanFile(filepath.Join(w.RootDir(), "missing.jpql"))
	assert.ErrorContains(t, err, "reading query")
}

func TestCompletionsAt(t *testing.T) {
	w := New("/q")
	w.UpdateFile("/q/a.jpql", []byte("SELECT e\nFROM Employee e\nWH"))

	proposals := w.CompletionsAt("/q/a.jpql", 3, 2)
	require.Len(t, proposals, 1)
	assert.Equal(t, "WHERE", proposals[0].Label)
	assert.Equal(t, 25, proposals[0].Offset)
}

func TestCompletionsAtVersion(t *testing.T) {
	const query = "SELECT e FROM Employee e WHERE "

	latest := New("/q")
	latest.UpdateFile("/q/a.jpql", []byte(query))
	old := New("/q", parser.WithVersion(parser.Version1_0))
	old.UpdateFile("/q/a.jpql", []byte(query))

	labelsOf := func(ps []assist.Proposal) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Label)
		}
		return out
	}
	assert.Contains(t, labelsOf(latest.CompletionsAt("/q/a.jpql", 1, len(query))), "CASE")
	assert.NotContains(t, labelsOf(old.CompletionsAt("/q/a.jpql", 1, len(query))), "CASE")
}

func TestHoverAt(t *testing.T) {
	w := New("/q")
	w.UpdateFile("/q/a.jpql", []byte("SELECT e\nFROM Employee e"))

	hover := w.HoverAt("/q/a.jpql", 2, 7)
	require.NotNil(t, hover)
	assert.Equal(t, parser.KindAbstractSchemaName, hover.Kind)
	assert.Equal(t, "Employee", hover.Text)
	assert.Equal(t, 14, hover.Offset)
	assert.Equal(t, 8, hover.Length)
	assert.Contains(t, hover.Markdown(), "**AbstractSchemaName**")

	assert.Nil(t, w.HoverAt("/q/a.jpql", 5, 0))
	assert.Nil(t, w.HoverAt("/q/missing.jpql", 1, 0))
}

func TestOffsetOf(t *testing.T) {
	content := []byte("SELECT e\nFROM Employee e\nWHERE e.a = 1")

	tests := []struct {
		name   string
		line   int
		column int
		want   int
	}{
		{"first line", 1, 0, 0},
		{"inside first line", 1, 7, 7},
		{"second line", 2, 0, 9},
		{"clamped to line end", 2, 100, 24},
		{"last line", 3, 6, 31},
		{"line out of range", 4, 0, -1},
		{"zero line", 0, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OffsetOf(content, tt.line, tt.column))
		})
	}
}

func TestPositionOf(t *testing.T) {
	content := []byte("SELECT e\nFROM Employee e\nWHERE e.a = 1")

	for _, offset := range []int{0, 7, 9, 24, 25, 31, len(content)} {
		line, column := PositionOf(content, offset)
		assert.Equal(t, offset, OffsetOf(content, line, column), "offset %d", offset)
	}
}
