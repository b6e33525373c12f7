package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/hermes/jpql/assist"
)

func TestToDiagnostics(t *testing.T) {
	content := []byte("SELECT e\nFROM Employee e\nWHERE e.a = 1 ODER BY e.a")
	w := New("/q")
	doc := w.UpdateFile("/q/a.jpql", content)

	diagnostics := toDiagnostics(doc.Content, doc.Problems)
	require.Len(t, diagnostics, 1)
	d := diagnostics[0]
	assert.Equal(t, protocol.Position{Line: 2, Character: 14}, d.Range.Start)
	assert.Equal(t, protocol.Position{Line: 2, Character: 25}, d.Range.End)
	assert.Equal(t, `unexpected text "ODER BY e.a" (did you mean 'ORDER BY'?)`, d.Message)
	assert.Equal(t, assist.CodeUnexpectedText, d.Code.Value)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
}

func TestCompletionItems(t *testing.T) {
	content := []byte("SELECT e FROM Employee e WH")
	items := completionItems(content, []assist.Proposal{
		{Label: "WHERE", Kind: assist.ProposalClause, Offset: 25, Length: 2},
	})

	require.Len(t, items, 1)
	assert.Equal(t, "WHERE", items[0].Label)
	assert.Equal(t, protocol.CompletionItemKindKeyword, *items[0].Kind)
	edit, ok := items[0].TextEdit.(protocol.TextEdit)
	require.True(t, ok)
	assert.Equal(t, "WHERE", edit.NewText)
	assert.Equal(t, protocol.UInteger(25), edit.Range.Start.Character)
	assert.Equal(t, protocol.UInteger(27), edit.Range.End.Character)
}

func TestURIConversion(t *testing.T) {
	path, err := uriToPath("file:///home/q/a.jpql")
	require.NoError(t, err)
	assert.Equal(t, "/home/q/a.jpql", path)
	assert.Equal(t, "file:///home/q/a.jpql", pathToURI(path))

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)
}
