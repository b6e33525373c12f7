package assist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/hermes/jpql/parser"
)

func labels(proposals []Proposal, kind ProposalKind) []string {
	var out []string
	for _, p := range proposals {
		if p.Kind == kind {
			out = append(out, p.Label)
		}
	}
	return out
}

func TestCompleteStatements(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		offset int
		want   []string
	}{
		{"empty query", "", 0, []string{"DELETE", "SELECT", "UPDATE"}},
		{"partial keyword", "SEL", 3, []string{"SELECT"}},
		{"lower case partial", "up", 2, []string{"UPDATE"}},
		{"no match", "XYZ", 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Complete(tt.query, tt.offset)
			assert.Equal(t, tt.want, labels(got, ProposalIdentifier))
			assert.Empty(t, labels(got, ProposalVariable))
		})
	}
}

func TestCompleteClausesAfterRangeDeclaration(t *testing.T) {
	const query = "SELECT e FROM Employee e "
	got := Complete(query, len(query))

	assert.Empty(t, labels(got, ProposalIdentifier))
	assert.Equal(t, []string{
		"GROUP BY", "HAVING", "INNER JOIN", "JOIN", "LEFT JOIN", "LEFT OUTER JOIN", "ORDER BY", "WHERE",
	}, labels(got, ProposalClause))
	for _, p := range got {
		assert.Equal(t, len(query), p.Offset)
		assert.Zero(t, p.Length)
	}
}

func TestCompletePartialClause(t *testing.T) {
	const query = "SELECT e FROM Employee e WH"
	got := Complete(query, len(query))

	require.Len(t, got, 1)
	assert.Equal(t, Proposal{Label: "WHERE", Kind: ProposalClause, Offset: 25, Length: 2}, got[0])
}

func TestCompleteSkipsUsedClauses(t *testing.T) {
	const query = "SELECT e FROM Employee e WHERE e.salary > 1000 "
	clauses := labels(Complete(query, len(query)), ProposalClause)

	assert.Contains(t, clauses, "GROUP BY")
	assert.Contains(t, clauses, "ORDER BY")
	assert.NotContains(t, clauses, "WHERE")
	assert.NotContains(t, clauses, "JOIN")
}

func TestCompleteCompoundIdentifiers(t *testing.T) {
	const query = "SELECT e FROM Employee e WHERE e.salary > 1000 AN"
	got := labels(Complete(query, len(query)), ProposalIdentifier)

	assert.Contains(t, got, "AND")
	assert.NotContains(t, got, "OR")
}

func TestCompleteConditionalSlot(t *testing.T) {
	const query = "SELECT e FROM Employee emp, IN(emp.phones) ph WHERE "
	got := Complete(query, len(query))

	identifiers := labels(got, ProposalIdentifier)
	assert.Contains(t, identifiers, "EXISTS")
	assert.Contains(t, identifiers, "NOT")
	assert.Contains(t, identifiers, "ABS")
	assert.NotContains(t, identifiers, "SELECT")
	assert.ElementsMatch(t, []string{"emp", "ph"}, labels(got, ProposalVariable))
}

func TestCompleteNonASCIIVariable(t *testing.T) {
	const query = "SELECT e FROM Employee employé WHERE employ"
	got := Complete(query, len(query))

	require.Equal(t, []string{"employé"}, labels(got, ProposalVariable))
	for _, p := range got {
		assert.Equal(t, 38, p.Offset)
		assert.Equal(t, 6, p.Length)
	}

	const accented = "SELECT e FROM Employee employé WHERE employé"
	got = Complete(accented, len(accented))
	for _, p := range got {
		assert.Equal(t, 38, p.Offset)
		assert.Equal(t, len("employé"), p.Length)
	}
}

func TestCompletePrefixFiltersCaseInsensitively(t *testing.T) {
	const query = "SELECT e FROM Employee e WHERE ex"
	got := Complete(query, len(query))

	assert.Equal(t, []string{"EXISTS"}, labels(got, ProposalIdentifier))
	for _, p := range got {
		assert.Equal(t, 31, p.Offset)
		assert.Equal(t, 2, p.Length)
	}
}

func TestCompleteVersion(t *testing.T) {
	const query = "SELECT e FROM Employee e WHERE "

	latest := labels(Complete(query, len(query)), ProposalIdentifier)
	assert.Contains(t, latest, "CASE")

	old := labels(Complete(query, len(query), parser.WithVersion(parser.Version1_0)), ProposalIdentifier)
	assert.NotContains(t, old, "CASE")
	assert.Contains(t, old, "ABS")
}

func TestCompleteNothing(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		offset int
	}{
		{"path segment", "SELECT e FROM Employee e WHERE e.na", 35},
		{"negative offset", "SELECT e", -1},
		{"offset past end", "SELECT e", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Complete(tt.query, tt.offset))
		})
	}
}

func TestDeclaredVariables(t *testing.T) {
	root := parser.ParseQuery("SELECT e.name AS n FROM Employee e JOIN e.dept d " +
		"WHERE EXISTS (SELECT p FROM Project p WHERE p.lead = e)")

	assert.Equal(t, []string{"n", "e", "d", "p"}, DeclaredVariables(root))
}

func TestProposalKindMarshalText(t *testing.T) {
	text, err := ProposalClause.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "clause", string(text))
	assert.Equal(t, "unknown", ProposalKind(42).String())

	var kind ProposalKind
	require.NoError(t, kind.UnmarshalText([]byte("variable")))
	assert.Equal(t, ProposalVariable, kind)
	assert.Error(t, kind.UnmarshalText([]byte("keyword")))
}
