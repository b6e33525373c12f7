package assist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/hermes/jpql/parser"
)

func problemsOf(query string) []Problem {
	return Problems(parser.ParseQuery(query, parser.WithTolerant()))
}

func TestProblemsValidQuery(t *testing.T) {
	assert.Empty(t, problemsOf("SELECT e FROM Employee e WHERE e.name = 'x' ORDER BY e.name"))
}

func TestProblems(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Problem
	}{
		{
			name:  "missing condition",
			query: "SELECT e FROM Employee e WHERE ",
			want: Problem{
				Offset:  31,
				Code:    CodeMissingExpression,
				Message: "missing conditional expression",
			},
		},
		{
			name:  "missing parenthesis",
			query: "SELECT ABS(e.a FROM Employee e",
			want: Problem{
				Offset:  14,
				Code:    CodeMissingToken,
				Message: `missing ")"`,
			},
		},
		{
			name:  "unterminated string",
			query: "SELECT e FROM Employee e WHERE e.name = 'abc",
			want: Problem{
				Offset:  40,
				Length:  4,
				Code:    CodeUnterminatedString,
				Message: "string literal is not terminated",
			},
		},
		{
			name:  "misspelled clause",
			query: "SELECT e FROM Employee e WHERE e.a = 1 ODER BY e.a",
			want: Problem{
				Offset:     39,
				Length:     11,
				Code:       CodeUnexpectedText,
				Message:    `unexpected text "ODER BY e.a"`,
				Suggestion: "ORDER BY",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := problemsOf(tt.query)
			require.Len(t, got, 1, "%v", got)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestProblemsMisspelledStatement(t *testing.T) {
	got := problemsOf("SELEC e FROM Employee e")

	require.Len(t, got, 2, "%v", got)
	assert.Equal(t, CodeMissingExpression, got[0].Code)
	assert.Equal(t, "missing statement", got[0].Message)
	assert.Equal(t, CodeUnexpectedText, got[1].Code)
	assert.Equal(t, "SELECT", got[1].Suggestion)
	assert.Equal(t, `0: unexpected text "SELEC e FROM Employee e" (did you mean 'SELECT'?)`, got[1].String())
}

func TestProblemsBadExpression(t *testing.T) {
	got := problemsOf("SELECT e FROM Employee e WHERE UPDATE")

	var bad []Problem
	for _, p := range got {
		if p.Code == CodeBadExpression {
			bad = append(bad, p)
		}
	}
	require.Len(t, bad, 1, "%v", got)
	assert.Equal(t, 31, bad[0].Offset)
	assert.Equal(t, "UpdateStatement is not valid here", bad[0].Message)
}

func TestProblemsSorted(t *testing.T) {
	got := problemsOf("SELECT ABS(e.a FROM Employee e WHERE ")

	require.Len(t, got, 2, "%v", got)
	assert.Less(t, got[0].Offset, got[1].Offset)
}

func TestSuggestFrom(t *testing.T) {
	candidates := []string{"SELECT", "UPDATE", "DELETE"}

	tests := []struct {
		input string
		want  string
	}{
		{"selec", "SELECT"},
		{"UPDTE", "UPDATE"},
		{"delete", "DELETE"},
		{"INSERT", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestFrom(tt.input, candidates, 2))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, Levenshtein("ORDER", "ORDER"))
	assert.Equal(t, 1, Levenshtein("ODER", "ORDER"))
	assert.Equal(t, 3, Levenshtein("", "ABC"))
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
}
