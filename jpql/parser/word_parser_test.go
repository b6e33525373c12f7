package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordParserWord(t *testing.T) {
	tests := []struct {
		input string
		word  string
	}{
		{"", ""},
		{" x", ""},
		{"SELECT e", "SELECT"},
		{"e.name=1", "e.name"},
		{"(a", "("},
		{"),", ")"},
		{"<>1", "<>"},
		{"<=1", "<="},
		{"<1", "<"},
		{">=1", ">="},
		{"!=1", "!="},
		{"'it''s' x", "'it''s'"},
		{"'open", "'open"},
		{`"quoted" x`, `"quoted"`},
		{":name)", ":name"},
		{"?1,", "?1"},
		{"1.5E-10", "1.5E"},
		{"COUNT(e)", "COUNT"},
		{";", ";"},
		{"Straße e", "Straße"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			wp := NewWordParser(tt.input)
			assert.Equal(t, tt.word, wp.Word())
			assert.Equal(t, 0, wp.Position(), "Word must not move the cursor")
		})
	}
}

func TestWordParserWordType(t *testing.T) {
	tests := []struct {
		input string
		kind  WordType
	}{
		{"", WordTypeEnd},
		{"name", WordTypeWord},
		{"42", WordTypeNumericLiteral},
		{".5", WordTypeNumericLiteral},
		{"'x'", WordTypeStringLiteral},
		{":p", WordTypeInputParameter},
		{"?1", WordTypeInputParameter},
		{"<=", WordTypeOperator},
		{"-", WordTypeOperator},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.kind, NewWordParser(tt.input).WordType())
		})
	}
}

func TestWordParserStartsWithIdentifier(t *testing.T) {
	tests := []struct {
		input      string
		identifier string
		want       bool
	}{
		{"GROUP BY e", "GROUP BY", true},
		{"group   by e", "GROUP BY", true},
		{"GROUP\n\tBY e", "GROUP BY", true},
		{"GROUPBY e", "GROUP BY", false},
		{"ORDER e", "ORDER BY", false},
		{"FROMAGE", "FROM", false},
		{"FROM(", "FROM", true},
		{"", "FROM", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NewWordParser(tt.input).StartsWithIdentifier(tt.identifier))
		})
	}
}

func TestWordParserMovement(t *testing.T) {
	wp := NewWordParser("SELECT  e")

	assert.Equal(t, "SELECT", wp.MoveForwardWord(wp.Word()))
	assert.Equal(t, "  ", wp.Whitespace())
	assert.Equal(t, "e", wp.Word())
	assert.False(t, wp.IsTail())

	wp.MoveBackward(2)
	assert.Equal(t, 6, wp.Position())
	assert.Equal(t, 2, wp.SkipLeadingWhitespace())

	wp.SetPosition(100)
	assert.True(t, wp.IsTail())
	assert.Equal(t, byte(0), wp.Character())
	assert.Equal(t, "", wp.MoveForward(1))

	wp.SetPosition(-3)
	assert.Equal(t, 0, wp.Position())
	assert.Equal(t, "SEL", wp.Substring(0, 3))
	assert.True(t, wp.StartsWithIgnoreCase("select"))
	assert.False(t, wp.StartsWith("select"))
}
