package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryIsValid(t *testing.T) {
	require.NoError(t, NewDefaultRegistry().Validate())
	require.NotNil(t, DefaultRegistry())
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}

func TestRegistryValidateReportsBrokenRules(t *testing.T) {
	r := NewRegistry()
	r.AddFactory(&ExpressionFactory{ID: "literal", build: buildLiteral})
	r.AddFactory(&ExpressionFactory{ID: "nobuild", Identifiers: []string{"X"}})
	r.AddQueryBNF(&QueryBNF{ID: "a", FallbackBNF: "b"})
	r.AddQueryBNF(&QueryBNF{ID: "b", FallbackBNF: "a"})
	r.AddQueryBNF(&QueryBNF{ID: "c", Children: []string{"missing"}, FallbackFactory: "literal"})
	r.AddQueryBNF(&QueryBNF{ID: "d"})

	err := r.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "rule a: fallback cycle a -> b -> a")
	assert.Contains(t, msg, "rule c: unknown child rule missing")
	assert.Contains(t, msg, "rule d: no factory and no fallback")
	assert.Contains(t, msg, "factory nobuild: no build function")
	assert.Error(t, r.Seal())
}

func TestRegistryFallbackFactoryStopsOnCycles(t *testing.T) {
	r := NewRegistry()
	r.AddQueryBNF(&QueryBNF{ID: "a", FallbackBNF: "b"})
	r.AddQueryBNF(&QueryBNF{ID: "b", FallbackBNF: "a"})

	f, id := r.FallbackFactory("a")
	assert.Nil(t, f)
	assert.Equal(t, "", id)
}

func TestRegistryFallbackFactoryFollowsChain(t *testing.T) {
	r := DefaultRegistry()

	f, id := r.FallbackFactory(IdentificationVariableBNF)
	require.NotNil(t, f)
	assert.Equal(t, "literal", f.ID)
	assert.Equal(t, LiteralBNF, id)

	f, id = r.FallbackFactory(ConditionalExpressionBNF)
	require.NotNil(t, f)
	assert.Equal(t, ConditionalExpressionBNF, id)
}

func TestRegistryExpressionFactoryPrefersLongestIdentifier(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		input    string
		compound bool
		factory  string
	}{
		{"NOT IN (1)", true, "in"},
		{"NOT   BETWEEN 1 AND 2", true, "between"},
		{"NOT LIKE 'x'", true, "like"},
		{"NOT MEMBER OF e.c", true, "collection_member"},
		{"NOT e.x", false, "not"},
		{"<= 3", true, "comparison"},
		{"IS NULL", true, "is"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			wp := NewWordParser(tt.input)
			f := r.ExpressionFactory(ConditionalExpressionBNF, wp, wp.Word(), tt.compound, DefaultVersion)
			require.NotNil(t, f)
			assert.Equal(t, tt.factory, f.ID)
		})
	}
}

func TestRegistryVersionGating(t *testing.T) {
	r := DefaultRegistry()
	wp := NewWordParser("TYPE(e)")

	assert.Nil(t, r.ExpressionFactory(SelectExpressionBNF, wp, "TYPE", false, Version1_0))
	f := r.ExpressionFactory(SelectExpressionBNF, wp, "TYPE", false, Version2_0)
	require.NotNil(t, f)
	assert.Equal(t, "type", f.ID)

	assert.False(t, r.IsIdentifier("type", Version1_0))
	assert.True(t, r.IsIdentifier("type", Version2_0))
	assert.True(t, r.IsIdentifier("select", Version1_0))
	assert.False(t, r.IsIdentifier("ON", Version2_0))
	assert.True(t, r.IsIdentifier("ON", Version2_1))
}

func TestRegistryIdentifiers(t *testing.T) {
	r := DefaultRegistry()

	statements := r.Identifiers(StatementBNF, false, DefaultVersion)
	assert.Equal(t, []string{"DELETE", "SELECT", "UPDATE"}, statements)

	conditional := r.Identifiers(ConditionalExpressionBNF, true, DefaultVersion)
	assert.Contains(t, conditional, "AND")
	assert.Contains(t, conditional, "NOT BETWEEN")
	assert.Contains(t, conditional, "+")

	assert.NotContains(t, r.Identifiers(ConditionalExpressionBNF, false, DefaultVersion), "SELECT")
	assert.Equal(t, []string{"SELECT"}, r.Identifiers(SubqueryBNF, false, DefaultVersion))

	old := r.Identifiers(ArithmeticPrimaryBNF, false, Version1_0)
	assert.NotContains(t, old, "CASE")
	assert.Contains(t, old, "ABS")
}

func TestRegistryGrammar(t *testing.T) {
	r := DefaultRegistry()

	var b strings.Builder
	require.NoError(t, r.WriteGrammar(&b))
	text := b.String()
	assert.Contains(t, text, `QlStatement = SelectStatementFactory | UpdateStatementFactory | DeleteStatementFactory .`)
	assert.Contains(t, text, `OrderbyItem = OrderbyItemFactory { "," OrderbyItemFactory } .`)
	assert.Contains(t, text, `Literal = LiteralFactory .`)
	assert.Contains(t, text, `PatternValue = ScalarExpression | "(" Subquery ")" | LiteralFactory .`)

	grammar, err := r.Grammar(StatementBNF)
	require.NoError(t, err)
	assert.Contains(t, grammar, "QlStatement")
	assert.Contains(t, grammar, "ArithmeticPrimary")
	assert.Contains(t, grammar, "LiteralFactory")
}

func TestRegistryAddIdentifiers(t *testing.T) {
	r := NewRegistry()
	require.NotPanics(t, func() {
		r.AddIdentifiers(Version2_0, "", "matches", "+")
	})
	assert.Equal(t, []string{"MATCHES"}, r.Keywords(Version2_1))
	assert.Empty(t, r.Keywords(Version1_0))
}

func TestVersion(t *testing.T) {
	v, err := ParseVersion("2.0")
	require.NoError(t, err)
	assert.Equal(t, Version2_0, v)
	assert.Equal(t, "2.0", v.String())

	_, err = ParseVersion("3.0")
	assert.Error(t, err)

	assert.True(t, Version1_0.Supports(0))
	assert.False(t, Version1_0.Supports(Version2_1))
	assert.Equal(t, "Unknown", Version(42).String())
}
