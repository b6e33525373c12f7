package parser

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadQueries(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	require.NoError(t, scanner.Err())
	return queries
}

// recovered returns the kinds of the recovery nodes found below e.
func recovered(e Expression) []string {
	var kinds []string
	Inspect(e, func(e Expression) bool {
		switch e.(type) {
		case *BadExpression, *UnknownExpression:
			kinds = append(kinds, e.Kind().String()+" "+e.ParsedText())
		}
		return true
	})
	return kinds
}

func whereCondition(t *testing.T, root *JPQLExpression) Expression {
	t.Helper()
	stmt, ok := root.QueryStatement().(*SelectStatement)
	require.True(t, ok, "statement is %T", root.QueryStatement())
	where, ok := stmt.WhereClause().(*WhereClause)
	require.True(t, ok, "where clause is %T", stmt.WhereClause())
	return where.ConditionalExpression()
}

func selectItems(t *testing.T, root *JPQLExpression) []Expression {
	t.Helper()
	stmt, ok := root.QueryStatement().(*SelectStatement)
	require.True(t, ok, "statement is %T", root.QueryStatement())
	clause, ok := stmt.SelectClause().(*SelectClause)
	require.True(t, ok, "select clause is %T", stmt.SelectClause())
	return clause.SelectItems()
}

func TestParseRoundTrip(t *testing.T) {
	for _, query := range loadQueries(t, "testdata/valid.jpql") {
		t.Run(query, func(t *testing.T) {
			root := ParseQuery(query)
			assert.Empty(t, recovered(root))
			assert.True(t, root.HasQueryStatement())
			assert.Equal(t, query, root.ParsedText())
			assert.Equal(t, query, root.ActualText())
			assert.Equal(t, len(query), root.Length())
		})
	}
}

func TestParseIsIdempotent(t *testing.T) {
	for _, query := range loadQueries(t, "testdata/valid.jpql") {
		t.Run(query, func(t *testing.T) {
			first := ParseQuery(query)
			second := ParseQuery(first.ParsedText())
			assert.Equal(t, Dump(first), Dump(second))
		})
	}
}

func TestParseTreeInvariants(t *testing.T) {
	for _, query := range loadQueries(t, "testdata/valid.jpql") {
		t.Run(query, func(t *testing.T) {
			root := ParseQuery(query)
			Inspect(root, func(e Expression) bool {
				var text strings.Builder
				for _, child := range e.OrderedChildren() {
					assert.Same(t, e, child.Parent())
					assert.Equal(t, e.Offset()+text.Len(), child.Offset())
					text.WriteString(child.ParsedText())
				}
				if len(e.OrderedChildren()) > 0 {
					assert.Equal(t, e.ParsedText(), text.String())
				}
				assert.Equal(t, e.ParsedText(), query[e.Offset():e.Offset()+e.Length()])
				return true
			})
		})
	}
}

func TestParseInWithParentheses(t *testing.T) {
	root := ParseQuery("SELECT e FROM Employee e WHERE e.salary IN (1000, 2000, 3000)")

	in, ok := whereCondition(t, root).(*InExpression)
	require.True(t, ok)
	assert.True(t, in.HasLeftParenthesis())
	assert.True(t, in.HasRightParenthesis())
	require.Len(t, in.Items(), 3)
	for i, want := range []string{"1000", "2000", "3000"} {
		assert.IsType(t, &NumericLiteral{}, in.Items()[i])
		assert.Equal(t, want, in.Items()[i].ParsedText())
	}
	assert.Equal(t, "e.salary", in.Expression().ParsedText())
}

func TestParseInWithParameter(t *testing.T) {
	root := ParseQuery("SELECT e FROM Employee e WHERE e.name IN :names")

	in, ok := whereCondition(t, root).(*InExpression)
	require.True(t, ok)
	assert.False(t, in.HasLeftParenthesis())
	assert.False(t, in.HasRightParenthesis())
	require.Len(t, in.Items(), 1)
	param, ok := in.Items()[0].(*InputParameter)
	require.True(t, ok)
	assert.Equal(t, ":names", param.Text())
	assert.True(t, param.IsNamed())
	assert.Same(t, in.InItems(), in.Items()[0])
}

func TestParseMod(t *testing.T) {
	root := ParseQuery("SELECT MOD(10, 3) FROM Employee e")

	items := selectItems(t, root)
	require.Len(t, items, 1)
	mod, ok := items[0].(*ModExpression)
	require.True(t, ok)
	assert.True(t, mod.HasComma())
	assert.Equal(t, "10", mod.FirstExpression().ParsedText())
	assert.Equal(t, "3", mod.SecondExpression().ParsedText())
	assert.Equal(t, SimpleArithmeticExpressionBNF, mod.FirstExpression().QueryBNF())
	assert.Equal(t, SimpleArithmeticExpressionBNF, mod.SecondExpression().QueryBNF())
}

func TestParseTruncatedComparison(t *testing.T) {
	query := "SELECT e FROM Employee e WHERE e.salary ="
	root := ParseQuery(query, WithTolerant())

	cmp, ok := whereCondition(t, root).(*ComparisonExpression)
	require.True(t, ok)
	assert.Equal(t, "=", cmp.ComparisonOperator())
	assert.IsType(t, &NullExpression{}, cmp.RightExpression())
	assert.Equal(t, ComparisonExpressionRightBNF, cmp.RightExpression().QueryBNF())
	assert.Equal(t, query, root.ParsedText())
}

func TestParseOrderByItems(t *testing.T) {
	root := ParseQuery("SELECT e FROM Employee e ORDER BY e.name, e.salary DESC")

	stmt := root.QueryStatement().(*SelectStatement)
	orderBy, ok := stmt.OrderByClause().(*OrderByClause)
	require.True(t, ok)
	items, ok := orderBy.OrderByItems().(*CollectionExpression)
	require.True(t, ok)
	assert.Equal(t, 2, items.Len())
	assert.Equal(t, []bool{true, false}, items.Commas())
	assert.Equal(t, []bool{true, false}, items.Spaces())

	first := items.Items()[0].(*OrderByItem)
	second := items.Items()[1].(*OrderByItem)
	assert.False(t, first.IsDescending())
	assert.True(t, second.IsDescending())
	assert.Equal(t, "e.salary DESC", second.ParsedText())
}

func TestParseScientificLiteral(t *testing.T) {
	root := ParseQuery("SELECT e FROM Employee e WHERE e.value = 1.5E-10")

	cmp, ok := whereCondition(t, root).(*ComparisonExpression)
	require.True(t, ok)
	number, ok := cmp.RightExpression().(*NumericLiteral)
	require.True(t, ok, "right operand is %T", cmp.RightExpression())
	assert.Equal(t, "1.5E-10", number.Text())
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		condition string
		dump      string
	}{
		{
			"a = 1 OR b = 2 AND c = 3",
			"Or\n  Comparison\n    IdentificationVariable a\n    NumericLiteral 1\n  And\n    Comparison\n      IdentificationVariable b\n      NumericLiteral 2\n    Comparison\n      IdentificationVariable c\n      NumericLiteral 3\n",
		},
		{
			"a + b * c",
			"Addition\n  IdentificationVariable a\n  Multiplication\n    IdentificationVariable b\n    IdentificationVariable c\n",
		},
		{
			"a - b - c",
			"Subtraction\n  Subtraction\n    IdentificationVariable a\n    IdentificationVariable b\n  IdentificationVariable c\n",
		},
		{
			"NOT a = 1",
			"Not\n  Comparison\n    IdentificationVariable a\n    NumericLiteral 1\n",
		},
		{
			"a BETWEEN 1 AND 2 AND b",
			"And\n  Between\n    IdentificationVariable a\n    NumericLiteral 1\n    NumericLiteral 2\n  IdentificationVariable b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			root := ParseFragment(tt.condition, ConditionalExpressionBNF)
			require.False(t, root.HasUnknownEndingStatement())
			assert.Equal(t, tt.dump, Dump(root.QueryStatement()))
		})
	}
}

func TestParseVirtualTokens(t *testing.T) {
	tests := []struct {
		query  string
		actual string
	}{
		{"SELECT e FROM Employee e WHERE (e.a = 1", "SELECT e FROM Employee e WHERE (e.a = 1)"},
		{"SELECT e FROM Employee e WHERE e.a IS", "SELECT e FROM Employee e WHERE e.a IS NULL"},
		{"SELECT e FROM Employee e WHERE e.a IS NOT ", "SELECT e FROM Employee e WHERE e.a IS NOT NULL"},
		{"SELECT ABS(e.a FROM Employee e", "SELECT ABS(e.a) FROM Employee e"},
		{"SELECT CASE WHEN e.a = 1 THEN 2 FROM Employee e", "SELECT CASE WHEN e.a = 1 THEN 2 END FROM Employee e"},
		{"SELECT e FROM Employee e WHERE e.name = 'abc", "SELECT e FROM Employee e WHERE e.name = 'abc'"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			root := ParseQuery(tt.query, WithTolerant())
			assert.Equal(t, tt.query, root.ParsedText())
			assert.Equal(t, tt.actual, root.ActualText())
		})
	}
}

func TestParseTolerantNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"SELECT",
		"SELECT e FROM",
		"SELECT e, FROM Employee e",
		"FROM WHERE",
		"(((",
		"))) SELECT",
		",,,",
		"'unterminated",
		":p ?1 'x' 1.5E",
		"SELECT TRIM(",
		"SELECT NEW",
		"SELECT CASE WHEN",
		"UPDATE",
		"DELETE FROM",
		"SELECT e FROM Employee e ORDER BY",
		"SELECT e FROM Employee e WHERE e.a IN (",
		"SELECT e FROM Employee e WHERE e.a = AND OR",
		"SELECT e FROM Employee e WHERE e.name LIKE",
		"SELECT e FROM Employee e WHERE e.a BETWEEN 10 20",
		"GROUP BY HAVING ORDER BY",
		"SELECT e FROM Employee e WHERE SELECT",
		"SELECT e FROM Employee e WHERE UPDATE",
		"SELECT e FROM Employee AS",
		"SELECT e FROM Employee e JOIN",
		"SELECT e.name AS FROM Employee e",
		"UPDATE Employee e SET e.a =",
		"SELECT COUNT(DISTINCT FROM Employee e",
		"SELECT e FROM Employee e WHERE e.a = 1 GARBAGE here",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			var root *JPQLExpression
			require.NotPanics(t, func() {
				root = ParseQuery(input, WithTolerant())
			})
			assert.Equal(t, input, root.ParsedText())
			assert.GreaterOrEqual(t, len(root.ActualText()), len(input))
			require.NotPanics(t, func() {
				for offset := 0; offset <= len(input); offset++ {
					_, err := root.PopulatePosition(offset)
					require.NoError(t, err)
				}
			})
		})
	}
}

func TestParseStrictGivesBackTrailingComma(t *testing.T) {
	query := "SELECT e, FROM Employee e"

	strict := ParseQuery(query)
	assert.Equal(t, query, strict.ParsedText())
	assert.True(t, strict.HasUnknownEndingStatement())
	assert.Equal(t, ", FROM Employee e", strict.UnknownEndingStatement().ParsedText())

	tolerant := ParseQuery(query, WithTolerant())
	assert.False(t, tolerant.HasUnknownEndingStatement())
	items := selectItems(t, tolerant)
	require.Len(t, items, 2)
	assert.IsType(t, &NullExpression{}, items[1])
}

func TestParseTolerantBetweenDoesNotFormList(t *testing.T) {
	root := ParseQuery("SELECT e FROM Employee e WHERE e.a BETWEEN 10 20", WithTolerant())

	between, ok := whereCondition(t, root).(*BetweenExpression)
	require.True(t, ok)
	assert.Equal(t, "10", between.LowerBound().ParsedText())
	assert.False(t, between.HasAnd())
	assert.True(t, root.HasUnknownEndingStatement())
	assert.Equal(t, "20", root.UnknownEndingStatement().ParsedText())
}

func TestParseTolerantBadExpression(t *testing.T) {
	root := ParseQuery("SELECT e FROM Employee e WHERE UPDATE", WithTolerant())

	bad, ok := whereCondition(t, root).(*BadExpression)
	require.True(t, ok, "condition is %T", whereCondition(t, root))
	assert.IsType(t, &UpdateStatement{}, bad.Expression())
	assert.Equal(t, "UPDATE", bad.ParsedText())

	// a subquery needs parentheses
	root = ParseQuery("SELECT e FROM Employee e WHERE SELECT", WithTolerant())
	bad, ok = whereCondition(t, root).(*BadExpression)
	require.True(t, ok, "condition is %T", whereCondition(t, root))
	assert.IsType(t, &SelectStatement{}, bad.Expression())
}

func TestParseSubqueryNeedsParentheses(t *testing.T) {
	root := ParseQuery("SELECT e FROM Employee e WHERE SELECT x FROM Y y")
	assert.True(t, IsNull(whereCondition(t, root)))
	require.True(t, root.HasUnknownEndingStatement())
	assert.Equal(t, "SELECT x FROM Y y", root.UnknownEndingStatement().ParsedText())

	assert.NotContains(t, DefaultRegistry().Identifiers(ConditionalExpressionBNF, false, DefaultVersion), "SELECT")
}

func TestParseParenthesizedSubquery(t *testing.T) {
	root := ParseQuery("SELECT e FROM Employee e WHERE e.salary > (SELECT AVG(x.salary) FROM Employee x)")
	assert.Empty(t, recovered(root))

	comparison, ok := whereCondition(t, root).(*ComparisonExpression)
	require.True(t, ok, "condition is %T", whereCondition(t, root))
	sub, ok := comparison.RightExpression().(*SubExpression)
	require.True(t, ok, "right operand is %T", comparison.RightExpression())
	assert.IsType(t, &SimpleSelectStatement{}, sub.Expression())
	assert.True(t, sub.HasRightParenthesis())

	root = ParseQuery("SELECT e FROM Employee e WHERE e.dept IN (SELECT d FROM Department d)")
	assert.Empty(t, recovered(root))
	in, ok := whereCondition(t, root).(*InExpression)
	require.True(t, ok, "condition is %T", whereCondition(t, root))
	require.Len(t, in.Items(), 1)
	assert.IsType(t, &SimpleSelectStatement{}, in.Items()[0])
	assert.True(t, in.HasRightParenthesis())

	// an unfinished subquery
	root = ParseQuery("SELECT e FROM Employee e WHERE (SELECT", WithTolerant())
	sub, ok = whereCondition(t, root).(*SubExpression)
	require.True(t, ok, "condition is %T", whereCondition(t, root))
	assert.IsType(t, &SimpleSelectStatement{}, sub.Expression())
}

func TestParseTolerantEmptyListItem(t *testing.T) {
	query := "SELECT e.a, , e.b FROM Employee e WHERE e.x IN (1, , 3)"
	root := ParseQuery(query, WithTolerant())

	assert.Equal(t, query, root.ParsedText())
	assert.Equal(t, query, root.ActualText())
	assert.False(t, root.HasUnknownEndingStatement())
	assert.Empty(t, recovered(root))

	items := selectItems(t, root)
	require.Len(t, items, 3)
	assert.Equal(t, "e.a", items[0].ParsedText())
	assert.IsType(t, &NullExpression{}, items[1])
	assert.Equal(t, "e.b", items[2].ParsedText())

	in, ok := whereCondition(t, root).(*InExpression)
	require.True(t, ok, "condition is %T", whereCondition(t, root))
	require.Len(t, in.Items(), 3)
	assert.Equal(t, "1", in.Items()[0].ParsedText())
	assert.IsType(t, &NullExpression{}, in.Items()[1])
	assert.Equal(t, "3", in.Items()[2].ParsedText())
	assert.True(t, in.HasRightParenthesis())

	strict := ParseQuery(query)
	assert.True(t, strict.HasUnknownEndingStatement())
}

func TestParseVersionGating(t *testing.T) {
	query := "SELECT TYPE(e) FROM Employee e"

	items := selectItems(t, ParseQuery(query, WithVersion(Version2_0)))
	require.Len(t, items, 1)
	assert.IsType(t, &TypeExpression{}, items[0])

	old := ParseQuery(query, WithVersion(Version1_0))
	items = selectItems(t, old)
	require.Len(t, items, 1)
	variable, ok := items[0].(*IdentificationVariable)
	require.True(t, ok, "item is %T", items[0])
	assert.Equal(t, "TYPE", variable.Text())
	assert.Equal(t, Version1_0, old.Version())
	assert.Equal(t, query, old.ParsedText())
}

func TestParseKeepsOriginalSpelling(t *testing.T) {
	root := ParseQuery("select e from Employee e where e.name is not null")

	stmt := root.QueryStatement().(*SelectStatement)
	where := stmt.WhereClause().(*WhereClause)
	assert.Equal(t, "where", where.Identifier())
	isNull, ok := where.ConditionalExpression().(*NullComparisonExpression)
	require.True(t, ok)
	assert.True(t, isNull.HasNot())
	assert.True(t, isNull.HasKeyword())
}

func TestParseDeclarations(t *testing.T) {
	root := ParseQuery("SELECT e FROM Employee e LEFT JOIN e.dept AS d, IN(e.phones) p")

	stmt := root.QueryStatement().(*SelectStatement)
	from := stmt.FromClause().(*FromClause)
	declarations := from.Declarations()
	require.Len(t, declarations, 2)

	first, ok := declarations[0].(*IdentificationVariableDeclaration)
	require.True(t, ok)
	rangeDecl := first.RangeVariableDeclaration().(*RangeVariableDeclaration)
	assert.Equal(t, "Employee", rangeDecl.EntityName())
	assert.Equal(t, "e", rangeDecl.VariableName())
	require.Len(t, first.Joins(), 1)
	join := first.Joins()[0].(*Join)
	assert.Equal(t, "LEFT JOIN", join.JoinType())
	assert.True(t, join.HasAs())
	assert.Equal(t, "d", join.VariableName())

	member, ok := declarations[1].(*CollectionMemberDeclaration)
	require.True(t, ok)
	assert.Equal(t, "e.phones", member.CollectionValuedPath().ParsedText())
	assert.Equal(t, "p", member.VariableName())
}

func TestParseUpdateAndDelete(t *testing.T) {
	update := ParseQuery("UPDATE Employee e SET e.a = 1, e.b = 'x'")
	stmt, ok := update.QueryStatement().(*UpdateStatement)
	require.True(t, ok)
	assert.True(t, stmt.UpdateClause().HasSet())
	require.Len(t, stmt.UpdateClause().UpdateItems(), 2)
	item := stmt.UpdateClause().UpdateItems()[1].(*UpdateItem)
	assert.Equal(t, "e.b", item.StateFieldPath().ParsedText())
	assert.Equal(t, "'x'", item.NewValue().ParsedText())

	del := ParseQuery("DELETE FROM Employee e")
	deleteStmt, ok := del.QueryStatement().(*DeleteStatement)
	require.True(t, ok)
	assert.True(t, deleteStmt.DeleteClause().HasFrom())
	assert.False(t, deleteStmt.HasWhereClause())
}

type pathCollector struct {
	BaseVisitor
	paths     []string
	variables []string
}

func (c *pathCollector) VisitPath(e *PathExpression) {
	c.paths = append(c.paths, e.Text())
}

func (c *pathCollector) VisitIdentificationVariable(e *IdentificationVariable) {
	c.variables = append(c.variables, e.Text())
}

func TestWalk(t *testing.T) {
	root := ParseQuery("SELECT e FROM Employee e WHERE e.name = 'x' AND e.age > 3")

	var c pathCollector
	Walk(&c, root)
	assert.Equal(t, []string{"e.name", "e.age"}, c.paths)
	assert.Equal(t, []string{"e", "e"}, c.variables)
}

func TestStringLiteral(t *testing.T) {
	root := ParseFragment("'it''s'", ScalarExpressionBNF)

	s, ok := root.QueryStatement().(*StringLiteral)
	require.True(t, ok)
	assert.True(t, s.HasCloseQuote())
	assert.Equal(t, "it's", s.Value())
}
