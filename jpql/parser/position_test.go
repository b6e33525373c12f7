package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulatePosition(t *testing.T) {
	//                 0         1         2         3         4
	//                 0123456789012345678901234567890123456789012
	const query = "SELECT e FROM Employee e WHERE e.name = 'x'"
	root := ParseQuery(query)

	tests := []struct {
		name   string
		offset int
		kind   Kind
		local  int
	}{
		{"inside path", 34, KindPath, 3},
		{"start of path", 31, KindPath, 0},
		{"inside keyword", 27, KindWhereClause, 2},
		{"end of query", 43, KindStringLiteral, 3},
		{"start of query", 0, KindSelectClause, 0},
		{"entity name", 18, KindAbstractSchemaName, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := root.PopulatePosition(tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.offset, pos.Offset())
			assert.Equal(t, tt.kind, pos.Expression().Kind())
			assert.Equal(t, tt.local, pos.PositionIn(pos.Expression()))
			assert.Same(t, root, pos.Path()[0])
			assert.Equal(t, tt.offset, pos.PositionIn(root))
		})
	}
}

func TestPopulatePositionOutOfRange(t *testing.T) {
	root := ParseQuery("SELECT e FROM Employee e")

	_, err := root.PopulatePosition(-1)
	assert.Error(t, err)
	_, err = root.PopulatePosition(len("SELECT e FROM Employee e") + 1)
	assert.Error(t, err)
}

func TestPopulatePositionFindsMissingParts(t *testing.T) {
	root := ParseQuery("SELECT e FROM Employee e WHERE ", WithTolerant())

	pos, err := root.PopulatePosition(31)
	require.NoError(t, err)
	null, ok := pos.Expression().(*NullExpression)
	require.True(t, ok, "expression is %T", pos.Expression())
	assert.Equal(t, ConditionalExpressionBNF, null.QueryBNF())
	assert.IsType(t, &WhereClause{}, null.Parent())
	assert.Equal(t, -1, pos.PositionIn(ParseQuery("x")))
}
