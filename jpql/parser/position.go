package parser

import "fmt"

// QueryPosition is the result of mapping a query offset into the tree.
type QueryPosition struct {
	offset     int
	expression Expression
	path       []Expression
	positions  map[Expression]int
}

// Offset returns the mapped offset within the query.
func (qp *QueryPosition) Offset() int { return qp.offset }

// Expression returns the deepest expression containing the offset. Tokens
// are not returned; the expression owning the token is.
func (qp *QueryPosition) Expression() Expression { return qp.expression }

// Path returns the expressions from the root down to Expression.
func (qp *QueryPosition) Path() []Expression { return qp.path }

// PositionIn returns the offset relative to the start of e, or -1 when e is
// not on the path.
func (qp *QueryPosition) PositionIn(e Expression) int {
	if pos, ok := qp.positions[e]; ok {
		return pos
	}
	return -1
}

func populatePosition(qp *QueryPosition, e Expression, offset int) {
	qp.path = append(qp.path, e)
	qp.positions[e] = offset
	qp.expression = e

	children := e.OrderedChildren()
	if len(children) == 0 {
		return
	}
	length := 0
	for _, child := range children {
		end := length + child.Length()
		if offset <= end {
			if _, ok := child.(*TextExpression); !ok {
				populatePosition(qp, child, offset-length)
				return
			}
			if offset < end {
				return
			}
		}
		length = end
	}
	if offset > length {
		panic(fmt.Sprintf("parser: offset %d is beyond the %d bytes of %s", offset, length, e.Kind()))
	}
}
