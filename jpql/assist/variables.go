package assist

import "github.com/dhamidi/hermes/jpql/parser"

// variableCollector gathers the names declared in FROM clauses, joins and
// result variables, in query order.
type variableCollector struct {
	parser.BaseVisitor
	seen  map[string]bool
	names []string
}

func (v *variableCollector) add(name string) {
	if name == "" || v.seen[name] {
		return
	}
	v.seen[name] = true
	v.names = append(v.names, name)
}

func (v *variableCollector) VisitRangeVariableDeclaration(e *parser.RangeVariableDeclaration) {
	v.add(e.VariableName())
}

func (v *variableCollector) VisitCollectionMemberDeclaration(e *parser.CollectionMemberDeclaration) {
	v.add(e.VariableName())
}

func (v *variableCollector) VisitJoin(e *parser.Join) {
	v.add(e.VariableName())
}

func (v *variableCollector) VisitResultVariable(e *parser.ResultVariable) {
	if _, ok := e.Variable().(*parser.IdentificationVariable); ok {
		v.add(e.Variable().ParsedText())
	}
}

// DeclaredVariables returns the identification and result variables
// declared anywhere in the query, subqueries included.
func DeclaredVariables(root parser.Expression) []string {
	v := &variableCollector{seen: map[string]bool{}}
	parser.Walk(v, root)
	return v.names
}
