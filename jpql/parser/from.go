package parser

// alias holds the optional [AS] variable part of declarations.
type alias struct {
	spaceBeforeAs       string
	as                  string
	spaceBeforeVariable string
	variable            Expression
}

func (a *alias) parseAlias(p *parser) {
	a.spaceBeforeAs, a.as = p.keyword("AS")
	a.spaceBeforeVariable, a.variable = p.variable(IdentificationVariableBNF)
	if a.as != "" && a.variable == nil {
		// AS promises a variable; keep its place for content assist.
		a.spaceBeforeVariable = p.wp.Whitespace()
		a.variable = p.null(IdentificationVariableBNF)
	}
}

func (a *alias) orderedAlias(t *tokens) {
	t.space(a.spaceBeforeAs)
	t.keyword(a.as)
	t.space(a.spaceBeforeVariable)
	t.add(a.variable)
}

func (a *alias) HasAs() bool { return a.as != "" }

func (a *alias) IdentificationVariable() Expression { return orNull(a.variable) }

// VariableName returns the declared variable, or "".
func (a *alias) VariableName() string {
	if v, ok := a.variable.(*IdentificationVariable); ok {
		return v.text
	}
	return ""
}

// RangeVariableDeclaration is entity [AS] variable. In subqueries the entity
// may be a path, as in FROM e.projects p.
type RangeVariableDeclaration struct {
	node
	schema Expression
	alias
}

func (e *RangeVariableDeclaration) Kind() Kind       { return KindRangeVariableDeclaration }
func (e *RangeVariableDeclaration) Accept(v Visitor) { v.VisitRangeVariableDeclaration(e) }

func (e *RangeVariableDeclaration) orderedChildren() []Expression {
	var t tokens
	t.add(e.schema)
	e.orderedAlias(&t)
	return t
}

func (e *RangeVariableDeclaration) AbstractSchemaName() Expression { return orNull(e.schema) }

// EntityName returns the entity or path as written.
func (e *RangeVariableDeclaration) EntityName() string {
	if e.schema == nil {
		return ""
	}
	return e.schema.(interface{ Text() string }).Text()
}

func buildRangeVariableDeclaration(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	wp := p.wp
	if !isIdentifierStart(word[0]) || p.registry.IsIdentifier(word, p.version) {
		return nil
	}
	e := &RangeVariableDeclaration{}
	e.bnf = bnfID
	if isVariableName(word) {
		schema := &AbstractSchemaName{}
		schema.bnf = AbstractSchemaNameBNF
		schema.text = wp.MoveForwardWord(word)
		e.schema = schema
	} else {
		path := &PathExpression{}
		path.bnf = AbstractSchemaNameBNF
		path.text = wp.MoveForwardWord(word)
		e.schema = path
	}
	e.parseAlias(p)
	return e
}

// IdentificationVariableDeclaration is a range declaration followed by its
// joins.
type IdentificationVariableDeclaration struct {
	node
	rangeDeclaration Expression
	joins            []joinItem
}

type joinItem struct {
	space string
	join  Expression
}

func (e *IdentificationVariableDeclaration) Kind() Kind { return KindIdentificationVariableDeclaration }
func (e *IdentificationVariableDeclaration) Accept(v Visitor) {
	v.VisitIdentificationVariableDeclaration(e)
}

func (e *IdentificationVariableDeclaration) orderedChildren() []Expression {
	var t tokens
	t.add(e.rangeDeclaration)
	for _, j := range e.joins {
		t.space(j.space)
		t.add(j.join)
	}
	return t
}

func (e *IdentificationVariableDeclaration) RangeVariableDeclaration() Expression {
	return orNull(e.rangeDeclaration)
}

func (e *IdentificationVariableDeclaration) Joins() []Expression {
	joins := make([]Expression, len(e.joins))
	for i, j := range e.joins {
		joins[i] = j.join
	}
	return joins
}

func buildIdentificationVariableDeclaration(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &IdentificationVariableDeclaration{}
	e.bnf = bnfID
	e.rangeDeclaration = buildRangeVariableDeclaration(p, e, word, RangeVariableDeclarationBNF, nil)
	if e.rangeDeclaration == nil {
		return nil
	}
	for {
		space, join := p.clause(e, JoinBNF)
		if join == nil {
			break
		}
		e.joins = append(e.joins, joinItem{space: space, join: join})
	}
	return e
}

// Join is [LEFT [OUTER] | INNER] JOIN [FETCH] path [[AS] variable] [ON
// condition].
type Join struct {
	node
	identifier       string
	spaceBeforeFetch string
	fetch            string
	spaceBeforePath  string
	path             Expression
	alias
	spaceBeforeOn string
	on            Expression
}

func (e *Join) Kind() Kind       { return KindJoin }
func (e *Join) Accept(v Visitor) { v.VisitJoin(e) }

func (e *Join) orderedChildren() []Expression {
	var t tokens
	t.keyword(e.identifier)
	t.space(e.spaceBeforeFetch)
	t.keyword(e.fetch)
	t.space(e.spaceBeforePath)
	t.add(e.path)
	e.orderedAlias(&t)
	t.space(e.spaceBeforeOn)
	t.add(e.on)
	return t
}

// JoinType returns the join identifier as written, such as LEFT OUTER JOIN.
func (e *Join) JoinType() string                { return e.identifier }
func (e *Join) HasFetch() bool                  { return e.fetch != "" }
func (e *Join) JoinAssociationPath() Expression { return orNull(e.path) }
func (e *Join) OnClause() Expression            { return orNull(e.on) }

var joinIdentifiers = []string{"JOIN", "INNER JOIN", "LEFT JOIN", "LEFT OUTER JOIN"}

func buildJoin(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &Join{}
	e.bnf = bnfID
	e.identifier = p.identifier(joinIdentifiers...)
	e.spaceBeforeFetch, e.fetch = p.keyword("FETCH")
	e.spaceBeforePath, e.path = p.required(e, JoinAssociationPathBNF)
	e.parseAlias(p)
	e.spaceBeforeOn, e.on = p.clause(e, OnClauseBNF)
	return e
}

// CollectionMemberDeclaration is IN(path) [AS] variable.
type CollectionMemberDeclaration struct {
	encapsulated
	alias
}

func (e *CollectionMemberDeclaration) Kind() Kind { return KindCollectionMemberDeclaration }
func (e *CollectionMemberDeclaration) Accept(v Visitor) {
	v.VisitCollectionMemberDeclaration(e)
}

func (e *CollectionMemberDeclaration) orderedChildren() []Expression {
	t := tokens(e.encapsulated.orderedChildren())
	e.orderedAlias(&t)
	return t
}

func (e *CollectionMemberDeclaration) CollectionValuedPath() Expression { return e.argument(0) }

func buildCollectionMemberDeclaration(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &CollectionMemberDeclaration{}
	e.bnf = bnfID
	e.parseEncapsulated(p, e, "IN", false, CollectionValuedPathBNF)
	e.parseAlias(p)
	return e
}

// ResultVariable names a select item: expression AS name.
type ResultVariable struct {
	node
	expression    Expression
	spaceBeforeAs string
	as            string
	spaceAfterAs  string
	variable      Expression
}

func (e *ResultVariable) Kind() Kind       { return KindResultVariable }
func (e *ResultVariable) Accept(v Visitor) { v.VisitResultVariable(e) }

func (e *ResultVariable) orderedChildren() []Expression {
	var t tokens
	t.add(e.expression)
	t.space(e.spaceBeforeAs)
	t.keyword(e.as)
	t.space(e.spaceAfterAs)
	t.add(e.variable)
	return t
}

func (e *ResultVariable) SelectExpression() Expression { return orNull(e.expression) }
func (e *ResultVariable) Variable() Expression         { return orNull(e.variable) }

func buildResultVariable(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &ResultVariable{}
	e.bnf = bnfID
	e.expression = p.left(previous, bnfID)
	e.spaceBeforeAs = p.wp.Whitespace()
	e.as = p.identifier("AS")
	e.spaceAfterAs, e.variable = p.variable(ResultVariableBNF)
	if e.variable == nil {
		e.spaceAfterAs = p.wp.Whitespace()
		e.variable = p.null(ResultVariableBNF)
	}
	return e
}
