package parser

// selectStatement holds the clauses shared by top-level queries and
// subqueries.
type selectStatement struct {
	node
	selectClause       Expression
	spaceBeforeFrom    string
	fromClause         Expression
	spaceBeforeWhere   string
	whereClause        Expression
	spaceBeforeGroupBy string
	groupByClause      Expression
	spaceBeforeHaving  string
	havingClause       Expression
}

func (s *selectStatement) parseClauses(p *parser, self Expression, selectBNF string) {
	_, s.selectClause = p.clause(self, selectBNF)
	s.spaceBeforeFrom, s.fromClause = p.clause(self, FromClauseBNF)
	s.spaceBeforeWhere, s.whereClause = p.clause(self, WhereClauseBNF)
	s.spaceBeforeGroupBy, s.groupByClause = p.clause(self, GroupByClauseBNF)
	s.spaceBeforeHaving, s.havingClause = p.clause(self, HavingClauseBNF)
}

func (s *selectStatement) orderedClauses(t *tokens) {
	t.add(s.selectClause)
	t.space(s.spaceBeforeFrom)
	t.add(s.fromClause)
	t.space(s.spaceBeforeWhere)
	t.add(s.whereClause)
	t.space(s.spaceBeforeGroupBy)
	t.add(s.groupByClause)
	t.space(s.spaceBeforeHaving)
	t.add(s.havingClause)
}

func (s *selectStatement) SelectClause() Expression  { return orNull(s.selectClause) }
func (s *selectStatement) FromClause() Expression    { return orNull(s.fromClause) }
func (s *selectStatement) WhereClause() Expression   { return orNull(s.whereClause) }
func (s *selectStatement) GroupByClause() Expression { return orNull(s.groupByClause) }
func (s *selectStatement) HavingClause() Expression  { return orNull(s.havingClause) }
func (s *selectStatement) HasFromClause() bool       { return s.fromClause != nil }
func (s *selectStatement) HasWhereClause() bool      { return s.whereClause != nil }
func (s *selectStatement) HasGroupByClause() bool    { return s.groupByClause != nil }
func (s *selectStatement) HasHavingClause() bool     { return s.havingClause != nil }

// SelectStatement is a top-level SELECT query.
type SelectStatement struct {
	selectStatement
	spaceBeforeOrderBy string
	orderByClause      Expression
}

func (s *SelectStatement) Kind() Kind       { return KindSelectStatement }
func (s *SelectStatement) Accept(v Visitor) { v.VisitSelectStatement(s) }

func (s *SelectStatement) orderedChildren() []Expression {
	var t tokens
	s.orderedClauses(&t)
	t.space(s.spaceBeforeOrderBy)
	t.add(s.orderByClause)
	return t
}

func (s *SelectStatement) OrderByClause() Expression { return orNull(s.orderByClause) }
func (s *SelectStatement) HasOrderByClause() bool    { return s.orderByClause != nil }

func buildSelectStatement(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	s := &SelectStatement{}
	s.bnf = bnfID
	s.parseClauses(p, s, SelectClauseBNF)
	s.spaceBeforeOrderBy, s.orderByClause = p.clause(s, OrderByClauseBNF)
	return s
}

// SimpleSelectStatement is a subquery.
type SimpleSelectStatement struct{ selectStatement }

func (s *SimpleSelectStatement) Kind() Kind       { return KindSimpleSelectStatement }
func (s *SimpleSelectStatement) Accept(v Visitor) { v.VisitSimpleSelectStatement(s) }

func (s *SimpleSelectStatement) orderedChildren() []Expression {
	var t tokens
	s.orderedClauses(&t)
	return t
}

func buildSimpleSelectStatement(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	s := &SimpleSelectStatement{}
	s.bnf = bnfID
	s.parseClauses(p, s, SimpleSelectClauseBNF)
	return s
}

// UpdateStatement is UPDATE ... SET ... [WHERE ...].
type UpdateStatement struct {
	node
	updateClause     *UpdateClause
	spaceBeforeWhere string
	whereClause      Expression
}

func (s *UpdateStatement) Kind() Kind       { return KindUpdateStatement }
func (s *UpdateStatement) Accept(v Visitor) { v.VisitUpdateStatement(s) }

func (s *UpdateStatement) orderedChildren() []Expression {
	var t tokens
	t.add(s.updateClause)
	t.space(s.spaceBeforeWhere)
	t.add(s.whereClause)
	return t
}

func (s *UpdateStatement) UpdateClause() *UpdateClause { return s.updateClause }
func (s *UpdateStatement) WhereClause() Expression     { return orNull(s.whereClause) }
func (s *UpdateStatement) HasWhereClause() bool        { return s.whereClause != nil }

func buildUpdateStatement(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	s := &UpdateStatement{}
	s.bnf = bnfID
	s.updateClause = parseUpdateClause(p)
	s.spaceBeforeWhere, s.whereClause = p.clause(s, WhereClauseBNF)
	return s
}

// DeleteStatement is DELETE FROM ... [WHERE ...].
type DeleteStatement struct {
	node
	deleteClause     *DeleteClause
	spaceBeforeWhere string
	whereClause      Expression
}

func (s *DeleteStatement) Kind() Kind       { return KindDeleteStatement }
func (s *DeleteStatement) Accept(v Visitor) { v.VisitDeleteStatement(s) }

func (s *DeleteStatement) orderedChildren() []Expression {
	var t tokens
	t.add(s.deleteClause)
	t.space(s.spaceBeforeWhere)
	t.add(s.whereClause)
	return t
}

func (s *DeleteStatement) DeleteClause() *DeleteClause { return s.deleteClause }
func (s *DeleteStatement) WhereClause() Expression     { return orNull(s.whereClause) }
func (s *DeleteStatement) HasWhereClause() bool        { return s.whereClause != nil }

func buildDeleteStatement(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	s := &DeleteStatement{}
	s.bnf = bnfID
	s.deleteClause = parseDeleteClause(p)
	s.spaceBeforeWhere, s.whereClause = p.clause(s, WhereClauseBNF)
	return s
}

// clause is the base of clauses made of an identifier and one expression.
type clause struct {
	node
	identifier string
	space      string
	expression Expression
}

func (c *clause) parseClause(p *parser, self Expression, identifier, bnfID string) {
	c.identifier = p.identifier(identifier)
	c.space, c.expression = p.required(self, bnfID)
}

func (c *clause) orderedChildren() []Expression {
	var t tokens
	t.keyword(c.identifier)
	t.space(c.space)
	t.add(c.expression)
	return t
}

// Identifier returns the clause identifier as written.
func (c *clause) Identifier() string { return c.identifier }

func (c *clause) HasSpaceAfterIdentifier() bool { return c.space != "" }

// selectClause holds SELECT [DISTINCT] items.
type selectClause struct {
	node
	identifier          string
	spaceBeforeDistinct string
	distinct            string
	spaceBeforeItems    string
	items               Expression
}

func (c *selectClause) parseSelect(p *parser, self Expression, itemsBNF string) {
	c.identifier = p.identifier("SELECT")
	c.spaceBeforeDistinct, c.distinct = p.keyword("DISTINCT")
	c.spaceBeforeItems, c.items = p.required(self, itemsBNF)
}

func (c *selectClause) orderedChildren() []Expression {
	var t tokens
	t.keyword(c.identifier)
	t.space(c.spaceBeforeDistinct)
	t.keyword(c.distinct)
	t.space(c.spaceBeforeItems)
	t.add(c.items)
	return t
}

func (c *selectClause) HasDistinct() bool { return c.distinct != "" }

// SelectExpression returns the selected item, or a CollectionExpression.
func (c *selectClause) SelectExpression() Expression { return orNull(c.items) }

func (c *selectClause) SelectItems() []Expression { return flatten(c.items) }

type SelectClause struct{ selectClause }

func (c *SelectClause) Kind() Kind       { return KindSelectClause }
func (c *SelectClause) Accept(v Visitor) { v.VisitSelectClause(c) }

type SimpleSelectClause struct{ selectClause }

func (c *SimpleSelectClause) Kind() Kind       { return KindSimpleSelectClause }
func (c *SimpleSelectClause) Accept(v Visitor) { v.VisitSimpleSelectClause(c) }

func buildSelectClause(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	c := &SelectClause{}
	c.bnf = bnfID
	c.parseSelect(p, c, SelectExpressionBNF)
	return c
}

func buildSimpleSelectClause(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	c := &SimpleSelectClause{}
	c.bnf = bnfID
	c.parseSelect(p, c, SimpleSelectExpressionBNF)
	return c
}

// FromClause is FROM declarations.
type FromClause struct{ clause }

func (c *FromClause) Kind() Kind       { return KindFromClause }
func (c *FromClause) Accept(v Visitor) { v.VisitFromClause(c) }

func (c *FromClause) Declaration() Expression { return orNull(c.expression) }

func (c *FromClause) Declarations() []Expression { return flatten(c.expression) }

type WhereClause struct{ clause }

func (c *WhereClause) Kind() Kind       { return KindWhereClause }
func (c *WhereClause) Accept(v Visitor) { v.VisitWhereClause(c) }

func (c *WhereClause) ConditionalExpression() Expression { return orNull(c.expression) }

type HavingClause struct{ clause }

func (c *HavingClause) Kind() Kind       { return KindHavingClause }
func (c *HavingClause) Accept(v Visitor) { v.VisitHavingClause(c) }

func (c *HavingClause) ConditionalExpression() Expression { return orNull(c.expression) }

// OnClause is the join condition introduced in JPA 2.1.
type OnClause struct{ clause }

func (c *OnClause) Kind() Kind       { return KindOnClause }
func (c *OnClause) Accept(v Visitor) { v.VisitOnClause(c) }

func (c *OnClause) ConditionalExpression() Expression { return orNull(c.expression) }

type GroupByClause struct{ clause }

func (c *GroupByClause) Kind() Kind       { return KindGroupByClause }
func (c *GroupByClause) Accept(v Visitor) { v.VisitGroupByClause(c) }

func (c *GroupByClause) GroupByItems() Expression { return orNull(c.expression) }

type OrderByClause struct{ clause }

func (c *OrderByClause) Kind() Kind       { return KindOrderByClause }
func (c *OrderByClause) Accept(v Visitor) { v.VisitOrderByClause(c) }

func (c *OrderByClause) OrderByItems() Expression { return orNull(c.expression) }

func buildFromClause(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	c := &FromClause{}
	c.bnf = bnfID
	c.parseClause(p, c, "FROM", FromDeclarationBNF)
	return c
}

func buildWhereClause(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	c := &WhereClause{}
	c.bnf = bnfID
	c.parseClause(p, c, "WHERE", ConditionalExpressionBNF)
	return c
}

func buildHavingClause(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	c := &HavingClause{}
	c.bnf = bnfID
	c.parseClause(p, c, "HAVING", ConditionalExpressionBNF)
	return c
}

func buildOnClause(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	c := &OnClause{}
	c.bnf = bnfID
	c.parseClause(p, c, "ON", ConditionalExpressionBNF)
	return c
}

func buildGroupByClause(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	c := &GroupByClause{}
	c.bnf = bnfID
	c.parseClause(p, c, "GROUP BY", GroupByItemBNF)
	return c
}

func buildOrderByClause(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	c := &OrderByClause{}
	c.bnf = bnfID
	c.parseClause(p, c, "ORDER BY", OrderByItemBNF)
	return c
}

// OrderByItem is an ordering expression with an optional ASC or DESC.
type OrderByItem struct {
	node
	expression          Expression
	spaceBeforeOrdering string
	ordering            string
}

func (e *OrderByItem) Kind() Kind       { return KindOrderByItem }
func (e *OrderByItem) Accept(v Visitor) { v.VisitOrderByItem(e) }

func (e *OrderByItem) orderedChildren() []Expression {
	var t tokens
	t.add(e.expression)
	t.space(e.spaceBeforeOrdering)
	t.keyword(e.ordering)
	return t
}

func (e *OrderByItem) Expression() Expression { return orNull(e.expression) }

// Ordering returns ASC or DESC as written, or "" when omitted.
func (e *OrderByItem) Ordering() string { return e.ordering }

func (e *OrderByItem) IsDescending() bool { return len(e.ordering) == 4 }

func buildOrderByItem(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &OrderByItem{}
	e.bnf = bnfID
	e.expression = p.parseBNF(e, OrderByItemExpressionBNF)
	if e.expression == nil {
		return nil
	}
	e.spaceBeforeOrdering, e.ordering = p.keyword("ASC", "DESC")
	return e
}

// UpdateClause is UPDATE entity [[AS] variable] SET items.
type UpdateClause struct {
	node
	identifier       string
	spaceAfterUpdate string
	rangeDeclaration Expression
	spaceBeforeSet   string
	set              string
	spaceAfterSet    string
	items            Expression
}

func (c *UpdateClause) Kind() Kind       { return KindUpdateClause }
func (c *UpdateClause) Accept(v Visitor) { v.VisitUpdateClause(c) }

func (c *UpdateClause) orderedChildren() []Expression {
	var t tokens
	t.keyword(c.identifier)
	t.space(c.spaceAfterUpdate)
	t.add(c.rangeDeclaration)
	t.space(c.spaceBeforeSet)
	t.keyword(c.set)
	t.space(c.spaceAfterSet)
	t.add(c.items)
	return t
}

func (c *UpdateClause) RangeVariableDeclaration() Expression { return orNull(c.rangeDeclaration) }
func (c *UpdateClause) HasSet() bool                         { return c.set != "" }
func (c *UpdateClause) UpdateItems() []Expression            { return flatten(c.items) }

func parseUpdateClause(p *parser) *UpdateClause {
	c := &UpdateClause{}
	c.bnf = UpdateClauseBNF
	c.identifier = p.identifier("UPDATE")
	c.spaceAfterUpdate, c.rangeDeclaration = p.required(c, RangeVariableDeclarationBNF)
	c.spaceBeforeSet, c.set = p.keyword("SET")
	if c.set != "" {
		c.spaceAfterSet, c.items = p.required(c, UpdateItemBNF)
	}
	return c
}

// UpdateItem is path = new value.
type UpdateItem struct {
	node
	path             Expression
	spaceBeforeEqual string
	equal            string
	spaceAfterEqual  string
	value            Expression
}

func (e *UpdateItem) Kind() Kind       { return KindUpdateItem }
func (e *UpdateItem) Accept(v Visitor) { v.VisitUpdateItem(e) }

func (e *UpdateItem) orderedChildren() []Expression {
	var t tokens
	t.add(e.path)
	t.space(e.spaceBeforeEqual)
	t.keyword(e.equal)
	t.space(e.spaceAfterEqual)
	t.add(e.value)
	return t
}

func (e *UpdateItem) StateFieldPath() Expression { return orNull(e.path) }
func (e *UpdateItem) NewValue() Expression       { return orNull(e.value) }
func (e *UpdateItem) HasEqualSign() bool         { return e.equal != "" }

func buildUpdateItem(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &UpdateItem{}
	e.bnf = bnfID
	e.path = p.parseBNF(e, UpdateItemPathBNF)
	if e.path == nil {
		return nil
	}
	e.spaceBeforeEqual, e.equal = p.keyword("=")
	if e.equal != "" {
		e.spaceAfterEqual, e.value = p.required(e, NewValueBNF)
	}
	return e
}

// DeleteClause is DELETE FROM entity [[AS] variable].
type DeleteClause struct {
	node
	identifier       string
	spaceBeforeFrom  string
	from             string
	spaceAfterFrom   string
	rangeDeclaration Expression
}

func (c *DeleteClause) Kind() Kind       { return KindDeleteClause }
func (c *DeleteClause) Accept(v Visitor) { v.VisitDeleteClause(c) }

func (c *DeleteClause) orderedChildren() []Expression {
	var t tokens
	t.keyword(c.identifier)
	t.space(c.spaceBeforeFrom)
	t.keyword(c.from)
	t.space(c.spaceAfterFrom)
	t.add(c.rangeDeclaration)
	return t
}

func (c *DeleteClause) HasFrom() bool                        { return c.from != "" }
func (c *DeleteClause) RangeVariableDeclaration() Expression { return orNull(c.rangeDeclaration) }

func parseDeleteClause(p *parser) *DeleteClause {
	c := &DeleteClause{}
	c.bnf = DeleteClauseBNF
	c.identifier = p.identifier("DELETE")
	c.spaceBeforeFrom, c.from = p.keyword("FROM")
	c.spaceAfterFrom, c.rangeDeclaration = p.required(c, RangeVariableDeclarationBNF)
	return c
}

func buildUpdateClause(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	return parseUpdateClause(p)
}

func buildDeleteClause(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	return parseDeleteClause(p)
}
