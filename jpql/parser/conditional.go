package parser

import "strings"

// compound is the base of binary expressions: the previously parsed
// expression, an identifier, and the right operand.
type compound struct {
	node
	left                  Expression
	spaceBeforeIdentifier string
	identifier            string
	spaceAfterIdentifier  string
	right                 Expression
}

func (c *compound) parseCompound(p *parser, self, previous Expression, rightBNF string, identifiers ...string) {
	c.left = p.left(previous, c.bnf)
	c.spaceBeforeIdentifier = p.wp.Whitespace()
	c.identifier = p.identifier(identifiers...)
	c.spaceAfterIdentifier, c.right = p.required(self, rightBNF)
}

func (c *compound) orderedChildren() []Expression {
	var t tokens
	t.add(c.left)
	t.space(c.spaceBeforeIdentifier)
	t.keyword(c.identifier)
	t.space(c.spaceAfterIdentifier)
	t.add(c.right)
	return t
}

func (c *compound) LeftExpression() Expression  { return orNull(c.left) }
func (c *compound) RightExpression() Expression { return orNull(c.right) }

// Identifier returns the operator as written.
func (c *compound) Identifier() string { return c.identifier }

func (c *compound) HasSpaceAfterIdentifier() bool { return c.spaceAfterIdentifier != "" }

// left returns previous, or a placeholder when a compound expression starts
// an item during recovery.
func (p *parser) left(previous Expression, bnfID string) Expression {
	if previous == nil {
		return p.null(bnfID)
	}
	return previous
}

type OrExpression struct{ compound }

func (e *OrExpression) Kind() Kind       { return KindOr }
func (e *OrExpression) Accept(v Visitor) { v.VisitOr(e) }

type AndExpression struct{ compound }

func (e *AndExpression) Kind() Kind       { return KindAnd }
func (e *AndExpression) Accept(v Visitor) { v.VisitAnd(e) }

// ComparisonExpression compares two expressions with =, <>, !=, <, <=, > or
// >=.
type ComparisonExpression struct{ compound }

func (e *ComparisonExpression) Kind() Kind       { return KindComparison }
func (e *ComparisonExpression) Accept(v Visitor) { v.VisitComparison(e) }

func (e *ComparisonExpression) ComparisonOperator() string { return e.identifier }

var comparisonOperators = []string{"=", "<>", "!=", "<", "<=", ">", ">="}

func buildOr(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &OrExpression{}
	e.bnf = bnfID
	e.parseCompound(p, e, previous, ConditionalTermBNF, "OR")
	return e
}

func buildAnd(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &AndExpression{}
	e.bnf = bnfID
	e.parseCompound(p, e, previous, ConditionalFactorBNF, "AND")
	return e
}

func buildComparison(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &ComparisonExpression{}
	e.bnf = bnfID
	e.parseCompound(p, e, previous, ComparisonExpressionRightBNF, comparisonOperators...)
	return e
}

// NotExpression negates a conditional primary.
type NotExpression struct {
	node
	not        string
	space      string
	expression Expression
}

func (e *NotExpression) Kind() Kind       { return KindNot }
func (e *NotExpression) Accept(v Visitor) { v.VisitNot(e) }

func (e *NotExpression) orderedChildren() []Expression {
	var t tokens
	t.keyword(e.not)
	t.space(e.space)
	t.add(e.expression)
	return t
}

func (e *NotExpression) Expression() Expression { return orNull(e.expression) }

func buildNot(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &NotExpression{}
	e.bnf = bnfID
	e.not = p.identifier("NOT")
	e.space, e.expression = p.required(e, ConditionalPrimaryBNF)
	return e
}

// BetweenExpression is expression [NOT] BETWEEN lower AND upper.
type BetweenExpression struct {
	node
	expression         Expression
	spaceBeforeBetween string
	between            string
	spaceAfterBetween  string
	lower              Expression
	spaceBeforeAnd     string
	and                string
	spaceAfterAnd      string
	upper              Expression
}

func (e *BetweenExpression) Kind() Kind       { return KindBetween }
func (e *BetweenExpression) Accept(v Visitor) { v.VisitBetween(e) }

func (e *BetweenExpression) orderedChildren() []Expression {
	var t tokens
	t.add(e.expression)
	t.space(e.spaceBeforeBetween)
	t.keyword(e.between)
	t.space(e.spaceAfterBetween)
	t.add(e.lower)
	t.space(e.spaceBeforeAnd)
	t.keyword(e.and)
	t.space(e.spaceAfterAnd)
	t.add(e.upper)
	return t
}

func (e *BetweenExpression) Expression() Expression      { return orNull(e.expression) }
func (e *BetweenExpression) LowerBound() Expression      { return orNull(e.lower) }
func (e *BetweenExpression) UpperBound() Expression      { return orNull(e.upper) }
func (e *BetweenExpression) HasNot() bool                { return hasNot(e.between) }
func (e *BetweenExpression) HasAnd() bool                { return e.and != "" }

func buildBetween(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &BetweenExpression{}
	e.bnf = bnfID
	e.expression = p.left(previous, bnfID)
	e.spaceBeforeBetween = p.wp.Whitespace()
	e.between = p.identifier("NOT BETWEEN", "BETWEEN")
	e.spaceAfterBetween, e.lower = p.required(e, BetweenBoundBNF)
	e.spaceBeforeAnd, e.and = p.keyword("AND")
	if e.and != "" {
		e.spaceAfterAnd, e.upper = p.required(e, BetweenBoundBNF)
	}
	return e
}

// LikeExpression is string [NOT] LIKE pattern [ESCAPE character].
type LikeExpression struct {
	node
	expression        Expression
	spaceBeforeLike   string
	like              string
	spaceAfterLike    string
	pattern           Expression
	spaceBeforeEscape string
	escape            string
	spaceAfterEscape  string
	escapeCharacter   Expression
}

func (e *LikeExpression) Kind() Kind       { return KindLike }
func (e *LikeExpression) Accept(v Visitor) { v.VisitLike(e) }

func (e *LikeExpression) orderedChildren() []Expression {
	var t tokens
	t.add(e.expression)
	t.space(e.spaceBeforeLike)
	t.keyword(e.like)
	t.space(e.spaceAfterLike)
	t.add(e.pattern)
	t.space(e.spaceBeforeEscape)
	t.keyword(e.escape)
	t.space(e.spaceAfterEscape)
	t.add(e.escapeCharacter)
	return t
}

func (e *LikeExpression) StringExpression() Expression { return orNull(e.expression) }
func (e *LikeExpression) PatternValue() Expression     { return orNull(e.pattern) }
func (e *LikeExpression) EscapeCharacter() Expression  { return orNull(e.escapeCharacter) }
func (e *LikeExpression) HasEscape() bool              { return e.escape != "" }
func (e *LikeExpression) HasNot() bool                 { return hasNot(e.like) }

func (e *LikeExpression) isParsingComplete(wp *WordParser, word string) bool {
	return strings.EqualFold(word, "ESCAPE")
}

func buildLike(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &LikeExpression{}
	e.bnf = bnfID
	e.expression = p.left(previous, bnfID)
	e.spaceBeforeLike = p.wp.Whitespace()
	e.like = p.identifier("NOT LIKE", "LIKE")
	e.spaceAfterLike, e.pattern = p.required(e, PatternValueBNF)
	e.spaceBeforeEscape, e.escape = p.keyword("ESCAPE")
	if e.escape != "" {
		e.spaceAfterEscape, e.escapeCharacter = p.required(e, EscapeCharacterBNF)
	}
	return e
}

// InExpression is expression [NOT] IN (items) or expression [NOT] IN
// :parameter.
type InExpression struct {
	node
	expression       Expression
	spaceBeforeIn    string
	in               string
	spaceAfterIn     string
	hasLeft          bool
	spaceAfterLeft   string
	items            Expression
	spaceBeforeRight string
	hasRight         bool
}

func (e *InExpression) Kind() Kind       { return KindIn }
func (e *InExpression) Accept(v Visitor) { v.VisitIn(e) }

func (e *InExpression) orderedChildren() []Expression {
	var t tokens
	t.add(e.expression)
	t.space(e.spaceBeforeIn)
	t.keyword(e.in)
	t.space(e.spaceAfterIn)
	if e.hasLeft {
		t.punct("(")
	}
	t.space(e.spaceAfterLeft)
	t.add(e.items)
	t.space(e.spaceBeforeRight)
	if e.hasRight {
		t.punct(")")
	} else if e.hasLeft {
		t.virtual(")", TextPunctuation)
	}
	return t
}

func (e *InExpression) Expression() Expression     { return orNull(e.expression) }
func (e *InExpression) HasNot() bool               { return hasNot(e.in) }
func (e *InExpression) HasLeftParenthesis() bool   { return e.hasLeft }
func (e *InExpression) HasRightParenthesis() bool  { return e.hasRight }
func (e *InExpression) InItems() Expression        { return orNull(e.items) }
func (e *InExpression) HasSpaceAfterIn() bool      { return e.spaceAfterIn != "" }

// Items returns the listed items. A missing item is a NullExpression.
func (e *InExpression) Items() []Expression { return flatten(e.items) }

func buildIn(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	wp := p.wp
	e := &InExpression{}
	e.bnf = bnfID
	e.expression = p.left(previous, bnfID)
	e.spaceBeforeIn = wp.Whitespace()
	e.in = p.identifier("NOT IN", "IN")
	start := wp.Position()
	ws := wp.Whitespace()
	if wp.Character() != '(' {
		wp.SetPosition(start)
		e.spaceAfterIn, e.items = p.required(e, InParameterBNF)
		return e
	}
	e.spaceAfterIn = ws
	e.hasLeft = true
	wp.MoveForward(1)
	start = wp.Position()
	ws = wp.Whitespace()
	if sub := p.subquery(e); sub != nil {
		e.spaceAfterLeft, e.items = ws, sub
	} else {
		wp.SetPosition(start)
		e.spaceAfterLeft, e.items = p.required(e, InItemBNF)
	}
	start = wp.Position()
	ws = wp.Whitespace()
	if wp.Character() == ')' {
		wp.MoveForward(1)
		e.spaceBeforeRight = ws
		e.hasRight = true
	} else {
		wp.SetPosition(start)
	}
	return e
}

// isExpression is the base of the IS [NOT] NULL and IS [NOT] EMPTY
// expressions.
type isExpression struct {
	node
	expression    Expression
	spaceBeforeIs string
	is            string
	spaceAfterIs  string
	not           string
	spaceAfterNot string
	keyword       string
}

func (e *isExpression) orderedChildren() []Expression {
	var t tokens
	t.add(e.expression)
	t.space(e.spaceBeforeIs)
	t.keyword(e.is)
	t.space(e.spaceAfterIs)
	t.keyword(e.not)
	t.space(e.spaceAfterNot)
	switch {
	case e.keyword != "":
		t.keyword(e.keyword)
	case e.not != "" && e.spaceAfterNot == "", e.not == "" && e.spaceAfterIs == "":
		t.virtual(" NULL", TextKeyword)
	default:
		t.virtual("NULL", TextKeyword)
	}
	return t
}

func (e *isExpression) Expression() Expression { return orNull(e.expression) }
func (e *isExpression) HasNot() bool           { return e.not != "" }

// HasKeyword reports whether NULL or EMPTY was written.
func (e *isExpression) HasKeyword() bool { return e.keyword != "" }

// NullComparisonExpression is expression IS [NOT] NULL.
type NullComparisonExpression struct{ isExpression }

func (e *NullComparisonExpression) Kind() Kind       { return KindNullComparison }
func (e *NullComparisonExpression) Accept(v Visitor) { v.VisitNullComparison(e) }

// EmptyCollectionComparisonExpression is path IS [NOT] EMPTY.
type EmptyCollectionComparisonExpression struct{ isExpression }

func (e *EmptyCollectionComparisonExpression) Kind() Kind { return KindEmptyCollectionComparison }
func (e *EmptyCollectionComparisonExpression) Accept(v Visitor) {
	v.VisitEmptyCollectionComparison(e)
}

func buildIs(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	wp := p.wp
	var is isExpression
	is.bnf = bnfID
	is.expression = p.left(previous, bnfID)
	is.spaceBeforeIs = wp.Whitespace()
	is.is = p.identifier("IS")
	space := wp.Whitespace()
	if not := p.identifier("NOT"); not != "" {
		is.spaceAfterIs, is.not = space, not
		space = wp.Whitespace()
	}
	is.keyword = p.identifier("NULL", "EMPTY")
	if is.not != "" {
		is.spaceAfterNot = space
	} else {
		is.spaceAfterIs = space
	}
	if strings.EqualFold(is.keyword, "EMPTY") {
		return &EmptyCollectionComparisonExpression{is}
	}
	return &NullComparisonExpression{is}
}

// CollectionMemberExpression is entity [NOT] MEMBER [OF] collection.
type CollectionMemberExpression struct {
	node
	expression        Expression
	spaceBeforeMember string
	member            string
	spaceAfterMember  string
	collection        Expression
}

func (e *CollectionMemberExpression) Kind() Kind       { return KindCollectionMember }
func (e *CollectionMemberExpression) Accept(v Visitor) { v.VisitCollectionMember(e) }

func (e *CollectionMemberExpression) orderedChildren() []Expression {
	var t tokens
	t.add(e.expression)
	t.space(e.spaceBeforeMember)
	t.keyword(e.member)
	t.space(e.spaceAfterMember)
	t.add(e.collection)
	return t
}

func (e *CollectionMemberExpression) EntityExpression() Expression { return orNull(e.expression) }

func (e *CollectionMemberExpression) CollectionValuedPathExpression() Expression {
	return orNull(e.collection)
}

func (e *CollectionMemberExpression) HasNot() bool { return hasNot(e.member) }

func (e *CollectionMemberExpression) HasOf() bool {
	words := strings.Fields(strings.ToUpper(e.member))
	return words[len(words)-1] == "OF"
}

func buildCollectionMember(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &CollectionMemberExpression{}
	e.bnf = bnfID
	e.expression = p.left(previous, bnfID)
	e.spaceBeforeMember = p.wp.Whitespace()
	e.member = p.identifier(memberIdentifiers...)
	e.spaceAfterMember, e.collection = p.required(e, CollectionValuedPathBNF)
	return e
}

var memberIdentifiers = []string{"MEMBER", "MEMBER OF", "NOT MEMBER", "NOT MEMBER OF"}

// ExistsExpression is EXISTS (subquery).
type ExistsExpression struct{ encapsulated }

func (e *ExistsExpression) Kind() Kind       { return KindExists }
func (e *ExistsExpression) Accept(v Visitor) { v.VisitExists(e) }

func (e *ExistsExpression) Subquery() Expression { return e.argument(0) }

// AllOrAnyExpression is ALL, ANY or SOME (subquery).
type AllOrAnyExpression struct{ encapsulated }

func (e *AllOrAnyExpression) Kind() Kind       { return KindAllOrAny }
func (e *AllOrAnyExpression) Accept(v Visitor) { v.VisitAllOrAny(e) }

func (e *AllOrAnyExpression) Subquery() Expression { return e.argument(0) }

func hasNot(identifier string) bool {
	return len(identifier) > 3 && strings.EqualFold(identifier[:3], "NOT")
}

// flatten returns the items of a collection, or e alone.
func flatten(e Expression) []Expression {
	switch e := e.(type) {
	case nil:
		return nil
	case *CollectionExpression:
		return e.items
	}
	return []Expression{e}
}
