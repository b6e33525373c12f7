package parser

import "fmt"

// JPQLExpression is the root of a parsed query. Its text is always the
// whole query: whitespace around the statement and any text the parser
// could not use are kept.
type JPQLExpression struct {
	node
	query         string
	version       Version
	tolerant      bool
	registry      *Registry
	leadingSpace  string
	statement     Expression
	trailingSpace string
	unknownEnding Expression
}

func (e *JPQLExpression) Kind() Kind       { return KindJPQL }
func (e *JPQLExpression) Accept(v Visitor) { v.VisitJPQL(e) }

func (e *JPQLExpression) parse(p *parser) {
	wp := p.wp
	e.leadingSpace = wp.Whitespace()
	e.statement = p.parseBNF(e, e.bnf)
	if e.statement == nil && p.tolerant && !wp.IsTail() {
		e.statement = p.null(e.bnf)
	}
	e.trailingSpace = wp.Whitespace()
	if !wp.IsTail() {
		u := &UnknownExpression{}
		u.bnf = e.bnf
		u.text = wp.MoveForward(wp.Length() - wp.Position())
		e.unknownEnding = u
	}
}

func (e *JPQLExpression) orderedChildren() []Expression {
	var t tokens
	t.space(e.leadingSpace)
	t.add(e.statement)
	t.space(e.trailingSpace)
	t.add(e.unknownEnding)
	return t
}

func (e *JPQLExpression) Query() string    { return e.query }
func (e *JPQLExpression) Version() Version { return e.version }
func (e *JPQLExpression) IsTolerant() bool { return e.tolerant }

// Registry returns the grammar the query was parsed with.
func (e *JPQLExpression) Registry() *Registry { return e.registry }

func (e *JPQLExpression) QueryStatement() Expression { return orNull(e.statement) }

func (e *JPQLExpression) HasQueryStatement() bool { return !IsNull(e.statement) }

// UnknownEndingStatement returns the text after the statement that could not
// be parsed.
func (e *JPQLExpression) UnknownEndingStatement() Expression { return orNull(e.unknownEnding) }

func (e *JPQLExpression) HasUnknownEndingStatement() bool { return e.unknownEnding != nil }

// PopulatePosition maps an offset of the query to the deepest expression
// containing it.
func (e *JPQLExpression) PopulatePosition(offset int) (*QueryPosition, error) {
	if offset < 0 || offset > len(e.query) {
		return nil, fmt.Errorf("offset %d outside of query of length %d", offset, len(e.query))
	}
	qp := &QueryPosition{offset: offset, positions: map[Expression]int{}}
	populatePosition(qp, e, offset)
	return qp, nil
}

// CollectionExpression is a list of expressions. Separators keep the exact
// text between two items.
type CollectionExpression struct {
	node
	items      []Expression
	separators []string
}

func (e *CollectionExpression) Kind() Kind       { return KindCollection }
func (e *CollectionExpression) Accept(v Visitor) { v.VisitCollection(e) }

func (e *CollectionExpression) orderedChildren() []Expression {
	var t tokens
	for i, item := range e.items {
		t.add(item)
		t.separator(e.separators[i])
	}
	return t
}

func (e *CollectionExpression) Items() []Expression { return e.items }

func (e *CollectionExpression) Len() int { return len(e.items) }

// Commas reports for each item whether a comma follows it.
func (e *CollectionExpression) Commas() []bool {
	commas := make([]bool, len(e.items))
	for i, sep := range e.separators {
		for j := 0; j < len(sep); j++ {
			if sep[j] == ',' {
				commas[i] = true
			}
		}
	}
	return commas
}

// Spaces reports for each item whether whitespace follows it, or follows
// its comma.
func (e *CollectionExpression) Spaces() []bool {
	spaces := make([]bool, len(e.items))
	for i, sep := range e.separators {
		spaces[i] = len(sep) > 0 && isWhitespace(sep[len(sep)-1])
	}
	return spaces
}

// SubExpression is a parenthesized expression.
type SubExpression struct {
	node
	spaceAfterLeft   string
	expression       Expression
	spaceBeforeRight string
	hasRight         bool
}

func (e *SubExpression) Kind() Kind       { return KindSubExpression }
func (e *SubExpression) Accept(v Visitor) { v.VisitSubExpression(e) }

func (e *SubExpression) orderedChildren() []Expression {
	var t tokens
	t.punct("(")
	t.space(e.spaceAfterLeft)
	t.add(e.expression)
	t.space(e.spaceBeforeRight)
	if e.hasRight {
		t.punct(")")
	} else {
		t.virtual(")", TextPunctuation)
	}
	return t
}

func (e *SubExpression) Expression() Expression { return orNull(e.expression) }

func (e *SubExpression) HasRightParenthesis() bool { return e.hasRight }

// NullExpression stands for a part that is missing. It has no text.
type NullExpression struct {
	node
}

func (e *NullExpression) Kind() Kind                    { return KindNull }
func (e *NullExpression) Accept(v Visitor)              { v.VisitNull(e) }
func (e *NullExpression) orderedChildren() []Expression { return nil }
func (e *NullExpression) leafText(bool) string          { return "" }

// BadExpression wraps an expression that is not valid where it was found.
// Only tolerant parsing creates it.
type BadExpression struct {
	node
	expression Expression
}

func (e *BadExpression) Kind() Kind       { return KindBad }
func (e *BadExpression) Accept(v Visitor) { v.VisitBad(e) }

func (e *BadExpression) orderedChildren() []Expression {
	return []Expression{e.expression}
}

func (e *BadExpression) Expression() Expression { return orNull(e.expression) }

// UnknownExpression holds text the parser could not make sense of.
type UnknownExpression struct {
	literal
}

func (e *UnknownExpression) Kind() Kind       { return KindUnknownEnding }
func (e *UnknownExpression) Accept(v Visitor) { v.VisitUnknown(e) }

// literal is the base of expressions made of a single word.
type literal struct {
	node
	text string
}

func (l *literal) orderedChildren() []Expression { return nil }
func (l *literal) leafText(bool) string          { return l.text }

func (l *literal) Text() string { return l.text }
