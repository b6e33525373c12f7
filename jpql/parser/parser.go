package parser

import "strings"

type parser struct {
	wp       *WordParser
	registry *Registry
	version  Version
	tolerant bool
	// owners is the stack of expressions currently parsing a rule.
	owners []Expression
}

// Option configures a parse.
type Option func(*parser)

// WithTolerant enables error recovery: unparsable text is kept in
// BadExpression and UnknownExpression nodes and missing list items get
// placeholders, so the tree always covers the whole query.
func WithTolerant() Option {
	return func(p *parser) {
		p.tolerant = true
	}
}

func WithVersion(v Version) Option {
	return func(p *parser) {
		p.version = v
	}
}

// WithRegistry parses with a grammar other than DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(p *parser) {
		p.registry = r
	}
}

func newParser(query string, opts []Option) *parser {
	p := &parser{wp: NewWordParser(query), version: DefaultVersion}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = DefaultRegistry()
	}
	return p
}

// ParseQuery parses a complete JPQL statement.
func ParseQuery(query string, opts ...Option) *JPQLExpression {
	return ParseFragment(query, StatementBNF, opts...)
}

// ParseFragment parses query as an expression of the rule bnfID, for
// example ConditionalExpressionBNF for the text of a WHERE clause.
func ParseFragment(query, bnfID string, opts ...Option) *JPQLExpression {
	p := newParser(query, opts)
	root := &JPQLExpression{query: query, version: p.version, tolerant: p.tolerant, registry: p.registry}
	root.bnf = bnfID
	root.parse(p)
	finalize(root, nil, 0)
	return root
}

// parseBNF parses an expression of the rule bnfID at the cursor. It
// returns nil when nothing could be parsed, the single expression, or a
// CollectionExpression for a list.
func (p *parser) parseBNF(owner Expression, bnfID string) Expression {
	bnf := p.registry.QueryBNF(bnfID)
	if bnf == nil {
		return nil
	}
	p.owners = append(p.owners, owner)
	defer func() { p.owners = p.owners[:len(p.owners)-1] }()

	wp := p.wp
	var children []Expression
	var separators []string
	for {
		item := p.parseItem(owner, bnf)
		if item == nil && p.tolerant && bnf.HandleCollection && wp.Character() == ',' {
			// an empty item between two commas
			item = p.null(bnfID)
		}
		if item == nil {
			if n := len(separators); n > 0 && separators[n-1] != "" {
				children, separators = p.dropSeparator(bnfID, children, separators)
			}
			break
		}
		children = append(children, item)
		separators = append(separators, "")

		if bnf.HandleAggregate && !IsNull(item) {
			children = p.parseCompounds(owner, bnf, children)
		}
		if !bnf.HandleCollection {
			break
		}

		start := wp.Position()
		ws := wp.SkipLeadingWhitespace()
		if wp.Character() == ',' {
			wp.MoveForward(1)
			wp.SkipLeadingWhitespace()
			separators[len(separators)-1] = wp.Substring(start, wp.Position())
			continue
		}
		if p.tolerant && ws > 0 && !wp.IsTail() {
			separators[len(separators)-1] = wp.Substring(start, wp.Position())
			continue
		}
		wp.SetPosition(start)
		break
	}

	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	}
	c := &CollectionExpression{items: children, separators: separators}
	c.bnf = bnfID
	return c
}

// dropSeparator handles a list that ends on a separator. In tolerant mode a
// comma gets a NullExpression placeholder after it; otherwise the separator
// is given back.
func (p *parser) dropSeparator(bnfID string, children []Expression, separators []string) ([]Expression, []string) {
	wp := p.wp
	last := len(separators) - 1
	sep := separators[last]
	if p.tolerant && strings.Contains(sep, ",") {
		trimmed := strings.TrimRightFunc(sep, isSpace)
		wp.MoveBackward(len(sep) - len(trimmed))
		separators[last] = trimmed
		return append(children, p.null(bnfID)), append(separators, "")
	}
	wp.MoveBackward(len(sep))
	separators[last] = ""
	return children, separators
}

// parseItem parses one list item: a parenthesized sub-expression, the
// expression of a factory registered for the word at the cursor, the
// fallback expression, or in tolerant mode any expression wrapped in a
// BadExpression.
func (p *parser) parseItem(owner Expression, bnf *QueryBNF) Expression {
	wp := p.wp
	if wp.IsTail() {
		return nil
	}
	start := wp.Position()
	if wp.Character() == '(' {
		return p.parseSubExpression(bnf)
	}
	word := wp.Word()
	if word == "" || p.isParsingComplete(word) {
		return nil
	}
	if f := p.registry.ExpressionFactory(bnf.ID, wp, word, false, p.version); f != nil {
		if e := p.build(f, owner, word, bnf.ID, nil, start); e != nil {
			return e
		}
	}
	if f, fallbackBNF := p.registry.FallbackFactory(bnf.ID); f != nil && p.version.Supports(f.Version) {
		if e := p.build(f, owner, word, fallbackBNF, nil, start); e != nil {
			return e
		}
	}
	if p.tolerant && wp.Character() != ',' {
		if f := p.registry.ExpressionFactoryForIdentifier(wp, word, p.version); f != nil {
			bad := &BadExpression{}
			bad.bnf = bnf.ID
			if e := p.build(f, bad, word, bnf.ID, nil, start); e != nil {
				bad.expression = e
				return bad
			}
		}
	}
	return nil
}

// build runs a factory and discards its result when it consumed nothing,
// so an item always moves the cursor.
func (p *parser) build(f *ExpressionFactory, owner Expression, word, bnfID string, previous Expression, start int) Expression {
	e := f.build(p, owner, word, bnfID, previous)
	if e == nil || p.wp.Position() == start {
		p.wp.SetPosition(start)
		return nil
	}
	return e
}

// parseCompounds extends the last child with compound expressions for as
// long as one follows it.
func (p *parser) parseCompounds(owner Expression, bnf *QueryBNF, children []Expression) []Expression {
	wp := p.wp
	for {
		start := wp.Position()
		wp.SkipLeadingWhitespace()
		word := wp.Word()
		if word == "" || p.isParsingComplete(word) {
			wp.SetPosition(start)
			return children
		}
		f := p.registry.ExpressionFactory(bnf.ID, wp, word, true, p.version)
		wp.SetPosition(start)
		if f == nil {
			return children
		}
		previous := children[len(children)-1]
		compound := p.build(f, owner, word, bnf.ID, previous, start)
		if compound == nil {
			return children
		}
		children = updateParsingInfo(children, previous, compound)
	}
}

// updateParsingInfo replaces previous, now the left operand of compound,
// with compound.
func updateParsingInfo(children []Expression, previous, compound Expression) []Expression {
	last := len(children) - 1
	if children[last] != previous {
		panic("parser: compound expression does not extend the last parsed expression")
	}
	children[last] = compound
	return children
}

func (p *parser) parseSubExpression(bnf *QueryBNF) Expression {
	wp := p.wp
	sub := &SubExpression{}
	sub.bnf = bnf.ID
	wp.MoveForward(1)
	sub.spaceAfterLeft = wp.Whitespace()
	if bnf.HandleSubExpression {
		sub.expression = p.subquery(sub)
	}
	if sub.expression == nil {
		sub.expression = p.parseBNF(sub, bnf.ID)
	}
	if sub.expression == nil {
		sub.expression = p.null(bnf.ID)
	}
	start := wp.Position()
	ws := wp.Whitespace()
	if wp.Character() == ')' {
		wp.MoveForward(1)
		sub.spaceBeforeRight = ws
		sub.hasRight = true
	} else {
		wp.SetPosition(start)
	}
	return sub
}

// subquery parses the subquery starting at the cursor, if any.
func (p *parser) subquery(owner Expression) Expression {
	word := p.wp.Word()
	if word == "" || p.registry.ExpressionFactory(SubqueryBNF, p.wp, word, false, p.version) == nil {
		return nil
	}
	return p.parseBNF(owner, SubqueryBNF)
}

var clauseIdentifiers = []string{"FROM", "WHERE", "HAVING", "GROUP BY", "ORDER BY"}

// isParsingComplete reports whether word ends the expression being parsed:
// a closing parenthesis, the identifier of a clause, or a stop word of an
// enclosing owner.
func (p *parser) isParsingComplete(word string) bool {
	if word == ")" {
		return true
	}
	for _, identifier := range clauseIdentifiers {
		if p.wp.StartsWithIdentifier(identifier) {
			return true
		}
	}
	for i := len(p.owners) - 1; i >= 0; i-- {
		if c, ok := p.owners[i].(completer); ok && c.isParsingComplete(p.wp, word) {
			return true
		}
	}
	return false
}

func (p *parser) null(bnfID string) Expression {
	n := &NullExpression{}
	n.bnf = bnfID
	return n
}

// identifier consumes the longest of the identifiers found at the cursor
// and returns it as written.
func (p *parser) identifier(identifiers ...string) string {
	pos := p.wp.Position()
	best := -1
	for _, identifier := range identifiers {
		if end := p.wp.identifierEnd(pos, identifier); end > best {
			best = end
		}
	}
	if best < 0 {
		return ""
	}
	return p.wp.MoveForward(best - pos)
}

// required consumes whitespace and parses bnfID. When nothing follows, the
// whitespace is kept and a NullExpression marks the missing part.
func (p *parser) required(owner Expression, bnfID string) (string, Expression) {
	ws := p.wp.Whitespace()
	if e := p.parseBNF(owner, bnfID); e != nil {
		return ws, e
	}
	return ws, p.null(bnfID)
}

// optional consumes whitespace and parses bnfID. When nothing follows, the
// whitespace is given back.
func (p *parser) optional(owner Expression, bnfID string) (string, Expression) {
	start := p.wp.Position()
	ws := p.wp.Whitespace()
	if e := p.parseBNF(owner, bnfID); e != nil {
		return ws, e
	}
	p.wp.SetPosition(start)
	return "", nil
}

// keyword consumes whitespace and one of the identifiers. Nothing is
// consumed when none of them follows.
func (p *parser) keyword(identifiers ...string) (string, string) {
	start := p.wp.Position()
	ws := p.wp.Whitespace()
	if kw := p.identifier(identifiers...); kw != "" {
		return ws, kw
	}
	p.wp.SetPosition(start)
	return "", ""
}

// clause consumes whitespace and the expression of the factory registered
// on bnfID for the word that follows. Nothing is consumed when no factory
// applies.
func (p *parser) clause(owner Expression, bnfID string) (string, Expression) {
	wp := p.wp
	start := wp.Position()
	ws := wp.Whitespace()
	word := wp.Word()
	if word != "" {
		pos := wp.Position()
		if f := p.registry.ExpressionFactory(bnfID, wp, word, false, p.version); f != nil {
			if e := p.build(f, owner, word, bnfID, nil, pos); e != nil {
				return ws, e
			}
		}
	}
	wp.SetPosition(start)
	return "", nil
}

// variable consumes whitespace and an identification variable. Reserved
// words are not variables.
func (p *parser) variable(bnfID string) (string, Expression) {
	wp := p.wp
	start := wp.Position()
	ws := wp.Whitespace()
	word := wp.Word()
	if isVariableName(word) && !p.registry.IsIdentifier(word, p.version) {
		v := &IdentificationVariable{}
		v.bnf = bnfID
		v.text = wp.MoveForwardWord(word)
		return ws, v
	}
	wp.SetPosition(start)
	return "", nil
}

func isVariableName(word string) bool {
	return word != "" && isIdentifierStart(word[0]) && !strings.Contains(word, ".")
}

func isSpace(r rune) bool {
	return r < 0x80 && isWhitespace(byte(r))
}
