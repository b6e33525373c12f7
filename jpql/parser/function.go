package parser

import "strings"

type argument struct {
	// separator is the text between the previous argument and this one.
	separator  string
	expression Expression
}

// encapsulated is the base of expressions written as an identifier followed
// by parenthesized arguments, such as ABS(x) or COUNT(DISTINCT e).
type encapsulated struct {
	node
	identifier           string
	spaceAfterIdentifier string
	hasLeft              bool
	spaceAfterLeft       string
	distinct             string
	spaceAfterDistinct   string
	args                 []argument
	spaceBeforeRight     string
	hasRight             bool
}

type encapsulatedExpression interface {
	Expression
	enc() *encapsulated
}

func (e *encapsulated) enc() *encapsulated { return e }

func (e *encapsulated) parseEncapsulated(p *parser, self Expression, identifier string, distinct bool, bnfs ...string) {
	e.identifier = p.identifier(identifier)
	e.parseParenthesized(p, self, distinct, bnfs)
}

// parseParenthesized parses "(" [DISTINCT] arguments ")". Arguments after
// the first are only parsed when a comma precedes them.
func (e *encapsulated) parseParenthesized(p *parser, self Expression, distinct bool, bnfs []string) {
	wp := p.wp
	start := wp.Position()
	ws := wp.Whitespace()
	if wp.Character() != '(' {
		wp.SetPosition(start)
		return
	}
	e.spaceAfterIdentifier = ws
	e.hasLeft = true
	wp.MoveForward(1)
	e.spaceAfterLeft = wp.Whitespace()
	if distinct {
		if kw := p.identifier("DISTINCT"); kw != "" {
			e.distinct = kw
			e.spaceAfterDistinct = wp.Whitespace()
		}
	}
	for i, bnfID := range bnfs {
		var separator string
		if i > 0 {
			start := wp.Position()
			ws := wp.Whitespace()
			if wp.Character() != ',' {
				wp.SetPosition(start)
				break
			}
			wp.MoveForward(1)
			separator = ws + "," + wp.Whitespace()
		}
		arg := p.parseBNF(self, bnfID)
		if arg == nil {
			arg = p.null(bnfID)
		}
		e.args = append(e.args, argument{separator: separator, expression: arg})
	}
	e.parseRight(p)
}

func (e *encapsulated) parseRight(p *parser) {
	wp := p.wp
	start := wp.Position()
	ws := wp.Whitespace()
	if wp.Character() != ')' {
		wp.SetPosition(start)
		return
	}
	wp.MoveForward(1)
	e.spaceBeforeRight = ws
	e.hasRight = true
}

func (e *encapsulated) orderedChildren() []Expression {
	var t tokens
	t.keyword(e.identifier)
	e.orderedParenthesized(&t)
	return t
}

func (e *encapsulated) orderedParenthesized(t *tokens) {
	if !e.hasLeft {
		return
	}
	t.space(e.spaceAfterIdentifier)
	t.punct("(")
	t.space(e.spaceAfterLeft)
	t.keyword(e.distinct)
	t.space(e.spaceAfterDistinct)
	for _, arg := range e.args {
		t.separator(arg.separator)
		t.add(arg.expression)
	}
	e.orderedRight(t)
}

func (e *encapsulated) orderedRight(t *tokens) {
	t.space(e.spaceBeforeRight)
	if e.hasRight {
		t.punct(")")
	} else {
		t.virtual(")", TextPunctuation)
	}
}

func (e *encapsulated) argument(i int) Expression {
	if i < len(e.args) {
		return e.args[i].expression
	}
	return noExpression
}

// Identifier returns the identifier as written.
func (e *encapsulated) Identifier() string        { return e.identifier }
func (e *encapsulated) HasLeftParenthesis() bool  { return e.hasLeft }
func (e *encapsulated) HasRightParenthesis() bool { return e.hasRight }

// function creates the factory of an encapsulated expression whose
// arguments are parsed with bnfs.
func function(id, identifier string, version Version, create func() encapsulatedExpression, bnfs ...string) *ExpressionFactory {
	return &ExpressionFactory{
		ID:          id,
		Identifiers: []string{identifier},
		Version:     version,
		SubBNFs:     bnfs,
		build:       buildEncapsulated(create, false, bnfs...),
	}
}

// aggregate is function for AVG, COUNT, MAX, MIN and SUM, which accept
// DISTINCT.
func aggregate(id, identifier string, create func() encapsulatedExpression) *ExpressionFactory {
	f := function(id, identifier, 0, create, AggregateArgumentBNF)
	f.build = buildEncapsulated(create, true, AggregateArgumentBNF)
	return f
}

func buildEncapsulated(create func() encapsulatedExpression, distinct bool, bnfs ...string) buildFunc {
	return func(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
		e := create()
		e.enc().bnf = bnfID
		e.enc().parseEncapsulated(p, e, word, distinct, bnfs...)
		return e
	}
}

// singleArgument is the base of functions with one argument.
type singleArgument struct{ encapsulated }

func (e *singleArgument) Expression() Expression { return e.argument(0) }

type AbsExpression struct{ singleArgument }

func (e *AbsExpression) Kind() Kind       { return KindAbs }
func (e *AbsExpression) Accept(v Visitor) { v.VisitAbs(e) }

type SqrtExpression struct{ singleArgument }

func (e *SqrtExpression) Kind() Kind       { return KindSqrt }
func (e *SqrtExpression) Accept(v Visitor) { v.VisitSqrt(e) }

type LengthExpression struct{ singleArgument }

func (e *LengthExpression) Kind() Kind       { return KindLength }
func (e *LengthExpression) Accept(v Visitor) { v.VisitLength(e) }

type LowerExpression struct{ singleArgument }

func (e *LowerExpression) Kind() Kind       { return KindLower }
func (e *LowerExpression) Accept(v Visitor) { v.VisitLower(e) }

type UpperExpression struct{ singleArgument }

func (e *UpperExpression) Kind() Kind       { return KindUpper }
func (e *UpperExpression) Accept(v Visitor) { v.VisitUpper(e) }

type SizeExpression struct{ singleArgument }

func (e *SizeExpression) Kind() Kind       { return KindSize }
func (e *SizeExpression) Accept(v Visitor) { v.VisitSize(e) }

// TypeExpression is TYPE(variable), the entity type of a polymorphic
// query.
type TypeExpression struct{ singleArgument }

func (e *TypeExpression) Kind() Kind       { return KindType }
func (e *TypeExpression) Accept(v Visitor) { v.VisitType(e) }

type IndexExpression struct{ singleArgument }

func (e *IndexExpression) Kind() Kind       { return KindIndex }
func (e *IndexExpression) Accept(v Visitor) { v.VisitIndex(e) }

type KeyExpression struct{ singleArgument }

func (e *KeyExpression) Kind() Kind       { return KindKey }
func (e *KeyExpression) Accept(v Visitor) { v.VisitKey(e) }

type ValueExpression struct{ singleArgument }

func (e *ValueExpression) Kind() Kind       { return KindValue }
func (e *ValueExpression) Accept(v Visitor) { v.VisitValue(e) }

type EntryExpression struct{ singleArgument }

func (e *EntryExpression) Kind() Kind       { return KindEntry }
func (e *EntryExpression) Accept(v Visitor) { v.VisitEntry(e) }

type ObjectExpression struct{ singleArgument }

func (e *ObjectExpression) Kind() Kind       { return KindObject }
func (e *ObjectExpression) Accept(v Visitor) { v.VisitObject(e) }

// aggregateFunction is the base of AVG, COUNT, MAX, MIN and SUM.
type aggregateFunction struct{ singleArgument }

func (e *aggregateFunction) HasDistinct() bool { return e.distinct != "" }

type AvgFunction struct{ aggregateFunction }

func (e *AvgFunction) Kind() Kind       { return KindAvg }
func (e *AvgFunction) Accept(v Visitor) { v.VisitAvg(e) }

type CountFunction struct{ aggregateFunction }

func (e *CountFunction) Kind() Kind       { return KindCount }
func (e *CountFunction) Accept(v Visitor) { v.VisitCount(e) }

type MaxFunction struct{ aggregateFunction }

func (e *MaxFunction) Kind() Kind       { return KindMax }
func (e *MaxFunction) Accept(v Visitor) { v.VisitMax(e) }

type MinFunction struct{ aggregateFunction }

func (e *MinFunction) Kind() Kind       { return KindMin }
func (e *MinFunction) Accept(v Visitor) { v.VisitMin(e) }

type SumFunction struct{ aggregateFunction }

func (e *SumFunction) Kind() Kind       { return KindSum }
func (e *SumFunction) Accept(v Visitor) { v.VisitSum(e) }

// ModExpression is MOD(dividend, divisor).
type ModExpression struct{ encapsulated }

func (e *ModExpression) Kind() Kind       { return KindMod }
func (e *ModExpression) Accept(v Visitor) { v.VisitMod(e) }

func (e *ModExpression) FirstExpression() Expression  { return e.argument(0) }
func (e *ModExpression) SecondExpression() Expression { return e.argument(1) }
func (e *ModExpression) HasComma() bool               { return len(e.args) > 1 }

type NullIfExpression struct{ encapsulated }

func (e *NullIfExpression) Kind() Kind       { return KindNullIf }
func (e *NullIfExpression) Accept(v Visitor) { v.VisitNullIf(e) }

func (e *NullIfExpression) FirstExpression() Expression  { return e.argument(0) }
func (e *NullIfExpression) SecondExpression() Expression { return e.argument(1) }

// LocateExpression is LOCATE(search, string [, start]).
type LocateExpression struct{ encapsulated }

func (e *LocateExpression) Kind() Kind       { return KindLocate }
func (e *LocateExpression) Accept(v Visitor) { v.VisitLocate(e) }

func (e *LocateExpression) FirstExpression() Expression  { return e.argument(0) }
func (e *LocateExpression) SecondExpression() Expression { return e.argument(1) }
func (e *LocateExpression) ThirdExpression() Expression  { return e.argument(2) }

// SubstringExpression is SUBSTRING(string, start [, length]).
type SubstringExpression struct{ encapsulated }

func (e *SubstringExpression) Kind() Kind       { return KindSubstring }
func (e *SubstringExpression) Accept(v Visitor) { v.VisitSubstring(e) }

func (e *SubstringExpression) FirstExpression() Expression  { return e.argument(0) }
func (e *SubstringExpression) SecondExpression() Expression { return e.argument(1) }
func (e *SubstringExpression) ThirdExpression() Expression  { return e.argument(2) }

// ConcatExpression is CONCAT(string, string, ...).
type ConcatExpression struct{ encapsulated }

func (e *ConcatExpression) Kind() Kind       { return KindConcat }
func (e *ConcatExpression) Accept(v Visitor) { v.VisitConcat(e) }

func (e *ConcatExpression) Expressions() []Expression { return flatten(e.argument(0)) }

type CoalesceExpression struct{ encapsulated }

func (e *CoalesceExpression) Kind() Kind       { return KindCoalesce }
func (e *CoalesceExpression) Accept(v Visitor) { v.VisitCoalesce(e) }

func (e *CoalesceExpression) Expressions() []Expression { return flatten(e.argument(0)) }

// FunctionExpression is FUNCTION('name', arguments...), a call of a
// database function.
type FunctionExpression struct{ encapsulated }

func (e *FunctionExpression) Kind() Kind       { return KindFunction }
func (e *FunctionExpression) Accept(v Visitor) { v.VisitFunction(e) }

func (e *FunctionExpression) FunctionName() Expression { return e.argument(0) }

func (e *FunctionExpression) Arguments() []Expression {
	if len(e.args) < 2 {
		return nil
	}
	return flatten(e.args[1].expression)
}

// ConstructorExpression is NEW class(arguments...).
type ConstructorExpression struct {
	encapsulated
	spaceAfterNew string
	className     string
}

func (e *ConstructorExpression) Kind() Kind       { return KindConstructor }
func (e *ConstructorExpression) Accept(v Visitor) { v.VisitConstructor(e) }

func (e *ConstructorExpression) orderedChildren() []Expression {
	var t tokens
	t.keyword(e.identifier)
	t.space(e.spaceAfterNew)
	t.name(e.className)
	e.orderedParenthesized(&t)
	return t
}

func (e *ConstructorExpression) ClassName() string { return e.className }

func (e *ConstructorExpression) ConstructorItems() []Expression { return flatten(e.argument(0)) }

func buildConstructor(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	wp := p.wp
	e := &ConstructorExpression{}
	e.bnf = bnfID
	e.identifier = p.identifier("NEW")
	start := wp.Position()
	ws := wp.Whitespace()
	if name := wp.Word(); name != "" && isIdentifierStart(name[0]) {
		e.spaceAfterNew = ws
		e.className = wp.MoveForwardWord(name)
		e.parseParenthesized(p, e, false, []string{ConstructorItemBNF})
	} else {
		wp.SetPosition(start)
	}
	return e
}

// TrimExpression is TRIM([[LEADING|TRAILING|BOTH] [character] FROM] string).
type TrimExpression struct {
	encapsulated
	specification           string
	spaceAfterSpecification string
	character               Expression
	spaceAfterCharacter     string
	from                    string
	spaceAfterFrom          string
	expression              Expression
}

func (e *TrimExpression) Kind() Kind       { return KindTrim }
func (e *TrimExpression) Accept(v Visitor) { v.VisitTrim(e) }

func (e *TrimExpression) orderedChildren() []Expression {
	var t tokens
	t.keyword(e.identifier)
	if !e.hasLeft {
		return t
	}
	t.space(e.spaceAfterIdentifier)
	t.punct("(")
	t.space(e.spaceAfterLeft)
	t.keyword(e.specification)
	t.space(e.spaceAfterSpecification)
	t.add(e.character)
	t.space(e.spaceAfterCharacter)
	t.keyword(e.from)
	t.space(e.spaceAfterFrom)
	t.add(e.expression)
	e.orderedRight(&t)
	return t
}

// Specification returns LEADING, TRAILING or BOTH in upper case, or "".
func (e *TrimExpression) Specification() string { return strings.ToUpper(e.specification) }

func (e *TrimExpression) TrimCharacter() Expression { return orNull(e.character) }
func (e *TrimExpression) HasFrom() bool             { return e.from != "" }
func (e *TrimExpression) Expression() Expression    { return orNull(e.expression) }

func buildTrim(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	wp := p.wp
	e := &TrimExpression{}
	e.bnf = bnfID
	e.identifier = p.identifier("TRIM")
	start := wp.Position()
	ws := wp.Whitespace()
	if wp.Character() != '(' {
		wp.SetPosition(start)
		return e
	}
	e.spaceAfterIdentifier = ws
	e.hasLeft = true
	wp.MoveForward(1)
	e.spaceAfterLeft = wp.Whitespace()
	if kw := p.identifier("LEADING", "TRAILING", "BOTH"); kw != "" {
		e.specification = kw
		e.spaceAfterSpecification = wp.Whitespace()
	}
	if !wp.StartsWithIdentifier("FROM") {
		// Without FROM the first expression is the string itself.
		mark := wp.Position()
		if character := p.parseBNF(e, TrimCharacterBNF); character != nil {
			ws := wp.Whitespace()
			if wp.StartsWithIdentifier("FROM") {
				e.character = character
				e.spaceAfterCharacter = ws
			} else {
				wp.SetPosition(mark)
			}
		}
	}
	if from := p.identifier("FROM"); from != "" {
		e.from = from
		e.spaceAfterFrom = wp.Whitespace()
	}
	e.expression = p.parseBNF(e, StringExpressionBNF)
	if e.expression == nil {
		e.expression = p.null(StringExpressionBNF)
	}
	e.parseRight(p)
	return e
}

// CaseExpression is CASE [operand] WHEN ... THEN ... [ELSE ...] END.
type CaseExpression struct {
	node
	identifier      string
	spaceAfterCase  string
	operand         Expression
	whens           []whenItem
	spaceBeforeElse string
	elseKeyword     string
	spaceAfterElse  string
	elseExpression  Expression
	spaceBeforeEnd  string
	end             string
}

type whenItem struct {
	space  string
	clause *WhenClause
}

func (e *CaseExpression) Kind() Kind       { return KindCase }
func (e *CaseExpression) Accept(v Visitor) { v.VisitCase(e) }

func (e *CaseExpression) orderedChildren() []Expression {
	var t tokens
	t.keyword(e.identifier)
	t.space(e.spaceAfterCase)
	t.add(e.operand)
	for _, w := range e.whens {
		t.space(w.space)
		t.add(w.clause)
	}
	t.space(e.spaceBeforeElse)
	t.keyword(e.elseKeyword)
	t.space(e.spaceAfterElse)
	t.add(e.elseExpression)
	t.space(e.spaceBeforeEnd)
	if e.end != "" {
		t.keyword(e.end)
	} else {
		t.virtual(" END", TextKeyword)
	}
	return t
}

func (e *CaseExpression) CaseOperand() Expression    { return orNull(e.operand) }
func (e *CaseExpression) ElseExpression() Expression { return orNull(e.elseExpression) }
func (e *CaseExpression) HasEnd() bool               { return e.end != "" }

func (e *CaseExpression) WhenClauses() []*WhenClause {
	clauses := make([]*WhenClause, len(e.whens))
	for i, w := range e.whens {
		clauses[i] = w.clause
	}
	return clauses
}

func (e *CaseExpression) isParsingComplete(wp *WordParser, word string) bool {
	switch strings.ToUpper(word) {
	case "WHEN", "THEN", "ELSE", "END":
		return true
	}
	return false
}

func buildCase(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	wp := p.wp
	e := &CaseExpression{}
	e.bnf = bnfID
	e.identifier = p.identifier("CASE")
	pending := wp.Whitespace()
	if !wp.StartsWithIdentifier("WHEN") {
		if operand := p.parseBNF(e, CaseOperandBNF); operand != nil {
			e.spaceAfterCase, e.operand = pending, operand
			pending = wp.Whitespace()
		}
	}
	for wp.StartsWithIdentifier("WHEN") {
		e.whens = append(e.whens, whenItem{space: pending, clause: parseWhen(p)})
		pending = wp.Whitespace()
	}
	if kw := p.identifier("ELSE"); kw != "" {
		e.spaceBeforeElse, e.elseKeyword = pending, kw
		e.spaceAfterElse, e.elseExpression = p.required(e, ScalarExpressionBNF)
		pending = wp.Whitespace()
	}
	if kw := p.identifier("END"); kw != "" {
		e.spaceBeforeEnd, e.end = pending, kw
	} else {
		wp.MoveBackward(len(pending))
	}
	return e
}

// WhenClause is WHEN condition THEN result.
type WhenClause struct {
	node
	when            string
	spaceAfterWhen  string
	condition       Expression
	spaceBeforeThen string
	then            string
	spaceAfterThen  string
	result          Expression
}

func (e *WhenClause) Kind() Kind       { return KindWhen }
func (e *WhenClause) Accept(v Visitor) { v.VisitWhen(e) }

func (e *WhenClause) orderedChildren() []Expression {
	var t tokens
	t.keyword(e.when)
	t.space(e.spaceAfterWhen)
	t.add(e.condition)
	t.space(e.spaceBeforeThen)
	t.keyword(e.then)
	t.space(e.spaceAfterThen)
	t.add(e.result)
	return t
}

func (e *WhenClause) WhenExpression() Expression { return orNull(e.condition) }
func (e *WhenClause) ThenExpression() Expression { return orNull(e.result) }
func (e *WhenClause) HasThen() bool              { return e.then != "" }

func parseWhen(p *parser) *WhenClause {
	e := &WhenClause{}
	e.bnf = WhenClauseBNF
	e.when = p.identifier("WHEN")
	e.spaceAfterWhen, e.condition = p.required(e, ConditionalExpressionBNF)
	e.spaceBeforeThen, e.then = p.keyword("THEN")
	if e.then != "" {
		e.spaceAfterThen, e.result = p.required(e, ScalarExpressionBNF)
	}
	return e
}

func buildWhenClause(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	return parseWhen(p)
}
