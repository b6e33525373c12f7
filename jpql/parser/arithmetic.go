package parser

type AdditionExpression struct{ compound }

func (e *AdditionExpression) Kind() Kind       { return KindAddition }
func (e *AdditionExpression) Accept(v Visitor) { v.VisitAddition(e) }

type SubtractionExpression struct{ compound }

func (e *SubtractionExpression) Kind() Kind       { return KindSubtraction }
func (e *SubtractionExpression) Accept(v Visitor) { v.VisitSubtraction(e) }

type MultiplicationExpression struct{ compound }

func (e *MultiplicationExpression) Kind() Kind       { return KindMultiplication }
func (e *MultiplicationExpression) Accept(v Visitor) { v.VisitMultiplication(e) }

type DivisionExpression struct{ compound }

func (e *DivisionExpression) Kind() Kind       { return KindDivision }
func (e *DivisionExpression) Accept(v Visitor) { v.VisitDivision(e) }

// + and - take a term as right operand, * and / a factor, which gives
// multiplication precedence over addition.

func buildAddition(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &AdditionExpression{}
	e.bnf = bnfID
	e.parseCompound(p, e, previous, ArithmeticTermBNF, "+")
	return e
}

func buildSubtraction(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &SubtractionExpression{}
	e.bnf = bnfID
	e.parseCompound(p, e, previous, ArithmeticTermBNF, "-")
	return e
}

func buildMultiplication(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &MultiplicationExpression{}
	e.bnf = bnfID
	e.parseCompound(p, e, previous, ArithmeticFactorBNF, "*")
	return e
}

func buildDivision(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &DivisionExpression{}
	e.bnf = bnfID
	e.parseCompound(p, e, previous, ArithmeticFactorBNF, "/")
	return e
}

// ArithmeticFactor is a signed arithmetic primary such as -e.salary.
type ArithmeticFactor struct {
	node
	sign       string
	space      string
	expression Expression
}

func (e *ArithmeticFactor) Kind() Kind       { return KindArithmeticFactor }
func (e *ArithmeticFactor) Accept(v Visitor) { v.VisitArithmeticFactor(e) }

func (e *ArithmeticFactor) orderedChildren() []Expression {
	var t tokens
	t.keyword(e.sign)
	t.space(e.space)
	t.add(e.expression)
	return t
}

func (e *ArithmeticFactor) Sign() string           { return e.sign }
func (e *ArithmeticFactor) Expression() Expression { return orNull(e.expression) }

// buildArithmeticFactor creates a NumericLiteral when a number directly
// follows the sign.
func buildArithmeticFactor(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	wp := p.wp
	next := wp.CharacterAt(wp.Position() + 1)
	if isDigit(next) || next == '.' && isDigit(wp.CharacterAt(wp.Position()+2)) {
		return parseNumericLiteral(p, bnfID)
	}
	e := &ArithmeticFactor{}
	e.bnf = bnfID
	e.sign = wp.MoveForward(1)
	e.space, e.expression = p.required(e, ArithmeticPrimaryBNF)
	return e
}
