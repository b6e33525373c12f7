package parser

import "strings"

type NumericLiteral struct{ literal }

func (e *NumericLiteral) Kind() Kind       { return KindNumericLiteral }
func (e *NumericLiteral) Accept(v Visitor) { v.VisitNumericLiteral(e) }

// StringLiteral is a quoted string. An unterminated literal gets its
// closing quote in the actual text.
type StringLiteral struct {
	literal
	closed bool
}

func (e *StringLiteral) Kind() Kind       { return KindStringLiteral }
func (e *StringLiteral) Accept(v Visitor) { v.VisitStringLiteral(e) }

func (e *StringLiteral) leafText(actual bool) string {
	if actual && !e.closed {
		return e.text + e.text[:1]
	}
	return e.text
}

func (e *StringLiteral) HasCloseQuote() bool { return e.closed }

// Value returns the unquoted string with doubled quotes collapsed.
func (e *StringLiteral) Value() string {
	quote := e.text[:1]
	s := e.text[1:]
	if e.closed {
		s = s[:len(s)-1]
	}
	return strings.ReplaceAll(s, quote+quote, quote)
}

// InputParameter is a named (:name) or positional (?1) parameter.
type InputParameter struct{ literal }

func (e *InputParameter) Kind() Kind       { return KindInputParameter }
func (e *InputParameter) Accept(v Visitor) { v.VisitInputParameter(e) }

func (e *InputParameter) IsNamed() bool      { return strings.HasPrefix(e.text, ":") }
func (e *InputParameter) IsPositional() bool { return strings.HasPrefix(e.text, "?") }

// KeywordExpression is TRUE, FALSE or NULL.
type KeywordExpression struct{ literal }

func (e *KeywordExpression) Kind() Kind       { return KindKeyword }
func (e *KeywordExpression) Accept(v Visitor) { v.VisitKeyword(e) }

// DateTime is CURRENT_DATE, CURRENT_TIME or CURRENT_TIMESTAMP.
type DateTime struct{ literal }

func (e *DateTime) Kind() Kind       { return KindDateTime }
func (e *DateTime) Accept(v Visitor) { v.VisitDateTime(e) }

// PathExpression is a dotted path such as e.address.city. A path being
// typed may end with a dot.
type PathExpression struct{ literal }

func (e *PathExpression) Kind() Kind       { return KindPath }
func (e *PathExpression) Accept(v Visitor) { v.VisitPath(e) }

func (e *PathExpression) Segments() []string { return strings.Split(e.text, ".") }

func (e *PathExpression) IdentificationVariable() string {
	return e.Segments()[0]
}

func (e *PathExpression) EndsWithDot() bool { return strings.HasSuffix(e.text, ".") }

type IdentificationVariable struct{ literal }

func (e *IdentificationVariable) Kind() Kind       { return KindIdentificationVariable }
func (e *IdentificationVariable) Accept(v Visitor) { v.VisitIdentificationVariable(e) }

// AbstractSchemaName is an entity name in a range declaration.
type AbstractSchemaName struct{ literal }

func (e *AbstractSchemaName) Kind() Kind       { return KindAbstractSchemaName }
func (e *AbstractSchemaName) Accept(v Visitor) { v.VisitAbstractSchemaName(e) }

// buildLiteral is the fallback of most rules. The word decides the kind of
// literal; reserved words are refused.
func buildLiteral(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	wp := p.wp
	switch wp.WordType() {
	case WordTypeNumericLiteral:
		return parseNumericLiteral(p, bnfID)
	case WordTypeStringLiteral:
		e := &StringLiteral{}
		e.bnf = bnfID
		e.text = wp.MoveForwardWord(word)
		e.closed = isClosedString(e.text)
		return e
	case WordTypeInputParameter:
		e := &InputParameter{}
		e.bnf = bnfID
		e.text = wp.MoveForwardWord(word)
		return e
	case WordTypeWord:
	default:
		return nil
	}
	if !isIdentifierStart(word[0]) || p.registry.IsIdentifier(word, p.version) {
		return nil
	}
	if strings.Contains(word, ".") {
		e := &PathExpression{}
		e.bnf = bnfID
		e.text = wp.MoveForwardWord(word)
		return e
	}
	e := &IdentificationVariable{}
	e.bnf = bnfID
	e.text = wp.MoveForwardWord(word)
	return e
}

func isClosedString(text string) bool {
	quote := text[:1]
	rest := strings.ReplaceAll(text[1:], quote+quote, "")
	return strings.HasSuffix(rest, quote)
}

// parseNumericLiteral consumes an optional sign, the digits, and the signed
// exponent of numbers such as 1.5E-10 that the word parser splits.
func parseNumericLiteral(p *parser, bnfID string) Expression {
	wp := p.wp
	start := wp.Position()
	if c := wp.Character(); c == '+' || c == '-' {
		wp.MoveForward(1)
	}
	wp.MoveForwardWord(wp.Word())
	text := wp.Substring(start, wp.Position())
	if last := text[len(text)-1]; last == 'e' || last == 'E' {
		if c := wp.Character(); (c == '+' || c == '-') && isDigit(wp.CharacterAt(wp.Position()+1)) {
			wp.MoveForward(1)
			wp.MoveForwardWord(wp.Word())
		}
	}
	e := &NumericLiteral{}
	e.bnf = bnfID
	e.text = wp.Substring(start, wp.Position())
	return e
}

func buildKeyword(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &KeywordExpression{}
	e.bnf = bnfID
	e.text = p.wp.MoveForwardWord(word)
	return e
}

func buildDateTime(p *parser, owner Expression, word, bnfID string, previous Expression) Expression {
	e := &DateTime{}
	e.bnf = bnfID
	e.text = p.wp.MoveForwardWord(word)
	return e
}
