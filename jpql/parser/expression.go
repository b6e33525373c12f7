package parser

import (
	"fmt"
	"strings"
)

// Expression is a node of a parsed query. Texts, offsets and children are
// computed once the whole query has been parsed.
type Expression interface {
	Kind() Kind
	Accept(v Visitor)
	AcceptChildren(v Visitor)

	Parent() Expression
	// Children returns the sub-expressions, without keyword, whitespace and
	// punctuation tokens.
	Children() []Expression
	// OrderedChildren returns every piece of the expression in text order,
	// including TextExpression tokens. Their parsed texts concatenate to
	// ParsedText.
	OrderedChildren() []Expression

	// QueryBNF returns the ID of the grammar rule the expression was parsed
	// for.
	QueryBNF() string
	Offset() int
	Length() int
	// ParsedText returns the text exactly as it was consumed from the query.
	ParsedText() string
	// ActualText returns the parsed text plus the tokens the parser inferred,
	// such as a missing closing parenthesis.
	ActualText() string
	String() string

	base() *node
	orderedChildren() []Expression
}

// leaf is implemented by expressions without sub-expressions.
type leaf interface {
	leafText(actual bool) string
}

// completer is implemented by expressions with stop words of their own. The
// engine stops parsing a list when an enclosing owner claims the word.
type completer interface {
	isParsingComplete(wp *WordParser, word string) bool
}

type node struct {
	self     Expression
	parent   Expression
	bnf      string
	offset   int
	parsed   string
	actual   string
	ordered  []Expression
	children []Expression
	done     bool
}

func (n *node) base() *node { return n }

func (n *node) Parent() Expression { return n.parent }

func (n *node) Children() []Expression { return n.children }

func (n *node) OrderedChildren() []Expression { return n.ordered }

func (n *node) QueryBNF() string { return n.bnf }

func (n *node) Offset() int { return n.offset }

func (n *node) Length() int { return len(n.parsed) }

func (n *node) ParsedText() string { return n.parsed }

func (n *node) ActualText() string { return n.actual }

func (n *node) AcceptChildren(v Visitor) {
	for _, child := range n.children {
		child.Accept(v)
	}
}

func (n *node) String() string {
	if n.self == nil {
		return n.parsed
	}
	return Dump(n.self)
}

// finalize computes parents, offsets and texts for e and everything below
// it. Every expression must be reachable exactly once.
func finalize(e, parent Expression, offset int) {
	n := e.base()
	if n.done {
		panic(fmt.Sprintf("parser: %s at offset %d is owned twice", e.Kind(), offset))
	}
	n.done = true
	n.self = e
	n.parent = parent
	n.offset = offset
	if l, ok := e.(leaf); ok {
		n.parsed = l.leafText(false)
		n.actual = l.leafText(true)
		return
	}
	n.ordered = e.orderedChildren()
	var parsed, actual strings.Builder
	for _, child := range n.ordered {
		finalize(child, e, offset+parsed.Len())
		parsed.WriteString(child.ParsedText())
		actual.WriteString(child.ActualText())
		if _, ok := child.(*TextExpression); !ok {
			n.children = append(n.children, child)
		}
	}
	n.parsed = parsed.String()
	n.actual = actual.String()
}

// TextKind classifies the tokens of TextExpression.
type TextKind int

const (
	TextKeyword TextKind = iota
	TextWhitespace
	TextPunctuation
	TextName
)

// TextExpression is a keyword, operator, whitespace run or punctuation
// token. It only appears in ordered children.
type TextExpression struct {
	node
	text    string
	kind    TextKind
	virtual bool
}

func (t *TextExpression) Kind() Kind                    { return KindText }
func (t *TextExpression) Accept(Visitor)                {}
func (t *TextExpression) orderedChildren() []Expression { return nil }

func (t *TextExpression) leafText(actual bool) string {
	if t.virtual && !actual {
		return ""
	}
	return t.text
}

func (t *TextExpression) Text() string       { return t.text }
func (t *TextExpression) TextKind() TextKind { return t.kind }

// IsVirtual reports whether the token was inferred rather than written.
func (t *TextExpression) IsVirtual() bool { return t.virtual }

// tokens builds ordered children. Empty texts and nil expressions are
// skipped.
type tokens []Expression

func (t *tokens) add(e Expression) {
	if e != nil {
		*t = append(*t, e)
	}
}

func (t *tokens) text(s string, kind TextKind) {
	if s != "" {
		*t = append(*t, &TextExpression{text: s, kind: kind})
	}
}

func (t *tokens) keyword(s string) { t.text(s, TextKeyword) }
func (t *tokens) space(s string)   { t.text(s, TextWhitespace) }
func (t *tokens) punct(s string)   { t.text(s, TextPunctuation) }
func (t *tokens) name(s string)    { t.text(s, TextName) }

func (t *tokens) virtual(s string, kind TextKind) {
	*t = append(*t, &TextExpression{text: s, kind: kind, virtual: true})
}

// separator splits a list separator such as " , " into its tokens.
func (t *tokens) separator(s string) {
	i := strings.IndexByte(s, ',')
	if i < 0 {
		t.space(s)
		return
	}
	t.space(s[:i])
	t.punct(",")
	t.space(s[i+1:])
}

// noExpression is returned by accessors for parts that are absent.
var noExpression Expression = &NullExpression{}

func orNull(e Expression) Expression {
	if e == nil {
		return noExpression
	}
	return e
}

// IsNull reports whether e is missing or a NullExpression.
func IsNull(e Expression) bool {
	if e == nil {
		return true
	}
	_, ok := e.(*NullExpression)
	return ok
}

// Dump renders an indented tree of e, one expression per line.
func Dump(e Expression) string {
	var b strings.Builder
	dump(&b, e, 0)
	return b.String()
}

func dump(b *strings.Builder, e Expression, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(e.Kind().String())
	if _, ok := e.(leaf); ok && e.ParsedText() != "" {
		b.WriteString(" ")
		b.WriteString(e.ParsedText())
	}
	b.WriteString("\n")
	for _, child := range e.Children() {
		dump(b, child, indent+1)
	}
}

// Inspect traverses the tree in depth-first order, calling f for each
// expression. Children are skipped when f returns false.
func Inspect(e Expression, f func(Expression) bool) {
	if e == nil || !f(e) {
		return
	}
	for _, child := range e.Children() {
		Inspect(child, f)
	}
}
