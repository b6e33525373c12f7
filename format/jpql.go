package format

import (
	"io"
	"strings"

	"github.com/dhamidi/hermes/jpql/parser"
)

// JPQLPrinter writes a query back as normalized JPQL: identifiers in upper
// case, single spaces between tokens, and the tokens a tolerant parse
// inferred (closing parentheses, END, NULL) written out.
type JPQLPrinter struct {
	w io.Writer
	// Multiline starts every clause of the outermost statement on a new
	// line. Subqueries stay on one line.
	Multiline bool
}

func NewJPQLPrinter(w io.Writer) *JPQLPrinter {
	return &JPQLPrinter{w: w}
}

func (p *JPQLPrinter) Encode(root *parser.JPQLExpression) error {
	_, err := io.WriteString(p.w, p.Format(root)+"\n")
	return err
}

func (p *JPQLPrinter) Print(root *parser.JPQLExpression) error {
	_, err := io.WriteString(p.w, p.Format(root))
	return err
}

// Format returns the normalized text of root.
func (p *JPQLPrinter) Format(root *parser.JPQLExpression) string {
	var toks []printToken
	p.collect(&toks, root, nil)

	var sb strings.Builder
	for i, tok := range toks {
		if i > 0 {
			sb.WriteString(separatorBetween(toks[i-1], tok))
		}
		sb.WriteString(tok.text)
	}
	return sb.String()
}

// Format parses query and returns it normalized.
func Format(query string, opts ...parser.Option) string {
	return NewJPQLPrinter(nil).Format(parser.ParseQuery(query, opts...))
}

type printToken struct {
	text        string
	kind        parser.TextKind
	leaf        bool
	parent      parser.Expression
	breakBefore bool
}

func (p *JPQLPrinter) collect(toks *[]printToken, e, parent parser.Expression) {
	ordered := e.OrderedChildren()
	if len(ordered) > 0 {
		start := len(*toks)
		for _, child := range ordered {
			p.collect(toks, child, e)
		}
		if p.Multiline && start > 0 && start < len(*toks) && isOutermostClause(e) {
			(*toks)[start].breakBefore = true
		}
		return
	}

	tok := printToken{parent: parent}
	switch e := e.(type) {
	case *parser.TextExpression:
		if e.TextKind() == parser.TextWhitespace {
			return
		}
		tok.kind = e.TextKind()
		tok.text = strings.TrimSpace(e.Text())
		if tok.kind == parser.TextKeyword {
			tok.text = normalizeIdentifier(tok.text)
		}
	case *parser.NullExpression:
		return
	case *parser.KeywordExpression:
		tok.leaf = true
		tok.text = strings.ToUpper(e.Text())
	case *parser.DateTime:
		tok.leaf = true
		tok.text = e.Text()
		if !strings.HasPrefix(tok.text, "{") {
			tok.text = strings.ToUpper(tok.text)
		}
	default:
		tok.leaf = true
		tok.text = e.ActualText()
	}
	if tok.text != "" {
		*toks = append(*toks, tok)
	}
}

// normalizeIdentifier turns "left  outer\tjoin" into "LEFT OUTER JOIN".
func normalizeIdentifier(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

func isOutermostClause(e parser.Expression) bool {
	switch e.Kind() {
	case parser.KindFromClause, parser.KindWhereClause, parser.KindGroupByClause,
		parser.KindHavingClause, parser.KindOrderByClause:
	default:
		return false
	}
	switch e.Parent().Kind() {
	case parser.KindSelectStatement, parser.KindUpdateStatement, parser.KindDeleteStatement:
		return true
	}
	return false
}

// spacedParenthesis lists the expressions written as "IN (...)" rather than
// "ABS(...)".
var spacedParenthesis = map[parser.Kind]bool{
	parser.KindIn:       true,
	parser.KindExists:   true,
	parser.KindAllOrAny: true,
}

func separatorBetween(prev, next printToken) string {
	switch {
	case next.breakBefore:
		return "\n"
	case prev.text == "(":
		return ""
	case next.text == ")" || next.text == ",":
		return ""
	case next.text == "(" && !prev.leaf && prev.text != "," && prev.parent == next.parent &&
		!spacedParenthesis[next.parent.Kind()]:
		return ""
	case prev.parent != nil && prev.parent.Kind() == parser.KindArithmeticFactor && !prev.leaf:
		return ""
	}
	return " "
}
