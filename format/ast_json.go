package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/hermes/jpql/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
	// Tokens includes keyword, whitespace and punctuation tokens in the
	// output, so the texts of a node's children add up to its own text.
	Tokens bool
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(root *parser.JPQLExpression) error {
	text, err := e.MarshalText(root)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(root *parser.JPQLExpression) ([]byte, error) {
	return json.MarshalIndent(ToAST(root, e.Tokens), "", "  ")
}

// ASTNode is the JSON shape of an expression.
type ASTNode struct {
	Kind     string     `json:"kind"`
	BNF      string     `json:"bnf,omitempty"`
	Span     ASTSpan    `json:"span"`
	Text     string     `json:"text,omitempty"`
	Actual   string     `json:"actual,omitempty"`
	Virtual  bool       `json:"virtual,omitempty"`
	Error    string     `json:"error,omitempty"`
	Children []*ASTNode `json:"children,omitempty"`
}

type ASTSpan struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// ToAST converts the tree below e. Leaves carry their text; Actual is only
// set when the parser inferred text that is not in the query.
func ToAST(e parser.Expression, tokens bool) *ASTNode {
	n := &ASTNode{
		Kind: e.Kind().String(),
		BNF:  e.QueryBNF(),
		Span: ASTSpan{Offset: e.Offset(), Length: e.Length()},
	}

	children := e.Children()
	if tokens {
		children = e.OrderedChildren()
	}
	if len(e.OrderedChildren()) == 0 {
		n.Text = e.ParsedText()
	}
	if e.ActualText() != e.ParsedText() {
		n.Actual = e.ActualText()
	}

	switch e := e.(type) {
	case *parser.TextExpression:
		n.Kind = textKindName(e.TextKind())
		n.Text = e.Text()
		n.Virtual = e.IsVirtual()
		n.Actual = ""
	case *parser.BadExpression:
		n.Error = "not valid here"
	case *parser.UnknownExpression:
		n.Error = "unexpected text"
	case *parser.NullExpression:
		if e.QueryBNF() != "" {
			n.Error = "missing " + e.QueryBNF()
		}
	}

	if len(children) > 0 {
		n.Children = make([]*ASTNode, len(children))
		for i, child := range children {
			n.Children[i] = ToAST(child, tokens)
		}
	}
	return n
}

func textKindName(k parser.TextKind) string {
	switch k {
	case parser.TextKeyword:
		return "keyword"
	case parser.TextWhitespace:
		return "whitespace"
	case parser.TextPunctuation:
		return "punctuation"
	default:
		return "name"
	}
}
