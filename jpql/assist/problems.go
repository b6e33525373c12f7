package assist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/hermes/jpql/parser"
)

const (
	CodeBadExpression      = "bad-expression"
	CodeUnexpectedText     = "unexpected-text"
	CodeMissingExpression  = "missing-expression"
	CodeMissingToken       = "missing-token"
	CodeUnterminatedString = "unterminated-string"
)

// Problem marks a range of the query the parser had to recover from.
// Missing parts have a zero length at the offset where they belong.
type Problem struct {
	Offset     int    `json:"offset"`
	Length     int    `json:"length"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (p Problem) String() string {
	msg := fmt.Sprintf("%d: %s", p.Offset, p.Message)
	if p.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", p.Suggestion)
	}
	return msg
}

// Problems lists the recovery points of a tolerant parse in query order. A
// query parsed without problems yields nil.
func Problems(root *parser.JPQLExpression) []Problem {
	var problems []Problem
	var walk func(e parser.Expression)
	walk = func(e parser.Expression) {
		switch e := e.(type) {
		case *parser.BadExpression:
			problems = append(problems, Problem{
				Offset:  e.Offset(),
				Length:  e.Length(),
				Code:    CodeBadExpression,
				Message: fmt.Sprintf("%s is not valid here", describe(e.Expression())),
			})
		case *parser.UnknownExpression:
			problems = append(problems, Problem{
				Offset:     e.Offset(),
				Length:     e.Length(),
				Code:       CodeUnexpectedText,
				Message:    fmt.Sprintf("unexpected text %q", e.Text()),
				Suggestion: suggestIdentifier(root, e),
			})
		case *parser.NullExpression:
			if e.QueryBNF() != "" {
				problems = append(problems, Problem{
					Offset:  e.Offset(),
					Code:    CodeMissingExpression,
					Message: "missing " + describeRule(e.QueryBNF()),
				})
			}
		case *parser.StringLiteral:
			if !e.HasCloseQuote() {
				problems = append(problems, Problem{
					Offset:  e.Offset(),
					Length:  e.Length(),
					Code:    CodeUnterminatedString,
					Message: "string literal is not terminated",
				})
			}
		case *parser.TextExpression:
			if e.IsVirtual() {
				problems = append(problems, Problem{
					Offset:  e.Offset(),
					Code:    CodeMissingToken,
					Message: fmt.Sprintf("missing %q", strings.TrimSpace(e.Text())),
				})
			}
		}
		for _, child := range e.OrderedChildren() {
			walk(child)
		}
	}
	walk(root)

	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Offset < problems[j].Offset
	})
	return problems
}

// suggestIdentifier returns the identifier legal before e whose first word
// is closest to the first word of e.
func suggestIdentifier(root *parser.JPQLExpression, e *parser.UnknownExpression) string {
	fields := strings.Fields(e.Text())
	if len(fields) == 0 {
		return ""
	}
	var labels, words []string
	for _, p := range CompleteAt(root, e.Offset()) {
		if p.Kind != ProposalVariable && isWordPart(p.Label[0]) {
			labels = append(labels, p.Label)
			words = append(words, strings.Fields(p.Label)[0])
		}
	}
	best := SuggestFrom(fields[0], words, 2)
	for i, word := range words {
		if word == best {
			return labels[i]
		}
	}
	return ""
}

func describe(e parser.Expression) string {
	if parser.IsNull(e) {
		return "expression"
	}
	return e.Kind().String()
}

// describeRule turns "conditional_expression" into "conditional expression".
func describeRule(bnfID string) string {
	if bnfID == parser.StatementBNF {
		return "statement"
	}
	return strings.ReplaceAll(bnfID, "_", " ")
}
