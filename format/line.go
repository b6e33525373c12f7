package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/hermes/jpql/parser"
)

// LineEncoder writes one tab-separated line per expression: depth-indented
// kind, offset range, grammar rule and, for leaves, the quoted text. The
// output is meant for grep and diff.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(root *parser.JPQLExpression) error {
	text, err := e.MarshalText(root)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(root *parser.JPQLExpression) ([]byte, error) {
	var sb strings.Builder
	writeLines(&sb, root, 0)
	return []byte(sb.String()), nil
}

func writeLines(sb *strings.Builder, e parser.Expression, depth int) {
	fmt.Fprintf(sb, "%s%s\t%d-%d\t%s",
		strings.Repeat(" ", depth*2),
		e.Kind(),
		e.Offset(),
		e.Offset()+e.Length(),
		bnfOrDash(e.QueryBNF()),
	)
	if len(e.OrderedChildren()) == 0 {
		fmt.Fprintf(sb, "\t%q", e.ActualText())
	}
	sb.WriteByte('\n')

	for _, child := range e.Children() {
		writeLines(sb, child, depth+1)
	}
}

func bnfOrDash(bnf string) string {
	if bnf == "" {
		return "-"
	}
	return bnf
}
