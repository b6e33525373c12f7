package format

import (
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/hermes/jpql/parser"
)

// Encoder writes a parsed query to an output stream.
type Encoder interface {
	Encode(root *parser.JPQLExpression) error
}

var encoders = map[string]func(w io.Writer) Encoder{
	"json":   func(w io.Writer) Encoder { return NewASTJSONEncoder(w) },
	"tokens": func(w io.Writer) Encoder { return &ASTJSONEncoder{w: w, Tokens: true} },
	"line":   func(w io.Writer) Encoder { return NewLineEncoder(w) },
	"jpql":   func(w io.Writer) Encoder { return NewJPQLPrinter(w) },
}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	newEncoder, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (expected one of %v)", name, Names())
	}
	return newEncoder(w), nil
}

// Names lists the registered encoder names.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
