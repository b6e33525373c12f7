package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/ebnf"
)

// WriteGrammar writes the registry as an EBNF grammar in the notation of
// golang.org/x/exp/ebnf. Rules become productions named after their ID in
// CamelCase; factories become productions with a Factory suffix made of
// their identifiers followed by the rules their expression is built from.
func (r *Registry) WriteGrammar(w io.Writer) error {
	var b strings.Builder
	for _, id := range r.bnfOrder {
		fmt.Fprintf(&b, "%s = %s .\n", productionName(id), r.bnfProduction(r.bnfs[id]))
	}
	b.WriteString("\n")
	for _, id := range r.order {
		fmt.Fprintf(&b, "%s = %s .\n", factoryName(id), factoryProduction(r.factories[id]))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Grammar parses the output of WriteGrammar and verifies it from the rule
// start, which reports undefined and unreachable productions.
func (r *Registry) Grammar(start string) (ebnf.Grammar, error) {
	var b strings.Builder
	if err := r.WriteGrammar(&b); err != nil {
		return nil, err
	}
	grammar, err := ebnf.Parse("jpql.ebnf", strings.NewReader(b.String()))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(grammar, productionName(start)); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return grammar, nil
}

func (r *Registry) bnfProduction(bnf *QueryBNF) string {
	var alternatives []string
	for _, child := range bnf.Children {
		alternatives = append(alternatives, productionName(child))
	}
	for _, fid := range bnf.Factories {
		alternatives = append(alternatives, factoryName(fid))
	}
	if bnf.HandleSubExpression && r.bnfs[SubqueryBNF] != nil {
		alternatives = append(alternatives, `"(" `+productionName(SubqueryBNF)+` ")"`)
	}
	switch {
	case bnf.FallbackFactory != "":
		alternatives = append(alternatives, factoryName(bnf.FallbackFactory))
	case bnf.FallbackBNF != "":
		alternatives = append(alternatives, productionName(bnf.FallbackBNF))
	}
	item := strings.Join(alternatives, " | ")
	if !bnf.HandleCollection {
		return item
	}
	if len(alternatives) > 1 {
		item = "( " + item + " )"
	}
	return item + ` { "," ` + item + " }"
}

func factoryProduction(f *ExpressionFactory) string {
	var parts []string
	if len(f.Identifiers) > 0 {
		quoted := make([]string, len(f.Identifiers))
		for i, identifier := range f.Identifiers {
			quoted[i] = strconv.Quote(identifier)
		}
		if len(quoted) == 1 {
			parts = append(parts, quoted[0])
		} else {
			parts = append(parts, "( "+strings.Join(quoted, " | ")+" )")
		}
	}
	for _, sub := range f.SubBNFs {
		parts = append(parts, "[ "+productionName(sub)+" ]")
	}
	if len(parts) == 0 {
		return strconv.Quote(f.ID)
	}
	return strings.Join(parts, " ")
}

// productionName turns a rule ID such as conditional_expression into
// ConditionalExpression.
func productionName(id string) string {
	var b strings.Builder
	for _, part := range strings.Split(id, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

func factoryName(id string) string {
	return productionName(id) + "Factory"
}
