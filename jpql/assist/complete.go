// Package assist proposes what can be typed at a position of a JPQL query
// and reports the problems a tolerant parse recovered from.
package assist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/hermes/jpql/parser"
)

type ProposalKind int

const (
	ProposalIdentifier ProposalKind = iota
	ProposalClause
	ProposalVariable
)

var proposalKindNames = map[ProposalKind]string{
	ProposalIdentifier: "identifier",
	ProposalClause:     "clause",
	ProposalVariable:   "variable",
}

func (k ProposalKind) String() string {
	if name, ok := proposalKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k ProposalKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ProposalKind) UnmarshalText(text []byte) error {
	for kind, name := range proposalKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown proposal kind: %s", text)
}

// Proposal is text that can be inserted at the cursor. It replaces the
// partially typed word, which spans [Offset, Offset+Length).
type Proposal struct {
	Label  string       `json:"label"`
	Kind   ProposalKind `json:"kind"`
	Offset int          `json:"offset"`
	Length int          `json:"length"`
}

// Complete parses query tolerantly and returns the proposals at offset.
func Complete(query string, offset int, opts ...parser.Option) []Proposal {
	if offset < 0 || offset > len(query) {
		return nil
	}
	opts = append([]parser.Option{parser.WithTolerant()}, opts...)
	return CompleteAt(parser.ParseQuery(query, opts...), offset)
}

// CompleteAt returns the proposals at offset of an already parsed query.
// The tree should come from a tolerant parse.
//
// Three sources are combined: the identifiers that can start an expression
// in the grammar slot under the cursor, the identifiers and clauses that
// can follow the expression ending before the cursor, and the variables
// declared in the query.
func CompleteAt(root *parser.JPQLExpression, offset int) []Proposal {
	query := root.Query()
	if offset < 0 || offset > len(query) {
		return nil
	}
	start := offset
	for start > 0 && isWordPart(query[start-1]) {
		start--
	}
	if start > 0 && query[start-1] == '.' {
		// A path segment; the mapping of state fields is not known here.
		return nil
	}

	c := &completion{
		root:     root,
		registry: root.Registry(),
		version:  root.Version(),
		partial:  strings.ToUpper(query[start:offset]),
		start:    start,
		length:   offset - start,
		seen:     map[string]bool{},
	}

	qp, err := root.PopulatePosition(start)
	if err != nil {
		return nil
	}
	if slot, ok := slotAt(root, qp, start); ok {
		c.addIdentifiers(slot, false, ProposalIdentifier)
		if acceptsVariables(slot) {
			c.addVariables()
		}
	}

	before := strings.TrimRight(query[:start], " \t\r\n")
	if before != "" && len(before) < start {
		c.addFollowers(len(before))
	}

	sort.SliceStable(c.proposals, func(i, j int) bool {
		if c.proposals[i].Kind != c.proposals[j].Kind {
			return c.proposals[i].Kind < c.proposals[j].Kind
		}
		return c.proposals[i].Label < c.proposals[j].Label
	})
	return c.proposals
}

type completion struct {
	root      *parser.JPQLExpression
	registry  *parser.Registry
	version   parser.Version
	partial   string
	start     int
	length    int
	seen      map[string]bool
	proposals []Proposal
}

func (c *completion) add(label string, kind ProposalKind) {
	if !strings.HasPrefix(strings.ToUpper(label), c.partial) {
		return
	}
	key := kind.String() + " " + label
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.proposals = append(c.proposals, Proposal{
		Label:  label,
		Kind:   kind,
		Offset: c.start,
		Length: c.length,
	})
}

func (c *completion) addIdentifiers(bnfID string, compound bool, kind ProposalKind) {
	for _, identifier := range c.registry.Identifiers(bnfID, compound, c.version) {
		c.add(identifier, kind)
	}
}

func (c *completion) addVariables() {
	for _, variable := range DeclaredVariables(c.root) {
		c.add(variable, ProposalVariable)
	}
}

// addFollowers proposes what may come after the expressions ending at end:
// compound identifiers such as AND or BETWEEN, joins after a range
// declaration, and the clauses the enclosing statement has not used yet.
func (c *completion) addFollowers(end int) {
	qp, err := c.root.PopulatePosition(end)
	if err != nil {
		return
	}
	path := qp.Path()
	complete := false
	for i := len(path) - 1; i >= 0; i-- {
		e := path[i]
		if parser.IsNull(e) || e.Offset()+e.Length() != end {
			continue
		}
		complete = true
		c.addIdentifiers(e.QueryBNF(), true, ProposalIdentifier)

		switch e.Kind() {
		case parser.KindIdentificationVariableDeclaration:
			c.addIdentifiers(parser.JoinBNF, false, ProposalClause)
		case parser.KindJoin:
			if join := e.(*parser.Join); parser.IsNull(join.OnClause()) {
				c.addIdentifiers(parser.OnClauseBNF, false, ProposalClause)
			}
			c.addIdentifiers(parser.JoinBNF, false, ProposalClause)
		}
	}
	if !complete {
		return
	}

	// Only the innermost statement gets clauses, and only when the cursor
	// is in its last clause.
	for i := len(path) - 2; i >= 0; i-- {
		switch path[i].Kind() {
		case parser.KindSelectStatement, parser.KindSimpleSelectStatement,
			parser.KindUpdateStatement, parser.KindDeleteStatement:
			children := path[i].Children()
			if len(children) > 0 && children[len(children)-1] == path[i+1] {
				for _, bnf := range followingClauses(path[i], path[i+1].Kind()) {
					c.addIdentifiers(bnf, false, ProposalClause)
				}
			}
			return
		}
	}
}

// slotAt returns the grammar rule of the expression that is missing or
// being typed at start.
func slotAt(root *parser.JPQLExpression, qp *parser.QueryPosition, start int) (string, bool) {
	switch e := qp.Expression().(type) {
	case *parser.NullExpression:
		return e.QueryBNF(), e.QueryBNF() != ""
	case *parser.JPQLExpression:
		return e.QueryBNF(), !e.HasQueryStatement()
	case *parser.UnknownExpression:
		return root.QueryBNF(), !root.HasQueryStatement()
	case *parser.BadExpression:
		return "", false
	default:
		if len(e.OrderedChildren()) == 0 && e.Offset() == start {
			return e.QueryBNF(), true
		}
	}
	return "", false
}

// noVariables lists the slots where a new name is declared or where only an
// entity name fits.
var noVariables = map[string]bool{
	parser.StatementBNF:                true,
	parser.FromDeclarationBNF:          true,
	parser.RangeVariableDeclarationBNF: true,
	parser.AbstractSchemaNameBNF:       true,
	parser.IdentificationVariableBNF:   true,
	parser.ResultVariableBNF:           true,
}

func acceptsVariables(bnfID string) bool {
	return !noVariables[bnfID]
}

type clauseSlot struct {
	kind parser.Kind
	bnf  string
}

var clauseOrder = []clauseSlot{
	{parser.KindFromClause, parser.FromClauseBNF},
	{parser.KindWhereClause, parser.WhereClauseBNF},
	{parser.KindGroupByClause, parser.GroupByClauseBNF},
	{parser.KindHavingClause, parser.HavingClauseBNF},
	{parser.KindOrderByClause, parser.OrderByClauseBNF},
}

// followingClauses returns the rules of the clauses of stmt that may come
// after a clause of the given kind.
func followingClauses(stmt parser.Expression, current parser.Kind) []string {
	var allowed map[parser.Kind]bool
	switch stmt.Kind() {
	case parser.KindSelectStatement:
		allowed = map[parser.Kind]bool{
			parser.KindFromClause: true, parser.KindWhereClause: true, parser.KindGroupByClause: true,
			parser.KindHavingClause: true, parser.KindOrderByClause: true,
		}
	case parser.KindSimpleSelectStatement:
		allowed = map[parser.Kind]bool{
			parser.KindFromClause: true, parser.KindWhereClause: true, parser.KindGroupByClause: true,
			parser.KindHavingClause: true,
		}
	case parser.KindUpdateStatement, parser.KindDeleteStatement:
		allowed = map[parser.Kind]bool{parser.KindWhereClause: true}
	}

	last := -1
	for i, slot := range clauseOrder {
		if slot.kind == current {
			last = i
		}
	}

	var bnfs []string
	for i := last + 1; i < len(clauseOrder); i++ {
		if allowed[clauseOrder[i].kind] {
			bnfs = append(bnfs, clauseOrder[i].bnf)
		}
	}
	return bnfs
}

func isWordPart(c byte) bool {
	return c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80
}
