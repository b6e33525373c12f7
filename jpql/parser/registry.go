package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// QueryBNF is a grammar rule. Its expressions are created by the factories
// registered on it or on any of its child rules; when none applies the
// fallback is used.
type QueryBNF struct {
	ID string
	// Children are rules whose factories also apply to this rule.
	Children  []string
	Factories []string
	// FallbackBNF names the rule whose fallback applies when this rule has
	// no fallback factory of its own.
	FallbackBNF     string
	FallbackFactory string
	// HandleCollection allows comma separated lists.
	HandleCollection bool
	// HandleAggregate allows compound expressions (AND, +, BETWEEN, ...) to
	// extend a parsed item.
	HandleAggregate bool
	// HandleSubExpression allows a parenthesized item to hold a subquery.
	HandleSubExpression bool
}

type buildFunc func(p *parser, owner Expression, word, bnfID string, previous Expression) Expression

// ExpressionFactory creates the expressions started by its identifiers.
// Compound factories extend the previously parsed expression, which becomes
// their left operand.
type ExpressionFactory struct {
	ID          string
	Identifiers []string
	// Version is the first JPA version with the construct. Zero means all.
	Version  Version
	Compound bool
	// SubBNFs lists the rules the created expression parses its parts with.
	SubBNFs []string

	build buildFunc
}

// Registry holds the grammar rules and factories of a JPQL grammar. A
// registry is read-only once parsing starts.
type Registry struct {
	bnfs      map[string]*QueryBNF
	bnfOrder  []string
	factories map[string]*ExpressionFactory
	order     []string
	// identifiers maps reserved words to the first version reserving them.
	identifiers map[string]Version
	closures    map[string][]*ExpressionFactory
}

func NewRegistry() *Registry {
	return &Registry{
		bnfs:        map[string]*QueryBNF{},
		factories:   map[string]*ExpressionFactory{},
		identifiers: map[string]Version{},
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared JPQL grammar. It is built and validated
// on first use and must not be modified.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		r := NewDefaultRegistry()
		if err := r.Seal(); err != nil {
			panic(fmt.Sprintf("parser: invalid JPQL grammar: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

func (r *Registry) AddQueryBNF(bnf *QueryBNF) {
	if _, ok := r.bnfs[bnf.ID]; !ok {
		r.bnfOrder = append(r.bnfOrder, bnf.ID)
	}
	r.bnfs[bnf.ID] = bnf
	r.closures = nil
}

func (r *Registry) AddFactory(f *ExpressionFactory) {
	if _, ok := r.factories[f.ID]; !ok {
		r.order = append(r.order, f.ID)
	}
	r.factories[f.ID] = f
	for _, identifier := range f.Identifiers {
		for _, word := range strings.Fields(identifier) {
			r.reserve(word, f.Version)
		}
	}
	r.closures = nil
}

// AddIdentifiers reserves words that belong to expressions without a
// factory of their own, such as AS or DESC.
func (r *Registry) AddIdentifiers(version Version, words ...string) {
	for _, word := range words {
		r.reserve(word, version)
	}
}

func (r *Registry) reserve(word string, version Version) {
	word = strings.ToUpper(word)
	if word == "" || !isIdentifierStart(word[0]) {
		return
	}
	if current, ok := r.identifiers[word]; !ok || version < current {
		r.identifiers[word] = version
	}
}

func (r *Registry) QueryBNF(id string) *QueryBNF {
	return r.bnfs[id]
}

func (r *Registry) Factory(id string) *ExpressionFactory {
	return r.factories[id]
}

// IsIdentifier reports whether word is reserved in the given version.
func (r *Registry) IsIdentifier(word string, version Version) bool {
	since, ok := r.identifiers[strings.ToUpper(word)]
	return ok && version.Supports(since)
}

// Keywords returns the reserved words of version in alphabetical order.
func (r *Registry) Keywords(version Version) []string {
	var words []string
	for word, since := range r.identifiers {
		if version.Supports(since) {
			words = append(words, word)
		}
	}
	sort.Strings(words)
	return words
}

// Seal validates the registry and precomputes the factory lookups.
func (r *Registry) Seal() error {
	if err := r.Validate(); err != nil {
		return err
	}
	closures := make(map[string][]*ExpressionFactory, len(r.bnfs))
	for id := range r.bnfs {
		closures[id] = r.collectFactories(id)
	}
	r.closures = closures
	return nil
}

// factoriesOf returns the factories registered on bnfID and on the rules
// reachable through its children.
func (r *Registry) factoriesOf(bnfID string) []*ExpressionFactory {
	if r.closures != nil {
		return r.closures[bnfID]
	}
	return r.collectFactories(bnfID)
}

func (r *Registry) collectFactories(bnfID string) []*ExpressionFactory {
	var result []*ExpressionFactory
	seen := map[string]bool{}
	visited := map[string]bool{}
	var walk func(id string)
	walk = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		bnf := r.bnfs[id]
		if bnf == nil {
			return
		}
		for _, fid := range bnf.Factories {
			if f := r.factories[fid]; f != nil && !seen[fid] {
				seen[fid] = true
				result = append(result, f)
			}
		}
		for _, child := range bnf.Children {
			walk(child)
		}
	}
	walk(bnfID)
	return result
}

// ExpressionFactory returns the factory of bnfID whose identifier starts at
// the cursor of wp. word is the word at the cursor. When several
// identifiers match, the longest one wins, so NOT IN is preferred over NOT.
func (r *Registry) ExpressionFactory(bnfID string, wp *WordParser, word string, compound bool, version Version) *ExpressionFactory {
	return r.lookup(r.factoriesOf(bnfID), wp, word, compound, version)
}

// ExpressionFactoryForIdentifier looks word up in every factory regardless
// of the rule being parsed.
func (r *Registry) ExpressionFactoryForIdentifier(wp *WordParser, word string, version Version) *ExpressionFactory {
	all := make([]*ExpressionFactory, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.factories[id])
	}
	if f := r.lookup(all, wp, word, false, version); f != nil {
		return f
	}
	return r.lookup(all, wp, word, true, version)
}

func (r *Registry) lookup(factories []*ExpressionFactory, wp *WordParser, word string, compound bool, version Version) *ExpressionFactory {
	upper := strings.ToUpper(word)
	var best *ExpressionFactory
	bestEnd := -1
	for _, f := range factories {
		if f.Compound != compound || !version.Supports(f.Version) {
			continue
		}
		for _, identifier := range f.Identifiers {
			if firstWord(identifier) != upper {
				continue
			}
			if end := wp.identifierEnd(wp.Position(), identifier); end > bestEnd {
				best, bestEnd = f, end
			}
		}
	}
	return best
}

// FallbackFactory follows the fallback chain of bnfID and returns the first
// fallback factory together with the rule it is declared on.
func (r *Registry) FallbackFactory(bnfID string) (*ExpressionFactory, string) {
	visited := map[string]bool{}
	for id := bnfID; id != "" && !visited[id]; {
		visited[id] = true
		bnf := r.bnfs[id]
		if bnf == nil {
			return nil, ""
		}
		if bnf.FallbackFactory != "" {
			return r.factories[bnf.FallbackFactory], id
		}
		id = bnf.FallbackBNF
	}
	return nil, ""
}

// Identifiers returns the identifiers that can start an expression of
// bnfID, sorted. Compound identifiers are returned when compound is set.
func (r *Registry) Identifiers(bnfID string, compound bool, version Version) []string {
	seen := map[string]bool{}
	var result []string
	for _, f := range r.factoriesOf(bnfID) {
		if f.Compound != compound || !version.Supports(f.Version) {
			continue
		}
		for _, identifier := range f.Identifiers {
			if !seen[identifier] {
				seen[identifier] = true
				result = append(result, identifier)
			}
		}
	}
	sort.Strings(result)
	return result
}

// Validate checks that every referenced ID exists, that fallback chains end
// in a factory, and that every rule can create at least one expression.
func (r *Registry) Validate() error {
	var errs []error
	for _, id := range r.bnfOrder {
		bnf := r.bnfs[id]
		for _, child := range bnf.Children {
			if r.bnfs[child] == nil {
				errs = append(errs, fmt.Errorf("rule %s: unknown child rule %s", id, child))
			}
		}
		for _, fid := range bnf.Factories {
			if r.factories[fid] == nil {
				errs = append(errs, fmt.Errorf("rule %s: unknown factory %s", id, fid))
			}
		}
		if bnf.FallbackBNF != "" && r.bnfs[bnf.FallbackBNF] == nil {
			errs = append(errs, fmt.Errorf("rule %s: unknown fallback rule %s", id, bnf.FallbackBNF))
		}
		if bnf.FallbackFactory != "" && r.factories[bnf.FallbackFactory] == nil {
			errs = append(errs, fmt.Errorf("rule %s: unknown fallback factory %s", id, bnf.FallbackFactory))
		}
		if err := r.checkFallbackChain(id); err != nil {
			errs = append(errs, err)
		}
		if len(r.collectFactories(id)) == 0 {
			if f, _ := r.FallbackFactory(id); f == nil {
				errs = append(errs, fmt.Errorf("rule %s: no factory and no fallback, it can never make progress", id))
			}
		}
	}
	for _, fid := range r.order {
		f := r.factories[fid]
		if f.build == nil {
			errs = append(errs, fmt.Errorf("factory %s: no build function", fid))
		}
		for _, sub := range f.SubBNFs {
			if r.bnfs[sub] == nil {
				errs = append(errs, fmt.Errorf("factory %s: unknown rule %s", fid, sub))
			}
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) checkFallbackChain(id string) error {
	visited := map[string]bool{}
	var chain []string
	for cur := id; cur != ""; {
		if visited[cur] {
			return fmt.Errorf("rule %s: fallback cycle %s", id, strings.Join(append(chain, cur), " -> "))
		}
		visited[cur] = true
		chain = append(chain, cur)
		bnf := r.bnfs[cur]
		if bnf == nil || bnf.FallbackFactory != "" {
			return nil
		}
		cur = bnf.FallbackBNF
	}
	return nil
}

func firstWord(identifier string) string {
	if i := strings.IndexByte(identifier, ' '); i >= 0 {
		return identifier[:i]
	}
	return identifier
}
