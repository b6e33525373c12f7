// Package parser implements a tolerant recursive-descent parser for the Java
// Persistence Query Language.
//
// A query is parsed against a Registry of grammar rules (QueryBNF) and the
// factories that build expressions for the identifiers of each rule. The
// resulting tree keeps every character of the input: ParsedText of the root
// is the query itself. In tolerant mode, enabled with WithTolerant, the
// parser recovers from invalid or incomplete input so that a tree is
// produced for any text, which is what content assist works on:
//
//	root := parser.ParseQuery("SELECT e FROM Employee e WHERE e.name = :name", parser.WithTolerant())
//	pos, err := root.PopulatePosition(30)
//
// Expressions are immutable once ParseQuery returns and can be shared
// between goroutines.
package parser
