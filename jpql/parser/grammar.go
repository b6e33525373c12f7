package parser

// IDs of the rules of the default grammar.
const (
	StatementBNF          = "ql_statement"
	SubqueryBNF           = "subquery"
	SelectClauseBNF       = "select_clause"
	SimpleSelectClauseBNF = "simple_select_clause"
	FromClauseBNF         = "from_clause"
	WhereClauseBNF        = "where_clause"
	GroupByClauseBNF      = "groupby_clause"
	HavingClauseBNF       = "having_clause"
	OrderByClauseBNF      = "orderby_clause"
	UpdateClauseBNF       = "update_clause"
	DeleteClauseBNF       = "delete_clause"
	JoinBNF               = "join"
	OnClauseBNF           = "on_clause"
	WhenClauseBNF         = "when_clause"

	SelectExpressionBNF         = "select_expression"
	SimpleSelectExpressionBNF   = "simple_select_expression"
	ConstructorItemBNF          = "constructor_item"
	ResultVariableBNF           = "result_variable"
	FromDeclarationBNF          = "from_declaration"
	RangeVariableDeclarationBNF = "range_variable_declaration"
	AbstractSchemaNameBNF       = "abstract_schema_name"
	IdentificationVariableBNF   = "identification_variable"
	JoinAssociationPathBNF      = "join_association_path"
	CollectionValuedPathBNF     = "collection_valued_path"
	GroupByItemBNF              = "groupby_item"
	OrderByItemBNF              = "orderby_item"
	OrderByItemExpressionBNF    = "orderby_item_expression"
	UpdateItemBNF               = "update_item"
	UpdateItemPathBNF           = "update_item_path"
	NewValueBNF                 = "new_value"

	ConditionalExpressionBNF       = "conditional_expression"
	ConditionalTermBNF             = "conditional_term"
	ConditionalFactorBNF           = "conditional_factor"
	ConditionalPrimaryBNF          = "conditional_primary"
	SimpleConditionalExpressionBNF = "simple_conditional_expression"
	ComparisonExpressionRightBNF   = "comparison_expression_right"
	BetweenBoundBNF                = "between_bound"
	PatternValueBNF                = "pattern_value"
	EscapeCharacterBNF             = "escape_character"
	InItemBNF                      = "in_item"
	InParameterBNF                 = "in_parameter"

	ScalarExpressionBNF           = "scalar_expression"
	ArithmeticExpressionBNF       = "arithmetic_expression"
	ArithmeticTermBNF             = "arithmetic_term"
	ArithmeticFactorBNF           = "arithmetic_factor"
	ArithmeticPrimaryBNF          = "arithmetic_primary"
	SimpleArithmeticExpressionBNF = "simple_arithmetic_expression"
	StringExpressionBNF           = "string_expression"
	TrimCharacterBNF              = "trim_character"
	ConcatItemsBNF                = "concat_items"
	CoalesceItemsBNF              = "coalesce_items"
	FunctionNameBNF               = "function_name"
	FunctionItemsBNF              = "function_items"
	AggregateArgumentBNF          = "aggregate_argument"
	CaseOperandBNF                = "case_operand"
	LiteralBNF                    = "literal"
)

// NewDefaultRegistry builds a fresh, unsealed registry with the JPQL
// grammar. Most callers want the shared DefaultRegistry instead.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	registerBNFs(r)
	registerFactories(r)
	r.AddIdentifiers(0,
		"AS", "DISTINCT", "BY", "OF", "ASC", "DESC", "OUTER", "FETCH",
		"WHEN", "THEN", "ELSE", "END", "EMPTY", "ESCAPE", "SET",
		"LEADING", "TRAILING", "BOTH",
	)
	return r
}

func registerBNFs(r *Registry) {
	// expression rules list their factories and fall back to literals; a
	// subquery is only accepted between parentheses
	expression := func(id string, children, factories []string, collection, aggregate bool) {
		r.AddQueryBNF(&QueryBNF{
			ID:                  id,
			Children:            children,
			Factories:           factories,
			FallbackFactory:     "literal",
			HandleCollection:    collection,
			HandleAggregate:     aggregate,
			HandleSubExpression: true,
		})
	}
	// single-factory rules only ever create one kind of expression
	single := func(id, factory string) {
		r.AddQueryBNF(&QueryBNF{ID: id, Factories: []string{factory}})
	}
	// word rules accept a single literal word
	word := func(id string) {
		r.AddQueryBNF(&QueryBNF{ID: id, FallbackBNF: LiteralBNF})
	}
	scalar := []string{ScalarExpressionBNF}

	r.AddQueryBNF(&QueryBNF{
		ID:        StatementBNF,
		Factories: []string{"select_statement", "update_statement", "delete_statement"},
	})
	single(SubqueryBNF, "simple_select_statement")
	single(SelectClauseBNF, "select_clause")
	single(SimpleSelectClauseBNF, "simple_select_clause")
	single(FromClauseBNF, "from_clause")
	single(WhereClauseBNF, "where_clause")
	single(GroupByClauseBNF, "groupby_clause")
	single(HavingClauseBNF, "having_clause")
	single(OrderByClauseBNF, "orderby_clause")
	single(UpdateClauseBNF, "update_clause")
	single(DeleteClauseBNF, "delete_clause")
	single(JoinBNF, "join")
	single(OnClauseBNF, "on_clause")
	single(WhenClauseBNF, "when_clause")

	expression(SelectExpressionBNF, scalar, []string{"result_variable", "object", "constructor"}, true, true)
	expression(SimpleSelectExpressionBNF, scalar, nil, false, true)
	expression(ConstructorItemBNF, scalar, nil, true, true)
	r.AddQueryBNF(&QueryBNF{
		ID:               FromDeclarationBNF,
		Factories:        []string{"collection_member_declaration"},
		FallbackFactory:  "identification_variable_declaration",
		HandleCollection: true,
	})
	r.AddQueryBNF(&QueryBNF{
		ID:              RangeVariableDeclarationBNF,
		FallbackFactory: "range_variable_declaration",
	})
	expression(GroupByItemBNF, scalar, nil, true, false)
	r.AddQueryBNF(&QueryBNF{ID: OrderByItemBNF, FallbackFactory: "orderby_item", HandleCollection: true})
	expression(OrderByItemExpressionBNF, scalar, nil, false, true)
	r.AddQueryBNF(&QueryBNF{ID: UpdateItemBNF, FallbackFactory: "update_item", HandleCollection: true})
	expression(NewValueBNF, scalar, nil, false, true)

	expression(ConditionalExpressionBNF, []string{ConditionalTermBNF}, []string{"or"}, false, true)
	expression(ConditionalTermBNF, []string{ConditionalFactorBNF}, []string{"and"}, false, true)
	expression(ConditionalFactorBNF, []string{ConditionalPrimaryBNF}, []string{"not"}, false, true)
	expression(ConditionalPrimaryBNF, []string{SimpleConditionalExpressionBNF}, nil, false, true)
	expression(SimpleConditionalExpressionBNF, scalar, []string{
		"comparison", "between", "like", "in", "is", "collection_member", "exists",
	}, false, true)
	expression(ComparisonExpressionRightBNF, scalar, []string{"all_or_any"}, false, true)
	expression(BetweenBoundBNF, scalar, nil, false, true)
	expression(PatternValueBNF, scalar, nil, false, false)
	expression(InItemBNF, scalar, nil, true, true)

	expression(ScalarExpressionBNF, []string{ArithmeticExpressionBNF}, nil, false, true)
	expression(ArithmeticExpressionBNF, []string{ArithmeticTermBNF}, []string{"addition", "subtraction"}, false, true)
	expression(ArithmeticTermBNF, []string{ArithmeticFactorBNF}, []string{"multiplication", "division"}, false, true)
	expression(ArithmeticFactorBNF, []string{ArithmeticPrimaryBNF}, []string{"arithmetic_factor"}, false, false)
	expression(ArithmeticPrimaryBNF, nil, []string{
		"abs", "sqrt", "mod", "length", "locate", "size", "concat", "substring",
		"trim", "lower", "upper", "avg", "count", "max", "min", "sum",
		"type", "index", "key", "value", "entry", "nullif", "coalesce",
		"case", "function", "keyword", "datetime",
	}, false, false)
	expression(SimpleArithmeticExpressionBNF, []string{ArithmeticExpressionBNF}, nil, false, true)
	expression(StringExpressionBNF, scalar, nil, false, true)
	expression(ConcatItemsBNF, scalar, nil, true, true)
	expression(CoalesceItemsBNF, scalar, nil, true, true)
	expression(FunctionItemsBNF, scalar, nil, true, true)
	expression(AggregateArgumentBNF, scalar, nil, false, true)
	expression(CaseOperandBNF, scalar, nil, false, true)

	r.AddQueryBNF(&QueryBNF{ID: LiteralBNF, FallbackFactory: "literal"})
	word(ResultVariableBNF)
	word(AbstractSchemaNameBNF)
	word(IdentificationVariableBNF)
	word(JoinAssociationPathBNF)
	word(CollectionValuedPathBNF)
	word(UpdateItemPathBNF)
	word(EscapeCharacterBNF)
	word(InParameterBNF)
	word(TrimCharacterBNF)
	word(FunctionNameBNF)
}

func registerFactories(r *Registry) {
	add := func(id string, identifiers []string, version Version, compound bool, subs []string, build buildFunc) {
		r.AddFactory(&ExpressionFactory{
			ID:          id,
			Identifiers: identifiers,
			Version:     version,
			Compound:    compound,
			SubBNFs:     subs,
			build:       build,
		})
	}
	words := func(w ...string) []string { return w }

	// statements and clauses
	add("select_statement", words("SELECT"), 0, false,
		words(SelectClauseBNF, FromClauseBNF, WhereClauseBNF, GroupByClauseBNF, HavingClauseBNF, OrderByClauseBNF),
		buildSelectStatement)
	add("update_statement", words("UPDATE"), 0, false, words(UpdateClauseBNF, WhereClauseBNF), buildUpdateStatement)
	add("delete_statement", words("DELETE"), 0, false, words(DeleteClauseBNF, WhereClauseBNF), buildDeleteStatement)
	add("simple_select_statement", words("SELECT"), 0, false,
		words(SimpleSelectClauseBNF, FromClauseBNF, WhereClauseBNF, GroupByClauseBNF, HavingClauseBNF),
		buildSimpleSelectStatement)
	add("select_clause", words("SELECT"), 0, false, words(SelectExpressionBNF), buildSelectClause)
	add("simple_select_clause", words("SELECT"), 0, false, words(SimpleSelectExpressionBNF), buildSimpleSelectClause)
	add("from_clause", words("FROM"), 0, false, words(FromDeclarationBNF), buildFromClause)
	add("where_clause", words("WHERE"), 0, false, words(ConditionalExpressionBNF), buildWhereClause)
	add("groupby_clause", words("GROUP BY"), 0, false, words(GroupByItemBNF), buildGroupByClause)
	add("having_clause", words("HAVING"), 0, false, words(ConditionalExpressionBNF), buildHavingClause)
	add("orderby_clause", words("ORDER BY"), 0, false, words(OrderByItemBNF), buildOrderByClause)
	add("update_clause", words("UPDATE"), 0, false, words(RangeVariableDeclarationBNF, UpdateItemBNF), buildUpdateClause)
	add("delete_clause", words("DELETE"), 0, false, words(RangeVariableDeclarationBNF), buildDeleteClause)
	add("on_clause", words("ON"), Version2_1, false, words(ConditionalExpressionBNF), buildOnClause)
	add("when_clause", words("WHEN"), Version2_0, false, words(ConditionalExpressionBNF, ScalarExpressionBNF), buildWhenClause)

	// from
	add("identification_variable_declaration", nil, 0, false,
		words(RangeVariableDeclarationBNF, JoinBNF), buildIdentificationVariableDeclaration)
	add("range_variable_declaration", nil, 0, false,
		words(AbstractSchemaNameBNF, IdentificationVariableBNF), buildRangeVariableDeclaration)
	add("collection_member_declaration", words("IN"), 0, false,
		words(CollectionValuedPathBNF, IdentificationVariableBNF), buildCollectionMemberDeclaration)
	add("join", joinIdentifiers, 0, false,
		words(JoinAssociationPathBNF, IdentificationVariableBNF, OnClauseBNF), buildJoin)
	add("orderby_item", nil, 0, false, words(OrderByItemExpressionBNF), buildOrderByItem)
	add("update_item", nil, 0, false, words(UpdateItemPathBNF, NewValueBNF), buildUpdateItem)

	// select items
	add("result_variable", words("AS"), 0, true, words(ResultVariableBNF), buildResultVariable)
	add("constructor", words("NEW"), 0, false, words(ConstructorItemBNF), buildConstructor)
	r.AddFactory(function("object", "OBJECT", 0,
		func() encapsulatedExpression { return &ObjectExpression{} }, IdentificationVariableBNF))

	// conditional
	add("or", words("OR"), 0, true, words(ConditionalTermBNF), buildOr)
	add("and", words("AND"), 0, true, words(ConditionalFactorBNF), buildAnd)
	add("not", words("NOT"), 0, false, words(ConditionalPrimaryBNF), buildNot)
	add("comparison", comparisonOperators, 0, true, words(ComparisonExpressionRightBNF), buildComparison)
	add("between", words("BETWEEN", "NOT BETWEEN"), 0, true, words(BetweenBoundBNF), buildBetween)
	add("like", words("LIKE", "NOT LIKE"), 0, true, words(PatternValueBNF, EscapeCharacterBNF), buildLike)
	add("in", words("IN", "NOT IN"), 0, true, words(InItemBNF, InParameterBNF), buildIn)
	add("is", words("IS"), 0, true, nil, buildIs)
	add("collection_member", memberIdentifiers, 0, true, words(CollectionValuedPathBNF), buildCollectionMember)
	r.AddFactory(function("exists", "EXISTS", 0,
		func() encapsulatedExpression { return &ExistsExpression{} }, SubqueryBNF))
	all := function("all_or_any", "ALL", 0,
		func() encapsulatedExpression { return &AllOrAnyExpression{} }, SubqueryBNF)
	all.Identifiers = words("ALL", "ANY", "SOME")
	r.AddFactory(all)

	// arithmetic
	add("addition", words("+"), 0, true, words(ArithmeticTermBNF), buildAddition)
	add("subtraction", words("-"), 0, true, words(ArithmeticTermBNF), buildSubtraction)
	add("multiplication", words("*"), 0, true, words(ArithmeticFactorBNF), buildMultiplication)
	add("division", words("/"), 0, true, words(ArithmeticFactorBNF), buildDivision)
	add("arithmetic_factor", words("+", "-"), 0, false, words(ArithmeticPrimaryBNF), buildArithmeticFactor)

	// functions
	for _, f := range []*ExpressionFactory{
		function("abs", "ABS", 0, func() encapsulatedExpression { return &AbsExpression{} }, SimpleArithmeticExpressionBNF),
		function("sqrt", "SQRT", 0, func() encapsulatedExpression { return &SqrtExpression{} }, SimpleArithmeticExpressionBNF),
		function("mod", "MOD", 0, func() encapsulatedExpression { return &ModExpression{} },
			SimpleArithmeticExpressionBNF, SimpleArithmeticExpressionBNF),
		function("length", "LENGTH", 0, func() encapsulatedExpression { return &LengthExpression{} }, StringExpressionBNF),
		function("locate", "LOCATE", 0, func() encapsulatedExpression { return &LocateExpression{} },
			StringExpressionBNF, StringExpressionBNF, SimpleArithmeticExpressionBNF),
		function("size", "SIZE", 0, func() encapsulatedExpression { return &SizeExpression{} }, CollectionValuedPathBNF),
		function("concat", "CONCAT", 0, func() encapsulatedExpression { return &ConcatExpression{} }, ConcatItemsBNF),
		function("substring", "SUBSTRING", 0, func() encapsulatedExpression { return &SubstringExpression{} },
			StringExpressionBNF, SimpleArithmeticExpressionBNF, SimpleArithmeticExpressionBNF),
		function("lower", "LOWER", 0, func() encapsulatedExpression { return &LowerExpression{} }, StringExpressionBNF),
		function("upper", "UPPER", 0, func() encapsulatedExpression { return &UpperExpression{} }, StringExpressionBNF),
		aggregate("avg", "AVG", func() encapsulatedExpression { return &AvgFunction{} }),
		aggregate("count", "COUNT", func() encapsulatedExpression { return &CountFunction{} }),
		aggregate("max", "MAX", func() encapsulatedExpression { return &MaxFunction{} }),
		aggregate("min", "MIN", func() encapsulatedExpression { return &MinFunction{} }),
		aggregate("sum", "SUM", func() encapsulatedExpression { return &SumFunction{} }),
		function("type", "TYPE", Version2_0, func() encapsulatedExpression { return &TypeExpression{} }, IdentificationVariableBNF),
		function("index", "INDEX", Version2_0, func() encapsulatedExpression { return &IndexExpression{} }, IdentificationVariableBNF),
		function("key", "KEY", Version2_0, func() encapsulatedExpression { return &KeyExpression{} }, IdentificationVariableBNF),
		function("value", "VALUE", Version2_0, func() encapsulatedExpression { return &ValueExpression{} }, IdentificationVariableBNF),
		function("entry", "ENTRY", Version2_0, func() encapsulatedExpression { return &EntryExpression{} }, IdentificationVariableBNF),
		function("nullif", "NULLIF", Version2_0, func() encapsulatedExpression { return &NullIfExpression{} },
			ScalarExpressionBNF, ScalarExpressionBNF),
		function("coalesce", "COALESCE", Version2_0, func() encapsulatedExpression { return &CoalesceExpression{} }, CoalesceItemsBNF),
		function("function", "FUNCTION", Version2_1, func() encapsulatedExpression { return &FunctionExpression{} },
			FunctionNameBNF, FunctionItemsBNF),
	} {
		r.AddFactory(f)
	}
	add("trim", words("TRIM"), 0, false, words(TrimCharacterBNF, StringExpressionBNF), buildTrim)
	add("case", words("CASE"), Version2_0, false, words(CaseOperandBNF, WhenClauseBNF, ScalarExpressionBNF), buildCase)

	// primaries
	add("keyword", words("TRUE", "FALSE", "NULL"), 0, false, nil, buildKeyword)
	add("datetime", words("CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP"), 0, false, nil, buildDateTime)
	add("literal", nil, 0, false, nil, buildLiteral)
}
