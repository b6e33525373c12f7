package parser

// Visitor is called back by Expression.Accept with the concrete expression.
// Embed BaseVisitor to implement only the methods of interest.
type Visitor interface {
	VisitJPQL(e *JPQLExpression)
	VisitCollection(e *CollectionExpression)
	VisitSubExpression(e *SubExpression)
	VisitNull(e *NullExpression)
	VisitBad(e *BadExpression)
	VisitUnknown(e *UnknownExpression)

	VisitSelectStatement(e *SelectStatement)
	VisitSimpleSelectStatement(e *SimpleSelectStatement)
	VisitUpdateStatement(e *UpdateStatement)
	VisitDeleteStatement(e *DeleteStatement)

	VisitSelectClause(e *SelectClause)
	VisitSimpleSelectClause(e *SimpleSelectClause)
	VisitFromClause(e *FromClause)
	VisitWhereClause(e *WhereClause)
	VisitGroupByClause(e *GroupByClause)
	VisitHavingClause(e *HavingClause)
	VisitOrderByClause(e *OrderByClause)
	VisitUpdateClause(e *UpdateClause)
	VisitDeleteClause(e *DeleteClause)
	VisitOnClause(e *OnClause)

	VisitIdentificationVariableDeclaration(e *IdentificationVariableDeclaration)
	VisitRangeVariableDeclaration(e *RangeVariableDeclaration)
	VisitCollectionMemberDeclaration(e *CollectionMemberDeclaration)
	VisitJoin(e *Join)
	VisitOrderByItem(e *OrderByItem)
	VisitUpdateItem(e *UpdateItem)
	VisitResultVariable(e *ResultVariable)
	VisitConstructor(e *ConstructorExpression)
	VisitObject(e *ObjectExpression)

	VisitOr(e *OrExpression)
	VisitAnd(e *AndExpression)
	VisitNot(e *NotExpression)
	VisitComparison(e *ComparisonExpression)
	VisitBetween(e *BetweenExpression)
	VisitLike(e *LikeExpression)
	VisitIn(e *InExpression)
	VisitNullComparison(e *NullComparisonExpression)
	VisitEmptyCollectionComparison(e *EmptyCollectionComparisonExpression)
	VisitCollectionMember(e *CollectionMemberExpression)
	VisitExists(e *ExistsExpression)
	VisitAllOrAny(e *AllOrAnyExpression)

	VisitAddition(e *AdditionExpression)
	VisitSubtraction(e *SubtractionExpression)
	VisitMultiplication(e *MultiplicationExpression)
	VisitDivision(e *DivisionExpression)
	VisitArithmeticFactor(e *ArithmeticFactor)

	VisitAbs(e *AbsExpression)
	VisitSqrt(e *SqrtExpression)
	VisitMod(e *ModExpression)
	VisitLength(e *LengthExpression)
	VisitLocate(e *LocateExpression)
	VisitSize(e *SizeExpression)
	VisitConcat(e *ConcatExpression)
	VisitSubstring(e *SubstringExpression)
	VisitTrim(e *TrimExpression)
	VisitLower(e *LowerExpression)
	VisitUpper(e *UpperExpression)
	VisitAvg(e *AvgFunction)
	VisitCount(e *CountFunction)
	VisitMax(e *MaxFunction)
	VisitMin(e *MinFunction)
	VisitSum(e *SumFunction)
	VisitType(e *TypeExpression)
	VisitIndex(e *IndexExpression)
	VisitKey(e *KeyExpression)
	VisitValue(e *ValueExpression)
	VisitEntry(e *EntryExpression)
	VisitNullIf(e *NullIfExpression)
	VisitCoalesce(e *CoalesceExpression)
	VisitCase(e *CaseExpression)
	VisitWhen(e *WhenClause)
	VisitFunction(e *FunctionExpression)

	VisitNumericLiteral(e *NumericLiteral)
	VisitStringLiteral(e *StringLiteral)
	VisitInputParameter(e *InputParameter)
	VisitKeyword(e *KeywordExpression)
	VisitDateTime(e *DateTime)
	VisitPath(e *PathExpression)
	VisitIdentificationVariable(e *IdentificationVariable)
	VisitAbstractSchemaName(e *AbstractSchemaName)
}

// BaseVisitor implements Visitor with methods that do nothing.
type BaseVisitor struct{}

func (BaseVisitor) VisitJPQL(*JPQLExpression)             {}
func (BaseVisitor) VisitCollection(*CollectionExpression) {}
func (BaseVisitor) VisitSubExpression(*SubExpression)     {}
func (BaseVisitor) VisitNull(*NullExpression)             {}
func (BaseVisitor) VisitBad(*BadExpression)               {}
func (BaseVisitor) VisitUnknown(*UnknownExpression)       {}

func (BaseVisitor) VisitSelectStatement(*SelectStatement)             {}
func (BaseVisitor) VisitSimpleSelectStatement(*SimpleSelectStatement) {}
func (BaseVisitor) VisitUpdateStatement(*UpdateStatement)             {}
func (BaseVisitor) VisitDeleteStatement(*DeleteStatement)             {}

func (BaseVisitor) VisitSelectClause(*SelectClause)             {}
func (BaseVisitor) VisitSimpleSelectClause(*SimpleSelectClause) {}
func (BaseVisitor) VisitFromClause(*FromClause)                 {}
func (BaseVisitor) VisitWhereClause(*WhereClause)               {}
func (BaseVisitor) VisitGroupByClause(*GroupByClause)           {}
func (BaseVisitor) VisitHavingClause(*HavingClause)             {}
func (BaseVisitor) VisitOrderByClause(*OrderByClause)           {}
func (BaseVisitor) VisitUpdateClause(*UpdateClause)             {}
func (BaseVisitor) VisitDeleteClause(*DeleteClause)             {}
func (BaseVisitor) VisitOnClause(*OnClause)                     {}

func (BaseVisitor) VisitIdentificationVariableDeclaration(*IdentificationVariableDeclaration) {}
func (BaseVisitor) VisitRangeVariableDeclaration(*RangeVariableDeclaration)                   {}
func (BaseVisitor) VisitCollectionMemberDeclaration(*CollectionMemberDeclaration)             {}
func (BaseVisitor) VisitJoin(*Join)                                                           {}
func (BaseVisitor) VisitOrderByItem(*OrderByItem)                                             {}
func (BaseVisitor) VisitUpdateItem(*UpdateItem)                                               {}
func (BaseVisitor) VisitResultVariable(*ResultVariable)                                       {}
func (BaseVisitor) VisitConstructor(*ConstructorExpression)                                   {}
func (BaseVisitor) VisitObject(*ObjectExpression)                                             {}

func (BaseVisitor) VisitOr(*OrExpression)                                             {}
func (BaseVisitor) VisitAnd(*AndExpression)                                           {}
func (BaseVisitor) VisitNot(*NotExpression)                                           {}
func (BaseVisitor) VisitComparison(*ComparisonExpression)                             {}
func (BaseVisitor) VisitBetween(*BetweenExpression)                                   {}
func (BaseVisitor) VisitLike(*LikeExpression)                                         {}
func (BaseVisitor) VisitIn(*InExpression)                                             {}
func (BaseVisitor) VisitNullComparison(*NullComparisonExpression)                     {}
func (BaseVisitor) VisitEmptyCollectionComparison(*EmptyCollectionComparisonExpression) {}
func (BaseVisitor) VisitCollectionMember(*CollectionMemberExpression)                 {}
func (BaseVisitor) VisitExists(*ExistsExpression)                                     {}
func (BaseVisitor) VisitAllOrAny(*AllOrAnyExpression)                                 {}

func (BaseVisitor) VisitAddition(*AdditionExpression)             {}
func (BaseVisitor) VisitSubtraction(*SubtractionExpression)       {}
func (BaseVisitor) VisitMultiplication(*MultiplicationExpression) {}
func (BaseVisitor) VisitDivision(*DivisionExpression)             {}
func (BaseVisitor) VisitArithmeticFactor(*ArithmeticFactor)       {}

func (BaseVisitor) VisitAbs(*AbsExpression)             {}
func (BaseVisitor) VisitSqrt(*SqrtExpression)           {}
func (BaseVisitor) VisitMod(*ModExpression)             {}
func (BaseVisitor) VisitLength(*LengthExpression)       {}
func (BaseVisitor) VisitLocate(*LocateExpression)       {}
func (BaseVisitor) VisitSize(*SizeExpression)           {}
func (BaseVisitor) VisitConcat(*ConcatExpression)       {}
func (BaseVisitor) VisitSubstring(*SubstringExpression) {}
func (BaseVisitor) VisitTrim(*TrimExpression)           {}
func (BaseVisitor) VisitLower(*LowerExpression)         {}
func (BaseVisitor) VisitUpper(*UpperExpression)         {}
func (BaseVisitor) VisitAvg(*AvgFunction)               {}
func (BaseVisitor) VisitCount(*CountFunction)           {}
func (BaseVisitor) VisitMax(*MaxFunction)               {}
func (BaseVisitor) VisitMin(*MinFunction)               {}
func (BaseVisitor) VisitSum(*SumFunction)               {}
func (BaseVisitor) VisitType(*TypeExpression)           {}
func (BaseVisitor) VisitIndex(*IndexExpression)         {}
func (BaseVisitor) VisitKey(*KeyExpression)             {}
func (BaseVisitor) VisitValue(*ValueExpression)         {}
func (BaseVisitor) VisitEntry(*EntryExpression)         {}
func (BaseVisitor) VisitNullIf(*NullIfExpression)       {}
func (BaseVisitor) VisitCoalesce(*CoalesceExpression)   {}
func (BaseVisitor) VisitCase(*CaseExpression)           {}
func (BaseVisitor) VisitWhen(*WhenClause)               {}
func (BaseVisitor) VisitFunction(*FunctionExpression)   {}

func (BaseVisitor) VisitNumericLiteral(*NumericLiteral)                 {}
func (BaseVisitor) VisitStringLiteral(*StringLiteral)                   {}
func (BaseVisitor) VisitInputParameter(*InputParameter)                 {}
func (BaseVisitor) VisitKeyword(*KeywordExpression)                     {}
func (BaseVisitor) VisitDateTime(*DateTime)                             {}
func (BaseVisitor) VisitPath(*PathExpression)                           {}
func (BaseVisitor) VisitIdentificationVariable(*IdentificationVariable) {}
func (BaseVisitor) VisitAbstractSchemaName(*AbstractSchemaName)         {}

// Walk visits e and then, depth first, every sub-expression below it.
func Walk(v Visitor, e Expression) {
	Inspect(e, func(e Expression) bool {
		e.Accept(v)
		return true
	})
}
