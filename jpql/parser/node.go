package parser

// Kind identifies the concrete type of an Expression.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPQL
	KindText
	KindCollection
	KindSubExpression
	KindNull
	KindBad
	KindUnknownEnding

	KindSelectStatement
	KindSimpleSelectStatement
	KindUpdateStatement
	KindDeleteStatement

	KindSelectClause
	KindSimpleSelectClause
	KindFromClause
	KindWhereClause
	KindGroupByClause
	KindHavingClause
	KindOrderByClause
	KindUpdateClause
	KindDeleteClause
	KindOnClause

	KindIdentificationVariableDeclaration
	KindRangeVariableDeclaration
	KindCollectionMemberDeclaration
	KindJoin
	KindOrderByItem
	KindUpdateItem
	KindResultVariable
	KindConstructor
	KindObject

	KindOr
	KindAnd
	KindNot
	KindComparison
	KindBetween
	KindLike
	KindIn
	KindNullComparison
	KindEmptyCollectionComparison
	KindCollectionMember
	KindExists
	KindAllOrAny

	KindAddition
	KindSubtraction
	KindMultiplication
	KindDivision
	KindArithmeticFactor

	KindAbs
	KindSqrt
	KindMod
	KindLength
	KindLocate
	KindSize
	KindConcat
	KindSubstring
	KindTrim
	KindLower
	KindUpper
	KindAvg
	KindCount
	KindMax
	KindMin
	KindSum
	KindType
	KindIndex
	KindKey
	KindValue
	KindEntry
	KindNullIf
	KindCoalesce
	KindCase
	KindWhen
	KindFunction

	KindNumericLiteral
	KindStringLiteral
	KindInputParameter
	KindKeyword
	KindDateTime
	KindPath
	KindIdentificationVariable
	KindAbstractSchemaName
)

var kindNames = map[Kind]string{
	KindJPQL:          "JPQLExpression",
	KindText:          "Text",
	KindCollection:    "Collection",
	KindSubExpression: "SubExpression",
	KindNull:          "Null",
	KindBad:           "Bad",
	KindUnknownEnding: "UnknownEnding",

	KindSelectStatement:       "SelectStatement",
	KindSimpleSelectStatement: "SimpleSelectStatement",
	KindUpdateStatement:       "UpdateStatement",
	KindDeleteStatement:       "DeleteStatement",

	KindSelectClause:       "SelectClause",
	KindSimpleSelectClause: "SimpleSelectClause",
	KindFromClause:         "FromClause",
	KindWhereClause:        "WhereClause",
	KindGroupByClause:      "GroupByClause",
	KindHavingClause:       "HavingClause",
	KindOrderByClause:      "OrderByClause",
	KindUpdateClause:       "UpdateClause",
	KindDeleteClause:       "DeleteClause",
	KindOnClause:           "OnClause",

	KindIdentificationVariableDeclaration: "IdentificationVariableDeclaration",
	KindRangeVariableDeclaration:          "RangeVariableDeclaration",
	KindCollectionMemberDeclaration:       "CollectionMemberDeclaration",
	KindJoin:                              "Join",
	KindOrderByItem:                       "OrderByItem",
	KindUpdateItem:                        "UpdateItem",
	KindResultVariable:                    "ResultVariable",
	KindConstructor:                       "Constructor",
	KindObject:                            "Object",

	KindOr:                        "Or",
	KindAnd:                       "And",
	KindNot:                       "Not",
	KindComparison:                "Comparison",
	KindBetween:                   "Between",
	KindLike:                      "Like",
	KindIn:                        "In",
	KindNullComparison:            "NullComparison",
	KindEmptyCollectionComparison: "EmptyCollectionComparison",
	KindCollectionMember:          "CollectionMember",
	KindExists:                    "Exists",
	KindAllOrAny:                  "AllOrAny",

	KindAddition:         "Addition",
	KindSubtraction:      "Subtraction",
	KindMultiplication:   "Multiplication",
	KindDivision:         "Division",
	KindArithmeticFactor: "ArithmeticFactor",

	KindAbs:       "Abs",
	KindSqrt:      "Sqrt",
	KindMod:       "Mod",
	KindLength:    "Length",
	KindLocate:    "Locate",
	KindSize:      "Size",
	KindConcat:    "Concat",
	KindSubstring: "Substring",
	KindTrim:      "Trim",
	KindLower:     "Lower",
	KindUpper:     "Upper",
	KindAvg:       "Avg",
	KindCount:     "Count",
	KindMax:       "Max",
	KindMin:       "Min",
	KindSum:       "Sum",
	KindType:      "Type",
	KindIndex:     "Index",
	KindKey:       "Key",
	KindValue:     "Value",
	KindEntry:     "Entry",
	KindNullIf:    "NullIf",
	KindCoalesce:  "Coalesce",
	KindCase:      "Case",
	KindWhen:      "When",
	KindFunction:  "Function",

	KindNumericLiteral:         "NumericLiteral",
	KindStringLiteral:          "StringLiteral",
	KindInputParameter:         "InputParameter",
	KindKeyword:                "Keyword",
	KindDateTime:               "DateTime",
	KindPath:                   "Path",
	KindIdentificationVariable: "IdentificationVariable",
	KindAbstractSchemaName:     "AbstractSchemaName",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}
