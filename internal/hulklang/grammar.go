package hulklang

import "github.com/dekarrin/hulkc/internal/grammar"

// Nonterminal symbol names. Named after the Rust original's production
// names (generated_parser/src/grammar.rs) where a nonterminal survives
// unchanged; operator-precedence helper nonterminals the original factors
// out per operator (ConcatOp, EqIneqOp, PlusMinusBinaryOp, ...) are
// collapsed here by listing each operator terminal directly on the
// producing rule, since a ReduceFunc can read the fired terminal's own
// symbol off args.Symbols without an extra layer of indirection.
const (
	nProgram      = "Program"
	nInstrList    = "InstructionList"
	nInstr        = "Instruction"
	nDef          = "Definition"
	nTypeDef      = "TypeDef"
	nOptParams    = "OptionalParameters"
	nParams       = "Parameters"
	nParamList    = "ParameterList"
	nParam        = "Parameter"
	nOptInherits  = "OptionalInheritanceIndicator"
	nOptArgs      = "OptionalArguments"
	nArgs         = "Arguments"
	nArgList      = "ArgumentList"
	nOptMembers   = "OptionalTypeMembers"
	nMemberList   = "TypeMemberDefinitionList"
	nMember       = "TypeMemberDefinition"
	nFuncMember   = "FunctionMemberDefinition"
	nDataMember   = "DataMemberDefinition"
	nOptTypeAnn   = "OptionalTypeAnnotation"
	nTypeAnn      = "TypeAnnotation"
	nTypeNT       = "TypeNT"
	nGlobalFunc   = "GlobalFunctionDef"
	nConstDef     = "ConstantDef"
	nProtocolDef  = "ProtocolDef"
	nOptExtends   = "OptionalExtends"
	nExpr         = "Expression"
	nDestrAssign  = "DestructiveAssignment"
	nConcat       = "Concat"
	nLogicalOr    = "LogicalOr"
	nLogicalAnd   = "LogicalAnd"
	nEquation     = "Equation"
	nComparison   = "Comparison"
	nAddition     = "Addition"
	nTerm         = "Term"
	nFactor       = "Factor"
	nUnary        = "UnaryOperation"
	nComposite    = "CompositeExpression"
	nLetExpr      = "LetExpression"
	nAssignList   = "AssignmentList"
	nAssign       = "Assignment"
	nIfExpr       = "IfExpression"
	nIfTail       = "IfTail"
	nWhileExpr    = "WhileExpression"
	nForExpr      = "ForExpression"
	nAtom         = "Atom"
	nNewExpr      = "NewExpression"
	nCallExpr     = "FunctionCallExpression"
	nCall         = "FunctionCall"
	nBlockExpr    = "BlockExpression"
	nFuncMemberAx = "FunctionMemberAccess"
	nDataMemberAx = "DataMemberAccess"
	nIndexExpr    = "ListIndexingExpression"
	nVarExpr      = "VariableExpression"
	nListLitExpr  = "ListLiteralExpression"
	nListLit      = "ListLiteral"
	nNumLitExpr   = "NumberLiteralExpression"
	nBoolLitExpr  = "BooleanLiteralExpression"
	nStrLitExpr   = "StringLiteralExpression"
	nBlock        = "Block"
	nBlockBody    = "BlockBody"
	nBlockItem    = "BlockBodyItem"
)

// NewGrammar builds the concrete HULK expression/definition grammar. Its
// production shape follows the Rust original's precedence-climbing chain
// (Expression -> Concat -> LogicalOr -> LogicalAnd -> Equation ->
// Comparison -> Addition -> Term -> Factor -> UnaryOperation ->
// CompositeExpression -> Atom) with two supplemented branches the original
// never wired into any production despite lexing their keywords: IfTail
// gives `elif` a real elif-chain (nested IfElse at reduce time, see
// parser.go), and ForExpression gives `for` the loop its commented-out
// production sketch never finished.
func NewGrammar() *grammar.Grammar {
	g := grammar.New()

	for _, t := range []struct{ id, human string }{
		{TokLet, "'let'"}, {TokIf, "'if'"}, {TokElse, "'else'"}, {TokElif, "'elif'"},
		{TokWhile, "'while'"}, {TokFor, "'for'"}, {TokIn, "'in'"}, {TokNew, "'new'"},
		{TokFunction, "'function'"}, {TokType, "'type'"}, {TokInherits, "'inherits'"},
		{TokConstant, "'constant'"}, {TokExtends, "'extends'"}, {TokReturn, "'return'"},
		{TokProtocol, "'protocol'"},
		{TokNumberTy, "'Number'"}, {TokStringTy, "'String'"}, {TokBooleanTy, "'Boolean'"},
		{TokBoolLit, "boolean literal"}, {TokNumberLit, "number literal"}, {TokStringLit, "string literal"},
		{TokLpar, "'('"}, {TokRpar, "')'"}, {TokLbrace, "'{'"}, {TokRbrace, "'}'"},
		{TokLbrack, "'['"}, {TokRbrack, "']'"},
		{TokAt, "'@'"}, {TokAtAt, "'@@'"}, {TokColonEq, "':='"},
		{TokOr, "'||'"}, {TokAnd, "'&&'"}, {TokNot, "'!'"},
		{TokEqual, "'='"}, {TokEqEq, "'=='"}, {TokNotEq, "'!='"}, {TokArrow, "'=>'"},
		{TokLess, "'<'"}, {TokLessEq, "'<='"}, {TokGreater, "'>'"}, {TokGreatEq, "'>='"},
		{TokPlus, "'+'"}, {TokMinus, "'-'"}, {TokTimes, "'*'"}, {TokDiv, "'/'"},
		{TokColon, "':'"}, {TokSemi, "';'"}, {TokComma, "','"}, {TokDot, "'.'"},
		{TokIdent, "identifier"},
	} {
		g.AddTerm(t.id, t.human)
	}

	g.AddRule(nProgram, nInstrList)

	g.AddRule(nInstrList, nInstrList, nInstr)
	g.AddRule(nInstrList, nInstr)

	g.AddRule(nInstr, nDef)
	g.AddRule(nInstr, nExpr, TokSemi)

	g.AddRule(nDef, nTypeDef)
	g.AddRule(nDef, nGlobalFunc)
	g.AddRule(nDef, nConstDef)
	g.AddRule(nDef, nProtocolDef)

	g.AddRule(nProtocolDef, TokProtocol, TokIdent, nOptExtends, TokSemi)
	g.AddRule(nOptExtends, TokExtends, TokIdent)
	g.AddRule(nOptExtends)

	g.AddRule(nTypeDef, TokType, TokIdent, nOptParams, nOptInherits, TokLbrace, nOptMembers, TokRbrace)

	g.AddRule(nOptParams, nParams)
	g.AddRule(nOptParams)
	g.AddRule(nParams, TokLpar, nParamList, TokRpar)
	g.AddRule(nParams, TokLpar, TokRpar)
	g.AddRule(nParamList, nParamList, TokComma, nParam)
	g.AddRule(nParamList, nParam)
	g.AddRule(nParam, TokIdent, TokColon, nTypeNT)

	g.AddRule(nOptInherits, TokInherits, TokIdent, nOptArgs)
	g.AddRule(nOptInherits)
	g.AddRule(nOptArgs, nArgs)
	g.AddRule(nOptArgs)
	g.AddRule(nArgs, TokLpar, nArgList, TokRpar)
	g.AddRule(nArgs, TokLpar, TokRpar)
	g.AddRule(nArgList, nArgList, TokComma, nExpr)
	g.AddRule(nArgList, nExpr)

	g.AddRule(nOptMembers, nMemberList)
	g.AddRule(nOptMembers)
	g.AddRule(nMemberList, nMemberList, nMember)
	g.AddRule(nMemberList, nMember)
	g.AddRule(nMember, nFuncMember)
	g.AddRule(nMember, nDataMember)

	g.AddRule(nFuncMember, TokIdent, nParams, nTypeAnn, nBlock)
	g.AddRule(nFuncMember, TokIdent, nParams, nOptTypeAnn, TokArrow, nExpr, TokSemi)
	g.AddRule(nOptTypeAnn, nTypeAnn)
	g.AddRule(nOptTypeAnn)
	g.AddRule(nTypeAnn, TokColon, nTypeNT)
	g.AddRule(nTypeNT, nTypeNT, TokTimes)
	g.AddRule(nTypeNT, TokBooleanTy)
	g.AddRule(nTypeNT, TokStringTy)
	g.AddRule(nTypeNT, TokNumberTy)
	g.AddRule(nTypeNT, TokIdent)

	g.AddRule(nDataMember, nAssign, TokSemi)

	g.AddRule(nGlobalFunc, TokFunction, TokIdent, nParams, nTypeAnn, nBlock)
	g.AddRule(nGlobalFunc, TokFunction, TokIdent, nParams, nOptTypeAnn, TokArrow, nExpr, TokSemi)

	g.AddRule(nConstDef, TokConstant, TokIdent, nTypeAnn, TokEqual, nExpr, TokSemi)

	g.AddRule(nExpr, nDestrAssign)
	g.AddRule(nExpr, nConcat)
	g.AddRule(nDestrAssign, nAtom, TokColonEq, nExpr)

	g.AddRule(nConcat, nConcat, TokAt, nLogicalOr)
	g.AddRule(nConcat, nConcat, TokAtAt, nLogicalOr)
	g.AddRule(nConcat, nLogicalOr)

	g.AddRule(nLogicalOr, nLogicalOr, TokOr, nLogicalAnd)
	g.AddRule(nLogicalOr, nLogicalAnd)

	g.AddRule(nLogicalAnd, nLogicalAnd, TokAnd, nEquation)
	g.AddRule(nLogicalAnd, nEquation)

	g.AddRule(nEquation, nComparison, TokEqEq, nComparison)
	g.AddRule(nEquation, nComparison, TokNotEq, nComparison)
	g.AddRule(nEquation, nComparison)

	g.AddRule(nComparison, nAddition, TokLess, nAddition)
	g.AddRule(nComparison, nAddition, TokLessEq, nAddition)
	g.AddRule(nComparison, nAddition, TokGreater, nAddition)
	g.AddRule(nComparison, nAddition, TokGreatEq, nAddition)
	g.AddRule(nComparison, nAddition)

	g.AddRule(nAddition, nAddition, TokPlus, nTerm)
	g.AddRule(nAddition, nAddition, TokMinus, nTerm)
	g.AddRule(nAddition, nTerm)

	g.AddRule(nTerm, nTerm, TokTimes, nFactor)
	g.AddRule(nTerm, nTerm, TokDiv, nFactor)
	g.AddRule(nTerm, nFactor)

	g.AddRule(nFactor, nUnary)

	g.AddRule(nUnary, TokMinus, nUnary)
	g.AddRule(nUnary, TokNot, nUnary)
	g.AddRule(nUnary, nComposite)

	g.AddRule(nComposite, nLetExpr)
	g.AddRule(nComposite, nIfExpr)
	g.AddRule(nComposite, nWhileExpr)
	g.AddRule(nComposite, nForExpr)
	g.AddRule(nComposite, nAtom)

	g.AddRule(nLetExpr, TokLet, nAssignList, TokIn, nComposite)
	g.AddRule(nAssignList, nAssignList, TokComma, nAssign)
	g.AddRule(nAssignList, nAssign)
	g.AddRule(nAssign, TokIdent, nTypeAnn, TokEqual, nExpr)
	g.AddRule(nAssign, TokIdent, TokEqual, nExpr)

	g.AddRule(nIfExpr, TokIf, TokLpar, nExpr, TokRpar, nComposite, nIfTail)
	g.AddRule(nIfTail, TokElif, TokLpar, nExpr, TokRpar, nComposite, nIfTail)
	g.AddRule(nIfTail, TokElse, nComposite)

	g.AddRule(nWhileExpr, TokWhile, TokLpar, nExpr, TokRpar, nComposite)
	g.AddRule(nForExpr, TokFor, TokLpar, TokIdent, TokIn, nExpr, TokRpar, nComposite)

	g.AddRule(nAtom, TokLpar, nExpr, TokRpar)
	g.AddRule(nAtom, nNewExpr)
	g.AddRule(nAtom, nCallExpr)
	g.AddRule(nAtom, nBlockExpr)
	g.AddRule(nAtom, nFuncMemberAx)
	g.AddRule(nAtom, nDataMemberAx)
	g.AddRule(nAtom, nIndexExpr)
	g.AddRule(nAtom, nListLitExpr)
	g.AddRule(nAtom, nNumLitExpr)
	g.AddRule(nAtom, nBoolLitExpr)
	g.AddRule(nAtom, nStrLitExpr)
	g.AddRule(nAtom, nVarExpr)

	g.AddRule(nNewExpr, TokNew, nCall)
	g.AddRule(nCallExpr, nCall)
	g.AddRule(nCall, TokIdent, nArgs)
	g.AddRule(nBlockExpr, nBlock)
	g.AddRule(nFuncMemberAx, nAtom, TokDot, nCall)
	g.AddRule(nDataMemberAx, nAtom, TokDot, TokIdent)
	g.AddRule(nIndexExpr, nAtom, TokLbrack, nExpr, TokRbrack)
	g.AddRule(nVarExpr, TokIdent)

	g.AddRule(nListLitExpr, nListLit)
	g.AddRule(nListLit, TokLbrack, nArgList, TokRbrack)
	g.AddRule(nListLit, TokLbrack, TokRbrack)

	g.AddRule(nNumLitExpr, TokNumberLit)
	g.AddRule(nBoolLitExpr, TokBoolLit)
	g.AddRule(nStrLitExpr, TokStringLit)

	g.AddRule(nBlock, TokLbrace, nBlockBody, TokRbrace)
	g.AddRule(nBlockBody, nBlockBody, nBlockItem)
	g.AddRule(nBlockBody, nBlockItem)
	g.AddRule(nBlockItem, nExpr, TokSemi)
	g.AddRule(nBlockItem, TokReturn, nExpr, TokSemi)

	g.SetStart(nProgram)
	return g
}
