package hulklang

import (
	"strconv"
	"strings"

	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/dekarrin/hulkc/internal/grammar"
	"github.com/dekarrin/hulkc/internal/lex"
	"github.com/dekarrin/hulkc/internal/parse"
)

func tok(args parse.ReduceArgs[*value], i int) lex.Token { return args.Symbols[i].Token }
func val(args parse.ReduceArgs[*value], i int) *value    { return args.Symbols[i].Value }

// unescapeString strips the surrounding quotes a StringLit token carries
// and resolves `\x` escapes to the literal character x, the same leniency
// the lexer's `"(\\.|[^"\\])*"` pattern extends to the escape itself.
func unescapeString(lexeme string) string {
	inner := lexeme[1 : len(lexeme)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			b.WriteByte(inner[i])
			continue
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}

// NewHULKParser builds a parser over NewGrammar with a reducer registered
// for every production, producing an *ast.Program from a token stream.
func NewHULKParser() (*parse.Parser[*value], error) {
	g := NewGrammar()
	p, err := parse.NewParser[*value](*g)
	if err != nil {
		return nil, err
	}
	registerReducers(p)
	return p, nil
}

// NewHULKParserFromTable rebuilds a parser around a previously-cached LALR
// table, registering the same reducers as NewHULKParser but skipping the
// automaton/LALR construction NewParser would otherwise redo. g must be the
// grammar the cached table was built from (NewGrammar() is deterministic, so
// callers reuse it freely).
func NewHULKParserFromTable(g grammar.Grammar, table parse.LRParseTable) (*parse.Parser[*value], error) {
	p, err := parse.NewParserWithTable[*value](g, table)
	if err != nil {
		return nil, err
	}
	registerReducers(p)
	return p, nil
}

func registerReducers(p *parse.Parser[*value]) {
	p.RegisterReducer(nProgram, []string{nInstrList}, func(args parse.ReduceArgs[*value]) *value {
		v := val(args, 0)
		prog := ast.Program{}
		for _, instr := range v.defList {
			prog.Definitions = append(prog.Definitions, instr)
		}
		prog.Expressions = v.exprList
		return &value{program: prog}
	})

	// InstructionList accumulates into the same value's defList/exprList
	// pair, keeping definitions and top-level expressions in the two
	// slices ast.Program already separates them into (spec §4.4's
	// "definitions" and "the top-level expressions @main evaluates").
	p.RegisterReducer(nInstrList, []string{nInstrList, nInstr}, func(args parse.ReduceArgs[*value]) *value {
		acc := val(args, 0)
		item := val(args, 1)
		if item.def != nil {
			acc.defList = append(acc.defList, item.def)
		} else {
			acc.exprList = append(acc.exprList, item.expr)
		}
		return acc
	})
	p.RegisterReducer(nInstrList, []string{nInstr}, func(args parse.ReduceArgs[*value]) *value {
		item := val(args, 0)
		acc := &value{}
		if item.def != nil {
			acc.defList = append(acc.defList, item.def)
		} else {
			acc.exprList = append(acc.exprList, item.expr)
		}
		return acc
	})

	p.RegisterReducer(nInstr, []string{nDef}, func(args parse.ReduceArgs[*value]) *value {
		return &value{def: val(args, 0).def}
	})
	p.RegisterReducer(nInstr, []string{nExpr, TokSemi}, func(args parse.ReduceArgs[*value]) *value {
		return &value{expr: val(args, 0).expr}
	})

	passThruDef := func(args parse.ReduceArgs[*value]) *value { return &value{def: val(args, 0).def} }
	p.RegisterReducer(nDef, []string{nTypeDef}, passThruDef)
	p.RegisterReducer(nDef, []string{nGlobalFunc}, passThruDef)
	p.RegisterReducer(nDef, []string{nConstDef}, passThruDef)
	p.RegisterReducer(nDef, []string{nProtocolDef}, passThruDef)

	p.RegisterReducer(nProtocolDef, []string{TokProtocol, TokIdent, nOptExtends, TokSemi}, func(args parse.ReduceArgs[*value]) *value {
		name := tok(args, 1).Lexeme()
		extends := val(args, 2).ident
		sp := spanBetween(spanOfTok(tok(args, 0)), spanOfTok(tok(args, 3)))
		return &value{def: &ast.ProtocolDef{Name: name, Extends: extends, Span_: sp}}
	})
	p.RegisterReducer(nOptExtends, []string{TokExtends, TokIdent}, func(args parse.ReduceArgs[*value]) *value {
		return &value{ident: tok(args, 1).Lexeme()}
	})
	p.RegisterReducer(nOptExtends, []string{}, func(args parse.ReduceArgs[*value]) *value { return &value{} })

	p.RegisterReducer(nTypeDef, []string{TokType, TokIdent, nOptParams, nOptInherits, TokLbrace, nOptMembers, TokRbrace},
		func(args parse.ReduceArgs[*value]) *value {
			name := tok(args, 1).Lexeme()
			params := val(args, 2).paramList
			inh := val(args, 3).inherits
			members := val(args, 5).members
			sp := spanBetween(spanOfTok(tok(args, 0)), spanOfTok(tok(args, 6)))

			td := &ast.TypeDef{
				Name:              name,
				ConstructorParams: params,
				Fields:            members.Fields,
				Methods:           members.Methods,
				Span_:             sp,
			}
			if inh != nil {
				td.ParentName = inh.Parent
				td.ParentArgs = inh.Args
			}
			return &value{def: td}
		})

	p.RegisterReducer(nOptParams, []string{nParams}, func(args parse.ReduceArgs[*value]) *value { return val(args, 0) })
	p.RegisterReducer(nOptParams, []string{}, func(args parse.ReduceArgs[*value]) *value { return &value{} })
	p.RegisterReducer(nParams, []string{TokLpar, nParamList, TokRpar}, func(args parse.ReduceArgs[*value]) *value {
		return &value{paramList: val(args, 1).paramList}
	})
	p.RegisterReducer(nParams, []string{TokLpar, TokRpar}, func(args parse.ReduceArgs[*value]) *value { return &value{} })
	p.RegisterReducer(nParamList, []string{nParamList, TokComma, nParam}, func(args parse.ReduceArgs[*value]) *value {
		acc := val(args, 0)
		acc.paramList = append(acc.paramList, val(args, 2).param)
		return acc
	})
	p.RegisterReducer(nParamList, []string{nParam}, func(args parse.ReduceArgs[*value]) *value {
		return &value{paramList: []ast.Param{val(args, 0).param}}
	})
	p.RegisterReducer(nParam, []string{TokIdent, TokColon, nTypeNT}, func(args parse.ReduceArgs[*value]) *value {
		return &value{param: ast.Param{
			Name:       tok(args, 0).Lexeme(),
			Annotation: val(args, 2).typeName,
			Span:       spanOfTok(tok(args, 0)),
		}}
	})

	p.RegisterReducer(nOptInherits, []string{TokInherits, TokIdent, nOptArgs}, func(args parse.ReduceArgs[*value]) *value {
		return &value{inherits: &inheritance{Parent: tok(args, 1).Lexeme(), Args: val(args, 2).exprList}}
	})
	p.RegisterReducer(nOptInherits, []string{}, func(args parse.ReduceArgs[*value]) *value { return &value{} })
	p.RegisterReducer(nOptArgs, []string{nArgs}, func(args parse.ReduceArgs[*value]) *value { return val(args, 0) })
	p.RegisterReducer(nOptArgs, []string{}, func(args parse.ReduceArgs[*value]) *value { return &value{} })
	p.RegisterReducer(nArgs, []string{TokLpar, nArgList, TokRpar}, func(args parse.ReduceArgs[*value]) *value {
		return &value{exprList: val(args, 1).exprList}
	})
	p.RegisterReducer(nArgs, []string{TokLpar, TokRpar}, func(args parse.ReduceArgs[*value]) *value { return &value{} })
	p.RegisterReducer(nArgList, []string{nArgList, TokComma, nExpr}, func(args parse.ReduceArgs[*value]) *value {
		acc := val(args, 0)
		acc.exprList = append(acc.exprList, val(args, 2).expr)
		return acc
	})
	p.RegisterReducer(nArgList, []string{nExpr}, func(args parse.ReduceArgs[*value]) *value {
		return &value{exprList: []ast.Expr{val(args, 0).expr}}
	})

	p.RegisterReducer(nOptMembers, []string{nMemberList}, func(args parse.ReduceArgs[*value]) *value { return val(args, 0) })
	p.RegisterReducer(nOptMembers, []string{}, func(args parse.ReduceArgs[*value]) *value { return &value{} })
	p.RegisterReducer(nMemberList, []string{nMemberList, nMember}, func(args parse.ReduceArgs[*value]) *value {
		acc := val(args, 0)
		m := val(args, 1)
		if m.field.Name != "" {
			acc.members.Fields = append(acc.members.Fields, m.field)
		} else {
			acc.members.Methods = append(acc.members.Methods, m.method)
		}
		return acc
	})
	p.RegisterReducer(nMemberList, []string{nMember}, func(args parse.ReduceArgs[*value]) *value {
		m := val(args, 0)
		acc := &value{}
		if m.field.Name != "" {
			acc.members.Fields = append(acc.members.Fields, m.field)
		} else {
			acc.members.Methods = append(acc.members.Methods, m.method)
		}
		return acc
	})
	passThru := func(args parse.ReduceArgs[*value]) *value { return val(args, 0) }
	p.RegisterReducer(nMember, []string{nFuncMember}, passThru)
	p.RegisterReducer(nMember, []string{nDataMember}, passThru)

	p.RegisterReducer(nFuncMember, []string{TokIdent, nParams, nTypeAnn, nBlock}, func(args parse.ReduceArgs[*value]) *value {
		return &value{method: ast.MethodDef{
			Name:             tok(args, 0).Lexeme(),
			Params:           val(args, 1).paramList,
			ReturnAnnotation: val(args, 2).typeName,
			Body:             val(args, 3).expr,
			Span_:            spanOfTok(tok(args, 0)),
		}}
	})
	p.RegisterReducer(nFuncMember, []string{TokIdent, nParams, nOptTypeAnn, TokArrow, nExpr, TokSemi}, func(args parse.ReduceArgs[*value]) *value {
		return &value{method: ast.MethodDef{
			Name:             tok(args, 0).Lexeme(),
			Params:           val(args, 1).paramList,
			ReturnAnnotation: val(args, 2).typeName,
			Body:             val(args, 4).expr,
			Span_:            spanOfTok(tok(args, 0)),
		}}
	})
	p.RegisterReducer(nOptTypeAnn, []string{nTypeAnn}, func(args parse.ReduceArgs[*value]) *value { return val(args, 0) })
	p.RegisterReducer(nOptTypeAnn, []string{}, func(args parse.ReduceArgs[*value]) *value { return &value{} })
	p.RegisterReducer(nTypeAnn, []string{TokColon, nTypeNT}, func(args parse.ReduceArgs[*value]) *value { return val(args, 1) })
	p.RegisterReducer(nTypeNT, []string{nTypeNT, TokTimes}, func(args parse.ReduceArgs[*value]) *value {
		return &value{typeName: val(args, 0).typeName + "*"}
	})
	p.RegisterReducer(nTypeNT, []string{TokBooleanTy}, func(args parse.ReduceArgs[*value]) *value { return &value{typeName: "Boolean"} })
	p.RegisterReducer(nTypeNT, []string{TokStringTy}, func(args parse.ReduceArgs[*value]) *value { return &value{typeName: "String"} })
	p.RegisterReducer(nTypeNT, []string{TokNumberTy}, func(args parse.ReduceArgs[*value]) *value { return &value{typeName: "Number"} })
	p.RegisterReducer(nTypeNT, []string{TokIdent}, func(args parse.ReduceArgs[*value]) *value { return &value{typeName: tok(args, 0).Lexeme()} })

	p.RegisterReducer(nDataMember, []string{nAssign, TokSemi}, func(args parse.ReduceArgs[*value]) *value {
		a := val(args, 0).assign
		return &value{field: ast.FieldDef{Name: a.Name, Annotation: a.Annotation, Default: a.Value}}
	})

	p.RegisterReducer(nGlobalFunc, []string{TokFunction, TokIdent, nParams, nTypeAnn, nBlock}, func(args parse.ReduceArgs[*value]) *value {
		return &value{def: &ast.FunctionDef{
			Name:             tok(args, 1).Lexeme(),
			Params:           val(args, 2).paramList,
			ReturnAnnotation: val(args, 3).typeName,
			Body:             val(args, 4).expr,
			Span_:            spanBetween(spanOfTok(tok(args, 0)), val(args, 4).expr.Span()),
		}}
	})
	p.RegisterReducer(nGlobalFunc, []string{TokFunction, TokIdent, nParams, nOptTypeAnn, TokArrow, nExpr, TokSemi}, func(args parse.ReduceArgs[*value]) *value {
		return &value{def: &ast.FunctionDef{
			Name:             tok(args, 1).Lexeme(),
			Params:           val(args, 2).paramList,
			ReturnAnnotation: val(args, 3).typeName,
			Body:             val(args, 5).expr,
			Span_:            spanBetween(spanOfTok(tok(args, 0)), spanOfTok(tok(args, 6))),
		}}
	})

	p.RegisterReducer(nConstDef, []string{TokConstant, TokIdent, nTypeAnn, TokEqual, nExpr, TokSemi}, func(args parse.ReduceArgs[*value]) *value {
		return &value{def: &ast.ConstantDef{
			Name:       tok(args, 1).Lexeme(),
			Annotation: val(args, 2).typeName,
			Value:      val(args, 4).expr,
			Span_:      spanBetween(spanOfTok(tok(args, 0)), spanOfTok(tok(args, 5))),
		}}
	})

	p.RegisterReducer(nExpr, []string{nDestrAssign}, passThru)
	p.RegisterReducer(nExpr, []string{nConcat}, passThru)
	p.RegisterReducer(nDestrAssign, []string{nAtom, TokColonEq, nExpr}, func(args parse.ReduceArgs[*value]) *value {
		target := val(args, 0).expr
		rhs := val(args, 2).expr
		return &value{expr: &ast.Assignment{Target: target, Value: rhs, Span_: spanBetween(target.Span(), rhs.Span())}}
	})

	binOp := func(opIdx int) func(args parse.ReduceArgs[*value]) *value {
		return func(args parse.ReduceArgs[*value]) *value {
			left := val(args, 0).expr
			right := val(args, opIdx+1).expr
			op := tok(args, opIdx).Class().ID()
			return &value{expr: &ast.BinaryOp{Op: op, Left: left, Right: right, Span_: spanBetween(left.Span(), right.Span())}}
		}
	}

	p.RegisterReducer(nConcat, []string{nConcat, TokAt, nLogicalOr}, binOp(1))
	p.RegisterReducer(nConcat, []string{nConcat, TokAtAt, nLogicalOr}, binOp(1))
	p.RegisterReducer(nConcat, []string{nLogicalOr}, passThru)

	p.RegisterReducer(nLogicalOr, []string{nLogicalOr, TokOr, nLogicalAnd}, binOp(1))
	p.RegisterReducer(nLogicalOr, []string{nLogicalAnd}, passThru)

	p.RegisterReducer(nLogicalAnd, []string{nLogicalAnd, TokAnd, nEquation}, binOp(1))
	p.RegisterReducer(nLogicalAnd, []string{nEquation}, passThru)

	p.RegisterReducer(nEquation, []string{nComparison, TokEqEq, nComparison}, binOp(1))
	p.RegisterReducer(nEquation, []string{nComparison, TokNotEq, nComparison}, binOp(1))
	p.RegisterReducer(nEquation, []string{nComparison}, passThru)

	p.RegisterReducer(nComparison, []string{nAddition, TokLess, nAddition}, binOp(1))
	p.RegisterReducer(nComparison, []string{nAddition, TokLessEq, nAddition}, binOp(1))
	p.RegisterReducer(nComparison, []string{nAddition, TokGreater, nAddition}, binOp(1))
	p.RegisterReducer(nComparison, []string{nAddition, TokGreatEq, nAddition}, binOp(1))
	p.RegisterReducer(nComparison, []string{nAddition}, passThru)

	p.RegisterReducer(nAddition, []string{nAddition, TokPlus, nTerm}, binOp(1))
	p.RegisterReducer(nAddition, []string{nAddition, TokMinus, nTerm}, binOp(1))
	p.RegisterReducer(nAddition, []string{nTerm}, passThru)

	p.RegisterReducer(nTerm, []string{nTerm, TokTimes, nFactor}, binOp(1))
	p.RegisterReducer(nTerm, []string{nTerm, TokDiv, nFactor}, binOp(1))
	p.RegisterReducer(nTerm, []string{nFactor}, passThru)

	p.RegisterReducer(nFactor, []string{nUnary}, passThru)

	unOp := func(args parse.ReduceArgs[*value]) *value {
		opTok := tok(args, 0)
		operand := val(args, 1).expr
		return &value{expr: &ast.UnaryOp{Op: opTok.Class().ID(), Operand: operand, Span_: spanBetween(spanOfTok(opTok), operand.Span())}}
	}
	p.RegisterReducer(nUnary, []string{TokMinus, nUnary}, unOp)
	p.RegisterReducer(nUnary, []string{TokNot, nUnary}, unOp)
	p.RegisterReducer(nUnary, []string{nComposite}, passThru)

	p.RegisterReducer(nComposite, []string{nLetExpr}, passThru)
	p.RegisterReducer(nComposite, []string{nIfExpr}, passThru)
	p.RegisterReducer(nComposite, []string{nWhileExpr}, passThru)
	p.RegisterReducer(nComposite, []string{nForExpr}, passThru)
	p.RegisterReducer(nComposite, []string{nAtom}, passThru)

	// LetExpression desugars a surface `let x1=e1, x2=e2 in body` into a
	// right-associative chain of single-binding LetIn nodes, per
	// internal/ast's LetIn doc comment.
	p.RegisterReducer(nLetExpr, []string{TokLet, nAssignList, TokIn, nComposite}, func(args parse.ReduceArgs[*value]) *value {
		binds := val(args, 1).assigns
		body := val(args, 3).expr
		letTok := tok(args, 0)
		result := body
		for i := len(binds) - 1; i >= 0; i-- {
			b := binds[i]
			result = &ast.LetIn{
				Name:       b.Name,
				Annotation: b.Annotation,
				Value:      b.Value,
				Body:       result,
				Span_:      spanBetween(spanOfTok(letTok), result.Span()),
			}
		}
		return &value{expr: result}
	})
	p.RegisterReducer(nAssignList, []string{nAssignList, TokComma, nAssign}, func(args parse.ReduceArgs[*value]) *value {
		acc := val(args, 0)
		acc.assigns = append(acc.assigns, val(args, 2).assign)
		return acc
	})
	p.RegisterReducer(nAssignList, []string{nAssign}, func(args parse.ReduceArgs[*value]) *value {
		return &value{assigns: []assignment{val(args, 0).assign}}
	})
	p.RegisterReducer(nAssign, []string{TokIdent, nTypeAnn, TokEqual, nExpr}, func(args parse.ReduceArgs[*value]) *value {
		return &value{assign: assignment{Name: tok(args, 0).Lexeme(), Annotation: val(args, 1).typeName, Value: val(args, 3).expr}}
	})
	p.RegisterReducer(nAssign, []string{TokIdent, TokEqual, nExpr}, func(args parse.ReduceArgs[*value]) *value {
		return &value{assign: assignment{Name: tok(args, 0).Lexeme(), Value: val(args, 2).expr}}
	})

	p.RegisterReducer(nIfExpr, []string{TokIf, TokLpar, nExpr, TokRpar, nComposite, nIfTail}, func(args parse.ReduceArgs[*value]) *value {
		ifTok := tok(args, 0)
		cond := val(args, 2).expr
		then := val(args, 4).expr
		els := val(args, 5).expr
		return &value{expr: &ast.IfElse{Cond: cond, Then: then, Else: els, Span_: spanBetween(spanOfTok(ifTok), els.Span())}}
	})
	// An elif clause reduces to the nested IfElse that becomes its
	// predecessor's Else.
	p.RegisterReducer(nIfTail, []string{TokElif, TokLpar, nExpr, TokRpar, nComposite, nIfTail}, func(args parse.ReduceArgs[*value]) *value {
		elifTok := tok(args, 0)
		cond := val(args, 2).expr
		then := val(args, 4).expr
		els := val(args, 5).expr
		return &value{expr: &ast.IfElse{Cond: cond, Then: then, Else: els, Span_: spanBetween(spanOfTok(elifTok), els.Span())}}
	})
	p.RegisterReducer(nIfTail, []string{TokElse, nComposite}, func(args parse.ReduceArgs[*value]) *value {
		return &value{expr: val(args, 1).expr}
	})

	p.RegisterReducer(nWhileExpr, []string{TokWhile, TokLpar, nExpr, TokRpar, nComposite}, func(args parse.ReduceArgs[*value]) *value {
		whileTok := tok(args, 0)
		cond := val(args, 2).expr
		body := val(args, 4).expr
		return &value{expr: &ast.While{Cond: cond, Body: body, Span_: spanBetween(spanOfTok(whileTok), body.Span())}}
	})
	p.RegisterReducer(nForExpr, []string{TokFor, TokLpar, TokIdent, TokIn, nExpr, TokRpar, nComposite}, func(args parse.ReduceArgs[*value]) *value {
		forTok := tok(args, 0)
		varName := tok(args, 2).Lexeme()
		iterable := val(args, 4).expr
		body := val(args, 6).expr
		return &value{expr: &ast.For{Var: varName, Iterable: iterable, Body: body, Span_: spanBetween(spanOfTok(forTok), body.Span())}}
	})

	p.RegisterReducer(nAtom, []string{TokLpar, nExpr, TokRpar}, func(args parse.ReduceArgs[*value]) *value { return val(args, 1) })
	p.RegisterReducer(nAtom, []string{nNewExpr}, passThru)
	p.RegisterReducer(nAtom, []string{nCallExpr}, passThru)
	p.RegisterReducer(nAtom, []string{nBlockExpr}, passThru)
	p.RegisterReducer(nAtom, []string{nFuncMemberAx}, passThru)
	p.RegisterReducer(nAtom, []string{nDataMemberAx}, passThru)
	p.RegisterReducer(nAtom, []string{nIndexExpr}, passThru)
	p.RegisterReducer(nAtom, []string{nListLitExpr}, passThru)
	p.RegisterReducer(nAtom, []string{nNumLitExpr}, passThru)
	p.RegisterReducer(nAtom, []string{nBoolLitExpr}, passThru)
	p.RegisterReducer(nAtom, []string{nStrLitExpr}, passThru)
	p.RegisterReducer(nAtom, []string{nVarExpr}, passThru)

	p.RegisterReducer(nNewExpr, []string{TokNew, nCall}, func(args parse.ReduceArgs[*value]) *value {
		newTok := tok(args, 0)
		c := val(args, 1).call
		return &value{expr: &ast.New{TypeName: c.Name, Args: c.Args, Span_: spanOfTok(newTok)}}
	})
	p.RegisterReducer(nCallExpr, []string{nCall}, func(args parse.ReduceArgs[*value]) *value {
		c := val(args, 0).call
		return &value{expr: &ast.Call{Callee: c.Name, Args: c.Args}}
	})
	p.RegisterReducer(nCall, []string{TokIdent, nArgs}, func(args parse.ReduceArgs[*value]) *value {
		return &value{call: callInfo{Name: tok(args, 0).Lexeme(), Args: val(args, 1).exprList}}
	})
	p.RegisterReducer(nBlockExpr, []string{nBlock}, passThru)
	p.RegisterReducer(nFuncMemberAx, []string{nAtom, TokDot, nCall}, func(args parse.ReduceArgs[*value]) *value {
		recv := val(args, 0).expr
		c := val(args, 2).call
		return &value{expr: &ast.FuncMemberAccess{Receiver: recv, Method: c.Name, Args: c.Args, Span_: recv.Span()}}
	})
	p.RegisterReducer(nDataMemberAx, []string{nAtom, TokDot, TokIdent}, func(args parse.ReduceArgs[*value]) *value {
		recv := val(args, 0).expr
		return &value{expr: &ast.DataMemberAccess{Receiver: recv, Member: tok(args, 2).Lexeme(), Span_: recv.Span()}}
	})
	p.RegisterReducer(nIndexExpr, []string{nAtom, TokLbrack, nExpr, TokRbrack}, func(args parse.ReduceArgs[*value]) *value {
		list := val(args, 0).expr
		idx := val(args, 2).expr
		return &value{expr: &ast.Index{List: list, At: idx, Span_: spanBetween(list.Span(), spanOfTok(tok(args, 3)))}}
	})
	p.RegisterReducer(nVarExpr, []string{TokIdent}, func(args parse.ReduceArgs[*value]) *value {
		t := tok(args, 0)
		return &value{expr: &ast.Variable{Name: t.Lexeme(), Span_: spanOfTok(t)}}
	})

	p.RegisterReducer(nListLitExpr, []string{nListLit}, passThru)
	p.RegisterReducer(nListLit, []string{TokLbrack, nArgList, TokRbrack}, func(args parse.ReduceArgs[*value]) *value {
		sp := spanBetween(spanOfTok(tok(args, 0)), spanOfTok(tok(args, 2)))
		return &value{expr: &ast.ListLit{Elements: val(args, 1).exprList, Span_: sp}}
	})
	p.RegisterReducer(nListLit, []string{TokLbrack, TokRbrack}, func(args parse.ReduceArgs[*value]) *value {
		sp := spanBetween(spanOfTok(tok(args, 0)), spanOfTok(tok(args, 1)))
		return &value{expr: &ast.ListLit{Span_: sp}}
	})

	p.RegisterReducer(nNumLitExpr, []string{TokNumberLit}, func(args parse.ReduceArgs[*value]) *value {
		t := tok(args, 0)
		n, _ := strconv.ParseFloat(t.Lexeme(), 64)
		return &value{expr: &ast.NumberLit{Value: n, Span_: spanOfTok(t)}}
	})
	p.RegisterReducer(nBoolLitExpr, []string{TokBoolLit}, func(args parse.ReduceArgs[*value]) *value {
		t := tok(args, 0)
		return &value{expr: &ast.BooleanLit{Value: t.Lexeme() == "true", Span_: spanOfTok(t)}}
	})
	p.RegisterReducer(nStrLitExpr, []string{TokStringLit}, func(args parse.ReduceArgs[*value]) *value {
		t := tok(args, 0)
		return &value{expr: &ast.StringLit{Value: unescapeString(t.Lexeme()), Span_: spanOfTok(t)}}
	})

	p.RegisterReducer(nBlock, []string{TokLbrace, nBlockBody, TokRbrace}, func(args parse.ReduceArgs[*value]) *value {
		sp := spanBetween(spanOfTok(tok(args, 0)), spanOfTok(tok(args, 2)))
		return &value{expr: &ast.Block{Exprs: val(args, 1).block, Span_: sp}}
	})
	p.RegisterReducer(nBlockBody, []string{nBlockBody, nBlockItem}, func(args parse.ReduceArgs[*value]) *value {
		acc := val(args, 0)
		acc.block = append(acc.block, val(args, 1).expr)
		return acc
	})
	p.RegisterReducer(nBlockBody, []string{nBlockItem}, func(args parse.ReduceArgs[*value]) *value {
		return &value{block: []ast.Expr{val(args, 0).expr}}
	})
	p.RegisterReducer(nBlockItem, []string{nExpr, TokSemi}, func(args parse.ReduceArgs[*value]) *value {
		return &value{expr: val(args, 0).expr}
	})
	p.RegisterReducer(nBlockItem, []string{TokReturn, nExpr, TokSemi}, func(args parse.ReduceArgs[*value]) *value {
		retTok := tok(args, 0)
		e := val(args, 1).expr
		return &value{expr: &ast.Return{Value: e, Span_: spanBetween(spanOfTok(retTok), e.Span())}}
	})
}

// Parse lexes and parses src into a Program, ready for internal/sema.
func Parse(src string) (*ast.Program, error) {
	fe, err := NewFrontend()
	if err != nil {
		return nil, err
	}
	return fe.ParseString(src)
}

// Frontend bundles a compiled lexer and a parser with every HULK reducer
// registered, so cmd/hulkc can share one construction path whether the
// table comes from a fresh LALR(1) build or a tablecache hit — the *value
// type stays unexported either way, since Parser and ParseString are the
// only way to reach it from outside the package.
type Frontend struct {
	Lex    *lex.Lexer
	Parser *parse.Parser[*value]
}

// NewFrontend builds a lexer and constructs the LALR(1) table from scratch.
func NewFrontend() (*Frontend, error) {
	lx, err := NewLexer()
	if err != nil {
		return nil, err
	}
	p, err := NewHULKParser()
	if err != nil {
		return nil, err
	}
	return &Frontend{Lex: lx, Parser: p}, nil
}

// NewFrontendFromCache rebuilds a Frontend around a lexer and parse table
// restored from a tablecache entry, performing no automaton or LALR
// construction.
func NewFrontendFromCache(lx *lex.Lexer, table parse.LRParseTable) (*Frontend, error) {
	p, err := NewHULKParserFromTable(*NewGrammar(), table)
	if err != nil {
		return nil, err
	}
	return &Frontend{Lex: lx, Parser: p}, nil
}

// ParseString lexes and parses src into a Program using the frontend's own
// lexer and parser.
func (f *Frontend) ParseString(src string) (*ast.Program, error) {
	stream, err := f.Lex.Lex(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	v, err := f.Parser.Parse(stream)
	if err != nil {
		return nil, err
	}
	prog := v.program
	return &prog, nil
}

// Sources returns stable version markers for the grammar and lex rule
// tables this package builds. Unlike a grammar loaded from a user-editable
// file, NewGrammar/NewLexer are fixed Go code, so there is no source text to
// hash directly; bump these when a grammar or lexer rule changes so
// internal/tablecache's fingerprint invalidates stale cache entries instead
// of handing back a table built from a previous version of this package.
func Sources() (grammarSrc, lexSrc []byte) {
	return []byte(grammarVersion), []byte(lexVersion)
}

const (
	grammarVersion = "hulk-grammar-v1"
	lexVersion     = "hulk-lex-v1"
)
