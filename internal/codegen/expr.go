package codegen

import (
	"strconv"
	"strings"

	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/dekarrin/hulkc/internal/htypes"
)

// The methods below implement ast.ExprVisitor[value], lowering every
// annotated expression node to LLVM IR. Each method both emits instructions
// into fg.buf and returns the already-materialized result value, mirroring
// the same bottom-up traversal shape sema.checker used to type it (spec
// §4.5 pass 3) — codegen's visitor is a second, independent walk, run after
// all of sema's passes, over the same node set that LOWERS instead of
// validates, duplicating just enough
// of the operator semantics (arithmetic/comparison instruction choice) to
// avoid importing sema's unexported operator tables.

func (fg *funcGen) VisitAssignment(n *ast.Assignment) value {
	rhs := ast.Accept[value](n.Value, fg)

	switch target := n.Target.(type) {
	case *ast.Variable:
		slot, _ := fg.lookup(target.Name)
		fg.store(slot, fg.coerce(rhs, slot.Typ))
		return rhs

	case *ast.DataMemberAccess:
		selfSlot, _ := fg.lookup("self")
		selfPtr := fg.load(selfSlot)
		layout := fg.g.layouts[fg.selfType]
		idx, fieldTy, _ := layout.fieldIndex(target.Member)
		sTy := structTypeName(fg.selfType)
		gep := fg.nm.temp()
		fg.emit("%s = getelementptr %s, %s* %s, i32 0, i32 %d", gep, sTy, sTy, selfPtr, idx)
		lty := fg.g.llvmType(fieldTy)
		fg.emit("store %s %s, %s* %s", lty, fg.coerce(rhs, fieldTy), lty, gep)
		return rhs

	case *ast.Index:
		listVal := ast.Accept[value](target.List, fg)
		atVal := ast.Accept[value](target.At, fg)
		ptr, elemTy := fg.listElemPtr(listVal, atVal.reg)
		lty := fg.g.llvmType(elemTy)
		fg.emit("store %s %s, %s* %s", lty, fg.coerce(rhs, elemTy), lty, ptr)
		return rhs
	}
	return rhs
}

func (fg *funcGen) VisitBinaryOp(n *ast.BinaryOp) value {
	l := ast.Accept[value](n.Left, fg)
	r := ast.Accept[value](n.Right, fg)

	if n.Op == "+" && l.typ.IsIterable() && r.typ.IsIterable() {
		resultElem := fg.g.ctx.CommonSupertype(l.typ.Elem(), r.typ.Elem())
		return fg.concatLists(l, r, resultElem)
	}

	switch n.Op {
	case "+", "-", "*", "/", "%":
		instr := map[string]string{"+": "fadd", "-": "fsub", "*": "fmul", "/": "fdiv", "%": "frem"}[n.Op]
		reg := fg.nm.temp()
		fg.emit("%s = %s double %s, %s", reg, instr, l.reg, r.reg)
		return value{reg: reg, typ: htypes.Number()}

	case "<", "<=", ">", ">=":
		pred := map[string]string{"<": "olt", "<=": "ole", ">": "ogt", ">=": "oge"}[n.Op]
		reg := fg.nm.temp()
		fg.emit("%s = fcmp %s double %s, %s", reg, pred, l.reg, r.reg)
		return value{reg: reg, typ: htypes.Boolean()}

	case "==", "!=":
		return value{reg: fg.equalityValue(n.Op, l, r), typ: htypes.Boolean()}

	case "&&", "||":
		instr := "and"
		if n.Op == "||" {
			instr = "or"
		}
		reg := fg.nm.temp()
		fg.emit("%s = %s i1 %s, %s", reg, instr, l.reg, r.reg)
		return value{reg: reg, typ: htypes.Boolean()}

	case "@", "@@":
		ls := fg.toStringValue(l)
		rs := fg.toStringValue(r)
		reg := fg.concatStrings(ls, rs, n.Op == "@@")
		return value{reg: reg, typ: htypes.String()}
	}
	return value{reg: "null", typ: htypes.None()}
}

func (fg *funcGen) VisitUnaryOp(n *ast.UnaryOp) value {
	v := ast.Accept[value](n.Operand, fg)
	switch n.Op {
	case "-":
		reg := fg.nm.temp()
		fg.emit("%s = fneg double %s", reg, v.reg)
		return value{reg: reg, typ: htypes.Number()}
	case "!":
		reg := fg.nm.temp()
		fg.emit("%s = xor i1 %s, true", reg, v.reg)
		return value{reg: reg, typ: htypes.Boolean()}
	}
	return value{reg: "null", typ: htypes.None()}
}

func (fg *funcGen) VisitLetIn(n *ast.LetIn) value {
	v := ast.Accept[value](n.Value, fg)
	declType := n.Info.Type
	coerced := fg.coerce(v, declType)
	fg.pushScope()
	fg.declareLocal(n.Name, declType, coerced)
	result := ast.Accept[value](n.Body, fg)
	fg.popScope()
	return result
}

// VisitIfElse always merges branches as a boxed Object (i8*) value: the two
// branches are emitted into two distinct, already-terminated basic blocks,
// so the merged type can only be decided after both exist — deferring a
// precise "same concrete type on both sides" merge would need patching an
// already-emitted block. Consumers that need the concrete type back
// (coerce at the LetIn/Assignment/etc. that receives this value) unbox it.
func (fg *funcGen) VisitIfElse(n *ast.IfElse) value {
	condVal := ast.Accept[value](n.Cond, fg)
	resultPtr := fg.nm.temp()
	fg.emit("%s = alloca i8*", resultPtr)

	thenL := fg.nm.label("then")
	elseL := fg.nm.label("else")
	fiL := fg.nm.label("fi")
	fg.emit("br i1 %s, label %%%s, label %%%s", condVal.reg, thenL, elseL)

	fg.label(thenL)
	thenVal := ast.Accept[value](n.Then, fg)
	fg.emit("store i8* %s, i8** %s", fg.toErasedI8(thenVal), resultPtr)
	fg.emit("br label %%%s", fiL)

	fg.label(elseL)
	var elseVal value
	if n.Else != nil {
		elseVal = ast.Accept[value](n.Else, fg)
	} else {
		elseVal = value{reg: "null", typ: htypes.Object()}
	}
	fg.emit("store i8* %s, i8** %s", fg.toErasedI8(elseVal), resultPtr)
	fg.emit("br label %%%s", fiL)

	fg.label(fiL)
	reg := fg.nm.temp()
	fg.emit("%s = load i8*, i8** %s", reg, resultPtr)
	return value{reg: reg, typ: htypes.Object()}
}

func (fg *funcGen) VisitWhile(n *ast.While) value {
	condL := fg.nm.label("while.cond")
	bodyL := fg.nm.label("while.body")
	endL := fg.nm.label("while.end")

	fg.emit("br label %%%s", condL)
	fg.label(condL)
	condVal := ast.Accept[value](n.Cond, fg)
	fg.emit("br i1 %s, label %%%s, label %%%s", condVal.reg, bodyL, endL)

	fg.label(bodyL)
	ast.Accept[value](n.Body, fg)
	fg.emit("br label %%%s", condL)

	fg.label(endL)
	return value{reg: "null", typ: htypes.Object()}
}

// VisitFor walks the list's element buffer with an i64 index counter,
// reading the generic list_type's element pointer/length pair and
// bitcasting the raw i8* buffer to the element's concrete LLVM type, per
// spec §4.6's list representation. The loop's own result is erased to
// Object, same simplification as VisitWhile — see its comment.
func (fg *funcGen) VisitFor(n *ast.For) value {
	listVal := ast.Accept[value](n.Iterable, fg)
	elemTy := listVal.typ.Elem()
	elemLL := fg.g.llvmType(elemTy)

	f0 := fg.nm.temp()
	fg.emit("%s = getelementptr %%list_type, %%list_type* %s, i32 0, i32 0", f0, listVal.reg)
	rawBuf := fg.nm.temp()
	fg.emit("%s = load i8*, i8** %s", rawBuf, f0)
	typedBuf := fg.nm.temp()
	fg.emit("%s = bitcast i8* %s to %s*", typedBuf, rawBuf, elemLL)

	f1 := fg.nm.temp()
	fg.emit("%s = getelementptr %%list_type, %%list_type* %s, i32 0, i32 1", f1, listVal.reg)
	lenReg := fg.nm.temp()
	fg.emit("%s = load i64, i64* %s", lenReg, f1)

	idxPtr := fg.nm.temp()
	fg.emit("%s = alloca i64", idxPtr)
	fg.emit("store i64 0, i64* %s", idxPtr)

	condL := fg.nm.label("for.cond")
	bodyL := fg.nm.label("for.body")
	endL := fg.nm.label("for.end")

	fg.emit("br label %%%s", condL)
	fg.label(condL)
	idxVal := fg.nm.temp()
	fg.emit("%s = load i64, i64* %s", idxVal, idxPtr)
	cmp := fg.nm.temp()
	fg.emit("%s = icmp slt i64 %s, %s", cmp, idxVal, lenReg)
	fg.emit("br i1 %s, label %%%s, label %%%s", cmp, bodyL, endL)

	fg.label(bodyL)
	elp := fg.nm.temp()
	fg.emit("%s = getelementptr %s, %s* %s, i64 %s", elp, elemLL, elemLL, typedBuf, idxVal)
	elv := fg.nm.temp()
	fg.emit("%s = load %s, %s* %s", elv, elemLL, elemLL, elp)
	fg.pushScope()
	fg.declareLocal(n.Var, elemTy, elv)
	ast.Accept[value](n.Body, fg)
	fg.popScope()
	nextIdx := fg.nm.temp()
	fg.emit("%s = add i64 %s, 1", nextIdx, idxVal)
	fg.emit("store i64 %s, i64* %s", nextIdx, idxPtr)
	fg.emit("br label %%%s", condL)

	fg.label(endL)
	return value{reg: "null", typ: htypes.Object()}
}

func (fg *funcGen) VisitBlock(n *ast.Block) value {
	fg.pushScope()
	defer fg.popScope()
	result := value{reg: "null", typ: htypes.Object()}
	for _, e := range n.Exprs {
		result = ast.Accept[value](e, fg)
	}
	return result
}

func (fg *funcGen) VisitReturn(n *ast.Return) value {
	var v value
	if n.Value != nil {
		v = ast.Accept[value](n.Value, fg)
	} else {
		v = value{reg: "null", typ: htypes.Object()}
	}
	fg.emit("ret %s %s", fg.g.llvmType(fg.retType), fg.coerce(v, fg.retType))
	fg.label(fg.nm.label("after.ret"))
	return v
}

func (fg *funcGen) VisitNumberLit(n *ast.NumberLit) value {
	return value{reg: strconv.FormatFloat(n.Value, 'e', 6, 64), typ: htypes.Number()}
}

func (fg *funcGen) VisitBooleanLit(n *ast.BooleanLit) value {
	if n.Value {
		return value{reg: "1", typ: htypes.Boolean()}
	}
	return value{reg: "0", typ: htypes.Boolean()}
}

func (fg *funcGen) VisitStringLit(n *ast.StringLit) value {
	idx := fg.g.internString(n.Value)
	arrLen := len(n.Value) + 1
	reg := fg.nm.temp()
	fg.emit("%s = getelementptr [%d x i8], [%d x i8]* @.str.%d, i32 0, i32 0", reg, arrLen, arrLen, idx)
	return value{reg: reg, typ: htypes.String()}
}

func (fg *funcGen) VisitListLit(n *ast.ListLit) value {
	elems := make([]value, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = ast.Accept[value](e, fg)
	}

	var elemType htypes.Type
	if len(elems) == 0 {
		elemType = fg.g.resolveAnnotation(n.Annotation)
	} else {
		elemType = elems[0].typ
		for _, e := range elems[1:] {
			elemType = fg.g.ctx.CommonSupertype(elemType, e.typ)
		}
	}
	elemLL := fg.g.llvmType(elemType)

	var bufPtr string
	if len(elems) == 0 {
		bufPtr = "null"
	} else {
		gepSz := fg.nm.temp()
		fg.emit("%s = getelementptr %s, %s* null, i32 1", gepSz, elemLL, elemLL)
		szReg := fg.nm.temp()
		fg.emit("%s = ptrtoint %s* %s to i64", szReg, elemLL, gepSz)
		totalSz := fg.nm.temp()
		fg.emit("%s = mul i64 %s, %d", totalSz, szReg, len(elems))
		raw := fg.nm.temp()
		fg.emit("%s = call i8* @malloc(i64 %s)", raw, totalSz)
		typedBuf := fg.nm.temp()
		fg.emit("%s = bitcast i8* %s to %s*", typedBuf, raw, elemLL)
		for i, ev := range elems {
			elp := fg.nm.temp()
			fg.emit("%s = getelementptr %s, %s* %s, i64 %d", elp, elemLL, elemLL, typedBuf, i)
			fg.emit("store %s %s, %s* %s", elemLL, fg.coerce(ev, elemType), elemLL, elp)
		}
		bufPtr = raw
	}

	listRaw := fg.nm.temp()
	fg.emit("%s = call i8* @malloc(i64 16)", listRaw)
	listPtr := fg.nm.temp()
	fg.emit("%s = bitcast i8* %s to %%list_type*", listPtr, listRaw)
	f0 := fg.nm.temp()
	fg.emit("%s = getelementptr %%list_type, %%list_type* %s, i32 0, i32 0", f0, listPtr)
	fg.emit("store i8* %s, i8** %s", bufPtr, f0)
	f1 := fg.nm.temp()
	fg.emit("%s = getelementptr %%list_type, %%list_type* %s, i32 0, i32 1", f1, listPtr)
	fg.emit("store i64 %d, i64* %s", len(elems), f1)

	return value{reg: listPtr, typ: htypes.Iterable(elemType)}
}

func (fg *funcGen) VisitNew(n *ast.New) value {
	ti, _ := fg.g.ctx.Lookup(n.TypeName)
	args := make([]string, 0, len(n.Args))
	for i, a := range n.Args {
		av := ast.Accept[value](a, fg)
		pt := ti.ConstructorParams[i].Type
		args = append(args, fg.g.llvmType(pt)+" "+fg.coerce(av, pt))
	}
	reg := fg.nm.temp()
	sTy := structTypeName(n.TypeName)
	fg.emit("%s = call %s* %s(%s)", reg, sTy, constructorName(n.TypeName), strings.Join(args, ", "))
	return value{reg: reg, typ: htypes.User(n.TypeName)}
}

func (fg *funcGen) VisitCall(n *ast.Call) value {
	if n.Callee == "print" {
		return fg.emitPrint(ast.Accept[value](n.Args[0], fg))
	}

	fd := fg.g.funcs[n.Callee]
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		av := ast.Accept[value](a, fg)
		pt := fg.g.resolveAnnotation(fd.Params[i].Annotation)
		args[i] = fg.g.llvmType(pt) + " " + fg.coerce(av, pt)
	}
	retTy := n.Info.Type
	reg := fg.nm.temp()
	fg.emit("%s = call %s @%s(%s)", reg, fg.g.llvmType(retTy), n.Callee, strings.Join(args, ", "))
	return value{reg: reg, typ: retTy}
}

func (fg *funcGen) VisitDataMemberAccess(n *ast.DataMemberAccess) value {
	selfSlot, _ := fg.lookup("self")
	selfPtr := fg.load(selfSlot)
	layout := fg.g.layouts[fg.selfType]
	idx, fieldTy, _ := layout.fieldIndex(n.Member)
	sTy := structTypeName(fg.selfType)
	gep := fg.nm.temp()
	fg.emit("%s = getelementptr %s, %s* %s, i32 0, i32 %d", gep, sTy, sTy, selfPtr, idx)
	lty := fg.g.llvmType(fieldTy)
	reg := fg.nm.temp()
	fg.emit("%s = load %s, %s* %s", reg, lty, lty, gep)
	return value{reg: reg, typ: fieldTy}
}

func (fg *funcGen) VisitFuncMemberAccess(n *ast.FuncMemberAccess) value {
	recvVal := ast.Accept[value](n.Receiver, fg)
	recvTypeName := recvVal.typ.Name()
	layout := fg.g.layouts[recvTypeName]
	idx, slot, _ := layout.methodIndex(n.Method)
	sTy := structTypeName(recvTypeName)
	vTy := vtableTypeName(recvTypeName)

	vtblFieldGep := fg.nm.temp()
	fg.emit("%s = getelementptr %s, %s* %s, i32 0, i32 0", vtblFieldGep, sTy, sTy, recvVal.reg)
	vptr := fg.nm.temp()
	fg.emit("%s = load %s*, %s** %s", vptr, vTy, vTy, vtblFieldGep)
	slotGep := fg.nm.temp()
	fg.emit("%s = getelementptr %s, %s* %s, i32 0, i32 %d", slotGep, vTy, vTy, vptr, idx)
	fnI8 := fg.nm.temp()
	fg.emit("%s = load i8*, i8** %s", fnI8, slotGep)
	fnTy := fg.g.methodFuncType(slot)
	fnTyped := fg.nm.temp()
	fg.emit("%s = bitcast i8* %s to %s", fnTyped, fnI8, fnTy)
	selfI8 := fg.nm.temp()
	fg.emit("%s = bitcast %s %s to i8*", selfI8, sTy+"*", recvVal.reg)

	paramTypesList := []string{"i8*"}
	args := []string{"i8* " + selfI8}
	for i, a := range n.Args {
		av := ast.Accept[value](a, fg)
		pt := slot.Params[i]
		paramTypesList = append(paramTypesList, fg.g.llvmType(pt))
		args = append(args, fg.g.llvmType(pt)+" "+fg.coerce(av, pt))
	}

	reg := fg.nm.temp()
	retTy := fg.g.llvmType(slot.Return)
	fg.emit("%s = call %s (%s) %s(%s)", reg, retTy, strings.Join(paramTypesList, ", "), fnTyped, strings.Join(args, ", "))
	return value{reg: reg, typ: slot.Return}
}

func (fg *funcGen) VisitIndex(n *ast.Index) value {
	listVal := ast.Accept[value](n.List, fg)
	atVal := ast.Accept[value](n.At, fg)
	ptr, elemTy := fg.listElemPtr(listVal, atVal.reg)
	lty := fg.g.llvmType(elemTy)
	reg := fg.nm.temp()
	fg.emit("%s = load %s, %s* %s", reg, lty, lty, ptr)
	return value{reg: reg, typ: elemTy}
}

func (fg *funcGen) VisitVariable(n *ast.Variable) value {
	slot, _ := fg.lookup(n.Name)
	return value{reg: fg.load(slot), typ: slot.Typ}
}

// listElemPtr computes a pointer to the idxReg'th element of listVal (a
// %list_type* carrying a raw i8* buffer), converting the Number index to
// i64 and bitcasting the buffer to the element's concrete LLVM type.
func (fg *funcGen) listElemPtr(listVal value, idxReg string) (string, htypes.Type) {
	elemTy := listVal.typ.Elem()
	elemLL := fg.g.llvmType(elemTy)

	f0 := fg.nm.temp()
	fg.emit("%s = getelementptr %%list_type, %%list_type* %s, i32 0, i32 0", f0, listVal.reg)
	rawPtr := fg.nm.temp()
	fg.emit("%s = load i8*, i8** %s", rawPtr, f0)
	typedPtr := fg.nm.temp()
	fg.emit("%s = bitcast i8* %s to %s*", typedPtr, rawPtr, elemLL)

	i64idx := fg.nm.temp()
	fg.emit("%s = fptosi double %s to i64", i64idx, idxReg)
	elemPtr := fg.nm.temp()
	fg.emit("%s = getelementptr %s, %s* %s, i64 %s", elemPtr, elemLL, elemLL, typedPtr, i64idx)
	return elemPtr, elemTy
}
