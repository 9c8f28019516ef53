package sema

import (
	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/dekarrin/hulkc/internal/htypes"
)

// The visitor methods below implement spec §4.5 pass 3's "standard
// bottom-up typing" for every Expr variant. Each method both returns the
// node's type (for the enclosing node's own typing) and, where the node
// carries an Info slot, annotates it in place.

func (c *checker) VisitAssignment(n *ast.Assignment) htypes.Type {
	rhsType := ast.Accept[htypes.Type](n.Value, c)

	switch target := n.Target.(type) {
	case *ast.Variable:
		b, ok := c.scope.Lookup(target.Name)
		if !ok {
			c.a.bag.Errorf(startPos(target.Span_), string(KindUndefinedVariable),
				"variable %s is not defined", target.Name)
			return htypes.None()
		}
		if b.Const {
			c.a.bag.Errorf(startPos(target.Span_), string(KindInvalidReassignmentTarget),
				"%s is not a valid assignment target", target.Name)
			return htypes.None()
		}
		if !c.a.types.Conforms(rhsType, b.Type) {
			c.a.bag.Errorf(startPos(n.Span_), string(KindInvalidReassignmentType),
				"%s is %s but is being reassigned with %s", target.Name, b.Type, rhsType)
		}
		target.Info.Resolve(b.Type, startPos(target.Span_))
		return b.Type

	case *ast.DataMemberAccess:
		if recv, ok := target.Receiver.(*ast.Variable); ok && recv.Name == "self" && c.selfType != "" {
			ti, _ := c.a.types.Lookup(c.selfType)
			if ti != nil {
				if f, ok := ti.FindOwnField(target.Member); ok {
					if !c.a.types.Conforms(rhsType, f.Type) {
						c.a.bag.Errorf(startPos(n.Span_), string(KindInvalidReassignmentType),
							"%s is %s but is being reassigned with %s", target.Member, f.Type, rhsType)
					}
					return f.Type
				}
				c.a.bag.Errorf(startPos(target.Span_), string(KindFieldNotFound),
					"could not find data member %s", target.Member)
				return htypes.None()
			}
		}
		c.a.bag.Errorf(startPos(n.Span_), string(KindInvalidReassignmentExpr),
			"only variables and self properties can be assigned")
		return htypes.None()

	case *ast.Index:
		listType := ast.Accept[htypes.Type](target.List, c)
		if !listType.IsIterable() {
			c.a.bag.Errorf(startPos(n.Span_), string(KindNonIterableType),
				"cannot iterate over type %s", listType)
			return htypes.None()
		}
		elem := listType.Elem()
		if !c.a.types.Conforms(rhsType, elem) {
			c.a.bag.Errorf(startPos(n.Span_), string(KindListInvalidReassignment),
				"cannot assign %s to list element of type %s", rhsType, elem)
		}
		return elem

	default:
		c.a.bag.Errorf(startPos(n.Span_), string(KindInvalidReassignmentExpr),
			"only variables and self properties can be assigned")
		return htypes.None()
	}
}

func (c *checker) VisitBinaryOp(n *ast.BinaryOp) htypes.Type {
	left := ast.Accept[htypes.Type](n.Left, c)
	right := ast.Accept[htypes.Type](n.Right, c)

	if n.Op == "+" && left.IsIterable() && right.IsIterable() {
		// list + list concatenates (spec §8 scenario 2); this is checked
		// ahead of plusNumberSig below since that signature alone can't
		// express "+"'s two unrelated operand shapes.
		return htypes.Iterable(c.a.types.CommonSupertype(left.Elem(), right.Elem()))
	}

	sig, ok := binOpTable[n.Op]
	if !ok {
		return htypes.None()
	}
	if sig.SameOperands {
		if !c.a.types.Conforms(left, right) && !c.a.types.Conforms(right, left) {
			c.a.bag.Errorf(startPos(n.Span_), string(KindBinOpInvalidOperands),
				"cannot apply %s to operands of type %s and %s", n.Op, left, right)
		}
		return sig.Return
	}
	if n.Op == "@" || n.Op == "@@" {
		return sig.Return // any operand stringifies
	}
	if !c.a.types.Conforms(left, sig.Left) || !c.a.types.Conforms(right, sig.Right) {
		c.a.bag.Errorf(startPos(n.Span_), string(KindBinOpInvalidOperands),
			"cannot apply %s to operands of type %s and %s", n.Op, left, right)
		return htypes.None()
	}
	return sig.Return
}

func (c *checker) VisitUnaryOp(n *ast.UnaryOp) htypes.Type {
	operand := ast.Accept[htypes.Type](n.Operand, c)
	sig, ok := unOpTable[n.Op]
	if !ok {
		return htypes.None()
	}
	if !c.a.types.Conforms(operand, sig.Operand) {
		c.a.bag.Errorf(startPos(n.Span_), string(KindUnOpInvalidOperands),
			"cannot apply %s to operand of type %s", n.Op, operand)
		return htypes.None()
	}
	return sig.Return
}

func (c *checker) VisitLetIn(n *ast.LetIn) htypes.Type {
	valueType := ast.Accept[htypes.Type](n.Value, c)
	declared := c.resolveAnnotation(n.Annotation, startPos(n.Span_))
	if !declared.IsNone() && !c.a.types.Conforms(valueType, declared) {
		c.a.bag.Errorf(startPos(n.Span_), string(KindVarDefinitionTypeMismatch),
			"cannot assign %s to %s", valueType, declared)
	}
	finalType := declared
	if finalType.IsNone() {
		finalType = valueType
	}
	n.Info.Resolve(finalType, startPos(n.Span_))

	c.scope.PushOpen()
	c.scope.Bind(htypes.Binding{Name: n.Name, Type: finalType})
	bodyType := ast.Accept[htypes.Type](n.Body, c)
	c.scope.Pop()
	return bodyType
}

func (c *checker) VisitIfElse(n *ast.IfElse) htypes.Type {
	condType := ast.Accept[htypes.Type](n.Cond, c)
	if !c.a.types.Conforms(condType, htypes.Boolean()) {
		c.a.bag.Errorf(startPos(n.Span_), string(KindUnOpInvalidOperands),
			"condition must be Boolean, got %s", condType)
	}
	thenType := ast.Accept[htypes.Type](n.Then, c)
	if n.Else == nil {
		return thenType
	}
	elseType := ast.Accept[htypes.Type](n.Else, c)
	return c.a.types.CommonSupertype(thenType, elseType)
}

func (c *checker) VisitWhile(n *ast.While) htypes.Type {
	condType := ast.Accept[htypes.Type](n.Cond, c)
	if !c.a.types.Conforms(condType, htypes.Boolean()) {
		c.a.bag.Errorf(startPos(n.Span_), string(KindUnOpInvalidOperands),
			"condition must be Boolean, got %s", condType)
	}
	ast.Accept[htypes.Type](n.Body, c)
	return htypes.Object()
}

func (c *checker) VisitFor(n *ast.For) htypes.Type {
	iterType := ast.Accept[htypes.Type](n.Iterable, c)
	var elem htypes.Type
	if !iterType.IsIterable() {
		c.a.bag.Errorf(startPos(n.Span_), string(KindNonIterableType),
			"cannot iterate over type %s", iterType)
		elem = htypes.None()
	} else {
		elem = iterType.Elem()
	}
	n.Info.Resolve(elem, startPos(n.Span_))

	c.scope.PushOpen()
	c.scope.Bind(htypes.Binding{Name: n.Var, Type: elem})
	bodyType := ast.Accept[htypes.Type](n.Body, c)
	c.scope.Pop()
	return bodyType
}

func (c *checker) VisitBlock(n *ast.Block) htypes.Type {
	c.scope.PushOpen()
	defer c.scope.Pop()
	result := htypes.Object()
	for _, e := range n.Exprs {
		result = ast.Accept[htypes.Type](e, c)
	}
	return result
}

func (c *checker) VisitReturn(n *ast.Return) htypes.Type {
	if n.Value == nil {
		return htypes.Object()
	}
	return ast.Accept[htypes.Type](n.Value, c)
}

func (c *checker) VisitNumberLit(n *ast.NumberLit) htypes.Type   { return htypes.Number() }
func (c *checker) VisitBooleanLit(n *ast.BooleanLit) htypes.Type { return htypes.Boolean() }
func (c *checker) VisitStringLit(n *ast.StringLit) htypes.Type   { return htypes.String() }

func (c *checker) VisitListLit(n *ast.ListLit) htypes.Type {
	if len(n.Elements) == 0 {
		if n.Annotation == "" {
			c.a.bag.Errorf(startPos(n.Span_), string(KindUnknownListType), "unknown list type")
			return htypes.Iterable(htypes.None())
		}
		return htypes.Iterable(c.resolveAnnotation(n.Annotation, startPos(n.Span_)))
	}
	result := ast.Accept[htypes.Type](n.Elements[0], c)
	for _, e := range n.Elements[1:] {
		t := ast.Accept[htypes.Type](e, c)
		result = c.a.types.CommonSupertype(result, t)
	}
	return htypes.Iterable(result)
}

func (c *checker) VisitNew(n *ast.New) htypes.Type {
	ti, ok := c.a.types.Lookup(n.TypeName)
	if !ok {
		c.a.bag.Errorf(startPos(n.Span_), string(KindUndefinedType),
			"type %s is not defined", n.TypeName)
		for _, arg := range n.Args {
			ast.Accept[htypes.Type](arg, c)
		}
		return htypes.None()
	}
	expected := make([]htypes.Type, len(ti.ConstructorParams))
	for i, p := range ti.ConstructorParams {
		expected[i] = p.Type
	}
	c.checkArgs(n.Args, expected, n.TypeName, startPos(n.Span_), KindTypeParamsInvalidAmount, KindTypeParamInvalidType)
	n.Info.Resolve(htypes.User(n.TypeName), ti.Pos)
	return htypes.User(n.TypeName)
}

func (c *checker) VisitCall(n *ast.Call) htypes.Type {
	if n.Callee == "print" {
		return c.visitPrintCall(n)
	}

	sig, ok := c.a.funcs[n.Callee]
	if !ok {
		c.a.bag.Errorf(startPos(n.Span_), string(KindUndefinedFunction),
			"function %s is not defined", n.Callee)
		for _, arg := range n.Args {
			ast.Accept[htypes.Type](arg, c)
		}
		return htypes.None()
	}
	expected := make([]htypes.Type, len(sig.Params))
	for i, p := range sig.Params {
		expected[i] = c.resolveAnnotation(p.Annotation, startPos(p.Span))
	}
	c.checkArgs(n.Args, expected, n.Callee, startPos(n.Span_), KindFuncParamsInvalidAmount, KindFuncParamInvalidType)
	retType := c.resolveAnnotation(sig.Return, startPos(n.Span_))
	n.Info.Resolve(retType, startPos(sig.Node.Span()))
	return retType
}

// visitPrintCall types the print builtin: exactly one Number/String/Boolean
// argument, result type equal to the argument's own type (print passes its
// value through), per original_source/semantic_analyzer's visit_function_call
// special case for "print" (print is never registered in c.a.funcs — there
// is no HULK-level FunctionDef for it to look up).
func (c *checker) visitPrintCall(n *ast.Call) htypes.Type {
	if len(n.Args) != 1 {
		c.a.bag.Errorf(startPos(n.Span_), string(KindFuncParamsInvalidAmount),
			"print expects 1 argument, got %d", len(n.Args))
		for _, arg := range n.Args {
			ast.Accept[htypes.Type](arg, c)
		}
		n.Info.Resolve(htypes.None(), startPos(n.Span_))
		return htypes.None()
	}

	argType := ast.Accept[htypes.Type](n.Args[0], c)
	if !argType.IsBuiltinPrimitive() {
		c.a.bag.Errorf(startPos(n.Span_), string(KindFuncParamInvalidType),
			"print expects argument of type Number, String, or Boolean, got %s", argType)
		n.Info.Resolve(htypes.None(), startPos(n.Span_))
		return htypes.None()
	}

	n.Info.Resolve(argType, startPos(n.Span_))
	return argType
}

func (c *checker) VisitDataMemberAccess(n *ast.DataMemberAccess) htypes.Type {
	recvType := ast.Accept[htypes.Type](n.Receiver, c)
	recvVar, isVar := n.Receiver.(*ast.Variable)
	isSelf := isVar && recvVar.Name == "self"

	if !recvType.IsUser() {
		c.a.bag.Errorf(startPos(n.Span_), string(KindFieldNotFound),
			"could not find data member %s", n.Member)
		return htypes.None()
	}
	ti, ok := c.a.types.Lookup(recvType.Name())
	if !ok {
		return htypes.None()
	}
	f, found := ti.FindOwnField(n.Member)
	if !found {
		c.a.bag.Errorf(startPos(n.Span_), string(KindFieldNotFound),
			"could not find data member %s", n.Member)
		return htypes.None()
	}
	if !isSelf {
		c.a.bag.Errorf(startPos(n.Span_), string(KindAccessingPrivateMember),
			"cannot access member %s of type %s. properties are private, even to inherited types",
			n.Member, recvType.Name())
		return htypes.None()
	}
	n.Info.Resolve(f.Type, f.Pos)
	return f.Type
}

func (c *checker) VisitFuncMemberAccess(n *ast.FuncMemberAccess) htypes.Type {
	recvType := ast.Accept[htypes.Type](n.Receiver, c)
	if !recvType.IsUser() && recvType.Kind() != htypes.KindObject {
		c.a.bag.Errorf(startPos(n.Span_), string(KindMethodNotFound),
			"could not find method %s", n.Method)
		for _, arg := range n.Args {
			ast.Accept[htypes.Type](arg, c)
		}
		return htypes.None()
	}
	ti, ok := c.a.types.Lookup(recvType.Name())
	if !ok {
		return htypes.None()
	}
	sig, found := c.a.types.ResolveMethod(ti, n.Method)
	if !found {
		c.a.bag.Errorf(startPos(n.Span_), string(KindMethodNotFound),
			"could not find method %s", n.Method)
		for _, arg := range n.Args {
			ast.Accept[htypes.Type](arg, c)
		}
		return htypes.None()
	}
	c.checkArgs(n.Args, sig.Params, n.Method, startPos(n.Span_), KindFuncParamsInvalidAmount, KindFuncParamInvalidType)
	n.Info.Resolve(sig.Return, sig.Pos)
	return sig.Return
}

func (c *checker) VisitIndex(n *ast.Index) htypes.Type {
	listType := ast.Accept[htypes.Type](n.List, c)
	idxType := ast.Accept[htypes.Type](n.At, c)
	if !c.a.types.Conforms(idxType, htypes.Number()) {
		c.a.bag.Errorf(startPos(n.Span_), string(KindInvalidIndexing),
			"cannot use index of type %s to access iterable", idxType)
	}
	if !listType.IsIterable() {
		c.a.bag.Errorf(startPos(n.Span_), string(KindNonIterableType),
			"cannot iterate over type %s", listType)
		return htypes.None()
	}
	return listType.Elem()
}

func (c *checker) VisitVariable(n *ast.Variable) htypes.Type {
	b, ok := c.scope.Lookup(n.Name)
	if !ok {
		c.a.bag.Errorf(startPos(n.Span_), string(KindUndefinedVariable),
			"variable %s is not defined", n.Name)
		return htypes.None()
	}
	n.Info.Resolve(b.Type, startPos(n.Span_))
	return b.Type
}
