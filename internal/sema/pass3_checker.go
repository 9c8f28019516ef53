package sema

import (
	"strings"

	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/dekarrin/hulkc/internal/diag"
	"github.com/dekarrin/hulkc/internal/htypes"
)

// checker is a single bottom-up traversal implementing ast.ExprVisitor over
// htypes.Type, per spec §4.5 pass 3. One checker instance is reused across
// every top-level expression, function body, method body, and type body in
// a compilation, carrying the live Scope and the enclosing type's name (for
// self/private-member rules) as it recurses.
type checker struct {
	a          *Analyzer
	scope      *htypes.Scope
	selfType   string // enclosing type name, "" outside a method/constructor
	returnType htypes.Type
	hasReturn  bool // whether returnType is meaningful (inside a function/method)
}

func (a *Analyzer) pass3CheckAndAnnotate(prog *ast.Program) {
	c := &checker{a: a, scope: htypes.NewScope()}

	// type bodies are checked parent-before-child so a child's `inherits
	// Parent(args)` clause can see the parent's already-resolved
	// constructor parameter types.
	for _, td := range a.typeDefTopoOrder(prog) {
		c.checkTypeDef(td)
	}

	for _, def := range prog.Definitions {
		switch d := def.(type) {
		case *ast.FunctionDef:
			c.checkFunctionDef(d)
		case *ast.ConstantDef:
			c.checkConstantDef(d)
		case *ast.TypeDef, *ast.ProtocolDef:
			// type bodies already checked above; protocols are reserved.
		}
	}

	for _, e := range prog.Expressions {
		ast.Accept[htypes.Type](e, c)
	}
}

func (c *checker) resolveAnnotation(name string, pos diag.Position) htypes.Type {
	if name == "" {
		return htypes.None()
	}
	if strings.HasSuffix(name, "*") {
		return htypes.Iterable(c.resolveAnnotation(strings.TrimSuffix(name, "*"), pos))
	}
	switch name {
	case "Number":
		return htypes.Number()
	case "String":
		return htypes.String()
	case "Boolean":
		return htypes.Boolean()
	case "Object":
		return htypes.Object()
	}
	if c.a.types.IsDefined(name) {
		return htypes.User(name)
	}
	c.a.bag.Errorf(pos, string(KindUndefinedTypeOrProtocol), "type or protocol %s is not defined", name)
	return htypes.None()
}

func (c *checker) checkTypeDef(td *ast.TypeDef) {
	ti, ok := c.a.types.Lookup(td.Name)
	if !ok {
		return
	}
	c.scope.PushClosed()
	defer c.scope.Pop()

	ti.ConstructorParams = ti.ConstructorParams[:0]
	for i := range td.ConstructorParams {
		p := &td.ConstructorParams[i]
		pt := c.resolveAnnotation(p.Annotation, startPos(p.Span))
		p.Info.Resolve(pt, startPos(p.Span))
		c.scope.Bind(htypes.Binding{Name: p.Name, Type: pt, Const: true})
		ti.ConstructorParams = append(ti.ConstructorParams, htypes.MemberDef{Name: p.Name, Type: pt, Pos: startPos(p.Span)})
	}

	if ti.Parent != "" && ti.Parent != "Object" {
		parentTi, _ := c.a.types.Lookup(ti.Parent)
		if parentTi != nil {
			expected := make([]htypes.Type, len(parentTi.ConstructorParams))
			for i, pc := range parentTi.ConstructorParams {
				expected[i] = pc.Type
			}
			c.checkArgs(td.ParentArgs, expected, ti.Parent,
				startPos(td.Span()), KindTypeParamsInvalidAmount, KindTypeParamInvalidType)
		}
	}

	c.scope.Bind(htypes.Binding{Name: "self", Type: htypes.User(td.Name), Const: true})

	for i := range td.Fields {
		f := &td.Fields[i]
		if parentName, found := c.a.types.FindInheritedField(ti, f.Name); found {
			c.a.bag.Errorf(startPos(f.Span_), string(KindFieldOverride),
				"cannot declare field %s in type %s, as it overrides parent definition in %s",
				f.Name, ti.Name, parentName)
		}
		var valueType htypes.Type
		if f.Default != nil {
			valueType = ast.Accept[htypes.Type](f.Default, c)
		} else {
			valueType = htypes.None()
		}
		declared := c.resolveAnnotation(f.Annotation, startPos(f.Span_))
		if !declared.IsNone() && !c.a.types.Conforms(valueType, declared) {
			c.a.bag.Errorf(startPos(f.Span_), string(KindVarDefinitionTypeMismatch),
				"cannot assign %s to %s", valueType, declared)
		}
		finalType := declared
		if finalType.IsNone() {
			finalType = valueType
		}
		if mem, ok := ti.Fields[f.Name]; ok {
			mem.Type = finalType
			ti.Fields[f.Name] = mem
		}
		c.scope.Bind(htypes.Binding{Name: f.Name, Type: finalType})
	}

	for i := range td.Methods {
		m := &td.Methods[i]
		c.checkMethod(ti, m)
	}
}

func (c *checker) checkMethod(ti *htypes.TypeInfo, m *ast.MethodDef) {
	c.scope.PushOpen()
	defer c.scope.Pop()

	paramTypes := make([]htypes.Type, len(m.Params))
	for i := range m.Params {
		p := &m.Params[i]
		pt := c.resolveAnnotation(p.Annotation, startPos(p.Span))
		paramTypes[i] = pt
		p.Info.Resolve(pt, startPos(p.Span))
		c.scope.Bind(htypes.Binding{Name: p.Name, Type: pt, Const: true})
	}
	retType := c.resolveAnnotation(m.ReturnAnnotation, startPos(m.Span_))

	if sig, ok := ti.Methods[m.Name]; ok {
		sig.Params = paramTypes
		sig.Return = retType
		ti.Methods[m.Name] = sig
	}

	c.checkOverride(ti, m, paramTypes, retType)

	prevSelf, prevRT, prevHR := c.selfType, c.returnType, c.hasReturn
	c.selfType, c.returnType, c.hasReturn = ti.Name, retType, true
	bodyType := ast.Accept[htypes.Type](m.Body, c)
	c.selfType, c.returnType, c.hasReturn = prevSelf, prevRT, prevHR

	if !retType.IsNone() && !c.a.types.Conforms(bodyType, retType) {
		c.a.bag.Errorf(startPos(m.Span_), string(KindFuncReturnTypeInvalid),
			"function %s returns %s but %s was found", m.Name, retType, bodyType)
	}
}

// checkOverride validates spec §4.5's method-override rule: identical
// arity, contravariant parameters, covariant return.
func (c *checker) checkOverride(ti *htypes.TypeInfo, m *ast.MethodDef, params []htypes.Type, ret htypes.Type) {
	if ti.Parent == "" {
		return
	}
	parentTi, ok := c.a.types.Lookup(ti.Parent)
	if !ok {
		return
	}
	parentSig, found := c.a.types.ResolveMethod(parentTi, m.Name)
	if !found {
		return
	}
	if len(parentSig.Params) != len(params) {
		c.a.bag.Errorf(startPos(m.Span_), string(KindInvalidMethodOverride),
			"method %s in type %s does not properly override parent definition", m.Name, ti.Name)
		return
	}
	ok2 := true
	for i := range params {
		// contravariance: override parameter must be a supertype of the parent's.
		if !c.a.types.Conforms(parentSig.Params[i], params[i]) {
			ok2 = false
		}
	}
	if !c.a.types.Conforms(ret, parentSig.Return) { // covariance: override return must be a subtype.
		ok2 = false
	}
	if !ok2 {
		c.a.bag.Errorf(startPos(m.Span_), string(KindInvalidMethodOverride),
			"method %s in type %s does not properly override parent definition", m.Name, ti.Name)
	}
}

func (c *checker) checkFunctionDef(fd *ast.FunctionDef) {
	c.scope.PushClosed()
	defer c.scope.Pop()

	paramTypes := make([]htypes.Type, len(fd.Params))
	for i := range fd.Params {
		p := &fd.Params[i]
		pt := c.resolveAnnotation(p.Annotation, startPos(p.Span))
		paramTypes[i] = pt
		p.Info.Resolve(pt, startPos(p.Span))
		c.scope.Bind(htypes.Binding{Name: p.Name, Type: pt, Const: true})
	}
	retType := c.resolveAnnotation(fd.ReturnAnnotation, startPos(fd.Span()))

	prevSelf, prevRT, prevHR := c.selfType, c.returnType, c.hasReturn
	c.selfType, c.returnType, c.hasReturn = "", retType, true
	bodyType := ast.Accept[htypes.Type](fd.Body, c)
	c.selfType, c.returnType, c.hasReturn = prevSelf, prevRT, prevHR

	if !retType.IsNone() && !c.a.types.Conforms(bodyType, retType) {
		c.a.bag.Errorf(startPos(fd.Span()), string(KindFuncReturnTypeInvalid),
			"function %s returns %s but %s was found", fd.Name, retType, bodyType)
	}
}

func (c *checker) checkConstantDef(cd *ast.ConstantDef) {
	valueType := ast.Accept[htypes.Type](cd.Value, c)
	declared := c.resolveAnnotation(cd.Annotation, startPos(cd.Span()))
	if !declared.IsNone() && !c.a.types.Conforms(valueType, declared) {
		c.a.bag.Errorf(startPos(cd.Span()), string(KindVarDefinitionTypeMismatch),
			"cannot assign %s to %s", valueType, declared)
	}
	finalType := declared
	if finalType.IsNone() {
		finalType = valueType
	}
	if _, exists := c.a.consts[cd.Name]; exists {
		c.a.bag.Errorf(startPos(cd.Span()), string(KindVarAlreadyDefined),
			"constant %s is already defined", cd.Name)
		return
	}
	c.a.consts[cd.Name] = finalType
	cd.Info.Resolve(finalType, startPos(cd.Span()))
	c.scope.Bind(htypes.Binding{Name: cd.Name, Type: finalType, Const: true})
}

// checkArgs validates call-site arity and per-argument conformance against
// expected, reporting arityKind/typeKind on mismatch.
func (c *checker) checkArgs(args []ast.Expr, expected []htypes.Type, calleeName string, pos diag.Position, arityKind, typeKind Kind) {
	if len(args) != len(expected) {
		c.a.bag.Errorf(pos, string(arityKind),
			"%s expects %d parameters, but %d were provided", calleeName, len(expected), len(args))
		return
	}
	for i, arg := range args {
		at := ast.Accept[htypes.Type](arg, c)
		if !c.a.types.Conforms(at, expected[i]) {
			c.a.bag.Errorf(pos, string(typeKind),
				"%s expects parameter %d of type %s, but got %s", calleeName, i, expected[i], at)
		}
	}
}
