package codegen

import (
	"fmt"
	"strings"

	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/dekarrin/hulkc/internal/htypes"
)

// emitConstructor lowers @T_new per spec §4.6: malloc the struct, install
// the vtable pointer, invoke the parent constructor and copy its fields
// across (the single-inheritance layout guarantees parent fields occupy
// the same slot indices in both structs), then evaluate each of T's own
// field initializers in declaration order with self already bound.
func (g *Generator) emitConstructor(out *strings.Builder, td *ast.TypeDef, l *typeLayout) error {
	ti, ok := g.ctx.Lookup(td.Name)
	if !ok {
		return fmt.Errorf("codegen: type %s not registered", td.Name)
	}
	sTy := structTypeName(td.Name)

	fg := newFuncGen(g, td.Name)
	fg.label("entry")

	for _, p := range ti.ConstructorParams {
		argReg := "%arg." + p.Name
		fg.declareLocal(p.Name, p.Type, argReg)
	}

	gepReg := fg.nm.temp()
	fg.emit("%s = getelementptr %s, %s* null, i32 1", gepReg, sTy, sTy)
	sizeReg := fg.nm.temp()
	fg.emit("%s = ptrtoint %s* %s to i64", sizeReg, sTy, gepReg)
	rawReg := fg.nm.temp()
	fg.emit("%s = call i8* @malloc(i64 %s)", rawReg, sizeReg)
	selfReg := fg.nm.temp()
	fg.emit("%s = bitcast i8* %s to %s*", selfReg, rawReg, sTy)

	vSlot := fg.nm.temp()
	fg.emit("%s = getelementptr %s, %s* %s, i32 0, i32 0", vSlot, sTy, sTy, selfReg)
	fg.emit("store %s* %s, %s** %s", vtableTypeName(td.Name), vtableGlobalName(td.Name), vtableTypeName(td.Name), vSlot)

	parentFieldCount := 0
	if ti.Parent != "" && ti.Parent != "Object" {
		parentLayout := g.layouts[ti.Parent]
		parentFieldCount = len(parentLayout.Fields)
		pSTy := structTypeName(ti.Parent)

		args := make([]string, 0, len(td.ParentArgs))
		for i, a := range td.ParentArgs {
			av := ast.Accept[value](a, fg)
			parentTi, _ := g.ctx.Lookup(ti.Parent)
			expected := parentTi.ConstructorParams[i].Type
			args = append(args, g.llvmType(expected)+" "+fg.coerce(av, expected))
		}
		parentReg := fg.nm.temp()
		fg.emit("%s = call %s* %s(%s)", parentReg, pSTy, constructorName(ti.Parent), strings.Join(args, ", "))

		for i, f := range parentLayout.Fields {
			fty := g.llvmType(f.Type)
			srcGep := fg.nm.temp()
			fg.emit("%s = getelementptr %s, %s* %s, i32 0, i32 %d", srcGep, pSTy, pSTy, parentReg, i+1)
			ldReg := fg.nm.temp()
			fg.emit("%s = load %s, %s* %s", ldReg, fty, fty, srcGep)
			dstGep := fg.nm.temp()
			fg.emit("%s = getelementptr %s, %s* %s, i32 0, i32 %d", dstGep, sTy, sTy, selfReg, i+1)
			fg.emit("store %s %s, %s* %s", fty, ldReg, fty, dstGep)
		}
	}

	fg.declareLocal("self", htypes.User(td.Name), selfReg)

	for i, f := range td.Fields {
		idx := parentFieldCount + i + 1
		fieldTy := ti.Fields[f.Name].Type
		var fv value
		if f.Default != nil {
			fv = ast.Accept[value](f.Default, fg)
		} else {
			fv = value{reg: "null", typ: htypes.Object()}
		}
		fty := g.llvmType(fieldTy)
		dstGep := fg.nm.temp()
		fg.emit("%s = getelementptr %s, %s* %s, i32 0, i32 %d", dstGep, sTy, sTy, selfReg, idx)
		fg.emit("store %s %s, %s* %s", fty, fg.coerce(fv, fieldTy), fty, dstGep)
	}

	fg.emit("ret %s* %s", sTy, selfReg)

	paramDecls := make([]string, 0, len(ti.ConstructorParams))
	for _, p := range ti.ConstructorParams {
		paramDecls = append(paramDecls, g.llvmType(p.Type)+" %arg."+p.Name)
	}
	fmt.Fprintf(out, "define %s* %s(%s) {\n", sTy, constructorName(td.Name), strings.Join(paramDecls, ", "))
	out.WriteString(fg.buf.String())
	out.WriteString("}\n\n")
	return nil
}

// emitMethod lowers one method body to @Owner_method_Name, with self passed
// as the first parameter erased to i8* (spec §4.6: "methods receiving self
// as first argument cast at call sites") and immediately bitcast back to
// the declaring type's own pointer type on entry.
func (g *Generator) emitMethod(out *strings.Builder, td *ast.TypeDef, l *typeLayout, m *ast.MethodDef) error {
	sTy := structTypeName(td.Name)
	retType := g.resolveAnnotation(m.ReturnAnnotation)

	fg := newFuncGen(g, td.Name)
	fg.retType = retType
	fg.label("entry")

	selfTyped := fg.nm.temp()
	fg.emit("%s = bitcast i8* %%arg.self to %s*", selfTyped, sTy)
	fg.declareLocal("self", htypes.User(td.Name), selfTyped)

	paramDecls := []string{"i8* %arg.self"}
	for i := range m.Params {
		p := &m.Params[i]
		pt := g.resolveAnnotation(p.Annotation)
		argReg := "%arg." + p.Name
		fg.declareLocal(p.Name, pt, argReg)
		paramDecls = append(paramDecls, g.llvmType(pt)+" "+argReg)
	}

	bodyVal := ast.Accept[value](m.Body, fg)
	fg.emit("ret %s %s", g.llvmType(retType), fg.coerce(bodyVal, retType))

	fmt.Fprintf(out, "define %s %s(%s) {\n", g.llvmType(retType), methodFuncName(td.Name, m.Name), strings.Join(paramDecls, ", "))
	out.WriteString(fg.buf.String())
	out.WriteString("}\n\n")
	return nil
}

// emitFunction lowers one global function definition.
func (g *Generator) emitFunction(out *strings.Builder, fd *ast.FunctionDef) error {
	retType := g.resolveAnnotation(fd.ReturnAnnotation)

	fg := newFuncGen(g, "")
	fg.retType = retType
	fg.label("entry")

	paramDecls := make([]string, 0, len(fd.Params))
	for i := range fd.Params {
		p := &fd.Params[i]
		pt := g.resolveAnnotation(p.Annotation)
		argReg := "%arg." + p.Name
		fg.declareLocal(p.Name, pt, argReg)
		paramDecls = append(paramDecls, g.llvmType(pt)+" "+argReg)
	}

	bodyVal := ast.Accept[value](fd.Body, fg)
	fg.emit("ret %s %s", g.llvmType(retType), fg.coerce(bodyVal, retType))

	fmt.Fprintf(out, "define %s @%s(%s) {\n", g.llvmType(retType), fd.Name, strings.Join(paramDecls, ", "))
	out.WriteString(fg.buf.String())
	out.WriteString("}\n\n")
	return nil
}

// emitMain lowers the program's top-level expressions into @main, per
// spec §6's "one @main entry evaluating top-level expressions in
// sequence." Each expression's own value is discarded; only its side
// effects (field mutation, print's printf call, loop iteration) matter at
// the top level.
func (g *Generator) emitMain(constDefs []*ast.ConstantDef, exprs []ast.Expr) (string, error) {
	fg := newFuncGen(g, "")
	fg.retType = htypes.Object()
	fg.label("entry")
	for _, cd := range constDefs {
		v := ast.Accept[value](cd.Value, fg)
		ty := g.llvmType(cd.Info.Type)
		fg.emit("store %s %s, %s* %s", ty, fg.coerce(v, cd.Info.Type), ty, globalConstName(cd.Name))
	}
	for _, e := range exprs {
		ast.Accept[value](e, fg)
	}
	fg.emit("ret i32 0")

	var out strings.Builder
	out.WriteString("define i32 @main() {\n")
	out.WriteString(fg.buf.String())
	out.WriteString("}\n")
	return out.String(), nil
}
