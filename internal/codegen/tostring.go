package codegen

import "github.com/dekarrin/hulkc/internal/htypes"

// toStringValue renders v as an i8* C string, implementing the "any
// operand stringifies" rule the sema operator table records for @/@@
// (spec §4.5's binOpTable entry, operators.go's SameOperands-less any-type
// case). Numbers go through sprintf with the module's shared "%g" format
// global; Booleans select between two shared string constants; Strings
// pass through unchanged.
func (fg *funcGen) toStringValue(v value) string {
	switch v.typ.Kind() {
	case htypes.KindString:
		return v.reg
	case htypes.KindNumber:
		buf := fg.nm.temp()
		fg.emit("%s = call i8* @malloc(i64 64)", buf)
		fmtPtr := fg.nm.temp()
		fg.emit("%s = getelementptr [4 x i8], [4 x i8]* @.fmt.number, i32 0, i32 0", fmtPtr)
		fg.emit("call i32 (i8*, i8*, ...) @sprintf(i8* %s, i8* %s, double %s)", buf, fmtPtr, v.reg)
		return buf
	case htypes.KindBoolean:
		truePtr := fg.nm.temp()
		fg.emit("%s = getelementptr [5 x i8], [5 x i8]* @.str.true, i32 0, i32 0", truePtr)
		falsePtr := fg.nm.temp()
		fg.emit("%s = getelementptr [6 x i8], [6 x i8]* @.str.false, i32 0, i32 0", falsePtr)
		reg := fg.nm.temp()
		fg.emit("%s = select i1 %s, i8* %s, i8* %s", reg, v.reg, truePtr, falsePtr)
		return reg
	default:
		reg := fg.nm.temp()
		fg.emit("%s = bitcast %s %s to i8*", reg, fg.g.llvmType(v.typ), v.reg)
		return reg
	}
}

// emitPrint lowers the print builtin: stringify the argument (the same
// Number/Boolean/String rendering @/@@ use) and printf it with a trailing
// newline, per original_source/generator/src/visitor/print.rs's per-kind
// print_* helpers. print's own value is the argument, unchanged.
func (fg *funcGen) emitPrint(v value) value {
	s := fg.toStringValue(v)
	fmtPtr := fg.nm.temp()
	fg.emit("%s = getelementptr [4 x i8], [4 x i8]* @.fmt.print, i32 0, i32 0", fmtPtr)
	fg.emit("call i32 (i8*, ...) @printf(i8* %s, i8* %s)", fmtPtr, s)
	return v
}

// concatStrings implements spec §9's open-question resolution for string
// concatenation: allocate a fresh buffer sized strlen(a)+strlen(b)+1 (plus
// one more byte for the inserted separator when sep is true, @@'s
// space-insertion behavior), then strcat both pieces in.
func (fg *funcGen) concatStrings(a, b string, sep bool) string {
	lenA := fg.nm.temp()
	fg.emit("%s = call i64 @strlen(i8* %s)", lenA, a)
	lenB := fg.nm.temp()
	fg.emit("%s = call i64 @strlen(i8* %s)", lenB, b)
	total := fg.nm.temp()
	fg.emit("%s = add i64 %s, %s", total, lenA, lenB)
	extra := 1
	if sep {
		extra = 2
	}
	sized := fg.nm.temp()
	fg.emit("%s = add i64 %s, %d", sized, total, extra)
	buf := fg.nm.temp()
	fg.emit("%s = call i8* @malloc(i64 %s)", buf, sized)
	fg.emit("call i8* @strcat(i8* %s, i8* %s)", buf, zeroedFirstByte(fg, buf))
	fg.emit("call i8* @strcat(i8* %s, i8* %s)", buf, a)
	if sep {
		spacePtr := fg.nm.temp()
		fg.emit("%s = getelementptr [2 x i8], [2 x i8]* @.str.space, i32 0, i32 0", spacePtr)
		fg.emit("call i8* @strcat(i8* %s, i8* %s)", buf, spacePtr)
	}
	fg.emit("call i8* @strcat(i8* %s, i8* %s)", buf, b)
	return buf
}

// zeroedFirstByte stores a nul terminator at buf[0] so the first strcat
// call appends onto an empty C string instead of whatever garbage malloc
// returned.
func zeroedFirstByte(fg *funcGen, buf string) string {
	fg.emit("store i8 0, i8* %s", buf)
	return buf
}

// concatLists implements spec §8 scenario 2's list `+` concatenation:
// malloc a buffer sized for both lists' combined length at their common
// element type, then copy each source list's elements across with
// copyListInto, mirroring VisitListLit's own malloc-then-fill shape.
func (fg *funcGen) concatLists(l, r value, resultElem htypes.Type) value {
	elemLL := fg.g.llvmType(resultElem)

	lLen := fg.loadListLen(l)
	rLen := fg.loadListLen(r)
	totalLen := fg.nm.temp()
	fg.emit("%s = add i64 %s, %s", totalLen, lLen, rLen)

	gepSz := fg.nm.temp()
	fg.emit("%s = getelementptr %s, %s* null, i32 1", gepSz, elemLL, elemLL)
	szReg := fg.nm.temp()
	fg.emit("%s = ptrtoint %s* %s to i64", szReg, elemLL, gepSz)
	totalBytes := fg.nm.temp()
	fg.emit("%s = mul i64 %s, %s", totalBytes, szReg, totalLen)

	raw := fg.nm.temp()
	fg.emit("%s = call i8* @malloc(i64 %s)", raw, totalBytes)
	typedBuf := fg.nm.temp()
	fg.emit("%s = bitcast i8* %s to %s*", typedBuf, raw, elemLL)

	fg.copyListInto(typedBuf, "0", l, resultElem)
	fg.copyListInto(typedBuf, lLen, r, resultElem)

	listRaw := fg.nm.temp()
	fg.emit("%s = call i8* @malloc(i64 16)", listRaw)
	listPtr := fg.nm.temp()
	fg.emit("%s = bitcast i8* %s to %%list_type*", listPtr, listRaw)
	f0 := fg.nm.temp()
	fg.emit("%s = getelementptr %%list_type, %%list_type* %s, i32 0, i32 0", f0, listPtr)
	fg.emit("store i8* %s, i8** %s", raw, f0)
	f1 := fg.nm.temp()
	fg.emit("%s = getelementptr %%list_type, %%list_type* %s, i32 0, i32 1", f1, listPtr)
	fg.emit("store i64 %s, i64* %s", totalLen, f1)

	return value{reg: listPtr, typ: htypes.Iterable(resultElem)}
}

// loadListLen reads the i64 length field off a %list_type* value.
func (fg *funcGen) loadListLen(v value) string {
	f1 := fg.nm.temp()
	fg.emit("%s = getelementptr %%list_type, %%list_type* %s, i32 0, i32 1", f1, v.reg)
	lenReg := fg.nm.temp()
	fg.emit("%s = load i64, i64* %s", lenReg, f1)
	return lenReg
}

// copyListInto walks src's element buffer (same index-counter loop shape
// as VisitFor) and stores each element, coerced to resultElem, into
// destBuf starting at index startReg — the two concatLists calls for l
// and r share this to fill disjoint halves of one destination buffer.
func (fg *funcGen) copyListInto(destBuf, startReg string, src value, resultElem htypes.Type) {
	srcElemTy := src.typ.Elem()
	srcElemLL := fg.g.llvmType(srcElemTy)
	destElemLL := fg.g.llvmType(resultElem)

	f0 := fg.nm.temp()
	fg.emit("%s = getelementptr %%list_type, %%list_type* %s, i32 0, i32 0", f0, src.reg)
	rawBuf := fg.nm.temp()
	fg.emit("%s = load i8*, i8** %s", rawBuf, f0)
	typedBuf := fg.nm.temp()
	fg.emit("%s = bitcast i8* %s to %s*", typedBuf, rawBuf, srcElemLL)
	lenReg := fg.loadListLen(src)

	idxPtr := fg.nm.temp()
	fg.emit("%s = alloca i64", idxPtr)
	fg.emit("store i64 0, i64* %s", idxPtr)

	condL := fg.nm.label("concat.cond")
	bodyL := fg.nm.label("concat.body")
	endL := fg.nm.label("concat.end")

	fg.emit("br label %%%s", condL)
	fg.label(condL)
	idxVal := fg.nm.temp()
	fg.emit("%s = load i64, i64* %s", idxVal, idxPtr)
	cmp := fg.nm.temp()
	fg.emit("%s = icmp slt i64 %s, %s", cmp, idxVal, lenReg)
	fg.emit("br i1 %s, label %%%s, label %%%s", cmp, bodyL, endL)

	fg.label(bodyL)
	srcElp := fg.nm.temp()
	fg.emit("%s = getelementptr %s, %s* %s, i64 %s", srcElp, srcElemLL, srcElemLL, typedBuf, idxVal)
	srcElv := fg.nm.temp()
	fg.emit("%s = load %s, %s* %s", srcElv, srcElemLL, srcElemLL, srcElp)

	destIdx := fg.nm.temp()
	fg.emit("%s = add i64 %s, %s", destIdx, startReg, idxVal)
	destElp := fg.nm.temp()
	fg.emit("%s = getelementptr %s, %s* %s, i64 %s", destElp, destElemLL, destElemLL, destBuf, destIdx)
	fg.emit("store %s %s, %s* %s", destElemLL, fg.coerce(value{reg: srcElv, typ: srcElemTy}, resultElem), destElemLL, destElp)

	nextIdx := fg.nm.temp()
	fg.emit("%s = add i64 %s, 1", nextIdx, idxVal)
	fg.emit("store i64 %s, i64* %s", nextIdx, idxPtr)
	fg.emit("br label %%%s", condL)

	fg.label(endL)
}

// equalityValue implements ==/!= per-kind: Number/Boolean compare
// directly, String compares via strcmp, everything else (user-type
// references) compares by pointer identity after erasing to i8*.
func (fg *funcGen) equalityValue(op string, l, r value) string {
	reg := fg.nm.temp()
	pred := "eq"
	if op == "!=" {
		pred = "ne"
	}
	switch {
	case l.typ.Kind() == htypes.KindNumber:
		fpred := map[string]string{"eq": "oeq", "ne": "one"}[pred]
		fg.emit("%s = fcmp %s double %s, %s", reg, fpred, l.reg, r.reg)
	case l.typ.Kind() == htypes.KindBoolean:
		fg.emit("%s = icmp %s i1 %s, %s", reg, pred, l.reg, r.reg)
	case l.typ.Kind() == htypes.KindString:
		cmp := fg.nm.temp()
		fg.emit("%s = call i32 @strcmp(i8* %s, i8* %s)", cmp, l.reg, r.reg)
		fg.emit("%s = icmp %s i32 %s, 0", reg, pred, cmp)
	default:
		la := fg.nm.temp()
		fg.emit("%s = bitcast %s %s to i8*", la, fg.g.llvmType(l.typ), l.reg)
		ra := fg.nm.temp()
		fg.emit("%s = bitcast %s %s to i8*", ra, fg.g.llvmType(r.typ), r.reg)
		fg.emit("%s = icmp %s i8* %s, %s", reg, pred, la, ra)
	}
	return reg
}
