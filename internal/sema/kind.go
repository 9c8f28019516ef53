// Package sema implements the four-pass semantic analyzer spec.md §4.5
// describes: global-definition registration, inheritance resolution with
// cycle detection and LCA precomputation, a single bottom-up type-check and
// annotation traversal, and a final topological sort of definitions for the
// code generator.
//
// The teacher repo has no analogous pass — tunascript is untyped — so the
// error-kind taxonomy here is grounded directly on the Rust original's
// granular per-case error types rather than adapted from a teacher file.
package sema

// Kind is a stable, machine-readable semantic error tag, one per
// SemanticError case in
// original_source/error_handler/src/error/semantic/semantic_error.rs.
type Kind string

const (
	KindBinOpInvalidOperands       Kind = "bin-op-invalid-operands"
	KindUnOpInvalidOperands        Kind = "un-op-invalid-operands"
	KindFuncAlreadyDefined         Kind = "func-already-defined"
	KindFuncParamsInvalidAmount    Kind = "func-params-invalid-amount"
	KindFuncParamInvalidType       Kind = "func-param-invalid-type"
	KindFuncReturnTypeInvalid      Kind = "func-return-type-invalid"
	KindTypeParamsInvalidAmount    Kind = "type-params-invalid-amount"
	KindTypeParamInvalidType       Kind = "type-param-invalid-type"
	KindUndefinedVariable          Kind = "undefined-variable"
	KindUndefinedFunction          Kind = "undefined-function"
	KindUndefinedType              Kind = "undefined-type"
	KindUndefinedTypeOrProtocol    Kind = "undefined-type-or-protocol"
	KindTypeOrProtocolAlreadyDef   Kind = "type-or-protocol-already-defined"
	KindTypeMemberAlreadyDefined   Kind = "type-member-already-defined"
	KindVarDefinitionTypeMismatch  Kind = "var-definition-type-mismatch"
	KindVarAlreadyDefined          Kind = "var-already-defined"
	KindInvalidReassignmentTarget  Kind = "invalid-reassignment-target"
	KindInvalidReassignmentType    Kind = "invalid-reassignment-type"
	KindListInvalidReassignment    Kind = "list-invalid-reassignment-type"
	KindInvalidReassignmentExpr    Kind = "invalid-reassignment-expression"
	KindInheritanceInvalidParent   Kind = "inheritance-invalid-parent"
	KindInheritanceCycle           Kind = "inheritance-cycle"
	KindNonIterableType            Kind = "non-iterable-type"
	KindInvalidIndexing            Kind = "invalid-indexing"
	KindAccessingPrivateMember     Kind = "accessing-private-member"
	KindFieldNotFound              Kind = "field-not-found"
	KindMethodNotFound             Kind = "method-not-found"
	KindFieldOverride              Kind = "field-override"
	KindInvalidMethodOverride      Kind = "invalid-method-override"
	KindUnknownListType            Kind = "unknown-list-type"
)
