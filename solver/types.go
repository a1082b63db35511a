// Package solver implements the Structural Type Solver (spec.md §4.9): a
// union-find based inference engine that assigns every input JSON node a
// structural JSONType and an optional nominal tag, unifies nodes linked by
// $ref into equivalence classes, and reports NOMINAL_CONFLICT /
// STRUCT_CONFLICT diagnostics.
package solver

import (
	"github.com/speakeasy-api/openapi-lsp/errors"
	"github.com/speakeasy-api/openapi-lsp/nodeid"
	"github.com/speakeasy-api/openapi-lsp/nominal"
)

const (
	// ErrNotInInput is returned by getType/getClassId for a NodeId that was
	// never part of the solve input.
	ErrNotInInput = errors.Error("NotInInput")
	// ErrNoClass is returned by getClassId for a NodeId that belongs to the
	// input but was, unexpectedly, never unioned into a class.
	ErrNoClass = errors.Error("NoClass")
)

// ShapeKind discriminates the LocalShape tagged variant.
type ShapeKind int

const (
	ShapePrim ShapeKind = iota
	ShapeRef
	ShapeArray
	ShapeObject
)

// PrimKind discriminates the literal kind behind a ShapePrim/TypePrim.
type PrimKind int

const (
	PrimNull PrimKind = iota
	PrimBool
	PrimNumber
	PrimString
)

// LocalShape is the solver's per-node input, produced by the shape/nominal
// extractor by walking a document's YAML AST.
type LocalShape struct {
	Kind ShapeKind

	// Prim holds the literal value for ShapePrim, used only to infer its
	// PrimKind.
	Prim any

	// Ref is the unification target for ShapeRef.
	Ref nodeid.NodeId

	// Array maps stringified index -> element NodeId for ShapeArray.
	Array map[string]nodeid.NodeId

	// Object maps field name -> field NodeId for ShapeObject.
	Object map[string]nodeid.NodeId
}

// TypeKind discriminates the JSONType tagged variant.
type TypeKind int

const (
	TypePrim TypeKind = iota
	TypeArray
	TypeObject
	TypeVar
	TypeNominal
)

// JSONType is the solver's structural output for a node's equivalence
// class.
type JSONType struct {
	Kind PrimKind // only meaningful when TypeKind == TypePrim

	Elem   *JSONType           // only meaningful when TypeKind == TypeArray
	Fields map[string]JSONType // only meaningful when TypeKind == TypeObject
	Nom    nominal.ID          // only meaningful when TypeKind == TypeNominal

	typeKind TypeKind
}

func (t JSONType) TypeKind() TypeKind { return t.typeKind }

// Variable constructs an unresolved typevar.
func Variable() JSONType { return JSONType{typeKind: TypeVar} }

// Prim constructs a primitive JSONType.
func Prim(kind PrimKind) JSONType { return JSONType{typeKind: TypePrim, Kind: kind} }

// Array constructs an array JSONType.
func Array(elem JSONType) JSONType { return JSONType{typeKind: TypeArray, Elem: &elem} }

// Object constructs an object JSONType.
func Object(fields map[string]JSONType) JSONType { return JSONType{typeKind: TypeObject, Fields: fields} }

// Nominal constructs a reserved nominal JSONType.
func Nominal(id nominal.ID) JSONType { return JSONType{typeKind: TypeNominal, Nom: id} }

// DiagnosticKind discriminates the diagnostics the solver can emit.
type DiagnosticKind int

const (
	DiagNominalConflict DiagnosticKind = iota
	DiagStructConflict
	DiagMissingTarget
)

// Diagnostic is one conflict surfaced during a solve.
type Diagnostic struct {
	Kind DiagnosticKind

	// NominalConflict fields.
	A, B           nominal.ID
	ProofA, ProofB nodeid.NodeId

	// StructConflict fields.
	Node        nodeid.NodeId
	Left, Right JSONType

	// MissingTarget fields.
	From, To nodeid.NodeId
}

// Options tune a solve. The zero value matches Solve's defaults.
type Options struct {
	// StrictExternalRefs emits a MissingTarget diagnostic for every ref
	// whose target lies outside the solve input, instead of tracking the
	// target silently as an external node. External tracking still happens
	// either way, so outgoing types/nominals are unaffected.
	StrictExternalRefs bool
}

// Input is the solver's request: a document fragment's (or group's) nodes,
// local nominal anchors, and any types/nominals propagated in from upstream
// groups.
type Input struct {
	Nodes            map[nodeid.NodeId]LocalShape
	Nominals         map[nodeid.NodeId]nominal.ID
	IncomingTypes    map[nodeid.NodeId][]JSONType
	IncomingNominals map[nodeid.NodeId][]nominal.ID
}
