package solver

import (
	"sort"

	"github.com/speakeasy-api/openapi-lsp/nodeid"
	"github.com/speakeasy-api/openapi-lsp/nominal"
)

// ClassID is a solve-local equivalence class identifier. It is only
// meaningful within the Result that produced it.
type ClassID int

// Result is a completed solve: structural types, nominal tags, and any
// conflict diagnostics, per class.
type Result struct {
	OK          bool
	Diagnostics []Diagnostic

	input         Input
	nodeClass     map[nodeid.NodeId]ClassID
	classType     map[ClassID]JSONType
	classNominal  map[ClassID]nominal.ID
	externalNodes map[nodeid.NodeId]bool
}

// Solve runs the three-phase unification algorithm over input with default
// options.
func Solve(input Input) *Result {
	return SolveWithOptions(input, Options{})
}

// SolveWithOptions runs the three-phase unification algorithm over input.
func SolveWithOptions(input Input, opts Options) *Result {
	r := &Result{input: input}

	uf, externalNodes := buildUnionFind(input)
	r.externalNodes = externalNodes

	classMembers, nodeClass := assignClasses(uf)
	r.nodeClass = nodeClass

	classNominal, diags := resolveNominals(input, classMembers, externalNodes)
	r.classNominal = classNominal
	r.Diagnostics = diags

	classTypes, structDiags := unifyStructure(input, classMembers, nodeClass, externalNodes)
	r.classType = classTypes
	r.Diagnostics = append(r.Diagnostics, structDiags...)

	if opts.StrictExternalRefs {
		r.Diagnostics = append(r.Diagnostics, missingTargetDiagnostics(input)...)
	}

	r.OK = len(r.Diagnostics) == 0
	return r
}

// missingTargetDiagnostics reports every ref whose target is not part of the
// solve input, in node order.
func missingTargetDiagnostics(input Input) []Diagnostic {
	nodes := make([]nodeid.NodeId, 0, len(input.Nodes))
	for node := range input.Nodes {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	var diags []Diagnostic
	for _, node := range nodes {
		shape := input.Nodes[node]
		if shape.Kind != ShapeRef {
			continue
		}
		if _, ok := input.Nodes[shape.Ref]; ok {
			continue
		}
		diags = append(diags, Diagnostic{Kind: DiagMissingTarget, From: node, To: shape.Ref})
	}
	return diags
}

func buildUnionFind(input Input) (*unionFind, map[nodeid.NodeId]bool) {
	uf := newUnionFind()
	for node := range input.Nodes {
		uf.makeSet(node)
	}

	external := make(map[nodeid.NodeId]bool)
	for node, shape := range input.Nodes {
		if shape.Kind != ShapeRef {
			continue
		}
		target := shape.Ref
		if _, ok := input.Nodes[target]; !ok {
			external[target] = true
			uf.makeSet(target)
		}
		uf.union(node, target)
	}
	return uf, external
}

func assignClasses(uf *unionFind) (map[ClassID][]nodeid.NodeId, map[nodeid.NodeId]ClassID) {
	comps := uf.components()
	groups := make([][]nodeid.NodeId, 0, len(comps))
	for _, members := range comps {
		sort.Slice(members, func(a, b int) bool { return members[a] < members[b] })
		groups = append(groups, members)
	}
	// Classes are numbered by their smallest member, which unlike the
	// union-find root does not depend on the order unions were applied in.
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })

	classMembers := make(map[ClassID][]nodeid.NodeId, len(groups))
	nodeClass := make(map[nodeid.NodeId]ClassID)
	for i, members := range groups {
		cid := ClassID(i)
		classMembers[cid] = members
		for _, m := range members {
			nodeClass[m] = cid
		}
	}
	return classMembers, nodeClass
}

func resolveNominals(input Input, classMembers map[ClassID][]nodeid.NodeId, external map[nodeid.NodeId]bool) (map[ClassID]nominal.ID, []Diagnostic) {
	classNominal := make(map[ClassID]nominal.ID)
	proofNode := make(map[ClassID]nodeid.NodeId)
	var diags []Diagnostic

	ids := sortedClassIDs(classMembers)
	for _, cid := range ids {
		for _, node := range classMembers[cid] {
			if external[node] {
				continue
			}
			nomID, ok := input.Nominals[node]
			if !ok {
				continue
			}
			diags = applyNominal(classNominal, proofNode, diags, cid, node, nomID)
		}
	}

	nodeClass := make(map[nodeid.NodeId]ClassID)
	for cid, members := range classMembers {
		for _, m := range members {
			nodeClass[m] = cid
		}
	}

	incomingNodes := make([]nodeid.NodeId, 0, len(input.IncomingNominals))
	for node := range input.IncomingNominals {
		incomingNodes = append(incomingNodes, node)
	}
	sort.Slice(incomingNodes, func(i, j int) bool { return incomingNodes[i] < incomingNodes[j] })

	for _, node := range incomingNodes {
		cid, ok := nodeClass[node]
		if !ok {
			continue
		}
		for _, nomID := range input.IncomingNominals[node] {
			diags = applyNominal(classNominal, proofNode, diags, cid, node, nomID)
		}
	}

	return classNominal, diags
}

func applyNominal(classNominal map[ClassID]nominal.ID, proofNode map[ClassID]nodeid.NodeId, diags []Diagnostic, cid ClassID, node nodeid.NodeId, nomID nominal.ID) []Diagnostic {
	existing, has := classNominal[cid]
	if !has {
		classNominal[cid] = nomID
		proofNode[cid] = node
		return diags
	}
	if existing != nomID {
		diags = append(diags, Diagnostic{
			Kind:   DiagNominalConflict,
			A:      existing,
			B:      nomID,
			ProofA: proofNode[cid],
			ProofB: node,
		})
	}
	return diags
}

func sortedClassIDs(classMembers map[ClassID][]nodeid.NodeId) []ClassID {
	ids := make([]ClassID, 0, len(classMembers))
	for cid := range classMembers {
		ids = append(ids, cid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func unifyStructure(input Input, classMembers map[ClassID][]nodeid.NodeId, nodeClass map[nodeid.NodeId]ClassID, external map[nodeid.NodeId]bool) (map[ClassID]JSONType, []Diagnostic) {
	classTypes := make(map[ClassID]JSONType)
	pending := make(map[ClassID]bool)
	for cid := range classMembers {
		pending[cid] = true
	}

	var diags []Diagnostic

	for {
		progress := false
		for _, cid := range sortedClassIDs(classMembers) {
			if !pending[cid] {
				continue
			}
			if !childrenReady(input, classMembers[cid], nodeClass, classTypes, external) {
				continue
			}
			t, node, left, right, ok := unifyClass(input, classMembers[cid], nodeClass, classTypes, external)
			if !ok {
				diags = append(diags, Diagnostic{Kind: DiagStructConflict, Node: node, Left: left, Right: right})
				// A conflicting class still needs a type to let dependents
				// proceed; fall back to typevar rather than stalling the
				// fixed point on it forever.
				classTypes[cid] = Variable()
				delete(pending, cid)
				progress = true
				continue
			}
			classTypes[cid] = t
			delete(pending, cid)
			progress = true
		}
		if !progress {
			break
		}
	}

	for cid := range pending {
		classTypes[cid] = Variable()
	}

	return classTypes, diags
}

func childrenReady(input Input, members []nodeid.NodeId, nodeClass map[nodeid.NodeId]ClassID, classTypes map[ClassID]JSONType, external map[nodeid.NodeId]bool) bool {
	for _, member := range members {
		if external[member] {
			continue
		}
		shape, ok := input.Nodes[member]
		if !ok {
			continue
		}
		for _, child := range shapeChildren(shape) {
			cid, ok := nodeClass[child]
			if !ok {
				continue
			}
			if _, ready := classTypes[cid]; !ready {
				return false
			}
		}
	}
	return true
}

func shapeChildren(shape LocalShape) []nodeid.NodeId {
	switch shape.Kind {
	case ShapeArray:
		children := make([]nodeid.NodeId, 0, len(shape.Array))
		for _, n := range shape.Array {
			children = append(children, n)
		}
		return children
	case ShapeObject:
		children := make([]nodeid.NodeId, 0, len(shape.Object))
		for _, n := range shape.Object {
			children = append(children, n)
		}
		return children
	default:
		return nil
	}
}

func unifyClass(input Input, members []nodeid.NodeId, nodeClass map[nodeid.NodeId]ClassID, classTypes map[ClassID]JSONType, external map[nodeid.NodeId]bool) (result JSONType, conflictNode nodeid.NodeId, left, right JSONType, ok bool) {
	acc := Variable()

	for _, member := range members {
		for _, t := range input.IncomingTypes[member] {
			unified, merged := unifyTypes(acc, t)
			if !merged {
				return JSONType{}, member, acc, t, false
			}
			acc = unified
		}
	}

	for _, member := range members {
		if external[member] {
			continue
		}
		shape, has := input.Nodes[member]
		if !has || shape.Kind == ShapeRef {
			continue
		}
		t := shapeToType(shape, nodeClass, classTypes)
		unified, merged := unifyTypes(acc, t)
		if !merged {
			return JSONType{}, member, acc, t, false
		}
		acc = unified
	}

	return acc, "", JSONType{}, JSONType{}, true
}

func shapeToType(shape LocalShape, nodeClass map[nodeid.NodeId]ClassID, classTypes map[ClassID]JSONType) JSONType {
	switch shape.Kind {
	case ShapePrim:
		return Prim(inferPrimKind(shape.Prim))
	case ShapeArray:
		if len(shape.Array) == 0 {
			return Array(Variable())
		}
		keys := make([]string, 0, len(shape.Array))
		for k := range shape.Array {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		childType := classTypeOf(shape.Array[keys[0]], nodeClass, classTypes)
		return Array(childType)
	case ShapeObject:
		fields := make(map[string]JSONType, len(shape.Object))
		for k, childNode := range shape.Object {
			fields[k] = classTypeOf(childNode, nodeClass, classTypes)
		}
		return Object(fields)
	case ShapeRef:
		return Variable()
	default:
		return Variable()
	}
}

func classTypeOf(node nodeid.NodeId, nodeClass map[nodeid.NodeId]ClassID, classTypes map[ClassID]JSONType) JSONType {
	cid, ok := nodeClass[node]
	if !ok {
		return Variable()
	}
	t, ok := classTypes[cid]
	if !ok {
		return Variable()
	}
	return t
}

func inferPrimKind(v any) PrimKind {
	switch v.(type) {
	case nil:
		return PrimNull
	case bool:
		return PrimBool
	case int, int64, float64:
		return PrimNumber
	default:
		return PrimString
	}
}

// unifyTypes merges a and b per spec.md §4.9's unifyTypes table: a typevar
// unifies with anything; different kinds never unify; prim/object/nominal
// require exact matches (object additionally requires matching key sets);
// array recurses into elem.
func unifyTypes(a, b JSONType) (JSONType, bool) {
	if a.TypeKind() == TypeVar {
		return b, true
	}
	if b.TypeKind() == TypeVar {
		return a, true
	}
	if a.TypeKind() != b.TypeKind() {
		return JSONType{}, false
	}

	switch a.TypeKind() {
	case TypePrim:
		if a.Kind == b.Kind {
			return a, true
		}
		return JSONType{}, false
	case TypeArray:
		elem, ok := unifyTypes(*a.Elem, *b.Elem)
		if !ok {
			return JSONType{}, false
		}
		return Array(elem), true
	case TypeObject:
		if len(a.Fields) != len(b.Fields) {
			return JSONType{}, false
		}
		fields := make(map[string]JSONType, len(a.Fields))
		for k, av := range a.Fields {
			bv, ok := b.Fields[k]
			if !ok {
				return JSONType{}, false
			}
			u, ok := unifyTypes(av, bv)
			if !ok {
				return JSONType{}, false
			}
			fields[k] = u
		}
		return Object(fields), true
	case TypeNominal:
		if a.Nom == b.Nom {
			return a, true
		}
		return JSONType{}, false
	default:
		return JSONType{}, false
	}
}

// GetType returns node's resolved structural type.
func (r *Result) GetType(node nodeid.NodeId) (JSONType, error) {
	if _, ok := r.input.Nodes[node]; !ok {
		return JSONType{}, ErrNotInInput
	}
	cid, ok := r.nodeClass[node]
	if !ok {
		return Variable(), nil
	}
	return r.classType[cid], nil
}

// GetClassID returns node's equivalence class.
func (r *Result) GetClassID(node nodeid.NodeId) (ClassID, error) {
	if _, ok := r.input.Nodes[node]; !ok {
		return 0, ErrNotInInput
	}
	cid, ok := r.nodeClass[node]
	if !ok {
		return 0, ErrNoClass
	}
	return cid, nil
}

// GetCanonicalNominal returns node's class nominal, if any.
func (r *Result) GetCanonicalNominal(node nodeid.NodeId) (nominal.ID, bool) {
	cid, ok := r.nodeClass[node]
	if !ok {
		return "", false
	}
	nom, ok := r.classNominal[cid]
	return nom, ok
}

// GetOutgoingTypes exposes every external node's resolved type, for a
// downstream group to consume as IncomingTypes.
func (r *Result) GetOutgoingTypes() map[nodeid.NodeId]JSONType {
	out := make(map[nodeid.NodeId]JSONType, len(r.externalNodes))
	for node := range r.externalNodes {
		cid, ok := r.nodeClass[node]
		if !ok {
			continue
		}
		out[node] = r.classType[cid]
	}
	return out
}

// GetOutgoingNominals exposes every external node's class nominal, for a
// downstream group to consume as IncomingNominals.
func (r *Result) GetOutgoingNominals() map[nodeid.NodeId]nominal.ID {
	out := make(map[nodeid.NodeId]nominal.ID, len(r.externalNodes))
	for node := range r.externalNodes {
		cid, ok := r.nodeClass[node]
		if !ok {
			continue
		}
		nom, ok := r.classNominal[cid]
		if !ok {
			continue
		}
		out[node] = nom
	}
	return out
}
