// Package shapeextract implements Shape & Nominal Extraction (spec.md
// §4.8): it walks a document's YAML AST into the solver's LocalShape input,
// and pairs a lenient OpenAPI decode (supplied externally via a
// nominal.Decoder) against that same AST to record nominal anchors and
// $ref "requested nominal" tags, split into local (same document) and
// outgoing (cross-document) sets.
package shapeextract

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/speakeasy-api/openapi-lsp/docmanager"
	"github.com/speakeasy-api/openapi-lsp/jsonpointer"
	"github.com/speakeasy-api/openapi-lsp/nodeid"
	"github.com/speakeasy-api/openapi-lsp/nominal"
	"github.com/speakeasy-api/openapi-lsp/querycache"
	"github.com/speakeasy-api/openapi-lsp/resolver"
	"github.com/speakeasy-api/openapi-lsp/solver"
	"github.com/speakeasy-api/openapi-lsp/yml"
)

// NominalAnchors is the result of pairing a lenient decode with the YAML
// AST: every Reference's requested nominal, split by whether its target
// lives in the same document or another one.
type NominalAnchors struct {
	Local    map[nodeid.NodeId]nominal.ID
	Outgoing map[nodeid.NodeId]nominal.ID
}

// Manager extracts shapes and nominal anchors for group analysis. It holds
// no state of its own; every method is driven by the caller's
// querycache.Context so extraction participates in the caller's dependency
// graph rather than owning a loader of its own.
type Manager struct {
	docs     *docmanager.Manager
	resolver *resolver.Manager
}

// New constructs a Manager.
func New(docs *docmanager.Manager, resolve *resolver.Manager) *Manager {
	return &Manager{docs: docs, resolver: resolve}
}

// ExtractShapes walks docURI's entire YAML AST into LocalShapes, per
// spec.md §4.8: scalars become prim, sequences become array, maps with a
// $ref child become ref, and all other maps become object.
func (m *Manager) ExtractShapes(qc *querycache.Context, docURI string) (map[nodeid.NodeId]solver.LocalShape, error) {
	doc, err := m.docs.Load(qc, docURI)
	if err != nil {
		return nil, err
	}
	if doc.YAML == nil || doc.YAML.Root() == nil {
		return map[nodeid.NodeId]solver.LocalShape{}, nil
	}

	shapes := make(map[nodeid.NodeId]solver.LocalShape)
	root := nodeid.New(docURI, "")
	m.walkShapes(qc, docURI, root, doc.YAML.Root(), shapes)
	return shapes, nil
}

func (m *Manager) walkShapes(qc *querycache.Context, docURI string, id nodeid.NodeId, node *yaml.Node, shapes map[nodeid.NodeId]solver.LocalShape) {
	node = yml.ResolveAlias(node)
	if node == nil {
		return
	}

	switch node.Kind {
	case yaml.ScalarNode:
		var v any
		_ = node.Decode(&v)
		shapes[id] = solver.LocalShape{Kind: solver.ShapePrim, Prim: v}

	case yaml.SequenceNode:
		fields := make(map[string]nodeid.NodeId, len(node.Content))
		for i, item := range node.Content {
			idx := strconv.Itoa(i)
			childID := id.Child(idx)
			fields[idx] = childID
			m.walkShapes(qc, docURI, childID, item, shapes)
		}
		shapes[id] = solver.LocalShape{Kind: solver.ShapeArray, Array: fields}

	case yaml.MappingNode:
		if _, refVal, ok := yml.GetMapElementNodes(nil, node, "$ref"); ok {
			target, err := m.resolveTarget(qc, docURI, refVal.Value)
			if err == nil {
				shapes[id] = solver.LocalShape{Kind: solver.ShapeRef, Ref: target}
			}
			return
		}

		fields := make(map[string]nodeid.NodeId, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			childID := id.Child(key)
			fields[key] = childID
			m.walkShapes(qc, docURI, childID, node.Content[i+1], shapes)
		}
		shapes[id] = solver.LocalShape{Kind: solver.ShapeObject, Object: fields}
	}
}

func (m *Manager) resolveTarget(qc *querycache.Context, docURI, ref string) (nodeid.NodeId, error) {
	res, err := m.resolver.Resolve(qc, docURI, ref)
	if err != nil {
		return "", err
	}
	return nodeid.New(res.TargetURI, res.Pointer), nil
}

// ExtractNominals decodes node (rooted at docURI#pointer, expected to play
// rootNominal) with decoder, and pairs the resulting tagged tree with the
// YAML AST to collect nominal anchors and Reference "requested nominal"
// tags.
func (m *Manager) ExtractNominals(qc *querycache.Context, docURI string, pointer jsonpointer.JSONPointer, node *yaml.Node, rootNominal nominal.ID, decoder nominal.Decoder) (*NominalAnchors, error) {
	decoded, err := decoder.Decode(node, rootNominal)
	if err != nil {
		return nil, err
	}

	anchors := &NominalAnchors{
		Local:    make(map[nodeid.NodeId]nominal.ID),
		Outgoing: make(map[nodeid.NodeId]nominal.ID),
	}
	m.walkNominals(qc, docURI, nodeid.New(docURI, pointer), decoded, anchors)
	return anchors, nil
}

func (m *Manager) walkNominals(qc *querycache.Context, docURI string, id nodeid.NodeId, decoded nominal.DecodedNode, anchors *NominalAnchors) {
	if decoded == nil {
		return
	}

	if decoded.IsReference() {
		target, err := m.resolveTarget(qc, docURI, decoded.ReferenceTarget())
		if err != nil {
			return
		}
		if target.DocUri() == docURI {
			anchors.Local[target] = decoded.Nominal()
		} else {
			anchors.Outgoing[target] = decoded.Nominal()
		}
		return
	}

	if nominal.Valid(decoded.Nominal()) {
		anchors.Local[id] = decoded.Nominal()
	}

	for _, field := range decoded.Children() {
		m.walkNominals(qc, docURI, id.Child(field.Key), field.Node, anchors)
	}
}
