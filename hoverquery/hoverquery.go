// Package hoverquery implements the Hover & Go-to-Definition query
// (spec.md §4.11): given a cursor position, it resolves the enclosing
// $ref or map key to a NodeId, finds that node's connectivity group, and
// reads the group's solved nominal/type/value for an external serializer
// to render.
package hoverquery

import (
	"context"
	"strings"

	"github.com/speakeasy-api/openapi-lsp/connectivity"
	"github.com/speakeasy-api/openapi-lsp/docmanager"
	"github.com/speakeasy-api/openapi-lsp/errors"
	"github.com/speakeasy-api/openapi-lsp/groupanalysis"
	"github.com/speakeasy-api/openapi-lsp/jsonpointer"
	"github.com/speakeasy-api/openapi-lsp/nodeid"
	"github.com/speakeasy-api/openapi-lsp/nominal"
	"github.com/speakeasy-api/openapi-lsp/resolver"
	"github.com/speakeasy-api/openapi-lsp/yamldoc"
)

const (
	// ErrNoDocument is returned when uri has no parseable YAML at all.
	ErrNoDocument = errors.Error("noDocument")
	// ErrNoHit is returned when pos lands on nothing hoverable (blank line,
	// comment, whitespace).
	ErrNoHit = errors.Error("noHit")
)

// Result is the query's handoff to an external hover/definition renderer.
type Result struct {
	NodeID      nodeid.NodeId
	Nominal     nominal.ID
	HasNominal  bool
	Value       any
	DerivedName string
}

// Definition is the location a go-to-definition query resolved to.
type Definition struct {
	URI   string
	Range yamldoc.Range
}

// Manager wires the document, reference, connectivity, and group-analysis
// managers into a single cursor-driven query surface.
type Manager struct {
	docs   *docmanager.Manager
	refs   *resolver.Manager
	conn   *connectivity.Manager
	groups *groupanalysis.Manager
	cfg    connectivity.DiscoveryConfig
}

// New constructs a Manager.
func New(docs *docmanager.Manager, resolve *resolver.Manager, conn *connectivity.Manager, groups *groupanalysis.Manager, cfg connectivity.DiscoveryConfig) *Manager {
	return &Manager{docs: docs, refs: resolve, conn: conn, groups: groups, cfg: cfg}
}

// Hover resolves the node under pos in uri and returns its solved nominal,
// value, and a derived display name.
func (m *Manager) Hover(ctx context.Context, uri string, pos yamldoc.Position) (*Result, error) {
	doc, err := m.docs.Get(ctx, uri)
	if err != nil {
		return nil, err
	}
	if doc.YAML == nil {
		return nil, ErrNoDocument
	}

	if refHit, ok := doc.YAML.GetRefAtPosition(pos); ok {
		res, err := m.refs.Resolve(nil, uri, refHit.Ref)
		if err != nil {
			return nil, err
		}
		return m.resultFor(ctx, res.TargetURI, res.Pointer)
	}

	if keyHit, ok := doc.YAML.GetKeyAtPosition(pos); ok {
		return m.resultFor(ctx, uri, keyHit.Path)
	}

	return nil, ErrNoHit
}

// Definition resolves the $ref or key under pos to the location of its
// definition: the ref target when the cursor is on a $ref, or the node
// itself otherwise (self-definition, for symmetry with editors that always
// offer "go to definition").
func (m *Manager) Definition(ctx context.Context, uri string, pos yamldoc.Position) (*Definition, error) {
	doc, err := m.docs.Get(ctx, uri)
	if err != nil {
		return nil, err
	}
	if doc.YAML == nil {
		return nil, ErrNoDocument
	}

	targetURI, pointer := uri, jsonpointer.JSONPointer("")
	if refHit, ok := doc.YAML.GetRefAtPosition(pos); ok {
		res, err := m.refs.Resolve(nil, uri, refHit.Ref)
		if err != nil {
			return nil, err
		}
		targetURI, pointer = res.TargetURI, res.Pointer
	} else if keyHit, ok := doc.YAML.GetKeyAtPosition(pos); ok {
		pointer = keyHit.Path
	} else {
		return nil, ErrNoHit
	}

	targetDoc, err := m.docs.Get(ctx, targetURI)
	if err != nil {
		return nil, err
	}
	node, err := targetDoc.YAML.GetNodeAtPath(pointer)
	if err != nil {
		return nil, err
	}
	return &Definition{URI: targetURI, Range: targetDoc.YAML.ToRange(node)}, nil
}

func (m *Manager) resultFor(ctx context.Context, docURI string, pointer jsonpointer.JSONPointer) (*Result, error) {
	id := nodeid.New(docURI, pointer)

	conn, err := m.conn.Get(ctx, m.cfg)
	if err != nil {
		return nil, err
	}
	groupID := conn.GroupOf(docURI)

	group, err := m.groups.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}

	doc, err := m.docs.Get(ctx, docURI)
	if err != nil {
		return nil, err
	}
	value, err := doc.YAML.GetValueAtPath(pointer)
	if err != nil {
		value = nil
	}

	nomID, hasNominal := group.Solve.GetCanonicalNominal(id)

	if hasNominal && nomID == nominal.Parameters {
		value = m.expandParameterRefs(ctx, docURI, value)
	}

	return &Result{
		NodeID:      id,
		Nominal:     nomID,
		HasNominal:  hasNominal,
		Value:       value,
		DerivedName: deriveName(docURI, pointer),
	}, nil
}

// expandParameterRefs replaces each $ref element of a Parameters array with
// the referent's value, so the hover payload shows the actual parameter
// objects instead of a list of opaque pointers. Elements that fail to
// resolve are left as-is.
func (m *Manager) expandParameterRefs(ctx context.Context, docURI string, value any) any {
	items, ok := value.([]any)
	if !ok {
		return value
	}

	expanded := make([]any, len(items))
	for i, item := range items {
		expanded[i] = item

		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ref, ok := obj["$ref"].(string)
		if !ok {
			continue
		}

		res, err := m.refs.Resolve(nil, docURI, ref)
		if err != nil {
			continue
		}
		target, err := m.docs.Get(ctx, res.TargetURI)
		if err != nil || target.YAML == nil {
			continue
		}
		v, err := target.YAML.GetValueAtPath(res.Pointer)
		if err != nil {
			continue
		}
		expanded[i] = v
	}
	return expanded
}

// deriveName takes a display name from pointer's final segment, the
// convention for naming a component from its definition slot (e.g.
// components.schemas.Pet -> "Pet"). For a PathItem the final segment is the
// path template itself, so unescaping ~1 back to "/" yields the literal
// path string. A document root derives its name from the document URI's
// final segment instead.
func deriveName(docURI string, pointer jsonpointer.JSONPointer) string {
	s := string(pointer)
	idx := strings.LastIndexByte(s, '/')
	if idx < 0 {
		if idx = strings.LastIndexByte(docURI, '/'); idx >= 0 {
			return docURI[idx+1:]
		}
		return docURI
	}
	seg := s[idx+1:]
	seg = strings.ReplaceAll(seg, "~1", "/")
	seg = strings.ReplaceAll(seg, "~0", "~")
	return seg
}
