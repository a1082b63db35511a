// Package yamldoc implements the YAML Document Facade: a thin layer over a
// parsed gopkg.in/yaml.v3 AST that adds offset/position conversion,
// JSON-Pointer navigation, and the cursor-driven lookups the hover/definition
// query needs (key-at-position, ref-at-position, ref collection).
package yamldoc

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/speakeasy-api/openapi-lsp/errors"
	"github.com/speakeasy-api/openapi-lsp/jsonpointer"
	"github.com/speakeasy-api/openapi-lsp/yml"
)

const (
	// ErrOutOfRange is returned when a position falls outside the source text.
	ErrOutOfRange = errors.Error("position out of range")
)

// Position is a zero-based line/column pair, matching LSP's textDocument
// position convention.
type Position struct {
	Line      int
	Character int
}

// Range is a half-open [Start, End) span of Positions.
type Range struct {
	Start Position
	End   Position
}

// KeyHit is the result of a cursor hitting a map key or a sequence item's
// "-" marker region.
type KeyHit struct {
	Key  string
	Path jsonpointer.JSONPointer
}

// RefHit is the result of a cursor landing inside a map containing a $ref
// field.
type RefHit struct {
	Key string
	Ref string
}

// RefSite is one $ref occurrence found by CollectRefs.
type RefSite struct {
	Ref          string
	KeyRange     Range
	PointerRange Range
	Path         jsonpointer.JSONPointer
}

// Document wraps a parsed YAML AST plus the source text it came from, and
// implements the facade operations used throughout the analysis core.
type Document struct {
	root   *yaml.Node
	source string
	lines  []int // byte offset of the start of each line
}

// Parse parses source and builds a Document facade over it.
func Parse(source string) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(source), &root); err != nil {
		return nil, err
	}
	return New(&root, source), nil
}

// New wraps an already-parsed AST. source must be the exact text the AST
// was parsed from, since line/column-to-offset conversion depends on it.
func New(root *yaml.Node, source string) *Document {
	return &Document{root: root, source: source, lines: lineStarts(source)}
}

// Root returns the document's root content node (the DocumentNode's sole
// child), or nil for an empty document.
func (d *Document) Root() *yaml.Node {
	if d.root == nil {
		return nil
	}
	if d.root.Kind == yaml.DocumentNode {
		if len(d.root.Content) == 0 {
			return nil
		}
		return d.root.Content[0]
	}
	return d.root
}

func lineStarts(source string) []int {
	starts := []int{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// GetOffsetByPosition converts a zero-based line/column to a byte offset
// into the source text.
func (d *Document) GetOffsetByPosition(pos Position) (int, error) {
	if pos.Line < 0 || pos.Line >= len(d.lines) {
		return 0, ErrOutOfRange
	}
	offset := d.lines[pos.Line] + pos.Character
	if offset < 0 || offset > len(d.source) {
		return 0, ErrOutOfRange
	}
	return offset, nil
}

// ToRange converts a yaml.Node's Line/Column start, plus its textual extent,
// into a Range. yaml.v3 nodes only carry a start position; the end is
// approximated as the start plus the rendered scalar length for scalars, or
// the start position alone (zero-width) for container nodes, matching what
// the teacher's node-manipulation helpers treat as "the node's location".
func (d *Document) ToRange(node *yaml.Node) Range {
	start := Position{Line: node.Line - 1, Character: node.Column - 1}
	end := start
	if node.Kind == yaml.ScalarNode {
		end.Character += len(node.Value)
	}
	return Range{Start: start, End: end}
}

// GetNodeAtPath walks pointer's segments (map keys or slice indices) from
// the document root. The empty pointer and "/" both denote the root value.
func (d *Document) GetNodeAtPath(pointer jsonpointer.JSONPointer) (*yaml.Node, error) {
	if pointer == "" {
		root := d.Root()
		if root == nil {
			return nil, jsonpointer.ErrInvalidPath
		}
		return yml.ResolveAlias(root), nil
	}
	target, err := jsonpointer.GetTarget(d.Root(), pointer)
	if err != nil {
		return nil, err
	}
	node, ok := target.(*yaml.Node)
	if !ok {
		return nil, jsonpointer.ErrInvalidPath
	}
	return yml.ResolveAlias(node), nil
}

// GetValueAtPath is GetNodeAtPath followed by a decode into a plain Go
// value (map[string]any / []any / scalar), for handing to an external
// hover serializer.
func (d *Document) GetValueAtPath(pointer jsonpointer.JSONPointer) (any, error) {
	node, err := d.GetNodeAtPath(pointer)
	if err != nil {
		return nil, err
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// GetKeyAtPosition returns the map key or sequence "-" marker enclosing
// pos, along with its JSON Pointer path.
func (d *Document) GetKeyAtPosition(pos Position) (*KeyHit, bool) {
	return findKeyAtLine(d.Root(), pos.Line, nil)
}

// line-based containment: yaml.v3 nodes only carry a start Line/Column, so
// "does this node contain pos" is approximated as "pos.Line is on or after
// this node's start line, and this is the most specific such child".
func findKeyAtLine(node *yaml.Node, line int, path []string) (*KeyHit, bool) {
	if node == nil {
		return nil, false
	}
	node = yml.ResolveAlias(node)

	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			valNode := node.Content[i+1]
			if keyNode.Line-1 == line {
				return &KeyHit{Key: keyNode.Value, Path: jsonpointer.PartsToJSONPointer(append(path, keyNode.Value))}, true //nolint:gocritic
			}
			if nodeCoversLine(valNode, node, i+1, line) {
				if hit, ok := findKeyAtLine(valNode, line, append(path, keyNode.Value)); ok { //nolint:gocritic
					return hit, true
				}
			}
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			if nodeCoversLine(item, node, i, line) {
				idx := itoa(i)
				if hit, ok := findKeyAtLine(item, line, append(path, idx)); ok { //nolint:gocritic
					return hit, true
				}
				return &KeyHit{Key: idx, Path: jsonpointer.PartsToJSONPointer(append(path, idx))}, true //nolint:gocritic
			}
		}
	}
	return nil, false
}

// nodeCoversLine reports whether line falls between child's start line and
// the start line of the next sibling in parent.Content (or EOF for the last
// child) — the best containment test available without end positions.
func nodeCoversLine(child, parent *yaml.Node, childIdx int, line int) bool {
	start := child.Line - 1
	end := -1
	if childIdx+1 < len(parent.Content) {
		end = parent.Content[childIdx+1].Line - 1
	}
	if line < start {
		return false
	}
	if end >= 0 && line >= end {
		return false
	}
	return true
}

// GetRefAtPosition returns the $ref value when pos lands inside a mapping
// that carries a $ref field.
func (d *Document) GetRefAtPosition(pos Position) (*RefHit, bool) {
	return findRefAtLine(d.Root(), pos.Line)
}

func findRefAtLine(node *yaml.Node, line int) (*RefHit, bool) {
	if node == nil {
		return nil, false
	}
	node = yml.ResolveAlias(node)

	if node.Kind == yaml.MappingNode {
		if _, refVal, ok := yml.GetMapElementNodes(nil, node, "$ref"); ok && mappingCoversLine(node, line) {
			return &RefHit{Key: "$ref", Ref: refVal.Value}, true
		}
		for i := 1; i < len(node.Content); i += 2 {
			if hit, ok := findRefAtLine(node.Content[i], line); ok {
				return hit, true
			}
		}
	}
	if node.Kind == yaml.SequenceNode {
		for _, item := range node.Content {
			if hit, ok := findRefAtLine(item, line); ok {
				return hit, true
			}
		}
	}
	return nil, false
}

func mappingCoversLine(node *yaml.Node, line int) bool {
	if len(node.Content) == 0 {
		return node.Line-1 == line
	}
	first := node.Content[0].Line - 1
	last := node.Content[len(node.Content)-1].Line - 1
	return line >= first && line <= last
}

// CollectRefs finds every mapping in the document that carries a $ref field.
func (d *Document) CollectRefs() []RefSite {
	var sites []RefSite
	collectRefs(d, d.Root(), nil, &sites)
	return sites
}

func collectRefs(d *Document, node *yaml.Node, path []string, out *[]RefSite) {
	if node == nil {
		return
	}
	node = yml.ResolveAlias(node)

	switch node.Kind {
	case yaml.MappingNode:
		if keyNode, refVal, ok := yml.GetMapElementNodes(nil, node, "$ref"); ok {
			*out = append(*out, RefSite{
				Ref:          refVal.Value,
				KeyRange:     d.ToRange(keyNode),
				PointerRange: d.ToRange(refVal),
				Path:         jsonpointer.PartsToJSONPointer(path),
			})
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			collectRefs(d, node.Content[i+1], append(path, node.Content[i].Value), out) //nolint:gocritic
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			collectRefs(d, item, append(path, itoa(i)), out) //nolint:gocritic
		}
	}
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
