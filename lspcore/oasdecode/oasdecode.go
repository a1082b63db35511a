// Package oasdecode adapts this module's OpenAPI object model to the
// nominal.Decoder boundary the shape/nominal extractor consumes. It
// unmarshals a YAML node leniently (validation findings are discarded, not
// fatal), walks the resulting model, and rebuilds the walk's flat location
// stream into the tagged tree the extractor pairs with the raw YAML AST.
//
// Fragments are decoded by grafting the node into a synthetic document at
// the slot matching the requested nominal (a Schema fragment becomes
// components.schemas.fragment of an otherwise empty document), walking the
// whole synthetic document, and keeping only the locations under that slot.
package oasdecode

import (
	"bytes"
	"context"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/speakeasy-api/openapi-lsp/jsonschema/oas3"
	"github.com/speakeasy-api/openapi-lsp/nominal"
	"github.com/speakeasy-api/openapi-lsp/openapi"
)

// Decoder is the default nominal.Decoder implementation, backed by
// openapi.Unmarshal and openapi.Walk.
type Decoder struct{}

var _ nominal.Decoder = (*Decoder)(nil)

// New constructs a Decoder.
func New() *Decoder {
	return &Decoder{}
}

const fragmentKey = "fragment"

// wrapSlots maps a requested root nominal to the pointer parts of the slot a
// fragment of that nominal occupies inside the synthetic document. A numeric
// part denotes a sequence wrapper. Document maps to nil: the node is the
// whole document already.
var wrapSlots = map[nominal.ID][]string{
	nominal.Document:              nil,
	nominal.Schema:                {"components", "schemas", fragmentKey},
	nominal.Reference:             {"components", "schemas", fragmentKey},
	nominal.Schemas:               {"components", "schemas"},
	nominal.Response:              {"components", "responses", fragmentKey},
	nominal.ComponentResponses:    {"components", "responses"},
	nominal.Parameter:             {"components", "parameters", fragmentKey},
	nominal.ComponentParameters:   {"components", "parameters"},
	nominal.RequestBody:           {"components", "requestBodies", fragmentKey},
	nominal.RequestBodies:         {"components", "requestBodies"},
	nominal.Header:                {"components", "headers", fragmentKey},
	nominal.Headers:               {"components", "headers"},
	nominal.Example:               {"components", "examples", fragmentKey},
	nominal.Examples:              {"components", "examples"},
	nominal.Link:                  {"components", "links", fragmentKey},
	nominal.Links:                 {"components", "links"},
	nominal.SecurityScheme:        {"components", "securitySchemes", fragmentKey},
	nominal.SecuritySchemes:       {"components", "securitySchemes"},
	nominal.Callback:              {"components", "callbacks", fragmentKey},
	nominal.Callbacks:             {"components", "callbacks"},
	nominal.Components:            {"components"},
	nominal.PathItem:              {"paths", "/" + fragmentKey},
	nominal.Paths:                 {"paths"},
	nominal.Operation:             {"paths", "/" + fragmentKey, "get"},
	nominal.Parameters:            {"paths", "/" + fragmentKey, "get", "parameters"},
	nominal.Responses:             {"paths", "/" + fragmentKey, "get", "responses"},
	nominal.MediaType:             {"components", "requestBodies", fragmentKey, "content", "application/json"},
	nominal.Content:               {"components", "requestBodies", fragmentKey, "content"},
	nominal.Encoding:              {"components", "requestBodies", fragmentKey, "content", "application/json", "encoding", fragmentKey},
	nominal.Info:                  {"info"},
	nominal.Contact:               {"info", "contact"},
	nominal.License:               {"info", "license"},
	nominal.Tag:                   {"tags", "0"},
	nominal.TagArray:              {"tags"},
	nominal.Server:                {"servers", "0"},
	nominal.ServerVariables:       {"servers", "0", "variables"},
	nominal.ServerVariable:        {"servers", "0", "variables", fragmentKey},
	nominal.ExternalDocumentation: {"externalDocs"},
	nominal.SecurityRequirement:   {"security", "0"},
	nominal.OAuthFlows:            {"components", "securitySchemes", fragmentKey, "flows"},
	nominal.OAuthFlow:             {"components", "securitySchemes", fragmentKey, "flows", "implicit"},
	nominal.XML:                   {"components", "schemas", fragmentKey, "xml"},
	nominal.Discriminator:         {"components", "schemas", fragmentKey, "discriminator"},
}

// Decode implements nominal.Decoder.
func (d *Decoder) Decode(node *yaml.Node, rootNominal nominal.ID) (nominal.DecodedNode, error) {
	slot, ok := wrapSlots[rootNominal]
	if !ok {
		slot = wrapSlots[nominal.Document]
	}

	wrapped := wrap(node, slot)
	data, err := yaml.Marshal(wrapped)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	doc, _, err := openapi.Unmarshal(ctx, bytes.NewReader(data), openapi.WithSkipValidation())
	if err != nil {
		return nil, err
	}

	root := &treeNode{nom: rootNominal}
	for item := range openapi.Walk(ctx, doc) {
		parts := pointerParts(string(item.Location.ToJSONPointer()))
		rel, ok := stripSlot(parts, slot)
		if !ok {
			continue
		}
		if e, matched := matchEntry(item); matched {
			insert(root, rel, e)
		}
	}
	return root, nil
}

type entry struct {
	nom       nominal.ID
	isRef     bool
	refTarget string
}

// wrap grafts fragment into a synthetic document at slot, returning the
// synthetic root. A nil slot returns the fragment itself.
func wrap(fragment *yaml.Node, slot []string) *yaml.Node {
	if fragment != nil && fragment.Kind == yaml.DocumentNode && len(fragment.Content) > 0 {
		fragment = fragment.Content[0]
	}
	current := fragment
	for i := len(slot) - 1; i >= 0; i-- {
		part := slot[i]
		if part == "0" {
			current = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: []*yaml.Node{current}}
			continue
		}
		current = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: part},
			current,
		}}
	}
	return current
}

func pointerParts(pointer string) []string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return nil
	}
	raw := strings.Split(pointer, "/")
	parts := make([]string, len(raw))
	for i, p := range raw {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return parts
}

// stripSlot drops the synthetic wrapper prefix from parts. Locations outside
// the slot belong to the wrapper itself and are discarded.
func stripSlot(parts, slot []string) ([]string, bool) {
	if len(parts) < len(slot) {
		return nil, false
	}
	for i, s := range slot {
		if parts[i] != s {
			return nil, false
		}
	}
	return parts[len(slot):], true
}

func insert(root *treeNode, parts []string, e entry) {
	n := root
	for _, part := range parts {
		n = n.child(part)
	}
	if len(parts) > 0 || n.nom == "" {
		n.nom = e.nom
	}
	n.isRef = e.isRef
	n.refTarget = e.refTarget
}

// matchEntry maps a walk item's model type to its nominal role, and unwraps
// the Referenced* holder types into reference entries carrying the nominal
// their slot requests.
func matchEntry(item openapi.WalkItem) (entry, bool) {
	var e entry
	matched := false
	set := func(nom nominal.ID) {
		e = entry{nom: nom}
		matched = true
	}
	setRef := func(nom nominal.ID, target string) {
		e = entry{nom: nom, isRef: true, refTarget: target}
		matched = true
	}

	_ = item.Match(openapi.Matcher{
		OpenAPI: func(*openapi.OpenAPI) error { set(nominal.Document); return nil },
		Info:    func(*openapi.Info) error { set(nominal.Info); return nil },
		Contact: func(*openapi.Contact) error { set(nominal.Contact); return nil },
		License: func(*openapi.License) error { set(nominal.License); return nil },
		ExternalDocs: func(*oas3.ExternalDocumentation) error {
			set(nominal.ExternalDocumentation)
			return nil
		},
		Tag:            func(*openapi.Tag) error { set(nominal.Tag); return nil },
		Server:         func(*openapi.Server) error { set(nominal.Server); return nil },
		ServerVariable: func(*openapi.ServerVariable) error { set(nominal.ServerVariable); return nil },
		Security:       func(*openapi.SecurityRequirement) error { set(nominal.SecurityRequirement); return nil },
		Paths:          func(*openapi.Paths) error { set(nominal.Paths); return nil },
		Operation:      func(*openapi.Operation) error { set(nominal.Operation); return nil },
		MediaType:      func(*openapi.MediaType) error { set(nominal.MediaType); return nil },
		Encoding:       func(*openapi.Encoding) error { set(nominal.Encoding); return nil },
		Responses:      func(*openapi.Responses) error { set(nominal.Responses); return nil },
		Components:     func(*openapi.Components) error { set(nominal.Components); return nil },
		OAuthFlows:     func(*openapi.OAuthFlows) error { set(nominal.OAuthFlows); return nil },
		OAuthFlow:      func(*openapi.OAuthFlow) error { set(nominal.OAuthFlow); return nil },
		XML:            func(*oas3.XML) error { set(nominal.XML); return nil },
		Discriminator:  func(*oas3.Discriminator) error { set(nominal.Discriminator); return nil },
		Schema: func(js *oas3.JSONSchema[oas3.Referenceable]) error {
			if js.IsSchema() {
				if s := js.GetSchema(); s.IsReference() {
					setRef(nominal.Schema, string(s.GetRef()))
					return nil
				}
			}
			set(nominal.Schema)
			return nil
		},
		ReferencedPathItem: func(r *openapi.ReferencedPathItem) error {
			referenced(r.IsReference(), string(r.GetReference()), nominal.PathItem, set, setRef)
			return nil
		},
		ReferencedParameter: func(r *openapi.ReferencedParameter) error {
			referenced(r.IsReference(), string(r.GetReference()), nominal.Parameter, set, setRef)
			return nil
		},
		ReferencedHeader: func(r *openapi.ReferencedHeader) error {
			referenced(r.IsReference(), string(r.GetReference()), nominal.Header, set, setRef)
			return nil
		},
		ReferencedExample: func(r *openapi.ReferencedExample) error {
			referenced(r.IsReference(), string(r.GetReference()), nominal.Example, set, setRef)
			return nil
		},
		ReferencedRequestBody: func(r *openapi.ReferencedRequestBody) error {
			referenced(r.IsReference(), string(r.GetReference()), nominal.RequestBody, set, setRef)
			return nil
		},
		ReferencedResponse: func(r *openapi.ReferencedResponse) error {
			referenced(r.IsReference(), string(r.GetReference()), nominal.Response, set, setRef)
			return nil
		},
		ReferencedLink: func(r *openapi.ReferencedLink) error {
			referenced(r.IsReference(), string(r.GetReference()), nominal.Link, set, setRef)
			return nil
		},
		ReferencedCallback: func(r *openapi.ReferencedCallback) error {
			referenced(r.IsReference(), string(r.GetReference()), nominal.Callback, set, setRef)
			return nil
		},
		ReferencedSecurityScheme: func(r *openapi.ReferencedSecurityScheme) error {
			referenced(r.IsReference(), string(r.GetReference()), nominal.SecurityScheme, set, setRef)
			return nil
		},
	})

	return e, matched
}

func referenced(isRef bool, target string, nom nominal.ID, set func(nominal.ID), setRef func(nominal.ID, string)) {
	if isRef {
		setRef(nom, target)
		return
	}
	set(nom)
}

// treeNode is the DecodedNode the extractor walks: the walk's flat location
// stream reassembled into a tree keyed by pointer segment.
type treeNode struct {
	nom       nominal.ID
	isRef     bool
	refTarget string

	keys     []string
	children map[string]*treeNode
}

var _ nominal.DecodedNode = (*treeNode)(nil)

func (n *treeNode) child(key string) *treeNode {
	if n.children == nil {
		n.children = make(map[string]*treeNode)
	}
	c, ok := n.children[key]
	if !ok {
		c = &treeNode{}
		n.children[key] = c
		n.keys = append(n.keys, key)
	}
	return c
}

func (n *treeNode) Nominal() nominal.ID     { return n.nom }
func (n *treeNode) IsReference() bool       { return n.isRef }
func (n *treeNode) ReferenceTarget() string { return n.refTarget }

func (n *treeNode) Children() []nominal.DecodedField {
	fields := make([]nominal.DecodedField, 0, len(n.keys))
	for _, key := range n.keys {
		fields = append(fields, nominal.DecodedField{Key: key, Node: n.children[key]})
	}
	return fields
}
