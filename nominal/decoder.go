package nominal

import "gopkg.in/yaml.v3"

// DecodedField pairs a child DecodedNode with the map key or stringified
// array index it was decoded under, so a caller can walk it in lockstep
// with the corresponding YAML AST node.
type DecodedField struct {
	Key  string
	Node DecodedNode
}

// DecodedNode is one node of a lenient OpenAPI decode. It carries enough
// tagging for the shape/nominal extractor to pair it with the YAML AST
// without mutating the decoded value itself (the "tagged objects" problem:
// the label rides along on a parallel node rather than on the value).
type DecodedNode interface {
	// Nominal is the role this node was decoded as (e.g. Schema, Response).
	Nominal() ID
	// IsReference reports whether this node is itself a $ref object.
	IsReference() bool
	// ReferenceTarget returns the raw $ref string. Only meaningful when
	// IsReference is true.
	ReferenceTarget() string
	// Children enumerates this node's decoded fields (object keys or
	// stringified array indices), for paired traversal with the YAML AST.
	Children() []DecodedField
}

// Decoder is the external collaborator (spec.md §1: "lenient schema
// decoding of OpenAPI object shapes"). Implementations are expected to
// tolerate partially invalid documents and still produce a best-effort
// DecodedNode tree; this package places no further validation requirements
// on them. rootNominal is the nominal the caller expects the document (or
// fragment) root to play, e.g. Document for a root spec file or whatever
// nominal an incoming edge requested for a component fragment.
type Decoder interface {
	Decode(node *yaml.Node, rootNominal ID) (DecodedNode, error)
}
