// Package nodeid provides NodeId, the canonical identity for a JSON
// location inside the workspace: a document URI plus an optional RFC-6901
// JSON Pointer fragment.
package nodeid

import (
	"strings"

	"github.com/speakeasy-api/openapi-lsp/jsonpointer"
)

// NodeId is "docUri#/json/pointer", canonical: equal strings denote the same
// JSON location. A NodeId equal to a bare docUri denotes the document root.
type NodeId string

// New builds a NodeId from a document URI and a (possibly empty) JSON
// Pointer. An empty pointer yields the bare docUri, which denotes the root.
func New(docUri string, pointer jsonpointer.JSONPointer) NodeId {
	if pointer == "" {
		return NodeId(docUri)
	}
	return NodeId(docUri + "#" + string(pointer))
}

// Child appends part as one more segment of pointer onto n, escaping it per
// RFC 6901.
func (n NodeId) Child(part string) NodeId {
	docUri, pointer := n.Decompose()
	return New(docUri, pointer+jsonpointer.JSONPointer("/"+jsonpointer.EscapeString(part)))
}

// Decompose splits n back into its document URI and JSON Pointer. The
// pointer is empty when n denotes the document root.
func (n NodeId) Decompose() (docUri string, pointer jsonpointer.JSONPointer) {
	s := string(n)
	idx := strings.IndexByte(s, '#')
	if idx < 0 {
		return s, ""
	}
	return s[:idx], jsonpointer.JSONPointer(s[idx+1:])
}

// DocUri returns just the document-URI component.
func (n NodeId) DocUri() string {
	docUri, _ := n.Decompose()
	return docUri
}

// Pointer returns just the JSON-Pointer component.
func (n NodeId) Pointer() jsonpointer.JSONPointer {
	_, pointer := n.Decompose()
	return pointer
}

// IsRoot reports whether n denotes its document's root value.
func (n NodeId) IsRoot() bool {
	return n.Pointer() == ""
}

func (n NodeId) String() string {
	return string(n)
}

// MarshalText implements encoding.TextMarshaler so NodeId can be used
// directly as a querycache key component and as a log/slog field value.
func (n NodeId) MarshalText() ([]byte, error) {
	return []byte(n), nil
}
