package solver

import (
	"sort"
	"strconv"
	"strings"

	"github.com/speakeasy-api/openapi-lsp/nodeid"
)

// String renders t deterministically: object fields are sorted, so equal
// types render equal regardless of map iteration order. Used in diagnostics
// and result fingerprinting.
func (t JSONType) String() string {
	switch t.typeKind {
	case TypeVar:
		return "?"
	case TypePrim:
		switch t.Kind {
		case PrimNull:
			return "null"
		case PrimBool:
			return "bool"
		case PrimNumber:
			return "number"
		case PrimString:
			return "string"
		default:
			return "prim"
		}
	case TypeArray:
		return "[" + t.Elem.String() + "]"
	case TypeObject:
		keys := make([]string, 0, len(t.Fields))
		for k := range t.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(k)
			sb.WriteByte(':')
			sb.WriteString(t.Fields[k].String())
		}
		sb.WriteByte('}')
		return sb.String()
	case TypeNominal:
		return "nominal(" + string(t.Nom) + ")"
	default:
		return "?"
	}
}

// Fingerprint digests everything observable from the result - every node's
// class, type, and nominal, plus diagnostics - so a cached consumer can tell
// whether a re-solve actually changed anything. Equal inputs produce equal
// fingerprints regardless of map order.
func (r *Result) Fingerprint() string {
	nodes := make([]string, 0, len(r.nodeClass))
	for node := range r.nodeClass {
		nodes = append(nodes, string(node))
	}
	sort.Strings(nodes)

	var sb strings.Builder
	for _, node := range nodes {
		cid := r.nodeClass[nodeid.NodeId(node)]
		sb.WriteString(node)
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(int(cid)))
		sb.WriteByte('=')
		sb.WriteString(r.classType[cid].String())
		if nom, ok := r.classNominal[cid]; ok {
			sb.WriteByte('@')
			sb.WriteString(string(nom))
		}
		sb.WriteByte(';')
	}

	for _, diag := range r.Diagnostics {
		switch diag.Kind {
		case DiagNominalConflict:
			sb.WriteString("!nominal:")
			sb.WriteString(string(diag.A))
			sb.WriteByte('/')
			sb.WriteString(string(diag.B))
		case DiagStructConflict:
			sb.WriteString("!struct:")
			sb.WriteString(string(diag.Node))
			sb.WriteByte('/')
			sb.WriteString(diag.Left.String())
			sb.WriteByte('/')
			sb.WriteString(diag.Right.String())
		case DiagMissingTarget:
			sb.WriteString("!missing:")
			sb.WriteString(string(diag.From))
			sb.WriteByte('/')
			sb.WriteString(string(diag.To))
		}
		sb.WriteByte(';')
	}

	return sb.String()
}
