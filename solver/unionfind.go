package solver

import "github.com/speakeasy-api/openapi-lsp/nodeid"

// unionFind is a standard union-find over nodeid.NodeId with union by rank
// and path-compressed find, as spec.md §4.9 Phase 1 requires. Nothing in
// the reference corpus supplies a ready-made union-find, so this is a
// direct, unexported implementation of the textbook algorithm rather than
// an adaptation of existing code.
type unionFind struct {
	parent map[nodeid.NodeId]nodeid.NodeId
	rank   map[nodeid.NodeId]int
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent: make(map[nodeid.NodeId]nodeid.NodeId),
		rank:   make(map[nodeid.NodeId]int),
	}
}

func (u *unionFind) makeSet(id nodeid.NodeId) {
	if _, ok := u.parent[id]; ok {
		return
	}
	u.parent[id] = id
	u.rank[id] = 0
}

func (u *unionFind) find(id nodeid.NodeId) nodeid.NodeId {
	u.makeSet(id)
	root := id
	for u.parent[root] != root {
		root = u.parent[root]
	}
	// path compression
	for u.parent[id] != root {
		next := u.parent[id]
		u.parent[id] = root
		id = next
	}
	return root
}

func (u *unionFind) union(a, b nodeid.NodeId) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
}

// components groups every makeSet'd id by its root. Member order within a
// component follows map iteration and is unspecified; callers sort.
func (u *unionFind) components() map[nodeid.NodeId][]nodeid.NodeId {
	out := make(map[nodeid.NodeId][]nodeid.NodeId)
	for id := range u.parent {
		root := u.find(id)
		out[root] = append(out[root], id)
	}
	return out
}
