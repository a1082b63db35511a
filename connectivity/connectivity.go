// Package connectivity implements Connectivity & SCC Computation
// (spec.md §4.7): discovers workspace documents via glob, builds the $ref
// graph with a concurrent DFS, and condenses it into strongly connected
// components via Kosaraju's algorithm so Group Analysis can solve each
// component once, in dependency order.
package connectivity

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/speakeasy-api/openapi-lsp/docmanager"
	"github.com/speakeasy-api/openapi-lsp/querycache"
	"github.com/speakeasy-api/openapi-lsp/refmanager"
	"github.com/speakeasy-api/openapi-lsp/system"
)

// GroupID is an SCC's identity: the lexicographically smallest member URI.
// A document whose SCC has only one member is its own GroupID even though
// it is never recorded in Connectivity.Groups (absence implies size 1).
type GroupID = string

// DiscoveryConfig selects the workspace roots that seed the DFS.
type DiscoveryConfig struct {
	Root    string
	Pattern string
	Ignore  string
}

// DefaultDiscoveryConfig matches the bare "openapi.{yml,yaml}" form of
// docmanager.DefaultClassifyPatterns' root file convention.
func DefaultDiscoveryConfig() DiscoveryConfig {
	return DiscoveryConfig{Root: ".", Pattern: "**/openapi.{yml,yaml}"}
}

// Connectivity is the computed document graph and its SCC condensation.
type Connectivity struct {
	// Nodes is every discovered document URI, including toms.
	Nodes []string
	// Edges is every uri -> targetUri $ref edge found during discovery,
	// excluding self-references.
	Edges map[string][]string
	// groupOf maps a document URI to its GroupID.
	groupOf map[string]GroupID
	// Groups lists the member URIs of every SCC with more than one member.
	Groups map[GroupID][]string
	// IncomingEdges maps a GroupID to the set of other GroupIDs with an edge
	// into it.
	IncomingEdges map[GroupID][]GroupID
}

// GroupOf returns uri's GroupID: the smallest URI in its SCC, or uri itself
// if its SCC has only one member.
func (c *Connectivity) GroupOf(uri string) GroupID {
	if g, ok := c.groupOf[uri]; ok {
		return g
	}
	return uri
}

// Manager owns the workspace-wide connectivity loader.
type Manager struct {
	fsys    system.VirtualFS
	globber system.Globber
	docs    *docmanager.Manager
	refs    *refmanager.Manager
	loader  *querycache.Loader[DiscoveryConfig, *Connectivity]
}

// New constructs a Manager and registers its loader on cache.
func New(cache *querycache.Cache, fsys system.VirtualFS, globber system.Globber, docs *docmanager.Manager, refs *refmanager.Manager) *Manager {
	m := &Manager{fsys: fsys, globber: globber, docs: docs, refs: refs}
	m.loader = querycache.CreateLoader(cache, "connectivity", m.compute)
	return m
}

// Get computes (or returns the cached) Connectivity for cfg, from outside
// any compute body.
func (m *Manager) Get(ctx context.Context, cfg DiscoveryConfig) (*Connectivity, error) {
	return m.loader.Use(ctx, cfg)
}

// Load is Get's counterpart for use from within another Loader's compute
// body: it registers cfg's Connectivity as an upstream dependency of qc's
// owning key, so Group Analysis recomputes whenever the workspace graph
// changes shape.
func (m *Manager) Load(qc *querycache.Context, cfg DiscoveryConfig) (*Connectivity, error) {
	return m.loader.Load(qc, cfg)
}

func (m *Manager) compute(qc *querycache.Context, cfg DiscoveryConfig) (*Connectivity, string, error) {
	seeds, err := m.globber.Glob(qc.Context(), m.fsys, cfg.Root, cfg.Pattern, cfg.Ignore)
	if err != nil {
		return nil, "", err
	}

	g := newGraphBuilder(qc, m.refs)
	eg, _ := errgroup.WithContext(qc.Context())
	for _, seed := range seeds {
		eg.Go(func() error {
			return g.dfs(seed)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, "", err
	}

	conn := &Connectivity{
		Nodes: g.sortedNodes(),
		Edges: g.edges,
	}
	condense(conn)

	hash := hashConnectivity(conn)
	return conn, hash, nil
}

type graphBuilder struct {
	qc   *querycache.Context
	refs *refmanager.Manager

	mu      sync.Mutex
	visited map[string]bool
	edges   map[string][]string
}

func newGraphBuilder(qc *querycache.Context, refs *refmanager.Manager) *graphBuilder {
	return &graphBuilder{qc: qc, refs: refs, visited: make(map[string]bool), edges: make(map[string][]string)}
}

// dfs visits uri. Per spec.md §4.7, the adjacency set for uri must be
// installed synchronously (while holding the builder lock) before any
// concurrent recursive call is dispatched, so two DFS branches racing to
// discover the same uri converge on one visit instead of duplicating work.
func (g *graphBuilder) dfs(uri string) error {
	g.mu.Lock()
	if g.visited[uri] {
		g.mu.Unlock()
		return nil
	}
	g.visited[uri] = true
	if _, ok := g.edges[uri]; !ok {
		g.edges[uri] = nil
	}
	g.mu.Unlock()

	table, err := g.refs.Get(g.qc, uri)
	if err != nil {
		return err
	}

	var next []string
	for _, entry := range table.References {
		if entry.Tag != refmanager.TagOK || entry.Resolved == nil {
			continue
		}
		target := entry.Resolved.TargetURI
		if target == uri {
			continue
		}

		g.mu.Lock()
		g.edges[uri] = append(g.edges[uri], target)
		alreadyVisited := g.visited[target]
		g.mu.Unlock()

		if !alreadyVisited {
			next = append(next, target)
		}
	}

	eg := new(errgroup.Group)
	for _, target := range next {
		eg.Go(func() error {
			return g.dfs(target)
		})
	}
	return eg.Wait()
}

func (g *graphBuilder) sortedNodes() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	nodes := make([]string, 0, len(g.edges))
	for uri := range g.edges {
		nodes = append(nodes, uri)
	}
	sort.Strings(nodes)
	return nodes
}

// condense runs Kosaraju's algorithm on conn.Edges and fills in conn.Groups,
// conn.groupOf, and conn.IncomingEdges.
func condense(conn *Connectivity) {
	order := kosarajuPostOrder(conn.Nodes, conn.Edges)

	transposed := make(map[string][]string, len(conn.Edges))
	for u, outs := range conn.Edges {
		for _, v := range outs {
			transposed[v] = append(transposed[v], u)
		}
	}

	visited := make(map[string]bool, len(conn.Nodes))
	var components [][]string
	for i := len(order) - 1; i >= 0; i-- {
		root := order[i]
		if visited[root] {
			continue
		}
		var comp []string
		stack := []string{root}
		visited[root] = true
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, n)
			for _, next := range transposed[n] {
				if !visited[next] {
					visited[next] = true
					stack = append(stack, next)
				}
			}
		}
		components = append(components, comp)
	}

	conn.groupOf = make(map[string]GroupID, len(conn.Nodes))
	conn.Groups = make(map[GroupID][]string)
	for _, comp := range components {
		sort.Strings(comp)
		id := comp[0]
		for _, uri := range comp {
			conn.groupOf[uri] = id
		}
		if len(comp) > 1 {
			conn.Groups[id] = comp
		}
	}

	conn.IncomingEdges = make(map[GroupID][]GroupID)
	seen := make(map[[2]GroupID]bool)
	for u, outs := range conn.Edges {
		for _, v := range outs {
			gu, gv := conn.GroupOf(u), conn.GroupOf(v)
			if gu == gv {
				continue
			}
			key := [2]GroupID{gu, gv}
			if seen[key] {
				continue
			}
			seen[key] = true
			conn.IncomingEdges[gv] = append(conn.IncomingEdges[gv], gu)
		}
	}
	for id := range conn.IncomingEdges {
		sort.Strings(conn.IncomingEdges[id])
	}
}

// kosarajuPostOrder returns nodes in DFS post-order over the forward graph.
func kosarajuPostOrder(nodes []string, edges map[string][]string) []string {
	visited := make(map[string]bool, len(nodes))
	var order []string

	var visit func(u string)
	visit = func(u string) {
		visited[u] = true
		for _, v := range edges[u] {
			if !visited[v] {
				visit(v)
			}
		}
		order = append(order, u)
	}

	sorted := make([]string, len(nodes))
	copy(sorted, nodes)
	sort.Strings(sorted)
	for _, u := range sorted {
		if !visited[u] {
			visit(u)
		}
	}
	return order
}

func hashConnectivity(conn *Connectivity) string {
	var sb []byte
	nodes := make([]string, len(conn.Nodes))
	copy(nodes, conn.Nodes)
	sort.Strings(nodes)
	for _, u := range nodes {
		sb = append(sb, u...)
		sb = append(sb, ':')
		targets := make([]string, len(conn.Edges[u]))
		copy(targets, conn.Edges[u])
		sort.Strings(targets)
		for _, v := range targets {
			sb = append(sb, v...)
			sb = append(sb, ',')
		}
		sb = append(sb, ';')
	}
	return string(sb)
}
