// Package groupanalysis implements Group Analysis (spec.md §4.10): for
// each connectivity group (one SCC), it extracts shapes and nominals from
// every member document, pulls in types and nominals propagated from
// upstream groups, and runs the structural type Solver once per group. The
// querycache dependency graph makes the groups resolve in topological
// order automatically: a group's compute body loads its upstream groups'
// results before running its own solve.
package groupanalysis

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/speakeasy-api/openapi-lsp/connectivity"
	"github.com/speakeasy-api/openapi-lsp/docmanager"
	"github.com/speakeasy-api/openapi-lsp/nodeid"
	"github.com/speakeasy-api/openapi-lsp/nominal"
	"github.com/speakeasy-api/openapi-lsp/querycache"
	"github.com/speakeasy-api/openapi-lsp/shapeextract"
	"github.com/speakeasy-api/openapi-lsp/solver"
)

// Result is one group's analysis output: the structural solve plus the
// outgoing types/nominals the group exposes to the groups it has an edge
// into, so Manager.compute can hand them to those downstream groups
// without re-deriving them.
type Result struct {
	GroupID string
	Solve   *solver.Result
}

// Manager owns the per-group analysis loader.
type Manager struct {
	conn    *connectivity.Manager
	docs    *docmanager.Manager
	shapes  *shapeextract.Manager
	decoder nominal.Decoder
	cfg     connectivity.DiscoveryConfig
	loader  *querycache.Loader[string, *Result]
}

// New constructs a Manager and registers its loader on cache. decoder is
// the host-supplied lenient OpenAPI decoder (spec.md §1); cfg selects the
// workspace discovery root used to compute Connectivity.
func New(cache *querycache.Cache, conn *connectivity.Manager, docs *docmanager.Manager, shapes *shapeextract.Manager, decoder nominal.Decoder, cfg connectivity.DiscoveryConfig) *Manager {
	m := &Manager{conn: conn, docs: docs, shapes: shapes, decoder: decoder, cfg: cfg}
	m.loader = querycache.CreateLoader(cache, "groupAnalysis", m.compute)
	return m
}

// Get returns groupID's analysis result, from outside any compute body.
func (m *Manager) Get(ctx context.Context, groupID string) (*Result, error) {
	return m.loader.Use(ctx, groupID)
}

// Load is Get's counterpart for use from within another Loader's compute
// body.
func (m *Manager) Load(qc *querycache.Context, groupID string) (*Result, error) {
	return m.loader.Load(qc, groupID)
}

func (m *Manager) compute(qc *querycache.Context, groupID string) (*Result, string, error) {
	conn, err := m.conn.Load(qc, m.cfg)
	if err != nil {
		return nil, "", err
	}

	members := conn.Groups[groupID]
	if members == nil {
		members = []string{groupID}
	}

	upstreamIDs := conn.IncomingEdges[groupID]
	upstreams := make([]*Result, len(upstreamIDs))
	eg, _ := errgroup.WithContext(qc.Context())
	for i, id := range upstreamIDs {
		eg.Go(func() error {
			res, err := m.Load(qc, id)
			if err != nil {
				return err
			}
			upstreams[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, "", err
	}

	incomingTypes := make(map[nodeid.NodeId][]solver.JSONType)
	incomingNominals := make(map[nodeid.NodeId][]nominal.ID)
	for _, up := range upstreams {
		for id, t := range up.Solve.GetOutgoingTypes() {
			incomingTypes[id] = append(incomingTypes[id], t)
		}
		for id, n := range up.Solve.GetOutgoingNominals() {
			incomingNominals[id] = append(incomingNominals[id], n)
		}
	}

	input := solver.Input{
		Nodes:            make(map[nodeid.NodeId]solver.LocalShape),
		Nominals:         make(map[nodeid.NodeId]nominal.ID),
		IncomingTypes:    incomingTypes,
		IncomingNominals: incomingNominals,
	}

	sortedMembers := append([]string(nil), members...)
	sort.Strings(sortedMembers)

	for _, uri := range sortedMembers {
		doc, err := m.docs.Load(qc, uri)
		if err != nil {
			return nil, "", err
		}
		if doc.Kind == docmanager.KindTomb || doc.YAML == nil {
			continue
		}

		shapes, err := m.shapes.ExtractShapes(qc, uri)
		if err != nil {
			return nil, "", err
		}
		for id, shape := range shapes {
			input.Nodes[id] = shape
		}

		if doc.Kind == docmanager.KindOpenAPI {
			anchors, err := m.shapes.ExtractNominals(qc, uri, "", doc.YAML.Root(), nominal.Document, m.decoder)
			if err != nil {
				return nil, "", err
			}
			for id, n := range anchors.Local {
				input.Nominals[id] = n
			}
			for id, n := range anchors.Outgoing {
				input.IncomingNominals[id] = append(input.IncomingNominals[id], n)
			}
			continue
		}

		// A pure component document has no root nominal of its own; every
		// nominal it carries is propagated from an incoming edge that names
		// a specific node inside it.
		for id, requested := range incomingNominals {
			if id.DocUri() != uri {
				continue
			}
			node, err := doc.YAML.GetNodeAtPath(id.Pointer())
			if err != nil {
				continue
			}
			for _, want := range requested {
				anchors, err := m.shapes.ExtractNominals(qc, uri, id.Pointer(), node, want, m.decoder)
				if err != nil {
					continue
				}
				for anchorID, n := range anchors.Local {
					input.Nominals[anchorID] = n
				}
				for anchorID, n := range anchors.Outgoing {
					input.IncomingNominals[anchorID] = append(input.IncomingNominals[anchorID], n)
				}
			}
		}
	}

	result := solver.Solve(input)

	// The content hash must cover everything observable from the result, not
	// just the outgoing maps: a re-solve that changes only group-internal
	// types still has to look different to hover queries holding the old
	// instance.
	return &Result{GroupID: groupID, Solve: result}, result.Fingerprint(), nil
}
