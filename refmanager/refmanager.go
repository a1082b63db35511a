// Package refmanager implements the Reference Manager (spec.md §4.6): a
// per-document loader that collects every $ref site in a document together
// with its resolution result. Its content hash covers each ref string and
// the ok/error tag of its resolution, so a pure text edit that leaves every
// $ref untouched keeps the hash stable and avoids recomputing Connectivity.
package refmanager

import (
	"fmt"
	"sort"
	"strings"

	"github.com/speakeasy-api/openapi-lsp/docmanager"
	"github.com/speakeasy-api/openapi-lsp/querycache"
	"github.com/speakeasy-api/openapi-lsp/resolver"
	"github.com/speakeasy-api/openapi-lsp/yamldoc"
)

// ResolutionTag is the coarse outcome of resolving a single reference,
// independent of the resolved document's own content, so the reference
// table's hash only depends on whether resolution still succeeds and not on
// the resolved content (that dependency is recorded separately as an
// upstream of the owning group, not of the table entry itself).
type ResolutionTag int

const (
	TagOK ResolutionTag = iota
	TagError
)

// Entry is one $ref site and its resolution outcome.
type Entry struct {
	Ref          string
	KeyRange     yamldoc.Range
	PointerRange yamldoc.Range
	Path         string

	Tag      ResolutionTag
	Resolved *resolver.Result
	Err      error
}

// Table is the Reference Manager's per-document output.
type Table struct {
	URI        string
	References []Entry
}

// Manager owns the per-document reference table loader.
type Manager struct {
	docs     *docmanager.Manager
	resolver *resolver.Manager
	loader   *querycache.Loader[string, *Table]
}

// New constructs a Manager and registers its loader on cache.
func New(cache *querycache.Cache, docs *docmanager.Manager, resolve *resolver.Manager) *Manager {
	m := &Manager{docs: docs, resolver: resolve}
	m.loader = querycache.CreateLoader(cache, "refTable", m.compute)
	return m
}

// Get returns uri's reference table. ctx may be nil outside a compute body;
// inside one, passing the body's context records the dependency.
func (m *Manager) Get(ctx *querycache.Context, uri string) (*Table, error) {
	return m.loader.Load(ctx, uri)
}

func (m *Manager) compute(qc *querycache.Context, uri string) (*Table, string, error) {
	doc, err := m.docs.Load(qc, uri)
	if err != nil {
		return nil, "", err
	}
	if doc.Kind == docmanager.KindTomb || doc.YAML == nil {
		return &Table{URI: uri}, "tomb", nil
	}

	sites := doc.YAML.CollectRefs()
	entries := make([]Entry, 0, len(sites))
	var hashParts []string

	for _, site := range sites {
		entry := Entry{
			Ref:          site.Ref,
			KeyRange:     site.KeyRange,
			PointerRange: site.PointerRange,
			Path:         string(site.Path),
		}

		res, rErr := m.resolver.Resolve(qc, uri, site.Ref)
		if rErr != nil {
			entry.Tag = TagError
			entry.Err = rErr
			hashParts = append(hashParts, fmt.Sprintf("%s=err", site.Ref))
		} else {
			entry.Tag = TagOK
			entry.Resolved = res
			hashParts = append(hashParts, fmt.Sprintf("%s=ok", site.Ref))
		}

		entries = append(entries, entry)
	}

	sort.Strings(hashParts)
	hash := strings.Join(hashParts, ";")

	return &Table{URI: uri, References: entries}, hash, nil
}
