// Package docmanager implements the Document Manager (spec.md §4.3): reads
// a document from the open-editor buffer or the filesystem, classifies it
// as an OpenAPI root or a plain component file, and produces a
// ServerDocument keyed and memoized through the query cache.
package docmanager

import (
	"context"
	"io/fs"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/speakeasy-api/openapi-lsp/hashing"
	"github.com/speakeasy-api/openapi-lsp/querycache"
	"github.com/speakeasy-api/openapi-lsp/system"
	"github.com/speakeasy-api/openapi-lsp/yamldoc"
)

// Kind discriminates the ServerDocument tagged variant.
type Kind int

const (
	KindOpenAPI Kind = iota
	KindComponent
	KindTomb
)

func (k Kind) String() string {
	switch k {
	case KindOpenAPI:
		return "openapi"
	case KindComponent:
		return "component"
	case KindTomb:
		return "tomb"
	default:
		return "unknown"
	}
}

// ServerDocument is the per-document analysis state: either a successfully
// read and parsed root/component file, or a tomb recording an unreadable or
// deleted one.
type ServerDocument struct {
	Kind Kind
	URI  string
	YAML *yamldoc.Document
}

// ClassifyPatterns are the glob sets used to distinguish OpenAPI root files
// from plain component files, mirroring openapi-lsp.discoverRoots.pattern
// and the "*.openapi.{yml,yaml}" / bare "openapi.{yml,yaml}" file-discovery
// rule in spec.md §6.
type ClassifyPatterns struct {
	RootPatterns []string
}

// DefaultClassifyPatterns matches spec.md §6's stated root file-discovery
// globs.
func DefaultClassifyPatterns() ClassifyPatterns {
	return ClassifyPatterns{RootPatterns: []string{"**/*.openapi.yml", "**/*.openapi.yaml", "**/openapi.yml", "**/openapi.yaml"}}
}

func (c ClassifyPatterns) isRoot(uri string) bool {
	for _, pattern := range c.RootPatterns {
		if ok, _ := doublestar.Match(pattern, uri); ok {
			return true
		}
	}
	return false
}

// Buffer is an open-editor buffer override: when present for a URI, it is
// read in preference to the filesystem, mirroring textDocument/didOpen +
// didChange invalidation.
type Buffer interface {
	Get(uri string) (content string, ok bool)
}

// Manager owns the ServerDocument loader. A Manager is safe for concurrent
// use; all memoization happens inside the shared Cache.
type Manager struct {
	fsys     system.VirtualFS
	buffers  Buffer
	classify ClassifyPatterns
	loader   *querycache.Loader[string, *ServerDocument]
}

// New constructs a Manager and registers its loader on cache.
func New(cache *querycache.Cache, fsys system.VirtualFS, buffers Buffer, classify ClassifyPatterns) *Manager {
	m := &Manager{fsys: fsys, buffers: buffers, classify: classify}
	m.loader = querycache.CreateLoader(cache, "serverDocument", m.compute)
	return m
}

// Get returns the current ServerDocument for uri, reading and parsing it if
// necessary. Call this from outside any compute body.
func (m *Manager) Get(ctx context.Context, uri string) (*ServerDocument, error) {
	return m.loader.Use(ctx, uri)
}

// Load is Get's counterpart for use from within another Loader's compute
// body: it registers uri's document as an upstream dependency of qc's
// owning key.
func (m *Manager) Load(qc *querycache.Context, uri string) (*ServerDocument, error) {
	return m.loader.Load(qc, uri)
}

// Invalidate marks uri's document stale; the next Get re-reads it.
func (m *Manager) Invalidate(uri string) {
	m.loader.Invalidate(uri)
}

func (m *Manager) compute(_ *querycache.Context, uri string) (*ServerDocument, string, error) {
	return m.read(uri)
}

func (m *Manager) read(uri string) (*ServerDocument, string, error) {
	content, ok := "", false
	if m.buffers != nil {
		content, ok = m.buffers.Get(uri)
	}
	if !ok {
		data, err := fs.ReadFile(m.fsys, uriToPath(uri))
		if err != nil {
			return &ServerDocument{Kind: KindTomb, URI: uri}, "", nil
		}
		content = string(data)
	}

	doc, err := yamldoc.Parse(content)
	if err != nil {
		// A best-effort AST is preferred per spec.md §7, but without one the
		// document is still usable as an empty root. Only a failed read
		// above records a tomb.
		doc, _ = yamldoc.Parse("")
	}

	kind := KindComponent
	if m.classify.isRoot(uri) {
		kind = KindOpenAPI
	}

	hash := hashing.Hash(doc.Root())

	return &ServerDocument{Kind: kind, URI: uri, YAML: doc}, hash, nil
}

// uriToPath strips a file:// prefix for filesystem lookups; other schemes
// are handled upstream by the resolver, which never reaches here without
// having already rejected them.
func uriToPath(uri string) string {
	const prefix = "file://"
	if len(uri) >= len(prefix) && uri[:len(prefix)] == prefix {
		p := uri[len(prefix):]
		for len(p) > 0 && p[0] == '/' {
			p = p[1:]
		}
		return p
	}
	return uri
}
