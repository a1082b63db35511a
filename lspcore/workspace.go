// Package lspcore wires the analysis core's managers into a single
// Workspace a language-server front end (or the CLI) drives: document
// lifecycle notifications invalidate the query cache, and hover/definition
// requests read through it. Everything protocol-shaped (JSON-RPC framing,
// capability negotiation, position encoding negotiation) stays outside this
// package.
package lspcore

import (
	"context"
	"log/slog"

	"github.com/speakeasy-api/openapi-lsp/cache"
	"github.com/speakeasy-api/openapi-lsp/connectivity"
	"github.com/speakeasy-api/openapi-lsp/docmanager"
	"github.com/speakeasy-api/openapi-lsp/groupanalysis"
	"github.com/speakeasy-api/openapi-lsp/hoverquery"
	"github.com/speakeasy-api/openapi-lsp/lspcore/oasdecode"
	"github.com/speakeasy-api/openapi-lsp/nominal"
	"github.com/speakeasy-api/openapi-lsp/querycache"
	"github.com/speakeasy-api/openapi-lsp/refmanager"
	"github.com/speakeasy-api/openapi-lsp/resolver"
	"github.com/speakeasy-api/openapi-lsp/shapeextract"
	"github.com/speakeasy-api/openapi-lsp/system"
	"github.com/speakeasy-api/openapi-lsp/yamldoc"
)

// MarkdownRenderer is the external collaborator that turns a resolved hover
// result into the markdown payload returned over the protocol.
type MarkdownRenderer interface {
	RenderHover(nom nominal.ID, value any, derivedName string) string
}

// Workspace owns the process-wide query cache and every manager layered on
// it, rooted at one workspace folder. Construction is the cache's init
// phase; Close is its teardown.
type Workspace struct {
	cfg    Config
	root   string
	fsys   system.VirtualFS
	logger *slog.Logger

	qcache   *querycache.Cache
	buffers  *BufferStore
	docs     *docmanager.Manager
	resolver *resolver.Manager
	refs     *refmanager.Manager
	conn     *connectivity.Manager
	shapes   *shapeextract.Manager
	groups   *groupanalysis.Manager
	hover    *hoverquery.Manager

	decoder  nominal.Decoder
	renderer MarkdownRenderer
	discover connectivity.DiscoveryConfig
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*Workspace)

// WithConfig overrides the default workspace configuration.
func WithConfig(cfg Config) WorkspaceOption {
	return func(w *Workspace) { w.cfg = cfg }
}

// WithDecoder overrides the default lenient OpenAPI decoder.
func WithDecoder(dec nominal.Decoder) WorkspaceOption {
	return func(w *Workspace) { w.decoder = dec }
}

// WithRenderer sets the hover markdown renderer.
func WithRenderer(r MarkdownRenderer) WorkspaceOption {
	return func(w *Workspace) { w.renderer = r }
}

// WithWorkspaceLogger sets the structured logger shared with the query
// cache.
func WithWorkspaceLogger(logger *slog.Logger) WorkspaceOption {
	return func(w *Workspace) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWorkspace constructs a Workspace rooted at root over fsys.
func NewWorkspace(root string, fsys system.VirtualFS, opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		cfg:     DefaultConfig(),
		root:    root,
		fsys:    fsys,
		logger:  slog.Default(),
		decoder: oasdecode.New(),
	}
	for _, opt := range opts {
		opt(w)
	}

	cacheOpts := []querycache.Option{}
	if w.cfg.DebugCache {
		cacheOpts = append(cacheOpts, querycache.WithLogger(w.logger))
	}
	w.qcache = querycache.New(cacheOpts...)

	w.buffers = NewBufferStore()
	w.docs = docmanager.New(w.qcache, fsys, w.buffers, docmanager.DefaultClassifyPatterns())
	w.resolver = resolver.New(w.qcache, w.docs)
	w.refs = refmanager.New(w.qcache, w.docs, w.resolver)
	w.conn = connectivity.New(w.qcache, fsys, system.DefaultGlobber{}, w.docs, w.refs)
	w.shapes = shapeextract.New(w.docs, w.resolver)

	w.discover = connectivity.DiscoveryConfig{
		Root:    root,
		Pattern: w.cfg.DiscoverRootsPattern,
		Ignore:  w.cfg.DiscoverRootsIgnore,
	}

	w.groups = groupanalysis.New(w.qcache, w.conn, w.docs, w.shapes, w.decoder, w.discover)
	w.hover = hoverquery.New(w.docs, w.resolver, w.conn, w.groups, w.discover)

	return w
}

// DidOpen records uri's buffer contents and invalidates its document entry.
func (w *Workspace) DidOpen(uri, content string) {
	w.buffers.Set(uri, content)
	w.docs.Invalidate(uri)
}

// DidChange replaces uri's buffer contents and invalidates its document
// entry; every downstream (references, connectivity, group analysis) is
// invalidated transitively and re-evaluated lazily on the next query.
func (w *Workspace) DidChange(uri, content string) {
	w.buffers.Set(uri, content)
	w.docs.Invalidate(uri)
}

// DidClose drops uri's buffer so reads fall back to the filesystem.
func (w *Workspace) DidClose(uri string) {
	w.buffers.Delete(uri)
	w.docs.Invalidate(uri)
}

// Hover resolves the node under pos and returns the raw query result.
func (w *Workspace) Hover(ctx context.Context, uri string, pos yamldoc.Position) (*hoverquery.Result, error) {
	return w.hover.Hover(ctx, uri, pos)
}

// HoverMarkdown resolves the node under pos and renders it with the
// configured MarkdownRenderer. With no renderer configured it returns the
// empty string and the raw result's error, mirroring the protocol layer's
// null-on-failure behavior.
func (w *Workspace) HoverMarkdown(ctx context.Context, uri string, pos yamldoc.Position) (string, error) {
	res, err := w.hover.Hover(ctx, uri, pos)
	if err != nil {
		return "", err
	}
	if w.renderer == nil {
		return "", nil
	}
	return w.renderer.RenderHover(res.Nominal, res.Value, res.DerivedName), nil
}

// Definition resolves the $ref or key under pos to its definition location.
func (w *Workspace) Definition(ctx context.Context, uri string, pos yamldoc.Position) (*hoverquery.Definition, error) {
	return w.hover.Definition(ctx, uri, pos)
}

// Connectivity computes (or returns the cached) workspace document graph.
func (w *Workspace) Connectivity(ctx context.Context) (*connectivity.Connectivity, error) {
	return w.conn.Get(ctx, w.discover)
}

// AnalyzeGroup runs (or reuses) groupID's analysis.
func (w *Workspace) AnalyzeGroup(ctx context.Context, groupID string) (*groupanalysis.Result, error) {
	return w.groups.Get(ctx, groupID)
}

// AnalyzeAll analyzes every group in the workspace, returning results keyed
// by group ID. Groups solve in dependency order via the cache regardless of
// the iteration order here.
func (w *Workspace) AnalyzeAll(ctx context.Context) (map[string]*groupanalysis.Result, error) {
	conn, err := w.Connectivity(ctx)
	if err != nil {
		return nil, err
	}

	results := make(map[string]*groupanalysis.Result)
	for _, uri := range conn.Nodes {
		groupID := conn.GroupOf(uri)
		if _, done := results[groupID]; done {
			continue
		}
		res, err := w.groups.Get(ctx, groupID)
		if err != nil {
			return nil, err
		}
		results[groupID] = res
	}
	return results, nil
}

// Documents exposes the document manager for collaborating layers (the CLI,
// protocol glue) that need direct document access.
func (w *Workspace) Documents() *docmanager.Manager { return w.docs }

// Close tears down the workspace's process-wide state: the query cache is
// dropped with the Workspace itself, and the module-global parsing and
// resolution caches are cleared.
func (w *Workspace) Close() {
	cache.ClearAllCaches()
}
