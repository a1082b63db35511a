// Package querycache implements the process-wide dependency-tracking
// memoization engine described by the analysis core: computations register
// their upstream dependencies by calling Load from within their own compute
// body, and are invalidated transitively whenever an upstream's content hash
// changes. Each Loader derives its cache keys by fingerprinting its own name
// together with the caller-supplied key value via cachekey.HashAll, so
// distinct loaders never collide even when given equal keys.
package querycache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/speakeasy-api/openapi-lsp/cachekey"
	"github.com/speakeasy-api/openapi-lsp/errors"
	"golang.org/x/sync/singleflight"
)

const (
	// ErrCycle is returned when Load re-enters a key that is already on the
	// calling context's compute stack.
	ErrCycle = errors.Error("CYCLE")
	// ErrMissingEntry is returned when an upstream key is read before it has
	// ever been computed by its owning Loader. This is a programmer error.
	ErrMissingEntry = errors.Error("MISSING_ENTRY")
)

// Key identifies a single cache entry. Loaders build one internally from
// their name and a caller-supplied key value via cachekey.HashAll.
type Key = cachekey.Fingerprint

type erasedComputeFunc func(ctx *Context) (any, string, error)

type entry struct {
	mu                 sync.Mutex
	computeFn          erasedComputeFunc
	hasValue           bool
	value              any
	contentHash        string
	upstreams          map[Key]struct{}
	downstreams        map[Key]struct{}
	lastUpstreamHashes map[Key]string
}

// Cache is the process-wide memo. Construct one with New and share it across
// every Loader that should participate in the same dependency graph.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group
	logger  *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the structured logger used for cache diagnostics. Pass a
// logger with a Debug handler enabled to mirror the `openapi-lsp.debug.cache`
// workspace setting.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[Key]*entry),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Context is threaded through a compute body. It carries the standard
// context.Context for cancellable I/O and the bookkeeping needed to detect
// cycles and record upstream dependencies. A compute body may fan out
// concurrent Load calls on the same Context (e.g. Connectivity's concurrent
// DFS), so its upstream bookkeeping is safe for concurrent use.
type Context struct {
	std   context.Context //nolint:containedctx // carried alongside cache bookkeeping by design, see querycache.Context doc
	owner Key
	stack []Key

	mu        sync.Mutex
	upstreams map[Key]string
}

// Context returns the standard library context for the current compute, for
// use in cancellable I/O (file reads, HTTP calls).
func (c *Context) Context() context.Context {
	if c == nil || c.std == nil {
		return context.Background()
	}
	return c.std
}

func (c *Context) recordUpstream(key Key, hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.upstreams == nil {
		c.upstreams = make(map[Key]string)
	}
	c.upstreams[key] = hash
}

func (c *Context) snapshotUpstreams() map[Key]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := make(map[Key]string, len(c.upstreams))
	for k, h := range c.upstreams {
		snap[k] = h
	}
	return snap
}

func (c *Context) childStack(key Key) []Key {
	stack := make([]Key, len(c.stack)+1)
	copy(stack, c.stack)
	stack[len(c.stack)] = key
	return stack
}

func (c *Context) onStack(key Key) bool {
	for _, k := range c.stack {
		if k == key {
			return true
		}
	}
	return false
}

// ComputeFunc is a memoized computation parameterized over its own key type
// K and output type T. It must call Load (not Use) for any upstream
// dependency so the dependency is recorded against ctx, and must be pure
// with respect to those upstreams: every input has to arrive via Load or
// the key itself.
type ComputeFunc[K any, T any] func(ctx *Context, key K) (value T, contentHash string, err error)

// Loader binds a typed, keyed compute function to a Cache. name
// disambiguates this loader's keyspace from every other loader sharing the
// same Cache (two loaders given an equal key value never collide) and is
// used for diagnostic logging.
type Loader[K any, T any] struct {
	cache   *Cache
	name    string
	compute ComputeFunc[K, T]
}

// CreateLoader registers a new memoized computation on cache.
func CreateLoader[K any, T any](cache *Cache, name string, compute ComputeFunc[K, T]) *Loader[K, T] {
	return &Loader[K, T]{cache: cache, name: name, compute: compute}
}

func (l *Loader[K, T]) fingerprint(key K) Key {
	return cachekey.HashAll(l.name, key)
}

func (l *Loader[K, T]) erased(key K) erasedComputeFunc {
	return func(ctx *Context) (any, string, error) {
		return l.compute(ctx, key)
	}
}

// Use is the external entry point: call it from outside any compute body
// (e.g. from a top-level language-feature query).
func (l *Loader[K, T]) Use(ctx context.Context, key K) (T, error) {
	root := &Context{std: ctx}
	v, _, err := l.cache.resolve(root, l.fingerprint(key), l.erased(key))
	return asT[T](v, err)
}

// Load must be called from within a compute body so the dependency is
// registered on the owning key. Calling Load outside a compute body (nil
// ctx) behaves like Use.
func (l *Loader[K, T]) Load(ctx *Context, key K) (T, error) {
	if ctx == nil {
		return l.Use(context.Background(), key)
	}
	fp := l.fingerprint(key)
	v, hash, err := l.cache.resolve(ctx, fp, l.erased(key))
	if err == nil {
		ctx.recordUpstream(fp, hash)
	}
	return asT[T](v, err)
}

// Invalidate marks key's entry stale. Downstreams of key are invalidated
// transitively but lazily: each re-checks its recorded upstream hashes on
// its next resolve and recomputes only if one actually changed. Physical
// removal of the entry is not required and is not performed.
func (l *Loader[K, T]) Invalidate(key K) {
	l.cache.invalidate(l.fingerprint(key))
}

func asT[T any](v any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.Error("MISSING_ENTRY").Wrap(errBadType)
	}
	return t, nil
}

var errBadType = errors.New("querycache: value has unexpected type")

func (c *Cache) getEntry(key Key, fn erasedComputeFunc) (*entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		if fn == nil {
			return nil, ErrMissingEntry
		}
		e = &entry{computeFn: fn}
		c.entries[key] = e
		return e, nil
	}
	if fn != nil {
		e.computeFn = fn
	}
	return e, nil
}

func (c *Cache) resolve(callerCtx *Context, key Key, fn erasedComputeFunc) (any, string, error) {
	if callerCtx.onStack(key) {
		return nil, "", ErrCycle
	}

	e, err := c.getEntry(key, fn)
	if err != nil {
		return nil, "", err
	}

	if fresh, v, h := c.checkFresh(callerCtx, key, e); fresh {
		c.logger.Debug("querycache hit", slog.String("key", string(key)))
		return v, h, nil
	}

	type result struct {
		value any
		hash  string
	}

	res, err, _ := c.group.Do(string(key), func() (any, error) {
		v, h, err := c.runCompute(callerCtx, key, e)
		if err != nil {
			return nil, err
		}
		return result{value: v, hash: h}, nil
	})
	if err != nil {
		return nil, "", err
	}
	r := res.(result) //nolint:forcetypeassert // singleflight.Do always returns what we passed in
	return r.value, r.hash, nil
}

func (c *Cache) checkFresh(callerCtx *Context, key Key, e *entry) (bool, any, string) {
	e.mu.Lock()
	if !e.hasValue {
		e.mu.Unlock()
		return false, nil, ""
	}
	ups := make(map[Key]string, len(e.lastUpstreamHashes))
	for k, h := range e.lastUpstreamHashes {
		ups[k] = h
	}
	value, hash := e.value, e.contentHash
	e.mu.Unlock()

	if len(ups) == 0 {
		return true, value, hash
	}

	child := &Context{std: callerCtx.Context(), stack: callerCtx.childStack(key)}
	for upKey, lastHash := range ups {
		_, upHash, err := c.resolve(child, upKey, nil)
		if err != nil || upHash != lastHash {
			return false, nil, ""
		}
	}
	return true, value, hash
}

func (c *Cache) runCompute(callerCtx *Context, key Key, e *entry) (any, string, error) {
	qc := &Context{
		std:       callerCtx.Context(),
		owner:     key,
		stack:     callerCtx.childStack(key),
		upstreams: map[Key]string{},
	}

	c.logger.Debug("querycache compute", slog.String("key", string(key)))

	val, hash, err := e.computeFn(qc)
	if err != nil {
		return nil, "", err
	}

	e.mu.Lock()
	oldUpstreams := e.upstreams
	if e.value != nil && e.contentHash == hash {
		// Stable-output optimization: recompute produced an equal content
		// hash, so keep the prior value instance for downstream identity
		// checks. Invalidation marks an entry stale without dropping its
		// value, so this holds across invalidate-then-recompute too.
		val = e.value
	}
	e.value = val
	e.hasValue = true
	e.contentHash = hash
	e.upstreams = make(map[Key]struct{}, len(qc.upstreams))
	e.lastUpstreamHashes = make(map[Key]string, len(qc.upstreams))
	for k, h := range qc.upstreams {
		e.upstreams[k] = struct{}{}
		e.lastUpstreamHashes[k] = h
	}
	e.mu.Unlock()

	for k := range oldUpstreams {
		if _, still := qc.upstreams[k]; !still {
			c.removeDownstream(k, key)
		}
	}
	for k := range qc.upstreams {
		c.addDownstream(k, key)
	}

	return val, hash, nil
}

func (c *Cache) addDownstream(upstream, downstream Key) {
	c.mu.Lock()
	e, ok := c.entries[upstream]
	c.mu.Unlock()
	if !ok {
		return
	}
	e.mu.Lock()
	if e.downstreams == nil {
		e.downstreams = make(map[Key]struct{})
	}
	e.downstreams[downstream] = struct{}{}
	e.mu.Unlock()
}

func (c *Cache) removeDownstream(upstream, downstream Key) {
	c.mu.Lock()
	e, ok := c.entries[upstream]
	c.mu.Unlock()
	if !ok {
		return
	}
	e.mu.Lock()
	delete(e.downstreams, downstream)
	e.mu.Unlock()
}

// invalidate marks key itself stale. Downstream entries keep their values:
// checkFresh re-resolves their upstreams on demand and compares content
// hashes against lastUpstreamHashes, so a recompute of key that reproduces
// the same hash stops the cascade without ever rerunning a downstream
// producer. Eagerly clearing the whole downstream closure here would force
// every transitive consumer to recompute unconditionally, defeating that
// gate.
func (c *Cache) invalidate(key Key) {
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return
	}

	e.mu.Lock()
	// Mark stale without dropping the value: the retained instance lets a
	// recompute with an unchanged content hash hand back the same object.
	e.hasValue = false
	e.mu.Unlock()

	c.logger.Debug("querycache invalidate", slog.String("key", string(key)))
}
