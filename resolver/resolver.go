// Package resolver implements the Resolver (spec.md §4.5): turns a
// (baseUri, ref) pair into an absolute target document URI, handling the
// URL-join semantics (".." segments, fragments) a $ref string requires, and
// loads the resulting document through the Document Manager so the
// resolution participates in the same dependency graph.
package resolver

import (
	"strings"

	"github.com/speakeasy-api/openapi-lsp/docmanager"
	"github.com/speakeasy-api/openapi-lsp/errors"
	"github.com/speakeasy-api/openapi-lsp/internal/utils"
	"github.com/speakeasy-api/openapi-lsp/jsonpointer"
	"github.com/speakeasy-api/openapi-lsp/querycache"
)

const (
	// ErrUnsupportedScheme is returned when ref (or baseUri) resolves to a
	// non-file scheme; spec.md §6 only supports file:// documents.
	ErrUnsupportedScheme = errors.Error("unsupportedUriScheme")
	// ErrInvalidURI is returned when baseUri or ref fail to parse as a URI.
	ErrInvalidURI = errors.Error("invalidUri")
)

// Result is a resolved reference target: the document it points into, and
// the JSON Pointer within that document.
type Result struct {
	TargetURI string
	Pointer   jsonpointer.JSONPointer
	Document  *docmanager.ServerDocument
}

type key struct {
	BaseURI string
	Ref     string
}

// Manager owns the (baseUri, ref) -> Result loader.
type Manager struct {
	docs   *docmanager.Manager
	loader *querycache.Loader[key, *Result]
}

// New constructs a Manager backed by docs, registering its loader on cache.
func New(cache *querycache.Cache, docs *docmanager.Manager) *Manager {
	m := &Manager{docs: docs}
	m.loader = querycache.CreateLoader(cache, "resolve", m.compute)
	return m
}

// Resolve resolves ref against baseUri, loading the target document.
func (m *Manager) Resolve(qc *querycache.Context, baseURI, ref string) (*Result, error) {
	return m.loader.Load(qc, key{BaseURI: baseURI, Ref: ref})
}

func (m *Manager) compute(qc *querycache.Context, k key) (*Result, string, error) {
	targetURI, pointer, err := joinReference(k.BaseURI, k.Ref)
	if err != nil {
		return nil, "", err
	}

	doc, err := m.docs.Load(qc, targetURI)
	if err != nil {
		return nil, "", err
	}

	return &Result{TargetURI: targetURI, Pointer: pointer, Document: doc}, targetURI + "#" + string(pointer), nil
}

// joinReference splits ref into its URI and fragment parts, joins the URI
// part against baseURI with URL-resolution semantics, and rejects anything
// that is not a file:// (or scheme-less, inheriting baseURI's scheme) URI.
func joinReference(baseURI, ref string) (string, jsonpointer.JSONPointer, error) {
	uriPart, pointerPart, _ := strings.Cut(ref, "#")

	base, err := utils.ParseURLCached(baseURI)
	if err != nil {
		return "", "", ErrInvalidURI.Wrap(err)
	}

	var target string
	if uriPart == "" {
		target = baseURI
	} else {
		rel, err := utils.ParseURLCached(uriPart)
		if err != nil {
			return "", "", ErrInvalidURI.Wrap(err)
		}
		target = base.ResolveReference(rel).String()
	}

	resolved, err := utils.ParseURLCached(target)
	if err != nil {
		return "", "", ErrInvalidURI.Wrap(err)
	}
	if resolved.Scheme != "" && resolved.Scheme != "file" {
		return "", "", ErrUnsupportedScheme
	}

	if pointerPart == "/" {
		// "#/" addresses the whole document, the same node as a bare URI.
		pointerPart = ""
	}
	return target, jsonpointer.JSONPointer(pointerPart), nil
}
