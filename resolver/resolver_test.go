package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speakeasy-api/openapi-lsp/docmanager"
	"github.com/speakeasy-api/openapi-lsp/querycache"
	"github.com/speakeasy-api/openapi-lsp/resolver"
	"github.com/speakeasy-api/openapi-lsp/system"
)

func newManager(fsys system.VirtualFS) *resolver.Manager {
	cache := querycache.New()
	docs := docmanager.New(cache, fsys, nil, docmanager.DefaultClassifyPatterns())
	return resolver.New(cache, docs)
}

func TestResolver_SameDocumentFragment(t *testing.T) {
	t.Parallel()

	fsys := system.NewMemFS().WithFile("openapi.yaml", "openapi: 3.1.0\n")
	m := newManager(fsys)

	res, err := m.Resolve(nil, "openapi.yaml", "#/components/schemas/Pet")
	require.NoError(t, err)
	assert.Equal(t, "openapi.yaml", res.TargetURI)
	assert.Equal(t, "/components/schemas/Pet", string(res.Pointer))
	assert.Equal(t, docmanager.KindOpenAPI, res.Document.Kind)
}

func TestResolver_RelativeFileReference(t *testing.T) {
	t.Parallel()

	fsys := system.NewMemFS().
		WithFile("root/openapi.yaml", "openapi: 3.1.0\n").
		WithFile("root/schemas/pet.yaml", "type: object\n")
	m := newManager(fsys)

	res, err := m.Resolve(nil, "root/openapi.yaml", "schemas/pet.yaml#/")
	require.NoError(t, err)
	assert.Equal(t, "root/schemas/pet.yaml", res.TargetURI)
	assert.Equal(t, docmanager.KindComponent, res.Document.Kind)
}

func TestResolver_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	m := newManager(system.NewMemFS())

	_, err := m.Resolve(nil, "openapi.yaml", "https://example.com/schema.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrUnsupportedScheme)
}
