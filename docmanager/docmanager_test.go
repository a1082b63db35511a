package docmanager_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speakeasy-api/openapi-lsp/docmanager"
	"github.com/speakeasy-api/openapi-lsp/querycache"
	"github.com/speakeasy-api/openapi-lsp/system"
)

type memBuffers map[string]string

func (b memBuffers) Get(uri string) (string, bool) {
	v, ok := b[uri]
	return v, ok
}

func TestManager_GetReadsFromFilesystem(t *testing.T) {
	t.Parallel()

	fsys := system.NewMemFS().WithFile("openapi.yaml", "openapi: 3.1.0\n")
	m := docmanager.New(querycache.New(), fsys, nil, docmanager.DefaultClassifyPatterns())

	doc, err := m.Get(context.Background(), "openapi.yaml")
	require.NoError(t, err)
	assert.Equal(t, docmanager.KindOpenAPI, doc.Kind)
	assert.Equal(t, "openapi.yaml", doc.URI)
}

func TestManager_GetClassifiesComponentFiles(t *testing.T) {
	t.Parallel()

	fsys := system.NewMemFS().WithFile("schemas/pet.yaml", "type: object\n")
	m := docmanager.New(querycache.New(), fsys, nil, docmanager.DefaultClassifyPatterns())

	doc, err := m.Get(context.Background(), "schemas/pet.yaml")
	require.NoError(t, err)
	assert.Equal(t, docmanager.KindComponent, doc.Kind)
}

func TestManager_GetTombstonesMissingFiles(t *testing.T) {
	t.Parallel()

	m := docmanager.New(querycache.New(), system.NewMemFS(), nil, docmanager.DefaultClassifyPatterns())

	doc, err := m.Get(context.Background(), "missing.yaml")
	require.NoError(t, err)
	assert.Equal(t, docmanager.KindTomb, doc.Kind)
}

func TestManager_BufferOverridesFilesystem(t *testing.T) {
	t.Parallel()

	fsys := system.NewMemFS().WithFile("openapi.yaml", "openapi: 3.1.0\n")
	buffers := memBuffers{"openapi.yaml": "openapi: 3.1.0\ninfo:\n  title: edited\n"}
	m := docmanager.New(querycache.New(), fsys, buffers, docmanager.DefaultClassifyPatterns())

	doc, err := m.Get(context.Background(), "openapi.yaml")
	require.NoError(t, err)
	title, err := doc.YAML.GetValueAtPath("/info/title")
	require.NoError(t, err)
	assert.Equal(t, "edited", title)
}

func TestManager_InvalidateForcesReread(t *testing.T) {
	t.Parallel()

	fsys := system.NewMemFS().WithFile("openapi.yaml", "openapi: 3.1.0\n")
	m := docmanager.New(querycache.New(), fsys, nil, docmanager.DefaultClassifyPatterns())

	first, err := m.Get(context.Background(), "openapi.yaml")
	require.NoError(t, err)

	fsys.WithFile("openapi.yaml", "openapi: 3.1.0\ninfo:\n  title: new\n")
	m.Invalidate("openapi.yaml")

	second, err := m.Get(context.Background(), "openapi.yaml")
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	title, err := second.YAML.GetValueAtPath("/info/title")
	require.NoError(t, err)
	assert.Equal(t, "new", title)
}
