package connectivity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speakeasy-api/openapi-lsp/connectivity"
	"github.com/speakeasy-api/openapi-lsp/docmanager"
	"github.com/speakeasy-api/openapi-lsp/querycache"
	"github.com/speakeasy-api/openapi-lsp/refmanager"
	"github.com/speakeasy-api/openapi-lsp/resolver"
	"github.com/speakeasy-api/openapi-lsp/system"
)

func newManager(fsys system.VirtualFS) *connectivity.Manager {
	cache := querycache.New()
	docs := docmanager.New(cache, fsys, nil, docmanager.DefaultClassifyPatterns())
	res := resolver.New(cache, docs)
	refs := refmanager.New(cache, docs, res)
	return connectivity.New(cache, fsys, system.DefaultGlobber{}, docs, refs)
}

func TestManager_SingleRootHasNoGroup(t *testing.T) {
	t.Parallel()

	fsys := system.NewMemFS().WithFile("openapi.yaml", "openapi: 3.1.0\n")
	m := newManager(fsys)

	conn, err := m.Get(context.Background(), connectivity.DefaultDiscoveryConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"openapi.yaml"}, conn.Nodes)
	assert.Equal(t, "openapi.yaml", conn.GroupOf("openapi.yaml"))
	assert.Empty(t, conn.Groups)
}

func TestManager_RingOfRefsFormsOneGroup(t *testing.T) {
	t.Parallel()

	fsys := system.NewMemFS().
		WithFile("openapi.yaml", "components:\n  schemas:\n    A:\n      $ref: 'b.yaml#/'\n").
		WithFile("b.yaml", "$ref: 'openapi.yaml#/components/schemas/A'\n")
	m := newManager(fsys)

	conn, err := m.Get(context.Background(), connectivity.DefaultDiscoveryConfig())
	require.NoError(t, err)

	group := conn.GroupOf("openapi.yaml")
	assert.Equal(t, conn.GroupOf("b.yaml"), group)
	assert.ElementsMatch(t, []string{"openapi.yaml", "b.yaml"}, conn.Groups[group])
}

func TestManager_CrossFileAcyclicRefRecordsIncomingEdge(t *testing.T) {
	t.Parallel()

	fsys := system.NewMemFS().
		WithFile("openapi.yaml", "components:\n  schemas:\n    A:\n      $ref: 'shared.yaml#/'\n").
		WithFile("shared.yaml", "type: object\n")
	m := newManager(fsys)

	conn, err := m.Get(context.Background(), connectivity.DefaultDiscoveryConfig())
	require.NoError(t, err)

	assert.Equal(t, "openapi.yaml", conn.GroupOf("openapi.yaml"))
	assert.Equal(t, "shared.yaml", conn.GroupOf("shared.yaml"))
	assert.Contains(t, conn.IncomingEdges["shared.yaml"], "openapi.yaml")
}
