package cachekey_test

import (
	"testing"

	"github.com/speakeasy-api/openapi-lsp/cachekey"
	"github.com/stretchr/testify/assert"
)

func TestHash_MapOrderIndependent(t *testing.T) {
	t.Parallel()

	a := map[string]any{"b": 2, "a": 1}
	b := map[string]any{"a": 1, "b": 2}

	assert.Equal(t, cachekey.Hash(a), cachekey.Hash(b))
}

func TestHash_UndefinedFieldsDropped(t *testing.T) {
	t.Parallel()

	withNil := map[string]any{"a": 1, "b": nil}
	without := map[string]any{"a": 1}

	assert.Equal(t, cachekey.Hash(without), cachekey.Hash(withNil))
}

func TestHash_DistinctValuesDiffer(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t, cachekey.Hash("a"), cachekey.Hash("b"))
	assert.NotEqual(t, cachekey.Hash(1), cachekey.Hash(2))
	assert.NotEqual(t, cachekey.Hash([]cachekey.Key{1, 2}), cachekey.Hash([]cachekey.Key{2, 1}))
}

func TestHashAll_IsDeterministic(t *testing.T) {
	t.Parallel()

	a := cachekey.HashAll("serverDocument", "file:///a.yaml")
	b := cachekey.HashAll("serverDocument", "file:///a.yaml")
	assert.Equal(t, a, b)

	c := cachekey.HashAll("serverDocument", "file:///b.yaml")
	assert.NotEqual(t, a, c)
}
