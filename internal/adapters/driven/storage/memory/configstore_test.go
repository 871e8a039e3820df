package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_Seeded(t *testing.T) {
	seed := map[string]any{"paths.root": "INSUMOS", "server.max_upload_mb": int64(10)}
	s := NewConfigStore(seed)

	assert.Equal(t, "INSUMOS", s.GetString("paths.root"))
	assert.Equal(t, 10, s.GetInt("server.max_upload_mb"))

	seed["paths.root"] = "changed"
	assert.Equal(t, "INSUMOS", s.GetString("paths.root"), "seed map is copied")
}

func TestConfigStore_NilSeed(t *testing.T) {
	s := NewConfigStore(nil)

	_, ok := s.Get("anything")
	assert.False(t, ok)
	require.NoError(t, s.Set("x", 1))
	assert.Equal(t, 1, s.GetInt("x"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	s := NewConfigStore(map[string]any{"a": 3, "b": "text", "c": 1.5})

	assert.Equal(t, "", s.GetString("a"))
	assert.Equal(t, 0, s.GetInt("b"))
	assert.Equal(t, 0, s.GetInt("c"))
	assert.Equal(t, "", s.GetString("missing"))
}

func TestConfigStore_LoadAndPath(t *testing.T) {
	s := NewConfigStore(nil)

	assert.NoError(t, s.Load())
	assert.Equal(t, ":memory:", s.Path())
}
