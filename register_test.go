// FILE: lixenwraith/params/register_test.go
package params

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaFromStruct(t *testing.T) {
	type Item struct {
		ID int `params:"id"`
	}
	type Store struct {
		Path     string `params:"path" desc:"storage directory"`
		Compress bool   `params:"compress"`
	}
	type Job struct {
		Name     string            `params:"name,required"`
		Workers  int               `params:"workers"`
		Timeout  time.Duration     `params:"timeout"`
		Ratio    float64           `params:"ratio"`
		Tags     []string          `params:"tags,single"`
		Ports    []int             `params:"ports"`
		Labels   map[string]string `params:"labels"`
		Store    Store             `params:"store"`
		Items    []Item            `params:"items"`
		Skipped  string            `params:"-"`
		Pointer  *Store            `params:"pointer"`
		Untagged string
		hidden   string
	}

	schema, err := SchemaFromStruct("Job", &Job{
		Workers: 4,
		Timeout: 5 * time.Second,
		Ports:   []int{80},
		Labels:  map[string]string{"env": "dev"},
		Store:   Store{Path: "/var/lib/job"},
		hidden:  "x",
	})
	require.NoError(t, err)
	assert.Equal(t, "Job", schema.Name)

	var names []string
	for _, f := range schema.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"name", "workers", "timeout", "ratio", "tags", "ports", "labels", "store", "items", "Untagged"}, names)

	name, _ := schema.Field("name")
	assert.True(t, name.Required)
	assert.False(t, name.HasDefault)

	workers, _ := schema.Field("workers")
	assert.Equal(t, KindInt, workers.Kind)
	assert.Equal(t, 4, workers.Default)

	timeout, _ := schema.Field("timeout")
	assert.Equal(t, KindInt, timeout.Kind)

	ratio, _ := schema.Field("ratio")
	assert.Equal(t, KindFloat, ratio.Kind)
	assert.False(t, ratio.HasDefault)

	tags, _ := schema.Field("tags")
	assert.Equal(t, KindList, tags.Kind)
	assert.Equal(t, KindString, tags.Elem)
	assert.True(t, tags.SingleArg)

	ports, _ := schema.Field("ports")
	assert.Equal(t, []any{80}, ports.Default)

	labels, _ := schema.Field("labels")
	assert.Equal(t, KindDict, labels.Kind)
	assert.Equal(t, map[string]any{"env": "dev"}, labels.Default)

	store, _ := schema.Field("store")
	require.Equal(t, FieldNested, store.Type)
	path, _ := store.Schema.Field("path")
	assert.Equal(t, "/var/lib/job", path.Default)
	assert.Equal(t, "storage directory", path.Description)

	items, _ := schema.Field("items")
	assert.True(t, items.Many)
	assert.Equal(t, "Item", items.Schema.Name)

	t.Run("DefaultsResolve", func(t *testing.T) {
		filled, err := FillDefaults(schema, Tree{"name": "n"})
		require.NoError(t, err)
		out, err := Validate(schema, filled)
		require.NoError(t, err)
		assert.Equal(t, int64(5*time.Second), out["timeout"])
		assert.Equal(t, map[string]any{"path": "/var/lib/job"}, out["store"])
	})
}

func TestSchemaFromStructErrors(t *testing.T) {
	t.Run("NotAStruct", func(t *testing.T) {
		_, err := SchemaFromStruct("X", 5)
		assert.Error(t, err)
	})

	t.Run("NilPointer", func(t *testing.T) {
		var p *struct{}
		_, err := SchemaFromStruct("X", p)
		assert.Error(t, err)
	})

	t.Run("UnsupportedTypes", func(t *testing.T) {
		type Bad struct {
			Ch  chan int       `params:"ch"`
			Map map[int]string `params:"map"`
		}
		_, err := SchemaFromStruct("Bad", Bad{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 field(s)")
	})

	t.Run("DuplicateTags", func(t *testing.T) {
		type Dup struct {
			A string `params:"same"`
			B string `params:"same"`
		}
		_, err := SchemaFromStruct("Dup", Dup{})
		assert.Error(t, err)
	})
}
