// FILE: lixenwraith/params/discovery_test.go
package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDiscovery(t *testing.T) {
	dir := t.TempDir()
	later := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(later, "app.json"), []byte(`{"a": 2}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), []byte("a: 1\n"), 0644))

	opts := FileDiscoveryOptions{
		Name:       "app",
		Extensions: []string{".json", ".yaml"},
		Paths:      []string{dir, later},
	}

	t.Run("FirstPathWins", func(t *testing.T) {
		assert.Equal(t, filepath.Join(dir, "app.yaml"), discoverFile(opts))
	})

	t.Run("NothingFound", func(t *testing.T) {
		o := opts
		o.Name = "missing"
		assert.Empty(t, discoverFile(o))

		b := NewBuilder().WithSources().WithFileDiscovery(o)
		assert.Empty(t, b.DiscoveredFile())
		assert.Empty(t, b.sources)
	})

	t.Run("DiscoveredFileIsBase", func(t *testing.T) {
		schema := MustSchema("S", "", Leaf("a", KindInt, Required()))
		b := NewBuilder().
			WithSchema(schema).
			WithArgs(nil).
			WithFileDiscovery(opts)
		require.Equal(t, filepath.Join(dir, "app.yaml"), b.DiscoveredFile())

		p, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, "FileSource", p.Source().Name())
		assert.Equal(t, Tree{"a": int64(1)}, p.Args())
	})

	t.Run("InputDataOverridesDiscovery", func(t *testing.T) {
		schema := MustSchema("S", "", Leaf("a", KindInt, Required()))
		p, err := NewBuilder().
			WithSchema(schema).
			WithArgs(nil).
			WithFileDiscovery(opts).
			WithInputData(Tree{"input_file": filepath.Join(later, "app.json")}).
			Build()
		require.NoError(t, err)
		a, _ := p.Int64("a")
		assert.Equal(t, int64(2), a)
	})
}

func TestXDGConfigPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-home")
	t.Setenv("XDG_CONFIG_DIRS", "/etc/a"+string(os.PathListSeparator)+"/etc/b")

	assert.Equal(t, []string{
		filepath.Join("/tmp/xdg-home", "app"),
		filepath.Join("/etc/a", "app"),
		filepath.Join("/etc/b", "app"),
	}, getXDGConfigPaths("app"))
}
