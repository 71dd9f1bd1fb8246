// FILE: lixenwraith/params/providers_test.go
package params_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/params"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// resolveOne selects the single configured source for candidate and reads it.
func resolveOne(t *testing.T, factory params.SourceFactory, candidate params.Tree) params.Tree {
	t.Helper()
	src, tree, err := params.ResolveSource(context.Background(), []params.Source{factory()}, candidate)
	require.NoError(t, err)
	require.NotNil(t, src)
	return tree
}

func TestFileSources(t *testing.T) {
	want := params.Tree{
		"a":    int64(5),
		"nest": map[string]any{"one": int64(7), "two": false},
		"ids":  []any{int64(1), int64(2)},
		"r":    1.5,
	}

	tests := []struct {
		name    string
		factory params.SourceFactory
		key     string
		file    string
		content string
	}{
		{
			name: "JSON", factory: params.NewJSONSource, key: "input_json", file: "in.json",
			content: `{"a": 5, "nest": {"one": 7, "two": false}, "ids": [1, 2], "r": 1.5}`,
		},
		{
			name: "YAML", factory: params.NewYAMLSource, key: "input_yaml", file: "in.yaml",
			content: "a: 5\nnest:\n  one: 7\n  two: false\nids: [1, 2]\nr: 1.5\n",
		},
		{
			name: "TOML", factory: params.NewTOMLSource, key: "input_toml", file: "in.toml",
			content: "a = 5\nids = [1, 2]\nr = 1.5\n\n[nest]\none = 7\ntwo = false\n",
		},
		{
			name: "HCL", factory: params.NewHCLSource, key: "input_hcl", file: "in.hcl",
			content: "a = 5\nnest = {\n  one = 7\n  two = false\n}\nids = [1, 2]\nr = 1.5\n",
		},
		{
			name: "FileByExtension", factory: params.NewFileSource, key: "input_file", file: "in.yml",
			content: "a: 5\nnest: {one: 7, two: false}\nids: [1, 2]\nr: 1.5\n",
		},
		{
			name: "FileByContent", factory: params.NewFileSource, key: "input_file", file: "params.conf",
			content: `{"a": 5, "nest": {"one": 7, "two": false}, "ids": [1, 2], "r": 1.5}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			tree := resolveOne(t, tt.factory, params.Tree{tt.key: path})
			assert.Equal(t, want, tree)
		})
	}

	t.Run("MissingFileMisconfigured", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "absent.json")
		_, _, err := params.ResolveSource(context.Background(),
			[]params.Source{params.NewJSONSource()}, params.Tree{"input_json": missing})

		var mis *params.MisconfiguredError
		require.True(t, errors.As(err, &mis))
		assert.Equal(t, "JSONSource", mis.Provider)
	})

	t.Run("MalformedFile", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{"a": `)
		_, _, err := params.ResolveSource(context.Background(),
			[]params.Source{params.NewJSONSource()}, params.Tree{"input_json": path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JSONSource source")
	})
}

func TestFileSinks(t *testing.T) {
	ctx := context.Background()
	tree := params.Tree{"total": int64(3), "nest": map[string]any{"ok": true}}

	t.Run("JSONIndent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "result.json")
		sink, err := params.ConfigureSink(params.NewJSONSink(),
			params.Tree{"output_json": path, "output_json_indent": int64(4)})
		require.NoError(t, err)
		require.NoError(t, sink.Put(ctx, tree))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n    \"nest\"")

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, map[string]any{"total": 3.0, "nest": map[string]any{"ok": true}}, got)
	})

	t.Run("JSONFactoryIndent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "result.json")
		sink, err := params.ResolveSink([]params.Sink{params.JSONSinkFactory(2)()}, params.Tree{"output_json": path})
		require.NoError(t, err)
		require.NotNil(t, sink)
		require.NoError(t, sink.Put(ctx, tree))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  \"nest\"")
	})

	t.Run("JSONIndentOutOfRange", func(t *testing.T) {
		_, err := params.ConfigureSink(params.NewJSONSink(),
			params.Tree{"output_json": "x.json", "output_json_indent": int64(40)})
		var mis *params.MisconfiguredError
		require.True(t, errors.As(err, &mis))
		assert.Contains(t, err.Error(), "output_json_indent")
	})

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "result.yaml")
		sink, err := params.ConfigureSink(params.NewYAMLSink(), params.Tree{"output_yaml": path})
		require.NoError(t, err)
		require.NoError(t, sink.Put(ctx, tree))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, map[string]any{"total": 3, "nest": map[string]any{"ok": true}}, got)
	})

	t.Run("TOMLDropsNull", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "result.toml")
		sink, err := params.ConfigureSink(params.NewTOMLSink(), params.Tree{"output_toml": path})
		require.NoError(t, err)
		require.NoError(t, sink.Put(ctx, params.Tree{"total": int64(3), "none": nil}))

		var got map[string]any
		_, err = toml.DecodeFile(path, &got)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"total": int64(3)}, got)
	})

	t.Run("FileByExtension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "result.yml")
		sink, err := params.ConfigureSink(params.NewFileSink(), params.Tree{"output_file": path})
		require.NoError(t, err)
		require.NoError(t, sink.Put(ctx, tree))

		back := resolveOne(t, params.NewFileSource, params.Tree{"input_file": path})
		assert.Equal(t, tree, back)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		sink, err := params.ConfigureSink(params.NewYAMLSink(), params.Tree{"output_yaml": filepath.Join(t.TempDir(), "x.yaml")})
		require.NoError(t, err)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, sink.Put(cctx, tree), context.Canceled)
	})
}

func TestURLSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/params":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"a": 5, "nest": {"one": 7}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	factory := params.URLSourceFactory(server.Client())
	candidate := func(path string) params.Tree {
		return params.Tree{
			"input_host": u.Hostname(),
			"input_port": int64(port),
			"input_url":  path,
		}
	}

	t.Run("Get", func(t *testing.T) {
		src, tree, err := params.ResolveSource(context.Background(), []params.Source{factory()}, candidate("/params"))
		require.NoError(t, err)
		assert.Equal(t, params.Tree{"a": int64(5), "nest": map[string]any{"one": int64(7)}}, tree)

		us, ok := src.(*params.URLSource)
		require.True(t, ok)
		assert.Equal(t, "http", us.Config.Protocol)
		assert.Equal(t, server.URL+"/params", us.Endpoint())
	})

	t.Run("NotFound", func(t *testing.T) {
		_, _, err := params.ResolveSource(context.Background(), []params.Source{factory()}, candidate("/missing"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("PartialConfig", func(t *testing.T) {
		_, _, err := params.ResolveSource(context.Background(), []params.Source{factory()},
			params.Tree{"input_host": "localhost"})
		var mis *params.MisconfiguredError
		require.True(t, errors.As(err, &mis))
		assert.Equal(t, "URLSource", mis.Provider)
	})

	t.Run("BadProtocol", func(t *testing.T) {
		c := candidate("/params")
		c["input_protocol"] = "ftp"
		_, _, err := params.ResolveSource(context.Background(), []params.Source{factory()}, c)
		var mis *params.MisconfiguredError
		assert.True(t, errors.As(err, &mis))
	})
}
