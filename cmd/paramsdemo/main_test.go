// FILE: lixenwraith/params/cmd/paramsdemo/main_test.go
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("PrintDocAlone", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"--print_doc", "true"}, &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())
		assert.Contains(t, stdout.String(), "## RenderDemo")
		assert.Contains(t, stdout.String(), "## Render")
	})

	t.Run("HostMissing", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(nil, &stdout, &stderr)
		assert.Equal(t, 2, code)
		assert.Contains(t, stderr.String(), "render.host is required")
	})

	t.Run("Summary", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"--render.host", "example.org", "--stacks", "['a', 'b']"}, &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())
		assert.Equal(t, "endpoint=http://example.org:80 stacks=2 mode=dry\n", stdout.String())
	})

	t.Run("OutputThroughSink", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		var stdout, stderr bytes.Buffer
		code := run([]string{"--render.host", "h", "--render.port", "8080", "--output_json", path}, &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "http://h:8080", got["endpoint"])
		assert.Equal(t, 0.0, got["stack_count"])
	})

	t.Run("Help", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 0, run([]string{"--help"}, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "--render.host")
	})

	t.Run("UnknownFlag", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 2, run([]string{"--nope"}, &stdout, &stderr))
	})
}
