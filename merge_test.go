// FILE: lixenwraith/params/merge_test.go
package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartMerge(t *testing.T) {
	tests := []struct {
		name    string
		base    Tree
		overlay Tree
		opts    []MergeOption
		want    Tree
	}{
		{
			name:    "OverlayWinsOnConflict",
			base:    Tree{"a": int64(1), "b": "x"},
			overlay: Tree{"a": int64(2)},
			want:    Tree{"a": int64(2), "b": "x"},
		},
		{
			name:    "NestedMerge",
			base:    Tree{"nest": map[string]any{"one": int64(7), "two": false}},
			overlay: Tree{"nest": map[string]any{"two": true}},
			want:    Tree{"nest": map[string]any{"one": int64(7), "two": true}},
		},
		{
			name:    "NewNestedKey",
			base:    Tree{"a": int64(1)},
			overlay: Tree{"nest": map[string]any{"one": int64(1), "skip": nil}},
			want:    Tree{"a": int64(1), "nest": map[string]any{"one": int64(1)}},
		},
		{
			name:    "MergeKeyAddsLists",
			base:    Tree{"ids": []any{int64(1)}},
			overlay: Tree{"ids": []any{int64(2), int64(3)}},
			opts:    []MergeOption{WithMergeKeys("ids")},
			want:    Tree{"ids": []any{int64(1), int64(2), int64(3)}},
		},
		{
			name:    "MergeKeyByDottedPath",
			base:    Tree{"nest": map[string]any{"n": int64(2)}},
			overlay: Tree{"nest": map[string]any{"n": int64(3)}},
			opts:    []MergeOption{WithMergeKeys("nest.n")},
			want:    Tree{"nest": map[string]any{"n": int64(5)}},
		},
		{
			name:    "MergeKeyConcatenatesStrings",
			base:    Tree{"s": "ab"},
			overlay: Tree{"s": "cd"},
			opts:    []MergeOption{WithMergeKeys("s")},
			want:    Tree{"s": "abcd"},
		},
		{
			name:    "EqualValuesUnchanged",
			base:    Tree{"ids": []any{int64(1)}},
			overlay: Tree{"ids": []any{int64(1)}},
			opts:    []MergeOption{WithMergeKeys("ids")},
			want:    Tree{"ids": []any{int64(1)}},
		},
		{
			name:    "CustomMergeFunc",
			base:    Tree{"n": int64(2)},
			overlay: Tree{"n": int64(3)},
			opts: []MergeOption{WithMergeKeys("n"), WithMergeFunc(func(a, b any) (any, error) {
				return a.(int64) * b.(int64), nil
			})},
			want: Tree{"n": int64(6)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SmartMerge(tt.base, tt.overlay, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The four absent/null combinations, with and without overwriting nulls.
func TestSmartMergeNullAndAbsent(t *testing.T) {
	tests := []struct {
		name      string
		base      Tree
		overlay   Tree
		overwrite bool
		want      Tree
	}{
		{"AbsentInBase", Tree{}, Tree{"k": int64(1)}, false, Tree{"k": int64(1)}},
		{"AbsentInOverlay", Tree{"k": int64(1)}, Tree{}, false, Tree{"k": int64(1)}},
		{"NullInBase", Tree{"k": nil}, Tree{"k": int64(1)}, false, Tree{"k": int64(1)}},
		{"NullInOverlay", Tree{"k": int64(1)}, Tree{"k": nil}, false, Tree{"k": int64(1)}},
		{"NullInOverlayAbsentInBase", Tree{}, Tree{"k": nil}, false, Tree{}},
		{"NullInOverlayOverwrite", Tree{"k": int64(1)}, Tree{"k": nil}, true, Tree{"k": nil}},
		{"NullAbsentInBaseOverwrite", Tree{}, Tree{"k": nil}, true, Tree{"k": nil}},
		{"NestedNullOverwrite", Tree{}, Tree{"n": map[string]any{"k": nil}}, true, Tree{"n": map[string]any{"k": nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []MergeOption
			if tt.overwrite {
				opts = append(opts, WithOverwriteNil())
			}
			got, err := SmartMerge(tt.base, tt.overlay, opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSmartMergeProperties(t *testing.T) {
	t.Run("Identity", func(t *testing.T) {
		a := Tree{"a": int64(1), "n": map[string]any{"b": "x"}}
		got, err := SmartMerge(DeepCopy(a), Tree{})
		require.NoError(t, err)
		assert.Equal(t, a, got)

		got, err = SmartMerge(Tree{}, DeepCopy(a))
		require.NoError(t, err)
		assert.Equal(t, a, got)
	})

	t.Run("NilBase", func(t *testing.T) {
		got, err := SmartMerge(nil, Tree{"a": int64(1)})
		require.NoError(t, err)
		assert.Equal(t, Tree{"a": int64(1)}, got)
	})

	t.Run("OverlayNotMutatedOrShared", func(t *testing.T) {
		overlay := Tree{"n": map[string]any{"l": []any{int64(1)}}}
		got, err := SmartMerge(Tree{}, overlay)
		require.NoError(t, err)

		got["n"].(map[string]any)["l"].([]any)[0] = int64(99)
		got["n"].(map[string]any)["extra"] = true
		assert.Equal(t, Tree{"n": map[string]any{"l": []any{int64(1)}}}, overlay)
	})

	t.Run("OrderDependent", func(t *testing.T) {
		a := func() Tree { return Tree{"k": []any{int64(1)}} }
		b := func() Tree { return Tree{"k": []any{int64(2)}} }
		c := func() Tree { return Tree{"k": []any{int64(2)}} }
		opt := WithMergeKeys("k")

		ab, err := SmartMerge(a(), b(), opt)
		require.NoError(t, err)
		left, err := SmartMerge(ab, c(), opt)
		require.NoError(t, err)

		bc, err := SmartMerge(b(), c(), opt)
		require.NoError(t, err)
		right, err := SmartMerge(a(), bc, opt)
		require.NoError(t, err)

		assert.Equal(t, Tree{"k": []any{int64(1), int64(2), int64(2)}}, left)
		assert.Equal(t, Tree{"k": []any{int64(1), int64(2)}}, right)
	})
}

func TestSmartMergeConflict(t *testing.T) {
	_, err := SmartMerge(
		Tree{"n": map[string]any{"ids": []any{int64(1)}}},
		Tree{"n": map[string]any{"ids": "two"}},
		WithMergeKeys("ids"),
	)
	require.Error(t, err)

	var conflict *MergeConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "n.ids", conflict.Key)
	assert.Equal(t, []any{int64(1)}, conflict.Left)
	assert.Equal(t, "two", conflict.Right)
	assert.Contains(t, err.Error(), "[]interface {}")
	assert.Contains(t, err.Error(), "string")
}

func TestAddValues(t *testing.T) {
	tests := []struct {
		name    string
		a, b    any
		want    any
		wantErr bool
	}{
		{"Ints", int64(2), 3, int64(5), false},
		{"IntFloat", int64(2), 0.5, 2.5, false},
		{"Strings", "a", "b", "ab", false},
		{"TypedSlices", []string{"a"}, []any{"b"}, []any{"a", "b"}, false},
		{"StringInt", "a", int64(1), nil, true},
		{"IntString", int64(1), "a", nil, true},
		{"Maps", map[string]any{}, map[string]any{}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddValues(tt.a, tt.b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
