// FILE: lixenwraith/params/cast_test.go
package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastArgument(t *testing.T) {
	tests := []struct {
		name    string
		arg     Argument
		tokens  []string
		want    any
		wantErr bool
	}{
		{"Int", Argument{Kind: KindInt}, []string{"42"}, int64(42), false},
		{"HexInt", Argument{Kind: KindInt}, []string{"0x10"}, int64(16), false},
		{"NegativeInt", Argument{Kind: KindInt}, []string{"-3"}, int64(-3), false},
		{"BadInt", Argument{Kind: KindInt}, []string{"4.2"}, nil, true},
		{"Float", Argument{Kind: KindFloat}, []string{"1.5"}, 1.5, false},
		{"BoolTitle", Argument{Kind: KindBool}, []string{"True"}, true, false},
		{"BoolBad", Argument{Kind: KindBool}, []string{"yes"}, nil, true},
		{"String", Argument{Kind: KindString}, []string{" spaced "}, " spaced ", false},
		{"LastTokenWins", Argument{Kind: KindInt}, []string{"1", "2"}, int64(2), false},
		{"Dict", Argument{Kind: KindDict}, []string{"{}"}, nil, true},
		{
			"MultiToken",
			Argument{Kind: KindList, Elem: KindInt, NArgs: NArgsVariable},
			[]string{"1", "2", "3"},
			[]any{int64(1), int64(2), int64(3)}, false,
		},
		{
			"MultiTokenEmpty",
			Argument{Kind: KindList, Elem: KindInt, NArgs: NArgsVariable},
			nil,
			[]any{}, false,
		},
		{
			"MultiTokenBadElement",
			Argument{Kind: KindList, Elem: KindInt, NArgs: NArgsVariable},
			[]string{"1", "x"},
			nil, true,
		},
		{
			"SingleLiteral",
			Argument{Kind: KindList, Elem: KindInt},
			[]string{"[1, 2, 3]"},
			[]any{int64(1), int64(2), int64(3)}, false,
		},
		{
			"SingleQuotedStrings",
			Argument{Kind: KindList, Elem: KindString},
			[]string{"['a', 'b']"},
			[]any{"a", "b"}, false,
		},
		{
			"SingleNotASequence",
			Argument{Kind: KindList, Elem: KindAny},
			[]string{"{a: 1}"},
			nil, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := castArgument(tt.arg, tt.tokens)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		elem    Kind
		value   any
		want    any
		wantErr string
	}{
		{"IntFromInt", KindInt, KindAny, 5, int64(5), ""},
		{"IntFromWholeFloat", KindInt, KindAny, 5.0, int64(5), ""},
		{"IntFromFraction", KindInt, KindAny, 5.5, nil, "Not a valid integer."},
		{"IntFromString", KindInt, KindAny, "12", int64(12), ""},
		{"IntFromBool", KindInt, KindAny, true, nil, "Not a valid integer."},
		{"FloatFromInt", KindFloat, KindAny, int64(2), 2.0, ""},
		{"FloatFromString", KindFloat, KindAny, "x", nil, "Not a valid number."},
		{"BoolFromString", KindBool, KindAny, "false", false, ""},
		{"BoolFromOne", KindBool, KindAny, int64(1), true, ""},
		{"BoolFromTwo", KindBool, KindAny, int64(2), nil, "Not a valid boolean."},
		{"StringFromInt", KindString, KindAny, 1, nil, "Not a valid string."},
		{"ListElems", KindList, KindFloat, []any{1, "2.5"}, []any{1.0, 2.5}, ""},
		{"ListFromScalar", KindList, KindAny, "a", nil, "Not a valid list."},
		{"Dict", KindDict, KindAny, map[string]any{"a": 1}, map[string]any{"a": 1}, ""},
		{"DictFromList", KindDict, KindAny, []any{}, nil, "Not a valid mapping type."},
		{"LogLevelLower", KindLogLevel, KindAny, "debug", "DEBUG", ""},
		{"LogLevelAlias", KindLogLevel, KindAny, "warn", "WARNING", ""},
		{"LogLevelUnknown", KindLogLevel, KindAny, "LOUD", nil, "LOUD is not a valid loglevel"},
		{"Any", KindAny, KindAny, []any{1}, []any{1}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerce(tt.kind, tt.elem, tt.value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	for name, want := range map[string]string{
		"debug":    "DEBUG",
		"Info":     "INFO",
		"WARN":     "WARNING",
		"critical": "CRITICAL",
		"fatal":    "CRITICAL",
	} {
		lvl, err := ParseLogLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, levelName(lvl), name)
	}

	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}
