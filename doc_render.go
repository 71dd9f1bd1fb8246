// FILE: lixenwraith/params/doc_render.go
package params

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var jsonTypes = map[Kind]string{
	KindString:   "str",
	KindInt:      "int",
	KindFloat:    "float",
	KindBool:     "bool",
	KindList:     "list",
	KindDict:     "dict",
	KindLogLevel: "str",
	KindAny:      "?",
}

// RenderMarkdown documents schema as Markdown: one table per schema, listing
// each field's key, description, default and type. Nested schemas get their
// own table, each rendered once even when referenced repeatedly or
// recursively.
func RenderMarkdown(schema *Schema) string {
	var b strings.Builder
	rendered := make(map[*Schema]bool)
	queue := []*Schema{schema}

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if s == nil || rendered[s] {
			continue
		}
		rendered[s] = true

		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", s.Name)
		if s.Doc != "" {
			b.WriteString(s.Doc + "\n\n")
		}
		if s.Len() == 0 {
			b.WriteString("No parameters.\n")
			continue
		}

		b.WriteString("| key | description | default | field_type | json_type |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, f := range s.fields {
			fieldType, jsonType := describeType(f)
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				f.Name, escapeCell(descriptionOf(f)), escapeCell(defaultOf(f)), fieldType, jsonType)
			if f.Type == FieldNested {
				queue = append(queue, f.Schema)
			}
		}
	}
	return b.String()
}

// RenderHTML renders RenderMarkdown(schema) to HTML.
func RenderHTML(schema *Schema) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(RenderMarkdown(schema)), &buf); err != nil {
		return "", fmt.Errorf("render schema documentation: %w", err)
	}
	return buf.String(), nil
}

func descriptionOf(f *Field) string {
	if f.Description == "" {
		return "no description"
	}
	return f.Description
}

func defaultOf(f *Field) string {
	switch {
	case f.Type == FieldLeaf && f.HasDefault:
		return fmt.Sprintf("%v", f.Default)
	case f.Required:
		return "(REQUIRED)"
	default:
		return "NA"
	}
}

func describeType(f *Field) (string, string) {
	if f.Type == FieldNested {
		if f.Many {
			return f.Schema.Name, "list"
		}
		return f.Schema.Name, "dict"
	}
	if f.Kind == KindList {
		return fmt.Sprintf("%s[%s]", f.Kind, f.Elem), jsonTypes[KindList]
	}
	return f.Kind.String(), jsonTypes[f.Kind]
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
