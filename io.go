// FILE: lixenwraith/params/io.go
package params

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// File formats understood by the file providers.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatHCL  = "hcl"
)

// MaxFileSize bounds the size of files read by the file sources.
const MaxFileSize int64 = 10 << 20

// ErrFileNotFound is returned when a source file does not exist.
var ErrFileNotFound = errors.New("parameter file not found")

// readTreeFile reads and decodes a file. An empty format is detected from the
// extension, then from the content.
func readTreeFile(path, format string) (Tree, error) {
	data, err := readFileLimited(path)
	if err != nil {
		return nil, err
	}

	if format == "" {
		format = detectFileFormat(path)
		if format == "" {
			format = detectFormatFromContent(data)
		}
	}

	tree, err := decodeBytes(format, data, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s file '%s': %w", strings.ToUpper(format), path, err)
	}
	return tree, nil
}

func readFileLimited(path string) ([]byte, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file '%s': %w", path, err)
	}
	if fileInfo.Size() > MaxFileSize {
		return nil, fmt.Errorf("file '%s' exceeds maximum size %d bytes", path, MaxFileSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file '%s': %w", path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	return data, nil
}

// decodeBytes parses data in format into a normalized tree. filename is only
// used in HCL diagnostics.
func decodeBytes(format string, data []byte, filename string) (Tree, error) {
	tree := make(map[string]any)
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve integer precision
		if err := decoder.Decode(&tree); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
	case FormatHCL:
		var err error
		if tree, err = decodeHCL(data, filename); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unable to determine format")
	}
	return normalizeValue(tree).(map[string]any), nil
}

// encodeTree serializes tree in format. indent applies to JSON only; zero
// writes compact JSON.
func encodeTree(format string, tree Tree, indent int) ([]byte, error) {
	if tree == nil {
		tree = make(Tree)
	}
	switch format {
	case FormatJSON:
		if indent > 0 {
			return json.MarshalIndent(tree, "", strings.Repeat(" ", indent))
		}
		return json.Marshal(tree)
	case FormatYAML:
		return yaml.Marshal(tree)
	case FormatTOML:
		// TOML has no null
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(Unflatten(Flatten(tree))); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// normalizeValue converts decoder-specific values into the tree's canonical
// types: int64 for integers, float64 for other numbers, []any and
// map[string]any for containers.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case int:
		return int64(val)
	case uint64:
		if val <= math.MaxInt64 {
			return int64(val)
		}
		return float64(val)
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeValue(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeValue(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalizeValue(item)
		}
		return val
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	}
	return v
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml", ".tml":
		return FormatTOML
	case ".hcl":
		return FormatHCL
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// JSON first, YAML is a superset
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return FormatJSON
	}
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return FormatTOML
	}
	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML
	}
	return ""
}
