// FILE: lixenwraith/params/discovery.go
package params

import (
	"os"
	"path/filepath"
)

// FileDiscoveryOptions configures automatic parameter file discovery
type FileDiscoveryOptions struct {
	// Base name of the parameter file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (searched before the defaults)
	Paths []string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".json", ".yaml", ".yml", ".toml", ".hcl"},
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// WithFileDiscovery searches for a parameter file and, when one is found,
// registers a FileSource and names the file as input_file in the input data.
// The file then replaces the input data as the base, unless the input data
// already sets input_file. A source selected on the command line still wins.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	path := discoverFile(opts)
	if path == "" {
		// No file found is not an error
		return b
	}
	b.discovered = path
	b.sources = append(b.sources, NewFileSource)
	return b
}

// DiscoveredFile returns the path found by WithFileDiscovery, if any.
func (b *Builder) DiscoveredFile() string {
	return b.discovered
}

func discoverFile(opts FileDiscoveryOptions) string {
	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}
	if opts.UseXDG {
		searchPaths = append(searchPaths, getXDGConfigPaths(opts.Name)...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}
	return paths
}
