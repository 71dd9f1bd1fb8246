// FILE: lixenwraith/params/origin.go
package params

// Origin identifies the layer that supplied a resolved value.
type Origin int

const (
	// OriginNone means the path holds no resolved value
	OriginNone Origin = iota
	OriginDefault
	OriginInputData
	OriginSource
	OriginCLI
)

func (o Origin) String() string {
	switch o {
	case OriginDefault:
		return "default"
	case OriginInputData:
		return "input_data"
	case OriginSource:
		return "source"
	case OriginCLI:
		return "cli"
	default:
		return "none"
	}
}

// originLayer is one input tree of a resolution, highest precedence first.
type originLayer struct {
	origin Origin
	tree   Tree
}

// computeOrigins attributes every leaf of final to the first layer holding
// that path. Leaves found in no layer were filled from schema defaults.
func computeOrigins(final Tree, layers ...originLayer) map[string]Origin {
	flatLayers := make([]map[string]any, len(layers))
	for i, l := range layers {
		flatLayers[i] = Flatten(l.tree)
	}

	origins := make(map[string]Origin)
	for path := range Flatten(final) {
		origins[path] = OriginDefault
		for i, l := range layers {
			if _, ok := flatLayers[i][path]; ok {
				origins[path] = l.origin
				break
			}
		}
	}
	return origins
}

// Origin reports which layer supplied the value at path.
func (p *Parser) Origin(path string) Origin {
	return p.origins[path]
}
