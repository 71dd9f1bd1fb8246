// FILE: lixenwraith/params/json.go
package params

var jsonSourceSchema = MustSchema("JSONSource", "read parameters from a JSON file",
	Leaf("input_json", KindString, Required(), Describe("filepath to input_json")),
)

var jsonSinkSchema = MustSchema("JSONSink", "write output to a JSON file",
	Leaf("output_json", KindString, Required(), Describe("filepath to save output_json")),
	Leaf("output_json_indent", KindInt, Describe("number of spaces to indent output_json by, compact when 0")),
)

// JSONSourceConfig configures a JSONSource.
type JSONSourceConfig struct {
	InputJSON string `params:"input_json" validate:"required,file"`
}

// JSONSource reads parameters from the file named by input_json.
type JSONSource struct {
	fileSource
	Config JSONSourceConfig
}

// NewJSONSource creates an unconfigured JSONSource.
func NewJSONSource() Source {
	return &JSONSource{fileSource: fileSource{name: "JSONSource", format: FormatJSON, schema: jsonSourceSchema}}
}

func (s *JSONSource) Configure(cfg Tree) error {
	if err := ConfigureStruct(cfg, &s.Config, nil); err != nil {
		return err
	}
	s.path = s.Config.InputJSON
	return nil
}

// JSONSinkConfig configures a JSONSink.
type JSONSinkConfig struct {
	OutputJSON string `params:"output_json" validate:"required"`
	Indent     int    `params:"output_json_indent" validate:"min=0,max=16"`
}

// JSONSink writes output to the file named by output_json.
type JSONSink struct {
	fileSink
	Config JSONSinkConfig
	base   JSONSinkConfig
}

// NewJSONSink creates an unconfigured JSONSink writing compact JSON unless
// output_json_indent is set.
func NewJSONSink() Sink {
	return newJSONSink(JSONSinkConfig{})
}

// JSONSinkFactory returns a factory for JSON sinks that indent by indent
// spaces when output_json_indent is not given.
func JSONSinkFactory(indent int) SinkFactory {
	return func() Sink {
		return newJSONSink(JSONSinkConfig{Indent: indent})
	}
}

func newJSONSink(base JSONSinkConfig) *JSONSink {
	return &JSONSink{
		fileSink: fileSink{name: "JSONSink", format: FormatJSON, schema: jsonSinkSchema},
		base:     base,
	}
}

func (s *JSONSink) Configure(cfg Tree) error {
	if err := ConfigureStruct(cfg, &s.Config, s.base); err != nil {
		return err
	}
	s.path = s.Config.OutputJSON
	s.indent = s.Config.Indent
	return nil
}
