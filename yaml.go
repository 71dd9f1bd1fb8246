// FILE: lixenwraith/params/yaml.go
package params

var yamlSourceSchema = MustSchema("YAMLSource", "read parameters from a YAML file",
	Leaf("input_yaml", KindString, Required(), Describe("filepath to input yaml")),
)

var yamlSinkSchema = MustSchema("YAMLSink", "write output to a YAML file",
	Leaf("output_yaml", KindString, Required(), Describe("filepath to save output yaml")),
)

// YAMLSourceConfig configures a YAMLSource.
type YAMLSourceConfig struct {
	InputYAML string `params:"input_yaml" validate:"required,file"`
}

// YAMLSource reads parameters from the file named by input_yaml.
type YAMLSource struct {
	fileSource
	Config YAMLSourceConfig
}

// NewYAMLSource creates an unconfigured YAMLSource.
func NewYAMLSource() Source {
	return &YAMLSource{fileSource: fileSource{name: "YAMLSource", format: FormatYAML, schema: yamlSourceSchema}}
}

func (s *YAMLSource) Configure(cfg Tree) error {
	if err := ConfigureStruct(cfg, &s.Config, nil); err != nil {
		return err
	}
	s.path = s.Config.InputYAML
	return nil
}

// YAMLSinkConfig configures a YAMLSink.
type YAMLSinkConfig struct {
	OutputYAML string `params:"output_yaml" validate:"required"`
}

// YAMLSink writes output to the file named by output_yaml.
type YAMLSink struct {
	fileSink
	Config YAMLSinkConfig
}

// NewYAMLSink creates an unconfigured YAMLSink.
func NewYAMLSink() Sink {
	return &YAMLSink{fileSink: fileSink{name: "YAMLSink", format: FormatYAML, schema: yamlSinkSchema}}
}

func (s *YAMLSink) Configure(cfg Tree) error {
	if err := ConfigureStruct(cfg, &s.Config, nil); err != nil {
		return err
	}
	s.path = s.Config.OutputYAML
	return nil
}
