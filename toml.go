// FILE: lixenwraith/params/toml.go
package params

var tomlSourceSchema = MustSchema("TOMLSource", "read parameters from a TOML file",
	Leaf("input_toml", KindString, Required(), Describe("filepath to input toml")),
)

var tomlSinkSchema = MustSchema("TOMLSink", "write output to a TOML file",
	Leaf("output_toml", KindString, Required(), Describe("filepath to save output toml; null values are dropped")),
)

// TOMLSourceConfig configures a TOMLSource.
type TOMLSourceConfig struct {
	InputTOML string `params:"input_toml" validate:"required,file"`
}

// TOMLSource reads parameters from the file named by input_toml.
type TOMLSource struct {
	fileSource
	Config TOMLSourceConfig
}

// NewTOMLSource creates an unconfigured TOMLSource.
func NewTOMLSource() Source {
	return &TOMLSource{fileSource: fileSource{name: "TOMLSource", format: FormatTOML, schema: tomlSourceSchema}}
}

func (s *TOMLSource) Configure(cfg Tree) error {
	if err := ConfigureStruct(cfg, &s.Config, nil); err != nil {
		return err
	}
	s.path = s.Config.InputTOML
	return nil
}

// TOMLSinkConfig configures a TOMLSink.
type TOMLSinkConfig struct {
	OutputTOML string `params:"output_toml" validate:"required"`
}

// TOMLSink writes output to the file named by output_toml.
type TOMLSink struct {
	fileSink
	Config TOMLSinkConfig
}

// NewTOMLSink creates an unconfigured TOMLSink.
func NewTOMLSink() Sink {
	return &TOMLSink{fileSink: fileSink{name: "TOMLSink", format: FormatTOML, schema: tomlSinkSchema}}
}

func (s *TOMLSink) Configure(cfg Tree) error {
	if err := ConfigureStruct(cfg, &s.Config, nil); err != nil {
		return err
	}
	s.path = s.Config.OutputTOML
	return nil
}
