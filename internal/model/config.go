package model

// Config is the complete csvtypes configuration.
// Sources are layered: CLI flags, CSVTYPES_* env vars, config file, defaults.
type Config struct {
	Input       InputConfig       `yaml:"input" mapstructure:"input"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Types       TypesConfig       `yaml:"types" mapstructure:"types"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// InputConfig describes how the table is read
type InputConfig struct {
	Separator string `yaml:"separator" mapstructure:"separator"` // Single character
	Header    bool   `yaml:"header" mapstructure:"header"`       // First row holds column names
	Encoding  string `yaml:"encoding" mapstructure:"encoding"`   // utf-8, latin1, windows-1252, utf-16le, utf-16be
}

// ConcurrencyConfig sizes the worker fan-out
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig selects the presentation
type OutputConfig struct {
	MachineReadable bool   `yaml:"machine_readable" mapstructure:"machine_readable"`
	Format          string `yaml:"format" mapstructure:"format"`     // text, json, yaml
	Grouping        string `yaml:"grouping" mapstructure:"grouping"` // contiguous, row
}

// TypesConfig holds type definitions supplied by the config file
type TypesConfig struct {
	ReplaceDefaults bool      `yaml:"replace_defaults" mapstructure:"replace_defaults"`
	Definitions     []TypeDef `yaml:"definitions" mapstructure:"definitions"`
}

// TypeDef is an uncompiled (name, pattern) pair as written in configuration
type TypeDef struct {
	Name    string `yaml:"name" mapstructure:"name" json:"name"`
	Pattern string `yaml:"pattern" mapstructure:"pattern" json:"pattern"`
}

// LogConfig configures slog
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text, json
}

// DefaultTypes returns the built-in type definitions in registration order
func DefaultTypes() []TypeDef {
	return []TypeDef{
		{Name: "string", Pattern: `.*`},
		{Name: "float", Pattern: `[-+]?(?:(?:\d+(?:\.\d*)?)|\.\d+)`},
		{Name: "int", Pattern: `[-+]?\d+`},
	}
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Separator: ",",
			Header:    false,
			Encoding:  "utf-8",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 1,
		},
		Output: OutputConfig{
			MachineReadable: false,
			Format:          "text",
			Grouping:        GroupContiguous.String(),
		},
		Types: TypesConfig{
			ReplaceDefaults: false,
			Definitions:     []TypeDef{},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ParseGrouping maps a config name to a GroupingMode.
func ParseGrouping(name string) (GroupingMode, bool) {
	switch name {
	case "", "contiguous":
		return GroupContiguous, true
	case "row":
		return GroupByRow, true
	default:
		return GroupContiguous, false
	}
}
