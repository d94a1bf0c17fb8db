// Package am holds shapegen's configuration ("am" as in "I am configured
// like this"). Values come from built-in defaults, then TOML files merged
// system -> user -> project, then SHAPEGEN_* environment variables.
package am

// Config represents the complete shapegen configuration
type Config struct {
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" json:"generate" yaml:"generate"`
	Log      LogConfig      `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// GenerateConfig configures a generation run
type GenerateConfig struct {
	Schema        string `mapstructure:"schema" toml:"schema" json:"schema" yaml:"schema"`                                 // Service model document (JSON or YAML)
	OutputDir     string `mapstructure:"output_dir" toml:"output_dir" json:"output_dir" yaml:"output_dir"`                 // Created if absent
	Lang          string `mapstructure:"lang" toml:"lang" json:"lang" yaml:"lang"`                                         // python, markdown, rust, or all
	FileName      string `mapstructure:"file_name" toml:"file_name" json:"file_name" yaml:"file_name"`                     // Output file name without extension
	Indent        int    `mapstructure:"indent" toml:"indent" json:"indent" yaml:"indent"`                                 // Class body indentation unit
	TemplatesFile string `mapstructure:"templates_file" toml:"templates_file" json:"templates_file" yaml:"templates_file"` // Optional TOML template overrides
	LicenseFile   string `mapstructure:"license_file" toml:"license_file" json:"license_file" yaml:"license_file"`         // Optional license text for the file header
	AllowCycles   bool   `mapstructure:"allow_cycles" toml:"allow_cycles" json:"allow_cycles" yaml:"allow_cycles"`         // Emit cyclic shapes in traversal order instead of failing
}

// LogConfig configures logging
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"` // Structured JSON logs on stderr
}

// Supported generate.lang values
const (
	LangPython   = "python"
	LangMarkdown = "markdown"
	LangRust     = "rust"
	LangAll      = "all"
)

// Languages returns the backends a lang setting selects, in output order.
func Languages(lang string) []string {
	switch lang {
	case LangAll:
		return []string{LangPython, LangMarkdown, LangRust}
	default:
		return []string{lang}
	}
}
