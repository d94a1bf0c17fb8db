package am

import (
	"github.com/spf13/viper"
)

// Default values
const (
	DefaultSchema    = "sample/sagemaker/2017-07-24/service-2.json"
	DefaultOutputDir = "src/generated"
	DefaultLang      = LangPython
	DefaultFileName  = "shapes"
	DefaultIndent    = 4

	// EnvPrefix prefixes every environment override, e.g. SHAPEGEN_GENERATE_LANG
	EnvPrefix = "SHAPEGEN"

	// ProjectConfigName is searched for from the working directory upwards
	ProjectConfigName = "shapegen.toml"

	// DefaultDirPermissions for the user config directory
	DefaultDirPermissions = 0755
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Generation defaults
	v.SetDefault("generate.schema", DefaultSchema)
	v.SetDefault("generate.output_dir", DefaultOutputDir)
	v.SetDefault("generate.lang", DefaultLang)
	v.SetDefault("generate.file_name", DefaultFileName)
	v.SetDefault("generate.indent", DefaultIndent)
	v.SetDefault("generate.templates_file", "") // Built-in templates
	v.SetDefault("generate.license_file", "")   // No license header
	v.SetDefault("generate.allow_cycles", false)

	// Logging defaults
	v.SetDefault("log.json", false)
}
