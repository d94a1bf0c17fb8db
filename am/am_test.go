package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at a fresh temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	chdir(t, dir)
	Reset()
	t.Cleanup(Reset)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, DefaultSchema, cfg.Generate.Schema)
	assert.Equal(t, DefaultOutputDir, cfg.Generate.OutputDir)
	assert.Equal(t, LangPython, cfg.Generate.Lang)
	assert.Equal(t, "shapes", cfg.Generate.FileName)
	assert.Equal(t, 4, cfg.Generate.Indent)
	assert.False(t, cfg.Generate.AllowCycles)
	assert.False(t, cfg.Log.JSON)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ProjectConfigFoundUpwards(t *testing.T) {
	root := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectConfigName), []byte(`
[generate]
lang = "markdown"
indent = 2
`), 0644))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	chdir(t, nested)

	assert.Equal(t, filepath.Join(root, ProjectConfigName), FindProjectConfig())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, LangMarkdown, cfg.Generate.Lang)
	assert.Equal(t, 2, cfg.Generate.Indent)
	assert.Equal(t, DefaultOutputDir, cfg.Generate.OutputDir, "partial tables keep sibling defaults")

	assert.Equal(t, SourceProject, ConfigSources["generate.lang"].Source)
}

func TestLoad_Precedence(t *testing.T) {
	root := isolate(t)

	userDir := filepath.Join(root, ".shapegen")
	require.NoError(t, os.MkdirAll(userDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.toml"), []byte(`
[generate]
output_dir = "user-out"
lang = "markdown"
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectConfigName), []byte(`
[generate]
lang = "all"

[log]
json = false
`), 0644))
	t.Setenv("SHAPEGEN_GENERATE_FILE_NAME", "models")
	t.Setenv("SHAPEGEN_LOG_JSON", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "user-out", cfg.Generate.OutputDir, "user file")
	assert.Equal(t, LangAll, cfg.Generate.Lang, "project beats user")
	assert.Equal(t, "models", cfg.Generate.FileName, "environment beats defaults")
	assert.True(t, cfg.Log.JSON, "environment beats files")

	byKey := map[string]SettingInfo{}
	for _, s := range GetConfigIntrospection().Settings {
		byKey[s.Key] = s
	}
	assert.Equal(t, SourceUser, byKey["generate.output_dir"].Source)
	assert.Equal(t, SourceProject, byKey["generate.lang"].Source)
	assert.Equal(t, SourceEnvironment, byKey["generate.file_name"].Source)
	assert.Equal(t, "SHAPEGEN_GENERATE_FILE_NAME", byKey["generate.file_name"].SourcePath)
	assert.Equal(t, SourceDefault, byKey["generate.indent"].Source)
}

func TestLoad_Cached(t *testing.T) {
	isolate(t)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)

	Reset()
	third, err := Load()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[generate]
schema = "models/service.yaml"
allow_cycles = true

[log]
json = true
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "models/service.yaml", cfg.Generate.Schema)
	assert.True(t, cfg.Generate.AllowCycles)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, DefaultIndent, cfg.Generate.Indent)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Generate: GenerateConfig{
			Schema:    "s.json",
			OutputDir: "out",
			Lang:      LangPython,
			FileName:  "shapes",
			Indent:    4,
		}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"all languages", func(c *Config) { c.Generate.Lang = LangAll }, ""},
		{"empty schema", func(c *Config) { c.Generate.Schema = " " }, "generate.schema"},
		{"empty output", func(c *Config) { c.Generate.OutputDir = "" }, "generate.output_dir"},
		{"unknown lang", func(c *Config) { c.Generate.Lang = "rust" }, `"rust"`},
		{"empty file name", func(c *Config) { c.Generate.FileName = "" }, "generate.file_name"},
		{"file name with dir", func(c *Config) { c.Generate.FileName = "a/shapes" }, "directory"},
		{"file name with extension", func(c *Config) { c.Generate.FileName = "shapes.py" }, "extension"},
		{"zero indent", func(c *Config) { c.Generate.Indent = 0 }, "generate.indent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"python", "markdown", "rust"}, Languages(LangAll))
	assert.Equal(t, []string{"markdown"}, Languages(LangMarkdown))
}

func TestEnvVarName(t *testing.T) {
	assert.Equal(t, "SHAPEGEN_GENERATE_ALLOW_CYCLES", EnvVarName("generate.allow_cycles"))
}

func TestWriteProjectConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Generate: GenerateConfig{
		Schema: "s.json", OutputDir: "out", Lang: LangMarkdown, FileName: "shapes", Indent: 2,
	}}

	path, err := WriteProjectConfig(dir, cfg, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ProjectConfigName), path)

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Generate, loaded.Generate)

	_, err = WriteProjectConfig(dir, cfg, false)
	require.Error(t, err, "existing file without overwrite")

	cfg.Generate.Indent = 8
	_, err = WriteProjectConfig(dir, cfg, true)
	require.NoError(t, err)
	assert.FileExists(t, path+".back1")

	var onDisk Config
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, toml.Unmarshal(data, &onDisk))
	assert.Equal(t, 8, onDisk.Generate.Indent)
}

func TestCreateBackup_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigName)

	for _, content := range []string{"one", "two", "three", "four"} {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		require.NoError(t, createBackup(path))
	}

	read := func(p string) string {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		return string(data)
	}
	assert.Equal(t, "four", read(path+".back1"))
	assert.Equal(t, "three", read(path+".back2"))
	assert.Equal(t, "two", read(path+".back3"))
}
