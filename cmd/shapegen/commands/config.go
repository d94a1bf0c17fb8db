package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/teranos/shapegen/am"
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/logger"
	"github.com/teranos/shapegen/schema"
	"github.com/teranos/shapegen/typegen"
	"github.com/teranos/shapegen/typegen/markdown"
	"github.com/teranos/shapegen/typegen/python"
	"github.com/teranos/shapegen/typegen/rust"
)

// generateFlags are shared by generate, generate check, generate watch and graph.
// Each overrides the matching generate.* key when set on the command line.
var generateFlags = []string{"schema", "output", "lang", "file-name", "allow-cycles"}

// LoadConfig resolves the effective configuration for cmd: the file named
// by --config (or the usual cascade), then command-line overrides, then
// validation. The cached configuration is never modified.
func LoadConfig(cmd *cobra.Command) (*am.Config, error) {
	var (
		loaded *am.Config
		err    error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err = am.LoadFromFile(path)
	} else {
		loaded, err = am.Load()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	cfg := *loaded
	if err := applyFlagOverrides(cmd, &cfg.Generate); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return &cfg, nil
}

func applyFlagOverrides(cmd *cobra.Command, g *am.GenerateConfig) error {
	flags := cmd.Flags()
	for _, name := range generateFlags {
		pf := flags.Lookup(name)
		if pf == nil || !pf.Changed {
			continue
		}
		var err error
		switch name {
		case "schema":
			g.Schema, err = flags.GetString(name)
		case "output":
			g.OutputDir, err = flags.GetString(name)
		case "lang":
			g.Lang, err = flags.GetString(name)
		case "file-name":
			g.FileName, err = flags.GetString(name)
		case "allow-cycles":
			g.AllowCycles, err = flags.GetBool(name)
		}
		if err != nil {
			return errors.Wrapf(err, "invalid --%s", name)
		}
	}
	return nil
}

// addGenerateFlags registers the override flags on cmd.
// Persistent flags are inherited by subcommands.
func addGenerateFlags(cmd *cobra.Command, persistent bool) {
	fs := cmd.Flags()
	if persistent {
		fs = cmd.PersistentFlags()
	}
	fs.StringP("schema", "s", "", "Service model document (JSON or YAML)")
	fs.StringP("output", "o", "", "Output directory (created if absent)")
	fs.StringP("lang", "l", "", "Target language: python, markdown, rust, all")
	fs.String("file-name", "", "Output file name without extension")
	fs.Bool("allow-cycles", false, "Emit cyclic shapes in traversal order instead of failing")
}

// loadModel reads the configured schema document
func loadModel(cfg *am.Config) (*schema.Model, error) {
	model, err := schema.ReadFile(cfg.Generate.Schema)
	if err != nil {
		return nil, errors.WithHint(err, "set generate.schema or pass --schema")
	}
	logger.Debugw("Schema loaded",
		logger.FieldSchema, cfg.Generate.Schema,
		logger.FieldTotalCount, model.Len())
	return model, nil
}

// buildGenerator returns the backend for lang, configured from cfg
func buildGenerator(lang string, cfg am.GenerateConfig) (typegen.Generator, error) {
	switch lang {
	case am.LangPython:
		pcfg := python.Config{Indent: cfg.Indent}
		if cfg.TemplatesFile != "" {
			tmpl, err := python.LoadTemplates(cfg.TemplatesFile)
			if err != nil {
				return nil, err
			}
			pcfg.Templates = tmpl
		}
		if cfg.LicenseFile != "" {
			data, err := os.ReadFile(cfg.LicenseFile)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read license file %s", cfg.LicenseFile)
			}
			pcfg.License = string(data)
		}
		return python.NewGenerator(pcfg)
	case am.LangMarkdown:
		return markdown.NewGenerator(), nil
	case am.LangRust:
		return rust.NewGenerator(cfg.Indent), nil
	default:
		return nil, errors.Newf("unknown language: %s", lang)
	}
}
