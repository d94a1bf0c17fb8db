package am

import (
	"path/filepath"
	"strings"

	"github.com/teranos/shapegen/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	g := c.Generate

	if strings.TrimSpace(g.Schema) == "" {
		return errors.New("generate.schema cannot be empty")
	}
	if strings.TrimSpace(g.OutputDir) == "" {
		return errors.New("generate.output_dir cannot be empty")
	}

	switch g.Lang {
	case LangPython, LangMarkdown, LangRust, LangAll:
	default:
		return errors.WithHint(
			errors.Newf("generate.lang %q is not supported", g.Lang),
			"use one of: python, markdown, rust, all")
	}

	// File name is a base name; the backend adds the extension
	if g.FileName == "" {
		return errors.New("generate.file_name cannot be empty")
	}
	if g.FileName != filepath.Base(g.FileName) {
		return errors.Newf("generate.file_name must not contain a directory, got %q", g.FileName)
	}
	if filepath.Ext(g.FileName) != "" {
		return errors.WithHintf(
			errors.Newf("generate.file_name %q has an extension", g.FileName),
			"the extension comes from the language, use %q", strings.TrimSuffix(g.FileName, filepath.Ext(g.FileName)))
	}

	if g.Indent <= 0 {
		return errors.Newf("generate.indent must be > 0, got %d", g.Indent)
	}

	return nil
}
