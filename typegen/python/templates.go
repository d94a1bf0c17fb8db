package python

import (
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/typegen/util"
)

// Template names, also the keys of a templates override file
const (
	tmplLicense   = "license"
	tmplImports   = "imports"
	tmplBaseClass = "base_class"
	tmplSentinel  = "sentinel"
	tmplClass     = "class"
)

// Templates holds the text/template sources the Python backend renders.
//
// Header templates (license, imports, base_class, sentinel) see
// .LicenseLines, .Service, .APIVersion and .Indent. The class template sees
// .Name, .Base, .Docstring, .Members and .Indent.
//
// Available functions:
//
//	indent TEXT WIDTH   prefix every line, trim trailing spaces
//	pad WIDTH LEVEL     WIDTH*LEVEL spaces
//	snake NAME          PascalCase to snake_case
type Templates struct {
	License   string `toml:"license"`
	Imports   string `toml:"imports"`
	BaseClass string `toml:"base_class"`
	Sentinel  string `toml:"sentinel"`
	Class     string `toml:"class"`
}

const defaultLicense = `{{range .LicenseLines}}{{if .}}# {{.}}{{else}}#{{end}}
{{end}}# Code generated by shapegen{{if .Service}} from {{.Service}}{{if .APIVersion}} {{.APIVersion}}{{end}}{{end}}. DO NOT EDIT.

`

const defaultImports = `import datetime

from pydantic import BaseModel
from typing import List, Dict, Optional


`

const defaultBaseClass = `class Base(BaseModel):
{{pad .Indent 1}}"""Common base for every generated shape."""


`

const defaultSentinel = `class Unassigned:
{{pad .Indent 1}}"""A custom type used to signify an undefined optional argument."""
{{pad .Indent 1}}_instance = None

{{pad .Indent 1}}def __new__(cls):
{{pad .Indent 2}}if cls._instance is None:
{{pad .Indent 3}}cls._instance = super().__new__(cls)
{{pad .Indent 2}}return cls._instance
`

const defaultClass = `

class {{.Name}}({{.Base}}):
{{pad .Indent 1}}"""
{{indent .Docstring .Indent}}
{{pad .Indent 1}}"""
{{- if .Members}}

{{indent .Members .Indent}}
{{- end}}
`

// DefaultTemplates returns the built-in templates.
func DefaultTemplates() Templates {
	return Templates{
		License:   defaultLicense,
		Imports:   defaultImports,
		BaseClass: defaultBaseClass,
		Sentinel:  defaultSentinel,
		Class:     defaultClass,
	}
}

// Merge returns t with every non-empty field of override applied.
func (t Templates) Merge(override Templates) Templates {
	if override.License != "" {
		t.License = override.License
	}
	if override.Imports != "" {
		t.Imports = override.Imports
	}
	if override.BaseClass != "" {
		t.BaseClass = override.BaseClass
	}
	if override.Sentinel != "" {
		t.Sentinel = override.Sentinel
	}
	if override.Class != "" {
		t.Class = override.Class
	}
	return t
}

// LoadTemplates reads a TOML override file. Keys that are not template
// names are rejected so a typo does not silently fall back to a default.
func LoadTemplates(path string) (Templates, error) {
	var t Templates
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Templates{}, errors.Wrapf(err, "failed to read templates file %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		err := errors.Newf("unknown template keys in %s: %s", path, strings.Join(keys, ", "))
		return Templates{}, errors.WithHint(err, "valid keys: license, imports, base_class, sentinel, class")
	}

	// Parse now so a broken override fails at load time
	if _, err := parseTemplates(DefaultTemplates().Merge(t)); err != nil {
		return Templates{}, errors.Wrapf(err, "templates file %s", path)
	}
	return t, nil
}

var funcs = template.FuncMap{
	"indent": util.Indent,
	"pad": func(width, level int) string {
		if width < 0 || level < 0 {
			return ""
		}
		return strings.Repeat(" ", width*level)
	},
	"snake": util.ToSnakeCase,
}

func parseTemplates(t Templates) (*template.Template, error) {
	root := template.New("python").Funcs(funcs).Option("missingkey=error")

	sources := []struct{ name, text string }{
		{tmplLicense, t.License},
		{tmplImports, t.Imports},
		{tmplBaseClass, t.BaseClass},
		{tmplSentinel, t.Sentinel},
		{tmplClass, t.Class},
	}
	for _, src := range sources {
		if _, err := root.New(src.name).Parse(src.text); err != nil {
			return nil, errors.Wrapf(err, "parse %s template", src.name)
		}
	}
	return root, nil
}
