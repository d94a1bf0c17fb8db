// Package python renders service shapes as pydantic model classes.
package python

import (
	"strings"
	"text/template"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/schema"
	"github.com/teranos/shapegen/typegen/util"
)

// Config tunes the Python backend. Zero values fall back to defaults.
type Config struct {
	// Indent is the indentation unit for class bodies (default 4)
	Indent int

	// License is raw license text; each line becomes a "# " comment
	License string

	// Templates overrides any of the built-in templates
	Templates Templates
}

// Generator implements typegen.Generator for Python
type Generator struct {
	indent  int
	license []string
	tmpl    *template.Template
}

// NewGenerator parses the templates and returns a ready generator.
func NewGenerator(cfg Config) (*Generator, error) {
	indent := cfg.Indent
	if indent <= 0 {
		indent = util.DefaultIndent
	}

	tmpl, err := parseTemplates(DefaultTemplates().Merge(cfg.Templates))
	if err != nil {
		return nil, err
	}

	var license []string
	if text := strings.TrimRight(cfg.License, "\n"); text != "" {
		license = strings.Split(text, "\n")
	}

	return &Generator{indent: indent, license: license, tmpl: tmpl}, nil
}

// Language returns "python"
func (g *Generator) Language() string {
	return "python"
}

// FileExtension returns "py"
func (g *Generator) FileExtension() string {
	return "py"
}

type headerData struct {
	LicenseLines []string
	Service      string
	APIVersion   string
	Indent       int
}

// Header renders license, imports, the Base class and the Unassigned sentinel.
func (g *Generator) Header(model *schema.Model) (string, error) {
	data := headerData{
		LicenseLines: g.license,
		Service:      model.Metadata.ServiceID,
		APIVersion:   model.Metadata.APIVersion,
		Indent:       g.indent,
	}

	var sb strings.Builder
	for _, name := range []string{tmplLicense, tmplImports, tmplBaseClass, tmplSentinel} {
		if err := g.tmpl.ExecuteTemplate(&sb, name, data); err != nil {
			return "", errors.Wrapf(err, "execute %s template", name)
		}
	}
	return sb.String(), nil
}

type classData struct {
	Name      string
	Base      string
	Docstring string
	Members   string
	Indent    int
}

// EmitClass renders one class deriving from Base.
func (g *Generator) EmitClass(shape *schema.Shape, members, documentation string) (string, error) {
	var sb strings.Builder
	err := g.tmpl.ExecuteTemplate(&sb, tmplClass, classData{
		Name:      shape.Name,
		Base:      "Base",
		Docstring: documentation,
		Members:   members,
		Indent:    g.indent,
	})
	if err != nil {
		return "", errors.Wrapf(err, "execute %s template", tmplClass)
	}
	return sb.String(), nil
}

// pythonKeywords are reserved words in Python that need special handling
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	// Soft keywords (Python 3.10+)
	"match": true, "case": true, "type": true,
}

// toPythonIdent converts an identifier to a valid Python identifier
// Adds underscore suffix for Python keywords
func toPythonIdent(s string) string {
	if pythonKeywords[s] {
		return s + "_"
	}
	return s
}

// FieldName returns the Python attribute name for a member name.
func FieldName(member string) string {
	return toPythonIdent(util.ToSnakeCase(member))
}
