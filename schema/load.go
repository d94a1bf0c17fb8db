package schema

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/shapegen/errors"
	"gopkg.in/yaml.v3"
)

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension; anything that is
// not .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a service model document and indexes it.
func Parse(data []byte, format Format) (*Model, error) {
	var doc Document

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "failed to decode YAML service model")
		}
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "failed to decode JSON service model")
		}
	default:
		return nil, errors.Newf("unknown schema format: %s", format)
	}

	if doc.Shapes == nil {
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrSchema, "service model has no \"shapes\" table"),
			"is this a botocore service-2.json document?")
	}

	return NewModel(&doc), nil
}

// Decode reads a whole document from r.
func Decode(r io.Reader, format Format) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read service model")
	}
	return Parse(data, format)
}

// ReadFile loads a service model from disk, picking the format from the
// file extension.
func ReadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read schema %s", path)
	}
	model, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "schema %s", path)
	}
	return model, nil
}
