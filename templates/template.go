package templates

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/milk9111/uiprojector/projection"
	"gopkg.in/yaml.v3"
)

var ErrInvalidTemplate = errors.New("templates: invalid template")

// LoadTemplate reads and decodes the named template. A template without a
// name takes the file's base name.
func LoadTemplate(name string) (projection.Template, error) {
	data, err := Load(name)
	if err != nil {
		return projection.Template{}, fmt.Errorf("templates: load %s: %w", name, err)
	}
	return Decode(BaseName(name), data)
}

// Decode parses a YAML template. Unknown keys are rejected.
func Decode(name string, data []byte) (projection.Template, error) {
	var tmpl projection.Template
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tmpl); err != nil {
		return projection.Template{}, fmt.Errorf("templates: unmarshal %s: %w", name, err)
	}
	if tmpl.Name == "" {
		tmpl.Name = name
	}
	if err := validate(tmpl); err != nil {
		return projection.Template{}, err
	}
	return tmpl, nil
}

func validate(t projection.Template) error {
	switch {
	case t.ReferenceWidth < 0 || t.ReferenceHeight < 0:
		return fmt.Errorf("%w: %s: negative reference resolution", ErrInvalidTemplate, t.Name)
	case t.MatchWidthOrHeight < 0 || t.MatchWidthOrHeight > 1:
		return fmt.Errorf("%w: %s: match_width_or_height %v outside [0, 1]", ErrInvalidTemplate, t.Name, t.MatchWidthOrHeight)
	}
	return nil
}

// BaseName strips the directory and extension from a template path.
func BaseName(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
