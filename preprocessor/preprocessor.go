// Package preprocessor expands templated assembly source before it reaches
// the assembler. Templates use jinja2 syntax; integer parameters can be
// single values or sweeps, assembled one combination at a time.
package preprocessor

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// Expand renders a template string with the given parameters.
func Expand(src string, params Params) (string, error) {
	tpl, err := pongo2.FromString(src)
	if err != nil {
		return "", fmt.Errorf("template: %w", err)
	}
	out, err := tpl.Execute(pongo2.Context(params))
	if err != nil {
		return "", fmt.Errorf("template: %w", err)
	}
	return out, nil
}

// ExpandFile renders a template file with the given parameters.
func ExpandFile(path string, params Params) (string, error) {
	tpl, err := pongo2.FromFile(path)
	if err != nil {
		return "", fmt.Errorf("template: %w", err)
	}
	out, err := tpl.Execute(pongo2.Context(params))
	if err != nil {
		return "", fmt.Errorf("template: %w", err)
	}
	return out, nil
}
