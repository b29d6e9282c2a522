// Package render executes the embedded snippet templates of the language generators.
package render

import (
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Template parses templateName from fsys and executes it with data. Sprig
// functions are available alongside funcs; funcs wins on name clashes.
func Template(fsys fs.FS, templateName string, funcs template.FuncMap, data any) (string, error) {
	tmplContent, err := fs.ReadFile(fsys, "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", templateName, err)
	}

	funcMap := template.FuncMap{}
	for k, v := range sprig.TxtFuncMap() {
		funcMap[k] = v
	}
	for k, v := range funcs {
		funcMap[k] = v
	}

	tmpl, err := template.New(templateName).Funcs(funcMap).Parse(string(tmplContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return strings.TrimSpace(b.String()) + "\n", nil
}

// Indent prefixes every line after the first with depth tabs, for multi-line
// expressions placed at an indented position.
func Indent(s string, depth int) string {
	if depth <= 0 {
		return s
	}
	return strings.ReplaceAll(s, "\n", "\n"+strings.Repeat("\t", depth))
}
