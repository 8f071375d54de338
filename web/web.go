// Package web holds the HTML pages.
package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"add":     func(a, b int) int { return a + b },
	"join":    strings.Join,
	"percent": func(f float64) int { return int(f*100 + 0.5) },
}

// Templates parses the embedded pages. It panics on a malformed template
// since those ship with the binary.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(files, "templates/*.html"))
}
