package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses the HTML templates served by the integration pages.
func Load() *template.Template {
	return template.Must(template.New("").ParseFS(files, "*.html"))
}
