package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates devolve o conjunto "base" + páginas, pronto para r.SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(
		template.New("").ParseFS(templatesFS, "templates/*.html"),
	)
}
