package store

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Built-in fragment names.
const (
	TableHeader = "tabla-cabecera"
	TableRow    = "tabla-cuerpo"
	TableFooter = "tabla-pie"
	NamesHeader = "nombres-cabecera"
	NamesRow    = "nombres-cuerpo"
	Form        = "ficha"
)

// TemplatesFS exposes the embedded fragment bundle.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
