package frontend

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-roster/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// View template names.
const (
	LayoutTemplate = "layout"
	HomeTemplate   = "home"
	AboutTemplate  = "acerca-de"
	ErrorTemplate  = "error"
)

// TemplatesFS exposes the embedded page templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return templatesFS
	}
	return sub
}

// NewViews builds the default pongo2 engine over the embedded templates.
func NewViews(globals map[string]any) (*gotemplate.Engine, error) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(TemplatesFS()),
		gotemplate.WithGlobalData(globals),
	)
	if err != nil {
		return nil, fmt.Errorf("frontend: configure views: %w", err)
	}
	return engine, nil
}
