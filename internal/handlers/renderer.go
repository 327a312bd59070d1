package handlers

import (
	"html/template"

	"github.com/gin-gonic/gin/render"
)

// HTMLRenderer keeps a separate template set per page so each page can
// pair its own content with the shared base layout. Page names come
// from views.TemplateName, so every lookup is backed by a variant in
// the closed page set.
type HTMLRenderer struct {
	Templates map[string]*template.Template
}

// Instance selects the template set for the named page.
func (r *HTMLRenderer) Instance(name string, data interface{}) render.Render {
	return render.HTML{
		Template: r.Templates[name],
		Data:     data,
	}
}
