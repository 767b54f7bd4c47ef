// Package dashboard provides the embedded admin dashboard UI: the channel type
// legend and the column layout of every list view.
package dashboard

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"gwconsole/internal/admin"
	"gwconsole/internal/channeltype"
	"gwconsole/internal/version"
	"gwconsole/internal/viewschema"
)

//go:embed templates/*.html static/css/*.css
var content embed.FS

// Handler serves the admin dashboard UI.
type Handler struct {
	indexTmpl *template.Template
	staticFS  http.Handler
	page      pageData
}

type pageData struct {
	Version     string
	Total       int
	Fingerprint string
	Legend      []admin.LegendGroup
	Views       []viewData
}

type viewData struct {
	Entity  viewschema.EntityKind
	Columns []viewschema.Column
}

// New creates a new dashboard handler with parsed templates and static file server.
// The page is rendered from registry and schema once; both may be nil.
func New(registry *channeltype.Registry, schema *viewschema.Provider) (*Handler, error) {
	tmpl, err := template.ParseFS(content, "templates/layout.html", "templates/index.html")
	if err != nil {
		return nil, err
	}

	staticSub, err := fs.Sub(content, "static")
	if err != nil {
		return nil, err
	}

	page := pageData{
		Version: version.Version,
		Legend:  admin.BuildLegend(registry),
	}
	if registry != nil {
		snapshot := registry.Snapshot()
		page.Total = len(snapshot.Entries)
		page.Fingerprint = snapshot.Fingerprint
	}
	if schema != nil {
		for _, kind := range viewschema.EntityKinds() {
			cols, err := schema.ColumnsFor(kind, viewschema.RoleAdmin)
			if err != nil {
				return nil, err
			}
			page.Views = append(page.Views, viewData{Entity: kind, Columns: cols})
		}
	}

	return &Handler{
		indexTmpl: tmpl,
		staticFS:  http.StripPrefix("/admin/static/", http.FileServer(http.FS(staticSub))),
		page:      page,
	}, nil
}

// Index serves GET /admin/dashboard, the main dashboard page.
func (h *Handler) Index(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.indexTmpl.ExecuteTemplate(&buf, "layout", h.page); err != nil {
		return err
	}
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(c.Response().Writer)
	return err
}

// Static serves GET /admin/static/*, the embedded CSS assets.
func (h *Handler) Static(c echo.Context) error {
	h.staticFS.ServeHTTP(c.Response().Writer, c.Request())
	return nil
}
