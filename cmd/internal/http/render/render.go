package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// shared files are parsed into every page
var shared = []string{"templates/layout.html", "templates/partials.html"}

// Renderer implements echo.Renderer. Every page is parsed together with the
// shared layout, so pages are looked up by their file name without extension.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	funcs := template.FuncMap{
		"pageURL": PageURL,
		"add":     func(a, b int) int { return a + b },
	}

	pages := make(map[string]*template.Template)
	for _, f := range files {
		if slices.Contains(shared, f) {
			continue
		}

		name := strings.TrimSuffix(path.Base(f), ".html")
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, append(slices.Clone(shared), f)...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", f, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// PageURL returns base with its "page" query parameter replaced.
func PageURL(base string, query url.Values, page int) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("page", fmt.Sprint(page))
	return base + "?" + q.Encode()
}
