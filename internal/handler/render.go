package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/studyspot/studyspot/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Shared templates parsed into every page.
var sharedTemplates = []string{"templates/layout.html", "templates/_listing_form.html"}

// Page is the data every template receives; page-specific fields go in Data.
type Page struct {
	Title   string
	User    *model.User
	Error   string
	Message string
	Data    any
}

// Renderer executes embedded page templates inside the shared layout.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses every page template under templates/.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	entries, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, path := range entries {
		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		if name == "layout" || strings.HasPrefix(name, "_") {
			continue
		}

		// Page files come last so their blocks replace the layout defaults.
		files := append(append([]string{}, sharedTemplates...), path)
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes page name with the given status.
// The page is rendered into a buffer first so a template error never
// leaves a half-written response.
func (v *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := v.pages[name]
	if !ok {
		v.logger.Error("template_missing", "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		v.logger.Error("template_render_failed", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// staticHandler serves the embedded static/ tree under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	files := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}

var templateFuncs = template.FuncMap{
	"clockOptions":  clockOptions,
	"noiseLevels":   model.AllNoiseLevels,
	"seatingTypes":  model.AllSeatingTypes,
	"wifiOptions":   model.AllWiFiOptions,
	"outletLevels":  model.AllOutletLevels,
	"flag":          model.FormatFlag,
	"orDash":        orDash,
	"formatTime":    formatTime,
	"selectedValue": selectedValue,
}

// clockOptions lists the half-hour clock times offered by hours dropdowns.
func clockOptions() []string {
	opts := make([]string, 0, 48)
	for m := 0; m < 24*60; m += 30 {
		opts = append(opts, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return opts
}

func orDash(v any) string {
	s := fmt.Sprint(v)
	if s == "" {
		return "-"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("Jan 2, 2006 15:04 UTC")
}

// selectedValue compares an option against the current value as strings.
func selectedValue(option any, current string) bool {
	return fmt.Sprint(option) == current
}
