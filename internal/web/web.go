// Package web renders the single-page client and serves its static assets.
//
// Everything the page needs is embedded in the binary: the HTML template,
// the script and stylesheet, and the help text, which is written in Markdown
// and rendered once at startup.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ironsheep/math-solver/internal/i18n"
)

// Cropper.js is loaded from a CDN rather than embedded.
const (
	CropperJS  = "https://cdnjs.cloudflare.com/ajax/libs/cropperjs/1.5.12/cropper.min.js"
	CropperCSS = "https://cdnjs.cloudflare.com/ajax/libs/cropperjs/1.5.12/cropper.min.css"
)

// DefaultHistoryLimit is the client history cap used when none is configured.
const DefaultHistoryLimit = 50

//go:embed templates/index.html
var indexHTML string

//go:embed help.md
var helpMarkdown []byte

//go:embed static
var staticFiles embed.FS

// PageConfig parameterizes the rendered page.
type PageConfig struct {
	// HistoryLimit caps the scan history kept in the browser.
	HistoryLimit int

	// DefaultLocale is the language shown before the user picks one.
	// Unknown codes fall back to i18n.Default.
	DefaultLocale string
}

// clientConfig is handed to app.js as window.mathSolverConfig.
type clientConfig struct {
	DefaultLocale string                  `json:"defaultLocale"`
	HistoryLimit  int                     `json:"historyLimit"`
	Translations  map[string]i18n.Strings `json:"translations"`
}

type pageData struct {
	Locale     string
	Strings    i18n.Strings
	Locales    []i18n.Locale
	Help       template.HTML
	Config     clientConfig
	CropperJS  string
	CropperCSS string
}

// Page is the pre-rendered index page.
type Page struct {
	body []byte
}

// NewPage renders the index page for cfg.
func NewPage(cfg PageConfig) (*Page, error) {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	locale := i18n.Resolve(cfg.DefaultLocale)

	help, err := RenderMarkdown(helpMarkdown)
	if err != nil {
		return nil, fmt.Errorf("render help: %w", err)
	}

	tmpl, err := template.New("index").Parse(indexHTML)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	data := pageData{
		Locale:  locale,
		Strings: i18n.Lookup(locale),
		Locales: i18n.Locales(),
		Help:    help,
		Config: clientConfig{
			DefaultLocale: locale,
			HistoryLimit:  cfg.HistoryLimit,
			Translations:  i18n.Tables(),
		},
		CropperJS:  CropperJS,
		CropperCSS: CropperCSS,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return &Page{body: buf.Bytes()}, nil
}

// Render writes the page.
func (p *Page) Render(w io.Writer) error {
	_, err := w.Write(p.body)
	return err
}

// ServeHTTP serves the page as text/html.
func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_ = p.Render(w)
}

// Static serves the embedded assets relative to the static directory.
// Mount it behind http.StripPrefix. Directory listings are not served.
func Static() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	files := http.FileServerFS(sub)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// RenderMarkdown converts Markdown to HTML. Raw HTML in the source is
// dropped.
func RenderMarkdown(src []byte) (template.HTML, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)

	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
