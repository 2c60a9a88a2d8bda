package controllers

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"portfolio/app/age"
	"portfolio/app/loader"
	"portfolio/app/page"
	"portfolio/app/site"
)

// PageController renders the site's HTML pages
type PageController struct {
	loader    *loader.Loader
	templates map[string]*template.Template
	birth     time.Time
	now       func() time.Time
}

// pageData is what the page templates see
type pageData struct {
	Title         string
	Age           template.HTML
	Posts         template.HTML
	LoadingHidden bool
	Alerts        []string
}

// NewPageController creates a PageController whose templates live in viewsDir
func NewPageController(l *loader.Loader, viewsDir string) (*PageController, error) {
	templates, err := loadTemplates(viewsDir)
	if err != nil {
		return nil, err
	}
	return &PageController{
		loader:    l,
		templates: templates,
		birth:     age.Birthday,
		now:       time.Now,
	}, nil
}

// SetClock overrides the current date used for the age display
func (pc *PageController) SetClock(now func() time.Time) {
	pc.now = now
}

// loadTemplates loads and parses all page templates
func loadTemplates(viewsDir string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)
	for name, file := range map[string]string{"index": "index.html", "blog": "blog.html"} {
		tmpl, err := template.ParseFiles(
			filepath.Join(viewsDir, "layout.html"),
			filepath.Join(viewsDir, file),
		)
		if err != nil {
			return nil, err
		}
		templates[name] = tmpl
	}
	return templates, nil
}

// Home renders the landing page
func (pc *PageController) Home(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, "index", "Home")
}

// Blog renders the blog list page
func (pc *PageController) Blog(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, "blog", "Blog")
}

func (pc *PageController) render(w http.ResponseWriter, r *http.Request, name, title string) {
	var buf bytes.Buffer
	res, err := pc.Render(r.Context(), &buf, name, title)
	if err != nil {
		http.Error(w, "Page error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if res.LoadErr != nil {
		log.Printf("blog list fell back to sample posts (%s): %v", res.Outcome, res.LoadErr)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// Render builds a fresh document, runs the page-load behaviors on it and
// writes the named page to out.
func (pc *PageController) Render(ctx context.Context, out io.Writer, name, title string) (site.Result, error) {
	tmpl, ok := pc.templates[name]
	if !ok {
		return site.Result{}, fmt.Errorf("unknown page %q", name)
	}
	doc := page.New()
	res, err := site.OnLoad(ctx, doc, pc.loader, pc.birth, pc.now())
	if err != nil {
		return res, err
	}
	if err := tmpl.ExecuteTemplate(out, "layout", documentData(doc, title)); err != nil {
		return res, fmt.Errorf("template error: %w", err)
	}
	return res, nil
}

// documentData flattens a loaded document for the templates
func documentData(doc *page.Document, title string) pageData {
	data := pageData{Title: title, Alerts: doc.Alerts()}
	if el := doc.ElementByID(page.AgeID); el != nil {
		data.Age = el.HTML()
	}
	if el := doc.ElementByID(page.ContainerID); el != nil {
		data.Posts = el.HTML()
	}
	if el := doc.ElementByID(page.LoadingID); el != nil {
		data.LoadingHidden = el.Hidden()
	}
	return data
}
